package domain

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// DefaultPageSize applies when a catalog query does not set Size.
	DefaultPageSize = 12
	// MaxPageSize caps Size so one request cannot page through the whole catalog.
	MaxPageSize = 100
	// TopN is the fixed length of the best-seller and new-arrival views.
	TopN = 6
)

// CatalogQuery is the transient filter + pagination value for catalog listings.
// Nil pointers mean "filter not requested"; zero values are real filters.
type CatalogQuery struct {
	Text       string
	CategoryID *int64
	TypeID     *int64
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Page       int
	Size       int
}

// Normalize fills in defaults (page 1, size 12) and rejects impossible paging.
func (q CatalogQuery) Normalize() (CatalogQuery, error) {
	if q.Size < 0 || q.Size > MaxPageSize {
		return q, Errorf(ErrInvalidInput, "size must be between 1 and %d", MaxPageSize)
	}
	if q.Page < 0 {
		return q, Errorf(ErrInvalidInput, "page must be 1 or greater")
	}
	if q.Size == 0 {
		q.Size = DefaultPageSize
	}
	if q.Page == 0 {
		q.Page = 1
	}
	// the row offset must stay representable
	if q.Page-1 > math.MaxInt/q.Size {
		return q, Errorf(ErrInvalidInput, "page is out of range")
	}
	q.Text = strings.TrimSpace(q.Text)
	return q, nil
}

// Offset is the number of matching rows skipped before this page.
func (q CatalogQuery) Offset() int {
	if q.Page <= 1 {
		return 0
	}
	return (q.Page - 1) * q.Size
}

// NamePattern turns free text into a case-insensitive LIKE pattern. Each space
// becomes a multi-character wildcard rather than a literal space.
func NamePattern(text string) string {
	return "%" + strings.ReplaceAll(strings.ToLower(text), " ", "%") + "%"
}

// PageCount is ceil(total/size): whole pages plus one for any remainder.
func PageCount(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return int(pages)
}

// CatalogPage is one page of a filtered listing.
type CatalogPage struct {
	Items     []Product
	Total     int64
	PageCount int
}
