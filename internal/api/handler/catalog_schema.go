package handler

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/storefront/commerce-api/internal/core/domain"
)

// --- Request types ---

type inventoryRequest struct {
	SKU        string          `json:"SKU"          validate:"required"`
	QtyInStock int             `json:"qty_in_stock" validate:"gte=0"`
	Price      decimal.Decimal `json:"price"`
	CategoryID int64           `json:"category_id"`
	TypeID     int64           `json:"type_id"`
}

type storeProductRequest struct {
	Name            string           `json:"name"             validate:"required"`
	Description     string           `json:"description"      validate:"required"`
	MainImage       string           `json:"main_image"       validate:"required"`
	SecondaryImages []string         `json:"secondary_images" validate:"required,min=1,dive,required"`
	Inventory       inventoryRequest `json:"inventory"`
}

// filterQuery reads the filter endpoint's query string. Absent parameters stay
// nil; a present parameter is applied even when it is zero.
func filterQuery(c echo.Context) (domain.CatalogQuery, error) {
	q := domain.CatalogQuery{Text: c.QueryParam("query")}

	if err := echo.QueryParamsBinder(c).
		Int("page", &q.Page).
		Int("size", &q.Size).
		BindError(); err != nil {
		return q, domain.Errorf(domain.ErrInvalidInput, "page and size must be integers")
	}

	var err error
	if q.CategoryID, err = optionalInt64(c, "category_id"); err != nil {
		return q, err
	}
	if q.TypeID, err = optionalInt64(c, "type_id"); err != nil {
		return q, err
	}
	if q.MinPrice, err = optionalDecimal(c, "minimum_price"); err != nil {
		return q, err
	}
	if q.MaxPrice, err = optionalDecimal(c, "maximum_price"); err != nil {
		return q, err
	}
	return q, nil
}

func optionalInt64(c echo.Context, name string) (*int64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, domain.Errorf(domain.ErrInvalidInput, "%s must be an integer", name)
	}
	return &n, nil
}

func optionalDecimal(c echo.Context, name string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, domain.Errorf(domain.ErrInvalidInput, "%s must be a number", name)
	}
	return &d, nil
}

// --- Response types ---

type categoryView struct {
	ID       int64  `json:"id"`
	Category string `json:"category"`
}

type typeView struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

type promotionView struct {
	ID           int64 `json:"id"`
	DiscountRate int   `json:"discount_rate"`
}

type inventorySummary struct {
	Price      decimal.Decimal `json:"price"`
	QtyInStock int             `json:"qty_in_stock"`
	Category   categoryView    `json:"category"`
	Type       typeView        `json:"type"`
}

type inventoryView struct {
	ID         int64           `json:"id"`
	SKU        string          `json:"SKU"`
	QtyInStock int             `json:"qty_in_stock"`
	Price      decimal.Decimal `json:"price"`
	Category   categoryView    `json:"category"`
	Type       typeView        `json:"type"`
}

// productSummary is the listing shape (search, best-seller, new-arrival).
type productSummary struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	MainImage string           `json:"main_image"`
	Inventory inventorySummary `json:"inventory"`
	Promotion *promotionView   `json:"promotion,omitempty"`
	NewPrice  json.Number      `json:"new_price,omitempty"`
}

// productDetail is the full shape (get-one, filter, store).
type productDetail struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	MainImage       string         `json:"main_image"`
	SecondaryImages []string       `json:"secondary_images"`
	CreatedAt       time.Time      `json:"created_at"`
	Inventory       inventoryView  `json:"inventory"`
	Promotion       *promotionView `json:"promotion,omitempty"`
	NewPrice        json.Number    `json:"new_price,omitempty"`
}

type pagedProducts[T any] struct {
	Pages    int `json:"pages"`
	Products []T `json:"products"`
}
