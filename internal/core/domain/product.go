package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SecondaryImagesDelimiter joins secondary image references in storage.
const SecondaryImagesDelimiter = "||"

// Category is a product category (e.g. "Shoes").
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"category"`
}

// CategoryType is the finer product type inside the catalog (e.g. "Sneakers").
type CategoryType struct {
	ID   int64  `json:"id"`
	Name string `json:"type"`
}

// Inventory holds the stock and base price of one product.
type Inventory struct {
	ID         int64           `json:"id"`
	SKU        string          `json:"SKU"`
	QtyInStock int             `json:"qty_in_stock"`
	Price      decimal.Decimal `json:"price"`
	Category   Category        `json:"category"`
	Type       CategoryType    `json:"type"`
}

// Promotion is a time-unscoped discount owned by a product.
type Promotion struct {
	ID           int64 `json:"id"`
	DiscountRate int   `json:"discount_rate"`
}

// Product is a catalog entry. A product has at most one active promotion.
type Product struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	MainImage       string     `json:"main_image"`
	SecondaryImages []string   `json:"secondary_images"`
	Inventory       Inventory  `json:"inventory"`
	Promotion       *Promotion `json:"promotion,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// EffectivePrice applies the optional promotion to base. The second return is
// false when no promotion applies and no discounted price should be emitted.
//
// The arithmetic stays in fixed point: rate/100 is a decimal shift, so no
// binary rounding creeps in however often listings are recomputed.
func EffectivePrice(base decimal.Decimal, promo *Promotion) (decimal.Decimal, bool) {
	if promo == nil {
		return base, false
	}
	discount := base.Mul(decimal.NewFromInt(int64(promo.DiscountRate))).Shift(-2)
	return base.Sub(discount), true
}

// NewPrice is the discounted price of p, if it has a promotion.
func (p Product) NewPrice() (decimal.Decimal, bool) {
	return EffectivePrice(p.Inventory.Price, p.Promotion)
}

// SplitSecondaryImages expands the stored delimiter-joined form into an ordered list.
func SplitSecondaryImages(joined string) []string {
	if joined == "" {
		return []string{}
	}
	return strings.Split(joined, SecondaryImagesDelimiter)
}

// JoinSecondaryImages is the inverse of SplitSecondaryImages.
func JoinSecondaryImages(images []string) string {
	return strings.Join(images, SecondaryImagesDelimiter)
}

// NewProductInput carries a product and its inventory row for creation.
type NewProductInput struct {
	Name            string
	Description     string
	MainImage       string
	SecondaryImages []string
	SKU             string
	QtyInStock      int
	Price           decimal.Decimal
	CategoryID      int64
	TypeID          int64
}

// Validate rejects inputs the store operation can never persist.
func (in NewProductInput) Validate() error {
	if in.CategoryID == 0 || in.TypeID == 0 {
		return Errorf(ErrInvalidInput, "Type or Category ID is missing!")
	}
	if in.Price.IsNegative() {
		return Errorf(ErrInvalidInput, "price must not be negative")
	}
	for _, img := range in.SecondaryImages {
		if strings.Contains(img, SecondaryImagesDelimiter) {
			return Errorf(ErrInvalidInput, "secondary image references must not contain %q", SecondaryImagesDelimiter)
		}
	}
	return nil
}
