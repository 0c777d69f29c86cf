package ports

import (
	"context"

	"github.com/storefront/commerce-api/internal/core/domain"
)

// CatalogRepository is the query-builder view of the product catalog.
type CatalogRepository interface {
	// FindProduct returns domain.ErrNotFound when no product has id.
	FindProduct(ctx context.Context, id int64) (*domain.Product, error)
	// SearchByName returns every product whose name matches domain.NamePattern(text).
	SearchByName(ctx context.Context, text string) ([]domain.Product, error)
	// BestSellers returns up to limit products in storage order.
	BestSellers(ctx context.Context, limit int) ([]domain.Product, error)
	// NewArrivals returns up to limit products, most recently created first.
	NewArrivals(ctx context.Context, limit int) ([]domain.Product, error)
	// Filter returns one page of matches and the total number of matching rows.
	Filter(ctx context.Context, q domain.CatalogQuery) ([]domain.Product, int64, error)
	// CreateInventory and CreateProduct are separate statements.
	CreateInventory(ctx context.Context, in domain.NewProductInput) (int64, error)
	CreateProduct(ctx context.Context, in domain.NewProductInput, inventoryID int64) (*domain.Product, error)
}
