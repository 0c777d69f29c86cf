package ports

import (
	"context"

	"github.com/storefront/commerce-api/internal/core/domain"
)

type CatalogService interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	Search(ctx context.Context, text string) (*domain.CatalogPage, error)
	BestSellers(ctx context.Context) ([]domain.Product, error)
	NewArrivals(ctx context.Context) ([]domain.Product, error)
	Filter(ctx context.Context, q domain.CatalogQuery) (*domain.CatalogPage, error)
	StoreProduct(ctx context.Context, in domain.NewProductInput) (*domain.Product, error)
}
