package ports

import (
	"context"
	"time"

	"github.com/storefront/commerce-api/internal/core/domain"
)

// CatalogCache stores fixed catalog views (best sellers, new arrivals) between writes.
type CatalogCache interface {
	// Get reports ok=false on a miss. Errors are never fatal to the caller.
	Get(ctx context.Context, key string) (products []domain.Product, ok bool, err error)
	Set(ctx context.Context, key string, products []domain.Product, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}
