package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storefront/commerce-api/internal/core/domain"
	"github.com/storefront/commerce-api/internal/pkg/metrics"
)

const defaultCacheTTL = 5 * time.Minute

// CatalogCache is a cache-aside store for fixed catalog views.
// Key format: <prefix><view key>, value is the JSON-encoded product list.
type CatalogCache struct {
	client *redis.Client
	prefix string
}

func NewCatalogCache(client *redis.Client, prefix string) *CatalogCache {
	return &CatalogCache{client: client, prefix: prefix}
}

func (c *CatalogCache) Get(ctx context.Context, key string) ([]domain.Product, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		metrics.CatalogCacheTotal.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("catalog cache get: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		metrics.CatalogCacheTotal.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("catalog cache decode: %w", err)
	}
	metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
	return products, true, nil
}

func (c *CatalogCache) Set(ctx context.Context, key string, products []domain.Product, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("catalog cache encode: %w", err)
	}
	return c.client.Set(ctx, c.prefix+key, data, ttl).Err()
}

func (c *CatalogCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	return c.client.Del(ctx, full...).Err()
}
