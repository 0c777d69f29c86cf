package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/commerce-api/internal/core/domain"
	"github.com/storefront/commerce-api/internal/core/ports"
)

const (
	BestSellerCacheKey = "catalog:best-seller"
	NewArrivalCacheKey = "catalog:new-arrival"
)

// CatalogService composes catalog reads over the repository and keeps the
// fixed top-N views in a cache between writes.
type CatalogService struct {
	repo     ports.CatalogRepository
	cache    ports.CatalogCache
	cacheTTL time.Duration
	audit    ports.AuditRecorder
	log      zerolog.Logger
}

// NewCatalogService builds the service. cache and audit may be untyped nil
// interface values.
func NewCatalogService(
	repo ports.CatalogRepository,
	cache ports.CatalogCache,
	cacheTTL time.Duration,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *CatalogService {
	return &CatalogService{repo: repo, cache: cache, cacheTTL: cacheTTL, audit: audit, log: log}
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, domain.Errorf(domain.ErrInvalidInput, "You didn't provide a valid product id!")
	}
	p, err := s.repo.FindProduct(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.Errorf(domain.ErrNotFound, "There is no product with that id!")
	}
	if err != nil {
		return nil, surface(s.log, err, "Could not load the product!")
	}
	return p, nil
}

// Search returns every name match. Pages are reported at the default page size.
func (s *CatalogService) Search(ctx context.Context, text string) (*domain.CatalogPage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.Errorf(domain.ErrInvalidInput, "You didn't provide the query!")
	}
	products, err := s.repo.SearchByName(ctx, text)
	if err != nil {
		return nil, surface(s.log, err, "Could not search products!")
	}
	if len(products) == 0 {
		return nil, domain.Errorf(domain.ErrNotFound, "There is no products with that search query!")
	}
	total := int64(len(products))
	return &domain.CatalogPage{
		Items:     products,
		Total:     total,
		PageCount: domain.PageCount(total, domain.DefaultPageSize),
	}, nil
}

func (s *CatalogService) BestSellers(ctx context.Context) ([]domain.Product, error) {
	return s.topN(ctx, BestSellerCacheKey, s.repo.BestSellers)
}

func (s *CatalogService) NewArrivals(ctx context.Context) ([]domain.Product, error) {
	return s.topN(ctx, NewArrivalCacheKey, s.repo.NewArrivals)
}

func (s *CatalogService) topN(
	ctx context.Context,
	key string,
	load func(context.Context, int) ([]domain.Product, error),
) ([]domain.Product, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("catalog cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	products, err := load(ctx, domain.TopN)
	if err != nil {
		return nil, surface(s.log, err, "Could not load products!")
	}
	if len(products) == 0 {
		return nil, domain.Errorf(domain.ErrNotFound, "There is no products available!")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, products, s.cacheTTL); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
		}
	}
	return products, nil
}

// Filter never reports NotFound; an empty match is an empty page.
func (s *CatalogService) Filter(ctx context.Context, q domain.CatalogQuery) (*domain.CatalogPage, error) {
	q, err := q.Normalize()
	if err != nil {
		return nil, err
	}
	products, total, err := s.repo.Filter(ctx, q)
	if err != nil {
		return nil, surface(s.log, err, "Could not filter products!")
	}
	if products == nil {
		products = []domain.Product{}
	}
	return &domain.CatalogPage{
		Items:     products,
		Total:     total,
		PageCount: domain.PageCount(total, q.Size),
	}, nil
}

// StoreProduct writes the inventory row and then the product row as two
// statements. A failed product insert leaves the inventory row in place.
func (s *CatalogService) StoreProduct(ctx context.Context, in domain.NewProductInput) (*domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	inventoryID, err := s.repo.CreateInventory(ctx, in)
	if err != nil {
		s.log.Error().Err(err).Str("sku", in.SKU).Msg("error saving inventory")
		return nil, domain.Internal("Could not create product inventory!", err)
	}

	product, err := s.repo.CreateProduct(ctx, in, inventoryID)
	if err != nil {
		s.log.Error().Err(err).Int64("inventory_id", inventoryID).Msg("error saving product")
		return nil, domain.Internal("Could not create product!", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, BestSellerCacheKey, NewArrivalCacheKey); err != nil {
			s.log.Warn().Err(err).Msg("catalog cache invalidation failed")
		}
	}
	if s.audit != nil {
		s.audit.Record(domain.AuditEvent{
			Action:     domain.AuditProductStored,
			Subject:    strconv.FormatInt(product.ID, 10),
			Detail:     map[string]string{"sku": in.SKU, "inventory_id": strconv.FormatInt(inventoryID, 10)},
			OccurredAt: time.Now().UTC(),
		})
	}
	s.log.Info().Int64("product_id", product.ID).Str("sku", in.SKU).Msg("product stored")
	return product, nil
}
