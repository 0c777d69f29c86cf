package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/storefront/commerce-api/internal/core/domain"
	"github.com/storefront/commerce-api/internal/core/ports"
)

type CartService struct {
	carts   ports.CartRepository
	catalog ports.CatalogRepository
	log     zerolog.Logger
}

func NewCartService(carts ports.CartRepository, catalog ports.CatalogRepository, log zerolog.Logger) *CartService {
	return &CartService{carts: carts, catalog: catalog, log: log}
}

func (s *CartService) GetCart(ctx context.Context, identity *domain.Identity) (*domain.Cart, error) {
	if identity == nil || identity.UserID == 0 {
		return nil, domain.Errorf(domain.ErrForbidden, "There is something wrong with your authorization token!")
	}
	cart, err := s.carts.FindByUser(ctx, identity.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.Errorf(domain.ErrNotFound, "This user has no shopping cart!")
	}
	if err != nil {
		return nil, surface(s.log, err, "Could not load the shopping cart!")
	}
	return cart, nil
}

// AddItem puts quantity units of a product in the caller's cart, creating the
// cart on first use, and returns the updated cart.
func (s *CartService) AddItem(ctx context.Context, identity *domain.Identity, productID int64, quantity int) (*domain.Cart, error) {
	if identity == nil || identity.UserID == 0 {
		return nil, domain.Errorf(domain.ErrForbidden, "There is something wrong with your authorization token!")
	}
	if quantity <= 0 {
		return nil, domain.Errorf(domain.ErrInvalidInput, "quantity must be at least 1")
	}
	if _, err := s.catalog.FindProduct(ctx, productID); errors.Is(err, domain.ErrNotFound) {
		return nil, domain.Errorf(domain.ErrNotFound, "There is no product with that id!")
	} else if err != nil {
		return nil, surface(s.log, err, "Could not update the shopping cart!")
	}

	if err := s.carts.AddItem(ctx, identity.UserID, productID, quantity); err != nil {
		return nil, surface(s.log, err, "Could not update the shopping cart!")
	}
	return s.GetCart(ctx, identity)
}
