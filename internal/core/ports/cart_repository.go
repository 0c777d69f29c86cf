package ports

import (
	"context"

	"github.com/storefront/commerce-api/internal/core/domain"
)

type CartRepository interface {
	// FindByUser returns domain.ErrNotFound when the user has no cart.
	FindByUser(ctx context.Context, userID int64) (*domain.Cart, error)
	// AddItem creates the cart if needed and increments the quantity of an existing line.
	AddItem(ctx context.Context, userID, productID int64, quantity int) error
}
