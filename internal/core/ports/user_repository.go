package ports

import (
	"context"

	"github.com/storefront/commerce-api/internal/core/domain"
)

// UserRepository handles account persistence.
type UserRepository interface {
	// FindByEmail returns domain.ErrNotFound when no account uses email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// CreateWithPaymentProfile inserts the account and its payment profile atomically.
	// A duplicate email surfaces as domain.ErrConflict.
	CreateWithPaymentProfile(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)
	// SetRole returns domain.ErrNotFound when no account has id.
	SetRole(ctx context.Context, id int64, role domain.Role) error
}
