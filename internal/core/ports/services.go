package ports

import (
	"context"

	"github.com/storefront/commerce-api/internal/core/domain"
)

// TokenAuthenticator issues and verifies session credentials.
type TokenAuthenticator interface {
	Issue(user *domain.User) (string, error)
	// Authenticate parses an Authorization header value. It never fails; a
	// malformed, forged or expired credential yields nil.
	Authenticate(header string) *domain.Identity
}

// AccessGuard decides whether an identity may use a route declaring required.
type AccessGuard interface {
	Authorize(ctx context.Context, identity *domain.Identity, required domain.RoleSet) (bool, error)
}

type UserService interface {
	SignUp(ctx context.Context, in domain.SignUpInput) (*domain.AccountSession, error)
	SignIn(ctx context.Context, email, password string) (*domain.AccountSession, error)
	Update(ctx context.Context, userID int64, patch domain.UserPatch) (*domain.AccountSession, error)
	MakeAdmin(ctx context.Context, userID int64) error
}

type PasswordResetService interface {
	SendResetCode(ctx context.Context, email string) error
	ConfirmResetCode(ctx context.Context, code string) error
	ResetPassword(ctx context.Context, email, newPassword string) error
}

type CartService interface {
	GetCart(ctx context.Context, identity *domain.Identity) (*domain.Cart, error)
	AddItem(ctx context.Context, identity *domain.Identity, productID int64, quantity int) (*domain.Cart, error)
}
