package ports

import (
	"context"

	"github.com/storefront/commerce-api/internal/core/domain"
)

// ResetCodeRepository persists password reset codes.
type ResetCodeRepository interface {
	Create(ctx context.Context, code *domain.ResetCode) error
	// MarkValidated flips the most recent code with this value to validated.
	// Returns domain.ErrCodeNotFound when the value is unknown.
	MarkValidated(ctx context.Context, code string) (*domain.ResetCode, error)
	// LatestForUser returns domain.ErrCodeNotFound when the user has no outstanding code.
	LatestForUser(ctx context.Context, userID int64) (*domain.ResetCode, error)
	// ConsumeWithPassword stores the new hash and deletes the code in one transaction.
	ConsumeWithPassword(ctx context.Context, codeID, userID int64, passwordHash string) error
}
