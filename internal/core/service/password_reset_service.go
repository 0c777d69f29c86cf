package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/commerce-api/internal/core/domain"
	"github.com/storefront/commerce-api/internal/core/ports"
)

const (
	resetCodeMin  = 100000
	resetCodeSpan = 900000
)

// PasswordResetService drives a reset code from issued through validated to consumed.
type PasswordResetService struct {
	users    ports.UserRepository
	codes    ports.ResetCodeRepository
	notifier ports.ResetCodeNotifier
	audit    ports.AuditRecorder
	log      zerolog.Logger
	cost     int
	generate func() (string, error)
}

func NewPasswordResetService(
	users ports.UserRepository,
	codes ports.ResetCodeRepository,
	notifier ports.ResetCodeNotifier,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *PasswordResetService {
	return &PasswordResetService{
		users:    users,
		codes:    codes,
		notifier: notifier,
		audit:    audit,
		log:      log,
		cost:     passwordHashCost,
		generate: generateResetCode,
	}
}

// SendResetCode issues a fresh code for the account behind email. The code is
// handed to the notifier before it is stored.
func (s *PasswordResetService) SendResetCode(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Errorf(domain.ErrNotFound, "There is no such email.")
	}
	if err != nil {
		return surface(s.log, err, "Could not send reset code.")
	}

	code, err := s.generate()
	if err != nil {
		return surface(s.log, err, "Could not send reset code.")
	}

	if err := s.notifier.SendResetCode(ctx, user.Email, code); err != nil {
		return surface(s.log, err, "Could not send reset code.")
	}

	if err := s.codes.Create(ctx, &domain.ResetCode{
		UserID:    user.ID,
		Code:      code,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return surface(s.log, err, "Could not send reset code.")
	}

	s.record(domain.AuditResetIssued, user.ID)
	s.log.Info().Int64("user_id", user.ID).Msg("reset code issued")
	return nil
}

// ConfirmResetCode moves the code to validated. Matching is by value alone.
func (s *PasswordResetService) ConfirmResetCode(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Errorf(domain.ErrInvalidInput, "You didn't provide the code!")
	}
	rc, err := s.codes.MarkValidated(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrCodeNotFound
		}
		return surface(s.log, err, "Could not confirm reset code.")
	}
	s.record(domain.AuditResetConfirmed, rc.UserID)
	return nil
}

// ResetPassword consumes the most recent code of the account behind email.
// It fails with domain.ErrNotAllowed while that code is not yet validated.
func (s *PasswordResetService) ResetPassword(ctx context.Context, email, newPassword string) error {
	if newPassword == "" {
		return domain.Errorf(domain.ErrInvalidInput, "You didn't provide the new password!")
	}
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Errorf(domain.ErrNotFound, "There is no such email.")
	}
	if err != nil {
		return surface(s.log, err, "Could not reset password!")
	}

	rc, err := s.codes.LatestForUser(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrCodeNotFound
		}
		return surface(s.log, err, "Could not reset password!")
	}
	if err := rc.CanConsume(); err != nil {
		return err
	}

	hash, err := hashPassword(newPassword, s.cost)
	if err != nil {
		return surface(s.log, err, "Could not reset password!")
	}
	if err := s.codes.ConsumeWithPassword(ctx, rc.ID, user.ID, hash); err != nil {
		return surface(s.log, err, "Could not reset password!")
	}

	s.record(domain.AuditResetConsumed, user.ID)
	s.log.Info().Int64("user_id", user.ID).Msg("password reset")
	return nil
}

func (s *PasswordResetService) record(action domain.AuditAction, userID int64) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{
		Action:     action,
		Subject:    strconv.FormatInt(userID, 10),
		OccurredAt: time.Now().UTC(),
	})
}

// generateResetCode returns a uniformly random six-digit code.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(resetCodeSpan))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+resetCodeMin, 10), nil
}
