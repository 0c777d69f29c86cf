package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/storefront/commerce-api/internal/core/domain"
	"github.com/storefront/commerce-api/internal/core/ports"
)

const passwordHashCost = 12

// UserService implements sign-up, sign-in, profile updates and promotion.
type UserService struct {
	users  ports.UserRepository
	tokens ports.TokenAuthenticator
	audit  ports.AuditRecorder
	log    zerolog.Logger
	cost   int
}

// NewUserService builds the service. audit may be an untyped nil; a typed nil
// pointer stored in the interface is treated as a real recorder.
func NewUserService(users ports.UserRepository, tokens ports.TokenAuthenticator, audit ports.AuditRecorder, log zerolog.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, audit: audit, log: log, cost: passwordHashCost}
}

// SignUp creates a customer account together with its payment profile and
// issues a session credential. The email check is a fast path; the storage
// unique constraint is what rejects a concurrent duplicate.
func (s *UserService) SignUp(ctx context.Context, in domain.SignUpInput) (*domain.AccountSession, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Email and password are required!")
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.Errorf(domain.ErrConflict, "Email already exists.")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, surface(s.log, err, "Could not sign up user.")
	}

	hash, err := hashPassword(in.Password, s.cost)
	if err != nil {
		return nil, surface(s.log, err, "Could not sign up user.")
	}

	now := time.Now().UTC()
	created, err := s.users.CreateWithPaymentProfile(ctx, &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PhoneNumber:  in.PhoneNumber,
		Role:         domain.DefaultRole,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, domain.ErrConflict) {
		return nil, domain.Errorf(domain.ErrConflict, "Email already exists.")
	}
	if err != nil {
		return nil, surface(s.log, err, "Could not sign up user.")
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		return nil, surface(s.log, err, "Could not sign up user.")
	}

	s.record(domain.AuditSignUp, created.ID, nil)
	s.log.Info().Int64("user_id", created.ID).Msg("account created")
	return &domain.AccountSession{User: created, Token: token}, nil
}

func (s *UserService) SignIn(ctx context.Context, email, password string) (*domain.AccountSession, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, domain.ErrNotFound) {
		s.recordSubject(domain.AuditSignInFailed, email, map[string]string{"reason": "unknown_email"})
		return nil, domain.Errorf(domain.ErrInvalidCredentials, "Email does not exist.")
	}
	if err != nil {
		return nil, surface(s.log, err, "Could not sign in user.")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.record(domain.AuditSignInFailed, user.ID, map[string]string{"reason": "wrong_password"})
		return nil, domain.Errorf(domain.ErrInvalidCredentials, "Wrong password.")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, surface(s.log, err, "Could not sign in user.")
	}
	s.record(domain.AuditSignIn, user.ID, nil)
	return &domain.AccountSession{User: user, Token: token}, nil
}

// Update applies patch to the account. Empty fields are left untouched; a
// new password is hashed before it reaches storage.
func (s *UserService) Update(ctx context.Context, userID int64, patch domain.UserPatch) (*domain.AccountSession, error) {
	if _, err := s.users.FindByID(ctx, userID); errors.Is(err, domain.ErrNotFound) {
		return nil, domain.Errorf(domain.ErrNotFound, "User doesn't exist.")
	} else if err != nil {
		return nil, surface(s.log, err, "Could not update user data!")
	}

	patch.Email = strings.TrimSpace(patch.Email)
	if patch.Email != "" {
		existing, err := s.users.FindByEmail(ctx, patch.Email)
		if err == nil && existing.ID != userID {
			return nil, domain.Errorf(domain.ErrConflict, "Email already exists.")
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, surface(s.log, err, "Could not update user data!")
		}
	}

	if patch.Password != "" {
		hash, err := hashPassword(patch.Password, s.cost)
		if err != nil {
			return nil, surface(s.log, err, "Could not update user data!")
		}
		patch.Password = hash
	}

	updated, err := s.users.Update(ctx, userID, patch)
	if errors.Is(err, domain.ErrConflict) {
		return nil, domain.Errorf(domain.ErrConflict, "Email already exists.")
	}
	if err != nil {
		return nil, surface(s.log, err, "Could not update user data!")
	}

	token, err := s.tokens.Issue(updated)
	if err != nil {
		return nil, surface(s.log, err, "Could not update user data!")
	}
	s.record(domain.AuditUpdate, userID, nil)
	return &domain.AccountSession{User: updated, Token: token}, nil
}

// MakeAdmin assigns the admin role. Credentials issued earlier keep their old
// ordinal until the user signs in again.
func (s *UserService) MakeAdmin(ctx context.Context, userID int64) error {
	if err := s.users.SetRole(ctx, userID, domain.RoleAdmin); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Errorf(domain.ErrNotFound, "User doesn't exist.")
		}
		return surface(s.log, err, "Could not promote user to Admin!")
	}
	s.record(domain.AuditPromote, userID, nil)
	s.log.Info().Int64("user_id", userID).Msg("user promoted to admin")
	return nil
}

func (s *UserService) record(action domain.AuditAction, userID int64, detail map[string]string) {
	s.recordSubject(action, strconv.FormatInt(userID, 10), detail)
}

func (s *UserService) recordSubject(action domain.AuditAction, subject string, detail map[string]string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{Action: action, Subject: subject, Detail: detail, OccurredAt: time.Now().UTC()})
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
