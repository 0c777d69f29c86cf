package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/storefront/commerce-api/internal/core/domain"
)

// SessionClaims is the signed credential payload.
type SessionClaims struct {
	ID         int64  `json:"id"`
	UserTypeID int    `json:"user_type_id"`
	UserType   string `json:"user_type,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues HS256 session credentials and turns Authorization
// headers back into identities.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	log    zerolog.Logger
}

func NewTokenService(secret string, ttl time.Duration, log zerolog.Logger) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now, log: log}
}

func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := s.now()
	claims := SessionClaims{
		ID:         user.ID,
		UserTypeID: user.Role.Ordinal(),
		UserType:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", domain.Internal("Could not issue authorization token!", err)
	}
	return signed, nil
}

// Authenticate extracts and verifies a "Bearer <token>" header. Any failure
// yields nil so the request continues anonymously.
func (s *TokenService) Authenticate(header string) *domain.Identity {
	scheme, raw, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" || raw == "" {
		return nil
	}
	claims, err := s.verify(raw)
	if err != nil {
		s.log.Debug().Err(err).Msg("bearer token rejected")
		return nil
	}
	return &domain.Identity{
		UserID:      claims.ID,
		RoleOrdinal: claims.UserTypeID,
		RoleLabel:   claims.UserType,
	}
}

func (s *TokenService) verify(raw string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
