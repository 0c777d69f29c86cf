package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/storefront/commerce-api/internal/core/domain"
	"github.com/storefront/commerce-api/internal/core/ports"
)

// IdentityKey is the echo.Context key holding the caller's *domain.Identity.
const IdentityKey = "identity"

// Authenticate verifies the bearer credential and attaches the identity to the
// context. It never rejects a request: a missing or invalid credential simply
// leaves no identity behind, and RequireRoles decides what that means.
func Authenticate(tokens ports.TokenAuthenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if identity := tokens.Authenticate(c.Request().Header.Get(echo.HeaderAuthorization)); identity != nil {
				c.Set(IdentityKey, identity)
			}
			return next(c)
		}
	}
}

// IdentityFrom returns the identity set by Authenticate, or nil.
func IdentityFrom(c echo.Context) *domain.Identity {
	identity, _ := c.Get(IdentityKey).(*domain.Identity)
	return identity
}
