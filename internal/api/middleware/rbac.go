package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/storefront/commerce-api/internal/core/domain"
	"github.com/storefront/commerce-api/internal/core/ports"
	"github.com/storefront/commerce-api/internal/pkg/metrics"
)

// RequireRoles admits only callers whose identity resolves to one of roles.
func RequireRoles(guard ports.AccessGuard, roles ...domain.Role) echo.MiddlewareFunc {
	required := domain.NewRoleSet(roles...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := ports.WithRoute(c.Request().Context(), c.Path())
			ok, err := guard.Authorize(ctx, IdentityFrom(c), required)
			if err != nil {
				metrics.AccessDeniedTotal.WithLabelValues("unauthenticated").Inc()
				return err
			}
			if !ok {
				metrics.AccessDeniedTotal.WithLabelValues("forbidden").Inc()
				return domain.Errorf(domain.ErrForbidden, "Forbidden resource")
			}
			return next(c)
		}
	}
}
