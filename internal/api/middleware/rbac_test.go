package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storefront/commerce-api/internal/core/domain"
	"github.com/storefront/commerce-api/internal/core/ports"
	"github.com/storefront/commerce-api/internal/core/service"
)

type recordingGuard struct {
	route    string
	required domain.RoleSet
	ok       bool
	err      error
}

func (g *recordingGuard) Authorize(ctx context.Context, _ *domain.Identity, required domain.RoleSet) (bool, error) {
	g.route = ports.RouteFrom(ctx)
	g.required = required
	return g.ok, g.err
}

func newGuardedContext(identity *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/products/store", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/products/store")
	if identity != nil {
		c.Set(IdentityKey, identity)
	}
	return c, rec
}

func TestRequireRoles_Allows(t *testing.T) {
	guard := service.NewAccessGuard(nil, zerolog.Nop())
	c, rec := newGuardedContext(&domain.Identity{UserID: 3, RoleOrdinal: domain.RoleCustomer.Ordinal()})

	called := false
	handler := RequireRoles(guard, domain.RoleAdmin, domain.RoleCustomer)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRoles_ForbidsInsufficientRole(t *testing.T) {
	guard := service.NewAccessGuard(nil, zerolog.Nop())
	c, _ := newGuardedContext(&domain.Identity{UserID: 3, RoleOrdinal: domain.RoleCustomer.Ordinal()})

	handler := RequireRoles(guard, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireRoles_RejectsMissingIdentity(t *testing.T) {
	guard := service.NewAccessGuard(nil, zerolog.Nop())
	c, _ := newGuardedContext(nil)

	handler := RequireRoles(guard, domain.RoleAdmin, domain.RoleCustomer)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestRequireRoles_PassesRouteAndRoleSet(t *testing.T) {
	guard := &recordingGuard{ok: true}
	c, _ := newGuardedContext(&domain.Identity{UserID: 1, RoleOrdinal: 1})

	handler := RequireRoles(guard, domain.RoleAdmin)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if guard.route != "/products/store" {
		t.Fatalf("expected route on context, got %q", guard.route)
	}
	if !guard.required.Contains(domain.RoleAdmin) || guard.required.Contains(domain.RoleCustomer) {
		t.Fatalf("unexpected role set: %v", guard.required)
	}
}
