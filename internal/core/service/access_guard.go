package service

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/commerce-api/internal/core/domain"
	"github.com/storefront/commerce-api/internal/core/ports"
)

// Denial reasons attached to logs and audit events.
const (
	DenyNoIdentity       = "no_identity"
	DenyNoRole           = "no_role"
	DenyUnresolvableRole = "unresolvable_role"
	DenyInsufficientRole = "insufficient_role"
)

// AccessGuard decides allow/deny for a route from the caller's role ordinal.
// It holds no per-request state, so one instance serves every protected route.
type AccessGuard struct {
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewAccessGuard(audit ports.AuditRecorder, log zerolog.Logger) *AccessGuard {
	return &AccessGuard{audit: audit, log: log}
}

// Authorize returns true when identity resolves to a role in required. A
// missing identity, a missing ordinal, or an ordinal outside the role table
// fails with domain.ErrUnauthenticated. A resolved role outside required
// returns false with no error.
func (g *AccessGuard) Authorize(ctx context.Context, identity *domain.Identity, required domain.RoleSet) (bool, error) {
	if identity == nil {
		g.deny(ctx, nil, DenyNoIdentity)
		return false, domain.Errorf(domain.ErrUnauthenticated, "Authorization token is missing or invalid!")
	}
	if identity.RoleOrdinal == 0 {
		g.deny(ctx, identity, DenyNoRole)
		return false, domain.Errorf(domain.ErrUnauthenticated, "Authorization token carries no role!")
	}
	role, err := domain.ResolveRole(identity.RoleOrdinal)
	if err != nil {
		g.deny(ctx, identity, DenyUnresolvableRole)
		return false, domain.Errorf(domain.ErrUnauthenticated, "Authorization token carries an unknown role!")
	}
	if !required.Contains(role) {
		g.deny(ctx, identity, DenyInsufficientRole)
		return false, nil
	}
	return true, nil
}

func (g *AccessGuard) deny(ctx context.Context, identity *domain.Identity, reason string) {
	route := ports.RouteFrom(ctx)
	subject := ""
	ev := g.log.Warn().Str("route", route).Str("reason", reason)
	if identity != nil {
		subject = strconv.FormatInt(identity.UserID, 10)
		ev = ev.Int64("user_id", identity.UserID).Int("role_ordinal", identity.RoleOrdinal)
	}
	ev.Msg("access denied")

	if g.audit != nil {
		g.audit.Record(domain.AuditEvent{
			Action:     domain.AuditAccessDenied,
			Subject:    subject,
			Detail:     map[string]string{"route": route, "reason": reason},
			OccurredAt: time.Now().UTC(),
		})
	}
}
