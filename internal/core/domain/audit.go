package domain

import "time"

// AuditAction names a security-relevant account or access event.
type AuditAction string

const (
	AuditSignUp         AuditAction = "account.sign_up"
	AuditSignIn         AuditAction = "account.sign_in"
	AuditSignInFailed   AuditAction = "account.sign_in_failed"
	AuditUpdate         AuditAction = "account.update"
	AuditPromote        AuditAction = "account.promote_admin"
	AuditResetIssued    AuditAction = "reset.issued"
	AuditResetConfirmed AuditAction = "reset.confirmed"
	AuditResetConsumed  AuditAction = "reset.consumed"
	AuditAccessDenied   AuditAction = "access.denied"
	AuditProductStored  AuditAction = "catalog.product_stored"
)

// AuditEvent is one entry in the security audit trail.
type AuditEvent struct {
	ID         string
	Action     AuditAction
	Subject    string // user id or email the event concerns
	Detail     map[string]string
	OccurredAt time.Time
}
