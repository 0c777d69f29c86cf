package ports

import "context"

// ResetCodeNotifier hands a reset code to whatever delivers it to the account owner.
type ResetCodeNotifier interface {
	SendResetCode(ctx context.Context, email, code string) error
}
