package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure a caller can observe unwraps to exactly one of these.
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotAllowed         = errors.New("not allowed")
	ErrInternal           = errors.New("internal error")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ErrCodeNotFound is returned when no reset code matches a confirmation attempt.
var ErrCodeNotFound = &Error{Kind: ErrNotFound, Msg: "There is no such reset code."}

// Error pairs a kind from the taxonomy above with a message that is safe to
// show to the caller. Cause, when set, is only ever logged.
type Error struct {
	Kind  error
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Msg + ": " + e.Cause.Error()
	}
	return e.Msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// Message returns the caller-facing message without the cause.
func (e *Error) Message() string { return e.Msg }

// Errorf builds an *Error of the given kind.
func Errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Internal wraps a downstream failure so callers only ever see ErrInternal.
func Internal(msg string, cause error) error {
	return &Error{Kind: ErrInternal, Msg: msg, Cause: cause}
}
