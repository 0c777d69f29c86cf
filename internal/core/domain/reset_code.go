package domain

import "time"

// ResetCodeState is the lifecycle position of a password reset code.
type ResetCodeState string

const (
	ResetIssued    ResetCodeState = "issued"
	ResetValidated ResetCodeState = "validated"
	// ResetConsumed is terminal; the record no longer exists once reached.
	ResetConsumed ResetCodeState = "consumed"
)

// resetTransitions defines the allowed state machine transitions.
var resetTransitions = map[ResetCodeState][]ResetCodeState{
	ResetIssued:    {ResetValidated},
	ResetValidated: {ResetValidated, ResetConsumed},
}

// CanTransitionTo reports whether a code in state s may move to next.
func (s ResetCodeState) CanTransitionTo(next ResetCodeState) bool {
	for _, allowed := range resetTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ResetCode is a one-time numeric code that authorises a password change.
// Codes carry no expiry; they stay actionable until consumed.
type ResetCode struct {
	ID        int64
	UserID    int64
	Code      string
	Validated bool
	CreatedAt time.Time
}

// State reports where the code is in its lifecycle.
func (c *ResetCode) State() ResetCodeState {
	if c.Validated {
		return ResetValidated
	}
	return ResetIssued
}

// CanConsume reports whether the code may be used to reset a password.
func (c *ResetCode) CanConsume() error {
	if !c.State().CanTransitionTo(ResetConsumed) {
		return Errorf(ErrNotAllowed, "This code was not validated!")
	}
	return nil
}
