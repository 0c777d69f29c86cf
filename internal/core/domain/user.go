package domain

import "time"

// User models a storefront account.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	PhoneNumber  string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity returns the credential payload for u.
func (u *User) Identity() Identity {
	return Identity{UserID: u.ID, RoleOrdinal: u.Role.Ordinal(), RoleLabel: string(u.Role)}
}

// PaymentProfile is created alongside every account at sign-up.
type PaymentProfile struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
}

// SignUpInput carries the fields of a new account.
type SignUpInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
}

// UserPatch carries a partial account update; empty strings are left unchanged.
type UserPatch struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
}

// AccountSession is a user plus the session credential issued for it.
type AccountSession struct {
	User  *User
	Token string
}
