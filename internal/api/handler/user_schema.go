package handler

import "time"

// --- Request types ---

type signUpRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=8"`
	FirstName   string `json:"first_name"   validate:"required"`
	LastName    string `json:"last_name"    validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}

type signInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// putUserRequest replaces every account field.
type putUserRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=8"`
	FirstName   string `json:"first_name"   validate:"required"`
	LastName    string `json:"last_name"    validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}

// patchUserRequest changes only the fields that are present.
type patchUserRequest struct {
	Email       string `json:"email"        validate:"omitempty,email"`
	Password    string `json:"password"     validate:"omitempty,min=8"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

type sendResetCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type confirmResetCodeRequest struct {
	Code string `json:"code" validate:"required,numeric,len=6"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// --- Response types ---

type userTypeView struct {
	ID       int    `json:"id"`
	UserType string `json:"user_type"`
}

// accountView is the account as shown to its owner: no password hash, no
// updated_at, plus the freshly issued credential.
type accountView struct {
	ID                 int64        `json:"id"`
	Email              string       `json:"email"`
	FirstName          string       `json:"first_name"`
	LastName           string       `json:"last_name"`
	PhoneNumber        string       `json:"phone_number"`
	UserType           userTypeView `json:"user_type"`
	CreatedAt          time.Time    `json:"created_at"`
	AuthorizationToken string       `json:"authorization_token"`
}

type tokenResponse struct {
	AuthenticationToken string `json:"authentication_token"`
}

type authorizedResponse struct {
	Authorized bool `json:"authorized"`
}

type statusResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}
