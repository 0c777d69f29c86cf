package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/storefront/commerce-api/internal/api/middleware"
	"github.com/storefront/commerce-api/internal/core/domain"
	"github.com/storefront/commerce-api/internal/core/ports"
	"github.com/storefront/commerce-api/internal/pkg/metrics"
)

// UserHandler handles account and password reset requests.
type UserHandler struct {
	users  ports.UserService
	resets ports.PasswordResetService
	tokens ports.TokenAuthenticator
}

func NewUserHandler(users ports.UserService, resets ports.PasswordResetService, tokens ports.TokenAuthenticator) *UserHandler {
	return &UserHandler{users: users, resets: resets, tokens: tokens}
}

func toAccountView(s *domain.AccountSession) accountView {
	u := s.User
	return accountView{
		ID:                 u.ID,
		Email:              u.Email,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		PhoneNumber:        u.PhoneNumber,
		UserType:           userTypeView{ID: u.Role.Ordinal(), UserType: string(u.Role)},
		CreatedAt:          u.CreatedAt,
		AuthorizationToken: s.Token,
	}
}

// SignUp handles POST /users/sign-up.
//
// @Summary      Create an account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Account details"
// @Success      201   {object}  accountView
// @Failure      400   {object}  statusResponse
// @Failure      409   {object}  statusResponse
// @Router       /users/sign-up [post]
func (h *UserHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.users.SignUp(c.Request().Context(), domain.SignUpInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return err
	}
	metrics.AccountsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toAccountView(session))
}

// SignIn handles POST /users/sign-in.
//
// @Summary      Sign in
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  accountView
// @Failure      401   {object}  statusResponse
// @Router       /users/sign-in [post]
func (h *UserHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.users.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountView(session))
}

// CheckAuthorization handles GET /users/check-authorization. It never fails.
//
// @Summary      Check a bearer credential
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  authorizedResponse
// @Router       /users/check-authorization [get]
func (h *UserHandler) CheckAuthorization(c echo.Context) error {
	identity := h.tokens.Authenticate(c.Request().Header.Get(echo.HeaderAuthorization))
	return c.JSON(http.StatusOK, authorizedResponse{Authorized: identity != nil})
}

// ReplaceAccount handles PUT /users/update.
//
// @Summary      Replace every account field
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      putUserRequest  true  "Complete account"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  statusResponse
// @Failure      403   {object}  statusResponse
// @Failure      409   {object}  statusResponse
// @Router       /users/update [put]
func (h *UserHandler) ReplaceAccount(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req putUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.users.Update(c.Request().Context(), userID, domain.UserPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{AuthenticationToken: session.Token})
}

// PatchAccount handles PATCH /users/update.
//
// @Summary      Change some account fields
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      patchUserRequest  true  "Fields to change"
// @Success      200   {object}  accountView
// @Failure      400   {object}  statusResponse
// @Failure      403   {object}  statusResponse
// @Failure      404   {object}  statusResponse
// @Failure      409   {object}  statusResponse
// @Router       /users/update [patch]
func (h *UserHandler) PatchAccount(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req patchUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.users.Update(c.Request().Context(), userID, domain.UserPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountView(session))
}

// MakeAdmin handles PATCH /users/:id/make-admin.
//
// @Summary      Promote a user to admin
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  statusResponse
// @Failure      403  {object}  statusResponse
// @Failure      404  {object}  statusResponse
// @Router       /users/{id}/make-admin [patch]
func (h *UserHandler) MakeAdmin(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return domain.Errorf(domain.ErrInvalidInput, "id must be a positive integer")
	}

	if err := h.users.MakeAdmin(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{StatusCode: http.StatusOK, Message: "User promoted to admin successfully."})
}

// SendResetCode handles POST /users/send-reset-code.
//
// @Summary      Send a password reset code
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      sendResetCodeRequest  true  "Account email"
// @Success      200   {object}  statusResponse
// @Failure      404   {object}  statusResponse
// @Router       /users/send-reset-code [post]
func (h *UserHandler) SendResetCode(c echo.Context) error {
	var req sendResetCodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.resets.SendResetCode(c.Request().Context(), req.Email); err != nil {
		return err
	}
	metrics.ResetCodeTransitionsTotal.WithLabelValues(string(domain.ResetIssued)).Inc()
	return c.JSON(http.StatusOK, statusResponse{StatusCode: http.StatusOK, Message: "Sent reset code successfully."})
}

// ConfirmResetCode handles POST /users/confirm-reset-code.
//
// @Summary      Confirm a password reset code
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      confirmResetCodeRequest  true  "Reset code"
// @Success      200   {object}  statusResponse
// @Failure      404   {object}  statusResponse
// @Router       /users/confirm-reset-code [post]
func (h *UserHandler) ConfirmResetCode(c echo.Context) error {
	var req confirmResetCodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.resets.ConfirmResetCode(c.Request().Context(), req.Code); err != nil {
		return err
	}
	metrics.ResetCodeTransitionsTotal.WithLabelValues(string(domain.ResetValidated)).Inc()
	return c.JSON(http.StatusOK, statusResponse{StatusCode: http.StatusOK, Message: "Code confirmed successfully."})
}

// ResetPassword handles POST /users/reset-password.
//
// @Summary      Reset a password with a confirmed code
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Email and new password"
// @Success      200   {object}  statusResponse
// @Failure      404   {object}  statusResponse
// @Failure      406   {object}  statusResponse
// @Router       /users/reset-password [post]
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.resets.ResetPassword(c.Request().Context(), req.Email, req.NewPassword); err != nil {
		return err
	}
	metrics.ResetCodeTransitionsTotal.WithLabelValues(string(domain.ResetConsumed)).Inc()
	return c.JSON(http.StatusOK, statusResponse{StatusCode: http.StatusOK, Message: "Password reset successfully."})
}

// callerID returns the user id of the authenticated caller.
func callerID(c echo.Context) (int64, error) {
	identity := middleware.IdentityFrom(c)
	if identity == nil || identity.UserID == 0 {
		return 0, domain.Errorf(domain.ErrForbidden, "There is something wrong with your authorization token!")
	}
	return identity.UserID, nil
}
