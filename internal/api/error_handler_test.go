package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storefront/commerce-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"unauthenticated", domain.Errorf(domain.ErrUnauthenticated, "no identity"), http.StatusForbidden, "no identity"},
		{"forbidden", domain.Errorf(domain.ErrForbidden, "Forbidden resource"), http.StatusForbidden, "Forbidden resource"},
		{"not found", domain.Errorf(domain.ErrNotFound, "There is no product with that id!"), http.StatusNotFound, "There is no product with that id!"},
		{"code not found", domain.ErrCodeNotFound, http.StatusNotFound, "There is no such reset code."},
		{"conflict", domain.Errorf(domain.ErrConflict, "Email already exists."), http.StatusConflict, "Email already exists."},
		{"invalid input", domain.Errorf(domain.ErrInvalidInput, "You didn't provide the query!"), http.StatusBadRequest, "You didn't provide the query!"},
		{"not allowed", domain.Errorf(domain.ErrNotAllowed, "This code was not validated!"), http.StatusNotAcceptable, "This code was not validated!"},
		{"credentials", domain.Errorf(domain.ErrInvalidCredentials, "Wrong password."), http.StatusUnauthorized, "Wrong password."},
		{"internal keeps safe message", domain.Internal("Could not create product!", errors.New("pq: deadlock")), http.StatusInternalServerError, "Could not create product!"},
		{"bare sentinel", domain.ErrNotFound, http.StatusNotFound, "not found"},
		{"raw error", errors.New("dial tcp: refused"), http.StatusInternalServerError, "internal server error"},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"), http.StatusMethodNotAllowed, "Method Not Allowed"},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			h(tt.err, c)

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.StatusCode != tt.status || body.Message != tt.message {
				t.Fatalf("unexpected envelope: %+v", body)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.NoContent(http.StatusAccepted)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected untouched 202, got %d", rec.Code)
	}
}
