package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/storefront/commerce-api/internal/api/handler"
	"github.com/storefront/commerce-api/internal/core/domain"
	"github.com/storefront/commerce-api/internal/core/service"
)

type fakeCatalog struct{ stored int }

func (f *fakeCatalog) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if id != 1 {
		return nil, domain.Errorf(domain.ErrNotFound, "There is no product with that id!")
	}
	return &domain.Product{ID: 1, Name: "Mug", Inventory: domain.Inventory{Price: decimal.NewFromInt(10)}}, nil
}

func (f *fakeCatalog) Search(ctx context.Context, text string) (*domain.CatalogPage, error) {
	return nil, domain.Errorf(domain.ErrInvalidInput, "You didn't provide the query!")
}

func (f *fakeCatalog) BestSellers(ctx context.Context) ([]domain.Product, error) {
	return []domain.Product{}, nil
}

func (f *fakeCatalog) NewArrivals(ctx context.Context) ([]domain.Product, error) {
	return []domain.Product{}, nil
}

func (f *fakeCatalog) Filter(ctx context.Context, q domain.CatalogQuery) (*domain.CatalogPage, error) {
	return &domain.CatalogPage{Items: []domain.Product{}}, nil
}

func (f *fakeCatalog) StoreProduct(ctx context.Context, in domain.NewProductInput) (*domain.Product, error) {
	f.stored++
	return &domain.Product{ID: 2, Name: in.Name}, nil
}

type fakeUsers struct{ promoted []int64 }

func (f *fakeUsers) SignUp(ctx context.Context, in domain.SignUpInput) (*domain.AccountSession, error) {
	return nil, domain.Errorf(domain.ErrConflict, "Email already exists.")
}

func (f *fakeUsers) SignIn(ctx context.Context, email, password string) (*domain.AccountSession, error) {
	return nil, domain.Errorf(domain.ErrInvalidCredentials, "Wrong password.")
}

func (f *fakeUsers) Update(ctx context.Context, userID int64, patch domain.UserPatch) (*domain.AccountSession, error) {
	return &domain.AccountSession{User: &domain.User{ID: userID, Role: domain.RoleCustomer}, Token: "t"}, nil
}

func (f *fakeUsers) MakeAdmin(ctx context.Context, userID int64) error {
	f.promoted = append(f.promoted, userID)
	return nil
}

type fakeResets struct{}

func (fakeResets) SendResetCode(ctx context.Context, email string) error { return nil }

func (fakeResets) ConfirmResetCode(ctx context.Context, code string) error {
	return domain.ErrCodeNotFound
}

func (fakeResets) ResetPassword(ctx context.Context, email, newPassword string) error {
	return domain.Errorf(domain.ErrNotAllowed, "This code was not validated!")
}

type fakeCarts struct{}

func (fakeCarts) GetCart(ctx context.Context, identity *domain.Identity) (*domain.Cart, error) {
	return &domain.Cart{ID: 1, UserID: identity.UserID}, nil
}

func (fakeCarts) AddItem(ctx context.Context, identity *domain.Identity, productID int64, quantity int) (*domain.Cart, error) {
	return &domain.Cart{ID: 1, UserID: identity.UserID}, nil
}

type routerFixture struct {
	e       *echo.Echo
	tokens  *service.TokenService
	catalog *fakeCatalog
	users   *fakeUsers
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	tokens := service.NewTokenService("router-secret", time.Hour, zerolog.Nop())
	reg := prometheus.NewRegistry()
	f := &routerFixture{tokens: tokens, catalog: &fakeCatalog{}, users: &fakeUsers{}}
	f.e = NewRouter(Dependencies{
		Catalog:    f.catalog,
		Users:      f.users,
		Resets:     fakeResets{},
		Carts:      fakeCarts{},
		Tokens:     tokens,
		Guard:      service.NewAccessGuard(nil, zerolog.Nop()),
		Readiness:  map[string]handler.PingFunc{"postgres": func(context.Context) error { return nil }},
		Registerer: reg,
		Gatherer:   reg,
		Log:        zerolog.Nop(),
	})
	return f
}

func (f *routerFixture) bearer(t *testing.T, id int64, role domain.Role) string {
	t.Helper()
	signed, err := f.tokens.Issue(&domain.User{ID: id, Role: role})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return "Bearer " + signed
}

func (f *routerFixture) do(method, target, auth, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Guards(t *testing.T) {
	f := newRouterFixture(t)
	admin := f.bearer(t, 1, domain.RoleAdmin)
	customer := f.bearer(t, 2, domain.RoleCustomer)
	storeBody := `{"name":"Mug","description":"d","main_image":"m.png","secondary_images":["a.png"],
		"inventory":{"SKU":"M-1","qty_in_stock":1,"price":"10","category_id":1,"type_id":1}}`

	tests := []struct {
		name   string
		method string
		target string
		auth   string
		body   string
		status int
	}{
		{"store without token", http.MethodPost, "/products/store", "", storeBody, http.StatusForbidden},
		{"store with garbage token", http.MethodPost, "/products/store", "Bearer nope", storeBody, http.StatusForbidden},
		{"store as customer", http.MethodPost, "/products/store", customer, storeBody, http.StatusCreated},
		{"store as admin", http.MethodPost, "/products/store", admin, storeBody, http.StatusCreated},
		{"make-admin as customer", http.MethodPatch, "/users/9/make-admin", customer, "", http.StatusForbidden},
		{"make-admin as admin", http.MethodPatch, "/users/9/make-admin", admin, "", http.StatusOK},
		{"cart without token", http.MethodGet, "/carts/get-one", "", "", http.StatusForbidden},
		{"cart as customer", http.MethodGet, "/carts/get-one", customer, "", http.StatusOK},
		{"public read", http.MethodGet, "/products/get-one?id=1", "", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(tt.method, tt.target, tt.auth, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}

	if f.catalog.stored != 2 {
		t.Fatalf("expected 2 stored products, got %d", f.catalog.stored)
	}
	if len(f.users.promoted) != 1 || f.users.promoted[0] != 9 {
		t.Fatalf("unexpected promotions: %v", f.users.promoted)
	}
}

func TestRouter_ErrorEnvelope(t *testing.T) {
	f := newRouterFixture(t)

	tests := []struct {
		method  string
		target  string
		body    string
		status  int
		message string
	}{
		{http.MethodGet, "/products/get-one?id=99", "", http.StatusNotFound, "There is no product with that id!"},
		{http.MethodGet, "/products/search", "", http.StatusBadRequest, "You didn't provide the query!"},
		{http.MethodPost, "/users/sign-up", `{"email":"a@x.com","password":"correct-horse","first_name":"A","last_name":"B","phone_number":"1"}`, http.StatusConflict, "Email already exists."},
		{http.MethodPost, "/users/sign-in", `{"email":"a@x.com","password":"x"}`, http.StatusUnauthorized, "Wrong password."},
		{http.MethodPost, "/users/confirm-reset-code", `{"code":"123456"}`, http.StatusNotFound, "There is no such reset code."},
		{http.MethodPost, "/users/reset-password", `{"email":"a@x.com","new_password":"correct-horse"}`, http.StatusNotAcceptable, "This code was not validated!"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := f.do(tt.method, tt.target, "", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
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

func TestRouter_CheckAuthorizationNeverFails(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/users/check-authorization", "Bearer forged", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"authorized":false`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}

	rec = f.do(http.MethodGet, "/users/check-authorization", f.bearer(t, 3, domain.RoleCustomer), "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"authorized":true`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_ProbesAndMetrics(t *testing.T) {
	f := newRouterFixture(t)

	if rec := f.do(http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", rec.Code)
	}
	if rec := f.do(http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("readiness: expected 200, got %d", rec.Code)
	}
	if rec := f.do(http.MethodGet, "/metrics", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
}
