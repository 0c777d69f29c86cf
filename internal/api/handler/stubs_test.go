package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storefront/commerce-api/internal/core/domain"
)

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type stubCatalogService struct {
	getFn    func(ctx context.Context, id int64) (*domain.Product, error)
	searchFn func(ctx context.Context, text string) (*domain.CatalogPage, error)
	topFn    func(ctx context.Context) ([]domain.Product, error)
	filterFn func(ctx context.Context, q domain.CatalogQuery) (*domain.CatalogPage, error)
	storeFn  func(ctx context.Context, in domain.NewProductInput) (*domain.Product, error)
}

func (s *stubCatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.getFn(ctx, id)
}

func (s *stubCatalogService) Search(ctx context.Context, text string) (*domain.CatalogPage, error) {
	return s.searchFn(ctx, text)
}

func (s *stubCatalogService) BestSellers(ctx context.Context) ([]domain.Product, error) {
	return s.topFn(ctx)
}

func (s *stubCatalogService) NewArrivals(ctx context.Context) ([]domain.Product, error) {
	return s.topFn(ctx)
}

func (s *stubCatalogService) Filter(ctx context.Context, q domain.CatalogQuery) (*domain.CatalogPage, error) {
	return s.filterFn(ctx, q)
}

func (s *stubCatalogService) StoreProduct(ctx context.Context, in domain.NewProductInput) (*domain.Product, error) {
	return s.storeFn(ctx, in)
}

type stubUserService struct {
	signUpFn    func(ctx context.Context, in domain.SignUpInput) (*domain.AccountSession, error)
	signInFn    func(ctx context.Context, email, password string) (*domain.AccountSession, error)
	updateFn    func(ctx context.Context, userID int64, patch domain.UserPatch) (*domain.AccountSession, error)
	makeAdminFn func(ctx context.Context, userID int64) error
}

func (s *stubUserService) SignUp(ctx context.Context, in domain.SignUpInput) (*domain.AccountSession, error) {
	return s.signUpFn(ctx, in)
}

func (s *stubUserService) SignIn(ctx context.Context, email, password string) (*domain.AccountSession, error) {
	return s.signInFn(ctx, email, password)
}

func (s *stubUserService) Update(ctx context.Context, userID int64, patch domain.UserPatch) (*domain.AccountSession, error) {
	return s.updateFn(ctx, userID, patch)
}

func (s *stubUserService) MakeAdmin(ctx context.Context, userID int64) error {
	return s.makeAdminFn(ctx, userID)
}

type stubResetService struct {
	sendFn    func(ctx context.Context, email string) error
	confirmFn func(ctx context.Context, code string) error
	resetFn   func(ctx context.Context, email, newPassword string) error
}

func (s *stubResetService) SendResetCode(ctx context.Context, email string) error {
	return s.sendFn(ctx, email)
}

func (s *stubResetService) ConfirmResetCode(ctx context.Context, code string) error {
	return s.confirmFn(ctx, code)
}

func (s *stubResetService) ResetPassword(ctx context.Context, email, newPassword string) error {
	return s.resetFn(ctx, email, newPassword)
}

type stubTokens struct {
	identity *domain.Identity
}

func (s *stubTokens) Issue(*domain.User) (string, error) { return "token", nil }

func (s *stubTokens) Authenticate(string) *domain.Identity { return s.identity }

type stubCartService struct {
	getFn func(ctx context.Context, identity *domain.Identity) (*domain.Cart, error)
	addFn func(ctx context.Context, identity *domain.Identity, productID int64, quantity int) (*domain.Cart, error)
}

func (s *stubCartService) GetCart(ctx context.Context, identity *domain.Identity) (*domain.Cart, error) {
	return s.getFn(ctx, identity)
}

func (s *stubCartService) AddItem(ctx context.Context, identity *domain.Identity, productID int64, quantity int) (*domain.Cart, error) {
	return s.addFn(ctx, identity, productID, quantity)
}
