package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/storefront/commerce-api/internal/api/middleware"
	"github.com/storefront/commerce-api/internal/core/domain"
)

func TestCartHandler_GetOne_PricesLines(t *testing.T) {
	carts := &stubCartService{
		getFn: func(ctx context.Context, identity *domain.Identity) (*domain.Cart, error) {
			if identity == nil || identity.UserID != 3 {
				t.Fatalf("unexpected identity: %+v", identity)
			}
			return &domain.Cart{ID: 1, UserID: 3, Items: []domain.CartItem{
				{ID: 1, Product: sampleProduct(&domain.Promotion{ID: 1, DiscountRate: 10}), Quantity: 2},
			}}, nil
		},
	}
	c, rec := newTestContext(http.MethodGet, "/carts/get-one", "")
	c.Set(middleware.IdentityKey, &domain.Identity{UserID: 3, RoleOrdinal: 2})

	if err := NewCartHandler(carts).GetOne(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["total"] != "180" {
		t.Fatalf("expected total 180, got %v", resp["total"])
	}
	items := resp["items"].([]any)
	line := items[0].(map[string]any)
	if line["unit_price"] != "90" || line["subtotal"] != "180" {
		t.Fatalf("unexpected line: %v", line)
	}
}

func TestCartHandler_GetOne_PropagatesErrors(t *testing.T) {
	carts := &stubCartService{
		getFn: func(ctx context.Context, identity *domain.Identity) (*domain.Cart, error) {
			return nil, domain.Errorf(domain.ErrNotFound, "This user has no shopping cart!")
		},
	}
	c, _ := newTestContext(http.MethodGet, "/carts/get-one", "")

	if err := NewCartHandler(carts).GetOne(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCartHandler_AddItem(t *testing.T) {
	carts := &stubCartService{
		addFn: func(ctx context.Context, identity *domain.Identity, productID int64, quantity int) (*domain.Cart, error) {
			if productID != 5 || quantity != 2 {
				t.Fatalf("unexpected item: %d x%d", productID, quantity)
			}
			return &domain.Cart{ID: 1, UserID: identity.UserID}, nil
		},
	}
	c, rec := newTestContext(http.MethodPost, "/carts/items", `{"product_id":5,"quantity":2}`)
	c.Set(middleware.IdentityKey, &domain.Identity{UserID: 3, RoleOrdinal: 2})

	if err := NewCartHandler(carts).AddItem(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCartHandler_AddItem_RejectsZeroQuantity(t *testing.T) {
	carts := &stubCartService{
		addFn: func(ctx context.Context, identity *domain.Identity, productID int64, quantity int) (*domain.Cart, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, _ := newTestContext(http.MethodPost, "/carts/items", `{"product_id":5,"quantity":0}`)

	if err := NewCartHandler(carts).AddItem(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
