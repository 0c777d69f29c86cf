package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/storefront/commerce-api/internal/api/middleware"
	"github.com/storefront/commerce-api/internal/core/domain"
	"github.com/storefront/commerce-api/internal/core/ports"
)

// CartHandler serves the caller's own shopping cart.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

type addCartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity"   validate:"required,gt=0"`
}

type cartItemView struct {
	ID        int64           `json:"id"`
	Quantity  int             `json:"quantity"`
	Product   productSummary  `json:"product"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type cartView struct {
	ID     int64           `json:"id"`
	UserID int64           `json:"user_id"`
	Items  []cartItemView  `json:"items"`
	Total  decimal.Decimal `json:"total"`
}

func toCartView(cart *domain.Cart) cartView {
	items := make([]cartItemView, len(cart.Items))
	for i, it := range cart.Items {
		items[i] = cartItemView{
			ID:        it.ID,
			Quantity:  it.Quantity,
			Product:   toProductSummary(it.Product),
			UnitPrice: it.UnitPrice(),
			Subtotal:  it.Subtotal(),
		}
	}
	return cartView{ID: cart.ID, UserID: cart.UserID, Items: items, Total: cart.Total()}
}

// GetOne handles GET /carts/get-one.
//
// @Summary      Get the caller's cart
// @Tags         carts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartView
// @Failure      403  {object}  statusResponse
// @Failure      404  {object}  statusResponse
// @Router       /carts/get-one [get]
func (h *CartHandler) GetOne(c echo.Context) error {
	cart, err := h.service.GetCart(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartView(cart))
}

// AddItem handles POST /carts/items.
//
// @Summary      Add a product to the caller's cart
// @Tags         carts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addCartItemRequest  true  "Product and quantity"
// @Success      200   {object}  cartView
// @Failure      400   {object}  statusResponse
// @Failure      403   {object}  statusResponse
// @Failure      404   {object}  statusResponse
// @Router       /carts/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	var req addCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cart, err := h.service.AddItem(c.Request().Context(), middleware.IdentityFrom(c), req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartView(cart))
}
