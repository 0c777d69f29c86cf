package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/storefront/commerce-api/internal/core/domain"
	"github.com/storefront/commerce-api/internal/core/ports"
	"github.com/storefront/commerce-api/internal/pkg/metrics"
)

// CatalogHandler handles HTTP requests for catalog reads and product creation.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// GetOne handles GET /products/get-one.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Param        id   query     int  true  "Product id"
// @Success      200  {object}  productDetail
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /products/get-one [get]
func (h *CatalogHandler) GetOne(c echo.Context) error {
	id, err := strconv.ParseInt(c.QueryParam("id"), 10, 64)
	if err != nil {
		return domain.Errorf(domain.ErrInvalidInput, "id must be an integer")
	}

	product, err := h.service.GetProduct(c.Request().Context(), id)
	countView("get_one", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductDetail(*product))
}

// Search handles GET /products/search.
//
// @Summary      Search products by name
// @Tags         products
// @Produce      json
// @Param        query  query     string  true  "Free text; spaces match any run of characters"
// @Success      200    {object}  pagedProducts[productSummary]
// @Failure      400    {object}  map[string]any
// @Failure      404    {object}  map[string]any
// @Router       /products/search [get]
func (h *CatalogHandler) Search(c echo.Context) error {
	page, err := h.service.Search(c.Request().Context(), c.QueryParam("query"))
	countView("search", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagedProducts[productSummary]{
		Pages:    page.PageCount,
		Products: toProductSummaries(page.Items),
	})
}

// BestSellers handles GET /products/best-seller.
//
// @Summary      Best-selling products
// @Tags         products
// @Produce      json
// @Success      200  {array}   productSummary
// @Failure      404  {object}  map[string]any
// @Router       /products/best-seller [get]
func (h *CatalogHandler) BestSellers(c echo.Context) error {
	products, err := h.service.BestSellers(c.Request().Context())
	countView("best_seller", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductSummaries(products))
}

// NewArrivals handles GET /products/new-arrival.
//
// @Summary      Most recently added products
// @Tags         products
// @Produce      json
// @Success      200  {array}   productSummary
// @Failure      404  {object}  map[string]any
// @Router       /products/new-arrival [get]
func (h *CatalogHandler) NewArrivals(c echo.Context) error {
	products, err := h.service.NewArrivals(c.Request().Context())
	countView("new_arrival", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductSummaries(products))
}

// Filter handles GET /products/filter. Price bounds are exclusive.
//
// @Summary      Filter and page the catalog
// @Tags         products
// @Produce      json
// @Param        query          query     string  false  "Name text"
// @Param        category_id    query     int     false  "Category id"
// @Param        type_id        query     int     false  "Type id"
// @Param        minimum_price  query     number  false  "Price strictly greater than"
// @Param        maximum_price  query     number  false  "Price strictly less than"
// @Param        page           query     int     false  "Page, from 1"
// @Param        size           query     int     false  "Page size (default 12)"
// @Success      200            {object}  pagedProducts[productDetail]
// @Failure      400            {object}  map[string]any
// @Router       /products/filter [get]
func (h *CatalogHandler) Filter(c echo.Context) error {
	q, err := filterQuery(c)
	if err != nil {
		return err
	}

	page, err := h.service.Filter(c.Request().Context(), q)
	if err == nil && len(page.Items) == 0 {
		metrics.CatalogQueriesTotal.WithLabelValues("filter", "empty").Inc()
	} else {
		countView("filter", err)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagedProducts[productDetail]{
		Pages:    page.PageCount,
		Products: toProductDetails(page.Items),
	})
}

// Store handles POST /products/store.
//
// @Summary      Create a product with its inventory
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      storeProductRequest  true  "Product and inventory"
// @Success      201   {object}  productDetail
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      500   {object}  map[string]any
// @Router       /products/store [post]
func (h *CatalogHandler) Store(c echo.Context) error {
	var req storeProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.service.StoreProduct(c.Request().Context(), toNewProductInput(req))
	if err != nil {
		return err
	}
	metrics.ProductsStoredTotal.Inc()
	return c.JSON(http.StatusCreated, toProductDetail(*product))
}

func countView(view string, err error) {
	result := "ok"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		result = "empty"
	case err != nil:
		result = "error"
	}
	metrics.CatalogQueriesTotal.WithLabelValues(view, result).Inc()
}
