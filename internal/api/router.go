package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/storefront/commerce-api/docs"
	"github.com/storefront/commerce-api/internal/api/handler"
	"github.com/storefront/commerce-api/internal/api/middleware"
	"github.com/storefront/commerce-api/internal/core/domain"
	"github.com/storefront/commerce-api/internal/core/ports"
)

// Dependencies are the services the HTTP layer is wired to.
type Dependencies struct {
	Catalog ports.CatalogService
	Users   ports.UserService
	Resets  ports.PasswordResetService
	Carts   ports.CartService
	Tokens  ports.TokenAuthenticator
	Guard   ports.AccessGuard

	// Readiness lists the dependencies probed by /health/ready.
	Readiness map[string]handler.PingFunc

	// Registerer and Gatherer default to the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	registerer, gatherer := deps.Registerer, deps.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "storefront",
		Registerer: registerer,
	}))
	e.Use(middleware.Authenticate(deps.Tokens))

	// --- Role guards ---
	members := middleware.RequireRoles(deps.Guard, domain.RoleAdmin, domain.RoleCustomer)
	admins := middleware.RequireRoles(deps.Guard, domain.RoleAdmin)

	// --- Catalog ---
	catalog := handler.NewCatalogHandler(deps.Catalog)
	products := e.Group("/products")
	products.GET("/get-one", catalog.GetOne)
	products.GET("/search", catalog.Search)
	products.GET("/best-seller", catalog.BestSellers)
	products.GET("/new-arrival", catalog.NewArrivals)
	products.GET("/filter", catalog.Filter)
	products.POST("/store", catalog.Store, members)

	// --- Accounts ---
	users := handler.NewUserHandler(deps.Users, deps.Resets, deps.Tokens)
	accounts := e.Group("/users")
	accounts.POST("/sign-up", users.SignUp)
	accounts.POST("/sign-in", users.SignIn)
	accounts.GET("/check-authorization", users.CheckAuthorization)
	accounts.PUT("/update", users.ReplaceAccount, members)
	accounts.PATCH("/update", users.PatchAccount, members)
	accounts.PATCH("/:id/make-admin", users.MakeAdmin, admins)
	accounts.POST("/send-reset-code", users.SendResetCode)
	accounts.POST("/confirm-reset-code", users.ConfirmResetCode)
	accounts.POST("/reset-password", users.ResetPassword)

	// --- Carts ---
	carts := handler.NewCartHandler(deps.Carts)
	cartRoutes := e.Group("/carts", members)
	cartRoutes.GET("/get-one", carts.GetOne)
	cartRoutes.POST("/items", carts.AddItem)

	// --- Health probes and tooling (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)                         // liveness
	e.GET("/health/ready", handler.NewReadinessHandler(deps.Readiness).Readiness) // readiness
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
