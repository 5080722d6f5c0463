package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/storefront/catalog-api/docs"
	"github.com/storefront/catalog-api/internal/api/handler"
	"github.com/storefront/catalog-api/internal/api/middleware"
	"github.com/storefront/catalog-api/internal/core/domain"
	"github.com/storefront/catalog-api/internal/core/ports"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Logger     zerolog.Logger
	Tokens     ports.TokenVerifier
	Auth       ports.AuthService
	Products   ports.ProductService
	Categories ports.CategoryService

	// LoginLimiter may be nil to disable login throttling.
	LoginLimiter ports.LoginLimiter

	// HealthChecks are pinged by the readiness probe, keyed by name.
	HealthChecks map[string]handler.Pinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(deps.Logger))
	e.Use(middleware.HTTPMetrics())
	e.Use(middleware.Authenticate(deps.Tokens))

	// --- Health probes, metrics and docs (no auth required) ---
	health := handler.NewHealthHandler(deps.HealthChecks)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	var loginMiddleware []echo.MiddlewareFunc
	if deps.LoginLimiter != nil {
		loginMiddleware = append(loginMiddleware, middleware.ThrottleLogin(deps.LoginLimiter, deps.Logger))
	}
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login, loginMiddleware...)

	// --- Catalog routes: any authenticated role reads, handlers guard writes ---
	api := e.Group("/api", middleware.RequireRoles(domain.RoleUser, domain.RoleAdmin))

	products := handler.NewProductHandler(deps.Products)
	api.GET("/products", products.List)
	api.GET("/products/:id", products.Get)
	api.POST("/products", products.Create)
	api.PUT("/products/:id", products.Replace)
	api.PATCH("/products/:id", products.Patch)
	api.DELETE("/products/:id", products.Delete)

	categories := handler.NewCategoryHandler(deps.Categories)
	api.GET("/categories", categories.List)
	api.GET("/categories/:id", categories.Get)
	api.POST("/categories", categories.Create)
	api.PUT("/categories/:id", categories.Replace)
	api.PATCH("/categories/:id", categories.Patch)
	api.DELETE("/categories/:id", categories.Delete)

	return e
}

// requestLogger emits one zerolog access-log entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt = evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("route", v.RoutePath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP)
			if p := domain.PrincipalFromContext(c.Request().Context()); p != nil {
				evt = evt.Int64("user_id", p.ID)
			}
			evt.Msg("request")
			return nil
		},
	})
}
