package api

import (
	"fmt"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/99minutos/user-management/internal/api/handler"
	"github.com/99minutos/user-management/internal/api/middleware"
	"github.com/99minutos/user-management/internal/core/domain"
	"github.com/99minutos/user-management/internal/core/ports"
	"github.com/99minutos/user-management/internal/infrastructure/http/handlers"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Logger      zerolog.Logger
	Tokens      ports.TokenService
	AuthService ports.AuthService
	UserService ports.UserService

	// Readiness lists the dependencies checked by /health/ready.
	Readiness []handlers.Pinger

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	// EnableDocs mounts Swagger UI at /docs.
	EnableDocs bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	promMW, err := echoprometheus.MiddlewareConfig{
		Subsystem:  "usermgmt",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/docs")
		},
	}.ToMiddleware()
	if err != nil {
		return nil, fmt.Errorf("prometheus middleware: %w", err)
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(promMW)
	e.Use(commitErrors)

	guards := middleware.NewGuards(deps.Tokens)
	authHandler := handler.NewAuthHandler(deps.AuthService, deps.UserService)
	userHandler := handler.NewUserHandler(deps.UserService, domain.RoleAdmin)
	owner := middleware.ParamOwner("id")

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/change-password", authHandler.ChangePassword, guards.Authenticate())
	auth.GET("/me", authHandler.Me, guards.Authenticate())

	// --- User routes ---
	users := api.Group("/users")
	users.GET("", userHandler.List, guards.RequireAnyRole())
	users.POST("", userHandler.Create, guards.RequireRole(domain.RoleAdmin))
	users.GET("/:id", userHandler.Get, guards.RequireRoleOrSelf([]domain.Role{domain.RoleAdmin, domain.RoleManager}, owner))
	users.PUT("/:id", userHandler.Update, guards.RequireRoleOrSelf([]domain.Role{domain.RoleAdmin}, owner))
	users.DELETE("/:id", userHandler.Delete, guards.RequireRole(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(deps.Readiness...).Readiness)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	if deps.EnableDocs {
		e.GET("/docs/*", echoSwagger.WrapHandler)
	}

	return e, nil
}

// commitErrors renders handler errors through the error handler so the
// metrics and logging middleware above it observe the final status code.
func commitErrors(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := next(c); err != nil {
			c.Error(err)
		}
		return nil
	}
}
