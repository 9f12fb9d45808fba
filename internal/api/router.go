package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/packagetracker/tracker/docs"
	"github.com/packagetracker/tracker/internal/api/handler"
	"github.com/packagetracker/tracker/internal/api/middleware"
	"github.com/packagetracker/tracker/internal/core/domain"
	"github.com/packagetracker/tracker/internal/core/ports"
)

// Dependencies are the services the router exposes over HTTP.
type Dependencies struct {
	Log       zerolog.Logger
	JWTSecret string

	Auth     ports.AuthService
	Tracking ports.TrackingService
	Saved    ports.SavedPackageService
	Refresh  handler.RefreshQueue

	// Checks are pinged by the readiness probe, keyed by dependency name.
	Checks map[string]handler.Check

	// Metrics receives the HTTP collectors and backs /metrics. Nil means
	// the prometheus default registry.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	registerer, gatherer := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	if deps.Metrics != nil {
		registerer, gatherer = deps.Metrics, deps.Metrics
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "tracker",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	trackingHandler := handler.NewTrackingHandler(deps.Tracking)
	savedHandler := handler.NewSavedPackageHandler(deps.Saved, deps.Refresh)
	authMiddleware := middleware.Auth(deps.JWTSecret)
	anyRole := middleware.RBAC(domain.RoleAdmin, domain.RoleUser)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	v1 := e.Group("/v1", authMiddleware, anyRole)

	// --- Profile ---
	v1.GET("/profile", authHandler.Profile)
	v1.PATCH("/profile", authHandler.UpdateProfile)
	v1.POST("/profile/password", authHandler.ChangePassword)

	// --- Tracking ---
	v1.GET("/tracking/:tracking_number", trackingHandler.Get)

	// --- Saved packages ---
	saved := v1.Group("/saved-packages")
	saved.GET("", savedHandler.List)
	saved.POST("", savedHandler.Create)
	saved.GET("/analytics", savedHandler.Analytics)
	saved.GET("/due-soon", savedHandler.DueSoon)
	saved.GET("/stream", savedHandler.Stream)
	saved.POST("/refresh", savedHandler.Refresh, middleware.RBAC(domain.RoleAdmin))
	saved.GET("/:tracking_number", savedHandler.Get)
	saved.PATCH("/:tracking_number", savedHandler.Rename)
	saved.DELETE("/:tracking_number", savedHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
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
