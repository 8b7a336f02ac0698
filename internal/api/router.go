package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/pickmymaid/content-api/docs"
	"github.com/pickmymaid/content-api/internal/api/handler"
	"github.com/pickmymaid/content-api/internal/api/middleware"
	"github.com/pickmymaid/content-api/internal/core/domain"
	"github.com/pickmymaid/content-api/internal/core/ports"
)

// Services are the core use cases the HTTP layer exposes.
type Services struct {
	Auth    ports.AuthService
	Tokens  ports.TokenService
	Blog    ports.BlogService
	Gallery ports.GalleryService
	Contact ports.ContactService
}

// Options tune the HTTP surface.
type Options struct {
	Logger zerolog.Logger
	// UploadDir is served under /<UploadURLPrefix>.
	UploadDir       string
	UploadURLPrefix string
	// BodyLimit uses echo's size syntax, e.g. "50M".
	BodyLimit    string
	HealthChecks map[string]handler.HealthCheck
	// Registry receives the HTTP metrics; nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Logger))
	e.Use(metricsMiddleware(opts.Registry))
	if opts.BodyLimit != "" {
		e.Use(echomiddleware.BodyLimit(opts.BodyLimit))
	}

	// --- Observability (no auth required) ---
	health := handler.NewHealthHandler(opts.HealthChecks)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", metricsHandler(opts.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if opts.UploadDir != "" {
		prefix := opts.UploadURLPrefix
		if prefix == "" {
			prefix = "images"
		}
		e.Static("/"+prefix, opts.UploadDir)
	}

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	adminHandler := handler.NewAdminHandler(svc.Auth)
	blogHandler := handler.NewBlogHandler(svc.Blog)
	galleryHandler := handler.NewGalleryHandler(svc.Gallery)
	contactHandler := handler.NewContactHandler(svc.Contact)

	authRequired := middleware.Auth(svc.Tokens)
	anyAdmin := middleware.RBAC(domain.RoleSuperAdmin, domain.RoleAdmin)
	superAdmin := middleware.RBAC(domain.RoleSuperAdmin)

	v1 := e.Group("/api/v1")

	// --- Customer auth ---
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forget-password", authHandler.ForgetPassword)
	auth.POST("/reset-password/:token", authHandler.ResetPassword)

	// --- Admin accounts ---
	admin := v1.Group("/admin")
	admin.POST("/login", adminHandler.Login)
	admin.POST("/logout", adminHandler.Logout, authRequired)
	admin.POST("/register", adminHandler.Register, authRequired, superAdmin)
	admin.PATCH("/:id/role", adminHandler.ToggleRole, authRequired, superAdmin)
	admin.DELETE("/:id", adminHandler.Deactivate, authRequired, superAdmin)

	// --- Blog ---
	blog := v1.Group("/blog")
	blog.POST("", blogHandler.Create, authRequired, anyAdmin)
	blog.PUT("/edit/:slug", blogHandler.Edit, authRequired, anyAdmin)
	blog.DELETE("/:slug", blogHandler.Delete, authRequired, anyAdmin)
	blog.PUT("/delete-comment", blogHandler.DeleteComment, authRequired, anyAdmin)
	blog.GET("/blogs-admin", blogHandler.ListAll, authRequired, anyAdmin)
	blog.PUT("/comment", blogHandler.AddComment, authRequired)
	blog.PUT("/like", blogHandler.ToggleLike, authRequired)
	blog.GET("/page/:page", blogHandler.List)
	blog.GET("/id/:slug", blogHandler.Get, middleware.OptionalAuth(svc.Tokens))

	// --- Gallery ---
	gallery := v1.Group("/gallery")
	gallery.POST("", galleryHandler.Upload, authRequired, anyAdmin)
	gallery.GET("", galleryHandler.List)
	gallery.DELETE("/:id", galleryHandler.Delete, authRequired, anyAdmin)

	// --- Contact ---
	contact := v1.Group("/contact")
	contact.POST("", contactHandler.Submit)
	contact.GET("", contactHandler.List, authRequired, anyAdmin)

	return e
}

// requestLogger feeds echo's request logger into zerolog.
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
			if v.Error != nil || v.Status >= 500 {
				ev = log.Error().Err(v.Error)
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

func metricsMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	cfg := echoprometheus.MiddlewareConfig{
		Namespace: "content",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}
	if reg != nil {
		cfg.Registerer = reg
	}
	return echoprometheus.NewMiddlewareWithConfig(cfg)
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
