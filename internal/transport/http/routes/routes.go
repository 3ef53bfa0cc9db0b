package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-reviews/internal/core/port"
	"github.com/arklim/social-platform-reviews/internal/infra/config"
	"github.com/arklim/social-platform-reviews/internal/infra/security"
	"github.com/arklim/social-platform-reviews/internal/transport/http/handlers"
	"github.com/arklim/social-platform-reviews/internal/transport/http/middleware"
	"github.com/arklim/social-platform-reviews/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Auth         *usecase.AuthService
	Registration *usecase.RegistrationService
	Reviews      *usecase.ReviewService
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker exposes readiness behaviour for cache backends.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config       *config.AppConfig
	Logger       *zap.Logger
	RateLimiter  *middleware.RateLimiter
	Services     ServiceSet
	CookieSigner *security.SessionCookieSigner
	Renderer     port.Renderer
	Metrics      *middleware.HTTPMetrics
	Database     DatabaseChecker
	Cache        CacheChecker
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	checks := make(map[string]handlers.DependencyCheck, 2)
	if deps.Database != nil {
		checks["database"] = deps.Database.Ping
	}
	if deps.Cache != nil {
		checks["redis"] = deps.Cache.HealthCheck
	}
	healthHandler := handlers.NewHealthHandler(checks)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	secureCookie := deps.Config.App.Env == "production"
	sessionConfig := middleware.SessionConfig{
		Auth:         deps.Services.Auth,
		Signer:       deps.CookieSigner,
		CookieName:   deps.Config.Session.CookieName,
		SecureCookie: secureCookie,
		Logger:       deps.Logger,
	}
	requireSession := middleware.RequireSession(sessionConfig)

	pageHandler := handlers.NewPageHandler(deps.Renderer, deps.Logger)
	r.GET("/", pageHandler.Home)
	r.GET("/about", pageHandler.About)
	r.GET("/projects", pageHandler.Projects)
	r.GET("/login", pageHandler.LoginPage)
	r.GET("/register", pageHandler.RegisterPage)

	registrationHandler := handlers.NewRegistrationHandler(deps.Services.Registration, deps.Logger)
	r.POST("/register", withRateLimit(deps, "register_ip", deps.Config.RateLimit.RegisterMaxAttempts, registrationHandler.Register)...)
	r.GET("/confirm_email/:token", registrationHandler.ConfirmEmail)

	authHandler := handlers.NewAuthHandler(
		deps.Services.Auth,
		deps.CookieSigner,
		deps.Config.Session.CookieName,
		secureCookie,
		deps.Logger,
	)
	r.POST("/login", withRateLimit(deps, "login_ip", deps.Config.RateLimit.LoginMaxAttempts, authHandler.Login)...)
	r.GET("/logout", requireSession, authHandler.Logout)

	reviewHandler := handlers.NewReviewHandler(deps.Services.Reviews, deps.Logger)
	opinions := r.Group("")
	opinions.Use(requireSession)
	opinions.GET("/opinion", reviewHandler.List)
	opinions.POST("/opinion", reviewHandler.Create)
	opinions.POST("/edit_opinion/:id", reviewHandler.Edit)
	opinions.POST("/delete_opinion/:id", reviewHandler.Delete)

	return r
}

func withRateLimit(deps Dependencies, name string, limit int, handler gin.HandlerFunc) []gin.HandlerFunc {
	if deps.RateLimiter == nil || limit <= 0 {
		return []gin.HandlerFunc{handler}
	}

	window := deps.Config.RateLimit.WindowDuration
	if window <= 0 {
		window = time.Minute
	}

	rule := middleware.RateLimitRule{
		Name:       name,
		Limit:      limit,
		Window:     window,
		Identifier: middleware.ClientIPIdentifier(),
	}
	return []gin.HandlerFunc{deps.RateLimiter.Limit(rule), handler}
}
