// Package app assembles the service: configuration, storage, messaging,
// services, and the HTTP engine, plus the run loop with graceful shutdown.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-reviews/internal/core/port"
	"github.com/arklim/social-platform-reviews/internal/infra/config"
	"github.com/arklim/social-platform-reviews/internal/infra/database"
	kafkainfra "github.com/arklim/social-platform-reviews/internal/infra/kafka"
	"github.com/arklim/social-platform-reviews/internal/infra/logger"
	"github.com/arklim/social-platform-reviews/internal/infra/mail"
	redisinfra "github.com/arklim/social-platform-reviews/internal/infra/redis"
	"github.com/arklim/social-platform-reviews/internal/infra/render"
	"github.com/arklim/social-platform-reviews/internal/infra/security"
	postgresrepo "github.com/arklim/social-platform-reviews/internal/repository/postgres"
	redisrepo "github.com/arklim/social-platform-reviews/internal/repository/redis"
	"github.com/arklim/social-platform-reviews/internal/transport/http/middleware"
	"github.com/arklim/social-platform-reviews/internal/transport/http/routes"
	"github.com/arklim/social-platform-reviews/internal/usecase"
)

type Application struct {
	cfg    *config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	pool   *pgxpool.Pool
	redis  *redisinfra.Client
}

func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	if err := database.Migrate(ctx, cfg.Postgres); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	argonCfg := security.Argon2Config{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  cfg.Argon2.SaltLength,
		KeyLength:   cfg.Argon2.KeyLength,
	}
	if err := security.ConfigureArgon2(argonCfg); err != nil {
		pool.Close()
		return nil, fmt.Errorf("configure argon2: %w", err)
	}

	redisClient, err := redisinfra.NewClient(cfg.Redis, log)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init redis: %w", err)
	}

	repos := postgresrepo.NewRepositories(pool)
	sessionStore := redisrepo.NewSessionStore(redisClient.Client(), cfg.Redis.SessionPrefix)

	rateLimitWindow := cfg.RateLimit.WindowDuration
	if rateLimitWindow <= 0 {
		rateLimitWindow = time.Minute
	}
	rateLimitStore := redisrepo.NewRateLimitStore(redisClient.Client(), redisrepo.SlidingWindowConfig{
		KeyPrefix: cfg.Redis.RateLimitPrefix,
		TTL:       rateLimitWindow * 2,
	})
	rateLimiter := middleware.NewRateLimiter(rateLimitStore, log)

	var eventPublisher port.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafkainfra.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Warn("failed to init kafka producer, using stub publisher", zap.Error(err))
			eventPublisher = kafkainfra.NewStubPublisher(log)
		} else {
			eventPublisher = kafkainfra.NewEventPublisher(producer, cfg.App, log)
			log.Info("kafka event publisher initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
		}
	} else {
		log.Info("kafka brokers not configured, using stub publisher")
		eventPublisher = kafkainfra.NewStubPublisher(log)
	}

	var mailer port.Mailer
	if cfg.Mail.Username != "" {
		smtpMailer, err := mail.NewSMTPMailer(cfg.Mail)
		if err != nil {
			_ = redisClient.Close()
			pool.Close()
			return nil, fmt.Errorf("init mailer: %w", err)
		}
		mailer = smtpMailer
	} else {
		log.Info("mail credentials not configured, logging outbound mail")
		mailer = mail.NewLoggingMailer(log)
	}

	renderer, err := render.NewTemplateRenderer(cfg.App.Templates)
	if err != nil {
		_ = redisClient.Close()
		pool.Close()
		return nil, fmt.Errorf("init renderer: %w", err)
	}

	tokenCodec := security.NewConfirmationTokenCodec(cfg.Token.Secret, cfg.Token.MaxAge)
	cookieSigner := security.NewSessionCookieSigner(cfg.Session.Secret)

	authService := usecase.NewAuthService(repos.Users, sessionStore, cfg.Session.Lifetime, log)
	registrationService := usecase.NewRegistrationService(repos.Users, tokenCodec, mailer, eventPublisher, cfg.App.BaseURL, log)
	reviewService := usecase.NewReviewService(repos.Reviews, eventPublisher, log)

	metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{})
	if err != nil {
		_ = redisClient.Close()
		pool.Close()
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	engine := routes.Register(routes.Dependencies{
		Config:       cfg,
		Logger:       log,
		RateLimiter:  rateLimiter,
		CookieSigner: cookieSigner,
		Renderer:     renderer,
		Metrics:      metrics,
		Database:     pool,
		Cache:        redisClient,
		Services: routes.ServiceSet{
			Auth:         authService,
			Registration: registrationService,
			Reviews:      reviewService,
		},
	})

	return &Application{
		cfg:    cfg,
		engine: engine,
		logger: log,
		pool:   pool,
		redis:  redisClient,
	}, nil
}

func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer func() {
		if a.pool != nil {
			a.pool.Close()
		}
	}()
	defer func() {
		if a.redis != nil {
			_ = a.redis.Close()
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting reviews API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}
