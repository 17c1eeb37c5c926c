// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/baytalsudani/console/internal/admin"
	"github.com/baytalsudani/console/internal/auth"
	"github.com/baytalsudani/console/internal/catalog"
	"github.com/baytalsudani/console/internal/config"
	"github.com/baytalsudani/console/internal/core"
	"github.com/baytalsudani/console/internal/health"
	"github.com/baytalsudani/console/internal/metrics"
	"github.com/baytalsudani/console/internal/middleware"
	"github.com/baytalsudani/console/internal/moderation"
	"github.com/baytalsudani/console/internal/server"
	"github.com/baytalsudani/console/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting console",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
		"strategy", cfg.Auth.Strategy,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	msgs := core.NewMessages(cfg.App.Locale)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	sessions, err := auth.NewSessionManager(cfg.Session, redis.Client)
	if err != nil {
		return err
	}
	logger.Info("session manager initialized",
		"algorithm", "ES256",
		"key_id", sessions.KeyID(),
	)

	be, err := newBackend(ctx, cfg, msgs, logger)
	if err != nil {
		return err
	}

	guard := auth.NewGuard(be.active)
	authHandler := auth.NewHandler(auth.NewService(be.authenticator, sessions), sessions, msgs)
	userHandler := user.NewHandler(be.users, msgs)
	catalogHandler := catalog.NewHandler(be.catalog, msgs)
	moderationHandler := moderation.NewHandler(be.moderation, msgs)

	adminConfig := be.adminConfig
	adminConfig.Stats = be.stats
	adminConfig.Recent = be.catalog
	adminConfig.Messages = msgs
	adminConfig.RedisStats = redis.PoolStats
	adminConfig.RedisPing = redis.Ping
	adminHandler := admin.NewHandler(adminConfig)

	deps := append(be.dependencies, health.Dependency{Name: "redis", Checker: redis})
	healthHandler := health.NewHandler(deps...)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	portalLimit, loginLimit := middleware.Limits(cfg.RateLimit)
	loginLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Name:     "login",
		Limit:    loginLimit,
		KeyFunc:  middleware.KeyByIPAndEndpoint,
		FailOpen: true,
		Redirect: func(r *http.Request) string { return r.URL.Path },
		Messages: msgs,
	}).Handler
	portalLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Name:     "portal",
		Limit:    portalLimit,
		KeyFunc:  middleware.KeyByUser,
		FailOpen: true,
		Messages: msgs,
	}).Handler

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Tracing)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)
	if cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path, metrics.Handler())
	}
	router.Get("/.well-known/jwks.json", sessions.JWKSHandler())
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, auth.LoginPath(auth.RoleAdmin), http.StatusSeeOther)
	})

	adminOnly := middleware.RequireRole(guard, sessions, auth.RoleAdmin, msgs)
	merchantOnly := middleware.RequireRole(guard, sessions, auth.RoleMerchant, msgs)

	router.Route("/admin", func(r chi.Router) {
		authHandler.RegisterRoutes(r, auth.RoleAdmin, loginLimiter, adminOnly)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Use(portalLimiter)

			adminHandler.RegisterRoutes(r)
			userHandler.RegisterAdminRoutes(r)
			catalogHandler.RegisterAdminRoutes(r)
			moderationHandler.RegisterRoutes(r)
		})
	})

	router.Route("/merchant", func(r chi.Router) {
		authHandler.RegisterRoutes(r, auth.RoleMerchant, loginLimiter, merchantOnly)

		r.Group(func(r chi.Router) {
			r.Use(merchantOnly)
			r.Use(portalLimiter)

			userHandler.RegisterMerchantRoutes(r)
			catalogHandler.RegisterMerchantRoutes(r)
			if be.subscription != nil {
				be.subscription.RegisterRoutes(r)
			}
		})
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := be.close(); err != nil {
		logger.Error("backend close error", "error", err)
	}

	logger.Info("console stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
