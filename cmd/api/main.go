// Copyright (c) 2026 TeachyAI. All rights reserved.

// Command api is the entry point for the TeachyAI HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/teachyai/teachy/internal/api"
	"github.com/teachyai/teachy/internal/content"
	"github.com/teachyai/teachy/internal/lesson"
	"github.com/teachyai/teachy/internal/platform/config"
	"github.com/teachyai/teachy/internal/platform/constants"
	"github.com/teachyai/teachy/internal/platform/migration"
	pgstore "github.com/teachyai/teachy/internal/platform/postgres"
	redisstore "github.com/teachyai/teachy/internal/platform/redis"
	"github.com/teachyai/teachy/internal/platform/sec"
	"github.com/teachyai/teachy/internal/users/account"
	"github.com/teachyai/teachy/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "teachy"))
	slog.SetDefault(log)

	log.Info("[TeachyAI] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// Load fails hard on any missing secret. There are no fallback values.
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "teachy"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Application context lives until shutdown; background workers (rate
	// limiter janitor) hang off it.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────

	// Users: auth
	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(pool)
	resetTokenRepository := auth.NewResetTokenRepository(rdb)
	otpCodeRepository := auth.NewOTPCodeRepository(rdb)
	profileRepository := account.NewProfileRepository(pool)
	otpSender := auth.NewLogOTPSender(log)

	authService := auth.NewService(
		userRepository,
		profileRepository,
		sessionRepository,
		resetTokenRepository,
		otpCodeRepository,
		otpSender,
		jwtSvc,
		log,
	)
	authHandler := auth.NewHandler(authService)

	// Lessons
	lessonRepository := lesson.NewRepository(pool)
	deepseekClient := lesson.NewDeepSeekClient(cfg.DeepSeekBaseURL, cfg.DeepSeekAPIKey, nil)
	lessonService := lesson.NewService(lessonRepository, deepseekClient, log)
	lessonHandler := lesson.NewHandler(lessonService)

	// Users: account (depends on auth storage and lesson purge)
	accountService := account.NewService(
		profileRepository,
		userRepository,
		sessionRepository,
		lessonService,
		log,
	)
	accountHandler := account.NewHandler(accountService)

	// Content catalogue
	contentRepository := content.NewRepository(pool)
	contentService := content.NewService(contentRepository, log)
	contentHandler := content.NewHandler(contentService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Account:   accountHandler,
		Content:   contentHandler,
		Lesson:    lessonHandler,
	}

	server := api.NewServer(appCtx, cfg, log, jwtSvc, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
