// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Silo HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Bootstrap the default roles and the first administrator.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
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

	"github.com/taibuivan/silo/internal/api"
	"github.com/taibuivan/silo/internal/auth"
	"github.com/taibuivan/silo/internal/core/comment"
	"github.com/taibuivan/silo/internal/core/document"
	"github.com/taibuivan/silo/internal/core/item"
	"github.com/taibuivan/silo/internal/core/storage"
	"github.com/taibuivan/silo/internal/core/tag"
	"github.com/taibuivan/silo/internal/platform/config"
	"github.com/taibuivan/silo/internal/platform/constants"
	"github.com/taibuivan/silo/internal/platform/migration"
	pgstore "github.com/taibuivan/silo/internal/platform/postgres"
	redisstore "github.com/taibuivan/silo/internal/platform/redis"
	"github.com/taibuivan/silo/internal/platform/sec"
	"github.com/taibuivan/silo/internal/users/role"
	"github.com/taibuivan/silo/internal/users/user"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
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

	// ── 6. Security Services ──────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(
		cfg.JWTSecret,
		cfg.JWTAlgorithm,
		constants.AuthIssuer,
		cfg.AccessTokenLifetime(),
		cfg.RefreshTokenLifetime(),
	)
	must(log, err, "initialize token service")

	verifier := auth.NewLDAPVerifier(auth.LDAPConfig{
		ServerURI:       cfg.LDAPServerURI,
		BaseDN:          cfg.LDAPBaseDN,
		UserDNTemplate:  cfg.LDAPUserDNTemplate,
		UserFilter:      cfg.LDAPUserFilter,
		BindDN:          cfg.LDAPBindDN,
		BindPassword:    cfg.LDAPBindPassword,
		UseTLS:          cfg.LDAPUseTLS,
		SkipTLSVerify:   cfg.LDAPSkipTLSVerify,
		ConnectTimeout:  time.Duration(cfg.LDAPConnectTimeout) * time.Second,
		ReceiveTimeout:  time.Duration(cfg.LDAPReceiveTimeout) * time.Second,
		UsernameAttr:    cfg.LDAPUsernameAttr,
		MailAttr:        cfg.LDAPMailAttr,
		DisplayNameAttr: cfg.LDAPDisplayNameAttr,
		GroupsAttr:      cfg.LDAPGroupsAttr,
		AllowedGroups:   cfg.LDAPAllowedGroups,
	}, log)

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
	roleService := role.NewService(role.NewPostgresRepository(pool), log)
	userService := user.NewService(user.NewPostgresRepository(pool), role.NewPostgresRepository(pool), log)

	tagService := tag.NewService(tag.NewPostgresRepository(pool), log)
	storageService := storage.NewService(storage.NewPostgresRepository(pool), log)

	// The storage service resolves pool names for silo ID labels; the tag
	// service backs tag attachment lookups.
	itemService := item.NewService(item.NewPostgresRepository(pool), storageService, tagService, log)

	commentService := comment.NewService(comment.NewPostgresRepository(pool), log)

	fileStore, err := document.NewDiskStore(cfg.DocumentUploadDir)
	must(log, err, "prepare document upload directory")
	documentService := document.NewService(document.NewPostgresRepository(pool), fileStore, cfg.DocumentMaxFileSize, log)

	authService := auth.NewService(verifier, tokenService, userService, auth.NewLoginThrottle(rdb))

	// ── 9. Bootstrap ──────────────────────────────────────────────────────
	// Idempotent: ensures the "user" and "admin" roles exist and that at
	// least one account holds the admin role before traffic is served.
	must(log, roleService.EnsureDefaultRoles(startupCtx), "ensure default roles")
	must(log, userService.EnsureFirstAdmin(startupCtx, cfg.FirstAdminUser), "ensure first admin")

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, cfg.RefreshTokenLifetime()),
		User:      user.NewHandler(userService),
		Role:      role.NewHandler(roleService),
		Item:      item.NewHandler(itemService),
		Tag:       tag.NewHandler(tagService),
		Storage:   storage.NewHandler(storageService),
		Comment:   comment.NewHandler(commentService),
		Document:  document.NewHandler(documentService),
	}

	// Server context outlives startup: it stops the rate limiter's cleanup
	// goroutine on shutdown.
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, tokenService, userService, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
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
