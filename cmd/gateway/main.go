// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command gateway is the entry point for the authentication gateway.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Build the backend client and subscribe the audit logger.
//  4. Connect to PostgreSQL and run migrations (only with DATABASE_URL).
//  5. Connect to Redis (only with REDIS_URL).
//  6. Wire services and HTTP handlers.
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

	"github.com/taibuivan/authgate/internal/admin"
	"github.com/taibuivan/authgate/internal/api"
	"github.com/taibuivan/authgate/internal/auth"
	"github.com/taibuivan/authgate/internal/backend"
	"github.com/taibuivan/authgate/internal/bridge"
	"github.com/taibuivan/authgate/internal/guard"
	"github.com/taibuivan/authgate/internal/identity"
	"github.com/taibuivan/authgate/internal/platform/config"
	"github.com/taibuivan/authgate/internal/platform/constants"
	"github.com/taibuivan/authgate/internal/platform/migration"
	pgstore "github.com/taibuivan/authgate/internal/platform/postgres"
	redisstore "github.com/taibuivan/authgate/internal/platform/redis"
	"github.com/taibuivan/authgate/internal/platform/sec"
	"github.com/taibuivan/authgate/internal/redirect"
	"github.com/taibuivan/authgate/internal/session"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

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
		slog.String("mount_prefix", cfg.MountPrefix),
		slog.Bool("service_role_configured", cfg.BackendServiceRoleKey != ""),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Backend ────────────────────────────────────────────────────────
	events := backend.NewEvents()
	unsubscribe := events.Subscribe(func(event backend.Event) {
		log.Info("auth_event",
			slog.String("type", string(event.Type)),
			slog.String("user_id", event.UserID),
			slog.Time("at", event.At),
		)
	})
	defer unsubscribe()

	client := backend.NewClient(backend.Config{
		BaseURL:        cfg.BackendURL,
		AnonKey:        cfg.BackendAnonKey,
		ServiceRoleKey: cfg.BackendServiceRoleKey,
		Events:         events,
	})

	checks := []api.HealthCheck{{Name: "backend", Check: client.Ping}}

	// ── 4. PostgreSQL (optional direct profile directory) ─────────────────
	var profiles identity.ProfileStore = client
	if cfg.DatabaseURL != "" {
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		profiles = identity.NewPostgresDirectory(pool)
		checks = append(checks, api.HealthCheck{Name: "postgres", Check: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		}})
	}

	// ── 5. Redis (optional shared flow store) ─────────────────────────────
	var flows auth.FlowStore = auth.NewMemoryFlowStore()
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}()

		flows = auth.NewRedisFlowStore(rdb)
		checks = append(checks, api.HealthCheck{Name: "redis", Check: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}})
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	secure := cfg.IsProduction()
	inspector := sec.NewTokenInspector(cfg.BackendJWTSecret)
	if !inspector.Verifies() {
		log.Warn("access_token_signatures_unverified")
	}

	features := auth.Features{
		GitHub:      cfg.GitHubEnabled,
		Google:      cfg.GoogleEnabled,
		AdminCreate: cfg.AdminCreateEnabled,
	}

	authService := auth.NewService(client, identity.NewResolver(profiles), profiles, flows, cfg.MountPrefix, features)
	cookies := session.NewCookies(secure)
	sessions := session.NewManager(cookies, session.RefreshFunc(authService.Refresh), inspector)
	bridgeWriter := bridge.NewWriter(secure)
	origins := redirect.OriginPolicy{Public: cfg.PublicOrigin, TrustForwarded: cfg.TrustProxyHeaders}
	if cfg.PublicOrigin == "" && !cfg.TrustProxyHeaders {
		log.Warn("public_origin_unset", slog.String("fallback", "request_host"))
	}

	liveness, readiness := api.NewHealthHandlers(log, checks...)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Guard:     guard.New(sessions, cfg.MountPrefix),
		Auth:      auth.NewHandler(authService, sessions, cookies, bridgeWriter, origins, cfg.MountPrefix, cfg.StudioPath),
		Bridge:    bridge.NewHandler(bridgeWriter, sessions, cfg.StudioPath),
		Callback:  redirect.NewCallbackHandler(authService, client, cookies, origins, cfg.MountPrefix),
		Admin:     admin.NewHandler(admin.NewService(client), cfg.AdminCreateEnabled),
		Locale:    api.NewLocaleHandler(secure),
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
// It is limited to startup wiring.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
