package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fanaf-events/backoffice/internal/audit"
	"github.com/fanaf-events/backoffice/internal/config"
	"github.com/fanaf-events/backoffice/internal/eventapi"
	"github.com/fanaf-events/backoffice/internal/logging"
	"github.com/fanaf-events/backoffice/internal/organization"
	"github.com/fanaf-events/backoffice/internal/registration"
	"github.com/fanaf-events/backoffice/internal/web"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"api_base_url", cfg.API.BaseURL,
		"per_page", cfg.API.PerPage,
		"audit_enabled", cfg.AuditEnabled(),
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx := context.Background()

	// The audit trail is optional: without a database URL the service runs
	// with auditing disabled.
	var trail *audit.Trail
	if cfg.AuditEnabled() {
		poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
		if err != nil {
			slog.Error("failed to parse database URL", "error", err)
			os.Exit(1)
		}
		poolConfig.MaxConns = int32(cfg.Database.MaxConns)
		poolConfig.MinConns = int32(cfg.Database.MinConns)
		poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
		poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			slog.Error("failed to ping database", "error", err)
			os.Exit(1)
		}

		trail, err = audit.New(ctx, pool)
		if err != nil {
			slog.Error("failed to initialize audit trail", "error", err)
			os.Exit(1)
		}
		slog.Info("audit trail enabled")
	}

	client := eventapi.NewClient(cfg.API.BaseURL, cfg.API.Token, cfg.API.Timeout)
	orgs := organization.NewService(client, cfg.API.PerPage)
	participants := registration.NewService(client, orgs, cfg.API.PerPage)

	server := web.NewServer(participants, orgs, trail, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
