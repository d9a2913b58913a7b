// Package main implements the entry point for the threat-ingest server,
// which accepts ingestion tasks over HTTP and runs them in the background.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/threat-ingest/internal/config"
	"github.com/phrazzld/threat-ingest/internal/platform/logger"
	"github.com/phrazzld/threat-ingest/internal/platform/sqlstore"
	"github.com/phrazzld/threat-ingest/internal/redact"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "threat-ingest: %s\n", redact.Error(err))
		os.Exit(1)
	}
}

// run loads configuration, prepares the database and serves until a
// shutdown signal arrives or ctx is cancelled.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, closer, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	defer func() { _ = closer.Close() }()

	log.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver),
		slog.String("provider_a_url", redact.URL(cfg.Providers.ProviderAURL)),
		slog.String("provider_b_url", redact.URL(cfg.Providers.ProviderBURL)))

	db, err := sqlstore.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := sqlstore.Migrate(ctx, db, cfg.Database.Driver, log); err != nil {
		_ = db.Close()
		return err
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
