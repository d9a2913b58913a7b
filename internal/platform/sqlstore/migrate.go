package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationFS embed.FS

// Migrate applies every pending migration for the given driver.
func Migrate(ctx context.Context, db *sql.DB, driver string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(
		slog.String("component", "migrations"),
		slog.String("correlation_id", uuid.New().String()),
		slog.String("driver", driver),
	)

	dialect, dir, err := dialectFor(driver)
	if err != nil {
		return err
	}

	fsys, err := fs.Sub(migrationFS, dir)
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	provider, err := goose.NewProvider(dialect, db, fsys, goose.WithLogger(&slogGooseLogger{log: log}))
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	start := time.Now()
	results, err := provider.Up(ctx)
	if err != nil {
		log.Error("migration failed", slog.String("error", err.Error()))
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	for _, r := range results {
		log.Info("applied migration",
			slog.Int64("version", r.Source.Version),
			slog.String("path", r.Source.Path),
			slog.Int64("duration_ms", r.Duration.Milliseconds()))
	}

	log.Info("migrations complete",
		slog.Int("applied", len(results)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}

func dialectFor(driver string) (goose.Dialect, string, error) {
	switch driver {
	case DriverPostgres:
		return goose.DialectPostgres, "migrations/postgres", nil
	case DriverSQLite:
		return goose.DialectSQLite3, "migrations/sqlite", nil
	default:
		return "", "", fmt.Errorf("no migrations for driver %q", driver)
	}
}

// slogGooseLogger forwards goose output to slog. Fatalf does not exit; the
// error is returned to the caller instead.
type slogGooseLogger struct {
	log *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
