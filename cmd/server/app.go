package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/threat-ingest/internal/config"
	"github.com/phrazzld/threat-ingest/internal/platform/sqlstore"
	"github.com/phrazzld/threat-ingest/internal/provider"
	"github.com/phrazzld/threat-ingest/internal/service"
	"github.com/phrazzld/threat-ingest/internal/store"
	"github.com/phrazzld/threat-ingest/internal/task"
)

// application holds the shared dependencies so they can be wired once and
// released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	records     store.ThreatRecordStore
	providers   *provider.Client
	taskRunner  *task.Runner
	taskService service.TaskService
}

// newApplication wires stores, clients and services around an open,
// migrated database, and starts the background task runner.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.records = sqlstore.NewRecordStore(db, cfg.Database.Driver, logger)

	var err error
	app.providers, err = provider.NewClient(cfg.Providers, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider client: %w", err)
	}

	app.taskRunner, err = setupTaskRunner(app)
	if err != nil {
		return nil, fmt.Errorf("failed to setup task runner: %w", err)
	}

	app.taskService, err = service.NewTaskService(app.records, app.taskRunner, logger)
	if err != nil {
		app.taskRunner.Stop()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until a shutdown signal arrives or ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// setupTaskRunner creates and starts the background task processor.
func setupTaskRunner(app *application) (*task.Runner, error) {
	runner := task.NewRunner(app.providers, app.records, task.RunnerConfig{
		Worker: task.WorkerConfig{
			SettleDelay:     app.config.Task.SettleDelay,
			CompletionDelay: app.config.Task.CompletionDelay,
		},
	}, app.logger)

	if err := runner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start task runner: %w", err)
	}
	return runner, nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}
}
