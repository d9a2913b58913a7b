package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// startHTTPServer serves router until SIGINT/SIGTERM or ctx cancellation,
// then shuts down gracefully and releases application resources.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverCtx, cancelServer := context.WithCancel(ctx)
	defer cancelServer()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	serveErr := make(chan error, 1)
	go func() {
		app.logger.Info("Starting server", slog.Int("port", app.config.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("Server failed", slog.String("error", err.Error()))
			serveErr <- err
			cancelServer()
		}
	}()

	select {
	case <-shutdownCh:
		app.logger.Info("Shutting down server...")
	case <-serverCtx.Done():
		app.logger.Info("Server context canceled, shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	shutdownErr := server.Shutdown(shutdownCtx)
	app.cleanup()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	default:
	}

	if shutdownErr != nil {
		app.logger.Error("Server shutdown failed", slog.String("error", shutdownErr.Error()))
		return fmt.Errorf("server shutdown failed: %w", shutdownErr)
	}

	app.logger.Info("Server shutdown completed")
	return nil
}
