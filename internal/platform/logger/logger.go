package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/threat-ingest/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

type contextKey struct{}

// Rotation limits for the optional log file.
const (
	logFileMaxSizeMB  = 100
	logFileMaxBackups = 3
	logFileMaxAgeDays = 28
)

// Setup initializes and configures the application's logging system based on
// the provided configuration. It creates a structured JSON logger with the
// appropriate log level and sets it as the default logger for the application.
//
// When cfg.LogFile is set the same records are also written to a rotating file.
// The returned io.Closer releases that file and must be called on shutdown.
func Setup(cfg config.ServerConfig) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	var out io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}

	if cfg.LogFile != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    logFileMaxSizeMB,
			MaxBackups: logFileMaxBackups,
			MaxAge:     logFileMaxAgeDays,
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, fileWriter)
		closer = fileWriter
	}

	logger := New(out, level)

	// This allows using the slog package functions directly (slog.Info, slog.Error, etc.)
	slog.SetDefault(logger)

	return logger, closer, nil
}

// New creates a JSON logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// ParseLevel converts a configured level name (case-insensitive) to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", name)
	}
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored in ctx, or the default logger.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return slog.Default()
}

// FromContextOrDefault returns the logger stored in ctx, or fallback when
// ctx carries none.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
