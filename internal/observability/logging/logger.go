// Package logging wraps log/slog with the conventions used across the
// application: JSON output, LOG_LEVEL-driven levels, and request ID
// propagation through context.
package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"newspulse/internal/handler/http/requestid"
)

// levelFromEnv maps the LOG_LEVEL environment variable to a slog level.
// Unknown or empty values default to info.
func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a structured logger with JSON output. The level comes
// from LOG_LEVEL (debug, info, warn, error; default info). Source locations
// are attached when running at debug level.
func NewLogger() *slog.Logger {
	level := levelFromEnv()

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	})

	return slog.New(handler)
}

// NewTextLogger creates a logger with human-readable text output for local
// development.
func NewTextLogger() *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})

	return slog.New(handler)
}

// WithRequestID returns a logger carrying the request ID from ctx, enabling
// correlation of log entries within one request. Without an ID the logger
// is returned unchanged.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}

// WithComponent returns a logger tagged with a component name, used by the
// worker and background jobs where no request ID exists.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With("component", component)
}

type contextKey string

const loggerContextKey contextKey = "logger"

// FromContext retrieves the logger stored in ctx, falling back to
// slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger stores a logger in the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}
