// Package logger provides structured logging functionality for the application.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/kaabil/contentgen-api/internal/config"
)

type contextKey struct{}

var loggerKey contextKey

// ParseLevel maps a configured level name (case-insensitive) to a slog.Level.
// The second return value is false for unknown names, in which case info is returned.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Setup initializes the application's logging system from the server config.
// It creates a JSON logger on stdout with the configured level and sets it as
// the process default.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	return SetupWithWriter(cfg, os.Stdout)
}

// SetupWithWriter is Setup with an explicit output, used by tests.
func SetupWithWriter(cfg config.ServerConfig, w io.Writer) (*slog.Logger, error) {
	level, ok := ParseLevel(cfg.LogLevel)
	if !ok {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Warn(
			"invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler).With(slog.String("service", "contentgen-api"))

	slog.SetDefault(logger)
	return logger, nil
}

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOrDefault(ctx, slog.Default())
}

// FromContextOrDefault returns the logger stored in ctx, or fallback when
// there is none. A nil fallback means slog.Default().
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}
