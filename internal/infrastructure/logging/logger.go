// Package logging provides structured logging utilities.
//
// Loggers are plain *slog.Logger instances configured from LoggingConfig,
// so any engine component can take one by injection and default to
// slog.Default() when none is supplied.
package logging

import (
	"log/slog"
	"os"

	"github.com/eshaffer321/ynab-sync-backend/internal/infrastructure/config"
)

// NewLogger creates a structured logger based on config.
func NewLogger(cfg config.LoggingConfig) *slog.Logger {
	// Parse log level
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose format
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// NewComponentLogger creates a logger tagged with a component name
// (e.g. "reconciler", "inference", "learning").
func NewComponentLogger(cfg config.LoggingConfig, component string) *slog.Logger {
	return NewLogger(cfg).With(slog.String("component", component))
}
