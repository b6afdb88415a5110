package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eshaffer321/ynab-sync-backend/internal/infrastructure/config"
)

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level        string
		debugEnabled bool
		warnEnabled  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, true},
		{"error", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := NewLogger(config.LoggingConfig{Level: tt.level, Format: "text"})
			ctx := context.Background()
			assert.Equal(t, tt.debugEnabled, logger.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.warnEnabled, logger.Enabled(ctx, slog.LevelWarn))
		})
	}
}

func TestNewLogger_JSONFormat(t *testing.T) {
	logger := NewLogger(config.LoggingConfig{Level: "info", Format: "json"})
	assert.NotNil(t, logger)
}

func TestNewComponentLogger(t *testing.T) {
	logger := NewComponentLogger(config.LoggingConfig{Level: "info"}, "reconciler")
	assert.NotNil(t, logger)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
}
