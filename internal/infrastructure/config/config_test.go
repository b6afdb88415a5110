package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 3, cfg.Matching.RangeToleranceDays)
	assert.InDelta(t, 0.3, cfg.Inference.MinConfidence, 0.0001)
	assert.InDelta(t, 0.8, cfg.Inference.FallbackDiscount, 0.0001)
	assert.InDelta(t, 0.1, cfg.Learning.MinMappingConfidence, 0.0001)
	assert.InDelta(t, 0.5, cfg.Learning.ConflictOverlapRatio, 0.0001)
	assert.InDelta(t, 0.2, cfg.Learning.ConflictConfidenceGap, 0.0001)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
matching:
  range_tolerance_days: 5
inference:
  min_confidence: 0.4
storage:
  database_path: /tmp/test.db
observability:
  logging:
    level: debug
    format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Matching.RangeToleranceDays)
	assert.InDelta(t, 0.4, cfg.Inference.MinConfidence, 0.0001)
	// Unspecified fields keep their defaults
	assert.InDelta(t, 0.8, cfg.Inference.FallbackDiscount, 0.0001)
	assert.Equal(t, "/tmp/test.db", cfg.Storage.DatabasePath)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_DB_PATH", "/data/patterns.db")

	path := writeConfig(t, `
storage:
  database_path: ${TEST_DB_PATH}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/patterns.db", cfg.Storage.DatabasePath)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_OutOfRange(t *testing.T) {
	cfg := Default()
	cfg.Inference.MinConfidence = 1.5
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Learning.ConflictOverlapRatio = -0.1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Matching.RangeToleranceDays = -1
	assert.Error(t, cfg.Validate())
}

func TestLoad_RejectsInvalidThresholds(t *testing.T) {
	path := writeConfig(t, `
learning:
  min_mapping_confidence: 2.0
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDomainConfigConversions(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 3, cfg.MatcherConfig().RangeToleranceDays)
	assert.InDelta(t, 0.3, cfg.InferenceConfig().MinConfidence, 0.0001)
	assert.InDelta(t, 0.2, cfg.LearningConfig().ConflictConfidenceGap, 0.0001)
}
