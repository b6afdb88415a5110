// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml), with ${VAR} expansion from the environment
//  2. Environment defaults (fallback)
//
// A .env file next to the process, if present, is folded into the
// environment before expansion.
//
// All tolerance and threshold constants used by the matching, inference,
// and learning engines live here under their published default values;
// change them only deliberately, since they define behavioral compatibility
// with previously-learned dictionaries.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/eshaffer321/ynab-sync-backend/internal/application/learning"
	"github.com/eshaffer321/ynab-sync-backend/internal/domain/inference"
	"github.com/eshaffer321/ynab-sync-backend/internal/domain/matcher"
)

// Config represents the entire application configuration.
type Config struct {
	Matching      MatchingConfig      `yaml:"matching"`
	Inference     InferenceConfig     `yaml:"inference"`
	Learning      LearningConfig      `yaml:"learning"`
	Storage       StorageConfig       `yaml:"storage"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// MatchingConfig holds reconciliation tolerances.
type MatchingConfig struct {
	RangeToleranceDays int `yaml:"range_tolerance_days"`
}

// InferenceConfig holds category inference thresholds.
type InferenceConfig struct {
	MinConfidence    float64 `yaml:"min_confidence"`
	FallbackDiscount float64 `yaml:"fallback_discount"`
	OccurrenceBoost  float64 `yaml:"occurrence_boost"`
	CacheTTLMinutes  int     `yaml:"cache_ttl_minutes"`
}

// LearningConfig holds pattern-learning thresholds.
type LearningConfig struct {
	MinMappingConfidence  float64 `yaml:"min_mapping_confidence"`
	ConflictOverlapRatio  float64 `yaml:"conflict_overlap_ratio"`
	ConflictConfidenceGap float64 `yaml:"conflict_confidence_gap"`
}

// StorageConfig holds database configuration.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// ObservabilityConfig holds observability settings.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file.
func Load(path string) (*Config, error) {
	// Fold a local .env into the environment if one exists
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${YNAB_DB_PATH})
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrEnv loads config.yaml if present, otherwise falls back to defaults
// with environment overrides for paths.
func LoadOrEnv() *Config {
	if _, err := os.Stat("config.yaml"); err == nil {
		if cfg, err := Load("config.yaml"); err == nil {
			return cfg
		}
	}

	_ = godotenv.Load()
	cfg := Default()
	if path := os.Getenv("YNAB_DB_PATH"); path != "" {
		cfg.Storage.DatabasePath = path
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Observability.Logging.Level = level
	}
	return cfg
}

// Default returns the published default configuration.
func Default() *Config {
	return &Config{
		Matching: MatchingConfig{
			RangeToleranceDays: 3,
		},
		Inference: InferenceConfig{
			MinConfidence:    0.3,
			FallbackDiscount: 0.8,
			OccurrenceBoost:  0.02,
			CacheTTLMinutes:  15,
		},
		Learning: LearningConfig{
			MinMappingConfidence:  0.1,
			ConflictOverlapRatio:  0.5,
			ConflictConfidenceGap: 0.2,
		},
		Storage: StorageConfig{
			DatabasePath: "ynab_sync.db",
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  "info",
				Format: "text",
			},
		},
	}
}

// Validate rejects out-of-range threshold values.
func (c *Config) Validate() error {
	if c.Matching.RangeToleranceDays < 0 {
		return fmt.Errorf("matching.range_tolerance_days must be >= 0, got %d", c.Matching.RangeToleranceDays)
	}
	ratios := map[string]float64{
		"inference.min_confidence":         c.Inference.MinConfidence,
		"inference.fallback_discount":      c.Inference.FallbackDiscount,
		"learning.min_mapping_confidence":  c.Learning.MinMappingConfidence,
		"learning.conflict_overlap_ratio":  c.Learning.ConflictOverlapRatio,
		"learning.conflict_confidence_gap": c.Learning.ConflictConfidenceGap,
	}
	for name, v := range ratios {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be in [0,1], got %g", name, v)
		}
	}
	if c.Inference.OccurrenceBoost < 0 {
		return fmt.Errorf("inference.occurrence_boost must be >= 0, got %g", c.Inference.OccurrenceBoost)
	}
	return nil
}

// MatcherConfig converts to the matcher's domain config.
func (c *Config) MatcherConfig() matcher.Config {
	return matcher.Config{
		RangeToleranceDays: c.Matching.RangeToleranceDays,
	}
}

// InferenceConfig converts to the inference engine's domain config.
func (c *Config) InferenceConfig() inference.Config {
	return inference.Config{
		MinConfidence:    c.Inference.MinConfidence,
		FallbackDiscount: c.Inference.FallbackDiscount,
		OccurrenceBoost:  c.Inference.OccurrenceBoost,
		CacheTTL:         time.Duration(c.Inference.CacheTTLMinutes) * time.Minute,
	}
}

// LearningConfig converts to the learning use case's config.
func (c *Config) LearningConfig() learning.Config {
	return learning.Config{
		MinMappingConfidence:  c.Learning.MinMappingConfidence,
		ConflictOverlapRatio:  c.Learning.ConflictOverlapRatio,
		ConflictConfidenceGap: c.Learning.ConflictConfidenceGap,
	}
}
