package inference

import (
	"time"

	"github.com/eshaffer321/ynab-sync-backend/internal/domain/transaction"
)

// Reasoning strings attached to inference results.
const (
	ReasonExactPattern  = "Exact pattern match"
	ReasonMerchantMatch = "Merchant name match"
	ReasonDescription   = "Description match"
	ReasonFallback      = "Fallback category match"
)

// Config holds inference thresholds.
type Config struct {
	// MinConfidence is the floor a fallback similarity score must clear
	// before it is returned (default: 0.3).
	MinConfidence float64

	// FallbackDiscount is applied to fallback-phase scores so catalog
	// similarity never outranks a learned pattern (default: 0.8).
	FallbackDiscount float64

	// OccurrenceBoost is added to a learned mapping's confidence per extra
	// confirmed occurrence, clamped at 1.0 (default: 0.02).
	OccurrenceBoost float64

	// CacheTTL bounds how long an inference result is reused for the same
	// pattern, catalog, and learned dictionary (default: 15m).
	CacheTTL time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MinConfidence:    0.3,
		FallbackDiscount: 0.8,
		OccurrenceBoost:  0.02,
		CacheTTL:         15 * time.Minute,
	}
}

// Result is a category inference outcome.
type Result struct {
	Category   transaction.Category
	Confidence float64
	Reasoning  string
}

// HasMatch reports whether a category was actually inferred.
func (r Result) HasMatch() bool {
	return !r.Category.IsUnknown()
}
