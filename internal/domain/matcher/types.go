package matcher

import (
	"time"

	"github.com/eshaffer321/ynab-sync-backend/internal/domain/money"
)

// Strategy selects the matching tolerance policy.
type Strategy string

const (
	// StrategyStrict requires an exact calendar-day match.
	StrategyStrict Strategy = "strict"

	// StrategyRange allows the ledger date to fall within a tolerance
	// window around the bank date.
	StrategyRange Strategy = "range"
)

// Config holds matcher configuration.
type Config struct {
	RangeToleranceDays int // window half-width for StrategyRange (default: 3)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		RangeToleranceDays: 3,
	}
}

// Matchable is the minimal view of a transaction the matching predicate
// needs. Both bank and ledger transactions are wrapped to satisfy it, which
// keeps the reconciliation algorithm type-agnostic.
type Matchable interface {
	Date() time.Time
	Amount() money.Money
	AccountID() string
}
