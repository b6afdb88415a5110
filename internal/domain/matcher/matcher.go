// Package matcher provides the transaction matching predicates used by
// reconciliation.
//
// A Matcher decides whether a bank transaction corresponds to a ledger
// transaction under a chosen tolerance policy:
//   - Strict: amount, account, and calendar day must all match exactly.
//   - Range: amount and account must match; the date may fall anywhere in
//     a ±N day window (default 3) around the bank date.
//
// Example usage:
//
//	m, err := matcher.New(matcher.StrategyRange)
//	if m.Matches(bankSide, ledgerSide) {
//		// Corresponding transaction found
//	}
package matcher

import (
	"fmt"
	"time"
)

// Matcher is a pure predicate pairing bank and ledger transactions.
type Matcher interface {
	// Matches reports whether the two transactions correspond.
	Matches(bank, ledger Matchable) bool

	// Window returns the inclusive ledger-date range worth scanning for a
	// bank transaction on the given date.
	Window(date time.Time) (from, to time.Time)

	// Strategy identifies the tolerance policy in effect.
	Strategy() Strategy
}

// New creates a matcher for the given strategy with default tolerances.
func New(strategy Strategy) (Matcher, error) {
	return NewWithConfig(strategy, DefaultConfig())
}

// NewWithConfig creates a matcher for the given strategy and config.
func NewWithConfig(strategy Strategy, cfg Config) (Matcher, error) {
	switch strategy {
	case StrategyStrict:
		return &strictMatcher{}, nil
	case StrategyRange:
		return &rangeMatcher{toleranceDays: cfg.RangeToleranceDays}, nil
	default:
		return nil, fmt.Errorf("unknown reconciliation strategy %q", strategy)
	}
}

// strictMatcher requires amount, account, and calendar-day equality.
type strictMatcher struct{}

func (m *strictMatcher) Matches(bank, ledger Matchable) bool {
	return bank.Amount().Equal(ledger.Amount()) &&
		bank.AccountID() == ledger.AccountID() &&
		sameDay(bank.Date(), ledger.Date())
}

func (m *strictMatcher) Window(date time.Time) (time.Time, time.Time) {
	day := truncateToDay(date)
	return day, endOfDay(day)
}

func (m *strictMatcher) Strategy() Strategy {
	return StrategyStrict
}

// rangeMatcher relaxes the date requirement to a ± toleranceDays window.
// The date bound itself is enforced by the window scan in reconciliation,
// so the predicate only re-checks amount and account.
type rangeMatcher struct {
	toleranceDays int
}

func (m *rangeMatcher) Matches(bank, ledger Matchable) bool {
	return bank.Amount().Equal(ledger.Amount()) &&
		bank.AccountID() == ledger.AccountID()
}

func (m *rangeMatcher) Window(date time.Time) (time.Time, time.Time) {
	day := truncateToDay(date)
	return day.AddDate(0, 0, -m.toleranceDays), endOfDay(day.AddDate(0, 0, m.toleranceDays))
}

func (m *rangeMatcher) Strategy() Strategy {
	return StrategyRange
}

// sameDay reports whether two instants fall on the same calendar day.
// Time-of-day is ignored.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// truncateToDay drops the time-of-day component.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// endOfDay returns the last instant of the calendar day containing t, so a
// window scan bounded by it covers ledger entries timestamped any time that
// day.
func endOfDay(t time.Time) time.Time {
	return truncateToDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
