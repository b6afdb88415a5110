package reconciler

// ReconciliationSummary is a read-only aggregate view of one reconciliation
// run. It is computed once and never mutated afterwards.
type ReconciliationSummary struct {
	total      int
	matched    int
	missing    int
	percentage float64
}

// NewSummary computes the summary for a match result.
func NewSummary(result *MatchResult) ReconciliationSummary {
	matched := len(result.Matched)
	missing := len(result.Missing)
	total := matched + missing

	percentage := 100.0
	if total > 0 {
		percentage = float64(matched) / float64(total) * 100.0
	}

	return ReconciliationSummary{
		total:      total,
		matched:    matched,
		missing:    missing,
		percentage: percentage,
	}
}

// Total returns the number of bank transactions considered.
func (s ReconciliationSummary) Total() int { return s.total }

// Matched returns the number of bank transactions found in the ledger.
func (s ReconciliationSummary) Matched() int { return s.matched }

// Missing returns the number of bank transactions absent from the ledger.
func (s ReconciliationSummary) Missing() int { return s.missing }

// Percentage returns the matched share in [0,100]. An empty run counts as
// fully reconciled.
func (s ReconciliationSummary) Percentage() float64 { return s.percentage }

// IsComplete reports whether every bank transaction was matched.
func (s ReconciliationSummary) IsComplete() bool { return s.missing == 0 }
