// Package reconciler pairs externally-imported bank transactions with
// transactions already recorded in the budgeting ledger.
//
// The engine sorts both lists by date and, for each bank transaction,
// binary-searches the ledger list for the start of its date window, then
// scans forward taking the first unused ledger transaction the matcher
// accepts. Each ledger transaction is consumed at most once. Matching is
// greedy first-fit: once a bank transaction claims a ledger transaction
// there is no backtracking, which trades a possibly better global pairing
// for O(n log m + n·k) instead of the naive O(n·m) scan.
//
// Example usage:
//
//	svc := reconciler.NewService(logger)
//	result, err := svc.Reconcile(bankTxns, ledgerTxns, matcher.StrategyRange)
package reconciler

import (
	"errors"
	"log/slog"
	"sort"

	"github.com/eshaffer321/ynab-sync-backend/internal/domain/matcher"
	"github.com/eshaffer321/ynab-sync-backend/internal/domain/transaction"
)

var (
	// ErrNilBankTransactions is returned when the bank list is nil.
	ErrNilBankTransactions = errors.New("reconciler: bank transactions must not be nil")

	// ErrNilLedgerTransactions is returned when the ledger list is nil.
	ErrNilLedgerTransactions = errors.New("reconciler: ledger transactions must not be nil")
)

// MatchResult partitions bank transactions into matched and missing.
// Every input bank transaction lands in exactly one of the two lists.
type MatchResult struct {
	Matched []transaction.BankTransaction
	Missing []transaction.BankTransaction
}

// Service is the transaction reconciliation engine. It is stateless apart
// from its logger and safe for concurrent use.
type Service struct {
	cfg    matcher.Config
	logger *slog.Logger
}

// NewService creates a reconciliation service with default matcher config.
func NewService(logger *slog.Logger) *Service {
	return NewServiceWithConfig(matcher.DefaultConfig(), logger)
}

// NewServiceWithConfig creates a reconciliation service with the given
// matcher tolerances.
func NewServiceWithConfig(cfg matcher.Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "reconciler")),
	}
}

// Reconcile partitions bank transactions into those already present in the
// ledger and those missing from it, under the given tolerance strategy.
//
// Nil slices are rejected: at this boundary nil means "caller forgot to
// load", while an empty non-nil slice legitimately means "no transactions"
// and short-circuits to a trivial result.
func (s *Service) Reconcile(
	bankTxns []transaction.BankTransaction,
	ledgerTxns []transaction.LedgerTransaction,
	strategy matcher.Strategy,
) (*MatchResult, error) {
	if bankTxns == nil {
		return nil, ErrNilBankTransactions
	}
	if ledgerTxns == nil {
		return nil, ErrNilLedgerTransactions
	}

	m, err := matcher.NewWithConfig(strategy, s.cfg)
	if err != nil {
		return nil, err
	}

	result := &MatchResult{
		Matched: make([]transaction.BankTransaction, 0, len(bankTxns)),
		Missing: make([]transaction.BankTransaction, 0),
	}

	if len(bankTxns) == 0 {
		return result, nil
	}
	if len(ledgerTxns) == 0 {
		result.Missing = append(result.Missing, bankTxns...)
		sortBankByDate(result.Missing)
		return result, nil
	}

	// Input order carries no meaning; both sides are processed
	// chronologically.
	bank := make([]transaction.BankTransaction, len(bankTxns))
	copy(bank, bankTxns)
	sortBankByDate(bank)

	ledger := make([]matcher.Matchable, len(ledgerTxns))
	for i, tx := range ledgerTxns {
		ledger[i] = matcher.LedgerSide(tx)
	}
	sort.SliceStable(ledger, func(i, j int) bool {
		return ledger[i].Date().Before(ledger[j].Date())
	})

	consumed := make([]bool, len(ledger))

	for _, bankTx := range bank {
		from, to := m.Window(bankTx.Date)

		// First ledger index whose date is >= window start.
		start := sort.Search(len(ledger), func(i int) bool {
			return !ledger[i].Date().Before(from)
		})

		matched := false
		bankSide := matcher.BankSide(bankTx)
		for i := start; i < len(ledger) && !ledger[i].Date().After(to); i++ {
			if consumed[i] {
				continue
			}
			if m.Matches(bankSide, ledger[i]) {
				consumed[i] = true
				result.Matched = append(result.Matched, bankTx)
				matched = true
				break
			}
		}

		if !matched {
			result.Missing = append(result.Missing, bankTx)
		}
	}

	s.logger.Debug("Reconciliation complete",
		"strategy", string(strategy),
		"bank_count", len(bank),
		"ledger_count", len(ledger),
		"matched", len(result.Matched),
		"missing", len(result.Missing),
	)

	return result, nil
}

func sortBankByDate(txns []transaction.BankTransaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.Before(txns[j].Date)
	})
}
