package matcher

import (
	"time"

	"github.com/eshaffer321/ynab-sync-backend/internal/domain/money"
	"github.com/eshaffer321/ynab-sync-backend/internal/domain/transaction"
)

// bankAdapter exposes a BankTransaction through the Matchable interface.
type bankAdapter struct {
	tx transaction.BankTransaction
}

// BankSide wraps a bank transaction for matching.
func BankSide(tx transaction.BankTransaction) Matchable {
	return bankAdapter{tx: tx}
}

func (a bankAdapter) Date() time.Time     { return a.tx.Date }
func (a bankAdapter) Amount() money.Money { return a.tx.Amount }
func (a bankAdapter) AccountID() string   { return a.tx.AccountID }

// ledgerAdapter exposes a LedgerTransaction through the Matchable interface.
type ledgerAdapter struct {
	tx transaction.LedgerTransaction
}

// LedgerSide wraps a ledger transaction for matching.
func LedgerSide(tx transaction.LedgerTransaction) Matchable {
	return ledgerAdapter{tx: tx}
}

func (a ledgerAdapter) Date() time.Time     { return a.tx.Date }
func (a ledgerAdapter) Amount() money.Money { return a.tx.Amount }
func (a ledgerAdapter) AccountID() string   { return a.tx.AccountID }
