package transaction

import (
	"time"

	"github.com/eshaffer321/ynab-sync-backend/internal/domain/money"
)

// ClearedStatus is the YNAB cleared state of a ledger transaction.
type ClearedStatus string

const (
	ClearedStatusUncleared  ClearedStatus = "uncleared"
	ClearedStatusCleared    ClearedStatus = "cleared"
	ClearedStatusReconciled ClearedStatus = "reconciled"
)

// LedgerTransaction is a transaction already recorded in the budgeting
// ledger. It is read-only from this core's point of view.
type LedgerTransaction struct {
	ID         string
	AccountID  string
	Date       time.Time
	Amount     money.Money
	PayeeName  string
	Memo       string
	CategoryID string
	Cleared    ClearedStatus
	Approved   bool
	FlagColor  string // empty when unflagged
}
