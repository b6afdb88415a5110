// Package transaction defines the transaction and category models shared by
// the reconciliation and inference engines.
//
// BankTransaction comes from an external bank import; LedgerTransaction
// mirrors a transaction already recorded in the YNAB budget. Both are
// request-scoped values: this core never persists them.
package transaction

import (
	"time"

	"github.com/eshaffer321/ynab-sync-backend/internal/domain/money"
)

// BankTransaction is an externally-imported bank transaction.
type BankTransaction struct {
	ID               string
	AccountID        string
	Date             time.Time
	Amount           money.Money
	Description      string
	MerchantName     string // empty when the feed didn't supply one
	Memo             string
	Type             string // e.g. "debit", "credit"
	ExternalID       string
	InferredCategory Category
}

// WithInferredCategory returns a copy of the transaction carrying the given
// inferred category. The receiver is not modified.
func (t BankTransaction) WithInferredCategory(c Category) BankTransaction {
	t.InferredCategory = c
	return t
}

// HasInferredCategory reports whether an inference pass assigned a category.
func (t BankTransaction) HasInferredCategory() bool {
	return !t.InferredCategory.IsUnknown()
}
