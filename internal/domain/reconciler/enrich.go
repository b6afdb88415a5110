package reconciler

import (
	"github.com/eshaffer321/ynab-sync-backend/internal/domain/inference"
	"github.com/eshaffer321/ynab-sync-backend/internal/domain/mapping"
	"github.com/eshaffer321/ynab-sync-backend/internal/domain/transaction"
)

// CategoryAnalyzer infers a category for a bank transaction. Satisfied by
// *inference.Service.
type CategoryAnalyzer interface {
	AnalyzeTransaction(
		tx transaction.BankTransaction,
		categories []transaction.Category,
		learned []mapping.CategoryMapping,
	) *inference.Result
}

// EnrichCategories runs category inference for every bank transaction that
// does not yet carry an inferred category, returning a new slice. The input
// slice is not modified. Transactions the analyzer cannot place keep their
// unknown category.
func (s *Service) EnrichCategories(
	bankTxns []transaction.BankTransaction,
	categories []transaction.Category,
	learned []mapping.CategoryMapping,
	analyzer CategoryAnalyzer,
) []transaction.BankTransaction {
	enriched := make([]transaction.BankTransaction, len(bankTxns))
	copy(enriched, bankTxns)

	if analyzer == nil || len(categories) == 0 {
		return enriched
	}

	inferredCount := 0
	for i, tx := range enriched {
		if tx.HasInferredCategory() {
			continue
		}
		result := analyzer.AnalyzeTransaction(tx, categories, learned)
		if result == nil || !result.HasMatch() {
			continue
		}
		enriched[i] = tx.WithInferredCategory(result.Category)
		inferredCount++
	}

	s.logger.Debug("Category enrichment complete",
		"transaction_count", len(enriched),
		"inferred", inferredCount,
	)

	return enriched
}
