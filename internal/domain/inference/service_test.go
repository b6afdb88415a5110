package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/ynab-sync-backend/internal/domain/mapping"
	"github.com/eshaffer321/ynab-sync-backend/internal/domain/pattern"
	"github.com/eshaffer321/ynab-sync-backend/internal/domain/transaction"
)

func category(id, name, group string) transaction.Category {
	return transaction.Category{
		ID:        id,
		Name:      name,
		GroupName: group,
		Type:      transaction.CategoryTypeLedger,
	}
}

func learnedMapping(t *testing.T, cat transaction.Category, text string, confidence float64) mapping.CategoryMapping {
	t.Helper()
	p, err := pattern.New(text)
	require.NoError(t, err)
	m, err := mapping.New(cat, p, confidence)
	require.NoError(t, err)
	return m
}

func TestAnalyzeTransaction_EmptyCatalog(t *testing.T) {
	svc := NewService(DefaultConfig(), nil)

	result := svc.AnalyzeTransaction(
		transaction.BankTransaction{ID: "b1", MerchantName: "STARBUCKS"},
		[]transaction.Category{},
		nil,
	)

	assert.Nil(t, result)
}

func TestAnalyzeTransaction_ExactPhaseWins(t *testing.T) {
	svc := NewService(DefaultConfig(), nil)
	dining := category("cat-dining", "Dining Out", "Food")

	learned := []mapping.CategoryMapping{
		learnedMapping(t, dining, "starbucks coffee", 0.9),
	}

	result := svc.AnalyzeTransaction(
		transaction.BankTransaction{ID: "b1", MerchantName: "STARBUCKS #1234 SEATTLE"},
		[]transaction.Category{dining},
		learned,
	)

	require.NotNil(t, result)
	assert.True(t, result.HasMatch())
	assert.Equal(t, "cat-dining", result.Category.ID)
	assert.Equal(t, ReasonExactPattern, result.Reasoning)
	assert.InDelta(t, 0.9, result.Confidence, 0.0001)
}

func TestAnalyzeTransaction_ExactPhasePicksHighestConfidence(t *testing.T) {
	svc := NewService(DefaultConfig(), nil)
	dining := category("cat-dining", "Dining Out", "Food")
	groceries := category("cat-groceries", "Groceries", "Food")

	learned := []mapping.CategoryMapping{
		learnedMapping(t, groceries, "starbucks", 0.5),
		learnedMapping(t, dining, "starbucks coffee", 0.8),
	}

	result := svc.AnalyzeTransaction(
		transaction.BankTransaction{ID: "b1", MerchantName: "STARBUCKS"},
		[]transaction.Category{dining, groceries},
		learned,
	)

	require.NotNil(t, result)
	assert.Equal(t, "cat-dining", result.Category.ID)
}

func TestAnalyzeTransaction_ConfidenceTieKeepsFirst(t *testing.T) {
	svc := NewService(DefaultConfig(), nil)
	dining := category("cat-dining", "Dining Out", "Food")
	groceries := category("cat-groceries", "Groceries", "Food")

	learned := []mapping.CategoryMapping{
		learnedMapping(t, groceries, "starbucks", 0.7),
		learnedMapping(t, dining, "starbucks", 0.7),
	}

	result := svc.AnalyzeTransaction(
		transaction.BankTransaction{ID: "b1", MerchantName: "STARBUCKS"},
		[]transaction.Category{dining, groceries},
		learned,
	)

	require.NotNil(t, result)
	assert.Equal(t, "cat-groceries", result.Category.ID)
}

func TestAnalyzeTransaction_OccurrenceBoostClamped(t *testing.T) {
	svc := NewService(DefaultConfig(), nil)
	dining := category("cat-dining", "Dining Out", "Food")

	m := learnedMapping(t, dining, "starbucks", 0.95)
	for i := 0; i < 9; i++ {
		m = m.ConsolidatedWith(m)
	}
	require.Equal(t, 10, m.Occurrences)

	result := svc.AnalyzeTransaction(
		transaction.BankTransaction{ID: "b1", MerchantName: "STARBUCKS"},
		[]transaction.Category{dining},
		[]mapping.CategoryMapping{m},
	)

	require.NotNil(t, result)
	assert.InDelta(t, 1.0, result.Confidence, 0.0001)
}

func TestAnalyzeTransaction_FallbackMerchantNameContained(t *testing.T) {
	svc := NewService(DefaultConfig(), nil)
	dining := category("cat-dining", "Dining Out", "Food")

	result := svc.AnalyzeTransaction(
		transaction.BankTransaction{ID: "b1", MerchantName: "DINING OUT GRILL"},
		[]transaction.Category{dining},
		nil,
	)

	require.NotNil(t, result)
	assert.Equal(t, "cat-dining", result.Category.ID)
	assert.Equal(t, ReasonMerchantMatch, result.Reasoning)
	assert.InDelta(t, scoreNameContained*0.8, result.Confidence, 0.0001)
}

func TestAnalyzeTransaction_FallbackDescription(t *testing.T) {
	svc := NewService(DefaultConfig(), nil)
	groceries := category("cat-groceries", "Groceries", "Everyday Expenses")

	result := svc.AnalyzeTransaction(
		transaction.BankTransaction{ID: "b1", Description: "WEEKLY GROCERIES RUN"},
		[]transaction.Category{groceries},
		nil,
	)

	require.NotNil(t, result)
	assert.Equal(t, ReasonDescription, result.Reasoning)
}

func TestAnalyzeTransaction_FallbackGroupName(t *testing.T) {
	svc := NewService(DefaultConfig(), nil)
	groceries := category("cat-groceries", "Groceries", "Food")

	result := svc.AnalyzeTransaction(
		transaction.BankTransaction{ID: "b1", MerchantName: "WHOLE FOODS MARKET"},
		[]transaction.Category{groceries},
		nil,
	)

	require.NotNil(t, result)
	assert.Equal(t, "cat-groceries", result.Category.ID)
	assert.InDelta(t, scoreGroupContained*0.8, result.Confidence, 0.0001)
}

func TestAnalyzeTransaction_FallbackNearWordGenericReason(t *testing.T) {
	svc := NewService(DefaultConfig(), nil)
	coffee := category("cat-coffee", "Coffee Shops", "Dining")

	// "COFFE" is one edit away from "coffee"
	result := svc.AnalyzeTransaction(
		transaction.BankTransaction{ID: "b1", MerchantName: "COFFE HOUSE DOWNTOWN"},
		[]transaction.Category{coffee},
		nil,
	)

	require.NotNil(t, result)
	assert.Equal(t, ReasonFallback, result.Reasoning)
	assert.InDelta(t, scoreNearWord*0.8, result.Confidence, 0.0001)
}

func TestAnalyzeTransaction_FallbackNeverFullConfidence(t *testing.T) {
	svc := NewService(DefaultConfig(), nil)
	dining := category("cat-dining", "Dining Out", "Food")

	result := svc.AnalyzeTransaction(
		transaction.BankTransaction{ID: "b1", MerchantName: "DINING OUT"},
		[]transaction.Category{dining},
		nil,
	)

	require.NotNil(t, result)
	assert.LessOrEqual(t, result.Confidence, 0.8)
	assert.GreaterOrEqual(t, result.Confidence, 0.0)
}

func TestAnalyzeTransaction_NothingClearsThreshold(t *testing.T) {
	svc := NewService(DefaultConfig(), nil)

	// No token/substring condition holds between this merchant and the
	// catalog names, so inference stays empty rather than guessing.
	result := svc.AnalyzeTransaction(
		transaction.BankTransaction{ID: "b1", MerchantName: "STARBUCKS COFFEE"},
		[]transaction.Category{
			category("cat-dining", "Dining Out", ""),
			category("cat-food", "Food & Dining", ""),
		},
		nil,
	)

	assert.Nil(t, result)
}

func TestAnalyzeTransaction_EmptyTextNoMatch(t *testing.T) {
	svc := NewService(DefaultConfig(), nil)

	result := svc.AnalyzeTransaction(
		transaction.BankTransaction{ID: "b1", MerchantName: "   ", Description: ""},
		[]transaction.Category{category("cat-dining", "Dining Out", "Food")},
		nil,
	)

	assert.Nil(t, result)
}

func TestAnalyzeTransaction_CacheScopedToInputs(t *testing.T) {
	svc := NewService(DefaultConfig(), nil)
	dining := category("cat-dining", "Dining Out", "Food")
	groceries := category("cat-groceries", "Groceries", "Food")
	tx := transaction.BankTransaction{ID: "b1", MerchantName: "STARBUCKS"}
	learned := []mapping.CategoryMapping{learnedMapping(t, dining, "starbucks", 0.9)}

	first := svc.AnalyzeTransaction(tx, []transaction.Category{dining}, learned)
	require.NotNil(t, first)
	assert.Equal(t, "cat-dining", first.Category.ID)

	// A different catalog without the learned mapping must not see the
	// earlier result
	other := svc.AnalyzeTransaction(tx, []transaction.Category{groceries}, nil)
	assert.Nil(t, other)

	// Dropping the mapping takes effect immediately, no flush needed
	gone := svc.AnalyzeTransaction(tx, []transaction.Category{dining}, nil)
	assert.Nil(t, gone)

	// The original inputs still resolve, from cache or not
	again := svc.AnalyzeTransaction(tx, []transaction.Category{dining}, learned)
	require.NotNil(t, again)
	assert.Equal(t, first.Category.ID, again.Category.ID)
}
