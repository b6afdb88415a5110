// Package mapping defines the learned pattern-to-category association.
//
// A CategoryMapping ties a normalized text pattern to a budget category with
// a confidence score and an occurrence count. Mappings are value objects:
// updates produce new instances rather than mutating in place.
package mapping

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/eshaffer321/ynab-sync-backend/internal/domain/pattern"
	"github.com/eshaffer321/ynab-sync-backend/internal/domain/transaction"
)

var (
	// ErrConfidenceOutOfRange is returned when confidence is outside [0,1].
	ErrConfidenceOutOfRange = errors.New("mapping: confidence must be in [0,1]")

	// ErrUnknownCategory is returned when a mapping targets the absence
	// sentinel instead of a real category.
	ErrUnknownCategory = errors.New("mapping: category must not be unknown")

	// ErrEmptyPattern is returned when a mapping has no pattern tokens.
	ErrEmptyPattern = errors.New("mapping: pattern must not be empty")
)

// CategoryMapping is a persisted pattern-to-category association.
type CategoryMapping struct {
	ID          uuid.UUID
	Category    transaction.Category
	Pattern     pattern.Pattern
	Confidence  float64
	Occurrences int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// New creates a mapping with a fresh identity and an occurrence count of 1.
func New(category transaction.Category, p pattern.Pattern, confidence float64) (CategoryMapping, error) {
	if category.IsUnknown() {
		return CategoryMapping{}, ErrUnknownCategory
	}
	if confidence < 0 || confidence > 1 {
		return CategoryMapping{}, ErrConfidenceOutOfRange
	}
	if p.Len() == 0 {
		return CategoryMapping{}, ErrEmptyPattern
	}

	now := time.Now().UTC()
	return CategoryMapping{
		ID:          uuid.New(),
		Category:    category,
		Pattern:     p,
		Confidence:  confidence,
		Occurrences: 1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ConsolidatedWith returns a copy of the mapping with the other mapping's
// pattern tokens merged in and the occurrence count incremented. The
// receiver keeps its identity, category, and confidence.
func (m CategoryMapping) ConsolidatedWith(other CategoryMapping) CategoryMapping {
	m.Pattern = m.Pattern.Union(other.Pattern)
	m.Occurrences++
	m.UpdatedAt = time.Now().UTC()
	return m
}
