// Package learning merges confirmed categorizations into the persistent
// pattern dictionary.
//
// Each candidate mapping passes a quality gate, then is either saved as new,
// consolidated into an existing same-category entry, or skipped when it
// conflicts with an established different-category entry. Conflicts are
// never silently overwritten; they surface as warnings for manual review.
package learning

import (
	"fmt"
	"log/slog"

	"github.com/eshaffer321/ynab-sync-backend/internal/domain/mapping"
	"github.com/eshaffer321/ynab-sync-backend/internal/infrastructure/storage"
)

// Status classifies the outcome of a learning batch.
type Status string

const (
	// StatusComplete means every candidate was saved or consolidated.
	StatusComplete Status = "complete"

	// StatusPartial means some candidates were skipped but no collaborator
	// failed.
	StatusPartial Status = "partial"

	// StatusFailed means the repository failed mid-batch. Mappings
	// processed before the failure are not rolled back here; the
	// repository's own atomicity, if any, governs that.
	StatusFailed Status = "failed"
)

// Config holds the learning thresholds.
type Config struct {
	// MinMappingConfidence is the quality-gate floor (default: 0.1).
	MinMappingConfidence float64

	// ConflictOverlapRatio is the share of the smaller pattern that must
	// overlap before two different-category mappings count as conflicting
	// (default: 0.5).
	ConflictOverlapRatio float64

	// ConflictConfidenceGap is how much more confident an existing
	// conflicting entry must be to win outright (default: 0.2).
	ConflictConfidenceGap float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MinMappingConfidence:  0.1,
		ConflictOverlapRatio:  0.5,
		ConflictConfidenceGap: 0.2,
	}
}

// SaveResult reports the outcome of one learning batch.
type SaveResult struct {
	SavedNew        int
	UpdatedExisting int
	Skipped         int
	Warnings        []string
	Errors          []string
	Mappings        []mapping.CategoryMapping
	Status          Status
}

// UseCase is the save-category-mappings use case.
type UseCase struct {
	repo   storage.MappingRepository
	cfg    Config
	logger *slog.Logger
}

// NewUseCase creates the learning use case.
func NewUseCase(repo storage.MappingRepository, cfg Config, logger *slog.Logger) *UseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &UseCase{
		repo:   repo,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "learning")),
	}
}

// SaveMappings merges a batch of candidate mappings into the dictionary.
// A repository failure anywhere degrades the whole batch to StatusFailed
// and stops processing.
func (uc *UseCase) SaveMappings(candidates []mapping.CategoryMapping) *SaveResult {
	result := &SaveResult{Status: StatusComplete}

	for _, candidate := range candidates {
		if uc.isLowQuality(candidate) {
			result.Skipped++
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("quality too low for pattern %q", candidate.Pattern.Key()))
			continue
		}

		existing, err := uc.repo.FindOverlapping(candidate.Pattern)
		if err != nil {
			return uc.fail(result, "lookup failed", err)
		}

		if len(existing) == 0 {
			saved, err := uc.repo.Save(candidate)
			if err != nil {
				return uc.fail(result, "save failed", err)
			}
			result.SavedNew++
			result.Mappings = append(result.Mappings, saved)
			continue
		}

		if sameCat := findSameCategory(existing, candidate); sameCat != nil {
			merged := sameCat.ConsolidatedWith(candidate)
			saved, err := uc.repo.Save(merged)
			if err != nil {
				return uc.fail(result, "save failed", err)
			}
			result.UpdatedExisting++
			result.Mappings = append(result.Mappings, saved)
			uc.logger.Debug("Consolidated mapping",
				"pattern", saved.Pattern.Key(),
				"category", saved.Category.Name,
				"occurrences", saved.Occurrences,
			)
			continue
		}

		if warning, conflicting := uc.findConflict(existing, candidate); conflicting {
			result.Skipped++
			result.Warnings = append(result.Warnings, warning)
			continue
		}

		// Overlap exists but is too weak to count as a conflict: the
		// candidate identifies a different merchant sharing an incidental
		// token, so it earns its own entry.
		saved, err := uc.repo.Save(candidate)
		if err != nil {
			return uc.fail(result, "save failed", err)
		}
		result.SavedNew++
		result.Mappings = append(result.Mappings, saved)
	}

	if result.Status == StatusComplete && (result.Skipped > 0 || len(result.Warnings) > 0) {
		result.Status = StatusPartial
	}

	uc.logger.Info("Learning batch processed",
		"candidates", len(candidates),
		"saved_new", result.SavedNew,
		"updated_existing", result.UpdatedExisting,
		"skipped", result.Skipped,
		"status", string(result.Status),
	)

	return result
}

// isLowQuality rejects candidates below the confidence floor or whose
// pattern has no token specific enough to identify a merchant.
func (uc *UseCase) isLowQuality(candidate mapping.CategoryMapping) bool {
	return candidate.Confidence < uc.cfg.MinMappingConfidence ||
		!candidate.Pattern.HasIdentifyingToken()
}

// findConflict checks the candidate against existing different-category
// entries. Returns a warning and true when a conflict blocks the save.
func (uc *UseCase) findConflict(existing []mapping.CategoryMapping, candidate mapping.CategoryMapping) (string, bool) {
	for _, ex := range existing {
		if ex.Pattern.OverlapRatio(candidate.Pattern) < uc.cfg.ConflictOverlapRatio {
			continue
		}
		if ex.Confidence-candidate.Confidence > uc.cfg.ConflictConfidenceGap {
			return fmt.Sprintf(
				"conflicting categorization exists with higher confidence for pattern %q (%s at %.2f)",
				candidate.Pattern.Key(), ex.Category.Name, ex.Confidence,
			), true
		}
		return fmt.Sprintf(
			"conflicting categorization detected for pattern %q - manual review needed",
			candidate.Pattern.Key(),
		), true
	}
	return "", false
}

func findSameCategory(existing []mapping.CategoryMapping, candidate mapping.CategoryMapping) *mapping.CategoryMapping {
	for i := range existing {
		if existing[i].Category.ID == candidate.Category.ID {
			return &existing[i]
		}
	}
	return nil
}

func (uc *UseCase) fail(result *SaveResult, op string, err error) *SaveResult {
	result.Status = StatusFailed
	result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", op, err))
	uc.logger.Error("Learning batch failed", "op", op, "error", err)
	return result
}
