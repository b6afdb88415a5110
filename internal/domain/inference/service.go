// Package inference scores bank transactions against the category catalog
// and the learned pattern dictionary.
//
// Analysis runs in two phases. The exact phase looks for a learned mapping
// whose token set overlaps the transaction's pattern and returns the most
// confident one. The fallback phase, used only when no learned mapping
// applies, scores the transaction's merchant name and description against
// every catalog category and returns the best score above a minimum
// threshold, discounted so it never reaches full confidence.
//
// Example usage:
//
//	svc := inference.NewService(inference.DefaultConfig(), logger)
//	result := svc.AnalyzeTransaction(tx, categories, learned)
//	if result != nil {
//		// result.Category, result.Confidence, result.Reasoning
//	}
package inference

import (
	"fmt"
	"hash/fnv"
	"log/slog"
	"sort"
	"strconv"

	gocache "github.com/patrickmn/go-cache"

	"github.com/eshaffer321/ynab-sync-backend/internal/domain/mapping"
	"github.com/eshaffer321/ynab-sync-backend/internal/domain/pattern"
	"github.com/eshaffer321/ynab-sync-backend/internal/domain/transaction"
)

// Service is the category inference engine. Safe for concurrent use.
type Service struct {
	cfg    Config
	cache  *gocache.Cache
	logger *slog.Logger
}

// NewService creates an inference service.
func NewService(cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:    cfg,
		cache:  gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		logger: logger.With(slog.String("component", "inference")),
	}
}

// AnalyzeTransaction infers the most likely category for a bank transaction.
// Returns nil when nothing clears the confidence threshold; malformed or
// empty text never produces an error, only a nil result.
//
// Results are cached for the configured TTL, keyed by the normalized pattern
// together with a fingerprint of the catalog and learned dictionary, so a call
// with different categories or mappings never sees another call's result.
func (s *Service) AnalyzeTransaction(
	tx transaction.BankTransaction,
	categories []transaction.Category,
	learned []mapping.CategoryMapping,
) *Result {
	if len(categories) == 0 {
		return nil
	}

	p, patternErr := pattern.New(tx.MerchantName, tx.Description)
	key := ""
	if patternErr == nil {
		key = cacheKey(p, categories, learned)
		if cached, found := s.cache.Get(key); found {
			result := cached.(Result)
			return &result
		}

		if result := s.exactMatch(p, learned); result != nil {
			s.cache.SetDefault(key, *result)
			s.logger.Debug("Exact pattern match",
				"transaction_id", tx.ID,
				"category", result.Category.Name,
				"confidence", result.Confidence,
			)
			return result
		}
	}

	result := s.fallbackMatch(tx, categories)
	if result == nil {
		return nil
	}

	if patternErr == nil {
		s.cache.SetDefault(key, *result)
	}
	s.logger.Debug("Fallback category match",
		"transaction_id", tx.ID,
		"category", result.Category.Name,
		"confidence", result.Confidence,
		"reasoning", result.Reasoning,
	)
	return result
}

// InvalidateCache drops all cached inference results. Stale entries are
// already unreachable once the catalog or dictionary changes; this just
// reclaims them before the TTL does.
func (s *Service) InvalidateCache() {
	s.cache.Flush()
}

// cacheKey combines the transaction pattern with a digest of the catalog and
// learned dictionary. Input order does not affect the key; a changed category
// set, mapping, occurrence count, or confidence does.
func cacheKey(p pattern.Pattern, categories []transaction.Category, learned []mapping.CategoryMapping) string {
	parts := make([]string, 0, len(categories)+len(learned))
	for _, c := range categories {
		parts = append(parts, "c:"+c.ID)
	}
	for i := range learned {
		mp := &learned[i]
		parts = append(parts, fmt.Sprintf("m:%s:%d:%g", mp.ID, mp.Occurrences, mp.Confidence))
	}
	sort.Strings(parts)

	h := fnv.New64a()
	for _, part := range parts {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return p.Key() + "|" + strconv.FormatUint(h.Sum64(), 16)
}

// exactMatch returns the highest-confidence learned mapping whose pattern
// overlaps the transaction pattern. Ties keep the earlier mapping, so the
// outcome is deterministic for a given input order.
func (s *Service) exactMatch(p pattern.Pattern, learned []mapping.CategoryMapping) *Result {
	var best *mapping.CategoryMapping
	var bestConfidence float64

	for i := range learned {
		mp := &learned[i]
		if !mp.Pattern.Overlaps(p) {
			continue
		}
		confidence := s.boostedConfidence(mp)
		if best == nil || confidence > bestConfidence {
			best = mp
			bestConfidence = confidence
		}
	}

	if best == nil {
		return nil
	}
	return &Result{
		Category:   best.Category,
		Confidence: bestConfidence,
		Reasoning:  ReasonExactPattern,
	}
}

// boostedConfidence strengthens a mapping's confidence as confirmations
// accumulate, clamped at 1.0.
func (s *Service) boostedConfidence(mp *mapping.CategoryMapping) float64 {
	confidence := mp.Confidence + s.cfg.OccurrenceBoost*float64(mp.Occurrences-1)
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

// fallbackMatch scores merchant name and description against the catalog.
func (s *Service) fallbackMatch(tx transaction.BankTransaction, categories []transaction.Category) *Result {
	var (
		bestScore    float64
		bestCategory transaction.Category
		bestReason   string
	)

	for _, cat := range categories {
		if cat.IsUnknown() {
			continue
		}
		if score := similarity(tx.MerchantName, cat); score > bestScore {
			bestScore = score
			bestCategory = cat
			bestReason = ReasonMerchantMatch
		}
		if score := similarity(tx.Description, cat); score > bestScore {
			bestScore = score
			bestCategory = cat
			bestReason = ReasonDescription
		}
	}

	if bestScore < s.cfg.MinConfidence {
		return nil
	}

	// Near-miss word matches are too weak to credit a specific field.
	if bestScore <= scoreNearWord {
		bestReason = ReasonFallback
	}

	return &Result{
		Category:   bestCategory,
		Confidence: bestScore * s.cfg.FallbackDiscount,
		Reasoning:  bestReason,
	}
}
