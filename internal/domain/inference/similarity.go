package inference

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/eshaffer321/ynab-sync-backend/internal/domain/pattern"
	"github.com/eshaffer321/ynab-sync-backend/internal/domain/transaction"
)

// Similarity tiers for fallback scoring. The full category name beats the
// group name, which beats a single word, which beats a near-miss word.
const (
	scoreNameContained  = 0.9
	scoreGroupContained = 0.6
	scoreWordContained  = 0.4
	scoreNearWord       = 0.35
)

// similarity scores how well a transaction text matches a category in [0,1].
// Runs in one pass over the text per category word, so scoring stays linear
// in text length.
func similarity(text string, cat transaction.Category) float64 {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return 0
	}

	name := strings.ToLower(strings.TrimSpace(cat.Name))
	if name != "" && strings.Contains(t, name) {
		return scoreNameContained
	}

	group := strings.ToLower(strings.TrimSpace(cat.GroupName))
	if group != "" && strings.Contains(t, group) {
		return scoreGroupContained
	}

	// Word-level fallback: any sufficiently long word from the category
	// name found in the text, with a Levenshtein near-miss tier to absorb
	// bank-feed misspellings ("grocerys", "restuarant").
	var best float64
	textTokens := pattern.Tokenize(t)
	for _, word := range pattern.Tokenize(name) {
		if strings.Contains(t, word) {
			if scoreWordContained > best {
				best = scoreWordContained
			}
			continue
		}
		for _, tok := range textTokens {
			if nearMatch(tok, word) && scoreNearWord > best {
				best = scoreNearWord
			}
		}
	}
	return best
}

// nearMatch reports whether two tokens are within edit distance 1.
func nearMatch(a, b string) bool {
	diff := len(a) - len(b)
	if diff > 1 || diff < -1 {
		return false
	}
	return levenshtein.ComputeDistance(a, b) <= 1
}
