// Package pattern normalizes transaction text into token sets used for
// category lookups.
//
// A pattern is built from free-text fields (merchant name, description) by
// lowercasing, splitting on non-alphanumeric runes, and dropping tokens
// shorter than 3 runes. Two patterns "match" when their token sets
// share at least one token; this deliberately loose overlap rule lets a
// learned pattern like {"starbucks"} match every visit to the same merchant
// regardless of the store number or city appended by the bank feed.
package pattern

import (
	"errors"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrEmptyPattern is returned when normalization leaves no usable tokens.
var ErrEmptyPattern = errors.New("pattern: no usable tokens after normalization")

// MinTokenLength is the shortest token kept during normalization, in runes.
const MinTokenLength = 3

// genericTokens are tokens too common in bank feeds to identify a merchant.
var genericTokens = map[string]struct{}{
	"pos":      {},
	"atm":      {},
	"fee":      {},
	"inc":      {},
	"llc":      {},
	"ltd":      {},
	"the":      {},
	"and":      {},
	"card":     {},
	"debit":    {},
	"credit":   {},
	"payment":  {},
	"purchase": {},
	"transfer": {},
	"online":   {},
}

// IsGeneric reports whether a token is on the generic denylist.
func IsGeneric(token string) bool {
	_, ok := genericTokens[strings.ToLower(token)]
	return ok
}

// Pattern is an immutable set of normalized text tokens. It is never empty.
type Pattern struct {
	tokens map[string]struct{}
}

// New builds a pattern from one or more free-text fields. Blank fields are
// ignored; if no field yields a usable token, ErrEmptyPattern is returned.
func New(texts ...string) (Pattern, error) {
	tokens := make(map[string]struct{})
	for _, text := range texts {
		for _, tok := range Tokenize(text) {
			tokens[tok] = struct{}{}
		}
	}
	if len(tokens) == 0 {
		return Pattern{}, ErrEmptyPattern
	}
	return Pattern{tokens: tokens}, nil
}

// FromTokens rebuilds a pattern from persisted tokens, applying the same
// normalization as New.
func FromTokens(tokens []string) (Pattern, error) {
	return New(strings.Join(tokens, " "))
}

// Tokenize splits text into normalized tokens: lowercased, separated on
// non-alphanumeric runes, with tokens shorter than MinTokenLength dropped.
// Runs in a single pass over the input.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= MinTokenLength {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Tokens returns the pattern's tokens in sorted order.
func (p Pattern) Tokens() []string {
	tokens := make([]string, 0, len(p.tokens))
	for tok := range p.tokens {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)
	return tokens
}

// Len returns the number of tokens in the pattern.
func (p Pattern) Len() int {
	return len(p.tokens)
}

// Contains reports whether the pattern holds the given token.
func (p Pattern) Contains(token string) bool {
	_, ok := p.tokens[token]
	return ok
}

// Overlaps reports whether the two patterns share at least one token.
// This is the "exact match" predicate used by category inference.
func (p Pattern) Overlaps(other Pattern) bool {
	small, large := p.tokens, other.tokens
	if len(large) < len(small) {
		small, large = large, small
	}
	for tok := range small {
		if _, ok := large[tok]; ok {
			return true
		}
	}
	return false
}

// OverlapRatio returns the number of shared tokens divided by the size of
// the smaller pattern. Returns 0 when either pattern is empty.
func (p Pattern) OverlapRatio(other Pattern) float64 {
	if len(p.tokens) == 0 || len(other.tokens) == 0 {
		return 0
	}

	shared := 0
	small, large := p.tokens, other.tokens
	if len(large) < len(small) {
		small, large = large, small
	}
	for tok := range small {
		if _, ok := large[tok]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(small))
}

// Union returns a new pattern containing the tokens of both patterns.
func (p Pattern) Union(other Pattern) Pattern {
	tokens := make(map[string]struct{}, len(p.tokens)+len(other.tokens))
	for tok := range p.tokens {
		tokens[tok] = struct{}{}
	}
	for tok := range other.tokens {
		tokens[tok] = struct{}{}
	}
	return Pattern{tokens: tokens}
}

// HasIdentifyingToken reports whether at least one token is long enough and
// specific enough to identify a merchant (not on the generic denylist).
func (p Pattern) HasIdentifyingToken() bool {
	for tok := range p.tokens {
		if !IsGeneric(tok) {
			return true
		}
	}
	return false
}

// Key returns a stable string form of the pattern, usable as a cache key.
func (p Pattern) Key() string {
	return strings.Join(p.Tokens(), " ")
}

// String implements fmt.Stringer.
func (p Pattern) String() string {
	return p.Key()
}
