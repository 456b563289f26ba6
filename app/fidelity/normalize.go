package fidelity

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases text, collapses runs of whitespace into single spaces
// and trims the result. Unicode input is NFC-composed first so that visually
// identical strings from different extractors compare equal. The empty
// string normalizes to itself, and Normalize is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFC.String(text)
	text = strings.ToLower(text)

	return strings.Join(strings.Fields(text), " ")
}

// tokenize splits normalized text into comparison tokens, dropping tokens of
// length <= 2 (articles, prepositions, stray punctuation).
func tokenize(normalized string) []string {
	fields := strings.Fields(normalized)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// wordSet returns the unique-token set of normalized text.
func wordSet(normalized string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range tokenize(normalized) {
		set[tok] = struct{}{}
	}
	return set
}

// jaccard computes |intersection| / |union| over the unique word sets of two
// normalized strings. Two empty sets yield 0; similarity of empty inputs is
// handled by the missing-field policy before this point.
func jaccard(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)

	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	shared := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			shared++
		}
	}

	union := len(setA) + len(setB) - shared
	if union == 0 {
		return 0
	}

	return float64(shared) / float64(union)
}
