package fidelity

import (
	"fmt"
	"strings"
)

// similarityPair labels one of the text combinations considered when Open
// Graph variants are available.
type similarityPair struct {
	label      string
	similarity float64
}

// missingVerdict resolves the cases where one or both sides lack a value.
// The relationship is asymmetric: the syndicated page dropping a field the
// canonical page carries is a mismatch, while the canonical page lacking a
// field is ignored under the default policy. Returns nil when both sides are
// present and the comparison should proceed.
func (s *Scorer) missingVerdict(field, a, b string) *Verdict {
	switch {
	case a == "" && b == "":
		return &Verdict{Match: MatchTrue, Score: 1, Message: fmt.Sprintf("both %ss missing", field)}
	case a != "" && b == "":
		if s.cfg.MissingField == MissingPenalize {
			return &Verdict{Match: MatchFalse, Score: 0, Message: fmt.Sprintf("canonical %s missing", field)}
		}
		return &Verdict{Match: MatchTrue, Score: 1, Message: fmt.Sprintf("canonical %s missing (ignored)", field)}
	case a == "" && b != "":
		return &Verdict{Match: MatchFalse, Score: 0, Message: fmt.Sprintf("original %s missing", field)}
	}
	return nil
}

// CompareText compares two text fields, using word-set overlap when they are
// not equal. ogA and ogB are optional Open Graph variants of the same field;
// when supplied, every combination is scored and the best pairing wins.
func (s *Scorer) CompareText(a, b, ogA, ogB string) Verdict {
	if v := s.missingVerdict("text", a, b); v != nil {
		return *v
	}

	if a == b {
		return Verdict{Match: MatchTrue, Score: 1, Message: "exact match"}
	}

	cleanA := Normalize(a)
	cleanB := Normalize(b)
	cleanOgA := Normalize(ogA)
	cleanOgB := Normalize(ogB)

	if cleanA == cleanB {
		return Verdict{Match: MatchTrue, Score: 1, Message: "exact match (normalized)"}
	}
	if cleanOgA != "" && cleanOgA == cleanOgB {
		return Verdict{Match: MatchTrue, Score: 1, Message: "og texts match exactly"}
	}
	if cleanOgB != "" && cleanA == cleanOgB {
		return Verdict{Match: MatchTrue, Score: 1, Message: "text matches og text exactly"}
	}
	if cleanOgA != "" && cleanB == cleanOgA {
		return Verdict{Match: MatchTrue, Score: 1, Message: "text matches og text exactly"}
	}

	best := bestSimilarity(cleanA, cleanB, cleanOgA, cleanOgB, jaccard)

	// Containment counts as high similarity even when the word sets barely
	// overlap (a teaser paragraph inside a full paragraph).
	if contains(cleanA, cleanB) {
		score := best.similarity
		if score < s.cfg.TextHighSimilarity {
			score = s.cfg.TextHighSimilarity
		}
		return Verdict{
			Match:   MatchTrue,
			Score:   score,
			Message: "one text contains the other",
		}
	}

	return s.similarityVerdict(best, s.cfg.TextHighSimilarity, s.cfg.TextPartialSimilarity)
}

// bestSimilarity scores every available pairing of the main texts and their
// Open Graph variants with the supplied metric and returns the best one.
func bestSimilarity(a, b, ogA, ogB string, metric func(string, string) float64) similarityPair {
	best := similarityPair{label: "main texts", similarity: metric(a, b)}

	candidates := []similarityPair{}
	if ogA != "" && ogB != "" {
		candidates = append(candidates, similarityPair{"og texts", metric(ogA, ogB)})
	}
	if ogB != "" {
		candidates = append(candidates, similarityPair{"text to og", metric(a, ogB)})
	}
	if ogA != "" {
		candidates = append(candidates, similarityPair{"og to text", metric(ogA, b)})
	}

	for _, c := range candidates {
		if c.similarity > best.similarity {
			best = c
		}
	}
	return best
}

func (s *Scorer) similarityVerdict(best similarityPair, high, partial float64) Verdict {
	pct := int(best.similarity*100 + 0.5)

	switch {
	case best.similarity >= high:
		return Verdict{
			Match:   MatchTrue,
			Score:   best.similarity,
			Message: fmt.Sprintf("%s: high similarity (%d%%)", best.label, pct),
		}
	case best.similarity >= partial:
		return Verdict{
			Match:   MatchPartial,
			Score:   best.similarity,
			Message: fmt.Sprintf("%s: moderate similarity (%d%%)", best.label, pct),
		}
	default:
		return Verdict{
			Match:   MatchFalse,
			Score:   best.similarity,
			Message: fmt.Sprintf("%s: low similarity (%d%%)", best.label, pct),
		}
	}
}

func contains(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
