package fidelity

import (
	"fmt"
	"regexp"
	"strings"
)

// sitePatterns match trailing publisher branding that survives the
// separator split, e.g. " - example.com" or " | Yahoo Finance".
var sitePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s*[-|]\s*[^-|]*\.(com|org|net|io|co|gov)$`),
	regexp.MustCompile(`(?i)\s*[-|]\s*[A-Za-z0-9 ]+(News|Times|Post|Herald|Journal|Chronicle|Gazette|Tribune|Daily|Yahoo|CNN|BBC|NBC|CBS|Fox|Reuters|Bloomberg)$`),
	regexp.MustCompile(`(?i)\s*[-|]\s*Yahoo(\s+(Finance|News|Sports))?\s*$`),
}

// titleSeparators mark where a site-name suffix begins. The split happens at
// the last occurrence so multi-part headlines keep their own separators.
var titleSeparators = []string{" - ", " | ", ": "}

// CleanTitle strips a trailing site-name suffix from a page title: first the
// text after the last separator, then any residual publisher branding.
func CleanTitle(title string) string {
	if title == "" {
		return ""
	}

	cut := -1
	for _, sep := range titleSeparators {
		if idx := strings.LastIndex(title, sep); idx > cut {
			cut = idx
		}
	}
	if cut > 0 {
		title = title[:cut]
	}

	for _, pattern := range sitePatterns {
		title = pattern.ReplaceAllString(title, "")
	}

	return strings.TrimSpace(title)
}

// titleSimilarity is the word-overlap metric used for titles: shared tokens
// over the smaller token count, so a title embedded in a longer one still
// scores high. Tokens of length <= 2 are dropped, as in jaccard.
func titleSimilarity(a, b string) float64 {
	tokensA := tokenize(a)
	tokensB := tokenize(b)

	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	setB := make(map[string]struct{}, len(tokensB))
	for _, tok := range tokensB {
		setB[tok] = struct{}{}
	}

	shared := 0
	seen := make(map[string]struct{}, len(tokensA))
	for _, tok := range tokensA {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		if _, ok := setB[tok]; ok {
			shared++
		}
	}

	smaller := len(seen)
	if len(setB) < smaller {
		smaller = len(setB)
	}

	sim := float64(shared) / float64(smaller)
	if sim > 1 {
		sim = 1
	}
	return sim
}

// CompareTitle compares two page titles with site-name awareness. Both
// titles (and any Open Graph variants) are cleaned of publisher suffixes
// before comparison; thresholds are lower than for body text because titles
// are short.
func (s *Scorer) CompareTitle(a, b, ogA, ogB string) Verdict {
	if v := s.missingVerdict("title", a, b); v != nil {
		return *v
	}

	cleanA := Normalize(CleanTitle(a))
	cleanB := Normalize(CleanTitle(b))
	cleanOgA := Normalize(CleanTitle(ogA))
	cleanOgB := Normalize(CleanTitle(ogB))

	if cleanA == cleanB {
		return Verdict{Match: MatchTrue, Score: 1, Message: "titles match (excluding site names)"}
	}
	if cleanOgA != "" && cleanOgA == cleanOgB {
		return Verdict{Match: MatchTrue, Score: 1, Message: "og titles match (excluding site names)"}
	}
	if (cleanOgB != "" && cleanA == cleanOgB) || (cleanOgA != "" && cleanB == cleanOgA) {
		return Verdict{Match: MatchTrue, Score: 1, Message: "title matches og title (excluding site names)"}
	}

	best := bestSimilarity(cleanA, cleanB, cleanOgA, cleanOgB, titleSimilarity)
	pct := int(best.similarity*100 + 0.5)

	switch {
	case best.similarity >= s.cfg.TitleHighSimilarity:
		return Verdict{Match: MatchTrue, Score: 0.9, Message: verdictMessage(best.label, "high", pct)}
	case best.similarity >= s.cfg.TitlePartialSimilarity:
		return Verdict{Match: MatchPartial, Score: 0.7, Message: verdictMessage(best.label, "moderate", pct)}
	case contains(cleanA, cleanB) ||
		(cleanOgA != "" && strings.Contains(cleanOgA, cleanB)) ||
		(cleanOgB != "" && strings.Contains(cleanOgB, cleanA)):
		return Verdict{Match: MatchPartial, Score: 0.5, Message: "one title contains the other"}
	}

	// Low word overlap: fall back to the generic text comparator, which also
	// considers containment and the full Jaccard metric. A weak partial from
	// the fallback is downgraded to a mismatch.
	fallback := s.CompareText(cleanA, cleanB, cleanOgA, cleanOgB)
	if fallback.Match == MatchPartial && fallback.Score < s.cfg.TitlePartialSimilarity {
		fallback.Match = MatchFalse
	}
	return fallback
}

func verdictMessage(label, level string, pct int) string {
	return fmt.Sprintf("%s: %s similarity (%d%%)", label, level, pct)
}
