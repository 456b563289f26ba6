package fidelity

import (
	"strings"
	"testing"
)

func TestCompareText_ExactMatch(t *testing.T) {
	s := NewScorer(nil)

	v := s.CompareText("Shared paragraph content here", "Shared paragraph content here", "", "")
	if v.Match != MatchTrue {
		t.Errorf("Expected match true for identical texts, got %q", v.Match)
	}
	if v.Score != 1 {
		t.Errorf("Expected score 1 for identical texts, got %v", v.Score)
	}
}

func TestCompareText_NormalizedMatch(t *testing.T) {
	s := NewScorer(nil)

	v := s.CompareText("  Shared   Paragraph ", "shared paragraph", "", "")
	if v.Match != MatchTrue {
		t.Errorf("Expected normalized texts to match, got %q: %s", v.Match, v.Message)
	}
}

func TestCompareText_AsymmetricMissing(t *testing.T) {
	s := NewScorer(nil)

	// Canonical side missing is ignored under the default policy.
	v := s.CompareText("present on syndicated page", "", "", "")
	if v.Match != MatchTrue {
		t.Errorf("Expected canonical-missing to be ignored, got %q: %s", v.Match, v.Message)
	}

	// Syndicated side missing a canonical value is a mismatch.
	v = s.CompareText("", "present on canonical page", "", "")
	if v.Match != MatchFalse {
		t.Errorf("Expected original-missing to be a mismatch, got %q: %s", v.Match, v.Message)
	}
	if v.Score != 0 {
		t.Errorf("Expected score 0 for original-missing, got %v", v.Score)
	}

	// Both missing counts as a match.
	v = s.CompareText("", "", "", "")
	if v.Match != MatchTrue {
		t.Errorf("Expected both-missing to match, got %q: %s", v.Match, v.Message)
	}
}

func TestCompareText_PenalizePolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MissingField = MissingPenalize
	s := NewScorer(cfg)

	v := s.CompareText("present", "", "", "")
	if v.Match != MatchFalse {
		t.Errorf("Expected canonical-missing mismatch under penalize policy, got %q", v.Match)
	}
}

func TestCompareText_SimilarityThresholds(t *testing.T) {
	s := NewScorer(nil)

	// Nine of ten unique tokens shared lands above the high-similarity
	// threshold without triggering containment.
	a := "minister announces sweeping budget reform package during today parliament session"
	b := "minister announces sweeping budget reform package today parliament session"
	v := s.CompareText(a, b, "", "")
	if v.Match != MatchTrue {
		t.Errorf("Expected high-similarity texts to match, got %q: %s", v.Match, v.Message)
	}
	if !strings.Contains(v.Message, "%") {
		t.Errorf("Expected similarity percentage in message, got %q", v.Message)
	}

	// Five of seven unique tokens shared lands in the partial band.
	a = "storm warning issued coastal regions today"
	b = "storm warning issued inland regions today"
	v = s.CompareText(a, b, "", "")
	if v.Match != MatchPartial {
		t.Errorf("Expected moderate-similarity texts to be partial, got %q: %s", v.Match, v.Message)
	}

	// Unrelated texts fall below the partial threshold.
	v = s.CompareText("quarterly earnings exceeded expectations", "local festival drew record crowds", "", "")
	if v.Match != MatchFalse {
		t.Errorf("Expected unrelated texts to mismatch, got %q: %s", v.Match, v.Message)
	}
}

func TestCompareText_Containment(t *testing.T) {
	s := NewScorer(nil)

	full := "the committee approved the proposal after a lengthy debate over funding priorities and regional allocations"
	teaser := "the committee approved the proposal"

	v := s.CompareText(teaser, full, "", "")
	if v.Match != MatchTrue {
		t.Errorf("Expected contained text to match, got %q: %s", v.Match, v.Message)
	}
	if v.Score < s.cfg.TextHighSimilarity {
		t.Errorf("Expected containment score >= %v, got %v", s.cfg.TextHighSimilarity, v.Score)
	}
}

func TestCompareText_OpenGraphFallback(t *testing.T) {
	s := NewScorer(nil)

	// Main texts are unrelated but the og description matches one side.
	a := "subscribe now for unlimited access"
	b := "council votes to expand transit network downtown"
	ogB := "subscribe now for unlimited access"

	v := s.CompareText(a, b, "", ogB)
	if v.Match != MatchTrue {
		t.Errorf("Expected og variant to rescue the comparison, got %q: %s", v.Match, v.Message)
	}
}

func TestBestSimilarity_PicksMaximum(t *testing.T) {
	metric := func(a, b string) float64 {
		if a == b {
			return 1
		}
		return 0
	}

	best := bestSimilarity("x", "y", "z", "x", metric)
	if best.label != "text to og" {
		t.Errorf("Expected text-to-og pairing to win, got %q", best.label)
	}
	if best.similarity != 1 {
		t.Errorf("Expected winning similarity 1, got %v", best.similarity)
	}
}
