package fidelity

import (
	"strings"
	"testing"
)

func TestCompareDate_ExactMatch(t *testing.T) {
	s := NewScorer(nil)

	v := s.CompareDate("2025-06-01T10:00:00Z", "2025-06-01T10:00:00Z")
	if v.Match != MatchTrue {
		t.Errorf("Expected identical instants to match, got %q: %s", v.Match, v.Message)
	}
	if v.Message != "exact match" {
		t.Errorf("Expected message 'exact match', got %q", v.Message)
	}
}

func TestCompareDate_MixedFormatsSameInstant(t *testing.T) {
	s := NewScorer(nil)

	v := s.CompareDate("2025-06-01T10:00:00Z", "Sun, 01 Jun 2025 10:00:00 GMT")
	if v.Match != MatchTrue {
		t.Errorf("Expected same instant in different formats to match, got %q: %s", v.Match, v.Message)
	}
}

func TestCompareDate_SubMinuteDrift(t *testing.T) {
	s := NewScorer(nil)

	v := s.CompareDate("2025-06-01T10:00:05Z", "2025-06-01T10:00:45Z")
	if v.Match != MatchTrue {
		t.Errorf("Expected sub-minute drift to count as exact, got %q: %s", v.Match, v.Message)
	}
	if v.Score != 1 {
		t.Errorf("Expected score 1 for sub-minute drift, got %v", v.Score)
	}
}

func TestCompareDate_SameDayMinutes(t *testing.T) {
	s := NewScorer(nil)

	v := s.CompareDate("2025-06-01T10:45:00Z", "2025-06-01T10:00:00Z")
	if v.Match != MatchPartial {
		t.Errorf("Expected same-day gap to be partial, got %q: %s", v.Match, v.Message)
	}
	if v.Score != 0.75 {
		t.Errorf("Expected score 0.75 for sub-hour gap, got %v", v.Score)
	}
	if !strings.Contains(v.Message, "45min") {
		t.Errorf("Expected minute count in message, got %q", v.Message)
	}
}

func TestCompareDate_SameDayHours(t *testing.T) {
	s := NewScorer(nil)

	v := s.CompareDate("2025-06-01T08:00:00Z", "2025-06-01T14:00:00Z")
	if v.Match != MatchPartial {
		t.Errorf("Expected multi-hour same-day gap to be partial, got %q: %s", v.Match, v.Message)
	}
	if v.Score != 0.5 {
		t.Errorf("Expected score 0.5 for multi-hour gap, got %v", v.Score)
	}
	if !strings.Contains(v.Message, "6hr") {
		t.Errorf("Expected hour count in message, got %q", v.Message)
	}
}

func TestCompareDate_DifferentDays(t *testing.T) {
	s := NewScorer(nil)

	v := s.CompareDate("2025-06-05T10:00:00Z", "2025-06-01T10:00:00Z")
	if v.Match != MatchFalse {
		t.Errorf("Expected different days to mismatch, got %q: %s", v.Match, v.Message)
	}
	if v.Message != "4 day(s) difference" {
		t.Errorf("Expected message '4 day(s) difference', got %q", v.Message)
	}
}

func TestCompareDate_PartialDayRoundsUp(t *testing.T) {
	s := NewScorer(nil)

	// 30 hours apart across a day boundary counts as 2 days.
	v := s.CompareDate("2025-06-01T20:00:00Z", "2025-06-03T02:00:00Z")
	if v.Match != MatchFalse {
		t.Errorf("Expected cross-day gap to mismatch, got %q: %s", v.Match, v.Message)
	}
	if v.Message != "2 day(s) difference" {
		t.Errorf("Expected message '2 day(s) difference', got %q", v.Message)
	}
}

func TestCompareDate_Invalid(t *testing.T) {
	s := NewScorer(nil)

	v := s.CompareDate("not a date", "also not a date")
	if v.Match != MatchFalse {
		t.Errorf("Expected unparseable dates to mismatch, got %q: %s", v.Match, v.Message)
	}
	if v.Message != "invalid date" {
		t.Errorf("Expected message 'invalid date', got %q", v.Message)
	}
}

func TestCompareDate_MissingPolicy(t *testing.T) {
	s := NewScorer(nil)

	if v := s.CompareDate("2025-06-01", ""); v.Match != MatchTrue {
		t.Errorf("Expected canonical-missing date to be ignored, got %q: %s", v.Match, v.Message)
	}
	if v := s.CompareDate("", "2025-06-01"); v.Match != MatchFalse {
		t.Errorf("Expected original-missing date to mismatch, got %q: %s", v.Match, v.Message)
	}
}
