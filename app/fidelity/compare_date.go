package fidelity

import (
	"fmt"
	"math"
	"time"

	"github.com/araddon/dateparse"
)

// CompareDate compares two date fields with granular reason codes. The
// inputs are raw strings as extracted from the page; parsing is lenient
// (meta tags ship everything from RFC 3339 to bare dates). Sub-minute
// differences count as exact, a gap within the same calendar day is a
// partial match and different days are a mismatch carrying the day count.
func (s *Scorer) CompareDate(a, b string) Verdict {
	if v := s.missingVerdict("date", a, b); v != nil {
		return *v
	}

	dateA, errA := dateparse.ParseAny(a)
	dateB, errB := dateparse.ParseAny(b)
	if errA != nil || errB != nil {
		return Verdict{Match: MatchFalse, Score: 0, Message: "invalid date"}
	}

	if dateA.Equal(dateB) {
		return Verdict{Match: MatchTrue, Score: 1, Message: "exact match"}
	}

	diff := dateA.Sub(dateB)
	if diff < 0 {
		diff = -diff
	}

	if sameCalendarDay(dateA, dateB) {
		switch {
		case diff < time.Minute:
			return Verdict{Match: MatchTrue, Score: 1, Message: "exact match"}
		case diff < time.Hour:
			minutes := int(diff.Round(time.Minute) / time.Minute)
			return Verdict{
				Match:   MatchPartial,
				Score:   0.75,
				Message: fmt.Sprintf("same day (%dmin diff)", minutes),
			}
		default:
			hours := int(diff.Round(time.Hour) / time.Hour)
			return Verdict{
				Match:   MatchPartial,
				Score:   0.5,
				Message: fmt.Sprintf("same day (%dhr diff)", hours),
			}
		}
	}

	days := int(math.Ceil(diff.Hours() / 24))
	return Verdict{
		Match:   MatchFalse,
		Score:   0,
		Message: fmt.Sprintf("%d day(s) difference", days),
	}
}

// sameCalendarDay reports whether two instants fall on the same UTC date.
func sameCalendarDay(a, b time.Time) bool {
	ya, ma, da := a.UTC().Date()
	yb, mb, db := b.UTC().Date()
	return ya == yb && ma == mb && da == db
}

// parsePublishedDate resolves the published date of a page, preferring the
// structured-data value over the meta-tag value, and returns the parsed
// instant. ok is false when neither source yields a parseable date.
func parsePublishedDate(page *PageSchema) (time.Time, bool) {
	props := effectiveProperties(page)
	for _, raw := range []string{props.DatePublished, page.PublishedDate} {
		if raw == "" {
			continue
		}
		if t, err := dateparse.ParseAny(raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
