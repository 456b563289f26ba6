package fidelity

import (
	"fmt"
	"math"
	"net/url"
)

// remediation is the fixed issue/action pair emitted for a low-scoring
// dimension.
type remediation struct {
	issue  string
	action string
}

var remediations = map[string]remediation{
	DimensionStructure: {
		issue:  "Heading structure differs from the canonical page",
		action: "Preserve the original H1/H2 hierarchy when republishing",
	},
	DimensionMedia: {
		issue:  "Images are missing or differ from the canonical page",
		action: "Carry over the original article images, including the lead image",
	},
	DimensionEmbeds: {
		issue:  "Embedded content may not have been carried over",
		action: "Verify that social embeds and interactive elements are reproduced",
	},
	DimensionStyling: {
		issue:  "Styling may differ from the canonical page",
		action: "Review typography and layout against the canonical page",
	},
	DimensionCompleteness: {
		issue:  "Article content appears incomplete compared to the canonical page",
		action: "Republish the full article body, not a truncated excerpt",
	},
	DimensionMetadata: {
		issue:  "Metadata does not match the canonical page",
		action: "Mirror the canonical title, description, dates and structured data",
	},
}

// recommendationOrder keeps the output deterministic.
var recommendationOrder = []string{
	DimensionStructure,
	DimensionMedia,
	DimensionEmbeds,
	DimensionStyling,
	DimensionCompleteness,
	DimensionMetadata,
}

// Recommend derives remediation hints from the dimension scores. Each
// dimension below the recommendation threshold yields exactly one
// recommendation; styling is informational and always low severity.
func (s *Scorer) Recommend(dimensions map[string]DimensionScore) []Recommendation {
	recommendations := make([]Recommendation, 0)

	for _, name := range recommendationOrder {
		score := dimensions[name].Score
		if score >= s.cfg.RecommendationThreshold {
			continue
		}

		severity := SeverityMedium
		switch {
		case name == DimensionStyling:
			severity = SeverityLow
		case score < s.cfg.HighSeverityThreshold:
			severity = SeverityHigh
		}

		r := remediations[name]
		recommendations = append(recommendations, Recommendation{
			Dimension: name,
			Severity:  severity,
			Issue:     r.issue,
			Action:    r.action,
		})
	}

	return recommendations
}

// Insights derives cross-cutting observations from the scored pair. They
// sit beside the score and never feed back into it.
func (s *Scorer) Insights(original, canonical *PageSchema, dimensions map[string]DimensionScore) []Insight {
	insights := make([]Insight, 0)

	low := 0
	for _, d := range dimensions {
		if d.Score < s.cfg.InsightThreshold {
			low++
		}
	}
	if low >= 3 {
		insights = append(insights, Insight{
			Kind:    "fidelity",
			Message: fmt.Sprintf("%d fidelity dimensions score low; the syndicated copy diverges broadly from its canonical source", low),
		})
	}

	if host := canonicalHost(canonical.URL); host != "" {
		insights = append(insights, Insight{
			Kind:    "publisher",
			Message: fmt.Sprintf("Canonical content is published by %s", host),
		})
	}

	if originalDate, ok := parsePublishedDate(original); ok {
		if canonicalDate, ok := parsePublishedDate(canonical); ok {
			lag := originalDate.Sub(canonicalDate)
			if lag < 0 {
				lag = -lag
			}
			if days := int(math.Ceil(lag.Hours() / 24)); days >= 1 && !sameCalendarDay(originalDate, canonicalDate) {
				insights = append(insights, Insight{
					Kind:    "syndication-lag",
					Message: fmt.Sprintf("The syndicated copy was published %d day(s) apart from the canonical article", days),
				})
			}
		}
	}

	return insights
}

func canonicalHost(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
