package fidelity

import "math"

// Scorer runs the full fidelity comparison between a syndicated page and its
// canonical source. A Scorer is immutable after construction and safe for
// concurrent use; every comparison is pure and allocates its own state.
type Scorer struct {
	cfg *Config
}

// NewScorer creates a scorer. A nil config selects the defaults.
func NewScorer(cfg *Config) *Scorer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Scorer{cfg: cfg}
}

// Config returns the scorer's configuration.
func (s *Scorer) Config() *Config {
	return s.cfg
}

// Score compares the syndicated page against its canonical source and
// returns the full fidelity report. The contract is total: for any two
// schemas the result is a report, never an error. Internal parse failures
// degrade individual verdicts instead of propagating.
func (s *Scorer) Score(original, canonical *PageSchema) *Report {
	if original == nil {
		original = &PageSchema{}
	}
	if canonical == nil {
		canonical = &PageSchema{}
	}

	fields := s.compareFields(original, canonical)
	dimensions := s.scoreDimensions(original, canonical, fields)

	report := &Report{
		Dimensions:      dimensions,
		Fields:          fields,
		Recommendations: s.Recommend(dimensions),
		Insights:        s.Insights(original, canonical, dimensions),
	}

	switch s.cfg.Profile {
	case ProfilePoints:
		points := s.scorePoints(original, canonical, fields)
		report.Points = points
		report.OverallScore = int(math.Round(100 * points.EarnedPoints / points.TotalPoints))
	default:
		report.OverallScore = s.overallScore(dimensions)
	}

	return report
}

// compareFields runs every field comparator once and collects the verdicts
// keyed by field name. The verdicts are shared by both scoring profiles and
// by the report itself.
func (s *Scorer) compareFields(original, canonical *PageSchema) map[string]Verdict {
	ogOriginal := original.OpenGraph
	if ogOriginal == nil {
		ogOriginal = &OpenGraph{}
	}
	ogCanonical := canonical.OpenGraph
	if ogCanonical == nil {
		ogCanonical = &OpenGraph{}
	}

	propsOriginal := effectiveProperties(original)
	propsCanonical := effectiveProperties(canonical)

	publishedOriginal := firstNonEmpty(propsOriginal.DatePublished, original.PublishedDate)
	publishedCanonical := firstNonEmpty(propsCanonical.DatePublished, canonical.PublishedDate)
	modifiedOriginal := firstNonEmpty(propsOriginal.DateModified, original.ModifiedDate)
	modifiedCanonical := firstNonEmpty(propsCanonical.DateModified, canonical.ModifiedDate)

	return map[string]Verdict{
		"title":          s.CompareTitle(original.Title, canonical.Title, ogOriginal.Title, ogCanonical.Title),
		"description":    s.CompareText(original.Description, canonical.Description, ogOriginal.Description, ogCanonical.Description),
		"h1Content":      s.CompareText(original.H1Content, canonical.H1Content, "", ""),
		"firstParagraph": s.CompareText(original.FirstParagraph, canonical.FirstParagraph, "", ""),
		"articleText":    s.CompareText(original.ArticleText, canonical.ArticleText, "", ""),
		"headline":       s.CompareTitle(propsOriginal.Headline, propsCanonical.Headline, "", ""),
		"publishedDate":  s.CompareDate(publishedOriginal, publishedCanonical),
		"modifiedDate":   s.CompareDate(modifiedOriginal, modifiedCanonical),
		"mainImage":      s.CompareImageURL(original.MainImageURL, canonical.MainImageURL),
		"authors":        s.CompareAuthors(propsOriginal.Authors, propsCanonical.Authors),
		"structuredData": s.compareStructuredProps(propsOriginal, propsCanonical),
	}
}

// effectiveProperties returns the reconciled structured-data view of a page,
// computing it from the raw JSON-LD blocks when the extractor did not fill
// it in. The input schema is never mutated.
func effectiveProperties(page *PageSchema) SchemaProperties {
	if len(page.SchemaProperties.Types) == 0 && len(page.JSONLD) > 0 {
		return ReconcileStructuredData(page.JSONLD)
	}
	return page.SchemaProperties
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
