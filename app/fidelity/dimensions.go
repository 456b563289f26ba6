package fidelity

import "math"

// countRatio is the symmetric count ratio min/max in [0,1]. Two zero counts
// are a perfect ratio, not a discrepancy (nothing was lost because nothing
// existed).
func countRatio(a, b int) float64 {
	if a == 0 && b == 0 {
		return 1
	}
	min, max := a, b
	if min > max {
		min, max = max, min
	}
	if max == 0 {
		return 1
	}
	return float64(min) / float64(max)
}

// dimension accumulates deductions for one fidelity dimension. The score
// starts at 1.0 and each signal removes coefficient*(1-signalScore), so a
// single weak signal degrades gracefully instead of zeroing the dimension.
type dimension struct {
	score  float64
	issues []string
}

func newDimension() *dimension {
	return &dimension{score: 1}
}

func (d *dimension) deduct(coefficient, signalScore float64, issue string) {
	if signalScore >= 1 {
		return
	}
	if signalScore < 0 {
		signalScore = 0
	}
	d.score -= coefficient * (1 - signalScore)
	if d.score < 0 {
		d.score = 0
	}
	if issue != "" {
		d.issues = append(d.issues, issue)
	}
}

func (d *dimension) result() DimensionScore {
	return DimensionScore{Score: d.score, Issues: d.issues}
}

// scoreDimensions maps the field verdicts and count signals of a page pair
// onto the six weighted fidelity dimensions.
func (s *Scorer) scoreDimensions(original, canonical *PageSchema, fields map[string]Verdict) map[string]DimensionScore {
	ded := s.cfg.Deductions
	paragraphRatio := countRatio(original.Paragraphs, canonical.Paragraphs)

	structure := newDimension()
	structure.deduct(ded.H1Count, countRatio(original.H1Tags, canonical.H1Tags), "H1 count differs from the canonical page")
	structure.deduct(ded.H2Count, countRatio(original.H2Tags, canonical.H2Tags), "H2 count differs from the canonical page")
	structure.deduct(ded.StructureParas, paragraphRatio, "Paragraph count differs from the canonical page")
	structure.deduct(ded.H1Content, fields["h1Content"].Score, "Main heading differs from the canonical page")

	media := newDimension()
	media.deduct(ded.ImageCount, countRatio(original.Images, canonical.Images), "Image count differs from the canonical page")
	media.deduct(ded.MainImage, fields["mainImage"].Score, "Main image differs from the canonical page")

	embeds := newDimension()
	embeds.deduct(1, s.cfg.EmbedsBaseline, "Embed preservation cannot be verified from the extracted schema")

	styling := newDimension()
	styling.deduct(1, s.cfg.StylingBaseline, "Styling consistency cannot be verified from the extracted schema")

	completeness := newDimension()
	completeness.deduct(ded.CompletenessParas, paragraphRatio, "Paragraph count suggests truncated content")
	completeness.deduct(ded.FirstParagraph, fields["firstParagraph"].Score, "First paragraph differs from the canonical page")
	completeness.deduct(ded.ArticleText, fields["articleText"].Score, "Article text sample differs from the canonical page")

	metadata := newDimension()
	metadata.deduct(ded.Title, fields["title"].Score, "Title differs from the canonical page")
	metadata.deduct(ded.Description, fields["description"].Score, "Description differs from the canonical page")
	metadata.deduct(ded.PublishedDate, fields["publishedDate"].Score, "Published date differs from the canonical page")

	structuredData := fields["structuredData"]
	metadata.deduct(ded.StructuredData, structuredData.Score, structuredDataIssue(structuredData))

	return map[string]DimensionScore{
		DimensionStructure:    structure.result(),
		DimensionMedia:        media.result(),
		DimensionEmbeds:       embeds.result(),
		DimensionStyling:      styling.result(),
		DimensionCompleteness: completeness.result(),
		DimensionMetadata:     metadata.result(),
	}
}

// structuredDataIssue keeps the comparator's own wording for the missing
// case so consumers can key off it.
func structuredDataIssue(v Verdict) string {
	if v.Message == "Missing structured data" {
		return v.Message
	}
	return "Structured data differs from the canonical page"
}

// overallScore folds the dimension scores into a single 0-100 value using
// the configured weights, normalized by their sum.
func (s *Scorer) overallScore(dimensions map[string]DimensionScore) int {
	w := s.cfg.Weights
	weights := map[string]float64{
		DimensionStructure:    w.Structure,
		DimensionMedia:        w.Media,
		DimensionEmbeds:       w.Embeds,
		DimensionStyling:      w.Styling,
		DimensionCompleteness: w.Completeness,
		DimensionMetadata:     w.Metadata,
	}

	var weighted, total float64
	for name, weight := range weights {
		weighted += dimensions[name].Score * weight
		total += weight
	}
	if total == 0 {
		return 0
	}

	score := int(math.Round(100 * weighted / total))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// Point budgets of the legacy profile.
const (
	pointsTitle          = 3.0
	pointsDescription    = 3.0
	pointsHeadings       = 2.0
	pointsContentVolume  = 2.0
	pointsDates          = 3.0
	pointsAuthors        = 2.0
	pointsStructuredData = 5.0
)

// scorePoints computes the legacy fixed point-budget aggregation from the
// same canonical field verdicts, so both profiles share one implementation
// per comparator.
func (s *Scorer) scorePoints(original, canonical *PageSchema, fields map[string]Verdict) *PointBreakdown {
	headingSignal := (countRatio(original.H1Tags, canonical.H1Tags) +
		countRatio(original.H2Tags, canonical.H2Tags)) / 2

	earned := map[string]float64{
		"title":          pointsTitle * fields["title"].Score,
		"description":    pointsDescription * fields["description"].Score,
		"headings":       pointsHeadings * headingSignal,
		"contentVolume":  pointsContentVolume * countRatio(original.Paragraphs, canonical.Paragraphs),
		"dates":          pointsDates * fields["publishedDate"].Score,
		"authors":        pointsAuthors * fields["authors"].Score,
		"structuredData": pointsStructuredData * fields["structuredData"].Score,
	}

	breakdown := &PointBreakdown{
		TotalPoints: pointsTitle + pointsDescription + pointsHeadings +
			pointsContentVolume + pointsDates + pointsAuthors + pointsStructuredData,
		Fields: earned,
	}
	for _, pts := range earned {
		breakdown.EarnedPoints += pts
	}

	return breakdown
}
