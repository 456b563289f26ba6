package fidelity

// MatchState is the tri-state outcome of a single field comparison.
type MatchState string

const (
	MatchTrue    MatchState = "match"
	MatchPartial MatchState = "partial"
	MatchFalse   MatchState = "mismatch"
)

// Verdict is the outcome of one field comparator. Score is always in [0,1]
// and Message explains the basis of the verdict (exact match, similarity
// percentage, containment, missing field).
type Verdict struct {
	Match   MatchState `json:"match"`
	Score   float64    `json:"score"`
	Message string     `json:"message"`
}

// OpenGraph holds the Open Graph metadata of a page. Absent in schemas
// produced by older extractor versions, hence the pointer field on
// PageSchema.
type OpenGraph struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Type        string `json:"type,omitempty"`
}

// SchemaProperties is the reconciled view over a page's JSON-LD blocks,
// produced by ReconcileStructuredData.
type SchemaProperties struct {
	Types            []string `json:"type,omitempty"`
	MainEntityOfPage string   `json:"mainEntityOfPage,omitempty"`
	Headline         string   `json:"headline,omitempty"`
	DatePublished    string   `json:"datePublished,omitempty"`
	DateModified     string   `json:"dateModified,omitempty"`
	Description      string   `json:"description,omitempty"`
	Authors          []string `json:"authors,omitempty"`
	Image            string   `json:"image,omitempty"`
	ArticleBody      string   `json:"articleBody,omitempty"`
}

// PageSchema is the structured extraction of one page. All fields are
// optional; absence is a first-class case, never an error. The engine treats
// a PageSchema as immutable input.
type PageSchema struct {
	URL         string `json:"url,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	H1Content  string   `json:"h1Content,omitempty"`
	H2Contents []string `json:"h2Contents,omitempty"`

	H1Tags     int `json:"h1Tags"`
	H2Tags     int `json:"h2Tags"`
	Paragraphs int `json:"paragraphs"`
	Links      int `json:"links"`
	Images     int `json:"images"`
	MetaTags   int `json:"metaTags"`

	FirstParagraph string `json:"firstParagraph,omitempty"`
	ArticleText    string `json:"articleText,omitempty"`
	MainImageURL   string `json:"mainImageUrl,omitempty"`
	MetaKeywords   string `json:"metaKeywords,omitempty"`

	PublishedDate string `json:"publishedDate,omitempty"`
	ModifiedDate  string `json:"modifiedDate,omitempty"`

	OpenGraph *OpenGraph `json:"openGraph,omitempty"`

	// JSONLD holds the raw parsed ld+json blocks. Each element is whatever
	// shape the page shipped: a single node, an array of nodes, or a
	// @graph-wrapped document. Malformed blocks are dropped at extraction
	// time and never reach the engine.
	JSONLD []any `json:"jsonLdData"`

	SchemaProperties SchemaProperties `json:"schemaProperties"`
}

// DimensionScore is the scored state of one fidelity dimension.
type DimensionScore struct {
	Score  float64  `json:"score"`
	Issues []string `json:"issues,omitempty"`
}

// Recommendation is a remediation hint derived from a low-scoring dimension.
type Recommendation struct {
	Dimension string `json:"dimension"`
	Severity  string `json:"severity"`
	Issue     string `json:"issue"`
	Action    string `json:"action"`
}

// Insight is a cross-cutting observation about the page pair. Insights are a
// side output and never feed back into the score.
type Insight struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// PointBreakdown is the legacy point-budget scoring detail, kept for
// consumers of the original response shape.
type PointBreakdown struct {
	TotalPoints  float64            `json:"totalPoints"`
	EarnedPoints float64            `json:"earnedPoints"`
	Fields       map[string]float64 `json:"fields"`
}

// Report is the outward-facing result of scoring one page pair.
type Report struct {
	OverallScore    int                       `json:"overallScore"`
	Dimensions      map[string]DimensionScore `json:"dimensionScores"`
	Fields          map[string]Verdict        `json:"fieldVerdicts"`
	Recommendations []Recommendation          `json:"recommendations"`
	Insights        []Insight                 `json:"insights"`
	Points          *PointBreakdown           `json:"points,omitempty"`
}

// Dimension names as they appear in Report.Dimensions.
const (
	DimensionStructure    = "structure"
	DimensionMedia        = "media"
	DimensionEmbeds       = "embeds"
	DimensionStyling      = "styling"
	DimensionCompleteness = "completeness"
	DimensionMetadata     = "metadata"
)

// Severity levels for recommendations.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)
