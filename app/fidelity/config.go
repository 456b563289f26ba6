package fidelity

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile selects the aggregation mode.
type Profile string

const (
	// ProfileWeighted is the canonical weighted-dimension aggregation.
	ProfileWeighted Profile = "weighted"
	// ProfilePoints is the legacy fixed point-budget aggregation, kept for
	// consumers of the original response shape.
	ProfilePoints Profile = "points"
)

// MissingPolicy controls how a field present on the canonical side only is
// treated. Historical versions disagreed on this, so it is a flag rather
// than hard-coded behavior.
type MissingPolicy string

const (
	// MissingIgnore treats "syndicated page has it, canonical does not" as a
	// match. This is the majority rule across historical versions.
	MissingIgnore MissingPolicy = "ignore"
	// MissingPenalize treats the same case as a mismatch.
	MissingPenalize MissingPolicy = "penalize"
)

// Weights are the per-dimension weights of the weighted profile. They are
// normalized by their sum at aggregation time, so they do not have to add up
// to exactly 1.0.
type Weights struct {
	Structure    float64 `yaml:"structure"`
	Media        float64 `yaml:"media"`
	Embeds       float64 `yaml:"embeds"`
	Styling      float64 `yaml:"styling"`
	Completeness float64 `yaml:"completeness"`
	Metadata     float64 `yaml:"metadata"`
}

// Deductions are the per-signal deduction coefficients within each
// dimension. A signal scoring s removes coefficient*(1-s) from its
// dimension, which starts at 1.0 and never drops below 0.
type Deductions struct {
	H1Count        float64 `yaml:"h1_count"`
	H2Count        float64 `yaml:"h2_count"`
	StructureParas float64 `yaml:"structure_paragraphs"`
	H1Content      float64 `yaml:"h1_content"`

	ImageCount float64 `yaml:"image_count"`
	MainImage  float64 `yaml:"main_image"`

	CompletenessParas float64 `yaml:"completeness_paragraphs"`
	FirstParagraph    float64 `yaml:"first_paragraph"`
	ArticleText       float64 `yaml:"article_text"`

	Title          float64 `yaml:"title"`
	Description    float64 `yaml:"description"`
	PublishedDate  float64 `yaml:"published_date"`
	StructuredData float64 `yaml:"structured_data"`
}

// Config carries every tunable of the engine. A zero Config is not usable;
// start from DefaultConfig.
type Config struct {
	Profile      Profile       `yaml:"profile"`
	MissingField MissingPolicy `yaml:"missing_field_policy"`

	// Word-set similarity thresholds for generic text (body text,
	// descriptions, paragraphs).
	TextHighSimilarity    float64 `yaml:"text_high_similarity"`
	TextPartialSimilarity float64 `yaml:"text_partial_similarity"`

	// Titles are shorter, so a lower bar marks high similarity.
	TitleHighSimilarity    float64 `yaml:"title_high_similarity"`
	TitlePartialSimilarity float64 `yaml:"title_partial_similarity"`

	// Dimensions scoring below RecommendationThreshold produce a
	// recommendation; below HighSeverityThreshold it is marked high.
	RecommendationThreshold float64 `yaml:"recommendation_threshold"`
	HighSeverityThreshold   float64 `yaml:"high_severity_threshold"`

	// InsightThreshold is the per-dimension bar for the cross-cutting
	// low-fidelity insight.
	InsightThreshold float64 `yaml:"insight_threshold"`

	// Embeds and styling are not measurable from the extracted schema and
	// receive fixed baseline credit.
	EmbedsBaseline  float64 `yaml:"embeds_baseline"`
	StylingBaseline float64 `yaml:"styling_baseline"`

	Weights    Weights    `yaml:"weights"`
	Deductions Deductions `yaml:"deductions"`
}

// DefaultConfig returns the engine defaults. All threshold and weight values
// live here, not at call sites.
func DefaultConfig() *Config {
	return &Config{
		Profile:      ProfileWeighted,
		MissingField: MissingIgnore,

		TextHighSimilarity:    0.8,
		TextPartialSimilarity: 0.5,

		TitleHighSimilarity:    0.7,
		TitlePartialSimilarity: 0.5,

		RecommendationThreshold: 0.8,
		HighSeverityThreshold:   0.5,
		InsightThreshold:        0.7,

		EmbedsBaseline:  1.0,
		StylingBaseline: 1.0,

		Weights: Weights{
			Structure:    0.20,
			Media:        0.20,
			Embeds:       0.10,
			Styling:      0.10,
			Completeness: 0.20,
			Metadata:     0.20,
		},

		Deductions: Deductions{
			H1Count:        0.2,
			H2Count:        0.2,
			StructureParas: 0.3,
			H1Content:      0.3,

			ImageCount: 0.5,
			MainImage:  0.5,

			CompletenessParas: 0.3,
			FirstParagraph:    0.35,
			ArticleText:       0.35,

			Title:          0.3,
			Description:    0.25,
			PublishedDate:  0.25,
			StructuredData: 0.2,
		},
	}
}

// LoadConfig reads a YAML override file on top of the defaults. A missing
// path returns the defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read scoring config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse scoring config %s: %w", path, err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring config %s: %w", path, err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.Profile != ProfileWeighted && c.Profile != ProfilePoints {
		return fmt.Errorf("unknown profile: %s", c.Profile)
	}
	if c.MissingField != MissingIgnore && c.MissingField != MissingPenalize {
		return fmt.Errorf("unknown missing_field_policy: %s", c.MissingField)
	}

	thresholds := map[string]float64{
		"text_high_similarity":     c.TextHighSimilarity,
		"text_partial_similarity":  c.TextPartialSimilarity,
		"title_high_similarity":    c.TitleHighSimilarity,
		"title_partial_similarity": c.TitlePartialSimilarity,
		"recommendation_threshold": c.RecommendationThreshold,
		"high_severity_threshold":  c.HighSeverityThreshold,
		"insight_threshold":        c.InsightThreshold,
		"embeds_baseline":          c.EmbedsBaseline,
		"styling_baseline":         c.StylingBaseline,
	}
	for name, v := range thresholds {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be in [0,1], got %v", name, v)
		}
	}

	sum := c.Weights.Structure + c.Weights.Media + c.Weights.Embeds +
		c.Weights.Styling + c.Weights.Completeness + c.Weights.Metadata
	if sum <= 0 {
		return fmt.Errorf("dimension weights must sum to a positive value")
	}

	return nil
}
