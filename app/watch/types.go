package watch

import (
	"time"

	"github.com/syndcheck/syndcheck/app/fidelity"
)

// Configuration types

type Config struct {
	Name     string         // Derived from filename (without .yml extension)
	FeedURL  string         `yaml:"feed_url"`
	Settings ConfigSettings `yaml:"settings"`
}

type ConfigSettings struct {
	Enabled         bool `yaml:"enabled"`
	RefreshInterval int  `yaml:"refresh_interval"` // seconds
	MaxItems        int  `yaml:"max_items"`        // feed items checked per run
	Timeout         int  `yaml:"timeout"`          // seconds, per page fetch
}

// Result types

type ItemResult struct {
	Title        string           `json:"title"`
	Link         string           `json:"link"`
	CanonicalURL string           `json:"canonicalUrl,omitempty"`
	SameDomain   bool             `json:"sameDomain,omitempty"`
	Report       *fidelity.Report `json:"report,omitempty"`
	Error        string           `json:"error,omitempty"`
}

type Result struct {
	Watch     string       `json:"watch"`
	FeedTitle string       `json:"feedTitle,omitempty"`
	CheckedAt time.Time    `json:"checkedAt"`
	Items     []ItemResult `json:"items"`
}
