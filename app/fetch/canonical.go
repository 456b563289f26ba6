package fetch

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoCanonical is returned when a page declares no canonical link.
var ErrNoCanonical = errors.New("no canonical URL found")

// CanonicalResult is the resolved canonical link of a syndicated page.
type CanonicalResult struct {
	URL        string
	SameDomain bool
}

// ResolveCanonical finds the rel=canonical link in a page and resolves it
// against the page's own URL. Relative hrefs are absolutized; SameDomain
// reports whether the canonical host equals the page host, which means the
// page is its own source.
func ResolveCanonical(body []byte, pageURL string) (*CanonicalResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	href, _ := doc.Find(`link[rel="canonical"]`).First().Attr("href")
	href = strings.TrimSpace(href)
	if href == "" {
		return nil, ErrNoCanonical
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL %s: %w", pageURL, err)
	}

	canonical, err := base.Parse(href)
	if err != nil {
		return nil, fmt.Errorf("invalid canonical URL %s: %w", href, err)
	}

	return &CanonicalResult{
		URL:        canonical.String(),
		SameDomain: strings.EqualFold(canonical.Hostname(), base.Hostname()),
	}, nil
}
