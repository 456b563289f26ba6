package schema

import (
	"strings"
	"testing"
)

const sampleHTML = `<!DOCTYPE html>
<html>
<head>
<title>City Council Approves Transit Expansion - Herald Tribune</title>
<meta name="description" content="The council voted to expand the downtown transit network">
<meta name="keywords" content="transit, council, expansion">
<meta property="og:title" content="City Council Approves Transit Expansion">
<meta property="og:description" content="The council voted to expand the downtown transit network">
<meta property="og:image" content="https://media.publisher.example/2025/06/hero.jpg">
<meta property="og:type" content="article">
<meta property="article:published_time" content="2025-06-01T10:00:00Z">
<meta property="article:modified_time" content="2025-06-01T12:00:00Z">
<link rel="canonical" href="https://publisher.example/2025/06/transit-expansion">
<script type="application/ld+json">
{"@context":"https://schema.org","@type":"NewsArticle","headline":"City Council Approves Transit Expansion","datePublished":"2025-06-01T10:00:00Z","author":{"@type":"Person","name":"Jane Reporter"}}
</script>
<script type="application/ld+json">not valid json</script>
</head>
<body>
<main>
<article>
<h1>City Council Approves Transit Expansion</h1>
<p>The council voted unanimously to expand the downtown transit network.</p>
<h2>Funding</h2>
<p>The plan is funded through a mix of federal grants and city bonds.</p>
<h2>Timeline</h2>
<p>Construction begins next spring.</p>
<img src="https://media.publisher.example/2025/06/hero.jpg" alt="">
<div class="related-articles">
<h2>More From Us</h2>
</div>
</article>
</main>
<div class="sidebar">
<h2>Trending</h2>
<a href="/other">Other story</a>
</div>
</body>
</html>`

func TestExtractor_Run(t *testing.T) {
	extractor := NewExtractor()

	page, err := extractor.Run([]byte(sampleHTML), "https://syndicator.example/story")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if page.Title != "City Council Approves Transit Expansion - Herald Tribune" {
		t.Errorf("Unexpected title: %q", page.Title)
	}
	if page.Description != "The council voted to expand the downtown transit network" {
		t.Errorf("Unexpected description: %q", page.Description)
	}
	if page.H1Content != "City Council Approves Transit Expansion" {
		t.Errorf("Unexpected H1 content: %q", page.H1Content)
	}
	if page.H1Tags != 1 {
		t.Errorf("Expected 1 H1 tag, got %d", page.H1Tags)
	}
	if page.Paragraphs != 3 {
		t.Errorf("Expected 3 paragraphs, got %d", page.Paragraphs)
	}
	if page.FirstParagraph != "The council voted unanimously to expand the downtown transit network." {
		t.Errorf("Unexpected first paragraph: %q", page.FirstParagraph)
	}
	if page.MainImageURL != "https://media.publisher.example/2025/06/hero.jpg" {
		t.Errorf("Unexpected main image: %q", page.MainImageURL)
	}
	if page.PublishedDate != "2025-06-01T10:00:00Z" {
		t.Errorf("Unexpected published date: %q", page.PublishedDate)
	}
	if page.ModifiedDate != "2025-06-01T12:00:00Z" {
		t.Errorf("Unexpected modified date: %q", page.ModifiedDate)
	}
}

func TestExtractor_ArticleHeadingsFilterChrome(t *testing.T) {
	extractor := NewExtractor()

	page, err := extractor.Run([]byte(sampleHTML), "https://syndicator.example/story")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := []string{"Funding", "Timeline"}
	if len(page.H2Contents) != len(expected) {
		t.Fatalf("Expected %d article headings, got %v", len(expected), page.H2Contents)
	}
	for i, heading := range expected {
		if page.H2Contents[i] != heading {
			t.Errorf("Expected heading %q at %d, got %q", heading, i, page.H2Contents[i])
		}
	}
}

func TestExtractor_OpenGraph(t *testing.T) {
	extractor := NewExtractor()

	page, err := extractor.Run([]byte(sampleHTML), "https://syndicator.example/story")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if page.OpenGraph == nil {
		t.Fatalf("Expected Open Graph metadata")
	}
	if page.OpenGraph.Title != "City Council Approves Transit Expansion" {
		t.Errorf("Unexpected og:title: %q", page.OpenGraph.Title)
	}
	if page.OpenGraph.Type != "article" {
		t.Errorf("Unexpected og:type: %q", page.OpenGraph.Type)
	}
}

func TestExtractor_JSONLD(t *testing.T) {
	extractor := NewExtractor()

	page, err := extractor.Run([]byte(sampleHTML), "https://syndicator.example/story")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// The malformed block is skipped, the valid one survives.
	if len(page.JSONLD) != 1 {
		t.Fatalf("Expected 1 JSON-LD block, got %d", len(page.JSONLD))
	}

	props := page.SchemaProperties
	if props.Headline != "City Council Approves Transit Expansion" {
		t.Errorf("Unexpected reconciled headline: %q", props.Headline)
	}
	if props.DatePublished != "2025-06-01T10:00:00Z" {
		t.Errorf("Unexpected reconciled datePublished: %q", props.DatePublished)
	}
	if len(props.Authors) != 1 || props.Authors[0] != "Jane Reporter" {
		t.Errorf("Unexpected reconciled authors: %v", props.Authors)
	}
}

func TestExtractor_ArticleTextTruncated(t *testing.T) {
	extractor := NewExtractor()

	long := strings.Repeat("Lorem ipsum dolor sit amet consectetur adipiscing elit. ", 20)
	html := "<html><body><article><p>" + long + "</p></article></body></html>"

	page, err := extractor.Run([]byte(html), "https://syndicator.example/story")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.HasSuffix(page.ArticleText, "...") {
		t.Errorf("Expected truncated article text to end with ellipsis")
	}
	if len([]rune(page.ArticleText)) != articleTextLimit+3 {
		t.Errorf("Expected article text capped at %d runes, got %d", articleTextLimit+3, len([]rune(page.ArticleText)))
	}
}

func TestExtractor_MinimalPage(t *testing.T) {
	extractor := NewExtractor()

	page, err := extractor.Run([]byte("<html><body><p>Only text</p></body></html>"), "https://example.com")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if page.Title != "" {
		t.Errorf("Expected empty title, got %q", page.Title)
	}
	if page.OpenGraph != nil {
		t.Errorf("Expected no Open Graph metadata, got %+v", page.OpenGraph)
	}
	if page.FirstParagraph != "Only text" {
		t.Errorf("Expected body paragraph fallback, got %q", page.FirstParagraph)
	}
}

func TestExtractor_EmptyInput(t *testing.T) {
	extractor := NewExtractor()

	if _, err := extractor.Run(nil, "https://example.com"); err == nil {
		t.Errorf("Expected an error for empty input")
	}
}
