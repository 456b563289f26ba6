package schema

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/syndcheck/syndcheck/app/fidelity"
)

// articleTextLimit caps the extracted body sample.
const articleTextLimit = 500

// contentSelector matches the containers that hold the article body on most
// news layouts.
const contentSelector = "article, [role=\"main\"], .content, .main, main"

// chromeClassPattern matches container classes of navigation chrome whose
// headings are not part of the article itself.
var chromeClassPattern = regexp.MustCompile(`sidebar|related|recommended|recirculation|footer|widget|more-from|also-read|subnav|navigation`)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Run extracts the structured schema of one page from its raw HTML. Fields
// that cannot be extracted stay at their zero value; only unparseable HTML
// is an error.
func (e *Extractor) Run(data []byte, pageURL string) (*fidelity.PageSchema, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("HTML data is empty")
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	page := &fidelity.PageSchema{
		URL:         pageURL,
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		Description: metaContent(doc, `meta[name="description"]`),

		H1Tags:     doc.Find("h1").Length(),
		H2Tags:     doc.Find("h2").Length(),
		Paragraphs: doc.Find("p").Length(),
		Links:      doc.Find("a").Length(),
		Images:     doc.Find("img").Length(),
		MetaTags:   doc.Find("meta").Length(),

		H1Content:    strings.TrimSpace(doc.Find("h1").First().Text()),
		H2Contents:   e.articleHeadings(doc, pageURL),
		MetaKeywords: metaContent(doc, `meta[name="keywords"]`),

		PublishedDate: cmp.Or(
			metaContent(doc, `meta[property="article:published_time"]`),
			metaContent(doc, `meta[itemprop="datePublished"]`),
			attrValue(doc, `[itemprop="datePublished"]`, "content"),
			attrValue(doc, "time[datetime]", "datetime"),
		),
		ModifiedDate: cmp.Or(
			metaContent(doc, `meta[property="article:modified_time"]`),
			metaContent(doc, `meta[itemprop="dateModified"]`),
			attrValue(doc, `[itemprop="dateModified"]`, "content"),
		),
	}

	page.FirstParagraph = cmp.Or(
		strings.TrimSpace(doc.Find(contentSelector).Find("p").First().Text()),
		strings.TrimSpace(doc.Find("p").First().Text()),
	)
	page.ArticleText = e.articleText(doc, data)
	page.MainImageURL = cmp.Or(
		metaContent(doc, `meta[property="og:image"]`),
		attrValue(doc, "article img, .content img, main img", "src"),
	)

	page.OpenGraph = openGraph(doc)
	page.JSONLD = jsonLdBlocks(doc)
	page.SchemaProperties = fidelity.ReconcileStructuredData(page.JSONLD)

	slog.Debug("Page schema extracted",
		"url", pageURL,
		"paragraphs", page.Paragraphs,
		"json_ld_blocks", len(page.JSONLD))

	return page, nil
}

// articleHeadings collects up to three H2 headings that belong to the
// article body, skipping headings nested in navigation chrome. Yahoo pages
// bury related-content rails outside <article>, so only that container is
// searched there.
func (e *Extractor) articleHeadings(doc *goquery.Document, pageURL string) []string {
	scope := doc.Find(contentSelector)
	if strings.Contains(pageURL, "yahoo.com") {
		scope = doc.Find("article")
	}

	var headings []string
	scope.Find("h2").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var parentClasses []string
		s.Parents().Each(func(_ int, parent *goquery.Selection) {
			if class, ok := parent.Attr("class"); ok {
				parentClasses = append(parentClasses, class)
			}
		})
		if chromeClassPattern.MatchString(strings.ToLower(strings.Join(parentClasses, " "))) {
			return true
		}

		if text := strings.TrimSpace(s.Text()); text != "" {
			headings = append(headings, text)
		}
		return len(headings) < 3
	})

	return headings
}

// articleText samples the article body from the content containers, falling
// back to readability extraction for pages without recognizable containers.
func (e *Extractor) articleText(doc *goquery.Document, data []byte) string {
	var paragraphs []string
	doc.Find(contentSelector).Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	text := strings.Join(paragraphs, " ")
	if text == "" {
		text = e.readabilityText(data)
	}

	return truncate(text, articleTextLimit)
}

func (e *Extractor) readabilityText(data []byte) string {
	article, err := readability.FromReader(bytes.NewReader(data), nil)
	if err != nil {
		slog.Debug("Readability fallback failed", "error", err)
		return ""
	}
	return strings.Join(strings.Fields(article.TextContent), " ")
}

func openGraph(doc *goquery.Document) *fidelity.OpenGraph {
	og := &fidelity.OpenGraph{
		Title:       metaContent(doc, `meta[property="og:title"]`),
		Description: metaContent(doc, `meta[property="og:description"]`),
		Image:       metaContent(doc, `meta[property="og:image"]`),
		Type:        metaContent(doc, `meta[property="og:type"]`),
	}
	if og.Title == "" && og.Description == "" && og.Image == "" && og.Type == "" {
		return nil
	}
	return og
}

// jsonLdBlocks parses every ld+json script on the page. Malformed blocks
// are skipped.
func jsonLdBlocks(doc *goquery.Document) []any {
	var blocks []any
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var block any
		if err := json.Unmarshal([]byte(s.Text()), &block); err != nil {
			slog.Debug("Skipping malformed JSON-LD block", "error", err)
			return
		}
		blocks = append(blocks, block)
	})
	return blocks
}

func metaContent(doc *goquery.Document, selector string) string {
	return attrValue(doc, selector, "content")
}

func attrValue(doc *goquery.Document, selector, attr string) string {
	value, _ := doc.Find(selector).First().Attr(attr)
	return strings.TrimSpace(value)
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
