package fidelity

import (
	"reflect"
	"testing"
)

func articleNode(props map[string]any) map[string]any {
	node := map[string]any{"@type": "NewsArticle"}
	for k, v := range props {
		node[k] = v
	}
	return node
}

func TestFlattenJSONLD_Shapes(t *testing.T) {
	single := []any{map[string]any{"@type": "Article"}}
	if got := len(FlattenJSONLD(single)); got != 1 {
		t.Errorf("Expected 1 node from a single object, got %d", got)
	}

	array := []any{[]any{
		map[string]any{"@type": "Article"},
		map[string]any{"@type": "WebPage"},
	}}
	if got := len(FlattenJSONLD(array)); got != 2 {
		t.Errorf("Expected 2 nodes from an array block, got %d", got)
	}

	graph := []any{map[string]any{
		"@context": "https://schema.org",
		"@graph": []any{
			map[string]any{"@type": "Organization"},
			map[string]any{"@type": "NewsArticle"},
		},
	}}
	// The wrapper itself plus its two graph members.
	if got := len(FlattenJSONLD(graph)); got != 3 {
		t.Errorf("Expected 3 nodes from a @graph block, got %d", got)
	}

	mixed := []any{"not an object", float64(42), nil}
	if got := len(FlattenJSONLD(mixed)); got != 0 {
		t.Errorf("Expected non-object members to be dropped, got %d nodes", got)
	}
}

func TestReconcileStructuredData_LastWins(t *testing.T) {
	blocks := []any{
		articleNode(map[string]any{
			"headline":      "First Headline",
			"datePublished": "2025-06-01T10:00:00Z",
		}),
		articleNode(map[string]any{
			"headline": "Second Headline",
		}),
	}

	props := ReconcileStructuredData(blocks)
	if props.Headline != "Second Headline" {
		t.Errorf("Expected later headline to win, got %q", props.Headline)
	}
	// The second node has no datePublished, so the first value survives.
	if props.DatePublished != "2025-06-01T10:00:00Z" {
		t.Errorf("Expected empty value not to overwrite, got %q", props.DatePublished)
	}
}

func TestReconcileStructuredData_NonArticleIgnored(t *testing.T) {
	blocks := []any{
		map[string]any{"@type": "WebPage", "headline": "Wrapper Headline"},
		articleNode(map[string]any{"headline": "Article Headline"}),
	}

	props := ReconcileStructuredData(blocks)
	if props.Headline != "Article Headline" {
		t.Errorf("Expected only article nodes to contribute properties, got %q", props.Headline)
	}
	if !reflect.DeepEqual(props.Types, []string{"WebPage", "NewsArticle"}) {
		t.Errorf("Expected every @type recorded in order, got %v", props.Types)
	}
}

func TestReconcileStructuredData_AuthorShapes(t *testing.T) {
	blocks := []any{
		articleNode(map[string]any{"author": "Jane Reporter"}),
		articleNode(map[string]any{"author": map[string]any{"@type": "Person", "name": "Sam Writer"}}),
		articleNode(map[string]any{"author": []any{
			map[string]any{"name": "Jane  Reporter"},
			"Alex Editor",
		}}),
	}

	props := ReconcileStructuredData(blocks)
	expected := []string{"Jane Reporter", "Sam Writer", "Alex Editor"}
	if !reflect.DeepEqual(props.Authors, expected) {
		t.Errorf("Expected deduplicated authors %v, got %v", expected, props.Authors)
	}
}

func TestReconcileStructuredData_ObjectValuedProps(t *testing.T) {
	blocks := []any{
		articleNode(map[string]any{
			"mainEntityOfPage": map[string]any{"@type": "WebPage", "@id": "https://publisher.example/story"},
			"image":            map[string]any{"@type": "ImageObject", "url": "https://publisher.example/hero.jpg"},
		}),
	}

	props := ReconcileStructuredData(blocks)
	if props.MainEntityOfPage != "https://publisher.example/story" {
		t.Errorf("Expected @id form to resolve, got %q", props.MainEntityOfPage)
	}
	if props.Image != "https://publisher.example/hero.jpg" {
		t.Errorf("Expected url form to resolve, got %q", props.Image)
	}
}

func TestTypeOverlap(t *testing.T) {
	if got := typeOverlap(nil, nil); got != 1 {
		t.Errorf("Expected overlap 1 when canonical has no types, got %v", got)
	}
	if got := typeOverlap(nil, []string{"NewsArticle"}); got != 0 {
		t.Errorf("Expected overlap 0 when original has no types, got %v", got)
	}
	if got := typeOverlap([]string{"NewsArticle", "WebPage"}, []string{"NewsArticle", "WebPage"}); got != 1 {
		t.Errorf("Expected full overlap 1, got %v", got)
	}
	if got := typeOverlap([]string{"NewsArticle"}, []string{"NewsArticle", "WebPage"}); got != 0.5 {
		t.Errorf("Expected half overlap 0.5, got %v", got)
	}
}

func TestCompareStructuredData_OriginalMissing(t *testing.T) {
	s := NewScorer(nil)

	original := &PageSchema{}
	canonical := &PageSchema{
		SchemaProperties: SchemaProperties{Types: []string{"NewsArticle"}},
	}

	v := s.CompareStructuredData(original, canonical)
	if v.Match != MatchFalse {
		t.Errorf("Expected missing original structured data to mismatch, got %q", v.Match)
	}
	if v.Message != "Missing structured data" {
		t.Errorf("Expected message 'Missing structured data', got %q", v.Message)
	}
}

func TestCompareStructuredData_BothMissing(t *testing.T) {
	s := NewScorer(nil)

	v := s.CompareStructuredData(&PageSchema{}, &PageSchema{})
	if v.Match != MatchTrue {
		t.Errorf("Expected both-missing structured data to match, got %q: %s", v.Match, v.Message)
	}
}

func TestCompareStructuredData_FromRawBlocks(t *testing.T) {
	s := NewScorer(nil)

	// Neither page has reconciled properties; the raw JSON-LD is used.
	original := &PageSchema{JSONLD: []any{articleNode(nil)}}
	canonical := &PageSchema{JSONLD: []any{articleNode(nil)}}

	v := s.CompareStructuredData(original, canonical)
	if v.Match != MatchTrue {
		t.Errorf("Expected matching raw blocks to match, got %q: %s", v.Match, v.Message)
	}
}

func TestCompareAuthors(t *testing.T) {
	s := NewScorer(nil)

	v := s.CompareAuthors([]string{"Jane Reporter"}, []string{"jane   reporter"})
	if v.Match != MatchTrue {
		t.Errorf("Expected normalized author names to match, got %q: %s", v.Match, v.Message)
	}

	v = s.CompareAuthors([]string{"Jane Reporter"}, []string{"Jane Reporter", "Sam Writer"})
	if v.Match != MatchPartial {
		t.Errorf("Expected partial author credit, got %q: %s", v.Match, v.Message)
	}
	if v.Score != 0.5 {
		t.Errorf("Expected half credit 0.5, got %v", v.Score)
	}

	v = s.CompareAuthors([]string{"Someone Else"}, []string{"Jane Reporter"})
	if v.Match != MatchFalse {
		t.Errorf("Expected disjoint authors to mismatch, got %q: %s", v.Match, v.Message)
	}

	v = s.CompareAuthors([]string{"Jane Reporter"}, nil)
	if v.Match != MatchTrue {
		t.Errorf("Expected canonical-missing authors to be ignored, got %q: %s", v.Match, v.Message)
	}
}
