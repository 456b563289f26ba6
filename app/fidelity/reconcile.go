package fidelity

import "fmt"

// Structured-data reconciliation. Pages ship JSON-LD in three shapes: a
// single node, an array of nodes, or a document wrapping its nodes in
// @graph. FlattenJSONLD normalizes all of them into one flat sequence of
// candidate nodes so the property extractors never re-check shape.

// articleTypes qualify a node for property reconciliation.
var articleTypes = map[string]struct{}{
	"Article":     {},
	"NewsArticle": {},
}

// FlattenJSONLD flattens raw ld+json blocks into a single sequence of
// candidate nodes. Non-object members are dropped.
func FlattenJSONLD(blocks []any) []map[string]any {
	var nodes []map[string]any

	var add func(v any)
	add = func(v any) {
		switch val := v.(type) {
		case map[string]any:
			nodes = append(nodes, val)
			if graph, ok := val["@graph"].([]any); ok {
				for _, member := range graph {
					add(member)
				}
			}
		case []any:
			for _, member := range val {
				add(member)
			}
		}
	}

	for _, block := range blocks {
		add(block)
	}

	return nodes
}

// typeStrings normalizes a @type value, which may be a single string or an
// array of strings.
func typeStrings(v any) []string {
	switch val := v.(type) {
	case string:
		if val == "" {
			return nil
		}
		return []string{val}
	case []any:
		var types []string
		for _, member := range val {
			if s, ok := member.(string); ok && s != "" {
				types = append(types, s)
			}
		}
		return types
	}
	return nil
}

func isArticleNode(node map[string]any) bool {
	for _, t := range typeStrings(node["@type"]) {
		if _, ok := articleTypes[t]; ok {
			return true
		}
	}
	return false
}

// stringProp extracts a string property, also accepting the {"@id": ...}
// and {"url": ...} object forms used for mainEntityOfPage and image.
func stringProp(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		for _, key := range []string{"url", "@id"} {
			if s, ok := val[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// authorNames extracts author names from the author property, which may be a
// string, a {"name": ...} object, or an array of either.
func authorNames(v any) []string {
	switch val := v.(type) {
	case string:
		if val == "" {
			return nil
		}
		return []string{val}
	case map[string]any:
		if name, ok := val["name"].(string); ok && name != "" {
			return []string{name}
		}
	case []any:
		var names []string
		for _, member := range val {
			names = append(names, authorNames(member)...)
		}
		return names
	}
	return nil
}

// ReconcileStructuredData merges the Article/NewsArticle nodes of a page's
// JSON-LD blocks into one SchemaProperties record. Later nodes win, but an
// empty value never overwrites a non-empty one. Types collects every @type
// seen on the page, qualifying or not, for the presence signal.
func ReconcileStructuredData(blocks []any) SchemaProperties {
	props := SchemaProperties{}
	seenTypes := make(map[string]struct{})
	seenAuthors := make(map[string]struct{})

	for _, node := range FlattenJSONLD(blocks) {
		for _, t := range typeStrings(node["@type"]) {
			if _, dup := seenTypes[t]; !dup {
				seenTypes[t] = struct{}{}
				props.Types = append(props.Types, t)
			}
		}

		if !isArticleNode(node) {
			continue
		}

		mergeProp(&props.Headline, node["headline"])
		mergeProp(&props.DatePublished, node["datePublished"])
		mergeProp(&props.DateModified, node["dateModified"])
		mergeProp(&props.Description, node["description"])
		mergeProp(&props.MainEntityOfPage, node["mainEntityOfPage"])
		mergeProp(&props.Image, node["image"])
		mergeProp(&props.ArticleBody, node["articleBody"])

		for _, name := range authorNames(node["author"]) {
			key := Normalize(name)
			if _, dup := seenAuthors[key]; dup {
				continue
			}
			seenAuthors[key] = struct{}{}
			props.Authors = append(props.Authors, name)
		}
	}

	return props
}

func mergeProp(dst *string, v any) {
	if s := stringProp(v); s != "" {
		*dst = s
	}
}

// typeOverlap scores the JSON-LD presence signal between two pages by
// comparing the sets of @type values seen on each. Credit is proportional
// to the share of canonical types the syndicated page reproduces.
func typeOverlap(original, canonical []string) float64 {
	if len(canonical) == 0 {
		return 1
	}
	if len(original) == 0 {
		return 0
	}

	originalSet := make(map[string]struct{}, len(original))
	for _, t := range original {
		originalSet[t] = struct{}{}
	}

	canonicalSet := make(map[string]struct{}, len(canonical))
	matched := 0
	for _, t := range canonical {
		if _, dup := canonicalSet[t]; dup {
			continue
		}
		canonicalSet[t] = struct{}{}
		if _, ok := originalSet[t]; ok {
			matched++
		}
	}

	return float64(matched) / float64(len(canonicalSet))
}

// CompareStructuredData produces the field verdict for overall JSON-LD
// presence and type overlap.
func (s *Scorer) CompareStructuredData(original, canonical *PageSchema) Verdict {
	return s.compareStructuredProps(effectiveProperties(original), effectiveProperties(canonical))
}

func (s *Scorer) compareStructuredProps(original, canonical SchemaProperties) Verdict {
	originalTypes := original.Types
	canonicalTypes := canonical.Types

	switch {
	case len(originalTypes) == 0 && len(canonicalTypes) == 0:
		return Verdict{Match: MatchTrue, Score: 1, Message: "both pages lack structured data"}
	case len(originalTypes) > 0 && len(canonicalTypes) == 0:
		if s.cfg.MissingField == MissingPenalize {
			return Verdict{Match: MatchFalse, Score: 0, Message: "canonical structured data missing"}
		}
		return Verdict{Match: MatchTrue, Score: 1, Message: "canonical structured data missing (ignored)"}
	case len(originalTypes) == 0:
		return Verdict{Match: MatchFalse, Score: 0, Message: "Missing structured data"}
	}

	overlap := typeOverlap(originalTypes, canonicalTypes)
	switch {
	case overlap >= 1:
		return Verdict{Match: MatchTrue, Score: 1, Message: "schema types match"}
	case overlap > 0:
		return Verdict{
			Match:   MatchPartial,
			Score:   overlap,
			Message: fmt.Sprintf("schema types partially match (%d%%)", int(overlap*100+0.5)),
		}
	default:
		return Verdict{Match: MatchFalse, Score: 0, Message: "schema types do not match"}
	}
}

// CompareAuthors compares the reconciled author lists. The signal is the
// share of canonical authors credited on the syndicated page, matched on
// normalized names.
func (s *Scorer) CompareAuthors(original, canonical []string) Verdict {
	switch {
	case len(original) == 0 && len(canonical) == 0:
		return Verdict{Match: MatchTrue, Score: 1, Message: "both author lists missing"}
	case len(original) > 0 && len(canonical) == 0:
		if s.cfg.MissingField == MissingPenalize {
			return Verdict{Match: MatchFalse, Score: 0, Message: "canonical authors missing"}
		}
		return Verdict{Match: MatchTrue, Score: 1, Message: "canonical authors missing (ignored)"}
	case len(original) == 0:
		return Verdict{Match: MatchFalse, Score: 0, Message: "original authors missing"}
	}

	originalSet := make(map[string]struct{}, len(original))
	for _, name := range original {
		originalSet[Normalize(name)] = struct{}{}
	}

	matched := 0
	for _, name := range canonical {
		if _, ok := originalSet[Normalize(name)]; ok {
			matched++
		}
	}

	share := float64(matched) / float64(len(canonical))
	switch {
	case share >= 1:
		return Verdict{Match: MatchTrue, Score: 1, Message: "authors match"}
	case share > 0:
		return Verdict{
			Match:   MatchPartial,
			Score:   share,
			Message: fmt.Sprintf("%d of %d authors credited", matched, len(canonical)),
		}
	default:
		return Verdict{Match: MatchFalse, Score: 0, Message: "authors do not match"}
	}
}
