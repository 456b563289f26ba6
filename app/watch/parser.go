package watch

import (
	"bytes"
	"cmp"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
)

// FeedInfo contains metadata about a parsed watch feed.
type FeedInfo struct {
	Title       string
	Link        string
	Description string
}

// FeedItem is one entry of a watch feed, reduced to the fields a
// fidelity check needs.
type FeedItem struct {
	GUID        string
	Title       string
	Link        string
	PublishedAt *time.Time
}

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

func (p *Parser) Run(data []byte) (*FeedInfo, []FeedItem, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	info := &FeedInfo{
		Title:       feed.Title,
		Link:        feed.Link,
		Description: feed.Description,
	}

	items := make([]FeedItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		parsed := FeedItem{
			GUID:  cmp.Or(item.GUID, item.Link),
			Title: item.Title,
			Link:  item.Link,
		}

		if item.PublishedParsed != nil {
			parsed.PublishedAt = item.PublishedParsed
		}

		items = append(items, parsed)
	}

	return info, items, nil
}
