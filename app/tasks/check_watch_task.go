package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/syndcheck/syndcheck/app/fetch"
	"github.com/syndcheck/syndcheck/app/fidelity"
	"github.com/syndcheck/syndcheck/app/schema"
	"github.com/syndcheck/syndcheck/app/watch"
)

// CheckWatchTask fetches one watch's RSS/Atom feed and runs a fidelity
// check for every item that declares a cross-domain canonical link. The
// latest run replaces the previous one in the result store.
type CheckWatchTask struct {
	Task
	WatchConfig *watch.Config

	httpClient *http.Client
	userAgent  string
	feedParser *watch.Parser
	client     *fetch.Client
	extractor  *schema.Extractor
	scorer     *fidelity.Scorer
	results    *watch.ResultStore
}

func NewCheckWatchTask(watchName string, watchConfig *watch.Config, httpClient *http.Client,
	client *fetch.Client, extractor *schema.Extractor, scorer *fidelity.Scorer,
	results *watch.ResultStore, userAgent string) *CheckWatchTask {
	return &CheckWatchTask{
		Task:        NewTask(TaskTypeCheckWatch, watchName),
		WatchConfig: watchConfig,
		httpClient:  httpClient,
		userAgent:   userAgent,
		feedParser:  watch.NewParser(),
		client:      client,
		extractor:   extractor,
		scorer:      scorer,
		results:     results,
	}
}

func (t *CheckWatchTask) Execute(ctx context.Context) error {
	data, err := t.fetchFeed(ctx, t.WatchConfig.FeedURL)
	if err != nil {
		return fmt.Errorf("failed to fetch feed for watch %s: %w", t.WatchName, err)
	}

	info, items, err := t.feedParser.Run(data)
	if err != nil {
		return fmt.Errorf("failed to parse feed for watch %s: %w", t.WatchName, err)
	}

	if max := t.WatchConfig.Settings.MaxItems; max > 0 && len(items) > max {
		items = items[:max]
	}

	result := &watch.Result{
		Watch:     t.WatchName,
		FeedTitle: info.Title,
		CheckedAt: time.Now().UTC(),
		Items:     make([]watch.ItemResult, 0, len(items)),
	}

	for _, item := range items {
		if item.Link == "" {
			continue
		}
		result.Items = append(result.Items, t.checkItem(ctx, item.Title, item.Link))
	}

	t.results.Set(result)

	slog.Info("Task completed",
		"type", "CheckWatch",
		"watch", t.WatchName,
		"duration", t.GetDuration(),
		"items", len(result.Items))

	return nil
}

// checkItem runs the full pipeline for one feed item: fetch the syndicated
// page, resolve its canonical link, extract both schemas and score them.
// Failures degrade to an error entry for that item instead of failing the
// whole watch.
func (t *CheckWatchTask) checkItem(ctx context.Context, title, link string) watch.ItemResult {
	itemResult := watch.ItemResult{Title: title, Link: link}

	body, err := t.client.Get(ctx, link)
	if err != nil {
		itemResult.Error = fmt.Sprintf("failed to fetch page: %v", err)
		return itemResult
	}

	canonical, err := fetch.ResolveCanonical(body, link)
	if err != nil {
		if errors.Is(err, fetch.ErrNoCanonical) {
			itemResult.Error = "no canonical URL found"
		} else {
			itemResult.Error = fmt.Sprintf("failed to resolve canonical URL: %v", err)
		}
		return itemResult
	}

	itemResult.CanonicalURL = canonical.URL
	itemResult.SameDomain = canonical.SameDomain
	if canonical.SameDomain {
		// The page is its own source; there is nothing to compare.
		return itemResult
	}

	originalSchema, err := t.extractor.Run(body, link)
	if err != nil {
		itemResult.Error = fmt.Sprintf("failed to extract page schema: %v", err)
		return itemResult
	}

	canonicalBody, err := t.client.Get(ctx, canonical.URL)
	if err != nil {
		itemResult.Error = fmt.Sprintf("failed to fetch canonical page: %v", err)
		return itemResult
	}

	canonicalSchema, err := t.extractor.Run(canonicalBody, canonical.URL)
	if err != nil {
		itemResult.Error = fmt.Sprintf("failed to extract canonical schema: %v", err)
		return itemResult
	}

	itemResult.Report = t.scorer.Score(originalSchema, canonicalSchema)
	return itemResult
}

func (t *CheckWatchTask) fetchFeed(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(t.WatchConfig.Settings.Timeout)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
