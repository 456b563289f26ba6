package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// maxBodySize caps page downloads. News pages well past this are not
// articles.
const maxBodySize = 10 << 20

// PageCache stores fetched page bodies keyed by URL. A nil cache disables
// caching.
type PageCache interface {
	GetPage(url string, maxAge time.Duration) ([]byte, bool, error)
	SavePage(url string, body []byte, fetchedAt time.Time) error
}

type Client struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
	cache      PageCache
	cacheTTL   time.Duration
}

func NewClient(userAgent string, timeout time.Duration, cache PageCache, cacheTTL time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{},
		userAgent:  userAgent,
		timeout:    timeout,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// Get fetches one HTML page. Non-200 responses and non-HTML content types
// are errors; a cached body within its TTL short-circuits the request.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if c.cache != nil {
		body, ok, err := c.cache.GetPage(url, c.cacheTTL)
		if err != nil {
			slog.Warn("Page cache lookup failed", "url", url, "error", err)
		} else if ok {
			slog.Debug("Page served from cache", "url", url)
			return body, nil
		}
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	if contentType := resp.Header.Get("Content-Type"); !isHTML(contentType) {
		return nil, fmt.Errorf("unexpected content type: %s", contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.SavePage(url, body, time.Now().UTC()); err != nil {
			slog.Warn("Failed to cache page", "url", url, "error", err)
		}
	}

	return body, nil
}

// isHTML accepts HTML content types and responses that omit the header.
func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}
