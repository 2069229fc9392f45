// Package search implements news discovery through the Kagi Search API.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mzaikin/foliowatch/internal/model"
	"github.com/mzaikin/foliowatch/internal/retry"
)

// Client is a Kagi Search API client
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	maxRetries int
}

// NewClient creates a Kagi client from search configuration
func NewClient(cfg model.SearchConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		maxRetries: cfg.MaxRetries,
	}
}

type searchResponse struct {
	Data []searchItem `json:"data"`
}

type searchItem struct {
	Type      int    `json:"t"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	Snippet   string `json:"snippet"`
	Published string `json:"published"`
}

// Search executes a query and returns article candidates. Authentication
// failures are never retried; transient server errors and rate limiting are.
func (c *Client) Search(ctx context.Context, query string) ([]model.ArticleCandidate, error) {
	var candidates []model.ArticleCandidate

	err := retry.Do(ctx, c.maxRetries+1, func() error {
		var searchErr error
		candidates, searchErr = c.doSearch(ctx, query)
		return searchErr
	})
	if err != nil {
		return nil, err
	}

	return candidates, nil
}

func (c *Client) doSearch(ctx context.Context, query string) ([]model.ArticleCandidate, error) {
	endpoint := fmt.Sprintf("%s?q=%s", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bot "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == 401 || resp.StatusCode == 403 {
		return nil, &retry.AuthError{
			Message: fmt.Sprintf("kagi authentication failed: %d", resp.StatusCode),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &retry.StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	candidates := make([]model.ArticleCandidate, 0, len(parsed.Data))
	for _, item := range parsed.Data {
		if item.URL == "" {
			continue
		}
		candidates = append(candidates, model.ArticleCandidate{
			Title:     item.Title,
			Snippet:   item.Snippet,
			URL:       item.URL,
			Published: item.Published,
		})
	}

	return candidates, nil
}

// BuildQuery composes the search query with date-range filters
func BuildQuery(companyName, afterDate, beforeDate string) string {
	return fmt.Sprintf("%s after:%s before:%s", companyName, afterDate, beforeDate)
}

// DateRange computes the search window. The oldest snapshot timestamp
// anchors the start; with no history it falls back to 90 days before now.
func DateRange(oldestSnapshot *time.Time, now time.Time) (afterDate, beforeDate string) {
	beforeDate = now.UTC().Format("2006-01-02")

	if oldestSnapshot != nil {
		afterDate = oldestSnapshot.UTC().Format("2006-01-02")
	} else {
		afterDate = now.UTC().AddDate(0, 0, -90).Format("2006-01-02")
	}

	return afterDate, beforeDate
}

// ParsePublished parses an article's published timestamp, falling back to
// now when missing or malformed.
func ParsePublished(published string, now time.Time) time.Time {
	if published == "" {
		return now.UTC()
	}
	if ts, err := time.Parse(time.RFC3339, published); err == nil {
		return ts
	}
	if ts, err := time.Parse("2006-01-02T15:04:05", published); err == nil {
		return ts.UTC()
	}
	if ts, err := time.Parse("2006-01-02", published); err == nil {
		return ts
	}
	return now.UTC()
}
