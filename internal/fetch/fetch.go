// Package fetch captures website snapshots over plain HTTP with caching,
// robots.txt compliance, per-domain rate limiting and bounded retries.
package fetch

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mzaikin/foliowatch/internal/cache"
	"github.com/mzaikin/foliowatch/internal/model"
	"github.com/mzaikin/foliowatch/internal/retry"
	"github.com/mzaikin/foliowatch/internal/util"
	"github.com/mzaikin/foliowatch/internal/worker"
)

// Fetcher retrieves page content for snapshot capture
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	maxRetries int
	cache      cache.Cache
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
}

// Result contains a fetched page and its metadata
type Result struct {
	HTML         string `json:"html"`
	Text         string `json:"text"`
	StatusCode   int    `json:"status_code"`
	LastModified string `json:"last_modified,omitempty"`
	FinalURL     string `json:"final_url"`
	FromCache    bool   `json:"-"`
}

// NewFetcher creates a fetcher from HTTP configuration. The cache, robots
// checker and limiter are optional; nil disables the corresponding behavior.
func NewFetcher(cfg model.HTTPConfig, pageCache cache.Cache, robots *util.RobotsChecker, limiter *worker.Limiter) *Fetcher {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
	}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:  cfg.UserAgent,
		maxBytes:   cfg.MaxBodyBytes,
		maxRetries: cfg.MaxRetries,
		cache:      pageCache,
		robots:     robots,
		limiter:    limiter,
	}
}

// Fetch retrieves a page, consulting the cache first and honoring
// robots.txt and rate limits on a miss.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	cacheKey := cache.Key(rawURL)

	if f.cache != nil {
		if data, found := f.cache.Get(cacheKey); found {
			var result Result
			if err := json.Unmarshal(data, &result); err == nil {
				result.FromCache = true
				return &result, nil
			}
		}
	}

	crawlDelay := time.Duration(0)
	if f.robots != nil {
		allowed, delay, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fmt.Errorf("disallowed by robots.txt: %s", rawURL)
		}
		crawlDelay = delay
	}

	if f.limiter != nil {
		if err := f.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
			return nil, err
		}
	}

	var result *Result
	err := retry.Do(ctx, f.maxRetries+1, func() error {
		var fetchErr error
		result, fetchErr = f.doFetch(ctx, rawURL)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := f.cache.Set(cacheKey, data, 0); err != nil {
				slog.Debug("cache write failed", "url", rawURL, "error", err)
			}
		}
	}

	return result, nil
}

// doFetch performs a single HTTP GET
func (f *Fetcher) doFetch(ctx context.Context, rawURL string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &retry.StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	limitedReader := io.LimitReader(resp.Body, f.maxBytes)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	htmlContent := string(body)
	text, err := ExtractVisibleText(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	return &Result{
		HTML:         htmlContent,
		Text:         text,
		StatusCode:   resp.StatusCode,
		LastModified: resp.Header.Get("Last-Modified"),
		FinalURL:     resp.Request.URL.String(),
	}, nil
}

// Snapshot fetches a company homepage and builds a snapshot record. Fetch
// failures produce a snapshot carrying the error rather than an error
// return, so failed captures are still recorded.
func (f *Fetcher) Snapshot(ctx context.Context, company model.Company) model.Snapshot {
	snap := model.Snapshot{
		CompanyID:  company.ID,
		URL:        company.HomepageURL,
		CapturedAt: time.Now().UTC(),
	}

	result, err := f.Fetch(ctx, company.HomepageURL)
	if err != nil {
		var statusErr *retry.StatusError
		if errors.As(err, &statusErr) {
			snap.StatusCode = statusErr.Code
			snap.ErrorMessage = fmt.Sprintf("HTTP %d", statusErr.Code)
			if statusErr.Code == 401 || statusErr.Code == 403 {
				snap.HasAuthRequired = true
			}
		} else {
			snap.ErrorMessage = err.Error()
		}
		return snap
	}

	snap.StatusCode = result.StatusCode
	snap.ContentText = result.Text
	snap.ContentChecksum = model.ComputeChecksum(result.Text)
	snap.HTTPLastModified = result.LastModified
	snap.HasPaywall = DetectPaywall(result.Text)
	snap.HasAuthRequired = DetectAuthWall(result.Text)

	return snap
}
