package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mzaikin/foliowatch/internal/cache"
	"github.com/mzaikin/foliowatch/internal/model"
)

func testConfig() model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "foliowatch-test/1.0",
		MaxBodyBytes: 1 << 20,
		MaxRetries:   0,
	}
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "foliowatch-test/1.0" {
			t.Errorf("unexpected user agent %q", ua)
		}
		w.Header().Set("Last-Modified", "Mon, 02 Jan 2006 15:04:05 GMT")
		_, _ = w.Write([]byte("<html><body><p>Hello visitors</p></body></html>"))
	}))
	defer server.Close()

	f := NewFetcher(testConfig(), nil, nil, nil)
	result, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", result.StatusCode)
	}
	if result.Text != "Hello visitors" {
		t.Errorf("expected extracted text, got %q", result.Text)
	}
	if result.LastModified != "Mon, 02 Jan 2006 15:04:05 GMT" {
		t.Errorf("expected Last-Modified header captured, got %q", result.LastModified)
	}
	if result.FromCache {
		t.Error("first fetch must not be served from cache")
	}
}

func TestFetch_CacheHit(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte("<p>cached page</p>"))
	}))
	defer server.Close()

	pageCache := cache.NewMemoryCache(time.Minute, time.Minute)
	f := NewFetcher(testConfig(), pageCache, nil, nil)

	first, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.FromCache {
		t.Error("first fetch must hit the network")
	}

	second, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.FromCache {
		t.Error("second fetch must come from cache")
	}
	if second.Text != first.Text {
		t.Errorf("cached text mismatch: %q vs %q", second.Text, first.Text)
	}
	if requests != 1 {
		t.Errorf("expected a single network request, got %d", requests)
	}
}

func TestFetch_BodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for i := 0; i < 100; i++ {
			_, _ = w.Write([]byte("<p>0123456789</p>"))
		}
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.MaxBodyBytes = 64
	f := NewFetcher(cfg, nil, nil, nil)

	result, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.HTML) != 64 {
		t.Errorf("expected body truncated to 64 bytes, got %d", len(result.HTML))
	}
}

func TestSnapshot_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>Acme builds rockets</p></body></html>"))
	}))
	defer server.Close()

	f := NewFetcher(testConfig(), nil, nil, nil)
	company := model.Company{ID: "c1", HomepageURL: server.URL}

	snap := f.Snapshot(context.Background(), company)
	if snap.ErrorMessage != "" {
		t.Fatalf("unexpected error message %q", snap.ErrorMessage)
	}
	if snap.CompanyID != "c1" || snap.URL != server.URL {
		t.Errorf("snapshot identity wrong: %+v", snap)
	}
	if snap.ContentText != "Acme builds rockets" {
		t.Errorf("expected extracted text, got %q", snap.ContentText)
	}
	if snap.ContentChecksum != model.ComputeChecksum("Acme builds rockets") {
		t.Error("checksum must cover the extracted text")
	}
	if snap.CapturedAt.IsZero() {
		t.Error("captured_at must be set")
	}
}

func TestSnapshot_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	f := NewFetcher(testConfig(), nil, nil, nil)
	snap := f.Snapshot(context.Background(), model.Company{ID: "c1", HomepageURL: server.URL})

	if snap.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", snap.StatusCode)
	}
	if snap.ErrorMessage != "HTTP 404" {
		t.Errorf("expected %q, got %q", "HTTP 404", snap.ErrorMessage)
	}
	if snap.HasAuthRequired {
		t.Error("404 must not flag auth required")
	}
}

func TestSnapshot_AuthRequired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	f := NewFetcher(testConfig(), nil, nil, nil)
	snap := f.Snapshot(context.Background(), model.Company{ID: "c1", HomepageURL: server.URL})

	if !snap.HasAuthRequired {
		t.Error("403 must flag auth required")
	}
	if snap.ErrorMessage != "HTTP 403" {
		t.Errorf("expected %q, got %q", "HTTP 403", snap.ErrorMessage)
	}
}

func TestSnapshot_PaywallDetected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<p>Subscribe to continue reading our coverage</p>"))
	}))
	defer server.Close()

	f := NewFetcher(testConfig(), nil, nil, nil)
	snap := f.Snapshot(context.Background(), model.Company{ID: "c1", HomepageURL: server.URL})

	if !snap.HasPaywall {
		t.Error("paywall text must set the paywall flag")
	}
}
