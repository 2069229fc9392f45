package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mzaikin/foliowatch/internal/model"
	"github.com/mzaikin/foliowatch/internal/retry"
)

func newTestClient(baseURL string) *Client {
	return NewClient(model.SearchConfig{
		APIKey:     "test-key",
		BaseURL:    baseURL,
		MaxRetries: 0,
		TimeoutSec: 5,
	})
}

func TestSearch_ParsesResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bot test-key" {
			t.Errorf("unexpected authorization header %q", auth)
		}
		if q := r.URL.Query().Get("q"); q != "Acme after:2026-01-01 before:2026-08-31" {
			t.Errorf("unexpected query %q", q)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [
			{"t": 0, "url": "https://news.example.com/a", "title": "Acme raises round", "snippet": "Acme raised funding", "published": "2026-03-15"},
			{"t": 0, "url": "", "title": "no url, skipped"},
			{"t": 0, "url": "https://news.example.com/b", "title": "Acme expands"}
		]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	candidates, err := c.Search(context.Background(), "Acme after:2026-01-01 before:2026-08-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected two candidates, got %d", len(candidates))
	}
	if candidates[0].Title != "Acme raises round" || candidates[0].URL != "https://news.example.com/a" {
		t.Errorf("unexpected first candidate: %+v", candidates[0])
	}
	if candidates[0].Published != "2026-03-15" {
		t.Errorf("expected published date carried through, got %q", candidates[0].Published)
	}
}

func TestSearch_AuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Search(context.Background(), "Acme")

	var authErr *retry.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
}

func TestSearch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Search(context.Background(), "Acme")

	var statusErr *retry.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", statusErr.Code)
	}
}

func TestBuildQuery(t *testing.T) {
	got := BuildQuery("Acme Corp", "2026-01-01", "2026-08-31")
	if got != "Acme Corp after:2026-01-01 before:2026-08-31" {
		t.Errorf("unexpected query %q", got)
	}
}

func TestDateRange(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	after, before := DateRange(nil, now)
	if after != "2026-06-02" {
		t.Errorf("expected 90-day fallback 2026-06-02, got %q", after)
	}
	if before != "2026-08-31" {
		t.Errorf("expected before date 2026-08-31, got %q", before)
	}

	oldest := time.Date(2026, 2, 10, 8, 30, 0, 0, time.UTC)
	after, before = DateRange(&oldest, now)
	if after != "2026-02-10" {
		t.Errorf("expected snapshot-anchored 2026-02-10, got %q", after)
	}
	if before != "2026-08-31" {
		t.Errorf("expected before date 2026-08-31, got %q", before)
	}
}

func TestParsePublished(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		published string
		want      time.Time
	}{
		{"2026-03-15T10:30:00Z", time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"2026-03-15T10:30:00", time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"2026-03-15", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"", now},
		{"not a date", now},
	}

	for _, tt := range tests {
		if got := ParsePublished(tt.published, now); !got.Equal(tt.want) {
			t.Errorf("ParsePublished(%q) = %v, want %v", tt.published, got, tt.want)
		}
	}
}
