package pipeline

import (
	"testing"
	"time"

	"github.com/mzaikin/foliowatch/internal/model"
)

func fixedClockPipeline() *Pipeline {
	return &Pipeline{
		now: func() time.Time {
			return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
		},
	}
}

func TestExtractCopyrightYear(t *testing.T) {
	tests := []struct {
		content string
		want    int
	}{
		{"Copyright 2026 Acme Inc", 2026},
		{"© 2024 Acme", 2024},
		{"(c) 2019-2024 Acme Corp", 2024},
		{"&copy; 2023 Acme", 2023},
		{"copyright 2020 and copyright 2025", 2025},
		{"no year here", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := ExtractCopyrightYear(tt.content); got != tt.want {
			t.Errorf("ExtractCopyrightYear(%q) = %d, want %d", tt.content, got, tt.want)
		}
	}
}

func TestDetectAcquisition(t *testing.T) {
	tests := []struct {
		content string
		want    bool
	}{
		{"Acme was acquired by BigCo last month", true},
		{"The company merged with CompetitorCo", true},
		{"Acme is now a subsidiary of Holdings Inc", true},
		{"We acquired by accident a reputation for speed", false},
		{"Leading in talent acquisition and retention", false},
		{"Improving customer acquisition funnels", false},
		{"Nothing corporate happening here", false},
	}

	for _, tt := range tests {
		if got := DetectAcquisition(tt.content); got != tt.want {
			t.Errorf("DetectAcquisition(%q) = %v, want %v", tt.content, got, tt.want)
		}
	}
}

func TestAssessStatus_Operational(t *testing.T) {
	p := fixedClockPipeline()

	snap := model.Snapshot{
		ContentText: "© 2026 Acme Inc. We are hiring across all teams.",
	}
	status := p.assessStatus(model.Company{ID: "c1"}, snap)

	if status.Status != model.StatusOperational {
		t.Errorf("expected operational, got %s", status.Status)
	}
	// Two positive indicators: 0.4 + 0.2*2
	if status.Confidence != 0.8 {
		t.Errorf("expected confidence 0.8, got %f", status.Confidence)
	}
	if len(status.Indicators) != 2 {
		t.Errorf("expected two indicators, got %+v", status.Indicators)
	}
}

func TestAssessStatus_LikelyClosed(t *testing.T) {
	p := fixedClockPipeline()

	snap := model.Snapshot{
		ContentText: "© 2019 Acme Inc. Acme was acquired by BigCo.",
	}
	status := p.assessStatus(model.Company{ID: "c1"}, snap)

	if status.Status != model.StatusLikelyClosed {
		t.Errorf("expected likely_closed, got %s", status.Status)
	}
	if status.Confidence != 0.8 {
		t.Errorf("expected confidence 0.8, got %f", status.Confidence)
	}
}

func TestAssessStatus_NoIndicators(t *testing.T) {
	p := fixedClockPipeline()

	status := p.assessStatus(model.Company{ID: "c1"}, model.Snapshot{ContentText: "plain marketing copy"})

	if status.Status != model.StatusUncertain {
		t.Errorf("expected uncertain, got %s", status.Status)
	}
	if status.Confidence != 0.2 {
		t.Errorf("expected confidence 0.2, got %f", status.Confidence)
	}
	if len(status.Indicators) != 0 {
		t.Errorf("expected no indicators, got %+v", status.Indicators)
	}
}

func TestAssessStatus_StaleCopyrightIsNeutral(t *testing.T) {
	p := fixedClockPipeline()

	// 2024 is within the three-year neutral window from 2026
	status := p.assessStatus(model.Company{ID: "c1"}, model.Snapshot{ContentText: "© 2024 Acme"})

	if status.Status != model.StatusUncertain {
		t.Errorf("a lone neutral indicator must stay uncertain, got %s", status.Status)
	}
	// One indicator, zero dominant: 0.4 + 0.2*0
	if status.Confidence != 0.4 {
		t.Errorf("expected confidence 0.4, got %f", status.Confidence)
	}
}

func TestAssessStatus_HTTPFreshness(t *testing.T) {
	p := fixedClockPipeline()

	snap := model.Snapshot{
		ContentText:      "plain copy",
		HTTPLastModified: "Mon, 24 Aug 2026 10:00:00 GMT",
	}
	status := p.assessStatus(model.Company{ID: "c1"}, snap)

	if len(status.Indicators) != 1 {
		t.Fatalf("expected one freshness indicator, got %+v", status.Indicators)
	}
	if status.Indicators[0].Type != "http_freshness" || status.Indicators[0].Signal != model.IndicatorPositive {
		t.Errorf("recent Last-Modified must be positive, got %+v", status.Indicators[0])
	}
}

func TestParseLastModified(t *testing.T) {
	if _, err := parseLastModified("Mon, 02 Jan 2006 15:04:05 GMT"); err != nil {
		t.Errorf("HTTP-date must parse: %v", err)
	}
	if _, err := parseLastModified("2026-08-01T10:00:00Z"); err != nil {
		t.Errorf("RFC 3339 must parse: %v", err)
	}
	if _, err := parseLastModified("not a date"); err == nil {
		t.Error("garbage must not parse")
	}
}
