package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mzaikin/foliowatch/internal/model"
)

var copyrightPattern = regexp.MustCompile(`(?i)(?:copyright|\(c\)|©|&copy;)\s*(?:\d{4}\s*[-–]\s*)?(\d{4})`)

var acquisitionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bacquired\s+by\b`),
	regexp.MustCompile(`(?i)\bmerged\s+with\b`),
	regexp.MustCompile(`(?i)\bsold\s+to\b`),
	regexp.MustCompile(`(?i)\bnow\s+(?:a\s+)?part\s+of\b`),
	regexp.MustCompile(`(?i)\bis\s+now\s+a\s+subsidiary\s+of\b`),
	regexp.MustCompile(`(?i)\bis\s+now\s+a\s+division\s+of\b`),
}

// Benign prefixes that make acquisition language a false positive, e.g.
// "we acquired new customers" or "talent acquisition".
var acquisitionBenignPrefixes = []string{"we ", "our ", "talent ", "customer ", "data "}

var hiringPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bhiring\b`),
	regexp.MustCompile(`(?i)\bjoin\s+our\s+team\b`),
	regexp.MustCompile(`(?i)\bcareers?\b`),
	regexp.MustCompile(`(?i)\bopen\s+positions?\b`),
}

// ExtractCopyrightYear returns the most recent copyright year found in the
// content, or 0 when none is present.
func ExtractCopyrightYear(content string) int {
	matches := copyrightPattern.FindAllStringSubmatch(content, -1)
	maxYear := 0
	for _, m := range matches {
		if year, err := strconv.Atoi(m[1]); err == nil && year > maxYear {
			maxYear = year
		}
	}
	return maxYear
}

// DetectAcquisition reports acquisition or merger language, filtering
// benign collocations by inspecting the 30 characters before the match.
func DetectAcquisition(content string) bool {
	lower := strings.ToLower(content)
	for _, pattern := range acquisitionPatterns {
		loc := pattern.FindStringIndex(content)
		if loc == nil {
			continue
		}
		start := loc[0] - 30
		if start < 0 {
			start = 0
		}
		prefix := lower[start:loc[0]]
		benign := false
		for _, word := range acquisitionBenignPrefixes {
			if strings.Contains(prefix, word) {
				benign = true
				break
			}
		}
		if !benign {
			return true
		}
	}
	return false
}

// detectHiring reports whether any hiring signal appears in the content
func detectHiring(content string) bool {
	for _, pattern := range hiringPatterns {
		if pattern.MatchString(content) {
			return true
		}
	}
	return false
}

// AnalyzeStatus assesses operational status for every company from its
// latest snapshot. Companies without snapshots are skipped.
func (p *Pipeline) AnalyzeStatus(ctx context.Context, companyName string) (*model.ExtractionResult, error) {
	var companies []model.Company
	if companyName != "" {
		company, err := p.store.GetCompanyByName(companyName)
		if err != nil {
			return nil, fmt.Errorf("company not found: %w", err)
		}
		companies = []model.Company{*company}
	} else {
		all, err := p.store.ListCompanies()
		if err != nil {
			return nil, fmt.Errorf("list companies: %w", err)
		}
		companies = all
	}

	result := &model.ExtractionResult{}

	for _, company := range companies {
		result.Processed++

		snaps, err := p.store.LatestSnapshots(company.ID, 1)
		if err != nil {
			result.AddError(company.Name, err)
			continue
		}
		if len(snaps) == 0 {
			result.Skipped++
			continue
		}

		status := p.assessStatus(company, snaps[0])
		if err := p.store.StoreStatus(status); err != nil {
			result.AddError(company.Name, err)
			continue
		}
		result.Successful++

		slog.Info("status assessed",
			"company", company.Name,
			"status", status.Status,
			"confidence", status.Confidence,
			"indicators", len(status.Indicators))
	}

	return result, nil
}

// assessStatus derives the operational status from one snapshot
func (p *Pipeline) assessStatus(company model.Company, latest model.Snapshot) model.CompanyStatus {
	content := latest.ContentText
	now := p.now()

	var indicators []model.StatusIndicator

	if year := ExtractCopyrightYear(content); year > 0 {
		signal := model.IndicatorNegative
		switch {
		case year >= now.Year()-1:
			signal = model.IndicatorPositive
		case year >= now.Year()-3:
			signal = model.IndicatorNeutral
		}
		indicators = append(indicators, model.StatusIndicator{
			Type: "copyright_year", Value: strconv.Itoa(year), Signal: signal,
		})
	}

	if DetectAcquisition(content) {
		indicators = append(indicators, model.StatusIndicator{
			Type: "acquisition", Value: "detected", Signal: model.IndicatorNegative,
		})
	}

	if detectHiring(content) {
		indicators = append(indicators, model.StatusIndicator{
			Type: "hiring_signal", Value: "detected", Signal: model.IndicatorPositive,
		})
	}

	if latest.HTTPLastModified != "" {
		if lm, err := parseLastModified(latest.HTTPLastModified); err == nil {
			daysOld := int(now.Sub(lm).Hours() / 24)
			signal := model.IndicatorNegative
			switch {
			case daysOld <= 30:
				signal = model.IndicatorPositive
			case daysOld <= 180:
				signal = model.IndicatorNeutral
			}
			indicators = append(indicators, model.StatusIndicator{
				Type: "http_freshness", Value: fmt.Sprintf("%d days", daysOld), Signal: signal,
			})
		}
	}

	positive, negative := 0, 0
	for _, indicator := range indicators {
		switch indicator.Signal {
		case model.IndicatorPositive:
			positive++
		case model.IndicatorNegative:
			negative++
		}
	}

	confidence := 0.2
	if len(indicators) > 0 {
		dominant := positive
		if negative > dominant {
			dominant = negative
		}
		confidence = math.Min(0.4+0.2*float64(dominant), 1.0)
	}

	status := model.StatusUncertain
	if confidence >= 0.5 {
		switch {
		case positive > negative:
			status = model.StatusOperational
		case negative > positive:
			status = model.StatusLikelyClosed
		}
	}

	return model.CompanyStatus{
		CompanyID:  company.ID,
		Status:     status,
		Confidence: math.Round(confidence*100) / 100,
		Indicators: indicators,
		AnalyzedAt: now,
	}
}

// parseLastModified accepts both HTTP-date and ISO 8601 timestamps
func parseLastModified(value string) (time.Time, error) {
	if ts, err := http.ParseTime(value); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, value)
}
