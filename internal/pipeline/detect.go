package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mzaikin/foliowatch/internal/change"
	"github.com/mzaikin/foliowatch/internal/model"
)

// DetectChanges compares the latest two snapshots for every company,
// classifies the significance of what changed and stores a change record.
// Companies with fewer than two snapshots are skipped.
func (p *Pipeline) DetectChanges(ctx context.Context) (*model.ExtractionResult, error) {
	companies, err := p.store.ListCompanies()
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}

	result := &model.ExtractionResult{}

	for _, company := range companies {
		snaps, err := p.store.LatestSnapshots(company.ID, 2)
		if err != nil {
			result.AddError(company.Name, err)
			continue
		}
		if len(snaps) < 2 {
			result.Skipped++
			continue
		}

		// LatestSnapshots returns newest first
		newSnap, oldSnap := snaps[0], snaps[1]

		result.Processed++

		if oldSnap.ContentText == "" {
			result.Skipped++
			slog.Warn("missing old snapshot content", "company", company.Name)
			continue
		}

		record := p.compareSnapshots(ctx, company, oldSnap, newSnap)

		if _, err := p.store.StoreChangeRecord(record); err != nil {
			result.AddError(company.Name, err)
			p.recordError("company", company.ID, "store", err)
			continue
		}
		result.Successful++
	}

	slog.Info("change detection complete",
		"processed", result.Processed,
		"successful", result.Successful,
		"failed", result.Failed,
		"skipped", result.Skipped)

	return result, nil
}

// compareSnapshots produces the change record for one snapshot pair
func (p *Pipeline) compareSnapshots(ctx context.Context, company model.Company, oldSnap, newSnap model.Snapshot) model.ChangeRecord {
	oldContent := change.Truncate(oldSnap.ContentText, change.MaxCompareLength)
	newContent := change.Truncate(newSnap.ContentText, change.MaxCompareLength)

	hasChanged := oldSnap.ContentChecksum != newSnap.ContentChecksum

	var similarity float64
	var magnitude model.ChangeMagnitude
	if !hasChanged {
		similarity, magnitude = 1.0, model.MagnitudeMinor
	} else if oldContent == "" || newContent == "" {
		similarity, magnitude = 0.0, model.MagnitudeMajor
	} else {
		similarity = change.Ratio(oldContent, newContent)
		magnitude = change.MagnitudeForRatio(similarity)
	}

	diffText := ""
	if hasChanged && oldContent != "" && newContent != "" {
		diffText = change.ExtractAddedDiff(oldContent, newContent)
	}

	// The classifier sees the added lines when available, the full new
	// content otherwise.
	contentForAnalysis := diffText
	if contentForAnalysis == "" {
		contentForAnalysis = newContent
	}
	sigResult := p.classifier.Classify(contentForAnalysis, magnitude)

	// Advisory second opinion: annotates the keyword result, never
	// replaces it.
	if p.validator != nil && p.validator.Enabled() && sigResult.Classification != model.ClassificationInsignificant {
		if validated := p.validator.Validate(ctx, contentForAnalysis, sigResult); validated != nil {
			sigResult.Notes = fmt.Sprintf("llm %s (%.2f): %s",
				validated.Classification, validated.Confidence, validated.Reasoning)
		}
	}

	diffSummary := diffText
	if len(diffSummary) > model.MaxDiffSummaryLength {
		diffSummary = diffSummary[:model.MaxDiffSummaryLength]
	}

	return model.ChangeRecord{
		CompanyID:     company.ID,
		SnapshotIDOld: oldSnap.ID,
		SnapshotIDNew: newSnap.ID,
		HasChanged:    hasChanged,
		Magnitude:     magnitude,
		Similarity:    similarity,
		ChecksumOld:   oldSnap.ContentChecksum,
		ChecksumNew:   newSnap.ContentChecksum,
		DiffSummary:   diffSummary,
		Significance:  sigResult,
	}
}
