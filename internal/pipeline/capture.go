package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mzaikin/foliowatch/internal/model"
	"github.com/mzaikin/foliowatch/internal/retry"
)

// CaptureSnapshots fetches and stores a snapshot for every company with a
// homepage URL. Fetch failures are stored as error snapshots so that the
// capture history stays complete.
func (p *Pipeline) CaptureSnapshots(ctx context.Context) (*model.ExtractionResult, error) {
	companies, err := p.store.ListCompanies()
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}

	var withURLs []model.Company
	for _, company := range companies {
		if company.HomepageURL != "" {
			withURLs = append(withURLs, company)
		}
	}

	result := p.runBatch(ctx, withURLs, p.captureOne)

	slog.Info("snapshot capture complete",
		"processed", result.Processed,
		"successful", result.Successful,
		"failed", result.Failed)

	return result, nil
}

func (p *Pipeline) captureOne(ctx context.Context, company model.Company) error {
	snap := p.fetcher.Snapshot(ctx, company)

	if snap.ErrorMessage != "" {
		slog.Warn("snapshot capture degraded",
			"company", company.Name,
			"error", snap.ErrorMessage)
	}

	if _, err := p.store.StoreSnapshot(snap); err != nil {
		p.recordError("company", company.ID, retry.Classify(err), err)
		return fmt.Errorf("store snapshot for %s: %w", company.Name, err)
	}

	return nil
}
