package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/mzaikin/foliowatch/internal/model"
	"github.com/mzaikin/foliowatch/internal/relevance"
	"github.com/mzaikin/foliowatch/internal/retry"
	"github.com/mzaikin/foliowatch/internal/search"
	"github.com/mzaikin/foliowatch/internal/util"
)

const maxStoredTitleLength = 500

// SearchNewsAll runs news discovery for every company. Authentication
// failures abort the run; other per-company failures are tallied.
func (p *Pipeline) SearchNewsAll(ctx context.Context) (*model.ExtractionResult, error) {
	companies, err := p.store.ListCompanies()
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}

	result := &model.ExtractionResult{Processed: len(companies)}

	for _, company := range companies {
		if _, err := p.SearchNewsForCompany(ctx, company); err != nil {
			var authErr *retry.AuthError
			if errors.As(err, &authErr) {
				return result, err
			}
			result.AddError(company.Name, err)
			continue
		}
		result.Successful++
	}

	slog.Info("news search complete",
		"processed", result.Processed,
		"successful", result.Successful,
		"failed", result.Failed)

	return result, nil
}

// SearchNewsForCompany searches for news about one company, verifies each
// candidate's relevance and stores accepted articles with a significance
// assessment of the headline text.
func (p *Pipeline) SearchNewsForCompany(ctx context.Context, company model.Company) (*model.NewsSearchResult, error) {
	result := &model.NewsSearchResult{
		CompanyID:   company.ID,
		CompanyName: company.Name,
	}

	oldest, err := p.store.OldestSnapshotTime(company.ID)
	if err != nil {
		return nil, err
	}
	afterDate, beforeDate := search.DateRange(oldest, p.now())

	query := search.BuildQuery(company.Name, afterDate, beforeDate)

	candidates, err := p.searcher.Search(ctx, query)
	if err != nil {
		var authErr *retry.AuthError
		if errors.As(err, &authErr) {
			return nil, err
		}
		result.Errors = append(result.Errors, err.Error())
		return result, err
	}

	result.ArticlesFound = len(candidates)

	for _, candidate := range candidates {
		exists, err := p.store.ArticleURLExists(candidate.URL)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		score := p.scorer.Score(ctx, candidate, company.Name, company.HomepageURL, company.LogoHash)
		if score.Confidence < relevance.DefaultThreshold {
			continue
		}

		article := p.buildArticle(company, candidate, score)
		if _, err := p.store.StoreNewsArticle(article); err != nil {
			slog.Warn("failed to store article",
				"company", company.Name,
				"url", candidate.URL,
				"error", err)
			continue
		}
		result.ArticlesStored++
	}

	return result, nil
}

func (p *Pipeline) buildArticle(company model.Company, candidate model.ArticleCandidate, score model.RelevanceScore) model.NewsArticle {
	// Headline text carries the business signal; snapshots aren't involved,
	// so magnitude defaults to moderate.
	sigResult := p.classifier.Classify(candidate.Title+" "+candidate.Snippet, model.MagnitudeModerate)

	title := candidate.Title
	if len(title) > maxStoredTitleLength {
		title = title[:maxStoredTitleLength]
	}

	return model.NewsArticle{
		CompanyID:       company.ID,
		Title:           title,
		ContentURL:      candidate.URL,
		Source:          util.RegistrableDomain(candidate.URL),
		Snippet:         candidate.Snippet,
		PublishedAt:     search.ParsePublished(candidate.Published, p.now()),
		MatchConfidence: math.Round(score.Confidence*100) / 100,
		MatchEvidence:   score.Evidence,
		Significance:    sigResult,
	}
}
