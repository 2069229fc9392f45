// Package pipeline orchestrates the monitoring operations: snapshot capture,
// change detection, leadership roster diffing, news search and status
// analysis.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mzaikin/foliowatch/internal/cache"
	"github.com/mzaikin/foliowatch/internal/fetch"
	"github.com/mzaikin/foliowatch/internal/leadership"
	"github.com/mzaikin/foliowatch/internal/llm"
	"github.com/mzaikin/foliowatch/internal/model"
	"github.com/mzaikin/foliowatch/internal/relevance"
	"github.com/mzaikin/foliowatch/internal/search"
	"github.com/mzaikin/foliowatch/internal/significance"
	"github.com/mzaikin/foliowatch/internal/store"
	"github.com/mzaikin/foliowatch/internal/util"
	"github.com/mzaikin/foliowatch/internal/worker"
)

// Pipeline wires the monitoring components together
type Pipeline struct {
	config     *model.Config
	store      *store.Store
	fetcher    *fetch.Fetcher
	classifier *significance.Classifier
	validator  *significance.Validator
	detector   *leadership.Detector
	scorer     *relevance.Scorer
	searcher   *search.Client

	// now is replaceable for deterministic tests
	now func() time.Time
}

// New builds a pipeline from configuration, opening the database and
// constructing the LLM provider when one is configured.
func New(config *model.Config, st *store.Store) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(
		config.LLM, config.HTTP.HTTPProxy, config.HTTP.HTTPSProxy, config.HTTP.NoProxy))
	if err != nil {
		return nil, fmt.Errorf("configure llm provider: %w", err)
	}

	var pageCache cache.Cache
	if config.Cache.Enabled {
		pageCache = cache.NewLayeredCache(config.Cache.Dir, config.Cache.DiskTTL)
	}

	var robots *util.RobotsChecker
	if config.HTTP.RespectRobots {
		robots = util.NewRobotsChecker(config.HTTP.UserAgent, config.HTTP.Timeout)
	}

	limiter := worker.NewLimiter(config.Concurrency.RequestsPerSecond, config.Concurrency.Burst)

	var validator *significance.Validator
	var verifier relevance.Verifier
	if provider != nil {
		validator = significance.NewValidator(provider)
		verifier = llm.NewArticleVerifier(provider)
		slog.Info("llm advisory capabilities enabled", "provider", provider.Name())
	}

	return &Pipeline{
		config:     config,
		store:      st,
		fetcher:    fetch.NewFetcher(config.HTTP, pageCache, robots, limiter),
		classifier: significance.NewClassifier(),
		validator:  validator,
		detector:   leadership.NewDetector(),
		scorer:     relevance.NewScorer(verifier, nil),
		searcher:   search.NewClient(config.Search),
		now:        func() time.Time { return time.Now().UTC() },
	}, nil
}

// Store exposes the underlying store for CLI reporting
func (p *Pipeline) Store() *store.Store {
	return p.store
}

// processorFunc adapts a function to the worker.Processor interface
type processorFunc func(ctx context.Context, company model.Company) error

func (f processorFunc) ProcessCompany(ctx context.Context, company model.Company) error {
	return f(ctx, company)
}

// runBatch executes fn for each company through the worker pool and tallies
// the outcome.
func (p *Pipeline) runBatch(ctx context.Context, companies []model.Company, fn processorFunc) *model.ExtractionResult {
	result := &model.ExtractionResult{Processed: len(companies)}

	batch := worker.NewBatchProcessor(fn, p.config.Concurrency.CompanyWorkers)
	for _, res := range batch.ProcessCompanies(ctx, companies) {
		if res.Error != nil {
			result.AddError(res.Company.Name, res.Error)
		} else {
			result.Successful++
		}
	}

	return result
}

// recordError persists a processing error, logging if even that fails
func (p *Pipeline) recordError(entityType, entityID, errType string, err error) {
	storeErr := p.store.StoreProcessingError(model.ProcessingError{
		EntityType:   entityType,
		EntityID:     entityID,
		ErrorType:    errType,
		ErrorMessage: err.Error(),
	})
	if storeErr != nil {
		slog.Error("failed to record processing error", "error", storeErr)
	}
}
