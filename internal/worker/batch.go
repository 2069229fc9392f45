package worker

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mzaikin/foliowatch/internal/model"
)

// Processor defines the interface for processing a single company
type Processor interface {
	ProcessCompany(ctx context.Context, company model.Company) error
}

// CompanyJob represents a per-company processing job
type CompanyJob struct {
	Company   model.Company
	Processor Processor
}

// Execute executes the company job
func (j *CompanyJob) Execute(ctx context.Context) Result {
	err := j.Processor.ProcessCompany(ctx, j.Company)
	return &CompanyResult{
		Company: j.Company,
		Error:   err,
	}
}

// CompanyResult represents the result of a company job
type CompanyResult struct {
	Company model.Company
	Error   error
}

// GetError returns the error from the company result
func (r *CompanyResult) GetError() error {
	return r.Error
}

// BatchProcessor processes multiple companies concurrently
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessCompanies processes multiple companies concurrently. Jobs are
// submitted from a separate goroutine while results are drained here, so
// portfolios of any size flow through the bounded pool channels.
func (b *BatchProcessor) ProcessCompanies(ctx context.Context, companies []model.Company) []*CompanyResult {
	if len(companies) == 0 {
		return []*CompanyResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	go func() {
		defer pool.Close()
		for _, company := range companies {
			job := &CompanyJob{
				Company:   company,
				Processor: b.processor,
			}
			if !pool.Submit(job) {
				return
			}
		}
	}()

	companyResults := make([]*CompanyResult, 0, len(companies))
	for result := range pool.Results() {
		companyResults = append(companyResults, result.(*CompanyResult))
	}

	return companyResults
}

// portfolioFile is the on-disk format for a company roster
type portfolioFile struct {
	Companies []portfolioEntry `yaml:"companies"`
}

type portfolioEntry struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	LinkedInURL string `yaml:"linkedin_url"`
	LogoHash    string `yaml:"logo_hash"`
	Description string `yaml:"description"`
}

// LoadCompaniesFile reads a portfolio roster from a YAML file, skipping
// entries without a name and deduplicating by normalized name.
func LoadCompaniesFile(filePath string) ([]model.Company, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("open portfolio file: %w", err)
	}

	var file portfolioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse portfolio file: %w", err)
	}

	var companies []model.Company
	seen := make(map[string]bool)

	for _, entry := range file.Companies {
		if entry.Name == "" {
			continue
		}

		normalized := strings.ToLower(model.NormalizeName(entry.Name))
		if seen[normalized] {
			continue
		}
		seen[normalized] = true

		companies = append(companies, model.Company{
			Name:        model.NormalizeName(entry.Name),
			HomepageURL: entry.URL,
			LinkedInURL: entry.LinkedInURL,
			LogoHash:    entry.LogoHash,
			Description: entry.Description,
		})
	}

	return companies, nil
}
