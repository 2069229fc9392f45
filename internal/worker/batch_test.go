package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mzaikin/foliowatch/internal/model"
)

type countingProcessor struct {
	mu        sync.Mutex
	processed []string
	failFor   string
}

func (p *countingProcessor) ProcessCompany(ctx context.Context, company model.Company) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processed = append(p.processed, company.Name)
	if company.Name == p.failFor {
		return errors.New("processing failed")
	}
	return nil
}

func TestBatchProcessor_ProcessesAll(t *testing.T) {
	processor := &countingProcessor{}
	b := NewBatchProcessor(processor, 3)

	companies := []model.Company{
		{Name: "alpha"}, {Name: "beta"}, {Name: "gamma"},
	}
	results := b.ProcessCompanies(context.Background(), companies)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if len(processor.processed) != 3 {
		t.Errorf("expected 3 processed companies, got %d", len(processor.processed))
	}
}

func TestBatchProcessor_ReportsFailures(t *testing.T) {
	processor := &countingProcessor{failFor: "beta"}
	b := NewBatchProcessor(processor, 2)

	companies := []model.Company{{Name: "alpha"}, {Name: "beta"}}
	results := b.ProcessCompanies(context.Background(), companies)

	failed := 0
	for _, r := range results {
		if r.GetError() != nil {
			failed++
			if r.Company.Name != "beta" {
				t.Errorf("expected beta to fail, got %s", r.Company.Name)
			}
		}
	}
	if failed != 1 {
		t.Errorf("expected one failure, got %d", failed)
	}
}

func TestBatchProcessor_LargePortfolio(t *testing.T) {
	// Many more companies than the pool buffers: must not stall between
	// submission and result collection.
	processor := &countingProcessor{}
	b := NewBatchProcessor(processor, 2)

	companies := make([]model.Company, 100)
	for i := range companies {
		companies[i] = model.Company{Name: fmt.Sprintf("company-%03d", i)}
	}

	results := b.ProcessCompanies(context.Background(), companies)
	if len(results) != 100 {
		t.Fatalf("expected 100 results, got %d", len(results))
	}
	if len(processor.processed) != 100 {
		t.Errorf("expected 100 processed companies, got %d", len(processor.processed))
	}
}

func TestBatchProcessor_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	processor := &countingProcessor{}
	b := NewBatchProcessor(processor, 2)

	companies := []model.Company{{Name: "alpha"}, {Name: "beta"}}
	results := b.ProcessCompanies(ctx, companies)

	if len(results) != 0 {
		t.Errorf("cancelled batch must not report results, got %d", len(results))
	}
}

func TestBatchProcessor_EmptyInput(t *testing.T) {
	b := NewBatchProcessor(&countingProcessor{}, 2)

	results := b.ProcessCompanies(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestLoadCompaniesFile(t *testing.T) {
	content := `companies:
  - name: "  Acme   Corp "
    url: https://acme.com
    linkedin_url: https://linkedin.com/company/acme
    logo_hash: abcd1234
    description: rockets
  - name: ""
    url: https://nameless.example.com
  - name: acme corp
    url: https://duplicate.example.com
  - name: Beta Labs
    url: https://betalabs.io
`
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	companies, err := LoadCompaniesFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(companies) != 2 {
		t.Fatalf("expected 2 companies after skip and dedupe, got %d: %+v", len(companies), companies)
	}
	if companies[0].Name != "Acme Corp" {
		t.Errorf("expected normalized name %q, got %q", "Acme Corp", companies[0].Name)
	}
	if companies[0].HomepageURL != "https://acme.com" || companies[0].LogoHash != "abcd1234" {
		t.Errorf("unexpected first company: %+v", companies[0])
	}
	if companies[1].Name != "Beta Labs" {
		t.Errorf("expected Beta Labs, got %q", companies[1].Name)
	}
}

func TestLoadCompaniesFile_Missing(t *testing.T) {
	if _, err := LoadCompaniesFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file must return an error")
	}
}
