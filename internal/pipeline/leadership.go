package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mzaikin/foliowatch/internal/leadership"
	"github.com/mzaikin/foliowatch/internal/model"
)

// RosterFile is the on-disk format for externally extracted leadership
// observations, keyed by company name.
type RosterFile struct {
	Rosters []CompanyRoster `yaml:"rosters"`
}

// CompanyRoster is one company's freshly observed leadership
type CompanyRoster struct {
	Company string          `yaml:"company"`
	People  []rosterPerson `yaml:"people"`
}

type rosterPerson struct {
	Name      string `yaml:"name"`
	Title     string `yaml:"title"`
	ProfileID string `yaml:"profile_id"`
}

// LoadRosterFile parses a leadership roster file
func LoadRosterFile(path string) (*RosterFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open roster file: %w", err)
	}

	var file RosterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse roster file: %w", err)
	}

	return &file, nil
}

// LeadershipReport collects the detected changes per company
type LeadershipReport struct {
	Results map[string][]model.LeadershipChange
	Summary model.ExtractionResult
}

// ProcessRosters diffs each company's observed roster against the stored
// one, persists the updates and returns the detected changes. Observations
// whose titles are not leadership titles are dropped before diffing.
func (p *Pipeline) ProcessRosters(ctx context.Context, file *RosterFile) (*LeadershipReport, error) {
	report := &LeadershipReport{
		Results: make(map[string][]model.LeadershipChange),
	}

	for _, roster := range file.Rosters {
		report.Summary.Processed++

		company, err := p.store.GetCompanyByName(roster.Company)
		if err != nil {
			report.Summary.AddError(roster.Company, fmt.Errorf("company not found: %w", err))
			continue
		}

		changes, err := p.processRoster(ctx, *company, roster)
		if err != nil {
			report.Summary.AddError(roster.Company, err)
			p.recordError("company", company.ID, "leadership", err)
			continue
		}

		report.Results[roster.Company] = changes
		report.Summary.Successful++
	}

	slog.Info("leadership processing complete",
		"processed", report.Summary.Processed,
		"successful", report.Summary.Successful,
		"failed", report.Summary.Failed)

	return report, nil
}

func (p *Pipeline) processRoster(ctx context.Context, company model.Company, roster CompanyRoster) ([]model.LeadershipChange, error) {
	previous, err := p.store.CurrentLeadership(company.ID)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}

	var candidates []model.CandidateRecord
	for _, person := range roster.People {
		if !leadership.IsLeadershipTitle(person.Title) {
			continue
		}
		candidates = append(candidates, model.CandidateRecord{
			PersonName: person.Name,
			Title:      person.Title,
			ProfileID:  person.ProfileID,
		})
	}

	changes := p.detector.DetectChanges(previous, candidates)

	// Persist the new roster state
	seen := make(map[string]bool)
	for _, candidate := range candidates {
		if candidate.ProfileID == "" {
			continue
		}
		seen[candidate.ProfileID] = true
		err := p.store.UpsertLeadership(model.LeadershipRecord{
			CompanyID:  company.ID,
			PersonName: candidate.PersonName,
			Title:      candidate.Title,
			ProfileID:  candidate.ProfileID,
			IsCurrent:  true,
			Confidence: 0.8,
			ObservedAt: p.now(),
		})
		if err != nil {
			return nil, err
		}
	}

	for _, prev := range previous {
		if !seen[prev.ProfileID] {
			if err := p.store.MarkLeadershipNotCurrent(company.ID, prev.ProfileID); err != nil {
				return nil, err
			}
		}
	}

	for _, c := range changes {
		if c.ChangeType != model.ChangeNone {
			slog.Info("leadership change detected",
				"company", company.Name,
				"type", c.ChangeType,
				"person", c.PersonName,
				"severity", c.Severity)
		}
	}

	return changes, nil
}
