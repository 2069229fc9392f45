package leadership

import (
	"strings"

	"github.com/mzaikin/foliowatch/internal/model"
)

// Detector diffs two point-in-time leadership rosters into typed change
// events. Matching is by stable profile identifier exclusively: display names
// are not dependable across sources and are never compared.
type Detector struct{}

// NewDetector creates a new detector
func NewDetector() *Detector {
	return &Detector{}
}

// DetectChanges compares a previous roster against freshly observed
// candidates. Records without a profile identifier are ignored. Departures
// and arrivals are independent events, never paired against each other.
// Exactly one no_change record is returned when the diff is empty.
func (d *Detector) DetectChanges(previous []model.LeadershipRecord, current []model.CandidateRecord) []model.LeadershipChange {
	prevByID := make(map[string]model.LeadershipRecord)
	var prevOrder []string
	for _, rec := range previous {
		if rec.ProfileID == "" {
			continue
		}
		if _, seen := prevByID[rec.ProfileID]; !seen {
			prevOrder = append(prevOrder, rec.ProfileID)
		}
		prevByID[rec.ProfileID] = rec
	}

	currByID := make(map[string]model.CandidateRecord)
	var currOrder []string
	for _, rec := range current {
		if rec.ProfileID == "" {
			continue
		}
		if _, seen := currByID[rec.ProfileID]; !seen {
			currOrder = append(currOrder, rec.ProfileID)
		}
		currByID[rec.ProfileID] = rec
	}

	var changes []model.LeadershipChange

	// Departures: in previous but not in current
	for _, id := range prevOrder {
		if _, ok := currByID[id]; ok {
			continue
		}
		leader := prevByID[id]
		changeType := departureType(leader.Title)
		severity := model.SeverityNotable
		confidence := 0.80
		if isCriticalDeparture(changeType) {
			severity = model.SeverityCritical
			confidence = 0.95
		}
		changes = append(changes, model.LeadershipChange{
			ChangeType: changeType,
			PersonName: leader.PersonName,
			Title:      leader.Title,
			Severity:   severity,
			Confidence: confidence,
		})
	}

	// Arrivals: in current but not in previous
	for _, id := range currOrder {
		if _, ok := prevByID[id]; ok {
			continue
		}
		person := currByID[id]
		changeType := model.ChangeNewLeadership
		if NormalizeTitle(person.Title) == "CEO" {
			changeType = model.ChangeNewCEO
		}
		changes = append(changes, model.LeadershipChange{
			ChangeType: changeType,
			PersonName: person.PersonName,
			Title:      person.Title,
			Severity:   model.SeverityNotable,
			Confidence: 0.80,
		})
	}

	if len(changes) == 0 {
		changes = append(changes, model.LeadershipChange{
			ChangeType: model.ChangeNone,
			Severity:   model.SeverityInsignificant,
			Confidence: 0.75,
		})
	}

	return changes
}

// departureType maps a departing person's title to the change subtype
func departureType(title string) model.LeadershipChangeType {
	switch strings.ToUpper(NormalizeTitle(title)) {
	case "CEO":
		return model.ChangeCEODeparture
	case "FOUNDER", "CO-FOUNDER":
		return model.ChangeFounderDeparture
	case "CTO":
		return model.ChangeCTODeparture
	case "COO":
		return model.ChangeCOODeparture
	default:
		return model.ChangeExecutiveDeparture
	}
}

func isCriticalDeparture(changeType model.LeadershipChangeType) bool {
	switch changeType {
	case model.ChangeCEODeparture, model.ChangeFounderDeparture, model.ChangeCTODeparture, model.ChangeCOODeparture:
		return true
	default:
		return false
	}
}
