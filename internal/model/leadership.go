package model

import "time"

// LeadershipChangeType classifies a roster diff event
type LeadershipChangeType string

const (
	ChangeCEODeparture       LeadershipChangeType = "ceo_departure"
	ChangeFounderDeparture   LeadershipChangeType = "founder_departure"
	ChangeCTODeparture       LeadershipChangeType = "cto_departure"
	ChangeCOODeparture       LeadershipChangeType = "coo_departure"
	ChangeExecutiveDeparture LeadershipChangeType = "executive_departure"
	ChangeNewCEO             LeadershipChangeType = "new_ceo"
	ChangeNewLeadership      LeadershipChangeType = "new_leadership"
	ChangeNone               LeadershipChangeType = "no_change"
)

// ChangeSeverity ranks how urgent a leadership change is
type ChangeSeverity string

const (
	SeverityCritical      ChangeSeverity = "critical"
	SeverityNotable       ChangeSeverity = "notable"
	SeverityInsignificant ChangeSeverity = "insignificant"
)

// LeadershipRecord is a known leader from a prior observation. Identity is
// the stable profile identifier, never the display name.
type LeadershipRecord struct {
	ID         string    `json:"id,omitempty"`
	CompanyID  string    `json:"company_id"`
	PersonName string    `json:"person_name"`
	Title      string    `json:"title"`
	ProfileID  string    `json:"profile_id"`
	IsCurrent  bool      `json:"is_current"`
	Confidence float64   `json:"confidence,omitempty"`
	ObservedAt time.Time `json:"observed_at"`
}

// CandidateRecord is a freshly observed person from an external source.
// Records without a ProfileID are ignored by the roster diff.
type CandidateRecord struct {
	PersonName string `json:"person_name"`
	Title      string `json:"title"`
	ProfileID  string `json:"profile_id"`
}

// LeadershipChange is one typed event produced by diffing two rosters
type LeadershipChange struct {
	ChangeType LeadershipChangeType `json:"change_type"`
	PersonName string               `json:"person_name"`
	Title      string               `json:"title"`
	Severity   ChangeSeverity       `json:"severity"`
	Confidence float64              `json:"confidence"`
}
