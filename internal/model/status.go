package model

import "time"

// CompanyStatusType is the operational status inferred from content indicators
type CompanyStatusType string

const (
	StatusOperational  CompanyStatusType = "operational"
	StatusLikelyClosed CompanyStatusType = "likely_closed"
	StatusUncertain    CompanyStatusType = "uncertain"
)

// IndicatorSignal is the polarity of a single status indicator
type IndicatorSignal string

const (
	IndicatorPositive IndicatorSignal = "positive"
	IndicatorNegative IndicatorSignal = "negative"
	IndicatorNeutral  IndicatorSignal = "neutral"
)

// StatusIndicator is one piece of evidence about operational status
type StatusIndicator struct {
	Type   string          `json:"type"`
	Value  string          `json:"value"`
	Signal IndicatorSignal `json:"signal"`
}

// CompanyStatus is the aggregated operational status for a company
type CompanyStatus struct {
	ID         string            `json:"id,omitempty"`
	CompanyID  string            `json:"company_id"`
	Status     CompanyStatusType `json:"status"`
	Confidence float64           `json:"confidence"`
	Indicators []StatusIndicator `json:"indicators,omitempty"`
	AnalyzedAt time.Time         `json:"analyzed_at"`
}
