package model

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"
)

// Company is a portfolio company being monitored
type Company struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	HomepageURL string    `json:"homepage_url,omitempty"`
	LinkedInURL string    `json:"linkedin_url,omitempty"`
	LogoHash    string    `json:"logo_hash,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NormalizeName collapses whitespace in a company name
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// Snapshot is one point-in-time capture of a company's web presence
type Snapshot struct {
	ID               string    `json:"id,omitempty"`
	CompanyID        string    `json:"company_id"`
	URL              string    `json:"url"`
	StatusCode       int       `json:"status_code,omitempty"`
	ContentText      string    `json:"content_text,omitempty"`
	ContentChecksum  string    `json:"content_checksum,omitempty"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	HasPaywall       bool      `json:"has_paywall"`
	HasAuthRequired  bool      `json:"has_auth_required"`
	HTTPLastModified string    `json:"http_last_modified,omitempty"`
	CapturedAt       time.Time `json:"captured_at"`
}

// ComputeChecksum returns the content fingerprint used for cheap
// changed/unchanged detection between snapshots.
func ComputeChecksum(content string) string {
	sum := md5.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}

// ExtractionResult tallies the outcome of a batch operation
type ExtractionResult struct {
	Processed  int              `json:"processed"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Skipped    int              `json:"skipped"`
	Errors     []ProcessingNote `json:"errors,omitempty"`
}

// ProcessingNote records one failure within a batch
type ProcessingNote struct {
	Company string `json:"company,omitempty"`
	Error   string `json:"error"`
}

// AddError appends a failure note and bumps the failed counter
func (r *ExtractionResult) AddError(company string, err error) {
	r.Failed++
	r.Errors = append(r.Errors, ProcessingNote{Company: company, Error: err.Error()})
}

// ProcessingError is a persisted record of a failed operation
type ProcessingError struct {
	ID           string    `json:"id,omitempty"`
	EntityType   string    `json:"entity_type"`
	EntityID     string    `json:"entity_id,omitempty"`
	ErrorType    string    `json:"error_type"`
	ErrorMessage string    `json:"error_message"`
	OccurredAt   time.Time `json:"occurred_at"`
}
