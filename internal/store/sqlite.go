// Package store persists companies, snapshots, detected changes and news
// articles in SQLite.
package store

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mzaikin/foliowatch/internal/model"
)

//go:embed schema.sql
var schema string

// Store handles database operations
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the database at dbPath and applies the schema
func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertCompany inserts a company or updates its URLs and metadata when a
// company with the same name already exists. Returns the stored company
// with its identifier populated.
func (s *Store) UpsertCompany(company model.Company) (model.Company, error) {
	existing, err := s.GetCompanyByName(company.Name)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return model.Company{}, err
	}

	now := time.Now().UTC()

	if existing != nil {
		_, err := s.db.Exec(
			`UPDATE companies SET homepage_url = ?, linkedin_url = ?, logo_hash = ?, description = ?, updated_at = ? WHERE id = ?`,
			company.HomepageURL, company.LinkedInURL, company.LogoHash, company.Description, now, existing.ID,
		)
		if err != nil {
			return model.Company{}, fmt.Errorf("update company: %w", err)
		}
		company.ID = existing.ID
		company.CreatedAt = existing.CreatedAt
		company.UpdatedAt = now
		return company, nil
	}

	company.ID = uuid.New().String()
	company.CreatedAt = now
	company.UpdatedAt = now

	_, err = s.db.Exec(
		`INSERT INTO companies (id, name, homepage_url, linkedin_url, logo_hash, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		company.ID, company.Name, company.HomepageURL, company.LinkedInURL,
		company.LogoHash, company.Description, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		return model.Company{}, fmt.Errorf("insert company: %w", err)
	}

	return company, nil
}

// GetCompanyByName retrieves a company by exact name
func (s *Store) GetCompanyByName(name string) (*model.Company, error) {
	row := s.db.QueryRow(
		`SELECT id, name, homepage_url, linkedin_url, logo_hash, description, created_at, updated_at
		 FROM companies WHERE name = ?`, name)
	return scanCompany(row)
}

// GetCompany retrieves a company by ID
func (s *Store) GetCompany(id string) (*model.Company, error) {
	row := s.db.QueryRow(
		`SELECT id, name, homepage_url, linkedin_url, logo_hash, description, created_at, updated_at
		 FROM companies WHERE id = ?`, id)
	return scanCompany(row)
}

func scanCompany(row *sql.Row) (*model.Company, error) {
	var c model.Company
	var homepage, linkedin, logoHash, description sql.NullString
	err := row.Scan(&c.ID, &c.Name, &homepage, &linkedin, &logoHash, &description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.HomepageURL = homepage.String
	c.LinkedInURL = linkedin.String
	c.LogoHash = logoHash.String
	c.Description = description.String
	return &c, nil
}

// ListCompanies returns all companies ordered by name
func (s *Store) ListCompanies() ([]model.Company, error) {
	rows, err := s.db.Query(
		`SELECT id, name, homepage_url, linkedin_url, logo_hash, description, created_at, updated_at
		 FROM companies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var companies []model.Company
	for rows.Next() {
		var c model.Company
		var homepage, linkedin, logoHash, description sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &homepage, &linkedin, &logoHash, &description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.HomepageURL = homepage.String
		c.LinkedInURL = linkedin.String
		c.LogoHash = logoHash.String
		c.Description = description.String
		companies = append(companies, c)
	}

	return companies, rows.Err()
}

// StoreSnapshot persists a snapshot and returns its ID
func (s *Store) StoreSnapshot(snap model.Snapshot) (string, error) {
	if snap.ID == "" {
		snap.ID = uuid.New().String()
	}
	if snap.CapturedAt.IsZero() {
		snap.CapturedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO snapshots (id, company_id, url, status_code, content_text, content_checksum,
		 error_message, has_paywall, has_auth_required, http_last_modified, captured_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.CompanyID, snap.URL, snap.StatusCode, snap.ContentText, snap.ContentChecksum,
		snap.ErrorMessage, boolToInt(snap.HasPaywall), boolToInt(snap.HasAuthRequired),
		snap.HTTPLastModified, snap.CapturedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert snapshot: %w", err)
	}

	return snap.ID, nil
}

// LatestSnapshots returns up to limit snapshots for a company, newest first
func (s *Store) LatestSnapshots(companyID string, limit int) ([]model.Snapshot, error) {
	rows, err := s.db.Query(
		`SELECT id, company_id, url, status_code, content_text, content_checksum,
		 error_message, has_paywall, has_auth_required, http_last_modified, captured_at
		 FROM snapshots WHERE company_id = ? ORDER BY captured_at DESC LIMIT ?`,
		companyID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snaps []model.Snapshot
	for rows.Next() {
		var snap model.Snapshot
		var statusCode sql.NullInt64
		var contentText, checksum, errMsg, lastModified sql.NullString
		var paywall, auth int
		if err := rows.Scan(&snap.ID, &snap.CompanyID, &snap.URL, &statusCode, &contentText,
			&checksum, &errMsg, &paywall, &auth, &lastModified, &snap.CapturedAt); err != nil {
			return nil, err
		}
		snap.StatusCode = int(statusCode.Int64)
		snap.ContentText = contentText.String
		snap.ContentChecksum = checksum.String
		snap.ErrorMessage = errMsg.String
		snap.HasPaywall = paywall != 0
		snap.HasAuthRequired = auth != 0
		snap.HTTPLastModified = lastModified.String
		snaps = append(snaps, snap)
	}

	return snaps, rows.Err()
}

// OldestSnapshotTime returns the earliest capture timestamp for a company,
// or nil when no snapshots exist.
func (s *Store) OldestSnapshotTime(companyID string) (*time.Time, error) {
	var captured sql.NullTime
	err := s.db.QueryRow(
		`SELECT MIN(captured_at) FROM snapshots WHERE company_id = ?`, companyID,
	).Scan(&captured)
	if err != nil {
		return nil, fmt.Errorf("query oldest snapshot: %w", err)
	}
	if !captured.Valid {
		return nil, nil
	}
	ts := captured.Time
	return &ts, nil
}

// StoreChangeRecord persists a change record and returns its ID
func (s *Store) StoreChangeRecord(rec model.ChangeRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	keywords, err := json.Marshal(rec.Significance.MatchedKeywords)
	if err != nil {
		return "", fmt.Errorf("marshal keywords: %w", err)
	}
	categories, err := json.Marshal(rec.Significance.MatchedCategories)
	if err != nil {
		return "", fmt.Errorf("marshal categories: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO change_records (id, company_id, snapshot_id_old, snapshot_id_new, has_changed,
		 change_magnitude, similarity, checksum_old, checksum_new, diff_summary,
		 matched_keywords, matched_categories, significance_classification, significance_sentiment,
		 significance_confidence, significance_notes, detected_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CompanyID, rec.SnapshotIDOld, rec.SnapshotIDNew, boolToInt(rec.HasChanged),
		string(rec.Magnitude), rec.Similarity, rec.ChecksumOld, rec.ChecksumNew, rec.DiffSummary,
		string(keywords), string(categories), string(rec.Significance.Classification),
		string(rec.Significance.Sentiment), rec.Significance.Confidence, rec.Significance.Notes,
		time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("insert change record: %w", err)
	}

	return rec.ID, nil
}

// CurrentLeadership returns the current roster for a company
func (s *Store) CurrentLeadership(companyID string) ([]model.LeadershipRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, company_id, person_name, title, profile_id, confidence, is_current, observed_at
		 FROM company_leadership WHERE company_id = ? AND is_current = 1 ORDER BY observed_at`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("query leadership: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.LeadershipRecord
	for rows.Next() {
		var rec model.LeadershipRecord
		var isCurrent int
		var observed sql.NullTime
		if err := rows.Scan(&rec.ID, &rec.CompanyID, &rec.PersonName, &rec.Title,
			&rec.ProfileID, &rec.Confidence, &isCurrent, &observed); err != nil {
			return nil, err
		}
		rec.IsCurrent = isCurrent != 0
		rec.ObservedAt = observed.Time
		records = append(records, rec)
	}

	return records, rows.Err()
}

// UpsertLeadership stores a leadership record, replacing any existing row
// for the same company and profile.
func (s *Store) UpsertLeadership(rec model.LeadershipRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.ObservedAt.IsZero() {
		rec.ObservedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO company_leadership (id, company_id, person_name, title, profile_id, confidence, is_current, observed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(company_id, profile_id) DO UPDATE SET
		   person_name = excluded.person_name,
		   title = excluded.title,
		   confidence = excluded.confidence,
		   is_current = excluded.is_current,
		   observed_at = excluded.observed_at`,
		rec.ID, rec.CompanyID, rec.PersonName, rec.Title, rec.ProfileID,
		rec.Confidence, boolToInt(rec.IsCurrent), rec.ObservedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert leadership: %w", err)
	}

	return nil
}

// MarkLeadershipNotCurrent flags a departed leader
func (s *Store) MarkLeadershipNotCurrent(companyID, profileID string) error {
	_, err := s.db.Exec(
		`UPDATE company_leadership SET is_current = 0 WHERE company_id = ? AND profile_id = ?`,
		companyID, profileID,
	)
	if err != nil {
		return fmt.Errorf("mark leadership not current: %w", err)
	}
	return nil
}

// ArticleURLExists reports whether an article URL has already been stored
func (s *Store) ArticleURLExists(url string) (bool, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(1) FROM news_articles WHERE content_url = ?`, url).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check article url: %w", err)
	}
	return count > 0, nil
}

// StoreNewsArticle persists a verified article and returns its ID
func (s *Store) StoreNewsArticle(article model.NewsArticle) (string, error) {
	if article.ID == "" {
		article.ID = uuid.New().String()
	}

	evidence, err := json.Marshal(article.MatchEvidence)
	if err != nil {
		return "", fmt.Errorf("marshal evidence: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO news_articles (id, company_id, title, content_url, source, snippet, published_at,
		 match_confidence, match_evidence, significance_classification, significance_sentiment,
		 significance_confidence, discovered_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		article.ID, article.CompanyID, article.Title, article.ContentURL, article.Source,
		article.Snippet, article.PublishedAt, article.MatchConfidence, string(evidence),
		string(article.Significance.Classification), string(article.Significance.Sentiment),
		article.Significance.Confidence, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("insert news article: %w", err)
	}

	return article.ID, nil
}

// StoreStatus persists an operational status assessment
func (s *Store) StoreStatus(status model.CompanyStatus) error {
	if status.ID == "" {
		status.ID = uuid.New().String()
	}
	if status.AnalyzedAt.IsZero() {
		status.AnalyzedAt = time.Now().UTC()
	}

	indicators, err := json.Marshal(status.Indicators)
	if err != nil {
		return fmt.Errorf("marshal indicators: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO company_statuses (id, company_id, status, confidence, indicators, analyzed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		status.ID, status.CompanyID, string(status.Status), status.Confidence,
		string(indicators), status.AnalyzedAt,
	)
	if err != nil {
		return fmt.Errorf("insert status: %w", err)
	}

	return nil
}

// StoreProcessingError records a failed operation for later inspection
func (s *Store) StoreProcessingError(pe model.ProcessingError) error {
	if pe.ID == "" {
		pe.ID = uuid.New().String()
	}
	if pe.OccurredAt.IsZero() {
		pe.OccurredAt = time.Now().UTC()
	}

	message := pe.ErrorMessage
	if len(message) > 5000 {
		message = message[:5000]
	}

	_, err := s.db.Exec(
		`INSERT INTO processing_errors (id, entity_type, entity_id, error_type, error_message, occurred_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		pe.ID, pe.EntityType, pe.EntityID, pe.ErrorType, message, pe.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert processing error: %w", err)
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
