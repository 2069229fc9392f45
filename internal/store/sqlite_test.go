package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mzaikin/foliowatch/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func mustUpsertCompany(t *testing.T, st *Store, name string) model.Company {
	t.Helper()
	company, err := st.UpsertCompany(model.Company{Name: name, HomepageURL: "https://" + name + ".example.com"})
	if err != nil {
		t.Fatalf("upsert company: %v", err)
	}
	return company
}

func TestUpsertCompany_InsertThenUpdate(t *testing.T) {
	st := newTestStore(t)

	first, err := st.UpsertCompany(model.Company{Name: "Acme", HomepageURL: "https://acme.com"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if first.ID == "" {
		t.Fatal("inserted company must receive an ID")
	}

	second, err := st.UpsertCompany(model.Company{Name: "Acme", HomepageURL: "https://www.acme.com", Description: "rockets"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert must keep the original ID, got %s vs %s", second.ID, first.ID)
	}

	stored, err := st.GetCompanyByName("Acme")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if stored.HomepageURL != "https://www.acme.com" || stored.Description != "rockets" {
		t.Errorf("update did not persist: %+v", stored)
	}
}

func TestListCompanies_OrderedByName(t *testing.T) {
	st := newTestStore(t)
	mustUpsertCompany(t, st, "zeta")
	mustUpsertCompany(t, st, "alpha")

	companies, err := st.ListCompanies()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(companies) != 2 || companies[0].Name != "alpha" || companies[1].Name != "zeta" {
		t.Errorf("expected [alpha zeta], got %+v", companies)
	}
}

func TestSnapshots_LatestAndOldest(t *testing.T) {
	st := newTestStore(t)
	company := mustUpsertCompany(t, st, "acme")

	if ts, err := st.OldestSnapshotTime(company.ID); err != nil || ts != nil {
		t.Fatalf("expected nil oldest time without snapshots, got %v, %v", ts, err)
	}

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, text := range []string{"first capture", "second capture", "third capture"} {
		snap := model.Snapshot{
			CompanyID:       company.ID,
			URL:             company.HomepageURL,
			StatusCode:      200,
			ContentText:     text,
			ContentChecksum: model.ComputeChecksum(text),
			CapturedAt:      base.Add(time.Duration(i) * time.Hour),
		}
		if _, err := st.StoreSnapshot(snap); err != nil {
			t.Fatalf("store snapshot: %v", err)
		}
	}

	snaps, err := st.LatestSnapshots(company.ID, 2)
	if err != nil {
		t.Fatalf("latest snapshots: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("expected two snapshots, got %d", len(snaps))
	}
	if snaps[0].ContentText != "third capture" || snaps[1].ContentText != "second capture" {
		t.Errorf("expected newest first, got %q then %q", snaps[0].ContentText, snaps[1].ContentText)
	}

	oldest, err := st.OldestSnapshotTime(company.ID)
	if err != nil {
		t.Fatalf("oldest snapshot time: %v", err)
	}
	if oldest == nil || !oldest.Equal(base) {
		t.Errorf("expected oldest %v, got %v", base, oldest)
	}
}

func TestStoreChangeRecord(t *testing.T) {
	st := newTestStore(t)
	company := mustUpsertCompany(t, st, "acme")

	rec := model.ChangeRecord{
		CompanyID:   company.ID,
		HasChanged:  true,
		Magnitude:   model.MagnitudeModerate,
		Similarity:  0.72,
		DiffSummary: "announced layoffs",
		Significance: model.SignificanceResult{
			Classification:    model.ClassificationSignificant,
			Sentiment:         model.SentimentNegative,
			Confidence:        0.80,
			MatchedKeywords:   []string{"layoffs"},
			MatchedCategories: []string{"layoffs_restructuring"},
		},
	}

	id, err := st.StoreChangeRecord(rec)
	if err != nil {
		t.Fatalf("store change record: %v", err)
	}
	if id == "" {
		t.Error("stored change record must receive an ID")
	}
}

func TestLeadershipLifecycle(t *testing.T) {
	st := newTestStore(t)
	company := mustUpsertCompany(t, st, "acme")

	rec := model.LeadershipRecord{
		CompanyID:  company.ID,
		PersonName: "Alice",
		Title:      "CEO",
		ProfileID:  "p1",
		Confidence: 0.8,
		IsCurrent:  true,
		ObservedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := st.UpsertLeadership(rec); err != nil {
		t.Fatalf("upsert leadership: %v", err)
	}

	roster, err := st.CurrentLeadership(company.ID)
	if err != nil {
		t.Fatalf("current leadership: %v", err)
	}
	if len(roster) != 1 || roster[0].PersonName != "Alice" || roster[0].Title != "CEO" {
		t.Fatalf("unexpected roster: %+v", roster)
	}

	// Same profile again updates in place rather than duplicating
	rec.Title = "CEO & President"
	if err := st.UpsertLeadership(rec); err != nil {
		t.Fatalf("re-upsert leadership: %v", err)
	}
	roster, err = st.CurrentLeadership(company.ID)
	if err != nil {
		t.Fatalf("current leadership: %v", err)
	}
	if len(roster) != 1 || roster[0].Title != "CEO & President" {
		t.Fatalf("expected in-place update, got %+v", roster)
	}

	if err := st.MarkLeadershipNotCurrent(company.ID, "p1"); err != nil {
		t.Fatalf("mark not current: %v", err)
	}
	roster, err = st.CurrentLeadership(company.ID)
	if err != nil {
		t.Fatalf("current leadership: %v", err)
	}
	if len(roster) != 0 {
		t.Errorf("departed leader must leave the current roster, got %+v", roster)
	}
}

func TestNewsArticles_Dedupe(t *testing.T) {
	st := newTestStore(t)
	company := mustUpsertCompany(t, st, "acme")

	url := "https://news.example.com/acme-funding"
	exists, err := st.ArticleURLExists(url)
	if err != nil {
		t.Fatalf("check url: %v", err)
	}
	if exists {
		t.Fatal("url must not exist before storing")
	}

	article := model.NewsArticle{
		CompanyID:       company.ID,
		Title:           "Acme raises Series B",
		ContentURL:      url,
		Source:          "news.example.com",
		PublishedAt:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		MatchConfidence: 0.45,
		MatchEvidence:   []string{"domain_match", "name_context"},
		Significance: model.SignificanceResult{
			Classification: model.ClassificationSignificant,
			Sentiment:      model.SentimentPositive,
			Confidence:     0.80,
		},
	}
	if _, err := st.StoreNewsArticle(article); err != nil {
		t.Fatalf("store article: %v", err)
	}

	exists, err = st.ArticleURLExists(url)
	if err != nil {
		t.Fatalf("check url: %v", err)
	}
	if !exists {
		t.Error("stored url must be reported as existing")
	}
}

func TestStoreStatus(t *testing.T) {
	st := newTestStore(t)
	company := mustUpsertCompany(t, st, "acme")

	status := model.CompanyStatus{
		CompanyID:  company.ID,
		Status:     model.StatusOperational,
		Confidence: 0.8,
		Indicators: []model.StatusIndicator{
			{Type: "copyright_year", Value: "2026", Signal: model.IndicatorPositive},
		},
	}
	if err := st.StoreStatus(status); err != nil {
		t.Fatalf("store status: %v", err)
	}
}

func TestStoreProcessingError_TruncatesMessage(t *testing.T) {
	st := newTestStore(t)

	long := make([]byte, 6000)
	for i := range long {
		long[i] = 'x'
	}
	pe := model.ProcessingError{
		EntityType:   "company",
		EntityID:     "c1",
		ErrorType:    "API Error",
		ErrorMessage: string(long),
	}
	if err := st.StoreProcessingError(pe); err != nil {
		t.Fatalf("store processing error: %v", err)
	}
}
