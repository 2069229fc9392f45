package model

import "time"

// ArticleCandidate is a search result that may or may not concern the company
type ArticleCandidate struct {
	Title     string `json:"title"`
	Snippet   string `json:"snippet,omitempty"`
	URL       string `json:"url"`
	Published string `json:"published,omitempty"`
	ImageHash string `json:"image_hash,omitempty"` // perceptual hash of article imagery, if extracted
}

// RelevanceScore is the accept/reject evidence for an article-company match
type RelevanceScore struct {
	Confidence float64  `json:"confidence"`
	Evidence   []string `json:"evidence"`
}

// NewsArticle is a relevance-verified article stored for a company
type NewsArticle struct {
	ID              string    `json:"id,omitempty"`
	CompanyID       string    `json:"company_id"`
	Title           string    `json:"title"`
	ContentURL      string    `json:"content_url"`
	Source          string    `json:"source,omitempty"`
	Snippet         string    `json:"snippet,omitempty"`
	PublishedAt     time.Time `json:"published_at"`
	MatchConfidence float64   `json:"match_confidence"`
	MatchEvidence   []string  `json:"match_evidence,omitempty"`

	Significance SignificanceResult `json:"significance"`
}

// NewsSearchResult summarizes one company's news search
type NewsSearchResult struct {
	CompanyID      string   `json:"company_id"`
	CompanyName    string   `json:"company_name"`
	ArticlesFound  int      `json:"articles_found"`
	ArticlesStored int      `json:"articles_stored"`
	Errors         []string `json:"errors,omitempty"`
}
