package model

// ChangeMagnitude buckets how much a page changed between two snapshots
type ChangeMagnitude string

const (
	MagnitudeMinor    ChangeMagnitude = "minor"    // similarity >= 0.90
	MagnitudeModerate ChangeMagnitude = "moderate" // 0.50 <= similarity < 0.90
	MagnitudeMajor    ChangeMagnitude = "major"    // similarity < 0.50
)

// SignificanceClassification is the outcome of significance analysis
type SignificanceClassification string

const (
	ClassificationSignificant   SignificanceClassification = "significant"
	ClassificationInsignificant SignificanceClassification = "insignificant"
	ClassificationUncertain     SignificanceClassification = "uncertain"
)

// SignificanceSentiment captures the polarity of matched business signals
type SignificanceSentiment string

const (
	SentimentPositive SignificanceSentiment = "positive"
	SentimentNegative SignificanceSentiment = "negative"
	SentimentNeutral  SignificanceSentiment = "neutral"
	SentimentMixed    SignificanceSentiment = "mixed"
)

// KeywordMatch records a single keyword occurrence with its surrounding context.
// Matches are produced and consumed within one classification call.
type KeywordMatch struct {
	Keyword         string `json:"keyword"`
	Position        int    `json:"position"`
	ContextBefore   string `json:"context_before,omitempty"`
	ContextAfter    string `json:"context_after,omitempty"`
	Category        string `json:"category"`
	IsNegated       bool   `json:"is_negated"`
	IsFalsePositive bool   `json:"is_false_positive"`
}

// SignificanceResult is the classified outcome for a piece of content.
// Confidence is always clamped to [0,1]. MatchedKeywords preserves detection
// order and retains duplicates; MatchedCategories is deduplicated.
type SignificanceResult struct {
	Classification    SignificanceClassification `json:"classification"`
	Sentiment         SignificanceSentiment      `json:"sentiment"`
	Confidence        float64                    `json:"confidence"`
	MatchedKeywords   []string                   `json:"matched_keywords"`
	MatchedCategories []string                   `json:"matched_categories"`
	Notes             string                     `json:"notes,omitempty"`
}

// LLMValidationResult is an advisory second opinion on a keyword-based
// classification. It never replaces the keyword result on failure.
type LLMValidationResult struct {
	Classification    SignificanceClassification `json:"classification"`
	Sentiment         SignificanceSentiment      `json:"sentiment"`
	Confidence        float64                    `json:"confidence"`
	Reasoning         string                     `json:"reasoning,omitempty"`
	ValidatedKeywords []string                   `json:"validated_keywords,omitempty"`
	FalsePositives    []string                   `json:"false_positives,omitempty"`
}

// ChangeRecord captures the comparison of two successive snapshots
type ChangeRecord struct {
	ID            string          `json:"id,omitempty"`
	CompanyID     string          `json:"company_id"`
	SnapshotIDOld string          `json:"snapshot_id_old,omitempty"`
	SnapshotIDNew string          `json:"snapshot_id_new,omitempty"`
	HasChanged    bool            `json:"has_changed"`
	Magnitude     ChangeMagnitude `json:"change_magnitude"`
	Similarity    float64         `json:"similarity"`
	ChecksumOld   string          `json:"checksum_old,omitempty"`
	ChecksumNew   string          `json:"checksum_new,omitempty"`
	DiffSummary   string          `json:"diff_summary,omitempty"`

	Significance SignificanceResult `json:"significance"`
}

// MaxDiffSummaryLength bounds the persisted diff summary. The classifier
// always sees the full extracted diff; only storage is truncated.
const MaxDiffSummaryLength = 5000
