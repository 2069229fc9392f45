package significance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/mzaikin/foliowatch/internal/llm"
	"github.com/mzaikin/foliowatch/internal/model"
)

const validationExcerptLength = 2000

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// Validator asks an LLM for a second opinion on a keyword-based
// classification. It is advisory only: every failure path returns nil and the
// keyword result stays authoritative.
type Validator struct {
	provider llm.Provider
}

// NewValidator creates a validator backed by the given provider.
// A nil provider disables validation.
func NewValidator(provider llm.Provider) *Validator {
	return &Validator{provider: provider}
}

// Enabled reports whether a provider is configured
func (v *Validator) Enabled() bool {
	return v != nil && v.provider != nil
}

// Validate re-checks a keyword-based result against the content excerpt.
// Returns nil on any failure: unavailable provider, API error, or a response
// that does not parse into a well-formed verdict.
func (v *Validator) Validate(ctx context.Context, content string, keywordResult model.SignificanceResult) *model.LLMValidationResult {
	if !v.Enabled() {
		return nil
	}

	excerpt := content
	if len([]rune(excerpt)) > validationExcerptLength {
		excerpt = string([]rune(excerpt)[:validationExcerptLength])
	}

	prompt := buildValidationPrompt(excerpt, keywordResult)

	resp, err := v.provider.Complete(ctx, llm.CompletionRequest{
		Prompt:      prompt,
		Temperature: 0,
	})
	if err != nil {
		slog.Warn("llm_validation_failed", "provider", v.provider.Name(), "error", err)
		return nil
	}

	result := parseValidationResponse(resp.Text)
	if result == nil {
		slog.Warn("llm_validation_unparseable", "provider", v.provider.Name())
	}
	return result
}

func buildValidationPrompt(excerpt string, keywordResult model.SignificanceResult) string {
	return fmt.Sprintf(`Analyze the following website content change for business significance.

Content excerpt:
%s

Detected keywords: %s
Keyword-based classification: %s
Keyword-based sentiment: %s

Respond in JSON format:
{
    "classification": "significant" | "insignificant" | "uncertain",
    "sentiment": "positive" | "negative" | "neutral" | "mixed",
    "confidence": 0.0-1.0,
    "reasoning": "brief explanation",
    "validated_keywords": ["keywords that are genuine signals"],
    "false_positives": ["keywords that are false positives"]
}`,
		excerpt,
		strings.Join(keywordResult.MatchedKeywords, ", "),
		keywordResult.Classification,
		keywordResult.Sentiment,
	)
}

// parseValidationResponse extracts and sanity-checks the JSON verdict.
// Out-of-range confidences are clamped; unknown enum values reject the whole
// verdict rather than poisoning downstream results.
func parseValidationResponse(text string) *model.LLMValidationResult {
	raw := jsonObjectPattern.FindString(text)
	if raw == "" {
		return nil
	}

	var result model.LLMValidationResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil
	}

	switch result.Classification {
	case model.ClassificationSignificant, model.ClassificationInsignificant, model.ClassificationUncertain:
	default:
		return nil
	}
	switch result.Sentiment {
	case model.SentimentPositive, model.SentimentNegative, model.SentimentNeutral, model.SentimentMixed:
	default:
		return nil
	}

	result.Confidence = clamp01(result.Confidence)
	return &result
}
