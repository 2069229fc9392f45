package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/mzaikin/foliowatch/internal/model"
)

// ArticleVerifier asks a provider whether an article concerns a company.
// It satisfies the relevance scorer's Verifier capability.
type ArticleVerifier struct {
	provider Provider
}

// NewArticleVerifier creates a verifier backed by the given provider
func NewArticleVerifier(provider Provider) *ArticleVerifier {
	return &ArticleVerifier{provider: provider}
}

// VerifyArticle returns true only when the model answers YES. Any transport
// or parsing failure returns an error for the caller to treat as no opinion.
func (v *ArticleVerifier) VerifyArticle(ctx context.Context, article model.ArticleCandidate, companyName string) (bool, error) {
	if v.provider == nil {
		return false, fmt.Errorf("no provider configured")
	}

	prompt := fmt.Sprintf(
		"Is this article about the company '%s'? Title: %s. Snippet: %s. Answer YES or NO only.",
		companyName, article.Title, article.Snippet,
	)

	resp, err := v.provider.Complete(ctx, CompletionRequest{
		Prompt:      prompt,
		MaxTokens:   100,
		Temperature: 0,
	})
	if err != nil {
		return false, err
	}

	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(resp.Text)), "YES"), nil
}
