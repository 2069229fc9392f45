package relevance

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/mzaikin/foliowatch/internal/model"
	"github.com/mzaikin/foliowatch/internal/util"
)

// Signal weights for article-company matching. The weights sum to 1.0 but a
// score is rarely complete: the logo and LLM signals depend on optional
// capabilities and contribute zero when absent.
const (
	weightDomain  = 0.30
	weightContext = 0.15
	weightLogo    = 0.30
	weightLLM     = 0.25
)

// DefaultThreshold is the acceptance cut-off used by callers that have no
// reason to choose their own. The scorer itself never applies it.
const DefaultThreshold = 0.40

// Evidence tags, in signal order
const (
	EvidenceDomainMatch     = "domain_match"
	EvidenceNameContext     = "name_context"
	EvidenceLogoMatch       = "logo_match"
	EvidenceLLMVerification = "llm_verification"
)

// businessContextWords qualify a bare company-name mention as business news
var businessContextWords = []string{
	"announced", "raised", "launched", "acquired", "partnered",
	"reported", "expanded", "hired", "funding", "revenue",
	"growth", "product", "series", "round",
}

// Verifier is an optional capability that confirms an article concerns a
// company. Failures mean "no opinion", never rejection.
type Verifier interface {
	VerifyArticle(ctx context.Context, article model.ArticleCandidate, companyName string) (bool, error)
}

// HashComparer is an optional capability that compares perceptual hashes of
// a company logo and article imagery.
type HashComparer interface {
	Match(companyHash, articleHash string) (bool, error)
}

// Scorer decides whether a candidate article is about a given company by
// summing independent signal weights. It holds no mutable state and is safe
// for concurrent use.
type Scorer struct {
	verifier Verifier     // nil disables the LLM signal
	comparer HashComparer // nil disables the logo signal
}

// NewScorer creates a scorer with the given optional capabilities.
// Either may be nil.
func NewScorer(verifier Verifier, comparer HashComparer) *Scorer {
	return &Scorer{verifier: verifier, comparer: comparer}
}

// Score computes the match confidence and evidence tags for an article
// against a company. homepageURL and logoHash may be empty; missing signals
// contribute zero rather than penalizing the score.
func (s *Scorer) Score(ctx context.Context, article model.ArticleCandidate, companyName, homepageURL, logoHash string) model.RelevanceScore {
	confidence := 0.0
	var evidence []string

	// Signal 1: company domain appears as a whole word in snippet or URL
	if domain := util.RegistrableDomain(homepageURL); domain != "" {
		pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(domain) + `\b`)
		if pattern.MatchString(article.Snippet + " " + article.URL) {
			confidence += weightDomain
			evidence = append(evidence, EvidenceDomainMatch)
		}
	}

	// Signal 2: company name mentioned in a business context
	snippetLower := strings.ToLower(article.Snippet)
	if companyName != "" && strings.Contains(snippetLower, strings.ToLower(companyName)) {
		for _, word := range businessContextWords {
			if strings.Contains(snippetLower, word) {
				confidence += weightContext
				evidence = append(evidence, EvidenceNameContext)
				break
			}
		}
	}

	// Signal 3: perceptual logo hash comparison, when both hashes exist
	if s.comparer != nil && logoHash != "" && article.ImageHash != "" {
		matched, err := s.comparer.Match(logoHash, article.ImageHash)
		if err != nil {
			slog.Debug("logo_comparison_failed", "error", err)
		} else if matched {
			confidence += weightLogo
			evidence = append(evidence, EvidenceLogoMatch)
		}
	}

	// Signal 4: LLM verification
	if s.verifier != nil {
		confirmed, err := s.verifier.VerifyArticle(ctx, article, companyName)
		if err != nil {
			slog.Debug("llm_verification_failed", "error", err)
		} else if confirmed {
			confidence += weightLLM
			evidence = append(evidence, EvidenceLLMVerification)
		}
	}

	if confidence > 1.0 {
		confidence = 1.0
	}

	return model.RelevanceScore{Confidence: confidence, Evidence: evidence}
}
