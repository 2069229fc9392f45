package significance

import (
	"strings"

	"github.com/mzaikin/foliowatch/internal/model"
)

// Classifier performs keyword-taxonomy significance analysis on content.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct{}

// NewClassifier creates a new classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify runs the significance rule cascade over content.
//
// Rules, first match wins:
//  1. Only insignificant patterns + minor magnitude → insignificant (0.85)
//  2. 2+ effective negative keywords → significant (0.80–0.95)
//  3. 2+ effective positive keywords → significant (0.80–0.90)
//  4. 1+ effective keyword + major magnitude → significant (0.70)
//  5. 1+ effective keyword otherwise → uncertain (0.50)
//  6. No keywords at all → insignificant (0.75)
//
// Rules 2–5 subtract 0.20 per negated and 0.30 per false-positive raw match
// before clamping to [0,1].
func (c *Classifier) Classify(content string, magnitude model.ChangeMagnitude) model.SignificanceResult {
	contentRunes := []rune(content)
	lowerRunes := []rune(strings.ToLower(content))

	positiveMatches := findKeywords(contentRunes, lowerRunes, positiveTaxonomy)
	negativeMatches := findKeywords(contentRunes, lowerRunes, negativeTaxonomy)
	insignificantMatches := findInsignificantPatterns(lowerRunes)

	effectivePositive := filterEffective(positiveMatches)
	effectiveNegative := filterEffective(negativeMatches)

	posCount := len(effectivePositive)
	negCount := len(effectiveNegative)
	totalCount := posCount + negCount

	var allKeywords []string
	var allCategories []string
	seenCategory := make(map[string]bool)
	for _, m := range append(append([]model.KeywordMatch{}, effectivePositive...), effectiveNegative...) {
		allKeywords = append(allKeywords, m.Keyword)
		if !seenCategory[m.Category] {
			seenCategory[m.Category] = true
			allCategories = append(allCategories, m.Category)
		}
	}

	// Penalties count raw matches, including the ones excluded above
	negatedCount := 0
	fpCount := 0
	for _, m := range append(append([]model.KeywordMatch{}, positiveMatches...), negativeMatches...) {
		if m.IsNegated {
			negatedCount++
		}
		if m.IsFalsePositive {
			fpCount++
		}
	}

	sentiment := classifySentiment(posCount, negCount)
	penalty := 0.20*float64(negatedCount) + 0.30*float64(fpCount)

	// Rule 1: pure noise on a minor change
	if totalCount == 0 && len(insignificantMatches) > 0 && magnitude == model.MagnitudeMinor {
		var keywords, categories []string
		seen := make(map[string]bool)
		for _, m := range insignificantMatches {
			keywords = append(keywords, m.Keyword)
			if !seen[m.Category] {
				seen[m.Category] = true
				categories = append(categories, m.Category)
			}
		}
		return model.SignificanceResult{
			Classification:    model.ClassificationInsignificant,
			Sentiment:         model.SentimentNeutral,
			Confidence:        0.85,
			MatchedKeywords:   keywords,
			MatchedCategories: categories,
		}
	}

	// Rule 2: 2+ negative keywords
	if negCount >= 2 {
		confidence := minFloat(0.80+0.05*float64(negCount-2), 0.95)
		return model.SignificanceResult{
			Classification:    model.ClassificationSignificant,
			Sentiment:         sentiment,
			Confidence:        clamp01(confidence - penalty),
			MatchedKeywords:   allKeywords,
			MatchedCategories: allCategories,
		}
	}

	// Rule 3: 2+ positive keywords
	if posCount >= 2 {
		confidence := minFloat(0.80+0.03*float64(posCount-2), 0.90)
		return model.SignificanceResult{
			Classification:    model.ClassificationSignificant,
			Sentiment:         sentiment,
			Confidence:        clamp01(confidence - penalty),
			MatchedKeywords:   allKeywords,
			MatchedCategories: allCategories,
		}
	}

	// Rule 4: any keyword on a major change
	if totalCount >= 1 && magnitude == model.MagnitudeMajor {
		return model.SignificanceResult{
			Classification:    model.ClassificationSignificant,
			Sentiment:         sentiment,
			Confidence:        clamp01(0.70 - penalty),
			MatchedKeywords:   allKeywords,
			MatchedCategories: allCategories,
		}
	}

	// Rule 5: any keyword on a smaller change
	if totalCount >= 1 {
		return model.SignificanceResult{
			Classification:    model.ClassificationUncertain,
			Sentiment:         sentiment,
			Confidence:        clamp01(0.50 - penalty),
			MatchedKeywords:   allKeywords,
			MatchedCategories: allCategories,
		}
	}

	// Rule 6: nothing matched
	return model.SignificanceResult{
		Classification: model.ClassificationInsignificant,
		Sentiment:      model.SentimentNeutral,
		Confidence:     0.75,
	}
}

// classifySentiment derives sentiment from effective keyword polarity counts
func classifySentiment(posCount, negCount int) model.SignificanceSentiment {
	switch {
	case posCount >= 2 && negCount >= 2:
		return model.SentimentMixed
	case posCount >= 2:
		return model.SentimentPositive
	case negCount >= 2:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

// findKeywords locates every occurrence of every taxonomy keyword, with a
// context window and the negation / false-positive verdicts for each.
func findKeywords(content, lower []rune, taxonomy []taxonomyCategory) []model.KeywordMatch {
	var matches []model.KeywordMatch

	for _, category := range taxonomy {
		for _, keyword := range category.Keywords {
			kw := []rune(keyword)
			for idx := 0; ; {
				pos := indexRunes(lower, kw, idx)
				if pos < 0 {
					break
				}
				ctxStart := maxInt(0, pos-contextWindow)
				ctxEnd := minInt(len(content), pos+len(kw)+contextWindow)

				matches = append(matches, model.KeywordMatch{
					Keyword:         keyword,
					Position:        pos,
					ContextBefore:   string(content[ctxStart:pos]),
					ContextAfter:    string(content[pos+len(kw) : ctxEnd]),
					Category:        category.Name,
					IsNegated:       isNegated(lower, pos),
					IsFalsePositive: isFalsePositive(lower, pos, len(kw)),
				})
				idx = pos + len(kw)
			}
		}
	}
	return matches
}

// isNegated reports whether a negation word appears in the window
// immediately preceding the match
func isNegated(lower []rune, pos int) bool {
	prefix := string(lower[maxInt(0, pos-negationWindow):pos])
	for _, word := range strings.Fields(prefix) {
		if negationWords[word] {
			return true
		}
	}
	return false
}

// isFalsePositive reports whether a benign collocation surrounds the match
func isFalsePositive(lower []rune, pos, kwLen int) bool {
	start := maxInt(0, pos-falsePositiveWindow)
	end := minInt(len(lower), pos+kwLen+falsePositiveWindow)
	window := string(lower[start:end])
	for _, pattern := range falsePositivePatterns {
		if strings.Contains(window, pattern) {
			return true
		}
	}
	return false
}

// findInsignificantPatterns does a simple presence check per noise pattern
func findInsignificantPatterns(lower []rune) []model.KeywordMatch {
	content := string(lower)
	var matches []model.KeywordMatch
	for _, category := range insignificantTaxonomy {
		for _, pattern := range category.Keywords {
			if strings.Contains(content, pattern) {
				matches = append(matches, model.KeywordMatch{
					Keyword:  pattern,
					Category: category.Name,
				})
			}
		}
	}
	return matches
}

func filterEffective(matches []model.KeywordMatch) []model.KeywordMatch {
	var effective []model.KeywordMatch
	for _, m := range matches {
		if !m.IsNegated && !m.IsFalsePositive {
			effective = append(effective, m)
		}
	}
	return effective
}

// indexRunes finds the first occurrence of needle in haystack at or after from
func indexRunes(haystack, needle []rune, from int) int {
	if len(needle) == 0 || from > len(haystack)-len(needle) {
		return -1
	}
	for i := from; i <= len(haystack)-len(needle); i++ {
		found := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				found = false
				break
			}
		}
		if found {
			return i
		}
	}
	return -1
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
