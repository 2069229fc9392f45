package change

import (
	"github.com/mzaikin/foliowatch/internal/model"
)

// MaxCompareLength bounds the text handed to the similarity algorithm.
// Callers truncate both sides before comparison to cap worst-case cost.
const MaxCompareLength = 50_000

// Truncate caps content at n characters for bounded comparison
func Truncate(content string, n int) string {
	runes := []rune(content)
	if len(runes) <= n {
		return content
	}
	return string(runes[:n])
}

// MagnitudeForRatio buckets a similarity ratio into a change magnitude
func MagnitudeForRatio(ratio float64) model.ChangeMagnitude {
	if ratio >= 0.90 {
		return model.MagnitudeMinor
	}
	if ratio >= 0.50 {
		return model.MagnitudeModerate
	}
	return model.MagnitudeMajor
}

// EstimateMagnitude computes the similarity ratio between two content
// snapshots and its derived magnitude. Byte-identical snapshots are detected
// via checksum and short-circuit to 1.0 without running the full comparison.
// If the checksums differ but either side is empty, similarity is 0.0.
func EstimateMagnitude(oldContent, newContent string) (float64, model.ChangeMagnitude) {
	hasChanged := model.ComputeChecksum(oldContent) != model.ComputeChecksum(newContent)

	var similarity float64
	switch {
	case !hasChanged:
		similarity = 1.0
	case oldContent == "" || newContent == "":
		similarity = 0.0
	default:
		similarity = Ratio(oldContent, newContent)
	}

	return similarity, MagnitudeForRatio(similarity)
}
