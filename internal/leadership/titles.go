package leadership

import (
	"regexp"
	"strings"
)

// Title tables are fixed, process-wide constants shared by the change
// detector and by display/prioritization callers.

var titleCanonicalization = map[string]string{
	"chief executive officer":   "CEO",
	"chief technology officer":  "CTO",
	"chief operating officer":   "COO",
	"chief financial officer":   "CFO",
	"chief marketing officer":   "CMO",
	"chief people officer":      "Chief People Officer",
	"chief product officer":     "Chief Product Officer",
	"chief revenue officer":     "CRO",
	"chief strategy officer":    "CSO",
	"chief data officer":        "Chief Data Officer",
	"chief information officer": "Chief Information Officer",
	"cofounder":                 "Co-Founder",
	"co founder":                "Co-Founder",
	"co-founder":                "Co-Founder",
}

// leadershipPatterns are tried in order; the first hit wins
var leadershipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(CEO|CTO|COO|CFO|CMO|CRO|CSO)\b`),
	regexp.MustCompile(`(?i)\bChief\s+\w+\s+Officer\b`),
	regexp.MustCompile(`(?i)\b(?:Co-?Founder|Cofounder)\b`),
	regexp.MustCompile(`(?i)\bFounder\b`),
	regexp.MustCompile(`(?i)\bPresident\b`),
	regexp.MustCompile(`(?i)\bManaging\s+Director\b`),
	regexp.MustCompile(`(?i)\bGeneral\s+Manager\b`),
	regexp.MustCompile(`(?i)\bVP\s+(?:of\s+)?\w+\b`),
	regexp.MustCompile(`(?i)\bVice\s+President(?:\s+of\s+\w+)?\b`),
}

// titleRank orders canonical titles by seniority (lower = more senior)
var titleRank = map[string]int{
	"CEO":               1,
	"Founder":           2,
	"Co-Founder":        3,
	"President":         4,
	"CTO":               5,
	"COO":               5,
	"CFO":               5,
	"CMO":               6,
	"CRO":               6,
	"CSO":               6,
	"Managing Director": 7,
	"General Manager":   8,
}

const (
	rankVP       = 9
	rankChief    = 6
	rankUnranked = 99
)

// IsLeadershipTitle reports whether a title indicates a leadership position
func IsLeadershipTitle(title string) bool {
	for _, pattern := range leadershipPatterns {
		if pattern.MatchString(title) {
			return true
		}
	}
	return false
}

// ExtractLeadershipTitle pulls the leadership portion out of a longer string,
// e.g. "CEO at Acme Corp" → "CEO". Returns "" when nothing matches.
func ExtractLeadershipTitle(title string) string {
	for _, pattern := range leadershipPatterns {
		if match := pattern.FindString(title); match != "" {
			return match
		}
	}
	return ""
}

// NormalizeTitle maps a title to its canonical short form. Unrecognized
// titles pass through unchanged.
func NormalizeTitle(title string) string {
	lower := strings.ToLower(strings.TrimSpace(title))
	if canonical, ok := titleCanonicalization[lower]; ok {
		return canonical
	}
	if extracted := ExtractLeadershipTitle(title); extracted != "" {
		if canonical, ok := titleCanonicalization[strings.ToLower(extracted)]; ok {
			return canonical
		}
		return extracted
	}
	return title
}

// RankTitle returns the seniority rank of a title (lower = more senior).
// Unranked titles sort last.
func RankTitle(title string) int {
	normalized := NormalizeTitle(title)
	if rank, ok := titleRank[normalized]; ok {
		return rank
	}
	if strings.Contains(strings.ToUpper(normalized), "VP") || strings.Contains(normalized, "Vice President") {
		return rankVP
	}
	if strings.Contains(normalized, "Chief") {
		return rankChief
	}
	return rankUnranked
}
