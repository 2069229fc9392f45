package significance

// Keyword taxonomies are fixed, process-wide constants. Order matters:
// detection order follows taxonomy order, and results must be reproducible
// across calls.

type taxonomyCategory struct {
	Name     string
	Keywords []string
}

var positiveTaxonomy = []taxonomyCategory{
	{"funding_investment", []string{
		"series a", "series b", "series c", "series d", "series e",
		"seed round", "funding round", "raised", "funding",
		"venture capital", "valuation", "investment round",
		"pre-seed", "angel round",
	}},
	{"product_launch", []string{
		"launched", "launch", "beta release", "general availability",
		"new product", "product release", "now available", "go live",
	}},
	{"growth_success", []string{
		"revenue growth", "milestone", "profitable", "record revenue",
		"year over year growth", "customer growth", "user growth",
	}},
	{"partnerships", []string{
		"partnership", "joint venture", "strategic alliance",
		"collaboration", "partner",
	}},
	{"expansion", []string{
		"new office", "hiring", "expansion", "international expansion",
		"new market", "headcount growth", "opening new",
	}},
	{"recognition", []string{
		"innovation award", "top 10", "top 50", "best places to work",
		"award", "recognized",
	}},
	{"ipo_exit", []string{
		"filed s-1", "nasdaq", "nyse", "ipo", "public offering",
		"going public", "spac",
	}},
}

var negativeTaxonomy = []taxonomyCategory{
	{"closure", []string{
		"shut down", "shutdown", "ceased operations", "winding down",
		"closing", "closed", "dissolved",
	}},
	{"layoffs_downsizing", []string{
		"layoffs", "laid off", "lays off", "workforce reduction",
		"job cuts", "downsizing", "restructuring", "rif",
	}},
	{"financial_distress", []string{
		"chapter 11", "chapter 7", "bankruptcy", "insolvent",
		"cash crunch", "default", "debt crisis",
	}},
	{"legal_issues", []string{
		"lawsuit", "investigation", "settlement", "sued",
		"regulatory action", "fine", "penalty",
	}},
	{"security_breach", []string{
		"data breach", "hacked", "ransomware", "cyber attack",
		"security incident", "compromised",
	}},
	{"acquisition", []string{
		"acquired by", "merged with", "sold to",
		"acquisition", "takeover",
	}},
	{"leadership_changes", []string{
		"ceo resigned", "ceo departed", "founder left", "cto left",
		"stepping down", "leadership transition", "new ceo",
		"retired", "resigned",
	}},
	{"product_failures", []string{
		"product recall", "discontinued", "sunset",
		"end of life", "deprecate",
	}},
	{"market_exit", []string{
		"exiting market", "market withdrawal", "divesting",
		"pulling out of",
	}},
}

// insignificantTaxonomy matches pure noise: styling tokens, copyright
// boilerplate, and analytics snippets. It only ever short-circuits to an
// insignificant classification, never drives a significant one.
var insignificantTaxonomy = []taxonomyCategory{
	{"css_styling", []string{
		"font-family", "font-size", "background-color", "color:",
		"margin:", "padding:", "border:", "text-align",
	}},
	{"copyright_year", []string{
		"copyright", "all rights reserved", "©",
	}},
	{"tracking_analytics", []string{
		"google-analytics", "gtag", "tracking code", "analytics",
		"pixel", "facebook pixel",
	}},
}

// falsePositivePatterns are benign collocations that neutralize a keyword
// occurrence found within 30 characters of them.
var falsePositivePatterns = []string{
	"talent acquisition",
	"customer acquisition",
	"data acquisition",
	"user acquisition",
	"funding opportunities",
	"funding sources",
	"self-funded",
}

// negationWords neutralize a keyword when found within the 20 characters
// immediately preceding it.
var negationWords = map[string]bool{
	"no":      true,
	"not":     true,
	"never":   true,
	"without": true,
	"lacks":   true,
}

const (
	contextWindow       = 50 // context captured on each side of a match
	negationWindow      = 20 // chars scanned before a match for negation words
	falsePositiveWindow = 30 // chars scanned around a match for benign collocations
)
