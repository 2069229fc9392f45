package fetch

import (
	"strings"

	"golang.org/x/net/html"
)

// blockElements end the current line when extracting visible text so that
// page structure survives as line boundaries.
var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true,
	"header": true, "footer": true, "main": true, "aside": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "tr": true, "br": true, "blockquote": true, "pre": true,
}

// ExtractVisibleText parses HTML and returns its visible text with block
// elements mapped to line breaks. Script, style, noscript and iframe
// subtrees are skipped.
func ExtractVisibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var lines []string
	var current strings.Builder

	flush := func() {
		line := strings.Join(strings.Fields(current.String()), " ")
		if line != "" {
			lines = append(lines, line)
		}
		current.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			current.WriteString(n.Data)
			current.WriteString(" ")
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode && blockElements[n.Data] {
			flush()
		}
	}

	walk(doc)
	flush()

	return strings.Join(lines, "\n"), nil
}

var paywallIndicators = []string{
	"subscribe to continue",
	"subscription required",
	"subscribers only",
	"premium content",
	"paywall",
}

var authIndicators = []string{
	"sign in to view",
	"sign in to continue",
	"log in to view",
	"log in to continue",
	"login required",
	"join now to see",
	"authwall",
}

// DetectPaywall reports whether the page text looks gated behind a paywall
func DetectPaywall(text string) bool {
	return containsAny(text, paywallIndicators)
}

// DetectAuthWall reports whether the page text demands a login
func DetectAuthWall(text string) bool {
	return containsAny(text, authIndicators)
}

func containsAny(text string, indicators []string) bool {
	lower := strings.ToLower(text)
	for _, indicator := range indicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}
