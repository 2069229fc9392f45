package change

import "strings"

// ExtractAddedDiff returns only the lines present in newContent that are not
// aligned with oldContent, trimmed and newline-joined, in their order of
// appearance. Removed text is deliberately discarded: freshly-appeared text is
// the highest-signal input for significance analysis.
func ExtractAddedDiff(oldContent, newContent string) string {
	oldLines := splitLines(oldContent)
	newLines := splitLines(newContent)

	// Intern lines so the block matcher can work over ints
	intern := make(map[string]int, len(oldLines)+len(newLines))
	tokenize := func(lines []string) []int {
		tokens := make([]int, len(lines))
		for i, line := range lines {
			id, ok := intern[line]
			if !ok {
				id = len(intern)
				intern[line] = id
			}
			tokens[i] = id
		}
		return tokens
	}
	oldTokens := tokenize(oldLines)
	newTokens := tokenize(newLines)

	aligned := make([]bool, len(newLines))
	for _, bl := range matchingBlocks(oldTokens, newTokens) {
		for j := bl.b; j < bl.b+bl.size; j++ {
			aligned[j] = true
		}
	}

	var added []string
	for j, line := range newLines {
		if !aligned[j] {
			added = append(added, strings.TrimSpace(line))
		}
	}
	return strings.Join(added, "\n")
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}
