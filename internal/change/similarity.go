package change

// The similarity metric reproduces the classic longest-matching-block
// decomposition: find the longest contiguous block common to both sequences,
// then recurse on the pieces to the left and right. The ratio is
// 2*matches / (len(a)+len(b)), which is order-sensitive: reordering content
// lowers the score even when the vocabulary is identical.

type matchSpan struct {
	alo, ahi int
	blo, bhi int
}

// Ratio computes the similarity ratio between two strings in [0,1]
func Ratio(a, b string) float64 {
	ar := []rune(a)
	br := []rune(b)
	total := len(ar) + len(br)
	if total == 0 {
		return 1.0
	}

	tokensA := make([]int, len(ar))
	for i, r := range ar {
		tokensA[i] = int(r)
	}
	tokensB := make([]int, len(br))
	for i, r := range br {
		tokensB[i] = int(r)
	}

	matched := matchingTokens(tokensA, tokensB)
	return 2.0 * float64(matched) / float64(total)
}

// block is one contiguous run common to both sequences
type block struct {
	a, b, size int
}

// matchingTokens counts the total length of all matching blocks between a and b
func matchingTokens(a, b []int) int {
	matched := 0
	for _, bl := range matchingBlocks(a, b) {
		matched += bl.size
	}
	return matched
}

// matchingBlocks decomposes a and b into their common contiguous blocks
func matchingBlocks(a, b []int) []block {
	// Index every position of each token in b, ascending
	b2j := make(map[int][]int, len(b))
	for j, tok := range b {
		b2j[tok] = append(b2j[tok], j)
	}

	var blocks []block
	queue := []matchSpan{{0, len(a), 0, len(b)}}
	for len(queue) > 0 {
		span := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, size := longestMatch(a, span, b2j)
		if size == 0 {
			continue
		}
		blocks = append(blocks, block{i, j, size})

		if span.alo < i && span.blo < j {
			queue = append(queue, matchSpan{span.alo, i, span.blo, j})
		}
		if i+size < span.ahi && j+size < span.bhi {
			queue = append(queue, matchSpan{i + size, span.ahi, j + size, span.bhi})
		}
	}
	return blocks
}

// longestMatch finds the longest block common to a[alo:ahi] and b[blo:bhi].
// Ties resolve to the earliest block in a, then the earliest in b.
func longestMatch(a []int, span matchSpan, b2j map[int][]int) (besti, bestj, bestsize int) {
	besti, bestj = span.alo, span.blo

	// j2len[j] is the length of the longest match ending at a[i-1], b[j]
	j2len := make(map[int]int)
	for i := span.alo; i < span.ahi; i++ {
		next := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < span.blo {
				continue
			}
			if j >= span.bhi {
				break
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}
	return besti, bestj, bestsize
}
