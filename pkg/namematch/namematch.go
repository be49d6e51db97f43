// Package namematch decides whether a candidate word is a spelling
// variation of a known Korean name. It generates candidate names sharing
// enough 2-grams with the word, then verifies each candidate with an edit
// distance bound — the same generate-candidates-then-verify shape the
// teacher's q-gram text index uses for fuzzy full-text matching, here
// applied to a closed, small name list instead of a document corpus.
package namematch

// gramSize is the q-gram width; 2 suits short Korean name morphemes better
// than the teacher's default of 3 for longer English document fields.
const gramSize = 2

// maxEditDistance bounds how far a variation may drift from a known name:
// one doubled/dropped jamo-equivalent rune, not a different name entirely.
const maxEditDistance = 1

// IsVariation reports whether word is within maxEditDistance of any name in
// known, after q-gram overlap pre-filtering discards names that share no
// gram with word at all.
func IsVariation(word string, known []string) bool {
	if word == "" || len(known) == 0 {
		return false
	}
	wordGrams := extractGrams(word, gramSize)

	for _, name := range known {
		if name == word {
			continue // exact match is not a "variation"
		}
		if !shareGram(wordGrams, extractGrams(name, gramSize)) {
			continue
		}
		if editDistance(word, name) <= maxEditDistance {
			return true
		}
	}
	return false
}

// extractGrams returns all rune-level q-grams of s. Operating on runes
// (rather than the teacher's byte-indexed ExtractGrams) keeps grams aligned
// to whole Hangul syllables.
func extractGrams(s string, q int) []string {
	runes := []rune(s)
	if len(runes) < q {
		return nil
	}
	grams := make([]string, 0, len(runes)-q+1)
	for i := 0; i <= len(runes)-q; i++ {
		grams = append(grams, string(runes[i:i+q]))
	}
	return grams
}

func shareGram(a, b []string) bool {
	set := make(map[string]bool, len(a))
	for _, g := range a {
		set[g] = true
	}
	for _, g := range b {
		if set[g] {
			return true
		}
	}
	return false
}

// editDistance computes Levenshtein distance over runes.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	m, n := len(ra), len(rb)
	prev := make([]int, n+1)
	cur := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}
	for i := 1; i <= m; i++ {
		cur[0] = i
		for j := 1; j <= n; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			cur[j] = min3(del, ins, sub)
		}
		prev, cur = cur, prev
	}
	return prev[n]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
