// Package parser implements the chunk-level dynamic-programming morpheme
// segmentation: a beam-limited shortest-path search over the compiled
// POS trie, scored by a TokenizerProfile. The search shape — a map of
// end-position to a capped, sorted candidate list, extended backwards over
// a bounded trace-back window — follows the teacher's q-gram candidate
// generation-then-ranking idiom (generate many partial matches, keep only
// the top-k per bucket) adapted from document retrieval to morpheme
// segmentation.
package parser

import (
	"sort"
	"unicode"

	"github.com/kittclouds/hangultok/pkg/dictionary"
	"github.com/kittclouds/hangultok/pkg/pos"
	"github.com/kittclouds/hangultok/pkg/postrie"
	"github.com/kittclouds/hangultok/pkg/profile"
)

// TopNPerState caps how many candidates a single end-position bucket keeps.
const TopNPerState = 5

// MaxTraceBack bounds how many characters back a single word can span.
const MaxTraceBack = 8

// candidate is a partial segmentation plus the trie frontier it could next
// advance from, and the running counters the score function needs.
type candidate struct {
	tokens []pos.Token

	curTrie []int
	ending  *pos.POS

	unknownCount    int
	unknownCoverage int
	freqSum         float64
	unknownPos      map[pos.POS]bool
	words           int
	hasSpace        bool
}

// ParseChunk segments one Korean chunk into labeled tokens. text must be a
// single contiguous run already classified as Korean; offset is the
// chunk's position (in runes) within the original input.
func ParseChunk(trie *postrie.Trie, dict dictionary.Provider, prof profile.TokenizerProfile, text string, offset int) []pos.Token {
	if text == "" {
		return nil
	}

	if p, ok := fastPath(dict, text); ok {
		runeLen := len([]rune(text))
		return []pos.Token{{Text: text, POS: p, Offset: offset, Length: runeLen}}
	}

	runes := []rune(text)
	length := len(runes)

	solutions := make([][]candidate, length+1)
	solutions[0] = []candidate{{curTrie: append([]int{}, trie.Roots...), words: 1}}

	for end := 1; end <= length; end++ {
		lowStart := end - MaxTraceBack
		if lowStart < 0 {
			lowStart = 0
		}

		for start := end - 1; start >= lowStart; start-- {
			word := string(runes[start:end])

			for _, cand := range solutions[start] {
				for _, fe := range frontier(trie, cand) {
					node := trie.Nodes[fe.node]
					if !(node.CurPos == pos.Noun || dict.Contains(node.CurPos, word)) {
						continue
					}

					tokenPOS, unknown := resolveTokenPOS(dict, node.CurPos, word)
					nextTrie := resolveSelfLoop(node.Next, fe.node)

					nc := extend(cand, dict, tokenPOS, unknown, word, offset+start, fe.wordsInc, node.Ending, nextTrie)
					solutions[end] = insertTruncate(solutions[end], nc, prof)
				}
			}
		}
	}

	if len(solutions[length]) == 0 {
		return []pos.Token{{Text: text, POS: pos.Noun, Offset: offset, Length: length, Unknown: true}}
	}
	return solutions[length][0].tokens
}

type frontierEntry struct {
	node     int
	wordsInc int
}

// frontier computes the candidate's expansion frontier per spec: a
// completed word (ending set) may either continue its own trie position or
// restart from the grammar's root nodes; an in-progress word may only
// continue.
func frontier(trie *postrie.Trie, cand candidate) []frontierEntry {
	if cand.ending != nil {
		out := make([]frontierEntry, 0, len(cand.curTrie)+len(trie.Roots))
		for _, n := range cand.curTrie {
			out = append(out, frontierEntry{node: n, wordsInc: 0})
		}
		for _, n := range trie.Roots {
			out = append(out, frontierEntry{node: n, wordsInc: 1})
		}
		return out
	}
	out := make([]frontierEntry, 0, len(cand.curTrie))
	for _, n := range cand.curTrie {
		out = append(out, frontierEntry{node: n, wordsInc: 0})
	}
	return out
}

// resolveTokenPOS applies the Noun/ProperNoun branch rules from spec.md §4.4.
func resolveTokenPOS(dict dictionary.Provider, curPos pos.POS, word string) (pos.POS, bool) {
	if curPos == pos.Noun && !dict.Contains(pos.Noun, word) {
		isName := dict.IsName(word)
		isNameVar := dict.IsKoreanNameVariation(word)
		isNum := dict.IsKoreanNumber(word)
		unknown := !(isName || isNameVar || isNum)
		if unknown || isName || isNameVar {
			return pos.ProperNoun, unknown
		}
		return pos.Noun, false
	}
	if curPos == pos.Noun && dict.IsProperNoun(word) {
		return pos.ProperNoun, false
	}
	return curPos, false
}

// resolveSelfLoop replaces every postrie.SelfLoop sentinel in next with
// selfIndex (the node it was found on) and deduplicates the result, the
// frontier-expansion-time resolution spec.md §9 requires so curTrie never
// carries an unresolved sentinel.
func resolveSelfLoop(next []int, selfIndex int) []int {
	out := make([]int, 0, len(next))
	seen := map[int]bool{}
	for _, n := range next {
		if n == postrie.SelfLoop {
			n = selfIndex
		}
		if !seen[n] {
			out = append(out, n)
			seen[n] = true
		}
	}
	return out
}

func extend(cand candidate, dict dictionary.Provider, tokenPOS pos.POS, unknown bool, word string, offset int, wordsInc int, ending *pos.POS, nextTrie []int) candidate {
	tokens := make([]pos.Token, len(cand.tokens)+1)
	copy(tokens, cand.tokens)
	tokens[len(cand.tokens)] = pos.Token{
		Text: word, POS: tokenPOS, Offset: offset, Length: len([]rune(word)), Unknown: unknown,
	}

	nc := candidate{
		tokens:          tokens,
		curTrie:         nextTrie,
		ending:          ending,
		unknownCount:    cand.unknownCount,
		unknownCoverage: cand.unknownCoverage,
		freqSum:         cand.freqSum,
		words:           cand.words + wordsInc,
		hasSpace:        cand.hasSpace,
	}
	if cand.unknownPos != nil {
		nc.unknownPos = make(map[pos.POS]bool, len(cand.unknownPos))
		for k := range cand.unknownPos {
			nc.unknownPos[k] = true
		}
	}

	if unknown {
		nc.unknownCount++
		nc.unknownCoverage += len([]rune(word))
		if nc.unknownPos == nil {
			nc.unknownPos = map[pos.POS]bool{}
		}
		nc.unknownPos[tokenPOS] = true
	}
	if tokenPOS == pos.Noun || tokenPOS == pos.ProperNoun {
		nc.freqSum += 1 - dict.Frequency(word)
	}
	for _, r := range word {
		if unicode.IsSpace(r) {
			nc.hasSpace = true
		}
	}

	return nc
}

// score is the weighted sum from spec.md §4.4; lower is better.
func (c candidate) score(p profile.TokenizerProfile) float64 {
	s := p.UnknownWeight*float64(c.unknownCount) +
		p.UnknownCoverageWeight*float64(c.unknownCoverage) +
		p.FreqWeight*c.freqSum +
		p.UnknownPosCountWeight*float64(len(c.unknownPos)) +
		p.WordsWeight*float64(c.words) +
		p.PosCountWeight*float64(len(c.tokens))

	if len(c.tokens) > 0 && c.tokens[0].POS.IsSubstantiveParticle() {
		s += p.InitialPosArrWeight
	}
	if c.hasSpace {
		s += p.SpaceGuideWeight
	}
	return s
}

// posTieBreaker prefers fewer proper-noun-tagged unknowns, per spec.md §4.4.
func (c candidate) posTieBreaker() int {
	n := 0
	for _, t := range c.tokens {
		if t.POS == pos.ProperNoun && t.Unknown {
			n++
		}
	}
	return n
}

func insertTruncate(bucket []candidate, c candidate, prof profile.TokenizerProfile) []candidate {
	bucket = append(bucket, c)
	sort.SliceStable(bucket, func(i, j int) bool {
		si, sj := bucket[i].score(prof), bucket[j].score(prof)
		if si != sj {
			return si < sj
		}
		return bucket[i].posTieBreaker() < bucket[j].posTieBreaker()
	})
	if len(bucket) > TopNPerState {
		bucket = bucket[:TopNPerState]
	}
	return bucket
}

// fastPath returns the POS the entire chunk is registered under, if any.
func fastPath(dict dictionary.Provider, text string) (pos.POS, bool) {
	if fp, ok := dict.(interface {
		FastPathPOS(string) (pos.POS, bool)
	}); ok {
		return fp.FastPathPOS(text)
	}
	for _, p := range pos.GrammarPOS() {
		if dict.Contains(p, text) {
			return p, true
		}
	}
	return 0, false
}
