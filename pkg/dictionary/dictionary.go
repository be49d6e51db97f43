// Package dictionary implements the dictionary provider consumed by
// pkg/parser: a per-POS membership test plus the name/number helper
// predicates, backed by a whole-word Aho-Corasick automaton for the hot
// "is this entire chunk a known word" fast path and a per-POS trie for
// incremental inserts, following the dual-purpose scanner/lookup structure
// of the teacher's Aho-Corasick dictionary.
package dictionary

import (
	"sync"

	ahocorasick "github.com/coregx/ahocorasick"
	trie "github.com/derekparker/trie/v3"
	"github.com/kittclouds/hangultok/pkg/namematch"
	"github.com/kittclouds/hangultok/pkg/pos"
)

// Provider is the contract pkg/parser consumes. Every method is safe for
// concurrent use with AddWords, including while a parse is in flight.
type Provider interface {
	Contains(p pos.POS, word string) bool
	IsProperNoun(word string) bool
	IsName(word string) bool
	IsKoreanNameVariation(word string) bool
	IsKoreanNumber(word string) bool
	AddWords(p pos.POS, words []string) error

	// Frequency estimates a noun's commonness in [0, 1], 1 being most
	// common; the parser's freq score term rewards higher values.
	Frequency(word string) float64
}

// FrequencyEstimator backs Default.Frequency for words outside the core
// dictionary buckets, typically pkg/freqvec's nearest-neighbor estimate.
type FrequencyEstimator interface {
	Estimate(word string) float64
}

// koreanNumerals covers the native and Sino-Korean digit morphemes; treated
// as a closed, built-in set rather than a dictionary bucket since numbers
// are not enumerable the way a word list is.
var koreanNumerals = map[rune]bool{
	'영': true, '일': true, '이': true, '삼': true, '사': true, '오': true,
	'육': true, '칠': true, '팔': true, '구': true, '십': true, '백': true,
	'천': true, '만': true, '억': true, '조': true,
	'하': true, '나': true, '둘': true, '셋': true, '넷': true, '다': true,
	'섯': true, '여': true,
}

// Default is the in-memory Provider built around a per-POS trie bucket for
// incremental word inserts and a rebuilt-on-write Aho-Corasick automaton for
// the whole-word fast path the parser's chunk-level lookup relies on.
type Default struct {
	mu sync.RWMutex

	buckets     map[pos.POS]*trie.Trie
	properNouns *trie.Trie
	names       *trie.Trie

	ac      ahocorasick.AhoCorasick
	acDirty bool
	acWords []string
	acPOS   []pos.POS

	freqEstimator FrequencyEstimator
}

// SetFrequencyEstimator wires an external commonness estimator (e.g.
// pkg/freqvec) used by Frequency for words not found in the Noun bucket.
func (d *Default) SetFrequencyEstimator(e FrequencyEstimator) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.freqEstimator = e
}

// Frequency estimates word's commonness in [0, 1]. Words registered under
// Noun are treated as maximally common; everything else falls back to the
// wired estimator, or 0 (least common) if none is set.
func (d *Default) Frequency(word string) float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if t, ok := d.buckets[pos.Noun]; ok {
		if _, found := t.Find(word); found {
			return 1.0
		}
	}
	if d.freqEstimator != nil {
		return d.freqEstimator.Estimate(word)
	}
	return 0.0
}

// New builds an empty Provider. Load resource word lists into it with
// AddWords before handing it to pkg/parser.
func New() *Default {
	d := &Default{
		buckets:     make(map[pos.POS]*trie.Trie),
		properNouns: trie.New(),
		names:       trie.New(),
		acDirty:     true,
	}
	d.rebuildFastPath()
	return d
}

func (d *Default) bucket(p pos.POS) *trie.Trie {
	t, ok := d.buckets[p]
	if !ok {
		t = trie.New()
		d.buckets[p] = t
	}
	return t
}

// Contains reports whether word is registered under POS p.
func (d *Default) Contains(p pos.POS, word string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	t, ok := d.buckets[p]
	if !ok {
		return false
	}
	_, found := t.Find(word)
	return found
}

// IsProperNoun reports whether word is registered as a proper noun.
func (d *Default) IsProperNoun(word string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, found := d.properNouns.Find(word)
	return found
}

// IsName reports whether word is a registered Korean given name or surname.
func (d *Default) IsName(word string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, found := d.names.Find(word)
	return found
}

// IsKoreanNameVariation delegates to pkg/namematch's q-gram candidate
// generator, comparing word against every registered name for a
// near-miss spelling variation (doubled consonant, vowel harmony drift).
func (d *Default) IsKoreanNameVariation(word string) bool {
	d.mu.RLock()
	names := d.names.Keys()
	d.mu.RUnlock()
	return namematch.IsVariation(word, names)
}

// IsKoreanNumber reports whether every rune of word is a native or
// Sino-Korean numeral morpheme.
func (d *Default) IsKoreanNumber(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !koreanNumerals[r] {
			return false
		}
	}
	return true
}

// AddWords registers words under POS p and marks the fast-path automaton
// stale; FastPathPOS rebuilds it on its next call. Safe to call concurrently
// with reads; the parser must observe
// the inserted words on its next lookup, per the provider's mutability
// contract.
func (d *Default) AddWords(p pos.POS, words []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	t := d.bucket(p)
	for _, w := range words {
		if w == "" {
			continue
		}
		t.Add(w, p)
		d.acWords = append(d.acWords, w)
		d.acPOS = append(d.acPOS, p)
	}
	if p == pos.ProperNoun {
		for _, w := range words {
			d.properNouns.Add(w, struct{}{})
		}
	}
	d.acDirty = true
	return nil
}

// AddNames registers a batch of known Korean names used by
// IsName/IsKoreanNameVariation. Separate from AddWords since names are not
// addressed by the closed grammar POS set.
func (d *Default) AddNames(names []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, n := range names {
		if n != "" {
			d.names.Add(n, struct{}{})
		}
	}
}

// rebuildFastPath recompiles the whole-word automaton lazily; callers that
// only care about FastPathPOS must take the lock and call this first.
func (d *Default) rebuildFastPath() {
	if !d.acDirty {
		return
	}
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: false,
		MatchOnlyWholeWords:  false,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
	})
	d.ac = builder.Build(d.acWords)
	d.acDirty = false
}

// FastPathPOS implements the chunk parser's fast path from spec.md §4.4: if
// the entire chunk text is registered under some POS, it returns that POS
// without running the DP search.
func (d *Default) FastPathPOS(text string) (pos.POS, bool) {
	d.mu.Lock()
	d.rebuildFastPath()
	d.mu.Unlock()

	d.mu.RLock()
	defer d.mu.RUnlock()
	matches := d.ac.FindAll(text)
	for _, m := range matches {
		if m.Start() == 0 && m.End() == len(text) {
			return d.acPOS[m.Pattern()], true
		}
	}
	return 0, false
}
