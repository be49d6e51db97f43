// Package hangultok implements a Korean morphological tokenizer: script
// chunking, dictionary-driven POS-trie beam search, and noun-run
// post-processing. New builds a reusable Tokenizer; Tokenize is a
// package-level convenience wrapping a lazily-built default instance,
// following the teacher's conductor orchestrator's New()/Scan() shape.
package hangultok

import (
	"fmt"
	"sync"

	"github.com/kittclouds/hangultok/internal/dictstore"
	"github.com/kittclouds/hangultok/pkg/chunker"
	"github.com/kittclouds/hangultok/pkg/dictionary"
	"github.com/kittclouds/hangultok/pkg/normalize"
	"github.com/kittclouds/hangultok/pkg/parser"
	"github.com/kittclouds/hangultok/pkg/pos"
	"github.com/kittclouds/hangultok/pkg/postprocess"
	"github.com/kittclouds/hangultok/pkg/postrie"
	"github.com/kittclouds/hangultok/pkg/profile"
)

// Tokenizer holds the compiled, immutable grammar trie and a dictionary
// provider, both shared and safe for concurrent Tokenize calls, per
// spec.md §5's read-mostly resource model.
type Tokenizer struct {
	trie       *postrie.Trie
	dict       dictionary.Provider
	normalizer normalize.Normalizer
	profile    profile.TokenizerProfile
}

// Option configures a Tokenizer at construction time.
type Option func(*Tokenizer)

// WithDictionary overrides the default in-memory dictionary.Provider.
func WithDictionary(d dictionary.Provider) Option {
	return func(t *Tokenizer) { t.dict = d }
}

// WithProfile overrides the default scoring weights.
func WithProfile(p profile.TokenizerProfile) Option {
	return func(t *Tokenizer) { t.profile = p }
}

// WithNormalizer overrides the default input normalizer.
func WithNormalizer(n normalize.Normalizer) Option {
	return func(t *Tokenizer) { t.normalizer = n }
}

// WithFrequencyEstimator wires a commonness estimator (e.g. pkg/freqvec's
// Store) into the default dictionary, feeding the chunk parser's freq score
// term for nouns the dictionary has no exact frequency for. A no-op if the
// Tokenizer isn't using a *dictionary.Default provider. Options apply in
// order, so a WithDictionary placed after this one replaces the dictionary
// the estimator was set on; place this after WithDictionary instead.
func WithFrequencyEstimator(e dictionary.FrequencyEstimator) Option {
	return func(t *Tokenizer) { t.SetFrequencyEstimator(e) }
}

// SetFrequencyEstimator wires e into the Tokenizer's dictionary after
// construction, for hosts (like cmd/wasm) that initialize the frequency
// index lazily, after the Tokenizer already exists.
func (t *Tokenizer) SetFrequencyEstimator(e dictionary.FrequencyEstimator) {
	if d, ok := t.dict.(*dictionary.Default); ok {
		d.SetFrequencyEstimator(e)
	}
}

// New compiles the default grammar and constructs a Tokenizer. Grammar
// compilation failure can only come from a malformed built-in spec table,
// which would be a programming error, not a runtime condition — but it is
// still reported rather than panicking, per spec.md §7.
func New(opts ...Option) (*Tokenizer, error) {
	trie, err := postrie.Build(postrie.DefaultGrammar())
	if err != nil {
		return nil, fmt.Errorf("hangultok: compiling grammar: %w", err)
	}

	t := &Tokenizer{
		trie:       trie,
		dict:       dictionary.New(),
		normalizer: normalize.Default(),
		profile:    profile.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// AddWordsToDictionary registers additional words under p, observable by
// every subsequent Tokenize call on this Tokenizer (and concurrent ones
// already in flight), per spec.md §4.3's mutability contract.
func (t *Tokenizer) AddWordsToDictionary(p pos.POS, words []string) error {
	if err := t.dict.AddWords(p, words); err != nil {
		return fmt.Errorf("hangultok: adding words: %w", err)
	}
	return nil
}

// LoadFromStore seeds the Tokenizer's dictionary from a previously saved
// dictstore.Store, registering every persisted word under its POS and every
// persisted name for name-variation matching.
func (t *Tokenizer) LoadFromStore(store *dictstore.Store) error {
	names, err := store.LoadNames()
	if err != nil {
		return fmt.Errorf("hangultok: loading names: %w", err)
	}
	if len(names) > 0 {
		if d, ok := t.dict.(interface{ AddNames([]string) }); ok {
			d.AddNames(names)
		} else if err := t.dict.AddWords(pos.ProperNoun, names); err != nil {
			return fmt.Errorf("hangultok: registering names: %w", err)
		}
	}

	for _, p := range pos.GrammarPOS() {
		words, err := store.LoadWords(p)
		if err != nil {
			return fmt.Errorf("hangultok: loading %s words: %w", p, err)
		}
		if len(words) == 0 {
			continue
		}
		if err := t.dict.AddWords(p, words); err != nil {
			return fmt.Errorf("hangultok: loading %s words: %w", p, err)
		}
	}
	return nil
}

// SaveToStore persists the given POS buckets' words to store. Callers
// typically pass the POS tags they've been seeding via AddWordsToDictionary.
func (t *Tokenizer) SaveToStore(store *dictstore.Store, pair map[pos.POS][]string) error {
	for p, words := range pair {
		if err := store.SaveWords(p, words); err != nil {
			return fmt.Errorf("hangultok: saving %s words: %w", p, err)
		}
	}
	return nil
}

// Tokenize normalizes, chunks, and labels text, returning tokens in input
// order. Non-Korean chunks pass through unlabeled by the DP parser; Korean
// chunks are parsed and noun-run collapsed.
func (t *Tokenizer) Tokenize(text string) ([]pos.Token, error) {
	normalized := t.normalizer.Normalize(text)
	chunks := chunker.ChunkText(normalized)

	var tokens []pos.Token
	for _, c := range chunks {
		if c.Type != pos.Korean {
			tokens = append(tokens, pos.Token{Text: c.Text, POS: c.Type, Offset: c.Offset, Length: c.Length})
			continue
		}

		parsed := parser.ParseChunk(t.trie, t.dict, t.profile, c.Text, c.Offset)
		if parsed == nil {
			return nil, fmt.Errorf("hangultok: parsing chunk %q at offset %d produced no tokens", c.Text, c.Offset)
		}
		tokens = append(tokens, postprocess.CollapseNouns(parsed)...)
	}
	return tokens, nil
}

var (
	defaultOnce sync.Once
	defaultTok  *Tokenizer
	defaultErr  error
)

func defaultTokenizer() (*Tokenizer, error) {
	defaultOnce.Do(func() {
		defaultTok, defaultErr = New()
	})
	return defaultTok, defaultErr
}

// Tokenize runs the default Tokenizer. Most callers doing a single
// one-off tokenization want this over constructing a Tokenizer directly.
func Tokenize(text string) ([]pos.Token, error) {
	t, err := defaultTokenizer()
	if err != nil {
		return nil, err
	}
	return t.Tokenize(text)
}

// AddWordsToDictionary registers words on the default Tokenizer.
func AddWordsToDictionary(p pos.POS, words []string) error {
	t, err := defaultTokenizer()
	if err != nil {
		return err
	}
	return t.AddWordsToDictionary(p, words)
}
