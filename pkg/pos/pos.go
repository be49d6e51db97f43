// Package pos defines the closed part-of-speech enumeration and the Token
// type shared by the chunker, the POS trie, and the DP parser.
package pos

import "strings"

// POS is a part-of-speech tag. The low-valued tags are the grammar letters
// from the default POS-trie spec table; the higher-valued tags are the
// chunker's non-Korean script classes.
type POS int

const (
	Noun POS = iota
	ProperNoun
	Verb
	Adjective
	Adverb
	Determiner
	Exclamation
	Conjunction
	Josa
	AdverbialJosa
	Eomi
	PreEomi
	NounPrefix
	VerbPrefix
	Suffix

	// Chunker-only tags. Never appear as a POS-trie node's curPos.
	Korean
	Foreign
	Number
	Punctuation
	Space
	URL
	Email
	Hashtag
	ScreenName
	KoreanParticle
	Unknown
)

// letter is the one-letter grammar code for each grammar POS, per spec.md §3.
var letter = map[POS]byte{
	Noun:          'N',
	Verb:          'V',
	Adjective:     'J',
	Adverb:        'A',
	Determiner:    'D',
	Exclamation:   'E',
	Conjunction:   'C',
	Josa:          'j',
	AdverbialJosa: 'l',
	Eomi:          'e',
	PreEomi:       'r',
	NounPrefix:    'p',
	VerbPrefix:    'v',
	Suffix:        's',
}

var longName = map[POS]string{
	Noun:           "Noun",
	ProperNoun:     "ProperNoun",
	Verb:           "Verb",
	Adjective:      "Adjective",
	Adverb:         "Adverb",
	Determiner:     "Determiner",
	Exclamation:    "Exclamation",
	Conjunction:    "Conjunction",
	Josa:           "Josa",
	AdverbialJosa:  "AdverbialJosa",
	Eomi:           "Eomi",
	PreEomi:        "PreEomi",
	NounPrefix:     "NounPrefix",
	VerbPrefix:     "VerbPrefix",
	Suffix:         "Suffix",
	Korean:         "Korean",
	Foreign:        "Foreign",
	Number:         "Number",
	Punctuation:    "Punctuation",
	Space:          "Space",
	URL:            "URL",
	Email:          "Email",
	Hashtag:        "Hashtag",
	ScreenName:     "ScreenName",
	KoreanParticle: "KoreanParticle",
	Unknown:        "Unknown",
}

var fromLetter = func() map[byte]POS {
	m := make(map[byte]POS, len(letter))
	for p, l := range letter {
		m[l] = p
	}
	return m
}()

// String returns the long name used in token rendering.
func (p POS) String() string {
	if s, ok := longName[p]; ok {
		return s
	}
	return "Unknown"
}

// Letter returns the one-letter grammar code and whether p is a grammar POS.
func (p POS) Letter() (byte, bool) {
	l, ok := letter[p]
	return l, ok
}

// FromLetter resolves a one-letter grammar code back to a POS.
func FromLetter(l byte) (POS, bool) {
	p, ok := fromLetter[l]
	return p, ok
}

// IsSubstantiveParticle reports whether p is a particle attaching to
// substantives (Josa/AdverbialJosa), used by the initialPosArr scoring term.
func (p POS) IsSubstantiveParticle() bool {
	return p == Josa || p == AdverbialJosa
}

// grammarPOS lists every POS that has a grammar letter and so can label a
// POS-trie node, i.e. the closed set a dictionary provider must offer a
// membership test for.
var grammarPOS = []POS{
	Noun, Verb, Adjective, Adverb, Determiner, Exclamation,
	Conjunction, Josa, AdverbialJosa, Eomi, PreEomi, NounPrefix, VerbPrefix, Suffix,
}

// GrammarPOS returns the closed set of dictionary-backed POS tags.
func GrammarPOS() []POS {
	out := make([]POS, len(grammarPOS))
	copy(out, grammarPOS)
	return out
}

// Token is a single labeled morpheme or chunk in tokenizer output.
type Token struct {
	Text    string
	POS     POS
	Offset  int
	Length  int
	Unknown bool
}

// String renders the spec.md §6 textual form: "text/pos", or "text*/pos"
// when Unknown. A Space token renders as the empty string.
func (t Token) String() string {
	if t.POS == Space {
		return ""
	}
	mark := ""
	if t.Unknown {
		mark = "*"
	}
	return t.Text + mark + "/" + t.POS.String()
}

// Render joins tokens with a single space, per spec.md §6 (Space tokens
// contribute an empty string, which naturally produces a doubled space that
// is then collapsed back to one).
func Render(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	joined := strings.Join(parts, " ")
	for strings.Contains(joined, "  ") {
		joined = strings.ReplaceAll(joined, "  ", " ")
	}
	return joined
}
