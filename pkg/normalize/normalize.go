// Package normalize implements the external input-normalization step
// spec.md §4.6 assumes happens before chunking: apostrophe/whitespace
// folding in the manner of the teacher's dafsa.NormalizeRaw, plus
// collapsing repeated Latin filler words using the teacher's declared
// orsinium-labs/stopwords dependency.
package normalize

import (
	"strings"
	"unicode"

	"github.com/orsinium-labs/stopwords"
)

// fillerStopWords identifies Latin filler tokens ("the", "a", "lol", ...)
// that are folded down to a single occurrence when repeated back to back,
// mirroring a common pre-chunking cleanup for mixed Korean/English text.
var fillerStopWords = stopwords.English

// Normalizer cleans raw input text before it is handed to pkg/chunker.
type Normalizer struct {
	// CollapseRepeatedFillers, when true, folds "lol lol lol" down to "lol".
	CollapseRepeatedFillers bool
}

// Default returns a Normalizer with the tokenizer's baseline behavior.
func Default() Normalizer {
	return Normalizer{CollapseRepeatedFillers: true}
}

// Normalize folds curly apostrophes to straight ones, collapses runs of
// whitespace to a single space, trims the result, and — if enabled — folds
// immediately repeated Latin filler words down to one occurrence.
func (n Normalizer) Normalize(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	lastWasSpace := false
	for _, r := range s {
		switch {
		case r == '’' || r == '‘':
			out.WriteRune('\'')
			lastWasSpace = false
		case unicode.IsSpace(r):
			if !lastWasSpace {
				out.WriteRune(' ')
			}
			lastWasSpace = true
		default:
			out.WriteRune(r)
			lastWasSpace = false
		}
	}

	cleaned := strings.TrimSpace(out.String())
	if !n.CollapseRepeatedFillers {
		return cleaned
	}
	return collapseRepeatedFillers(cleaned)
}

// collapseRepeatedFillers drops a space-delimited word if it's a lowercase
// match of the immediately preceding word and both are registered filler
// stop words.
func collapseRepeatedFillers(s string) string {
	words := strings.Split(s, " ")
	out := make([]string, 0, len(words))
	for i, w := range words {
		if i > 0 && strings.EqualFold(w, words[i-1]) && fillerStopWords.IsStopword(strings.ToLower(w)) {
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}
