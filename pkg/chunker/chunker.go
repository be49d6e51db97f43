// Package chunker segments raw input into maximal runs of same-script
// characters, ported from the teacher's rule-based phrase chunker but
// retargeted from English POS lexicon lookups to Korean-aware script
// classification.
package chunker

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/kittclouds/hangultok/pkg/pos"
)

// Chunk is a maximal run of one script/entity class. Offset and Length are
// in source-character (rune) units, per spec.md §3's data-model invariant,
// not byte units — Hangul syllables are multi-byte in UTF-8.
type Chunk struct {
	Text   string
	Type   pos.POS
	Offset int
	Length int
}

// longest-match recognizers, checked in this priority order ahead of the
// base per-rune classification, per spec.md §4.1.
var (
	urlRe        = regexp.MustCompile(`^(https?://|www\.)\S+`)
	emailRe      = regexp.MustCompile(`^[\p{L}\p{N}._%+\-]+@[\p{L}\p{N}.\-]+\.\p{L}{2,}`)
	hashtagRe    = regexp.MustCompile(`^#[\p{L}\p{N}_]+`)
	screenNameRe = regexp.MustCompile(`^@[\p{L}\p{N}_]+`)
)

// ChunkText splits text into maximal same-class runs covering
// [0, utf8.RuneCountInString(text)) contiguously. Every rune of text is
// covered by exactly one chunk.
func ChunkText(text string) []Chunk {
	runes := []rune(text)
	n := len(runes)

	var chunks []Chunk
	i := 0
	for i < n {
		if length := matchRecognizer(urlRe, runes[i:]); length > 0 {
			chunks = append(chunks, newChunk(runes[i:i+length], pos.URL, i))
			i += length
			continue
		}
		if length := matchRecognizer(emailRe, runes[i:]); length > 0 {
			chunks = append(chunks, newChunk(runes[i:i+length], pos.Email, i))
			i += length
			continue
		}
		if length := matchRecognizer(hashtagRe, runes[i:]); length > 0 {
			chunks = append(chunks, newChunk(runes[i:i+length], pos.Hashtag, i))
			i += length
			continue
		}
		if length := matchRecognizer(screenNameRe, runes[i:]); length > 0 {
			chunks = append(chunks, newChunk(runes[i:i+length], pos.ScreenName, i))
			i += length
			continue
		}

		class := classify(runes[i])
		start := i
		i++

		for i < n && classify(runes[i]) == class && !startsRecognized(runes[i:]) {
			i++
		}

		chunks = append(chunks, newChunk(runes[start:i], class, start))
	}
	return chunks
}

func newChunk(runes []rune, t pos.POS, offset int) Chunk {
	return Chunk{Text: string(runes), Type: t, Offset: offset, Length: len(runes)}
}

// matchRecognizer returns the rune length of a match of re anchored at the
// start of runes, or 0 if there is none.
func matchRecognizer(re *regexp.Regexp, runes []rune) int {
	s := string(runes)
	loc := re.FindStringIndex(s)
	if loc == nil || loc[0] != 0 {
		return 0
	}
	return utf8.RuneCountInString(s[:loc[1]])
}

// startsRecognized reports whether one of the longest-match recognizers
// would claim the start of runes, used to stop a run one rune early so the
// next iteration's recognizer check can fire.
func startsRecognized(runes []rune) bool {
	return matchRecognizer(urlRe, runes) > 0 || matchRecognizer(emailRe, runes) > 0 ||
		matchRecognizer(hashtagRe, runes) > 0 || matchRecognizer(screenNameRe, runes) > 0
}

// classify assigns a script family to a single rune.
func classify(r rune) pos.POS {
	switch {
	case isHangulSyllable(r):
		return pos.Korean
	case isHangulJamo(r):
		return pos.KoreanParticle
	case unicode.IsSpace(r):
		return pos.Space
	case unicode.IsDigit(r):
		return pos.Number
	case unicode.IsLetter(r):
		return pos.Foreign
	case unicode.IsPunct(r) || unicode.IsSymbol(r):
		return pos.Punctuation
	default:
		return pos.Unknown
	}
}

// isHangulSyllable reports whether r is a precomposed Hangul syllable
// (U+AC00-U+D7A3), the common case for Korean text.
func isHangulSyllable(r rune) bool {
	return r >= 0xAC00 && r <= 0xD7A3
}

// isHangulJamo reports whether r is a standalone Hangul jamo letter —
// compatibility jamo (U+3130-U+318F) or conjoining jamo (U+1100-U+11FF) —
// appearing outside a composed syllable block, e.g. "ㅋㅋㅋ".
func isHangulJamo(r rune) bool {
	return (r >= 0x3130 && r <= 0x318F) || (r >= 0x1100 && r <= 0x11FF)
}
