// Package postprocess applies output-shaping passes to a parsed token
// sequence, run after pkg/parser produces its raw segmentation.
package postprocess

import "github.com/kittclouds/hangultok/pkg/pos"

// CollapseNouns fuses maximal runs of two or more consecutive length-1
// Noun/ProperNoun tokens into a single unknown Noun token spanning the run.
// Tokens that don't belong to such a run pass through unchanged.
func CollapseNouns(tokens []pos.Token) []pos.Token {
	out := make([]pos.Token, 0, len(tokens))

	i := 0
	for i < len(tokens) {
		if !isCollapsible(tokens[i]) {
			out = append(out, tokens[i])
			i++
			continue
		}

		j := i + 1
		for j < len(tokens) && isCollapsible(tokens[j]) {
			j++
		}

		if j-i < 2 {
			out = append(out, tokens[i])
			i++
			continue
		}

		var text string
		for _, t := range tokens[i:j] {
			text += t.Text
		}
		out = append(out, pos.Token{
			Text:    text,
			POS:     pos.Noun,
			Offset:  tokens[i].Offset,
			Length:  tokens[j-1].Offset + tokens[j-1].Length - tokens[i].Offset,
			Unknown: true,
		})
		i = j
	}

	return out
}

func isCollapsible(t pos.Token) bool {
	return t.Length == 1 && (t.POS == pos.Noun || t.POS == pos.ProperNoun)
}
