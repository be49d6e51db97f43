package parser

import (
	"testing"

	"github.com/kittclouds/hangultok/pkg/dictionary"
	"github.com/kittclouds/hangultok/pkg/pos"
	"github.com/kittclouds/hangultok/pkg/postrie"
	"github.com/kittclouds/hangultok/pkg/profile"
)

func buildFixture(t *testing.T) (*postrie.Trie, *dictionary.Default) {
	t.Helper()
	trie, err := postrie.Build(postrie.DefaultGrammar())
	if err != nil {
		t.Fatalf("postrie.Build: %v", err)
	}
	dict := dictionary.New()
	if err := dict.AddWords(pos.Noun, []string{"나라"}); err != nil {
		t.Fatalf("AddWords: %v", err)
	}
	if err := dict.AddWords(pos.Josa, []string{"가"}); err != nil {
		t.Fatalf("AddWords: %v", err)
	}
	return trie, dict
}

func TestParseChunkKnownNounPlusJosa(t *testing.T) {
	trie, dict := buildFixture(t)
	tokens := ParseChunk(trie, dict, profile.Default(), "나라가", 0)

	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d: %+v", len(tokens), tokens)
	}
	if tokens[0].Text != "나라" || tokens[0].POS != pos.Noun {
		t.Errorf("token0 = %+v, want 나라/Noun", tokens[0])
	}
	if tokens[1].Text != "가" || tokens[1].POS != pos.Josa {
		t.Errorf("token1 = %+v, want 가/Josa", tokens[1])
	}
}

func TestParseChunkFastPathWholeWord(t *testing.T) {
	trie, dict := buildFixture(t)
	tokens := ParseChunk(trie, dict, profile.Default(), "나라", 5)
	if len(tokens) != 1 {
		t.Fatalf("expected 1 fast-path token, got %d: %+v", len(tokens), tokens)
	}
	if tokens[0].Offset != 5 || tokens[0].Length != 2 {
		t.Errorf("token offset/length = %d/%d, want 5/2", tokens[0].Offset, tokens[0].Length)
	}
}

func TestParseChunkUnknownFallsBackToNoun(t *testing.T) {
	trie, dict := buildFixture(t)
	tokens := ParseChunk(trie, dict, profile.Default(), "완전히모르는단어", 0)
	if len(tokens) == 0 {
		t.Fatal("expected at least one token for unknown text")
	}
	for _, tok := range tokens {
		if tok.POS != pos.Noun && tok.POS != pos.ProperNoun {
			t.Errorf("unexpected POS %v for unknown-word fallback token %+v", tok.POS, tok)
		}
	}
}

func TestParseChunkTokensCoverChunkContiguously(t *testing.T) {
	trie, dict := buildFixture(t)
	text := "나라가"
	tokens := ParseChunk(trie, dict, profile.Default(), text, 10)

	wantOffset := 10
	var rebuilt string
	for _, tok := range tokens {
		if tok.Offset != wantOffset {
			t.Fatalf("token %q offset = %d, want %d", tok.Text, tok.Offset, wantOffset)
		}
		rebuilt += tok.Text
		wantOffset += tok.Length
	}
	if rebuilt != text {
		t.Fatalf("concatenated tokens = %q, want %q", rebuilt, text)
	}
}

func TestInsertTruncateNeverExceedsBeamWidth(t *testing.T) {
	prof := profile.Default()
	var bucket []candidate
	for i := 0; i < TopNPerState+10; i++ {
		bucket = insertTruncate(bucket, candidate{unknownCount: i}, prof)
	}
	if len(bucket) > TopNPerState {
		t.Fatalf("bucket grew to %d, want <= %d", len(bucket), TopNPerState)
	}
}

func TestParseChunkEmptyText(t *testing.T) {
	trie, dict := buildFixture(t)
	if tokens := ParseChunk(trie, dict, profile.Default(), "", 0); tokens != nil {
		t.Errorf("expected nil tokens for empty text, got %+v", tokens)
	}
}
