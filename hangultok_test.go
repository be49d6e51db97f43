package hangultok

import (
	"testing"

	"github.com/kittclouds/hangultok/pkg/pos"
)

func TestTokenizeEmptyInput(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tokens, err := tok.Tokenize("")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(tokens) != 0 {
		t.Errorf("expected no tokens for empty input, got %+v", tokens)
	}
}

func TestTokenizeNonKoreanPassesThrough(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tokens, err := tok.Tokenize("hello")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(tokens) != 1 || tokens[0].POS != pos.Foreign || tokens[0].Text != "hello" {
		t.Errorf("got %+v", tokens)
	}
}

func TestTokenizeJamoOnly(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tokens, err := tok.Tokenize("ㅋㅋㅋ")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(tokens) != 1 || tokens[0].POS != pos.KoreanParticle {
		t.Errorf("got %+v", tokens)
	}
}

func TestAddWordsToDictionaryChangesSubsequentTokenize(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	before, err := tok.Tokenize("나라가")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	for _, tk := range before {
		if !tk.Unknown && tk.POS != pos.Josa {
			t.Fatalf("expected an unknown segmentation before dictionary seeding, got %+v", before)
		}
	}

	if err := tok.AddWordsToDictionary(pos.Noun, []string{"나라"}); err != nil {
		t.Fatalf("AddWordsToDictionary: %v", err)
	}
	if err := tok.AddWordsToDictionary(pos.Josa, []string{"가"}); err != nil {
		t.Fatalf("AddWordsToDictionary: %v", err)
	}

	after, err := tok.Tokenize("나라가")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(after) != 2 || after[0].Text != "나라" || after[0].POS != pos.Noun || after[0].Unknown {
		t.Errorf("after seeding, got %+v", after)
	}
	if after[1].Text != "가" || after[1].POS != pos.Josa {
		t.Errorf("after seeding, got %+v", after)
	}
}

func TestTokenizeWhitespaceIsPreservedAsSpaceTokens(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tokens, err := tok.Tokenize("아버지가 방")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	foundSpace := false
	for _, tk := range tokens {
		if tk.POS == pos.Space {
			foundSpace = true
		}
	}
	if !foundSpace {
		t.Errorf("expected a Space token among %+v", tokens)
	}
}
