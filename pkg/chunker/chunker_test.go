package chunker

import (
	"testing"

	"github.com/kittclouds/hangultok/pkg/pos"
)

func TestChunkTextCoversInputContiguously(t *testing.T) {
	text := "아버지가 방에 들어가신다"
	chunks := ChunkText(text)

	var rebuilt string
	wantOffset := 0
	for _, c := range chunks {
		if c.Offset != wantOffset {
			t.Fatalf("chunk %q offset = %d, want %d", c.Text, c.Offset, wantOffset)
		}
		rebuilt += c.Text
		wantOffset += c.Length
	}
	if rebuilt != text {
		t.Fatalf("concatenated chunks = %q, want %q", rebuilt, text)
	}
}

func TestChunkTextKoreanAndSpace(t *testing.T) {
	chunks := ChunkText("아버지가 방")
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks (korean, space, korean), got %d: %+v", len(chunks), chunks)
	}
	if chunks[0].Type != pos.Korean || chunks[0].Text != "아버지가" {
		t.Errorf("chunk0 = %+v", chunks[0])
	}
	if chunks[1].Type != pos.Space || chunks[1].Text != " " {
		t.Errorf("chunk1 = %+v", chunks[1])
	}
	if chunks[2].Type != pos.Korean || chunks[2].Text != "방" {
		t.Errorf("chunk2 = %+v", chunks[2])
	}
}

func TestChunkTextJamoOnly(t *testing.T) {
	chunks := ChunkText("ㅋㅋㅋ")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d: %+v", len(chunks), chunks)
	}
	if chunks[0].Type != pos.KoreanParticle {
		t.Errorf("type = %v, want KoreanParticle", chunks[0].Type)
	}
	if chunks[0].Text != "ㅋㅋㅋ" {
		t.Errorf("text = %q", chunks[0].Text)
	}
}

func TestChunkTextEmpty(t *testing.T) {
	if chunks := ChunkText(""); len(chunks) != 0 {
		t.Fatalf("expected 0 chunks for empty input, got %d", len(chunks))
	}
}

func TestChunkTextURLEmailHashtagScreenName(t *testing.T) {
	cases := []struct {
		text string
		typ  pos.POS
	}{
		{"https://example.com/a?b=c 다음", pos.URL},
		{"me@example.com 이다", pos.Email},
		{"#한국어 테스트", pos.Hashtag},
		{"@user 님", pos.ScreenName},
	}
	for _, c := range cases {
		chunks := ChunkText(c.text)
		if len(chunks) == 0 || chunks[0].Type != c.typ {
			t.Errorf("text %q: first chunk type = %v, want %v (%+v)", c.text, chunks[0].Type, c.typ, chunks)
		}
	}
}

func TestChunkTextMixedScriptsAndNumbers(t *testing.T) {
	chunks := ChunkText("hello123 안녕, world!")
	var types []pos.POS
	for _, c := range chunks {
		types = append(types, c.Type)
	}
	want := []pos.POS{pos.Foreign, pos.Number, pos.Space, pos.Korean, pos.Punctuation, pos.Space, pos.Foreign, pos.Punctuation}
	if len(types) != len(want) {
		t.Fatalf("got %d chunks %v, want %d chunks %v", len(types), types, len(want), want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("chunk %d type = %v, want %v", i, types[i], want[i])
		}
	}
}
