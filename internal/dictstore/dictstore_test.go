package dictstore

import (
	"testing"

	"github.com/kittclouds/hangultok/pkg/pos"
)

func TestSaveAndLoadWordsRoundTrip(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.SaveWords(pos.Noun, []string{"나라", "사람"}); err != nil {
		t.Fatalf("SaveWords: %v", err)
	}

	got, err := s.LoadWords(pos.Noun)
	if err != nil {
		t.Fatalf("LoadWords: %v", err)
	}
	want := map[string]bool{"나라": true, "사람": true}
	if len(got) != len(want) {
		t.Fatalf("got %v, want 2 words", got)
	}
	for _, w := range got {
		if !want[w] {
			t.Errorf("unexpected word %q", w)
		}
	}
}

func TestLoadWordsEmptyBucket(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	got, err := s.LoadWords(pos.Verb)
	if err != nil {
		t.Fatalf("LoadWords: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no words, got %v", got)
	}
}

func TestSaveWordsRejectsNonGrammarPOS(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.SaveWords(pos.ProperNoun, []string{"x"}); err == nil {
		t.Error("expected an error saving under a non-letter POS")
	}
}

func TestSaveAndLoadNamesRoundTrip(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.SaveNames([]string{"민준", "서연"}); err != nil {
		t.Fatalf("SaveNames: %v", err)
	}

	got, err := s.LoadNames()
	if err != nil {
		t.Fatalf("LoadNames: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %v, want 2 names", got)
	}
}

func TestSaveWordsIgnoresDuplicates(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.SaveWords(pos.Noun, []string{"나라"}); err != nil {
		t.Fatalf("SaveWords: %v", err)
	}
	if err := s.SaveWords(pos.Noun, []string{"나라"}); err != nil {
		t.Fatalf("SaveWords (duplicate insert): %v", err)
	}

	got, err := s.LoadWords(pos.Noun)
	if err != nil {
		t.Fatalf("LoadWords: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected duplicate insert to be ignored, got %v", got)
	}
}
