package postrie

import (
	"testing"

	"github.com/kittclouds/hangultok/pkg/pos"
)

func TestBuildDefaultGrammarRoots(t *testing.T) {
	trie, err := Build(DefaultGrammar())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	gotRoots := map[pos.POS]bool{}
	for _, idx := range trie.Roots {
		gotRoots[trie.Nodes[idx].CurPos] = true
	}
	for _, want := range []pos.POS{
		pos.Determiner, pos.NounPrefix, pos.Noun,
		pos.VerbPrefix, pos.Verb, pos.Adjective,
		pos.Adverb, pos.Conjunction, pos.Exclamation, pos.Josa,
	} {
		if !gotRoots[want] {
			t.Errorf("missing root for %s", want)
		}
	}
}

func TestBuildSharesVerbAdjectivePrefix(t *testing.T) {
	trie, err := Build(DefaultGrammar())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var vRoot = -1
	count := 0
	for _, idx := range trie.Roots {
		if trie.Nodes[idx].CurPos == pos.VerbPrefix {
			vRoot = idx
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one shared VerbPrefix root, got %d", count)
	}
	if !containsInt(trie.Nodes[vRoot].Next, SelfLoop) {
		t.Errorf("VerbPrefix root missing self-loop for '*' quantifier")
	}

	var kids []pos.POS
	for _, c := range trie.Nodes[vRoot].Next {
		if c == SelfLoop {
			continue
		}
		kids = append(kids, trie.Nodes[c].CurPos)
	}
	if len(kids) != 2 {
		t.Fatalf("expected VerbPrefix root to fork into Verb and Adjective, got %v", kids)
	}
}

func TestBuildNounOptionalTailsAllTerminate(t *testing.T) {
	trie, err := Build(DefaultGrammar())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// D and p are both optional ahead of the required N, so a bare Noun
	// (no Determiner, no NounPrefix) must itself be a root, not merely
	// reachable by walking through an optional Determiner/NounPrefix head.
	var nRoot = -1
	for _, idx := range trie.Roots {
		if trie.Nodes[idx].CurPos == pos.Noun {
			nRoot = idx
		}
	}
	if nRoot == -1 {
		t.Fatal("no bare Noun root found — a leading bare noun cannot start a trie path")
	}

	// s and j are both optional past N, so the bare Noun root must itself
	// terminate (the empty-tail case), and walking forward from it must
	// still reach a Noun ending through the optional suffix/josa tail.
	if e := trie.Nodes[nRoot].Ending; e == nil || *e != pos.Noun {
		t.Errorf("bare Noun root does not terminate as Noun on its own")
	}

	found := false
	var walk func(idx int, depth int)
	seen := map[int]bool{}
	walk = func(idx int, depth int) {
		if seen[idx] || depth > 10 {
			return
		}
		seen[idx] = true
		if e := trie.Nodes[idx].Ending; e != nil && *e == pos.Noun {
			found = true
		}
		for _, c := range trie.Nodes[idx].Next {
			if c != SelfLoop {
				walk(c, depth+1)
			}
		}
	}
	walk(nRoot, 0)
	if !found {
		t.Errorf("no Noun-terminated node reachable from the bare Noun root")
	}
}

func TestBuildRejectsUnknownCode(t *testing.T) {
	_, err := Build(map[string]pos.POS{"Z1": pos.Noun})
	if err == nil {
		t.Fatal("expected error for unknown grammar code")
	}
}

func TestBuildRejectsOddLengthSpec(t *testing.T) {
	_, err := Build(map[string]pos.POS{"N": pos.Noun})
	if err == nil {
		t.Fatal("expected error for odd-length spec")
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	trie, err := Build(DefaultGrammar())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	data, err := Snapshot(trie)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	restored, err := Restore(data)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if len(restored.Nodes) != len(trie.Nodes) || len(restored.Roots) != len(trie.Roots) {
		t.Fatalf("restored trie shape mismatch: nodes %d/%d roots %d/%d",
			len(restored.Nodes), len(trie.Nodes), len(restored.Roots), len(trie.Roots))
	}
	for i := range trie.Nodes {
		want, got := trie.Nodes[i], restored.Nodes[i]
		if want.CurPos != got.CurPos {
			t.Errorf("node %d CurPos = %v, want %v", i, got.CurPos, want.CurPos)
		}
		if (want.Ending == nil) != (got.Ending == nil) {
			t.Errorf("node %d Ending nilness mismatch", i)
		}
		if want.Ending != nil && got.Ending != nil && *want.Ending != *got.Ending {
			t.Errorf("node %d Ending = %v, want %v", i, *got.Ending, *want.Ending)
		}
	}
}
