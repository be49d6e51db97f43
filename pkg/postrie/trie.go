// Package postrie compiles the POS-sequence grammar (spec.md §3/§4.2) into
// a rooted, arena-indexed trie. Nodes are addressed by slice index rather
// than pointer so that the '*'/'+' self-loops described in spec.md §9 can
// be represented without cyclic owning references: a self-loop is stored
// as the reserved SelfLoop sentinel and only resolved to "stay at the
// current index" when a caller expands a frontier (see pkg/parser).
package postrie

import (
	"fmt"
	"sort"

	"github.com/kelindar/binary"
	"github.com/kittclouds/hangultok/pkg/pos"
)

// SelfLoop is the reserved sentinel meaning "loop back to the originating
// node." It never appears in a resolved frontier (pkg/parser's invariant),
// only in a Node's static Next list.
const SelfLoop = -1

// rootParent is the virtual-root parent key used when inserting a pair
// directly under the root: the first pair of a spec, or a later pair that
// optional ('0'/'*') leading pairs can be skipped to. It is never a real
// node index.
const rootParent = -2

// Node is one state in the compiled grammar trie.
type Node struct {
	CurPos pos.POS
	Next   []int // child indices, or SelfLoop
	Ending *pos.POS
}

// Trie is the compiled, immutable grammar. Safe for concurrent reads.
type Trie struct {
	Nodes []Node
	Roots []int // indices of the alternative first nodes
}

// pair is one (POS code, quantifier) step parsed from a spec string.
type pair struct {
	Code  byte
	Quant byte
}

// Build compiles a grammar (spec string -> terminal POS) into a Trie.
// Specs are processed in sorted order so that node indices — and therefore
// any test or snapshot that pins them — are deterministic across builds.
func Build(grammar map[string]pos.POS) (*Trie, error) {
	specs := make([]string, 0, len(grammar))
	for s := range grammar {
		specs = append(specs, s)
	}
	sort.Strings(specs)

	t := &Trie{}
	parentChild := map[int]map[byte]int{}

	for _, spec := range specs {
		terminal := grammar[spec]
		pairs, err := parseSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("postrie: invalid grammar spec %q: %w", spec, err)
		}
		if len(pairs) == 0 {
			return nil, fmt.Errorf("postrie: empty grammar spec")
		}

		curParents := []int{rootParent}
		for _, pr := range pairs {
			var next []int
			seen := map[int]bool{}

			for _, parent := range curParents {
				child := insertPair(t, parentChild, parent, pr)
				if !seen[child] {
					next = append(next, child)
					seen[child] = true
				}
			}

			if pr.Quant == '0' || pr.Quant == '*' {
				for _, parent := range curParents {
					if seen[parent] {
						continue
					}
					next = append(next, parent)
					seen[parent] = true
				}
			}

			curParents = next
		}

		for _, idx := range curParents {
			if t.Nodes[idx].Ending != nil && *t.Nodes[idx].Ending != terminal {
				return nil, fmt.Errorf("postrie: spec %q reaches a node already terminated as %s",
					spec, t.Nodes[idx].Ending)
			}
			term := terminal
			t.Nodes[idx].Ending = &term
		}
	}

	return t, nil
}

// insertPair finds or creates the child of parent for pr.Code, ensuring a
// self-loop edge is present on the child when pr.Quant is '*' or '+'.
func insertPair(t *Trie, parentChild map[int]map[byte]int, parent int, pr pair) int {
	if parentChild[parent] == nil {
		parentChild[parent] = make(map[byte]int)
	}

	child, ok := parentChild[parent][pr.Code]
	if !ok {
		p, _ := pos.FromLetter(pr.Code)
		child = len(t.Nodes)
		t.Nodes = append(t.Nodes, Node{CurPos: p})
		parentChild[parent][pr.Code] = child

		if parent == rootParent {
			t.Roots = append(t.Roots, child)
		} else {
			t.Nodes[parent].Next = append(t.Nodes[parent].Next, child)
		}
	}

	if pr.Quant == '*' || pr.Quant == '+' {
		if !containsInt(t.Nodes[child].Next, SelfLoop) {
			t.Nodes[child].Next = append(t.Nodes[child].Next, SelfLoop)
		}
	}

	return child
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// parseSpec parses a grammar spec string into (code, quantifier) pairs.
// Each POS letter must be followed by exactly one quantifier in {0,1,*,+}.
func parseSpec(spec string) ([]pair, error) {
	if len(spec)%2 != 0 {
		return nil, fmt.Errorf("odd length spec, each POS letter needs a quantifier")
	}
	pairs := make([]pair, 0, len(spec)/2)
	for i := 0; i < len(spec); i += 2 {
		code := spec[i]
		quant := spec[i+1]
		if _, ok := pos.FromLetter(code); !ok {
			return nil, fmt.Errorf("unknown POS code %q at position %d", code, i)
		}
		switch quant {
		case '0', '1', '*', '+':
		default:
			return nil, fmt.Errorf("unknown quantifier %q at position %d", quant, i+1)
		}
		pairs = append(pairs, pair{Code: code, Quant: quant})
	}
	return pairs, nil
}

// DefaultGrammar is the spec.md §6 compile-time constant grammar.
func DefaultGrammar() map[string]pos.POS {
	return map[string]pos.POS{
		"D0p*N1s0j0": pos.Noun,
		"v*V1r*e0":   pos.Verb,
		"v*J1r*e0":   pos.Adjective,
		"A1":         pos.Adverb,
		"C1":         pos.Conjunction,
		"E+":         pos.Exclamation,
		"j1":         pos.Josa,
	}
}

// snapshot is the wire format kelindar/binary serializes, mirroring Trie's
// fields exactly so Snapshot/Restore is a transparent round trip.
type snapshot struct {
	Nodes []snapshotNode
	Roots []int
}

type snapshotNode struct {
	CurPos  pos.POS
	Next    []int
	HasEnd  bool
	Ending  pos.POS
}

// Snapshot serializes the trie to a compact binary form so a host process
// can precompile the grammar once and skip re-walking spec strings on
// every cold start, using the teacher's declared kelindar/binary dependency
// in the same "persist an in-memory index to bytes" role pkg/vector gives
// encoding/gob.
func Snapshot(t *Trie) ([]byte, error) {
	snap := snapshot{Roots: t.Roots, Nodes: make([]snapshotNode, len(t.Nodes))}
	for i, n := range t.Nodes {
		sn := snapshotNode{CurPos: n.CurPos, Next: n.Next}
		if n.Ending != nil {
			sn.HasEnd = true
			sn.Ending = *n.Ending
		}
		snap.Nodes[i] = sn
	}
	data, err := binary.Marshal(&snap)
	if err != nil {
		return nil, fmt.Errorf("postrie: snapshot encode: %w", err)
	}
	return data, nil
}

// Restore decodes a Trie previously produced by Snapshot.
func Restore(data []byte) (*Trie, error) {
	var snap snapshot
	if err := binary.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("postrie: snapshot decode: %w", err)
	}
	t := &Trie{Roots: snap.Roots, Nodes: make([]Node, len(snap.Nodes))}
	for i, sn := range snap.Nodes {
		n := Node{CurPos: sn.CurPos, Next: sn.Next}
		if sn.HasEnd {
			e := sn.Ending
			n.Ending = &e
		}
		t.Nodes[i] = n
	}
	return t, nil
}
