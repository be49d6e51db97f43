// Package freqvec estimates how common an unknown noun is by nearest-
// neighbor lookup against vectors of known, frequency-ranked nouns. It
// implements pkg/dictionary.FrequencyEstimator, feeding the chunk parser's
// freq score term for nouns the dictionary has no exact frequency for.
// Adapted near file-for-file from the teacher's HNSW vector store: same
// index type, same gob+hackpadfs persistence, retargeted from arbitrary
// float32 embeddings to character-bigram hashed noun vectors and from a
// generic k-NN Search to a single frequency estimate.
package freqvec

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"

	"github.com/fogfish/hnsw"
	"github.com/fogfish/hnsw/vector"
	"github.com/hack-pad/hackpadfs"
	kvector "github.com/kshard/vector"

	"github.com/kittclouds/hangultok/internal/dictstore"
)

// dims is the hashed-bigram vector width; small enough to keep the index
// cheap for a word-level (not document-level) corpus.
const dims = 64

// Store holds a frequency-ranked noun index: each inserted word's vector
// key doubles as its rank, so nearby neighbors' average rank approximates
// an unknown word's commonness.
type Store struct {
	Index *hnsw.HNSW[vector.VF32]
	FS    hackpadfs.FS
	Path  string
	mu    sync.RWMutex

	maxKey uint32
}

// NewStore creates a Store, loading a persisted index from path if one
// exists, or starting empty otherwise.
func NewStore(fs hackpadfs.FS, path string) (*Store, error) {
	s := &Store{FS: fs, Path: path}
	if err := s.Load(); err != nil {
		s.Index = hnsw.New[vector.VF32](vector.SurfaceVF32(kvector.Cosine()))
	}
	return s, nil
}

// AddRanked inserts word at the next rank slot; words added earlier are
// treated as more common than words added later, mirroring a frequency-
// sorted word list loaded in descending-commonness order.
func (s *Store) AddRanked(word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.maxKey
	s.maxKey++

	s.Index.Insert(vector.VF32{Key: key, Vec: hashBigrams(word)})
	return nil
}

// Estimate returns word's commonness in [0, 1] based on the average rank of
// its nearest neighbors in the index; 1 means "as common as the most
// frequent word seen," 0 means "no neighbors found" (unranked vocabulary).
func (s *Store) Estimate(word string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.Index == nil || s.Index.Size() == 0 {
		return 0
	}

	k := 5
	ef := k * 2
	if ef < 50 {
		ef = 50
	}
	results := s.Index.Search(vector.VF32{Vec: hashBigrams(word)}, k, ef)
	if len(results) == 0 {
		return 0
	}

	var sum float64
	for _, r := range results {
		sum += float64(r.Key)
	}
	avgRank := sum / float64(len(results))

	commonness := 1.0 - avgRank/float64(s.maxKey)
	if commonness < 0 {
		commonness = 0
	}
	return commonness
}

// hashBigrams folds word's rune-bigrams into a fixed-width float32 vector
// using additive hashing, giving similar words (sharing bigrams) similar
// vectors without needing a pretrained embedding model.
func hashBigrams(word string) []float32 {
	v := make([]float32, dims)
	runes := []rune(word)
	if len(runes) < 2 {
		for _, r := range runes {
			v[int(r)%dims] += 1
		}
		return v
	}
	for i := 0; i+1 < len(runes); i++ {
		h := uint32(runes[i])*31 + uint32(runes[i+1])
		v[int(h)%dims] += 1
	}
	return v
}

// SaveToDictstore persists every ranked vector into db's noun_vectors table,
// an alternative to the Save/Load file path for hosts already running a
// dictstore.Store for the word dictionary.
func (s *Store) SaveToDictstore(db *dictstore.Store) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.Index == nil {
		return nil
	}
	for _, n := range s.Index.Nodes() {
		if err := db.SaveVector(n.Vec.Key, n.Vec.Vec); err != nil {
			return fmt.Errorf("freqvec: saving vector rank %d: %w", n.Vec.Key, err)
		}
	}
	return nil
}

// LoadFromDictstore rebuilds the index from db's persisted vectors.
func (s *Store) LoadFromDictstore(db *dictstore.Store) error {
	vecs, err := db.LoadVectors()
	if err != nil {
		return fmt.Errorf("freqvec: loading vectors: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.Index = hnsw.New[vector.VF32](vector.SurfaceVF32(kvector.Cosine()))
	s.maxKey = 0
	for rank, vec := range vecs {
		s.Index.Insert(vector.VF32{Key: rank, Vec: vec})
		if rank >= s.maxKey {
			s.maxKey = rank + 1
		}
	}
	return nil
}

// Save persists the index to Store.FS at Store.Path.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Index == nil {
		return nil
	}

	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(s.Index.Nodes()); err != nil {
		return fmt.Errorf("freqvec: encoding index: %w", err)
	}
	if err := hackpadfs.WriteFullFile(s.FS, s.Path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("freqvec: writing index file: %w", err)
	}
	return nil
}

// Load reads a previously Save'd index from Store.FS at Store.Path.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := hackpadfs.ReadFile(s.FS, s.Path)
	if err != nil {
		return err
	}

	var nodes hnsw.Nodes[vector.VF32]
	dec := gob.NewDecoder(bytes.NewReader(content))
	if err := dec.Decode(&nodes); err != nil {
		return fmt.Errorf("freqvec: decoding index: %w", err)
	}

	s.Index = hnsw.FromNodes[vector.VF32](vector.SurfaceVF32(kvector.Cosine()), nodes)
	for _, n := range nodes {
		if n.Vec.Key >= s.maxKey {
			s.maxKey = n.Vec.Key + 1
		}
	}
	return nil
}
