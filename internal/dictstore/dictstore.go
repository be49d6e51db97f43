// Package dictstore provides optional SQLite-backed persistence for the
// dictionary provider's word buckets and pkg/freqvec's rank vectors, so a
// host process can seed a Tokenizer from disk instead of re-running
// AddWordsToDictionary on every startup. Adapted from the teacher's
// SQLiteStore: same driver wiring, same RWMutex-guarded *sql.DB, same
// schema-string-constant-plus-Exec bootstrap.
package dictstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/asg017/sqlite-vec-go-bindings/ncruces"
	_ "github.com/ncruces/go-sqlite3/driver"

	"github.com/kittclouds/hangultok/pkg/pos"
)

// Store is the SQLite-backed persistence layer for dictionary words and
// noun-frequency vectors. Thread-safe for concurrent callers.
type Store struct {
	mu sync.RWMutex
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS words (
    word TEXT NOT NULL,
    pos TEXT NOT NULL,
    PRIMARY KEY (word, pos)
);

CREATE TABLE IF NOT EXISTS names (
    name TEXT PRIMARY KEY
);

CREATE INDEX IF NOT EXISTS idx_words_pos ON words(pos);

CREATE VIRTUAL TABLE IF NOT EXISTS noun_vectors USING vec0(
    rank INTEGER PRIMARY KEY,
    embedding FLOAT[64]
);
`

// Open opens (or creates) a SQLite-backed dictionary store. Use ":memory:"
// for an ephemeral store or a file path for persistent storage.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("dictstore: opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("dictstore: creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveWords persists words under the given POS's letter code.
func (s *Store) SaveWords(p pos.POS, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	letter, ok := p.Letter()
	if !ok {
		return fmt.Errorf("dictstore: %s is not a dictionary-backed POS", p)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("dictstore: starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO words (word, pos) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("dictstore: preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, w := range words {
		if _, err := stmt.Exec(w, string(letter)); err != nil {
			return fmt.Errorf("dictstore: inserting word %q: %w", w, err)
		}
	}
	return tx.Commit()
}

// LoadWords returns every word registered under p.
func (s *Store) LoadWords(p pos.POS) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	letter, ok := p.Letter()
	if !ok {
		return nil, fmt.Errorf("dictstore: %s is not a dictionary-backed POS", p)
	}

	rows, err := s.db.Query(`SELECT word FROM words WHERE pos = ?`, string(letter))
	if err != nil {
		return nil, fmt.Errorf("dictstore: querying words: %w", err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("dictstore: scanning word row: %w", err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// SaveNames persists a batch of known names for name-variation matching.
func (s *Store) SaveNames(names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("dictstore: starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO names (name) VALUES (?)`)
	if err != nil {
		return fmt.Errorf("dictstore: preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, n := range names {
		if _, err := stmt.Exec(n); err != nil {
			return fmt.Errorf("dictstore: inserting name %q: %w", n, err)
		}
	}
	return tx.Commit()
}

// SaveVector persists a pkg/freqvec hashed-bigram vector at the given rank,
// using the sqlite-vec extension's vec0 virtual table so the vectors live
// alongside the rest of the dictionary store rather than a separate file.
func (s *Store) SaveVector(rank uint32, vec []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	encoded, err := json.Marshal(vec)
	if err != nil {
		return fmt.Errorf("dictstore: encoding vector: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO noun_vectors (rank, embedding) VALUES (?, vec_f32(?))`,
		rank, string(encoded),
	)
	if err != nil {
		return fmt.Errorf("dictstore: inserting vector: %w", err)
	}
	return nil
}

// LoadVectors returns every persisted vector keyed by its rank (pkg/freqvec's
// insertion order). The result is a map, so iterating it does not follow
// rank order.
func (s *Store) LoadVectors() (map[uint32][]float32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT rank, vec_to_json(embedding) FROM noun_vectors ORDER BY rank`)
	if err != nil {
		return nil, fmt.Errorf("dictstore: querying vectors: %w", err)
	}
	defer rows.Close()

	out := make(map[uint32][]float32)
	for rows.Next() {
		var rank uint32
		var encoded string
		if err := rows.Scan(&rank, &encoded); err != nil {
			return nil, fmt.Errorf("dictstore: scanning vector row: %w", err)
		}
		var vec []float32
		if err := json.Unmarshal([]byte(encoded), &vec); err != nil {
			return nil, fmt.Errorf("dictstore: decoding vector: %w", err)
		}
		out[rank] = vec
	}
	return out, rows.Err()
}

// LoadNames returns every registered known name.
func (s *Store) LoadNames() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT name FROM names`)
	if err != nil {
		return nil, fmt.Errorf("dictstore: querying names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("dictstore: scanning name row: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
