// Package cache is a content-addressed store of compiled chunks backed
// by SQLite. Keys are the SHA-256 of the source text together with the
// declared globals, so a cached entry can never be served for different
// input or under a different globals declaration.
package cache

import (
	"bytes"
	"crypto/sha256"
	"database/sql"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/funvibe/cam/internal/vm"
)

const schema = `
CREATE TABLE IF NOT EXISTS chunks (
	id          TEXT PRIMARY KEY,
	source_hash TEXT UNIQUE NOT NULL,
	blob        BLOB NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
`

// Store is an open cache database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the cache database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Hash returns the cache key for a source text compiled under the
// given globals declaration. The declared names participate in order:
// the compiled variable indices depend on how many globals exist and
// where each sits, so the same source under a different declaration
// must miss.
func Hash(source string, globals ...string) string {
	h := sha256.New()
	h.Write([]byte(source))
	for _, name := range globals {
		h.Write([]byte{0})
		h.Write([]byte(name))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached chunk for sourceHash, or ok=false on a miss.
func (s *Store) Get(sourceHash string) (*vm.Chunk, bool, error) {
	var blob []byte
	err := s.db.QueryRow(`SELECT blob FROM chunks WHERE source_hash = ?`, sourceHash).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var chunk vm.Chunk
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&chunk); err != nil {
		return nil, false, fmt.Errorf("decode cached chunk: %w", err)
	}
	return &chunk, true, nil
}

// Put stores a compiled chunk under sourceHash, replacing any previous
// entry for the same source.
func (s *Store) Put(sourceHash string, chunk *vm.Chunk) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(chunk); err != nil {
		return fmt.Errorf("encode chunk: %w", err)
	}

	_, err := s.db.Exec(
		`INSERT INTO chunks (id, source_hash, blob, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(source_hash) DO UPDATE SET blob = excluded.blob, created_at = excluded.created_at`,
		uuid.NewString(), sourceHash, buf.Bytes(), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}
