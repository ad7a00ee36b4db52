// ABOUTME: Persisted key-value mirror of selected cache entries
// ABOUTME: Best-effort shadow copy used as a zero-latency fallback read source

package mirror

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store is the local mirror: a sqlite-backed key-value table that
// survives restarts. It is never authoritative; a value that fails to
// parse is treated as absent.
type Store struct {
	db *sql.DB
}

// Open initializes the mirror at the given path, creating the schema
// on first use.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create mirror directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mirror: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS mirror (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create mirror schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores a JSON-encoded value under key. Mirror writes are best
// effort; callers typically ignore the returned error.
func (s *Store) Put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO mirror (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, data, time.Now().UTC())
	return err
}

// Get decodes the value under key into dst. It reports false for a
// missing key and for any read or parse failure; a corrupt value is
// deleted and treated as a miss.
func (s *Store) Get(key string, dst any) bool {
	var data []byte
	err := s.db.QueryRow(`SELECT value FROM mirror WHERE key = ?`, key).Scan(&data)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		_, _ = s.db.Exec(`DELETE FROM mirror WHERE key = ?`, key)
		return false
	}
	return true
}

// Delete removes a key. Missing keys are not an error.
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM mirror WHERE key = ?`, key)
	return err
}

// Keys returns all stored keys, for diagnostics.
func (s *Store) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM mirror ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
