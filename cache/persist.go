package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

// Store is an optional sqlite-backed result store keyed by the same xxh3
// key as the in-memory cache. The CLI uses it to skip regeneration across
// runs; the engine itself never touches the filesystem.
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore opens (creating if needed) the persistent cache database under
// dir.
func OpenStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	path := filepath.Join(dir, "zyracss-cache.db")
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS generations (
		key TEXT PRIMARY KEY,
		css BLOB NOT NULL,
		created_at INTEGER NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Get fetches stored CSS by key.
func (s *Store) Get(key uint64) (string, bool, error) {
	var css []byte
	err := s.db.QueryRow(
		"SELECT css FROM generations WHERE key = ?", formatKey(key),
	).Scan(&css)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read cache entry: %w", err)
	}
	return string(css), true, nil
}

// Put stores CSS under key, replacing any previous entry.
func (s *Store) Put(key uint64, css string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO generations (key, css, created_at) VALUES (?, ?, ?)",
		formatKey(key), []byte(css), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Purge removes all stored generations.
func (s *Store) Purge() error {
	_, err := s.db.Exec("DELETE FROM generations")
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path reports the on-disk location of the store.
func (s *Store) Path() string {
	return s.path
}

func formatKey(key uint64) string {
	return strconv.FormatUint(key, 16)
}
