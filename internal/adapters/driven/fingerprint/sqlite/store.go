// Package sqlite detects file changes with content hashes persisted in
// a SQLite database. Unlike sidecar files, it keeps source directories
// clean and survives files being listed from read-only locations.
package sqlite

import (
	"crypto/md5"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.FingerprintStore = (*Store)(nil)

// Store persists one content hash per source path.
type Store struct {
	db *sql.DB
}

// NewStore opens the fingerprint database at the given data directory.
// If dataDir is empty, defaults to ~/.docdex/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docdex", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "fingerprints.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS fingerprints (
			path TEXT PRIMARY KEY,
			hash TEXT NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating fingerprints table: %w", err)
	}

	return &Store{db: db}, nil
}

// Changed reports whether the file's content differs from the stored
// fingerprint, recording the new hash when it does.
func (s *Store) Changed(path string) (bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	hash, err := hashFile(path)
	if err != nil {
		return false, err
	}

	var stored string
	err = s.db.QueryRow("SELECT hash FROM fingerprints WHERE path = ?", abs).Scan(&stored)
	switch {
	case err == nil && stored == hash:
		return false, nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return false, fmt.Errorf("query fingerprint: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT INTO fingerprints (path, hash) VALUES (?, ?) ON CONFLICT(path) DO UPDATE SET hash = excluded.hash",
		abs, hash,
	)
	if err != nil {
		return false, fmt.Errorf("store fingerprint: %w", err)
	}
	return true, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
