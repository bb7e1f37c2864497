// Package sidecar detects file changes with ".md5" sidecar files
// written next to each source file.
package sidecar

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.FingerprintStore = (*Store)(nil)

// Store keeps one "<path>.md5" file per source file. A missing or
// stale sidecar means the file changed; the sidecar is rewritten with
// the current hash in either case.
type Store struct{}

// NewStore creates a sidecar fingerprint store.
func NewStore() *Store {
	return &Store{}
}

// Changed reports whether the file's content differs from the stored
// fingerprint.
func (s *Store) Changed(path string) (bool, error) {
	hash, err := hashFile(path)
	if err != nil {
		return false, err
	}

	sidecarPath := path + ".md5"
	stored, err := os.ReadFile(sidecarPath)
	if err == nil && bytes.Equal(bytes.TrimSpace(stored), []byte(hash)) {
		return false, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("read fingerprint: %w", err)
	}

	if err := os.WriteFile(sidecarPath, []byte(hash), 0o644); err != nil {
		return false, fmt.Errorf("write fingerprint: %w", err)
	}
	return true, nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
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
