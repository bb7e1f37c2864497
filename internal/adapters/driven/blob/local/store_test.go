package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
)

func TestUploadAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	src := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(src, []byte("content"), 0o644))
	f, err := os.Open(src)
	require.NoError(t, err)
	defer f.Close()

	file := &domain.File{Content: f, Name: src}
	ref, err := store.Upload(context.Background(), file)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref.URL, "file://"))

	stored, err := os.ReadFile(filepath.Join(dir, "report.txt"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(stored))

	// Seekable content is rewound so it can still be parsed.
	buf := make([]byte, 7)
	n, err := f.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "content", string(buf[:n]))

	require.NoError(t, store.Remove(context.Background(), src))
	_, err = os.Stat(filepath.Join(dir, "report.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestUploadAfterContentWasRead(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	src := filepath.Join(t.TempDir(), "parsed.txt")
	require.NoError(t, os.WriteFile(src, []byte("already parsed"), 0o644))
	f, err := os.Open(src)
	require.NoError(t, err)
	defer f.Close()

	// Drain the reader first, as the pipeline's parser does.
	_, err = io.ReadAll(f)
	require.NoError(t, err)

	_, err = store.Upload(context.Background(), &domain.File{Content: f, Name: src})
	require.NoError(t, err)

	stored, err := os.ReadFile(filepath.Join(dir, "parsed.txt"))
	require.NoError(t, err)
	assert.Equal(t, "already parsed", string(stored))
}

func TestRemoveMissingBlobIsNotAnError(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, store.Remove(context.Background(), "/tmp/never-uploaded.txt"))
}

func TestRemoveAll(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0o644))

	require.NoError(t, store.RemoveAll(context.Background()))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
