package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("search.index", "docs"))
	require.NoError(t, store.Set("embedding.batch", int64(16)))
	require.NoError(t, store.Set("ingest.watch", true))

	// A fresh store reading the same file sees the values.
	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "docs", reloaded.GetString("search.index"))
	assert.Equal(t, 16, reloaded.GetInt("embedding.batch"))
	assert.True(t, reloaded.GetBool("ingest.watch"))
}

func TestLoadFlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	cfg := "[search]\nindex = \"docs\"\nurl = \"http://localhost:9200\"\n\n[ingest]\ncategories = [\"finance\", \"hr\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(cfg), 0o600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "docs", store.GetString("search.index"))
	assert.Equal(t, "http://localhost:9200", store.GetString("search.url"))
	assert.Equal(t, []string{"finance", "hr"}, store.GetStringSlice("ingest.categories"))
}

func TestMissingKeysReturnZeroValues(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "", store.GetString("absent"))
	assert.Equal(t, 0, store.GetInt("absent"))
	assert.False(t, store.GetBool("absent"))
	assert.Nil(t, store.GetStringSlice("absent"))

	_, ok := store.Get("absent")
	assert.False(t, ok)
}
