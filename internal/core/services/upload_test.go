package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

// fakeIndexerAdmin records indexer administration calls in order.
type fakeIndexerAdmin struct {
	spec  *driven.IndexerSpec
	calls []string
}

func (f *fakeIndexerAdmin) CreateOrUpdate(_ context.Context, spec driven.IndexerSpec) error {
	f.spec = &spec
	f.calls = append(f.calls, "configure")
	return nil
}

func (f *fakeIndexerAdmin) Reset(_ context.Context, _ string) error {
	f.calls = append(f.calls, "reset")
	return nil
}

func (f *fakeIndexerAdmin) Run(_ context.Context, _ string) error {
	f.calls = append(f.calls, "run")
	return nil
}

func TestAddFileIndexesWithOwnerACLs(t *testing.T) {
	idx := &fakeSearchIndex{}
	m := NewIndexManager(idx, nil, "docs", false)
	s := NewUploadService(testRegistry(), m, nil, "docs")

	file := textFile("notes.txt", "Uploaded note content.")
	file.ACLs = map[string][]string{"oids": {"user-1"}}
	file.URL = "https://storage/notes.txt"

	require.NoError(t, s.AddFile(context.Background(), file))
	require.Len(t, idx.upserts, 1)

	doc := idx.upserts[0][0]
	assert.Equal(t, []string{"user-1"}, doc.OIDs)
	assert.Equal(t, "https://storage/notes.txt", doc.StorageURL)
	assert.Equal(t, "notes.txt", doc.SourceFile)
}

func TestAddFileRejectsUnknownFormat(t *testing.T) {
	s := NewUploadService(testRegistry(), NewIndexManager(&fakeSearchIndex{}, nil, "docs", false), nil, "docs")

	err := s.AddFile(context.Background(), textFile("data.xyz", "???"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRemoveFilePassesOwnerRestriction(t *testing.T) {
	idx := &fakeSearchIndex{
		searchPages: []searchPage{
			{docs: []domain.IndexDocument{{ID: "only-mine", OIDs: []string{"user-1"}}}, total: 1},
			{total: 0},
		},
	}
	m := NewIndexManager(idx, nil, "docs", false)
	noSleep(m)
	s := NewUploadService(testRegistry(), m, nil, "docs")

	require.NoError(t, s.RemoveFile(context.Background(), "notes.txt", "user-1"))
	require.Len(t, idx.deletes, 1)
	assert.Equal(t, []string{"only-mine"}, idx.deletes[0])
}

func TestRerunIndexer(t *testing.T) {
	admin := &fakeIndexerAdmin{}
	s := NewUploadService(testRegistry(), nil, admin, "docs")

	require.NoError(t, s.RerunIndexer(context.Background(), false))
	assert.Equal(t, []string{"configure", "run"}, admin.calls)
	assert.Equal(t, "docs-indexer", admin.spec.Name)
	assert.Equal(t, "docs", admin.spec.TargetIndex)
	assert.Equal(t, 4*time.Hour, admin.spec.Interval)
}

func TestRerunIndexerWithReset(t *testing.T) {
	admin := &fakeIndexerAdmin{}
	s := NewUploadService(testRegistry(), nil, admin, "docs")

	require.NoError(t, s.RerunIndexer(context.Background(), true))
	assert.Equal(t, []string{"configure", "reset", "run"}, admin.calls)
}

func TestRerunIndexerWithoutAdmin(t *testing.T) {
	s := NewUploadService(testRegistry(), nil, nil, "docs")
	err := s.RerunIndexer(context.Background(), false)
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
}
