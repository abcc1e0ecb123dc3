package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_PutLookupRoundTrip(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	rec := Record{Path: "Docs/Taxes", SourcePath: "/scan/w2.pdf", Timestamp: 1700000000, Context: "general|docs|scan"}
	require.NoError(t, store.Put("w2.pdf|100|1700000000", rec))

	got, ok := store.Lookup("w2.pdf|100|1700000000")
	require.True(t, ok)
	assert.Equal(t, rec, got)

	_, ok = store.Lookup("unknown")
	assert.False(t, ok)
}

func TestSQLiteStore_PutOverwritesExisting(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Put("sig", Record{Path: "Old/Place", Timestamp: 1}))
	require.NoError(t, store.Put("sig", Record{Path: "New/Place", Timestamp: 2}))

	got, ok := store.Lookup("sig")
	require.True(t, ok)
	assert.Equal(t, "New/Place", got.Path)
	assert.Equal(t, int64(2), got.Timestamp)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Put("sig", Record{Path: "Media/Photos"}))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok := reopened.Lookup("sig")
	require.True(t, ok)
	assert.Equal(t, "Media/Photos", got.Path)
}

func TestSQLiteStore_InvalidateAll(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Put("a", Record{Path: "x"}))
	require.NoError(t, store.Put("b", Record{Path: "y"}))
	require.NoError(t, store.InvalidateAll())

	_, ok := store.Lookup("a")
	assert.False(t, ok)
	_, ok = store.Lookup("b")
	assert.False(t, ok)
}
