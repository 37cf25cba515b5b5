package refdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRef(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestOpenLoadsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.csv")
	writeRef(t, path, "Journal Name,Impact Factor\nNature,49.96\nScience,47.73\n")

	store, err := Open(path, zerolog.Nop())
	require.NoError(t, err)

	snap := store.Snapshot()
	require.Len(t, snap.Entries, 2)
	assert.Equal(t, "Nature", snap.Entries[0].CanonicalName)
	assert.Equal(t, 49.96, snap.Entries[0].ImpactFactor)
	assert.Equal(t, 2, snap.Index.Size())
	assert.Equal(t, path, snap.Source)
	assert.False(t, snap.LoadedAt.IsZero())
}

func TestOpenMissingFileIsError(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.csv"), zerolog.Nop())
	assert.Error(t, err)
}

func TestOpenNoUsableRowsIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.csv")
	writeRef(t, path, "Journal Name,Impact Factor\n,\n")
	_, err := Open(path, zerolog.Nop())
	assert.Error(t, err)
}

func TestOpenHeaderAliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.csv")
	writeRef(t, path, "Full Journal Title,2023 JIF\nNature,49.96\n")

	store, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, store.Snapshot().Entries, 1)
}

func TestDuplicateNamesFirstWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.csv")
	writeRef(t, path, "Journal Name,Impact Factor\nNature,49.96\nNATURE,1.0\nnature,2.0\n")

	store, err := Open(path, zerolog.Nop())
	require.NoError(t, err)

	snap := store.Snapshot()
	require.Len(t, snap.Entries, 1)
	assert.Equal(t, 49.96, snap.Entries[0].ImpactFactor)
}

func TestBadFactorRowsSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.csv")
	writeRef(t, path, "Journal Name,Impact Factor\nNature,49.96\nBroken,not-a-number\n")

	store, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, store.Snapshot().Entries, 1)
}

func TestReloadSwapsSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.csv")
	writeRef(t, path, "Journal Name,Impact Factor\nNature,49.96\n")

	store, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	old := store.Snapshot()

	writeRef(t, path, "Journal Name,Impact Factor\nNature,49.96\nScience,47.73\n")
	snap, err := store.Reload()
	require.NoError(t, err)
	assert.Len(t, snap.Entries, 2)
	assert.Len(t, old.Entries, 1) // the old generation is untouched
	assert.Same(t, snap, store.Snapshot())
}

func TestReloadFailureKeepsOldSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ref.csv")
	writeRef(t, path, "Journal Name,Impact Factor\nNature,49.96\n")

	store, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	old := store.Snapshot()

	require.NoError(t, os.Remove(path))
	_, err = store.Reload()
	assert.Error(t, err)
	assert.Same(t, old, store.Snapshot())
}
