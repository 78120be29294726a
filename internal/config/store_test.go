package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adopr", "config.json")
	store := NewFileStoreAt(path)

	// Missing file reads as empty, not an error.
	_, ok := store.Get(KeyOrg)
	assert.False(t, ok)

	require.NoError(t, store.Set(KeyOrg, "acme"))
	require.NoError(t, store.Set(KeyProject, "proj1"))

	value, ok := store.Get(KeyOrg)
	require.True(t, ok)
	assert.Equal(t, "acme", value)

	// Overwrite.
	require.NoError(t, store.Set(KeyOrg, "other"))
	value, _ = store.Get(KeyOrg)
	assert.Equal(t, "other", value)

	// A fresh store over the same file sees persisted values.
	reopened := NewFileStoreAt(path)
	value, ok = reopened.Get(KeyProject)
	require.True(t, ok)
	assert.Equal(t, "proj1", value)

	require.NoError(t, store.Delete(KeyProject))
	_, ok = store.Get(KeyProject)
	assert.False(t, ok)

	// Deleting an absent key is fine.
	require.NoError(t, store.Delete("never-set"))
}

func TestFileStorePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}

	path := filepath.Join(t.TempDir(), "config.json")
	store := NewFileStoreAt(path)
	require.NoError(t, store.Set(KeyPAT, "encrypted-blob"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "settings file may hold the credential")
}

func TestMemStore(t *testing.T) {
	store := NewMemStore()

	_, ok := store.Get(KeyRepo)
	assert.False(t, ok)

	require.NoError(t, store.Set(KeyRepo, "repoA"))
	value, ok := store.Get(KeyRepo)
	require.True(t, ok)
	assert.Equal(t, "repoA", value)

	require.NoError(t, store.Delete(KeyRepo))
	_, ok = store.Get(KeyRepo)
	assert.False(t, ok)
}
