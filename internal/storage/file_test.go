package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store {
		return NewFileStore(filepath.Join(t.TempDir(), "state", "session.json"))
	})
}

func TestFileStoreSingleDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, s.SetMany(ctx, map[string]string{"userId": "7", "user": `{"id":7}`}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]string
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, map[string]string{"userId": "7", "user": `{"id":7}`}, doc)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileStoreRemovesEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, s.SetMany(ctx, map[string]string{"userId": "7"}))
	require.NoError(t, s.Delete(ctx, "userId"))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	s := NewFileStore(path)
	ctx := context.Background()

	_, _, err := s.Get(ctx, "user")
	assert.ErrorIs(t, err, ErrCorrupt)

	require.NoError(t, s.Delete(ctx, "userId", "user"))
	_, ok, err := s.Get(ctx, "user")
	require.NoError(t, err, "delete resets a corrupt document")
	assert.False(t, ok)
}
