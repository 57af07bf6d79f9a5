package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func stores(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "state"))
	require.NoError(t, err)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Load(ctx, KeyProfiles)
			require.ErrorIs(t, err, ErrNotFound)

			var got doc
			ok, err := LoadJSON(ctx, s, KeyProfiles, &got)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, SaveJSON(ctx, s, KeyProfiles, doc{Name: "anna", Count: 3}))
			require.NoError(t, SaveJSON(ctx, s, KeyProfiles, doc{Name: "anna", Count: 4}))

			ok, err = LoadJSON(ctx, s, KeyProfiles, &got)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, doc{Name: "anna", Count: 4}, got)
		})
	}
}

func TestStoreRejectsBadKeys(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, s.Save(ctx, "../escape", []byte("{}")))
			assert.Error(t, s.Save(ctx, "", []byte("{}")))
		})
	}
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, s.Save(ctx, KeyHistory, []byte("{}")), context.Canceled)
			_, err := s.Load(ctx, KeyHistory)
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestLoadJSONCorrupt(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Save(ctx, KeyStatistics, []byte("{not json")))
	var got doc
	_, err := LoadJSON(ctx, s, KeyStatistics, &got)
	assert.Error(t, err)
}

func TestFileStoreAtomicWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save(context.Background(), KeyHistory, []byte(`{"games":[]}`)))

	data, err := os.ReadFile(filepath.Join(dir, "history.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"games":[]}`, string(data))

	info, err := os.Stat(filepath.Join(dir, "history.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files should remain")
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	data := []byte(`{"name":"a"}`)
	require.NoError(t, s.Save(ctx, KeyProfiles, data))
	data[2] = 'X'

	got, err := s.Load(ctx, KeyProfiles)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"a"}`, string(got))
	assert.Equal(t, 1, s.Len())
}
