package watchlist

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.txt")
	s := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "D05.SI"))
	require.NoError(t, s.Add(ctx, "O39.SI"))
	require.NoError(t, s.Add(ctx, "D05.SI"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "D05.SI\nO39.SI\n", string(data))
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.txt")
	ctx := context.Background()
	want := []string{"Z74.SI", "D05.SI", "C6L.SI", "A17U.SI"}

	w := NewFileStore(path)
	for _, tk := range want {
		require.NoError(t, w.Add(ctx, tk))
	}

	got, err := NewFileStore(path).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileStoreCollapsesExistingDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.txt")
	require.NoError(t, os.WriteFile(path, []byte("D05.SI\n\nO39.SI\r\nD05.SI\n  U11.SI  \n"), 0o644))
	s := NewFileStore(path)
	ctx := context.Background()

	got, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"D05.SI", "O39.SI", "U11.SI"}, got)

	require.NoError(t, s.Remove(ctx, "O39.SI"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "D05.SI\nU11.SI\n", string(data))
}

func TestFileStoreNoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "watchlist.txt"))
	ctx := context.Background()
	for _, tk := range []string{"A", "B", "C"} {
		require.NoError(t, s.Add(ctx, tk))
	}
	require.NoError(t, s.Remove(ctx, "B"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"watchlist.txt", "watchlist.txt.lock"}, names)
}

func TestFileStoreNoopDoesNotCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.txt")
	s := NewFileStore(path)
	require.NoError(t, s.Remove(context.Background(), "D05.SI"))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreKeepsFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.txt")
	require.NoError(t, os.WriteFile(path, []byte("D05.SI\n"), 0o600))
	require.NoError(t, os.Chmod(path, 0o600))

	s := NewFileStore(path)
	require.NoError(t, s.Add(context.Background(), "O39.SI"))

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	fresh := filepath.Join(t.TempDir(), "new.txt")
	require.NoError(t, NewFileStore(fresh).Add(context.Background(), "D05.SI"))
	fi, err = os.Stat(fresh)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), fi.Mode().Perm())
}
