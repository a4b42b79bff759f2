//go:build !windows

package watchlist

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/fcff/pkg/fcff/types"
)

func TestFileStoreFailedMutationKeepsContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watchlist.txt")
	require.NoError(t, os.WriteFile(path, []byte("D05.SI\n"), 0o644))
	// a directory where the lock file should be makes locking fail
	require.NoError(t, os.Mkdir(path+".lock", 0o755))

	s := NewFileStore(path)
	err := s.Add(context.Background(), "O39.SI")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrIO)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "D05.SI\n", string(data))
}

func TestFileStoreUnreadable(t *testing.T) {
	dir := t.TempDir()
	// the watchlist path is a directory, so reads fail
	path := filepath.Join(dir, "watchlist.txt")
	require.NoError(t, os.Mkdir(path, 0o755))

	_, err := NewFileStore(path).List(context.Background())
	assert.ErrorIs(t, err, types.ErrIO)
}
