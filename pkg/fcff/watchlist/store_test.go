package watchlist

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/fcff/pkg/fcff/types"
)

func backends() map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		BackendText: func(t *testing.T) Store {
			return NewFileStore(filepath.Join(t.TempDir(), "Cache", "watchlist.txt"))
		},
		BackendSQLite: func(t *testing.T) Store {
			s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "watchlist.db"))
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			return s
		},
	}
}

func TestStoreScenario(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			ctx := context.Background()

			got, err := s.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, got)

			require.NoError(t, s.Add(ctx, "D05.SI"))
			got, err = s.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"D05.SI"}, got)

			require.NoError(t, s.Add(ctx, "D05.SI"))
			got, err = s.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"D05.SI"}, got)

			require.NoError(t, s.Remove(ctx, "D05.SI"))
			got, err = s.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestStoreContains(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			ctx := context.Background()

			ok, err := s.Contains(ctx, "O39.SI")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Add(ctx, "O39.SI"))
			ok, err = s.Contains(ctx, "O39.SI")
			require.NoError(t, err)
			assert.True(t, ok)

			require.NoError(t, s.Remove(ctx, "O39.SI"))
			ok, err = s.Contains(ctx, "O39.SI")
			require.NoError(t, err)
			assert.False(t, ok)

			// removing an absent ticker is a no-op
			require.NoError(t, s.Remove(ctx, "O39.SI"))
		})
	}
}

func TestStoreSequenceKeepsOrderAndSet(t *testing.T) {
	ops := []struct {
		add    bool
		ticker string
	}{
		{true, "A"}, {true, "B"}, {true, "C"}, {true, "A"},
		{false, "B"}, {true, "D"}, {true, "B"}, {false, "Z"}, {true, "C"},
	}
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			ctx := context.Background()
			for _, op := range ops {
				if op.add {
					require.NoError(t, s.Add(ctx, op.ticker))
				} else {
					require.NoError(t, s.Remove(ctx, op.ticker))
				}
			}
			got, err := s.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"A", "C", "D", "B"}, got)
		})
	}
}

func TestStoreRejectsInvalidTicker(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			ctx := context.Background()
			assert.ErrorIs(t, s.Add(ctx, "  "), types.ErrInvalidTicker)
			assert.ErrorIs(t, s.Add(ctx, "D05.SI\nO39.SI"), types.ErrInvalidTicker)
			_, err := s.Contains(ctx, "")
			assert.ErrorIs(t, err, types.ErrInvalidTicker)
		})
	}
}

func TestStoreTrimsTicker(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			ctx := context.Background()
			require.NoError(t, s.Add(ctx, " U11.SI "))
			ok, err := s.Contains(ctx, "U11.SI")
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestToggle(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			ctx := context.Background()

			liked, err := Toggle(ctx, s, "C6L.SI")
			require.NoError(t, err)
			assert.True(t, liked)

			liked, err = Toggle(ctx, s, "C6L.SI")
			require.NoError(t, err)
			assert.False(t, liked)

			got, err := s.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestStoreParallelAdds(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			ctx := context.Background()
			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					assert.NoError(t, s.Add(ctx, fmt.Sprintf("T%02d", i%10)))
				}(i)
			}
			wg.Wait()
			got, err := s.List(ctx)
			require.NoError(t, err)
			assert.Len(t, got, 10)
		})
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(Options{Path: filepath.Join(dir, "wl.txt")})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = Open(Options{Backend: "SQLite", Path: filepath.Join(dir, "wl.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(Options{Backend: "redis", Path: "x"})
	assert.Error(t, err)
	_, err = Open(Options{})
	assert.Error(t, err)
}
