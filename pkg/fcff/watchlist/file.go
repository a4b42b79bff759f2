package watchlist

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/komsit37/fcff/pkg/fcff/types"
)

// FileStore keeps one ticker per line in a plain text file. Mutations
// rewrite the whole file through a temp file and rename, holding an
// advisory lock on a sibling ".lock" file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

var _ Store = (*FileStore)(nil)

func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Close() error { return nil }

func (s *FileStore) List(ctx context.Context) ([]string, error) { //nolint:revive
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) Contains(ctx context.Context, ticker string) (bool, error) { //nolint:revive
	t, err := types.NormalizeTicker(ticker)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, err := s.read()
	if err != nil {
		return false, err
	}
	return slices.Contains(cur, t), nil
}

func (s *FileStore) Add(ctx context.Context, ticker string) error { //nolint:revive
	t, err := types.NormalizeTicker(ticker)
	if err != nil {
		return err
	}
	return s.mutate(func(cur []string) ([]string, bool) {
		if slices.Contains(cur, t) {
			return cur, false
		}
		return append(cur, t), true
	})
}

func (s *FileStore) Remove(ctx context.Context, ticker string) error { //nolint:revive
	t, err := types.NormalizeTicker(ticker)
	if err != nil {
		return err
	}
	return s.mutate(func(cur []string) ([]string, bool) {
		i := slices.Index(cur, t)
		if i < 0 {
			return cur, false
		}
		return slices.Delete(cur, i, i+1), true
	})
}

// mutate runs fn over the current contents under both locks and rewrites
// the file when fn reports a change.
func (s *FileStore) mutate(fn func([]string) ([]string, bool)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := lockFile(s.path + ".lock")
	if err != nil {
		return &types.IOError{Op: "lock", Path: s.path, Err: err}
	}
	defer unlock()

	cur, err := s.read()
	if err != nil {
		return err
	}
	next, changed := fn(cur)
	if !changed {
		return nil
	}
	return s.write(next)
}

func (s *FileStore) read() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &types.IOError{Op: "read", Path: s.path, Err: err}
	}
	return parseLines(string(data)), nil
}

func parseLines(data string) []string {
	var out []string
	for _, line := range strings.Split(data, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return dedupe(out)
}

func (s *FileStore) write(tickers []string) error {
	var b strings.Builder
	for _, t := range tickers {
		b.WriteString(t)
		b.WriteByte('\n')
	}
	if err := writeAtomic(s.path, []byte(b.String())); err != nil {
		return &types.IOError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

// writeAtomic replaces path with data so readers see either the old or the
// new contents, never a truncated file.
func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	mode := os.FileMode(0o644)
	if fi, statErr := os.Stat(path); statErr == nil {
		mode = fi.Mode().Perm()
	}
	if err = os.Chmod(tmp.Name(), mode); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
