// Package watchlist persists the user's liked tickers as an ordered set.
package watchlist

import (
	"context"
	"fmt"
	"strings"
)

// Store is an ordered set of tickers. Add of a present ticker and Remove
// of an absent one are no-ops.
type Store interface {
	Contains(ctx context.Context, ticker string) (bool, error)
	Add(ctx context.Context, ticker string) error
	Remove(ctx context.Context, ticker string) error
	List(ctx context.Context) ([]string, error)
	Close() error
}

// Backends accepted by Open.
const (
	BackendText   = "text"
	BackendSQLite = "sqlite"
)

type Options struct {
	Backend string
	Path    string
}

// Open returns the store for opts.Backend; empty means text.
func Open(opts Options) (Store, error) {
	if strings.TrimSpace(opts.Path) == "" {
		return nil, fmt.Errorf("watchlist: empty path")
	}
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendText:
		return NewFileStore(opts.Path), nil
	case BackendSQLite:
		return NewSQLiteStore(opts.Path)
	default:
		return nil, fmt.Errorf("watchlist: unknown backend %q", opts.Backend)
	}
}

// Toggle adds ticker when absent and removes it when present, returning
// whether it is liked afterwards.
func Toggle(ctx context.Context, s Store, ticker string) (bool, error) {
	ok, err := s.Contains(ctx, ticker)
	if err != nil {
		return false, err
	}
	if ok {
		return false, s.Remove(ctx, ticker)
	}
	return true, s.Add(ctx, ticker)
}

// dedupe keeps the first occurrence of each ticker.
func dedupe(tickers []string) []string {
	seen := make(map[string]struct{}, len(tickers))
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
