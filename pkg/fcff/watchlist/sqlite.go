package watchlist

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/komsit37/fcff/pkg/fcff/types"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

const schema = `CREATE TABLE IF NOT EXISTS watchlist (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	ticker TEXT NOT NULL UNIQUE
)`

// SQLiteStore keeps the watchlist in a SQLite table; the UNIQUE constraint
// makes Add idempotent and id order is insertion order.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &types.IOError{Op: "mkdir", Path: path, Err: err}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &types.IOError{Op: "open", Path: path, Err: err}
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, &types.IOError{Op: "migrate", Path: path, Err: err}
	}
	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Contains(ctx context.Context, ticker string) (bool, error) {
	t, err := types.NormalizeTicker(ticker)
	if err != nil {
		return false, err
	}
	var ok bool
	err = s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM watchlist WHERE ticker = ?)`, t).Scan(&ok)
	if err != nil {
		return false, &types.IOError{Op: "query", Path: s.path, Err: err}
	}
	return ok, nil
}

func (s *SQLiteStore) Add(ctx context.Context, ticker string) error {
	t, err := types.NormalizeTicker(ticker)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO watchlist (ticker) VALUES (?)`, t); err != nil {
		return &types.IOError{Op: "insert", Path: s.path, Err: err}
	}
	return nil
}

func (s *SQLiteStore) Remove(ctx context.Context, ticker string) error {
	t, err := types.NormalizeTicker(ticker)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM watchlist WHERE ticker = ?`, t); err != nil {
		return &types.IOError{Op: "delete", Path: s.path, Err: err}
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT ticker FROM watchlist ORDER BY id`)
	if err != nil {
		return nil, &types.IOError{Op: "query", Path: s.path, Err: err}
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, &types.IOError{Op: "scan", Path: s.path, Err: err}
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &types.IOError{Op: "query", Path: s.path, Err: err}
	}
	return out, nil
}
