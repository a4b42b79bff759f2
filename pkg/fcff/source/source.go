package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Source loads a tabular file as rows of cells, header row first.
type Source interface {
	Load(ctx context.Context, path string) ([][]string, error)
}

// ForPath picks a Source from the file extension.
func ForPath(path string) (Source, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		return CSVSource{}, nil
	case ".xlsx", ".xlsm":
		return XLSXSource{}, nil
	default:
		return nil, fmt.Errorf("unsupported table format %q for %s", ext, path)
	}
}

// Load reads path with the Source chosen by ForPath.
func Load(ctx context.Context, path string) ([][]string, error) {
	src, err := ForPath(path)
	if err != nil {
		return nil, err
	}
	return src.Load(ctx, path)
}
