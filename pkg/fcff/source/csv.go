package source

import (
	"context"
	"encoding/csv"
	"os"
	"strings"

	"github.com/komsit37/fcff/pkg/fcff/types"
)

// CSVSource reads comma separated files exported from pandas or a
// spreadsheet.
type CSVSource struct{}

func (CSVSource) Load(ctx context.Context, path string) ([][]string, error) { //nolint:revive // ctx reserved for future use
	f, err := os.Open(path)
	if err != nil {
		return nil, &types.IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, &types.IOError{Op: "parse", Path: path, Err: err}
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}
