package render

import (
	"encoding/json"
	"io"

	"github.com/komsit37/fcff/pkg/fcff/columns"
	"github.com/komsit37/fcff/pkg/fcff/types"
)

// jsonModel is the output shape for JSONRenderer.
type jsonModel struct {
	Columns []string   `json:"columns"`
	Items   []jsonItem `json:"items"`
}

type jsonItem struct {
	Ticker string         `json:"ticker"`
	Fields map[string]any `json:"fields"`
}

type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (r *JSONRenderer) Render(w io.Writer, rows []types.Listing, opts RenderOptions) error {
	cols := columns.Compute(opts.Columns)
	items := make([]jsonItem, 0, len(rows))
	for _, l := range rows {
		fields := make(map[string]any, len(cols))
		for _, c := range cols {
			fields[c] = columns.Value(c, l)
		}
		items = append(items, jsonItem{Ticker: l.Record.Ticker, Fields: fields})
	}
	enc := json.NewEncoder(w)
	if opts.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(jsonModel{Columns: cols, Items: items})
}
