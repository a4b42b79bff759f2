package render

import (
	"io"

	"github.com/komsit37/fcff/pkg/fcff/types"
)

// Renderer renders catalog listings to an output writer.
type Renderer interface {
	Render(w io.Writer, rows []types.Listing, opts RenderOptions) error
}

type RenderOptions struct {
	Columns     []string
	Color       bool
	PrettyJSON  bool
	MaxColWidth int
}

// ForFormat returns the renderer for table, json or syms output.
func ForFormat(format string) (Renderer, bool) {
	switch format {
	case "", "table":
		return NewTableRenderer(), true
	case "json":
		return NewJSONRenderer(), true
	case "syms":
		return NewSymsRenderer(), true
	}
	return nil, false
}
