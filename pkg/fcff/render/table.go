package render

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/komsit37/fcff/pkg/fcff/columns"
	"github.com/komsit37/fcff/pkg/fcff/types"
)

type TableRenderer struct{}

func NewTableRenderer() *TableRenderer { return &TableRenderer{} }

func (r *TableRenderer) Render(w io.Writer, rows []types.Listing, opts RenderOptions) error {
	cols := columns.Compute(opts.Columns)

	tw := newWriter(w, opts.Color)

	hdr := make(table.Row, len(cols))
	for i, c := range cols {
		hdr[i] = strings.ToUpper(c)
	}
	tw.AppendHeader(hdr)

	// Column configs: wrap text to MaxColWidth (default 40), no truncation
	maxWidth := opts.MaxColWidth
	if maxWidth <= 0 {
		maxWidth = 40
	}
	cfgs := make([]table.ColumnConfig, 0, len(cols))
	for i, c := range cols {
		cfg := table.ColumnConfig{Number: i + 1, WidthMax: maxWidth}
		if columns.Numeric(c) {
			cfg.Align = text.AlignRight
			cfg.AlignHeader = text.AlignRight
		}
		cfgs = append(cfgs, cfg)
	}
	if len(cfgs) > 0 {
		tw.SetColumnConfigs(cfgs)
	}

	for _, l := range rows {
		row := make(table.Row, len(cols))
		for i, c := range cols {
			v := columns.RenderValue(c, l)
			if opts.Color {
				v = colorize(c, v, l)
			}
			row[i] = v
		}
		tw.AppendRow(row)
	}

	tw.Render()
	return nil
}

// colorize paints signed columns green or red.
func colorize(col, v string, l types.Listing) string {
	if v == "" {
		return v
	}
	var sign int
	switch col {
	case "price", "chg%":
		if l.Quote != nil {
			switch {
			case l.Quote.ChgRaw < 0:
				sign = -1
			case l.Quote.ChgRaw > 0:
				sign = 1
			}
		}
	case "upside%":
		if u, ok := columns.Upside(l); ok {
			sign = u.Sign()
		}
	case "undervalued%":
		sign = l.Record.PercentUndervalued.Sign()
	}
	switch sign {
	case -1:
		return text.Colors{text.FgRed}.Sprint(v)
	case 1:
		return text.Colors{text.FgGreen}.Sprint(v)
	}
	return v
}

func newWriter(w io.Writer, color bool) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	if color {
		tw.SetStyle(table.StyleColoredDark)
	} else {
		tw.SetStyle(table.StyleLight)
	}
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false
	return tw
}
