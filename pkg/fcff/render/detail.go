package render

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/komsit37/fcff/pkg/fcff/columns"
	"github.com/komsit37/fcff/pkg/fcff/types"
)

// Info writes the labelled fields of one ticker as a two column table.
func Info(w io.Writer, title string, fields []types.Field, color bool) {
	tw := newWriter(w, color)
	if title != "" {
		tw.SetTitle(title)
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight},
	})
	for _, f := range fields {
		tw.AppendRow(table.Row{f.Label, f.Value})
	}
	tw.Render()
}

// Series writes one row per series with fiscal periods as columns.
// Periods appear in first-seen order across all series.
func Series(w io.Writer, series []types.Series, color bool) {
	periods := make([]string, 0, 8)
	seen := map[string]struct{}{}
	for _, s := range series {
		for _, p := range s.Points {
			if _, ok := seen[p.Period]; ok {
				continue
			}
			seen[p.Period] = struct{}{}
			periods = append(periods, p.Period)
		}
	}

	tw := newWriter(w, color)
	hdr := make(table.Row, 0, len(periods)+1)
	hdr = append(hdr, "ITEM")
	cfgs := make([]table.ColumnConfig, 0, len(periods))
	for i, p := range periods {
		hdr = append(hdr, p)
		cfgs = append(cfgs, table.ColumnConfig{Number: i + 2, Align: text.AlignRight, AlignHeader: text.AlignRight})
	}
	tw.AppendHeader(hdr)
	tw.SetColumnConfigs(cfgs)

	for _, s := range series {
		byPeriod := make(map[string]string, len(s.Points))
		for _, p := range s.Points {
			byPeriod[p.Period] = columns.FormatNumber(p.Value)
		}
		row := make(table.Row, 0, len(periods)+1)
		row = append(row, s.Name)
		for _, p := range periods {
			row = append(row, byPeriod[p])
		}
		tw.AppendRow(row)
	}
	tw.Render()
}
