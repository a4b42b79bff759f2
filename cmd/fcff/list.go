package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/komsit37/fcff/pkg/fcff/columns"
	"github.com/komsit37/fcff/pkg/fcff/filter"
	"github.com/komsit37/fcff/pkg/fcff/pipeline"
	"github.com/komsit37/fcff/pkg/fcff/render"
)

func newListCmd() *cobra.Command {
	var (
		filterExpr string
		cols       []string
		sets       []string
		format     string
		pretty     bool
		likedOnly  bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Render the valuation catalog as a table",
		Long: `Render the valuation catalog.

Filter expressions: comma list, glob, /regex/ or case-insensitive
substring, optionally scoped with ticker:, name: or sector:.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()
			ctx := cmd.Context()

			q, err := filter.ParseQuery(filterExpr)
			if err != nil {
				return err
			}
			if len(sets) > 0 {
				expanded, err := columns.ExpandSets(sets)
				if err != nil {
					return err
				}
				cols = append(expanded, cols...)
			}
			r, ok := render.ForFormat(format)
			if !ok {
				return fmt.Errorf("unknown format %q (want table, json or syms)", format)
			}

			cat, err := a.catalog(ctx)
			if err != nil {
				return err
			}
			store, err := a.watchlist()
			if err != nil {
				return err
			}
			defer store.Close()

			runner := pipeline.Runner{
				Catalog:   cat,
				Watchlist: store,
				Quotes:    a.quotes(),
				Renderer:  r,
				Writer:    cmd.OutOrStdout(),
				Logger:    a.log,
			}
			return runner.Execute(ctx, pipeline.ExecuteOptions{
				Columns:       cols,
				Query:         q,
				WatchlistOnly: likedOnly,
				Color:         a.cfg.Display.Color,
				PrettyJSON:    pretty,
				MaxColWidth:   colWidth(a.cfg.Display.MaxColWidth, terminalWidth(os.Stdout)),
				Concurrency:   a.cfg.Quotes.Concurrency,
			})
		},
	}
	f := cmd.Flags()
	f.StringVarP(&filterExpr, "filter", "f", "", "filter rows, e.g. sector:Financials")
	f.StringSliceVarP(&cols, "columns", "c", nil, "columns to show")
	f.StringSliceVarP(&sets, "sets", "s", nil, "column sets: valuation, live, profile")
	f.StringVarP(&format, "format", "o", "table", "table, json or syms")
	f.BoolVar(&pretty, "pretty", false, "indent JSON output")
	f.BoolVarP(&likedOnly, "liked", "l", false, "only tickers in the watchlist")
	return cmd
}
