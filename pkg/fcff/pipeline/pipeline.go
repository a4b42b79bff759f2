package pipeline

import (
	"context"
	"io"
	"log/slog"

	"github.com/komsit37/fcff/pkg/fcff/columns"
	"github.com/komsit37/fcff/pkg/fcff/enrich"
	"github.com/komsit37/fcff/pkg/fcff/filter"
	"github.com/komsit37/fcff/pkg/fcff/render"
	"github.com/komsit37/fcff/pkg/fcff/types"
	"github.com/komsit37/fcff/pkg/fcff/watchlist"
)

// Catalog is the part of catalog.Catalog the runner reads.
type Catalog interface {
	Records() []types.ValuationRecord
}

type Runner struct {
	Catalog   Catalog
	Watchlist watchlist.Store
	// Quotes is optional; quote columns render empty without it.
	Quotes   enrich.QuoteService
	Renderer render.Renderer
	Writer   io.Writer
	Logger   *slog.Logger
}

type ExecuteOptions struct {
	Columns []string
	Query   filter.Query
	// WatchlistOnly keeps only liked tickers, in catalog order.
	WatchlistOnly bool
	Color         bool
	PrettyJSON    bool
	MaxColWidth   int
	// Concurrency bounds in-flight quote lookups.
	Concurrency int
}

func (r *Runner) Execute(ctx context.Context, opts ExecuteOptions) error {
	cols := columns.Compute(opts.Columns)
	if err := columns.Validate(cols); err != nil {
		return err
	}
	log := r.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	liked := map[string]struct{}{}
	if r.Watchlist != nil {
		tickers, err := r.Watchlist.List(ctx)
		if err != nil {
			return err
		}
		for _, t := range tickers {
			liked[t] = struct{}{}
		}
	}

	rows := make([]types.Listing, 0)
	for _, rec := range r.Catalog.Records() {
		if !opts.Query.Match(rec) {
			continue
		}
		_, isLiked := liked[rec.Ticker]
		if opts.WatchlistOnly && !isLiked {
			continue
		}
		rows = append(rows, types.Listing{Record: rec, Liked: isLiked})
	}

	if r.Quotes != nil && columns.NeedsQuotes(cols) && len(rows) > 0 {
		syms := make([]string, len(rows))
		for i, l := range rows {
			syms[i] = l.Record.Ticker
		}
		quotes := enrich.Prefetch(ctx, r.Quotes, syms, opts.Concurrency, log)
		for i := range rows {
			if q, ok := quotes[rows[i].Record.Ticker]; ok {
				rows[i].Quote = &q
			}
		}
		log.Debug("quotes fetched", "requested", len(syms), "ok", len(quotes))
	}

	return r.Renderer.Render(r.Writer, rows, render.RenderOptions{
		Columns:     cols,
		Color:       opts.Color,
		PrettyJSON:  opts.PrettyJSON,
		MaxColWidth: opts.MaxColWidth,
	})
}
