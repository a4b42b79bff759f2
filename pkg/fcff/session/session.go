// Package session ties the catalog, the navigation cursor and the
// watchlist together for interactive front ends.
package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/komsit37/fcff/pkg/fcff/columns"
	"github.com/komsit37/fcff/pkg/fcff/enrich"
	"github.com/komsit37/fcff/pkg/fcff/types"
	"github.com/komsit37/fcff/pkg/fcff/view"
	"github.com/komsit37/fcff/pkg/fcff/watchlist"
)

// Catalog is the read side of catalog.Catalog.
type Catalog interface {
	Valuation(ticker string) (types.ValuationRecord, error)
	SectorName(ticker string) (name, sector string, err error)
	TimeSeries(ctx context.Context, ticker string) (*types.TimeSeriesBundle, error)
}

// Session is not safe for concurrent use.
type Session struct {
	cat    Catalog
	view   *view.View
	store  watchlist.Store
	quotes enrich.QuoteService
	log    *slog.Logger
}

type Option func(*Session)

// WithQuotes adds live price and upside to snapshots.
func WithQuotes(q enrich.QuoteService) Option { return func(s *Session) { s.quotes = q } }

func WithLogger(l *slog.Logger) Option { return func(s *Session) { s.log = l } }

func New(cat Catalog, v *view.View, store watchlist.Store, opts ...Option) *Session {
	s := &Session{cat: cat, view: v, store: store}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	return s
}

// Snapshot is everything the main screen shows for the current ticker.
type Snapshot struct {
	Index  int
	Len    int
	Record types.ValuationRecord
	Info   []types.Field
	Series []types.Series
	// SeriesErr is set when the statements could not be loaded; the rest
	// of the snapshot is still valid.
	SeriesErr error
	Liked     bool
	Quote     *types.Quote
}

// Current builds the snapshot of the ticker under the cursor. On error the
// returned snapshot still names the cursor's ticker and position, with
// Liked false and whatever else could be read.
func (s *Session) Current(ctx context.Context) (Snapshot, error) {
	ticker := s.view.Current()
	snap := Snapshot{Index: s.view.Index(), Len: s.view.Len(), Record: types.ValuationRecord{Ticker: ticker}}
	rec, err := s.cat.Valuation(ticker)
	if err != nil {
		return snap, err
	}
	snap.Record = rec
	liked, err := s.store.Contains(ctx, ticker)
	if err != nil {
		snap.Info = s.info(rec, nil)
		return snap, err
	}
	snap.Liked = liked

	if s.quotes != nil {
		q, err := s.quotes.Get(ctx, ticker)
		if err != nil {
			s.log.Warn("quote lookup failed", "ticker", ticker, "error", err)
		} else {
			snap.Quote = &q
		}
	}
	snap.Info = s.info(rec, snap.Quote)

	bundle, err := s.cat.TimeSeries(ctx, ticker)
	if err != nil {
		snap.SeriesErr = err
		return snap, nil
	}
	for _, it := range []struct {
		name string
		get  func() ([]types.Point, error)
	}{
		{types.ItemRevenue, bundle.Revenue},
		{types.ItemOperatingIncome, bundle.OperatingIncome},
	} {
		pts, err := it.get()
		if err != nil {
			s.log.Debug("series missing", "ticker", ticker, "item", it.name)
			continue
		}
		snap.Series = append(snap.Series, types.Series{Name: it.name, Points: pts})
	}
	return snap, nil
}

// info lists the labelled values shown next to the chart, in display order.
func (s *Session) info(rec types.ValuationRecord, q *types.Quote) []types.Field {
	name, sector, err := s.cat.SectorName(rec.Ticker)
	if err != nil {
		s.log.Debug("no reference data", "ticker", rec.Ticker, "error", err)
		name, sector = "-", "-"
	}
	fcf := "n/a"
	if v, err := rec.FCFPerShare(); err == nil {
		fcf = columns.FormatNumber(v)
	}
	fields := []types.Field{
		{Label: "Name", Value: name},
		{Label: "Sector", Value: sector},
		{Label: "WACC", Value: columns.FormatNumber(rec.WACC)},
		{Label: "FCF", Value: fcf},
		{Label: "Fair value", Value: columns.FormatNumber(rec.FairValue)},
		{Label: "Percentage undervalued", Value: columns.FormatNumber(rec.PercentUndervalued)},
	}
	return append(fields, QuoteFields(rec, q)...)
}

// QuoteFields are the info rows derived from a live quote.
func QuoteFields(rec types.ValuationRecord, q *types.Quote) []types.Field {
	if q == nil {
		return nil
	}
	fields := []types.Field{{Label: "Price", Value: q.Price}}
	if u, ok := q.Upside(rec.FairValue); ok {
		fields = append(fields, types.Field{Label: "Upside", Value: columns.FormatNumber(u)})
	}
	return fields
}

func (s *Session) Ticker() string { return s.view.Current() }

func (s *Session) Next() error { return s.view.Next() }
func (s *Session) Prev() error { return s.view.Prev() }

// JumpTo moves to ticker; the cursor is unchanged when it is not listed.
func (s *Session) JumpTo(ticker string) error { return s.view.JumpTo(ticker) }

// ToggleLike flips watchlist membership of the current ticker.
func (s *Session) ToggleLike(ctx context.Context) (bool, error) {
	return watchlist.Toggle(ctx, s.store, s.view.Current())
}

// Entry is one watchlist row. Index is the ticker's position in the
// browse order, or -1 when the catalog no longer lists it.
type Entry struct {
	Ticker string
	Index  int
}

// Watchlist returns the persisted entries in file order.
func (s *Session) Watchlist(ctx context.Context) ([]Entry, error) {
	tickers, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(tickers))
	for _, t := range tickers {
		i, ok := s.view.IndexOf(t)
		if !ok {
			i = -1
		}
		out = append(out, Entry{Ticker: t, Index: i})
	}
	return out, nil
}

// ViewEntry moves the cursor to the entry's ticker.
func (s *Session) ViewEntry(e Entry) error { return s.view.JumpTo(e.Ticker) }

// RemoveEntry deletes the entry from the watchlist.
func (s *Session) RemoveEntry(ctx context.Context, e Entry) error {
	return s.store.Remove(ctx, e.Ticker)
}

// Search jumps to a full ticker typed by the user.
func (s *Session) Search(query string) error {
	t, err := types.NormalizeTicker(query)
	if err != nil {
		return err
	}
	return s.view.JumpTo(t)
}

// UserMessage maps an error to the status line text shown to the user.
func UserMessage(err error) string {
	var nf *types.NotFoundError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &nf) && nf.Kind == types.KindTicker:
		return "Sorry, the ticker " + nf.Key + " was not found"
	case errors.As(err, &nf) && nf.Kind == types.KindTimeSeries:
		return "No financial statements for " + nf.Key
	case errors.Is(err, types.ErrOutOfRange):
		return "No more tickers in that direction"
	case errors.Is(err, types.ErrInvalidTicker):
		return "Enter a full ticker, e.g. D05.SI"
	case errors.Is(err, types.ErrIO):
		return "Watchlist could not be saved: " + err.Error()
	}
	return err.Error()
}
