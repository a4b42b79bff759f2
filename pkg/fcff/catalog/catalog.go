// Package catalog is the read-only view over the upstream valuation
// spreadsheets: one valuation row per ticker, a reference table of trading
// names and sectors, and per-ticker financial statements loaded on demand.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/komsit37/fcff/pkg/fcff/source"
	"github.com/komsit37/fcff/pkg/fcff/types"
)

// Options locates the datasets.
type Options struct {
	ValuationPath string
	// ReferencePath is optional; without it names and sectors are empty
	// and SectorName always reports NotFound.
	ReferencePath string
	// DatabaseDir holds one directory per ticker with IS.csv, BS.csv and
	// CF.csv.
	DatabaseDir string
	// Suffixes are exchange suffixes stripped from a ticker before the
	// reference lookup, e.g. ".SI".
	Suffixes []string
	Logger   *slog.Logger
}

// Reference is one row of the reference dataset.
type Reference struct {
	Code        string
	TradingName string
	Sector      string
}

// Catalog is immutable after construction apart from its bundle cache.
type Catalog struct {
	opts    Options
	tickers []string
	records map[string]types.ValuationRecord
	refs    map[string]Reference
	log     *slog.Logger

	mu      sync.Mutex
	bundles map[string]*types.TimeSeriesBundle
}

// New builds a catalog from already parsed rows. Records keep their slice
// order; a repeated ticker keeps its first row.
func New(records []types.ValuationRecord, refs []Reference, opts Options) *Catalog {
	c := &Catalog{
		opts:    opts,
		records: make(map[string]types.ValuationRecord, len(records)),
		refs:    make(map[string]Reference, len(refs)),
		log:     opts.Logger,
		bundles: make(map[string]*types.TimeSeriesBundle),
	}
	if c.log == nil {
		c.log = slog.New(slog.DiscardHandler)
	}
	for _, r := range refs {
		key := strings.ToUpper(strings.TrimSpace(r.Code))
		if key == "" {
			continue
		}
		if _, dup := c.refs[key]; dup {
			continue
		}
		c.refs[key] = r
	}
	for _, r := range records {
		if _, dup := c.records[r.Ticker]; dup {
			c.log.Warn("duplicate ticker in valuation dataset", "ticker", r.Ticker)
			continue
		}
		c.records[r.Ticker] = r
		c.tickers = append(c.tickers, r.Ticker)
	}
	return c
}

// Load reads the valuation and reference datasets named by opts.
func Load(ctx context.Context, opts Options) (*Catalog, error) {
	rows, err := source.Load(ctx, opts.ValuationPath)
	if err != nil {
		return nil, fmt.Errorf("load valuations: %w", err)
	}
	records, err := parseValuations(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.ValuationPath, err)
	}

	var refs []Reference
	if opts.ReferencePath != "" {
		rows, err := source.Load(ctx, opts.ReferencePath)
		if err != nil {
			return nil, fmt.Errorf("load reference: %w", err)
		}
		refs, err = parseReference(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opts.ReferencePath, err)
		}
	}

	c := New(records, refs, opts)
	c.log.Debug("catalog loaded", "tickers", len(c.tickers), "references", len(c.refs))
	return c, nil
}

// OrderedTickers returns the tickers in dataset order.
func (c *Catalog) OrderedTickers() []string {
	return append([]string(nil), c.tickers...)
}

// Len is the number of tickers.
func (c *Catalog) Len() int { return len(c.tickers) }

// Has reports whether ticker is in the valuation dataset.
func (c *Catalog) Has(ticker string) bool {
	_, ok := c.records[ticker]
	return ok
}

// Valuation returns the valuation row for ticker, with name and sector
// filled in when the reference dataset has them.
func (c *Catalog) Valuation(ticker string) (types.ValuationRecord, error) {
	r, ok := c.records[ticker]
	if !ok {
		return types.ValuationRecord{}, &types.NotFoundError{Kind: types.KindTicker, Key: ticker}
	}
	if ref, ok := c.refs[c.normalize(ticker)]; ok {
		r.TradingName = ref.TradingName
		r.Sector = ref.Sector
	}
	return r, nil
}

// Records returns every valuation row in dataset order.
func (c *Catalog) Records() []types.ValuationRecord {
	out := make([]types.ValuationRecord, 0, len(c.tickers))
	for _, t := range c.tickers {
		r, _ := c.Valuation(t)
		out = append(out, r)
	}
	return out
}

// SectorName looks up the trading name and sector by normalized ticker.
func (c *Catalog) SectorName(ticker string) (name, sector string, err error) {
	key := c.normalize(ticker)
	ref, ok := c.refs[key]
	if !ok {
		return "", "", &types.NotFoundError{Kind: types.KindReference, Key: key}
	}
	return ref.TradingName, ref.Sector, nil
}

// normalize strips the first matching exchange suffix.
func (c *Catalog) normalize(ticker string) string {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	for _, suf := range c.opts.Suffixes {
		suf = strings.ToUpper(strings.TrimSpace(suf))
		if suf != "" && strings.HasSuffix(t, suf) {
			return strings.TrimSuffix(t, suf)
		}
	}
	return t
}

// TimeSeries loads the three statements for ticker, caching the result
// for the life of the catalog.
func (c *Catalog) TimeSeries(ctx context.Context, ticker string) (*types.TimeSeriesBundle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.bundles[ticker]; ok {
		return b, nil
	}
	if ticker == "" || strings.ContainsAny(ticker, `/\`) || ticker == "." || ticker == ".." {
		return nil, &types.NotFoundError{Kind: types.KindTimeSeries, Key: ticker}
	}

	dir := filepath.Join(c.opts.DatabaseDir, ticker)
	b := &types.TimeSeriesBundle{Ticker: ticker}
	for _, st := range []struct {
		kind string
		dst  **types.Table
	}{
		{types.IncomeStatement, &b.Income},
		{types.BalanceSheet, &b.Balance},
		{types.CashFlow, &b.CashFlow},
	} {
		path := filepath.Join(dir, st.kind+".csv")
		rows, err := source.CSVSource{}.Load(ctx, path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &types.NotFoundError{Kind: types.KindTimeSeries, Key: ticker}
		}
		if err != nil {
			return nil, err
		}
		*st.dst = parseTable(rows)
	}
	c.bundles[ticker] = b
	c.log.Debug("time series loaded", "ticker", ticker, "periods", len(b.Income.Periods))
	return b, nil
}
