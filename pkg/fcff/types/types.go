package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ValuationRecord is one row of the upstream FCFF valuation dataset.
// TradingName and Sector come from the reference dataset and may be empty.
type ValuationRecord struct {
	Ticker             string
	TradingName        string
	Sector             string
	WACC               decimal.Decimal
	FCFF               decimal.Decimal
	SharesOutstanding  decimal.Decimal
	FairValue          decimal.Decimal
	PercentUndervalued decimal.Decimal
}

// FCFPerShare returns FCFF divided by shares outstanding.
func (r ValuationRecord) FCFPerShare() (decimal.Decimal, error) {
	if r.SharesOutstanding.IsZero() {
		return decimal.Zero, &ZeroSharesError{Ticker: r.Ticker}
	}
	return r.FCFF.Div(r.SharesOutstanding), nil
}

// Point is a single (fiscal period, value) observation.
type Point struct {
	Period string
	Value  decimal.Decimal
}

// Row is one line item of a financial statement table. Values align with
// the owning Table's Periods; missing cells are invalid NullDecimals.
type Row struct {
	Item   string
	Values []decimal.NullDecimal
}

// Table is a financial statement: line items by fiscal period.
type Table struct {
	Periods []string
	Rows    []Row
}

// Row looks up a line item by name, ignoring case and surrounding spaces.
func (t *Table) Row(item string) (Row, bool) {
	if t == nil {
		return Row{}, false
	}
	want := strings.TrimSpace(item)
	for _, r := range t.Rows {
		if strings.EqualFold(strings.TrimSpace(r.Item), want) {
			return r, true
		}
	}
	return Row{}, false
}

// Series returns the non-null points of a line item in period order.
func (t *Table) Series(item string) ([]Point, bool) {
	r, ok := t.Row(item)
	if !ok {
		return nil, false
	}
	pts := make([]Point, 0, len(r.Values))
	for i, v := range r.Values {
		if !v.Valid || i >= len(t.Periods) {
			continue
		}
		pts = append(pts, Point{Period: t.Periods[i], Value: v.Decimal})
	}
	return pts, true
}

// Statement kinds stored per ticker.
const (
	IncomeStatement = "IS"
	BalanceSheet    = "BS"
	CashFlow        = "CF"
)

// Line items consumed by the series view.
const (
	ItemRevenue         = "Revenue"
	ItemOperatingIncome = "Operating Income"
)

// TimeSeriesBundle holds the three statements loaded for one ticker.
type TimeSeriesBundle struct {
	Ticker   string
	Income   *Table
	Balance  *Table
	CashFlow *Table
}

// Revenue returns the income statement's Revenue series.
func (b *TimeSeriesBundle) Revenue() ([]Point, error) {
	return b.incomeSeries(ItemRevenue)
}

// OperatingIncome returns the income statement's Operating Income series.
func (b *TimeSeriesBundle) OperatingIncome() ([]Point, error) {
	return b.incomeSeries(ItemOperatingIncome)
}

func (b *TimeSeriesBundle) incomeSeries(item string) ([]Point, error) {
	pts, ok := b.Income.Series(item)
	if !ok {
		return nil, &NotFoundError{Kind: KindLineItem, Key: b.Ticker + "/" + item}
	}
	return pts, nil
}

// Quote contains formatted and raw live market values for rendering.
type Quote struct {
	Price    string
	PriceRaw *float64
	ChgFmt   string
	ChgRaw   float64
	Name     string
}

// Upside returns the percentage by which fair value exceeds the live price.
func (q Quote) Upside(fair decimal.Decimal) (decimal.Decimal, bool) {
	if q.PriceRaw == nil || *q.PriceRaw == 0 {
		return decimal.Zero, false
	}
	price := decimal.NewFromFloat(*q.PriceRaw)
	return fair.Sub(price).Div(price).Mul(decimal.NewFromInt(100)), true
}

// Listing is one catalog row prepared for rendering.
type Listing struct {
	Record ValuationRecord
	Liked  bool
	Quote  *Quote
}

// NormalizeTicker trims a user supplied ticker and rejects empty or
// whitespace-bearing values.
func NormalizeTicker(s string) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" || strings.ContainsAny(t, " \t\r\n") {
		return "", &InvalidTickerError{Value: s}
	}
	return t, nil
}

// Field is one labelled value of the info panel.
type Field struct {
	Label string
	Value string
}

// Series is a named line-item series.
type Series struct {
	Name   string
	Points []Point
}
