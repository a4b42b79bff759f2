package columns

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/komsit37/fcff/pkg/fcff/types"
)

// Resolver converts a listing into a display string for a given column.
type Resolver func(l types.Listing) string

// Registry maps column keys to resolvers.
var Registry = map[string]Resolver{}

// Default is used when no columns or sets are requested.
var Default = []string{"ticker", "name", "sector", "fair_value", "undervalued%", "liked"}

// quoteColumns need a live quote to resolve.
var quoteColumns = map[string]struct{}{"price": {}, "chg%": {}, "upside%": {}}

// numericColumns are right aligned by table renderers.
var numericColumns = map[string]struct{}{
	"wacc": {}, "fcff": {}, "shares": {}, "fcf_ps": {}, "fair_value": {},
	"undervalued%": {}, "price": {}, "chg%": {}, "upside%": {},
}

func init() {
	Registry["ticker"] = func(l types.Listing) string { return l.Record.Ticker }
	// name: prefer reference data; fallback to quote name
	Registry["name"] = func(l types.Listing) string {
		if l.Record.TradingName != "" {
			return l.Record.TradingName
		}
		if l.Quote != nil {
			return l.Quote.Name
		}
		return ""
	}
	Registry["sector"] = func(l types.Listing) string { return l.Record.Sector }
	Registry["wacc"] = func(l types.Listing) string { return FormatNumber(l.Record.WACC) }
	Registry["fcff"] = func(l types.Listing) string { return FormatNumber(l.Record.FCFF) }
	Registry["shares"] = func(l types.Listing) string { return FormatNumber(l.Record.SharesOutstanding) }
	Registry["fcf_ps"] = func(l types.Listing) string {
		v, err := l.Record.FCFPerShare()
		if err != nil {
			return ""
		}
		return FormatNumber(v)
	}
	Registry["fair_value"] = func(l types.Listing) string { return FormatNumber(l.Record.FairValue) }
	Registry["undervalued%"] = func(l types.Listing) string { return FormatNumber(l.Record.PercentUndervalued) }
	Registry["liked"] = func(l types.Listing) string {
		if l.Liked {
			return "*"
		}
		return ""
	}
	Registry["price"] = func(l types.Listing) string {
		if l.Quote == nil {
			return ""
		}
		return l.Quote.Price
	}
	Registry["chg%"] = func(l types.Listing) string {
		if l.Quote == nil {
			return ""
		}
		return l.Quote.ChgFmt
	}
	Registry["upside%"] = func(l types.Listing) string {
		v, ok := Upside(l)
		if !ok {
			return ""
		}
		return FormatNumber(v)
	}
}

// Upside is the live upside of fair value over price, when a quote exists.
func Upside(l types.Listing) (decimal.Decimal, bool) {
	if l.Quote == nil {
		return decimal.Zero, false
	}
	return l.Quote.Upside(l.Record.FairValue)
}

// Compute returns the final column order. Explicit columns are honored
// as given (deduped, first occurrence wins); otherwise Default is used.
func Compute(explicit []string) []string {
	if len(explicit) == 0 {
		return append([]string(nil), Default...)
	}
	seen := map[string]struct{}{}
	out := make([]string, 0, len(explicit))
	for _, k := range explicit {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// NeedsQuotes reports whether any column requires a live quote.
func NeedsQuotes(cols []string) bool {
	for _, c := range cols {
		if _, ok := quoteColumns[c]; ok {
			return true
		}
	}
	return false
}

// Numeric reports whether col holds numbers.
func Numeric(col string) bool {
	_, ok := numericColumns[col]
	return ok
}

// RenderValue calls the resolver for the given column. Unknown columns
// render empty.
func RenderValue(col string, l types.Listing) string {
	if r, ok := Registry[col]; ok {
		return r(l)
	}
	return ""
}

// Value returns the raw value of a column for machine readable output.
func Value(col string, l types.Listing) any {
	switch col {
	case "wacc":
		return l.Record.WACC
	case "fcff":
		return l.Record.FCFF
	case "shares":
		return l.Record.SharesOutstanding
	case "fcf_ps":
		v, err := l.Record.FCFPerShare()
		if err != nil {
			return nil
		}
		return v
	case "fair_value":
		return l.Record.FairValue
	case "undervalued%":
		return l.Record.PercentUndervalued
	case "liked":
		return l.Liked
	case "price":
		if l.Quote == nil || l.Quote.PriceRaw == nil {
			return nil
		}
		return *l.Quote.PriceRaw
	case "chg%":
		if l.Quote == nil {
			return nil
		}
		return l.Quote.ChgRaw
	case "upside%":
		v, ok := Upside(l)
		if !ok {
			return nil
		}
		return v
	default:
		return RenderValue(col, l)
	}
}

// FormatNumber formats a decimal with two places and comma separators.
func FormatNumber(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return humanize.FormatFloat("#,###.##", f)
}
