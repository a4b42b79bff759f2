package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/komsit37/fcff/pkg/fcff/types"
)

// Valuation dataset headers.
const (
	colWACC        = "wacc"
	colFCFF        = "fcff"
	colShares      = "shares outstanding"
	colFairValue   = "fair value"
	colUndervalued = "percentage undervalued"
)

// Reference dataset headers.
const (
	colTradingCode = "trading code"
	colTradingName = "trading name"
	colSector      = "sector"
)

func headerKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		k := headerKey(h)
		if _, ok := idx[k]; !ok {
			idx[k] = i
		}
	}
	return idx
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseNumber accepts "1,234.5", "(12)", "12%" and treats blanks, "-" and
// "nan" as missing.
func parseNumber(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "-", "nan", "n/a", "na", "none":
		return decimal.NullDecimal{}, nil
	}
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	if neg {
		d = d.Neg()
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

// parseValuations reads the FCFF sheet: ticker in the first column, metric
// columns located by header name. Unparseable cells read as zero.
func parseValuations(rows [][]string) ([]types.ValuationRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("valuation dataset is empty")
	}
	idx := headerIndex(rows[0])
	for _, want := range []string{colWACC, colFCFF, colShares, colFairValue, colUndervalued} {
		if _, ok := idx[want]; !ok {
			return nil, fmt.Errorf("valuation dataset: missing column %q", want)
		}
	}
	num := func(row []string, col string) decimal.Decimal {
		v, err := parseNumber(cell(row, idx[col]))
		if err != nil || !v.Valid {
			return decimal.Zero
		}
		return v.Decimal
	}

	out := make([]types.ValuationRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		ticker := cell(row, 0)
		if ticker == "" {
			continue
		}
		out = append(out, types.ValuationRecord{
			Ticker:             ticker,
			WACC:               num(row, colWACC),
			FCFF:               num(row, colFCFF),
			SharesOutstanding:  num(row, colShares),
			FairValue:          num(row, colFairValue),
			PercentUndervalued: num(row, colUndervalued),
		})
	}
	return out, nil
}

// parseReference reads the exchange listing keyed by trading code. Without
// a "Trading Code" header the second column is the key.
func parseReference(rows [][]string) ([]Reference, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	idx := headerIndex(rows[0])
	key, ok := idx[colTradingCode]
	if !ok {
		key = 1
	}
	name, ok := idx[colTradingName]
	if !ok {
		return nil, fmt.Errorf("reference dataset: missing column %q", colTradingName)
	}
	sector, ok := idx[colSector]
	if !ok {
		return nil, fmt.Errorf("reference dataset: missing column %q", colSector)
	}

	out := make([]Reference, 0, len(rows)-1)
	for _, row := range rows[1:] {
		code := cell(row, key)
		if code == "" {
			continue
		}
		out = append(out, Reference{Code: code, TradingName: cell(row, name), Sector: cell(row, sector)})
	}
	return out, nil
}

// parseTable reads a statement CSV: periods across the header, line items
// down the first column.
func parseTable(rows [][]string) *types.Table {
	t := &types.Table{}
	if len(rows) == 0 {
		return t
	}
	for _, p := range rows[0][min(1, len(rows[0])):] {
		t.Periods = append(t.Periods, strings.TrimSpace(p))
	}
	for _, row := range rows[1:] {
		item := cell(row, 0)
		if item == "" {
			continue
		}
		vals := make([]decimal.NullDecimal, len(t.Periods))
		for i := range t.Periods {
			v, err := parseNumber(cell(row, i+1))
			if err == nil {
				vals[i] = v
			}
		}
		t.Rows = append(t.Rows, types.Row{Item: item, Values: vals})
	}
	return t
}
