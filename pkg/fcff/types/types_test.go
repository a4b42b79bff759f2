package types

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFCFPerShare(t *testing.T) {
	r := ValuationRecord{
		Ticker:            "D05.SI",
		FCFF:              decimal.NewFromInt(1000),
		SharesOutstanding: decimal.NewFromInt(250),
	}
	got, err := r.FCFPerShare()
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(4)), "got %s", got)
}

func TestFCFPerShareZeroShares(t *testing.T) {
	r := ValuationRecord{Ticker: "Z74.SI", FCFF: decimal.NewFromInt(10)}
	_, err := r.FCFPerShare()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrZeroShares)
	assert.Contains(t, err.Error(), "Z74.SI")
}

func TestTableSeriesSkipsNulls(t *testing.T) {
	tbl := &Table{
		Periods: []string{"2019", "2020", "2021"},
		Rows: []Row{
			{Item: "Revenue", Values: []decimal.NullDecimal{
				{Decimal: decimal.NewFromInt(10), Valid: true},
				{},
				{Decimal: decimal.NewFromInt(12), Valid: true},
			}},
		},
	}
	pts, ok := tbl.Series(" revenue ")
	require.True(t, ok)
	require.Len(t, pts, 2)
	assert.Equal(t, "2019", pts[0].Period)
	assert.Equal(t, "2021", pts[1].Period)

	_, ok = tbl.Series("Net Income")
	assert.False(t, ok)
}

func TestBundleMissingRow(t *testing.T) {
	b := &TimeSeriesBundle{Ticker: "C6L.SI", Income: &Table{}}
	_, err := b.OperatingIncome()
	assert.ErrorIs(t, err, ErrNotFound)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, KindLineItem, nf.Kind)
}

func TestQuoteUpside(t *testing.T) {
	p := 8.0
	q := Quote{PriceRaw: &p}
	up, ok := q.Upside(decimal.NewFromInt(10))
	require.True(t, ok)
	assert.True(t, up.Equal(decimal.NewFromInt(25)), "got %s", up)

	_, ok = Quote{}.Upside(decimal.NewFromInt(10))
	assert.False(t, ok)
}

func TestNormalizeTicker(t *testing.T) {
	got, err := NormalizeTicker("  O39.SI\n")
	require.NoError(t, err)
	assert.Equal(t, "O39.SI", got)

	for _, bad := range []string{"", "   ", "A B"} {
		_, err := NormalizeTicker(bad)
		assert.ErrorIs(t, err, ErrInvalidTicker, "input %q", bad)
	}
}

func TestIOErrorMatchesBoth(t *testing.T) {
	err := &IOError{Op: "write", Path: "/tmp/x", Err: fs.ErrPermission}
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, fs.ErrPermission)
}
