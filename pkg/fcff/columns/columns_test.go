package columns

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/fcff/pkg/fcff/types"
)

func listing() types.Listing {
	return types.Listing{
		Record: types.ValuationRecord{
			Ticker:             "D05.SI",
			TradingName:        "DBS",
			Sector:             "Financials",
			WACC:               decimal.RequireFromString("0.0825"),
			FCFF:               decimal.RequireFromString("12345678"),
			SharesOutstanding:  decimal.RequireFromString("2572000"),
			FairValue:          decimal.RequireFromString("48"),
			PercentUndervalued: decimal.RequireFromString("12.5"),
		},
		Liked: true,
	}
}

func TestRenderValue(t *testing.T) {
	l := listing()
	assert.Equal(t, "D05.SI", RenderValue("ticker", l))
	assert.Equal(t, "DBS", RenderValue("name", l))
	assert.Equal(t, "12,345,678.00", RenderValue("fcff", l))
	assert.Equal(t, "0.08", RenderValue("wacc", l))
	assert.Equal(t, "4.80", RenderValue("fcf_ps", l))
	assert.Equal(t, "*", RenderValue("liked", l))
	assert.Equal(t, "", RenderValue("price", l))
	assert.Equal(t, "", RenderValue("nope", l))

	l.Record.SharesOutstanding = decimal.Zero
	assert.Equal(t, "", RenderValue("fcf_ps", l))
	assert.Nil(t, Value("fcf_ps", l))
}

func TestQuoteColumns(t *testing.T) {
	l := listing()
	px := 40.0
	l.Quote = &types.Quote{Price: "40.00", PriceRaw: &px, ChgFmt: "-1.20%", ChgRaw: -1.2, Name: "DBS Group"}
	l.Record.TradingName = ""

	assert.Equal(t, "DBS Group", RenderValue("name", l))
	assert.Equal(t, "40.00", RenderValue("price", l))
	assert.Equal(t, "-1.20%", RenderValue("chg%", l))
	assert.Equal(t, "20.00", RenderValue("upside%", l))
	assert.Equal(t, 40.0, Value("price", l))
}

func TestCompute(t *testing.T) {
	assert.Equal(t, Default, Compute(nil))
	assert.Equal(t, []string{"ticker", "wacc"}, Compute([]string{"ticker", " wacc", "ticker", ""}))
}

func TestNeedsQuotes(t *testing.T) {
	assert.False(t, NeedsQuotes(Default))
	assert.True(t, NeedsQuotes([]string{"ticker", "upside%"}))
}

func TestExpandSets(t *testing.T) {
	cols, err := ExpandSets([]string{"profile", "live"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ticker", "name", "sector", "liked", "price", "chg%", "fair_value", "upside%"}, cols)

	_, err = ExpandSets([]string{"bogus"})
	var use *UnknownSetError
	require.True(t, errors.As(err, &use))
	assert.Equal(t, "bogus", use.Name)
	assert.Contains(t, use.Available, "valuation")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(Sets["valuation"]))
	var uce *UnknownColumnError
	assert.ErrorAs(t, Validate([]string{"ticker", "pe"}), &uce)
	assert.Equal(t, "pe", uce.Name)
}
