package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/fcff/pkg/fcff/types"
)

func TestParse(t *testing.T) {
	cases := []struct {
		expr  string
		in    string
		match bool
	}{
		{"", "anything", true},
		{"D05.SI,O39.SI", "O39.SI", true},
		{"D05.SI,O39.SI", "O39", false},
		{"C*", "C6L.SI", true},
		{"C*", "D05.SI", false},
		{`/^[A-Z]\d{2}\.SI$/`, "D05.SI", true},
		{`/^[A-Z]\d{2}\.SI$/`, "A17U.SI", false},
		{"bank", "OCBC Bank", true},
	}
	for _, c := range cases {
		f, err := Parse(c.expr)
		require.NoError(t, err, c.expr)
		assert.Equal(t, c.match, f.Match(c.in), "%q on %q", c.expr, c.in)
	}

	_, err := Parse("/[/")
	assert.Error(t, err)
}

func TestQuery(t *testing.T) {
	dbs := types.ValuationRecord{Ticker: "D05.SI", TradingName: "DBS", Sector: "Financials"}
	sia := types.ValuationRecord{Ticker: "C6L.SI", TradingName: "SIA", Sector: "Industrials"}

	q, err := ParseQuery("sector:financ")
	require.NoError(t, err)
	assert.Equal(t, FieldSector, q.Field)
	assert.True(t, q.Match(dbs))
	assert.False(t, q.Match(sia))

	q, err = ParseQuery("Name:S*")
	require.NoError(t, err)
	assert.False(t, q.Match(dbs))
	assert.True(t, q.Match(sia))

	// no field prefix: any field may match
	q, err = ParseQuery("c6l")
	require.NoError(t, err)
	assert.Empty(t, q.Field)
	assert.True(t, q.Match(sia))

	// unknown prefixes are part of the expression
	q, err = ParseQuery("foo:bar")
	require.NoError(t, err)
	assert.Empty(t, q.Field)

	assert.True(t, Query{}.Match(dbs))
}
