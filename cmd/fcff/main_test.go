package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/fcff/pkg/fcff/types"
)

const valuationsCSV = `Ticker,WACC,FCFF,Shares outstanding,Fair value,Percentage undervalued
D05.SI,0.08,480,100,48,20
C6L.SI,0.07,100,50,6,-3
`

const referenceCSV = `Company,Trading Code,Trading Name,Sector
DBS Group,D05,DBS,Financials
Singapore Airlines,C6L,SIA,Industrials
`

// setup writes a data directory and a config file pointing at it.
func setup(t *testing.T) (cfgPath, dir string) {
	t.Helper()
	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "valuations.csv"), []byte(valuationsCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reference.csv"), []byte(referenceCSV), 0o644))
	cfgPath = filepath.Join(dir, "fcff.yaml")
	cfg := "data_dir: " + dir + "\nvaluation_path: valuations.csv\nreference_path: reference.csv\n" +
		"display:\n  color: false\nlogging:\n  level: error\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return cfgPath, dir
}

func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestWatchlistCommands(t *testing.T) {
	cfg, dir := setup(t)

	out, err := run(t, cfg, "watchlist", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Watchlist is currently empty")

	_, err = run(t, cfg, "watchlist", "add", "D05.SI", "C6L.SI", "D05.SI")
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "Cache", "watchlist.txt"))
	require.NoError(t, err)
	assert.Equal(t, "D05.SI\nC6L.SI\n", string(data))

	out, err = run(t, cfg, "watchlist", "contains", "C6L.SI")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	_, err = run(t, cfg, "wl", "remove", "C6L.SI")
	require.NoError(t, err)
	out, err = run(t, cfg, "watchlist", "list")
	require.NoError(t, err)
	assert.Equal(t, "D05.SI\n", out)
}

func TestWatchlistExportImport(t *testing.T) {
	cfg, dir := setup(t)
	_, err := run(t, cfg, "watchlist", "add", "D05.SI")
	require.NoError(t, err)

	exported := filepath.Join(dir, "banks.yaml")
	_, err = run(t, cfg, "watchlist", "export", "--name", "banks", "-o", exported)
	require.NoError(t, err)

	other, _ := setup(t)
	_, err = run(t, other, "watchlist", "import", exported, "--group", "nomatch")
	require.NoError(t, err)
	out, err := run(t, other, "watchlist", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "empty")

	_, err = run(t, other, "watchlist", "import", exported, "--group", "bank*")
	require.NoError(t, err)
	out, err = run(t, other, "watchlist", "list")
	require.NoError(t, err)
	assert.Equal(t, "D05.SI\n", out)
}

func TestWatchlistImportRejectsBadTicker(t *testing.T) {
	cfg, dir := setup(t)
	doc := filepath.Join(dir, "mixed.yaml")
	require.NoError(t, os.WriteFile(doc, []byte("watchlist:\n  - sym: D05.SI\n  - sym: \"A B\"\n"), 0o644))

	_, err := run(t, cfg, "watchlist", "import", doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidTicker)

	out, err := run(t, cfg, "watchlist", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "empty")
}

func TestListAndShow(t *testing.T) {
	cfg, _ := setup(t)

	out, err := run(t, cfg, "list", "--format", "syms", "--filter", "sector:fin")
	require.NoError(t, err)
	assert.Equal(t, "D05.SI\n", out)

	out, err = run(t, cfg, "list", "--sets", "profile")
	require.NoError(t, err)
	assert.Contains(t, out, "SIA")
	assert.Less(t, strings.Index(out, "D05.SI"), strings.Index(out, "C6L.SI"))

	out, err = run(t, cfg, "show", "D05.SI")
	require.NoError(t, err)
	assert.Contains(t, out, "DBS")
	assert.Contains(t, out, "Percentage undervalued")
	assert.Contains(t, out, "No financial statements")

	_, err = run(t, cfg, "show", "Z")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	cfg, _ := setup(t)
	out, err := run(t, cfg, "version")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}
