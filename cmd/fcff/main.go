package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/komsit37/fcff/pkg/fcff/catalog"
	"github.com/komsit37/fcff/pkg/fcff/config"
	"github.com/komsit37/fcff/pkg/fcff/enrich"
	"github.com/komsit37/fcff/pkg/fcff/logging"
	"github.com/komsit37/fcff/pkg/fcff/session"
	"github.com/komsit37/fcff/pkg/fcff/view"
	"github.com/komsit37/fcff/pkg/fcff/watchlist"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fcff",
		Short:         "Browse FCFF valuations and keep a watchlist",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default ./fcff.yaml or ~/.config/fcff/fcff.yaml)")
	pf.String("data-dir", "", "base directory for relative data paths")
	pf.String("valuations", "", "valuation dataset (.xlsx or .csv)")
	pf.String("reference", "", "reference dataset with trading names and sectors")
	pf.String("database", "", "directory of per-ticker statement CSVs")
	pf.String("watchlist", "", "watchlist file")
	pf.String("backend", "", "watchlist backend: text or sqlite")
	pf.String("boundary", "", "navigation at the ends of the list: clamp, wrap or reject")
	pf.Bool("live", false, "fetch live quotes from Yahoo Finance")
	pf.String("log-level", "", "debug, info, warn or error")
	pf.String("log-format", "", "text or json")
	pf.String("log-file", "", "write logs to this file")
	pf.Bool("no-color", false, "disable colors")

	rootCmd.AddCommand(
		newBrowseCmd(),
		newListCmd(),
		newShowCmd(),
		newWatchlistCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			},
		},
	)

	return rootCmd
}

// app holds what every command builds from configuration.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	closeLog func() error
}

// loadApp reads configuration and opens the logger. With toFile set and
// no configured log file, logs go to fcff.log in the data directory.
func loadApp(cmd *cobra.Command, toFile bool) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, err
	}
	file := cfg.Logging.File
	if file == "" && toFile {
		file = filepath.Join(cfg.DataDir, "fcff.log")
	}
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, fmt.Errorf("log dir: %w", err)
		}
	}
	log, closeLog, err := logging.OpenFile(file, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	log.Debug("config loaded", "data_dir", cfg.DataDir, "valuations", cfg.ValuationPath, "watchlist", cfg.Watchlist.Path)
	return &app{cfg: cfg, log: log, closeLog: closeLog}, nil
}

func (a *app) Close() error { return a.closeLog() }

func (a *app) catalog(ctx context.Context) (*catalog.Catalog, error) {
	return catalog.Load(ctx, catalog.Options{
		ValuationPath: a.cfg.ValuationPath,
		ReferencePath: a.cfg.ReferencePath,
		DatabaseDir:   a.cfg.DatabaseDir,
		Suffixes:      a.cfg.TickerSuffixes,
		Logger:        a.log,
	})
}

func (a *app) watchlist() (watchlist.Store, error) {
	return watchlist.Open(watchlist.Options{Backend: a.cfg.Watchlist.Backend, Path: a.cfg.Watchlist.Path})
}

// quotes returns nil when live quotes are disabled.
func (a *app) quotes() enrich.QuoteService {
	q := a.cfg.Quotes
	if !q.Enabled {
		return nil
	}
	return enrich.NewCacheService(enrich.NewYFService(q.Timeout), q.CacheTTL, q.CacheSize)
}

// session wires catalog, cursor and watchlist. The returned store must be
// closed by the caller.
func (a *app) session(ctx context.Context, opts ...session.Option) (*session.Session, watchlist.Store, error) {
	cat, err := a.catalog(ctx)
	if err != nil {
		return nil, nil, err
	}
	policy, err := view.ParsePolicy(a.cfg.Navigation.Boundary)
	if err != nil {
		return nil, nil, err
	}
	v, err := view.New(cat.OrderedTickers(), policy)
	if err != nil {
		return nil, nil, err
	}
	store, err := a.watchlist()
	if err != nil {
		return nil, nil, err
	}
	opts = append([]session.Option{session.WithLogger(a.log)}, opts...)
	return session.New(cat, v, store, opts...), store, nil
}
