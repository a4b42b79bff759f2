package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/komsit37/fcff/pkg/fcff/filter"
	"github.com/komsit37/fcff/pkg/fcff/types"
	"github.com/komsit37/fcff/pkg/fcff/watchlist"
)

func newWatchlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "watchlist",
		Aliases: []string{"wl"},
		Short:   "Manage the watchlist",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print watchlist tickers in saved order",
			Args:  cobra.NoArgs,
			RunE: withStore(func(cmd *cobra.Command, s watchlist.Store, _ []string) error {
				tickers, err := s.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(tickers) == 0 {
					fmt.Fprintln(cmd.ErrOrStderr(), "Watchlist is currently empty")
					return nil
				}
				for _, t := range tickers {
					fmt.Fprintln(cmd.OutOrStdout(), t)
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "add TICKER...",
			Short: "Add tickers",
			Args:  cobra.MinimumNArgs(1),
			RunE: withStore(func(cmd *cobra.Command, s watchlist.Store, args []string) error {
				for _, a := range args {
					if err := s.Add(cmd.Context(), a); err != nil {
						return err
					}
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "remove TICKER...",
			Short: "Remove tickers",
			Args:  cobra.MinimumNArgs(1),
			RunE: withStore(func(cmd *cobra.Command, s watchlist.Store, args []string) error {
				for _, a := range args {
					if err := s.Remove(cmd.Context(), a); err != nil {
						return err
					}
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "contains TICKER",
			Short: "Print true when TICKER is in the watchlist",
			Args:  cobra.ExactArgs(1),
			RunE: withStore(func(cmd *cobra.Command, s watchlist.Store, args []string) error {
				t, err := types.NormalizeTicker(args[0])
				if err != nil {
					return err
				}
				ok, err := s.Contains(cmd.Context(), t)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ok)
				return nil
			}),
		},
		newExportCmd(),
		newImportCmd(),
	)
	return cmd
}

func newExportCmd() *cobra.Command {
	var name, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the watchlist as a YAML document",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, s watchlist.Store, _ []string) error {
			tickers, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				return watchlist.ExportYAML(cmd.OutOrStdout(), name, tickers)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := watchlist.ExportYAML(f, name, tickers); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		}),
	}
	cmd.Flags().StringVar(&name, "name", "", "nest tickers under a named group")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newImportCmd() *cobra.Command {
	var group string
	cmd := &cobra.Command{
		Use:   "import FILE|DIR",
		Short: "Add every ticker from YAML watchlists",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, s watchlist.Store, args []string) error {
			lists, err := watchlist.LoadYAML(args[0])
			if err != nil {
				return err
			}
			filt, err := filter.Parse(group)
			if err != nil {
				return fmt.Errorf("group filter %q: %w", group, err)
			}
			kept := lists[:0]
			for _, l := range lists {
				if filt.Match(l.Name) {
					kept = append(kept, l)
				}
			}
			// Validate everything first so a bad symbol leaves the watchlist untouched.
			tickers := watchlist.Flatten(kept)
			for i, t := range tickers {
				norm, err := types.NormalizeTicker(t)
				if err != nil {
					return fmt.Errorf("%s: %w", args[0], err)
				}
				tickers[i] = norm
			}
			for _, t := range tickers {
				if err := s.Add(cmd.Context(), t); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "imported %d tickers from %d lists\n", len(tickers), len(kept))
			return nil
		}),
	}
	cmd.Flags().StringVarP(&group, "group", "g", "", "only lists whose name matches this filter")
	return cmd
}

// withStore opens the configured watchlist around fn.
func withStore(fn func(cmd *cobra.Command, s watchlist.Store, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()
		s, err := a.watchlist()
		if err != nil {
			return err
		}
		defer s.Close()
		return fn(cmd, s, args)
	}
}
