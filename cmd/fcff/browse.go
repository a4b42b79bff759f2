package main

import (
	"github.com/spf13/cobra"

	"github.com/komsit37/fcff/pkg/fcff/tui"
)

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Page through valuations in a terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The UI owns the terminal, so logs go to a file.
			a, err := loadApp(cmd, true)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			sess, store, err := a.session(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			a.log.Info("browse started", "boundary", a.cfg.Navigation.Boundary, "live", a.cfg.Quotes.Enabled)
			return tui.Run(ctx, sess, tui.Options{
				Quotes: a.quotes(),
				Color:  a.cfg.Display.Color,
				Logger: a.log,
			})
		},
	}
}
