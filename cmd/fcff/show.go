package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/komsit37/fcff/pkg/fcff/render"
	"github.com/komsit37/fcff/pkg/fcff/session"
	"github.com/komsit37/fcff/pkg/fcff/types"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show TICKER",
		Short: "Print the valuation figures and statement series of one ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()
			ctx := cmd.Context()

			var opts []session.Option
			if q := a.quotes(); q != nil {
				opts = append(opts, session.WithQuotes(q))
			}
			sess, store, err := a.session(ctx, opts...)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := sess.Search(args[0]); err != nil {
				return err
			}
			snap, err := sess.Current(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			info := append([]types.Field(nil), snap.Info...)
			if snap.Liked {
				info = append(info, types.Field{Label: "Watchlist", Value: "yes"})
			}
			render.Info(out, snap.Record.Ticker, info, a.cfg.Display.Color)
			fmt.Fprintln(out)
			if snap.SeriesErr != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), session.UserMessage(snap.SeriesErr))
				return nil
			}
			render.Series(out, snap.Series, a.cfg.Display.Color)
			return nil
		},
	}
}
