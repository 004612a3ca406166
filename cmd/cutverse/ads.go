package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hrygo/cutverse/plugin/ads"
	"github.com/hrygo/cutverse/store"
)

func newAdsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ads",
		Short: "Inspect the ad impression counter",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "click",
			Short: "Record a generate click",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withStore(cmd, func(st *store.Store) error {
					d, err := ads.NewCounter(st, nil).Click(cmd.Context())
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "count=%d show_ad=%t url=%s\n", d.NewCount, d.ShouldShowAd, d.AdURL)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the counter",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withStore(cmd, func(st *store.Store) error {
					s, err := ads.NewCounter(st, nil).Status(cmd.Context())
					if err != nil {
						return err
					}
					reset := time.UnixMilli(s.LastReset).Format(time.RFC3339)
					fmt.Fprintf(cmd.OutOrStdout(), "count=%d last_reset=%s\n", s.ClickCount, reset)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Reset the counter",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withStore(cmd, func(st *store.Store) error {
					return ads.NewCounter(st, nil).Reset(cmd.Context())
				})
			},
		},
	)
	return cmd
}
