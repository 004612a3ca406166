package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hrygo/cutverse/internal/version"
)

func newVersionCmd() *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if full {
				fmt.Fprintln(cmd.OutOrStdout(), version.StringFull())
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "include commit and build time")
	return cmd
}
