package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hrygo/cutverse/store"
)

func newKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the saved API key",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set [key]",
			Short: "Save the API key; reads stdin when no key is given",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				key := ""
				if len(args) == 1 {
					key = args[0]
				} else {
					line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
					if err != nil && line == "" {
						return fmt.Errorf("read key: %w", err)
					}
					key = line
				}
				key = strings.TrimSpace(key)
				if key == "" {
					return fmt.Errorf("API key is empty")
				}
				return withStore(cmd, func(st *store.Store) error {
					if err := st.SetAPIKey(cmd.Context(), key); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "Saved API key "+store.MaskAPIKey(key))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the masked API key",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withStore(cmd, func(st *store.Store) error {
					key, err := st.APIKey(cmd.Context())
					if err != nil {
						return err
					}
					if key == "" {
						fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("No API key saved."))
						return nil
					}
					fmt.Fprintln(cmd.OutOrStdout(), store.MaskAPIKey(key))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove the saved API key",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withStore(cmd, func(st *store.Store) error {
					return st.SetAPIKey(cmd.Context(), "")
				})
			},
		},
	)
	return cmd
}

// withStore runs fn against the configured store.
func withStore(cmd *cobra.Command, fn func(*store.Store) error) error {
	p, err := loadProfile()
	if err != nil {
		return err
	}
	st, err := openStore(cmd.Context(), p)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}
