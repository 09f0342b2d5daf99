package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newPrefsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or reset stored preferences",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the preferences of the profile as JSON",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := json.MarshalIndent(a.settings.Current(cmd.Context(), a.profile), "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Restore the default preferences for the profile",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := a.settings.Reset(cmd.Context(), a.profile); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "preferences for %q reset to defaults\n", a.profile)
				return nil
			},
		},
	)

	return cmd
}
