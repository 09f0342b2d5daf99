package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localpass/passgen/internal/crypto"
)

func newTokenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Issue an API token for the profile",
		Long:  "Issue a JWT that grants access to the settings endpoints of the selected profile.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := crypto.GenerateToken(a.profile, a.cfg.JWTSecret, a.cfg.JWTExpiry)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}
