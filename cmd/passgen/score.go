package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/localpass/passgen/internal/model"
)

func newScoreCmd(a *app) *cobra.Command {
	var speed int

	cmd := &cobra.Command{
		Use:   "score [password]",
		Short: "Rate the strength of a password",
		Long:  "Rate the strength of a password. Without an argument the password is read from standard input.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("reading password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			result, err := a.generator.Score(model.ScoreRequest{Password: password, CrackSpeed: &speed})
			if err != nil {
				return err
			}

			printStrength(cmd.OutOrStdout(), &result)
			return nil
		},
	}

	cmd.Flags().IntVar(&speed, "speed", int(model.OfflineSlowHashing), "attacker speed profile used for the crack time (0-3)")

	return cmd
}
