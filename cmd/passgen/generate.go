package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/localpass/passgen/internal/model"
)

var errExhausted = errors.New("no password satisfying the requirements was found; try a longer length or fewer required classes")

type generateOptions struct {
	save  bool
	quiet bool
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a password",
		Long: `Generate a password from the stored preferences of the selected profile.
Flags override individual preferences; with --save the result is stored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := requestFromFlags(cmd.Flags())

			var resp model.GenerateResponse
			if opts.save {
				updated, err := a.settings.Update(cmd.Context(), a.profile, req)
				if err != nil {
					return err
				}
				resp = updated.Result
			} else {
				var err error
				resp, err = a.generator.GenerateWithSettings(req.Apply(a.settings.Current(cmd.Context(), a.profile)))
				if err != nil {
					return err
				}
			}

			if resp.Exhausted {
				return errExhausted
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, resp.Password)
			if !opts.quiet {
				printStrength(out, resp.Strength)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntP("length", "l", model.DefaultLength, "password length")
	flags.StringP("symbols", "s", model.DefaultAllowedSymbols, "symbol characters to draw from")
	flags.Bool("lower", true, "include lowercase letters")
	flags.Bool("upper", true, "include uppercase letters")
	flags.Bool("digits", true, "include digits")
	flags.Bool("special", true, "include symbols")
	flags.Bool("require-lower", true, "require at least one lowercase letter")
	flags.Bool("require-upper", true, "require at least one uppercase letter")
	flags.Bool("require-digits", true, "require at least one digit")
	flags.Bool("require-special", true, "require at least one symbol")
	flags.Int("speed", int(model.OfflineSlowHashing), "attacker speed profile used for the crack time (0-3)")
	flags.BoolVar(&opts.save, "save", false, "store the resulting preferences for the profile")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "print only the password")

	return cmd
}

// requestFromFlags builds a request holding only the flags set on the command line.
func requestFromFlags(flags *pflag.FlagSet) model.GenerateRequest {
	var req model.GenerateRequest

	if flags.Changed("length") {
		v, _ := flags.GetInt("length")
		req.Length = &v
	}
	if flags.Changed("symbols") {
		v, _ := flags.GetString("symbols")
		req.AllowedSymbols = &v
	}
	if flags.Changed("speed") {
		v, _ := flags.GetInt("speed")
		req.CrackSpeed = &v
	}

	req.IncludeLowercase = changedBool(flags, "lower")
	req.IncludeUppercase = changedBool(flags, "upper")
	req.IncludeDigits = changedBool(flags, "digits")
	req.IncludeSymbols = changedBool(flags, "special")
	req.RequireLowercase = changedBool(flags, "require-lower")
	req.RequireUppercase = changedBool(flags, "require-upper")
	req.RequireDigits = changedBool(flags, "require-digits")
	req.RequireSymbols = changedBool(flags, "require-special")

	return req
}

func changedBool(flags *pflag.FlagSet, name string) *bool {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetBool(name)
	return &v
}

func printStrength(w io.Writer, result *model.StrengthResult) {
	if result == nil {
		fmt.Fprintln(w, "Strength:   unavailable")
		return
	}

	fmt.Fprintf(w, "Strength:   %s (%d/4)\n", result.Label, result.Score)
	fmt.Fprintf(w, "Crack time: %s\n", result.CrackTimeDisplay)
	if result.Warning != "" {
		fmt.Fprintf(w, "Warning:    %s\n", result.Warning)
	}
	for _, s := range result.Suggestions {
		fmt.Fprintf(w, "  - %s\n", s)
	}
}
