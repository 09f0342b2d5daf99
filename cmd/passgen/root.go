package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/localpass/passgen/internal/config"
	"github.com/localpass/passgen/internal/crypto"
	"github.com/localpass/passgen/internal/repository"
	"github.com/localpass/passgen/internal/service"
	"github.com/localpass/passgen/internal/strength"
)

// app holds the services shared by every command.
type app struct {
	cfg       config.Config
	profile   string
	generator *service.GeneratorService
	settings  *service.SettingsService
	closeFn   func()
	logLevel  slog.LevelVar
}

type rootOptions struct {
	profile   string
	prefsFile string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	a := &app{}

	cmd := &cobra.Command{
		Use:          "passgen",
		Short:        "Generate random passwords and rate their strength",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logLevel.Set(slog.LevelWarn)
			if opts.verbose {
				a.logLevel.Set(slog.LevelDebug)
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &a.logLevel})))

			cfg := config.Load()
			if opts.prefsFile != "" {
				cfg.PrefsPath = opts.prefsFile
			}
			a.init(cmd.Context(), cfg, opts.profile)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.profile, "profile", repository.DefaultProfile, "preferences profile to use")
	flags.StringVar(&opts.prefsFile, "prefs-file", "", "preferences file (overrides PREFS_PATH)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newGenerateCmd(a),
		newScoreCmd(a),
		newPrefsCmd(a),
		newServeCmd(a),
		newTokenCmd(a),
	)

	return cmd
}

func (a *app) init(ctx context.Context, cfg config.Config, profile string) {
	repo, closeFn := openPreferences(ctx, cfg)
	gen := service.NewGeneratorService(crypto.NewGenerator(), strength.NewScorer(strength.NewZxcvbnOracle()))

	a.cfg = cfg
	a.profile = profile
	a.generator = gen
	a.settings = service.NewSettingsService(service.NewPreferencesService(repo), gen)
	a.closeFn = closeFn
}

func (a *app) close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

// openPreferences returns the configured preferences backend. When MySQL is
// configured but unreachable the file backend is used instead.
func openPreferences(ctx context.Context, cfg config.Config) (repository.PreferencesRepository, func()) {
	if cfg.PrefsBackend == config.BackendMySQL {
		db, err := repository.NewDB(cfg.DatabaseDSN)
		if err == nil {
			store := repository.NewMySQLPreferences(db)
			if err = store.Migrate(ctx); err == nil {
				return store, func() { db.Close() }
			}
			db.Close()
		}
		slog.Warn("mysql preferences unavailable, using file backend", "path", cfg.PrefsPath, "error", err)
	}

	return repository.NewFilePreferences(cfg.PrefsPath), func() {}
}
