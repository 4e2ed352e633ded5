package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/gitobj/internal/config"
	"github.com/gorewood/gitobj/internal/git"
	"github.com/gorewood/gitobj/internal/logging"
	"github.com/gorewood/gitobj/internal/output"
	"github.com/gorewood/gitobj/internal/store"
)

// app holds what every command needs: the loaded configuration, the
// logger and the repository. It is filled by the root PersistentPreRunE.
type app struct {
	repoDir    string
	configPath string
	logLevel   string
	colorMode  string
	timeout    time.Duration

	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store
}

// addFlags registers the persistent flags shared by all subcommands.
func (a *app) addFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.Bool("json", false, "Output in JSON format")
	flags.StringVarP(&a.repoDir, "repo", "C", ".", "Run as if gitobj was started in this directory")
	flags.StringVar(&a.configPath, "config", "", "Config file (default: config.yaml in the gitobj config dir)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&a.colorMode, "color", "auto", "Color output: auto, always or never")
	flags.DurationVar(&a.timeout, "timeout", 0, "Timeout for each git command (e.g. 30s)")
}

// setup loads configuration and logging. Flags given on the command line
// win over the config file and the environment.
func (a *app) setup(cmd *cobra.Command) error {
	if _, err := output.ParseColorMode(a.colorMode); err != nil {
		return a.fail(cmd, output.NewUserError(err.Error()))
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return a.fail(cmd, output.NewUserError(err.Error()))
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Git.Timeout = a.timeout
	}
	if err := cfg.Validate(); err != nil {
		return a.fail(cmd, output.NewUserError(err.Error()))
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return a.fail(cmd, output.NewUserError(err.Error()))
	}

	a.cfg = cfg
	a.logger = logger
	a.store = nil
	logger.Debug("config loaded", "path", cfg.Path, "binary", cfg.Git.Binary, "timeout", cfg.Git.Timeout)
	return nil
}

// openStore opens the repository selected by --repo on first use.
func (a *app) openStore(cmd *cobra.Command) (*store.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	opts := append(a.cfg.RunnerOptions(), git.WithLogger(a.logger))
	st, err := store.Open(cmd.Context(), a.repoDir, opts...)
	if err != nil {
		var failed *git.FailedError
		if errors.As(err, &failed) && failed.Result != nil && failed.Result.Status.Code == 128 {
			return nil, &output.ExitError{
				Code:    output.ExitUserError,
				Message: fmt.Sprintf("not a git repository: %s", a.repoDir),
				Cause:   err,
			}
		}
		return nil, err
	}
	a.store = st
	return st, nil
}

// printer returns a printer for cmd honoring --json and --color. An
// invalid --color value, rejected by setup, falls back to auto here.
func (a *app) printer(cmd *cobra.Command) *output.Printer {
	out := cmd.OutOrStdout()
	mode, _ := output.ParseColorMode(a.colorMode)
	return output.NewPrinter(out, isJSONMode(cmd), mode.Styled(out)).WithStderr(cmd.ErrOrStderr())
}

// fail reports err through the printer and returns it for the exit code.
func (a *app) fail(cmd *cobra.Command, err error) error {
	a.printer(cmd).Error(err)
	return err
}
