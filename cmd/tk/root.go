package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/j-veylop/timekeeper-tui/internal/config"
	"github.com/j-veylop/timekeeper-tui/internal/logger"
	"github.com/j-veylop/timekeeper-tui/internal/notify"
	"github.com/j-veylop/timekeeper-tui/internal/services"
	"github.com/j-veylop/timekeeper-tui/internal/version"
)

// openStore opens the store one-shot commands work on. Tests replace it.
var openStore = services.OpenStore

// options carries the global flags and what they resolved to.
type options struct {
	envFile string
	debug   bool

	cfg       *config.Config
	logCloser io.Closer
}

// newRootCmd builds the command tree. Each call returns an independent
// tree so tests can run commands in isolation.
func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "tk",
		Short: "Timekeeper - track the time you actively spend in a workspace",
		Long: `Timekeeper records how long you actively work in the current directory.

A session starts with the app (or with "s"), keeps running while you use the
terminal and pauses by itself after a period of inactivity. Daily totals are
saved locally as JSON or in SQLite.

Settings are read from a .env file (see --env-file) and the environment:
  TRACKING_ENABLED, SHOW_NOTIFICATIONS, SESSION_TIMEOUT (minutes, 1-30),
  STORAGE_BACKEND (file|sqlite), STORAGE_LOCATION, TIMEOUT_CHECK_INTERVAL,
  DISPLAY_REFRESH_INTERVAL, LOG_FILE, LOG_LEVEL`,
		Version:       version.Info(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.teardown()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(opts.cfg, opts.managerOptions()...)
		},
	}

	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "",
		"Settings file (default: first of ./.env, ~/.config/timekeeper/.env)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false,
		"Log at debug level")

	root.AddCommand(
		newStatsCmd(opts),
		newExportCmd(opts),
		newResetCmd(opts),
		newVersionCmd(),
	)

	return root
}

func (o *options) setup() error {
	cfg, err := config.LoadFrom(o.envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if o.debug {
		cfg.LogLevel = "debug"
	}

	closer, err := logger.Init(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	o.cfg = cfg
	o.logCloser = closer
	logger.Debug("configuration loaded", "env_file", cfg.EnvFile, "backend", cfg.StorageBackend)
	return nil
}

func (o *options) teardown() error {
	if o.logCloser == nil {
		return nil
	}
	err := o.logCloser.Close()
	o.logCloser = nil
	return err
}

// managerOptions pins what the command line overrides, so settings reloads
// keep it.
func (o *options) managerOptions() []services.Option {
	if !o.debug {
		return nil
	}
	return []services.Option{services.WithLogLevel("debug")}
}

// openManager builds a manager for one-shot commands: no session is
// started, settings are not watched and nothing pops up on the desktop.
// A store that fails to open is left to the manager, which reports it
// through StartupErrors.
func (o *options) openManager() (*services.Manager, error) {
	mgrOpts := append(o.managerOptions(),
		services.WithoutAutoStart(),
		services.WithoutWatcher(),
		services.WithNotifier(notify.Nop{}),
	)
	if store, err := openStore(o.cfg.StorageBackend, o.cfg.StorageLocation); err == nil {
		mgrOpts = append(mgrOpts, services.WithStore(store))
	}
	return services.NewManager(o.cfg, mgrOpts...)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Skips the configuration setup of the root command.
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info())
		},
	}
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
