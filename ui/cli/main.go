// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface (CLI) for Passgen using the
// Cobra library. It defines the root command, the shared service setup and
// the main entry point for execution.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/toeirei/passgen/buildvars"
	"github.com/toeirei/passgen/internal/clipboard"
	"github.com/toeirei/passgen/internal/config"
	"github.com/toeirei/passgen/internal/db"
	"github.com/toeirei/passgen/internal/generator"
	"github.com/toeirei/passgen/internal/i18n"
	"github.com/toeirei/passgen/internal/logging"
	"github.com/toeirei/passgen/internal/model"
	"github.com/toeirei/passgen/internal/prefs"
	"github.com/toeirei/passgen/internal/tui"
	"github.com/toeirei/passgen/internal/ui"
	"golang.org/x/term"
)

var version = buildvars.VersionOrDefault("dev") // set by the linker through buildvars
var gitCommit = "dev"                           // set at build time with the short commit SHA
var buildDate = ""                              // set at build time (RFC3339)

// Seams replaced by tests.
var (
	isTerminal    = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
	newClipboard  = clipboard.New
	runTUI        = tui.Run
	sourceFactory generator.SourceFactory
)

// app holds the services shared by the commands of one root command.
type app struct {
	cfgFile string
	verbose bool

	conf  config.Config
	store db.Store
	prefs *prefs.Repository
	clip  clipboard.Sink
}

// Execute runs the CLI entrypoint. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd creates and configures a new root cobra command. Each call
// returns an independent command tree, which keeps tests isolated.
func NewRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "passgen",
		Short: "Passgen generates passwords from a saved configuration.",
		Long: `Passgen generates batches of random passwords. Length, count, character
classes, symbols, repeat avoidance and the entropy source are kept in a
database so every run starts from the last configuration.

Running without a subcommand launches the interactive TUI when stdout is a
terminal, and generates one batch with the saved configuration otherwise.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setupDefaultServices(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal() {
				return a.runGenerate(cmd, &generateOptions{})
			}
			if _, err := a.openStore(); err != nil {
				return err
			}
			return runTUI(cmd.Context(), tui.Options{
				Prefs:     a.prefs,
				Generator: a.generator(),
				Clipboard: a.clip,
			})
		},
	}
	cmd.Version = compositeVersion()

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging (including database logs)")
	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file")
	cmd.PersistentFlags().String("language", "", `Interface language ("en", "ja")`)
	cmd.PersistentFlags().String("database.type", "", "Database type (sqlite, postgres, mysql)")
	cmd.PersistentFlags().String("database.dsn", "", "Database connection string (DSN)")

	cmd.AddCommand(
		a.newGenerateCmd(),
		a.newConfigCmd(),
		a.newHistoryCmd(),
		a.newBackupCmd(),
		a.newRestoreCmd(),
		a.newMigrateCmd(),
		a.newDBCmd(),
		newVersionCmd(),
	)
	return cmd
}

func (a *app) setupDefaultServices(cmd *cobra.Command) error {
	path, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	conf, err := config.LoadConfig[config.Config](cmd, config.Defaults(), path)
	// A missing file is expected on first run; persist the defaults so the
	// user has something to edit.
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		writeDefaultConfig()
	} else if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	if conf.Database.Type == "" {
		conf.Database.Type = "sqlite"
	}
	if conf.Database.Dsn == "" {
		conf.Database.Dsn = config.DefaultDSN()
	}
	a.conf = conf

	i18n.Init(conf.Language)
	if a.verbose {
		logging.SetDebug(true)
		db.SetDebug(true)
	} else if err := logging.SetLevel(conf.Log.Level); err != nil {
		logging.Warnf("%v", err)
	}
	a.clip = newClipboard(conf.Clipboard.Enabled)
	logging.Debugf("using %s database", conf.Database.Type)
	return nil
}

// writeDefaultConfig stores the defaults, without command-line overrides,
// in the user config location.
func writeDefaultConfig() {
	def, err := config.LoadConfig[config.Config](nil, config.Defaults(), nil)
	if err != nil && !errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return
	}
	if err := config.WriteConfigFile(&def, false); err != nil {
		logging.Warnf("could not write default config file: %v", err)
		return
	}
	logging.Infof("wrote default config to user config path")
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// openStore connects to the configured database on first use.
func (a *app) openStore() (db.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	if a.conf.Database.Type == "sqlite" {
		if err := ensureSQLiteDir(a.conf.Database.Dsn); err != nil {
			return nil, err
		}
	}
	st, err := db.New(a.conf.Database.Type, a.conf.Database.Dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", i18n.T("cli.error.open_db"), err)
	}
	a.store = st
	a.prefs = prefs.NewRepository(st)
	return st, nil
}

// ensureSQLiteDir creates the directory of a plain SQLite file path.
func ensureSQLiteDir(dsn string) error {
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store, a.prefs = nil, nil
	return err
}

// generator builds the history-recording generator for this run.
func (a *app) generator(opts ...generator.Option) ui.Generator {
	if sourceFactory != nil {
		opts = append([]generator.Option{generator.WithSourceFactory(sourceFactory)}, opts...)
	}
	g := ui.Generator{
		Generate: func(cfg model.PasswordConfig) ([]model.GeneratedPassword, error) {
			return generator.Generate(cfg, opts...)
		},
	}
	if a.store != nil {
		g.History = a.store
	}
	return g
}

// localizedError shows the translated message of a generator or validation
// error while keeping the wrapped error for errors.Is.
type localizedError struct{ err error }

func (e localizedError) Error() string { return ui.ErrorMessage(e.err) }
func (e localizedError) Unwrap() error { return e.err }

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		// Printing the version needs neither config nor database.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			v, c, d := resolveBuildVersion(nil)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", v)
			fmt.Fprintf(out, "commit: %s\n", c)
			if d != "" {
				fmt.Fprintf(out, "built: %s\n", d)
			}
		},
	}
}

func compositeVersion() string {
	v, c, d := resolveBuildVersion(nil)
	if c != "" && c != "dev" {
		v += " (" + c + ")"
	}
	if d != "" {
		v += " built: " + d
	}
	return v
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If `info` is nil, it reads build info from
// the runtime.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := version
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}

	if info != nil {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		// Some build paths only record the module as a dependency.
		if resolvedVersion == "dev" || resolvedVersion == "(devel)" {
			for _, dep := range info.Deps {
				if dep.Path == "github.com/toeirei/passgen" && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	if resolvedVersion == "dev" && gitCommit != "dev" && gitCommit != "" {
		resolvedVersion = gitCommit
	}
	return resolvedVersion, resolvedCommit, resolvedDate
}
