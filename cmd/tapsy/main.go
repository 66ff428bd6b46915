// tapsy is a sequence-memory game for the terminal: watch the tiles light
// up, then repeat the pattern.
//
// Usage:
//
//	tapsy modes              - List game modes
//	tapsy play [mode]        - Play a mode (default: classic)
//	tapsy menu               - Pick modes interactively
//	tapsy scores [mode]      - Show high scores
//	tapsy stats              - Show per-mode statistics
//	tapsy settings           - Show or change profile settings
//	tapsy serve              - Start SSH server for remote play
//	tapsy api                - Start the leaderboard HTTP API
//
// Global flags:
//
//	--config <path>     - Game config YAML
//	--db <path>         - Database path (default: ~/.tapsy/tapsy.db)
//	--seed <value>      - RNG seed for reproducible sequences
//	--log-file <path>   - Write logs to a file during play
//	--log-level <lvl>   - debug, info, warn or error
//
// Every flag can also be set through a TAPSY_* environment variable
// (TAPSY_DB, TAPSY_LOG_LEVEL, ...) or a .env file in the working directory.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/vovakirdan/tapsy/internal/config"
	"github.com/vovakirdan/tapsy/internal/core"
	"github.com/vovakirdan/tapsy/internal/storage"
)

const envPrefix = "TAPSY_"

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tapsy",
	Short: "Tapsy - a sequence-memory game for your terminal",
	Long: `Tapsy lights up a sequence of coloured tiles. Repeat it back, and the
sequence grows by one tile every level.

Available commands:
  modes     - Show all game modes
  play      - Play a mode directly
  menu      - Interactive mode picker
  scores    - View high scores
  stats     - View per-mode statistics
  settings  - Username, sound and hints
  serve     - Start SSH server for remote play
  api       - Start the leaderboard HTTP API

Examples:
  tapsy play
  tapsy play reverse
  tapsy menu
  tapsy serve --ssh :2222
  tapsy scores speed`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return applyEnv(cmd.Flags())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tapsy/tapsy.db", "Path to database")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file during play")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
}

// applyEnv loads .env and fills every flag not set on the command line
// from its TAPSY_* variable.
func applyEnv(flags *pflag.FlagSet) error {
	return applyEnvFile(flags, ".env")
}

// applyEnvFile is applyEnv with an explicit dotenv path. A missing file is
// skipped; a malformed one is an error.
func applyEnvFile(flags *pflag.FlagSet, path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	var setErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed || setErr != nil {
			return
		}
		name := envPrefix + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		v, ok := os.LookupEnv(name)
		if !ok {
			return
		}
		if err := flags.Set(f.Name, v); err != nil {
			setErr = fmt.Errorf("invalid %s: %w", name, err)
		}
	})
	return setErr
}

// fail prints the error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// playLogger returns the logger for full-screen play. Without --log-file
// logs are discarded so the alt screen stays clean.
func playLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return newLogger(io.Discard, "tapsy"), func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return newLogger(io.Discard, "tapsy"), func() {}
	}
	return newLogger(f, "tapsy"), func() { f.Close() }
}

func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	return cfg
}

// openStore opens the database with profile defaults from cfg. Games still
// work without one, so a failure only warns.
func openStore(cfg config.Config) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	store.SetProfileDefaults(cfg.ProfileDefaults())
	return store
}

// mustOpenStore is openStore for commands that only read or write the
// database.
func mustOpenStore(cfg config.Config) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening database: %v", err)
	}
	store.SetProfileDefaults(cfg.ProfileDefaults())
	return store
}

// runtimeConfig reads the terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	return cfg
}
