// invaders plays the invaders formation game in the terminal.
//
// Usage:
//
//	invaders list              - List model sets
//	invaders play [variant]    - Play a model set (default: invaders)
//	invaders menu              - Pick model set, difficulty and level interactively
//	invaders serve             - Start SSH server for remote play
//	invaders scores [variant]  - Show the run ledger
//	invaders config            - Print or check the game configuration
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Ledger database path (default: in memory)
//	--config <path>    - Custom game config YAML
//	--difficulty <p>   - Difficulty preset: easy, normal, hard, fixed
//	--log-file <path>  - Write logs to a file
//	--metrics <addr>   - Serve Prometheus metrics on addr
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/metrics"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevel      int
	flagLogFile    string
	flagMetrics    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "invaders",
	Short: "Invaders - defend the ground against a marching formation",
	Long: `Invaders is a terminal game: a formation of aliens marches across
the field and steps down at every edge while you shoot it from below.

Available commands:
  list     - Show the model sets
  play     - Play a model set directly
  menu     - Interactive model set, difficulty and level picker
  serve    - Start SSH server for remote play
  scores   - View the run ledger
  config   - Print or check the configuration

Examples:
  invaders play
  invaders play invaders_alt --difficulty hard
  invaders menu --db ~/.arcade/invaders.db
  invaders serve --ssh :2222 --metrics :9090
  invaders scores --db ~/.arcade/invaders.db`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.ReferenceTickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.MemoryPath, "Path to the run ledger database (:memory: keeps it for this process only)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().IntVar(&flagLevel, "level", 0, "Starting level (0 = config value)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagMetrics, "metrics", "", "Serve Prometheus metrics on this address (e.g. :9090)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger. Terminal games own stdout, so without
// --log-file they log nowhere unless fallback is set.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	out := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}
	if out == nil {
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "invaders",
	})
	return logger, closeFn, nil
}

// configureGames applies the global flags to every game created from now on.
func configureGames(logger *log.Logger) {
	invaders.SetConfigPath(flagConfig)
	invaders.SetDifficultyPreset(flagDifficulty)
	invaders.SetStartLevel(flagLevel)
	invaders.SetLogger(logger)
}

// startMetrics registers a collector with the games and serves it when
// --metrics is set. The returned collector is nil when metrics are off.
func startMetrics(logger *log.Logger) (*metrics.Collector, func()) {
	if flagMetrics == "" {
		return nil, func() {}
	}

	collector := metrics.NewCollector()
	invaders.AddSink(collector)

	server := metrics.NewServer(flagMetrics, collector, logger)
	server.Start()
	return collector, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		//nolint:errcheck // Best-effort shutdown on exit
		server.Shutdown(ctx)
	}
}

// openStore opens the ledger. Games still work without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open ledger database: %v\n", err)
		logger.Warn("could not open ledger database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
