package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick model set, difficulty and starting level interactively",
	Long: `Start in interactive menu mode.

Pick a model set, then a difficulty and a starting level. Leaving a
paused or finished run returns to the menu. Tab opens the run ledger.

Controls:
  Up/Down/j/k  - Navigate
  Left/Right   - Change value
  Enter/Space  - Select
  Tab          - Run ledger
  Q            - Quit

Examples:
  invaders menu
  invaders menu --fps 30
  invaders menu --db ~/.arcade/invaders.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	configureGames(logger)
	collector, stopMetrics := startMetrics(logger)
	defer stopMetrics()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	opts := tui.SessionOptions{
		Store:      store,
		Config:     runtimeConfig(),
		Difficulty: flagDifficulty,
		Logger:     logger,
	}
	if collector != nil {
		opts.Observer = collector
	}

	if err := tui.RunSession(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
