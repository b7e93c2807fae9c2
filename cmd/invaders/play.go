package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

var flagHoldTicks int

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a model set",
	Long: `Start playing the given model set (default: invaders).

Controls:
  Left/Right, A/D, H/L  - Move
  Space/Up/W            - Fire
  P/Esc                 - Pause
  R                     - Restart (after game over)
  B/Esc                 - Leave (when paused or over)
  Q/Ctrl+C              - Quit

Difficulty options:
  easy   - Five lives, slower march
  normal - The configured values
  hard   - Two lives, faster march and more fire
  fixed  - Level-1 pace on every level

Examples:
  invaders play
  invaders play invaders_alt
  invaders play --difficulty hard --level 3
  invaders play --seed 42 --config ./my-invaders.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagHoldTicks, "hold", 0, "Ticks a movement key stays held after each key event (0 = default)")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := invaders.IDClassic
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'invaders list' to see available model sets.")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	configureGames(logger)
	collector, stopMetrics := startMetrics(logger)
	defer stopMetrics()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)

	opts := tui.ModelOptions{
		Store:      store,
		Config:     runtimeConfig(),
		Difficulty: flagDifficulty,
		Logger:     logger,
		HoldTicks:  flagHoldTicks,
	}
	if collector != nil {
		opts.Observer = collector
	}

	runErr := tui.Run(game, opts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		stopMetrics()
		os.Exit(1)
	}
}
