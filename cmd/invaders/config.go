package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config [variant]",
	Short: "Print the resolved game configuration",
	Long: `Print the configuration a new run would use, after the config file,
--difficulty, --level and the model set are applied. The result is
validated; an invalid configuration exits with an error.

Copy the output to ~/.arcade/configs/invaders.yaml to customize it.

Examples:
  invaders config
  invaders config invaders_alt --difficulty hard
  invaders config --config ./my-invaders.yaml
  invaders config --defaults > ~/.arcade/configs/invaders.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in default config file")
}

func runConfig(_ *cobra.Command, args []string) {
	if flagConfigDefaults {
		fmt.Print(string(config.GetDefaultYAML()))
		return
	}

	gameID := invaders.IDClassic
	if len(args) > 0 {
		gameID = args[0]
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	g, ok := game.(*invaders.Game)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %q has no invaders configuration\n", gameID)
		os.Exit(1)
	}

	configureGames(nil)
	cfg, err := g.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(string(data))
}
