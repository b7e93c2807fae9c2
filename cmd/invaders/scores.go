package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresRun    string
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show the run ledger",
	Long: `Display the best runs of a model set (default: invaders), the most
recent runs, or the level history of one run.

The ledger lives in the database given by --db; the in-memory default
forgets every run when the process exits.

Examples:
  invaders scores --db ~/.arcade/invaders.db
  invaders scores invaders_alt --db ~/.arcade/invaders.db
  invaders scores --recent --db ~/.arcade/invaders.db
  invaders scores --run <id> --db ~/.arcade/invaders.db
  invaders scores --clear --db ~/.arcade/invaders.db`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the most recent runs of every model set")
	scoresCmd.Flags().StringVar(&flagScoresRun, "run", "", "Show the level history of one run")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every run of the model set")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := invaders.IDClassic
	if len(args) > 0 {
		gameID = args[0]
	}

	info, ok := registry.Info(gameID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'invaders list' to see available model sets.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		err = store.ClearRuns(gameID)
		if err == nil {
			fmt.Printf("Ledger cleared for %s\n", info.Title)
		}
	case flagScoresRun != "":
		err = printRun(store, flagScoresRun)
	case flagScoresRecent:
		err = printRecent(store)
	default:
		err = printTop(store, gameID, info.Title)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading ledger: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

func printTop(store *storage.Store, gameID, title string) error {
	runs, err := store.TopRuns(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		if flagDBPath == storage.MemoryPath {
			fmt.Println("The ledger is in memory; pass --db <path> to keep runs between games.")
		}
		return nil
	}

	printRuns(runs)

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Best: %d  Average: %.0f  Best level: %d  Levels cleared: %d\n",
		stats.Runs, stats.HighScore, stats.AvgScore, stats.BestLevel, stats.Cleared)
	return nil
}

func printRecent(store *storage.Store) error {
	runs, err := store.RecentRuns(flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Println("Recent Runs")
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}
	printRuns(runs)
	return nil
}

func printRuns(runs []storage.Run) {
	fmt.Printf("  %-4s  %-8s  %-5s  %-10s  %-8s  %-16s  %s\n", "Rank", "Score", "Level", "Outcome", "Mode", "Date", "Run")
	fmt.Printf("  %-4s  %-8s  %-5s  %-10s  %-8s  %-16s  %s\n", "----", "-----", "-----", "-------", "----", "----", "---")

	for i, r := range runs {
		mode := r.Difficulty
		if mode == "" {
			mode = "-"
		}
		fmt.Printf("  %-4d  %-8d  %-5d  %-10s  %-8s  %-16s  %s\n",
			i+1, r.Score, r.Level, r.Outcome, mode, r.StartedAt.Format("2006-01-02 15:04"), r.ID)
	}
}

func printRun(store *storage.Store, runID string) error {
	run, err := store.RunByID(runID)
	if err != nil {
		return err
	}
	levels, err := store.Levels(runID)
	if err != nil {
		return err
	}

	fmt.Printf("Run %s (%s, seed %d)\n", run.ID, run.GameID, run.Seed)
	fmt.Printf("Score %d, level %d, %s\n", run.Score, run.Level, run.Outcome)
	fmt.Println()

	if len(levels) == 0 {
		fmt.Println("No levels finished.")
		return nil
	}

	fmt.Printf("  %-5s  %-8s  %s\n", "Level", "Score", "Outcome")
	fmt.Printf("  %-5s  %-8s  %s\n", "-----", "-----", "-------")
	for _, l := range levels {
		fmt.Printf("  %-5d  %-8d  %s\n", l.Level, l.Score, l.Outcome)
	}
	return nil
}
