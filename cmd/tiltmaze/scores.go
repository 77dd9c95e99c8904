package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tiltmaze/internal/games/tiltmaze"
	"github.com/vovakirdan/tiltmaze/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best tilt maze runs and overall stats.

Examples:
  tiltmaze scores
  tiltmaze scores --limit 20
  tiltmaze scores --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	runs, err := store.TopRuns(tiltmaze.GameID, flagLimit)
	if err != nil {
		return fmt.Errorf("error retrieving runs: %w", err)
	}

	fmt.Println("Best Runs - Tilt Maze")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tiltmaze play' to set the first score!")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-5s  %-9s  %s\n", "Rank", "Score", "Level", "Result", "Date")
	fmt.Printf("  %-4s  %-6s  %-5s  %-9s  %s\n", "----", "-----", "-----", "------", "----")
	for i, run := range runs {
		fmt.Printf("  %-4d  %-6d  %-5d  %-9s  %s\n",
			i+1, run.Score, run.Level, run.Outcome, run.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GameStats(tiltmaze.GameID)
	if err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Completed: %d  Best: %d  Best level: %d  Average: %.1f\n",
			stats.Runs, stats.Completed, stats.HighScore, stats.BestLevel, stats.AvgScore)
	}
	return nil
}
