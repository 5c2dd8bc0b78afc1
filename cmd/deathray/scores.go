package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/deathray/internal/storage"
)

var (
	flagLimit  int
	flagRecent bool
	flagMine   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recorded runs",
	Long: `Display the best recorded runs, or the most recent ones.

Examples:
  deathray scores
  deathray scores --limit 20
  deathray scores --recent
  deathray scores --mine --player alice`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the most recent runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagMine, "mine", false, "Only show runs of --player")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Error("Error opening runs database", "path", flagDBPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	title := "Top runs"
	var runs []storage.RunRecord
	switch {
	case flagMine:
		title = fmt.Sprintf("Runs by %s", flagPlayer)
		runs, err = store.PlayerRuns(flagPlayer, flagLimit)
	case flagRecent:
		title = "Recent runs"
		runs, err = store.RecentRuns(flagLimit)
	default:
		runs, err = store.TopRuns(flagLimit)
	}
	if err != nil {
		logger.Error("Error retrieving runs", "error", err)
		store.Close()
		os.Exit(1)
	}

	fmt.Printf("Death Ray - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'deathray play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-7s  %-4s  %-7s  %-12s  %s\n", "Rank", "Score", "Hits", "Catches", "Player", "Date")
	fmt.Printf("  %-4s  %-7s  %-4s  %-7s  %-12s  %s\n", "----", "-----", "----", "-------", "------", "----")

	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-7d  %-4d  %-7d  %-12s  %s\n",
			i+1, r.Score, r.WrongHits, r.WrongCatches, player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	stats, err := store.Stats()
	if err != nil {
		logger.Warn("Could not compute stats", "error", err)
		return
	}
	fmt.Printf("Runs: %d  Best: %d  Average: %.1f\n", stats.Runs, stats.BestScore, stats.AverageScore)
}
