package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/duotris/internal/platform/tui"
	"github.com/vovakirdan/duotris/internal/registry"
	"github.com/vovakirdan/duotris/internal/storage"
)

var (
	flagPlain   bool
	flagRecent  int
	flagScoreTo int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Open the interactive scoreboard, or with --plain print the top scores,
aggregate stats and recent matches for a mode.

Examples:
  duotris scores
  duotris scores trio --plain
  duotris scores --plain --limit 5 --recent 10`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print scores as text instead of the interactive table")
	scoresCmd.Flags().IntVar(&flagScoreTo, "limit", 10, "Number of top scores to print with --plain")
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 5, "Number of recent matches to print with --plain")
}

func runScores(_ *cobra.Command, args []string) {
	if !flagPlain {
		store := openStore()
		w, h := terminalSize()
		_, err := tui.RunScoreboard(store, w, h)
		if store != nil {
			store.Close()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	gameID := "duotris"
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'duotris list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := printScores(store, gameID, game.Title()); err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
}

// printScores writes the top scores, aggregate stats and recent matches.
func printScores(store *storage.Store, gameID, title string) error {
	scores, err := store.TopScores(gameID, flagScoreTo)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'duotris play %s' to set the first high score!\n", gameID)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d  Games: %d  Avg: %.0f  Best lines: %d  Total lines: %d\n",
		stats.HighScore, stats.GamesCount, stats.AvgScore, stats.BestLines, stats.TotalLines)

	matches, err := store.RecentMatches(gameID, flagRecent)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Recent matches:")
	fmt.Printf("  %-8s  %-5s  %-5s  %-11s  %-8s  %s\n", "Score", "Lines", "Level", "Locks (L/R)", "Time", "Date")
	for _, m := range matches {
		locks := fmt.Sprintf("%d/%d", m.LeftLocks, m.RightLocks)
		if m.ExtraLocks > 0 {
			locks += fmt.Sprintf("+%d", m.ExtraLocks)
		}
		fmt.Printf("  %-8d  %-5d  %-5d  %-11s  %-8s  %s\n",
			m.Score, m.Lines, m.Level, locks,
			m.Duration.Round(time.Second), m.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
