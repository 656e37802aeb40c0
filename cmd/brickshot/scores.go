package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickshot/internal/registry"
	"github.com/vovakirdan/brickshot/internal/storage"
)

var (
	flagScoresLimit int
	flagRounds      int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores and recent rounds",
	Long: `Display the top high scores for a variant, its win/loss record and
the most recently decided rounds.

Examples:
  brickshot scores
  brickshot scores brickshot_classic --rounds 20
  brickshot scores brickshot --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of high scores to show")
	scoresCmd.Flags().IntVar(&flagRounds, "rounds", 5, "Number of recent rounds to show (0 hides them)")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every score and round of the variant")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := defaultGameID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'brickshot list' to see available variants", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Printf("Cleared scores for %s.\n", title)
		return nil
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'brickshot play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
		fmt.Printf("Rounds cleared: %d  Rounds lost: %d  Best round: %d\n", stats.Wins, stats.Losses, stats.BestRound)
	}

	if flagRounds <= 0 {
		return nil
	}
	rounds, err := store.RecentRounds(gameID, flagRounds)
	if err != nil {
		return fmt.Errorf("retrieving rounds: %w", err)
	}
	if len(rounds) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Recent rounds:")
	fmt.Printf("  %-5s  %-6s  %-8s  %-7s  %-5s  %s\n", "Round", "Result", "Score", "Volleys", "Balls", "Date")
	for _, r := range rounds {
		fmt.Printf("  %-5d  %-6s  %-8d  %-7d  %-5d  %s\n",
			r.Round, r.Outcome, r.Score, r.Volleys, r.Balls, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
