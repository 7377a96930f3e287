package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/reindeer-rush/internal/games/rush"
	"github.com/vovakirdan/reindeer-rush/internal/platform/tui"
	"github.com/vovakirdan/reindeer-rush/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show the top 10 for an advent game",
	Long: `Show the leaderboard for one of the four advent games.
Defaults to fjerde-advent; the old reindeer-rush id is accepted.

Examples:
  rush scores
  rush scores tredje-advent
  rush scores --tui`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse the leaderboards interactively")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every score of the game")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := rush.GameID
	if len(args) > 0 {
		gameID = storage.CanonicalGameID(args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, gameID, width, height)
	}

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s\n", storage.GameTitle(gameID))
		return nil
	}

	entries, err := store.TopScores(gameID, storage.LeaderboardLimit)
	if err != nil {
		return fmt.Errorf("loading scores: %w", err)
	}

	fmt.Printf("TOP %d - %s\n\n", storage.LeaderboardLimit, storage.GameTitle(gameID))
	if len(entries) == 0 {
		fmt.Println("No scores yet. Be the first on the board!")
		return nil
	}

	fmt.Printf("  %-4s  %-18s  %-8s  %s\n", "Rank", "Name", "Score", "Date")
	fmt.Printf("  %-4s  %-18s  %-8s  %s\n", "----", "----", "-----", "----")
	for i, e := range entries {
		dateStr := e.UpdatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-18s  %-8d  %s\n", i+1, e.Name, e.Score, dateStr)
	}
	return nil
}
