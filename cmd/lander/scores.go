package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/games/lander"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresJSON  bool
	flagClearYes    bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top high scores. A score is the total fuel left at each
landing of a run that cleared every level.

Examples:
  lander scores
  lander scores --limit 5
  lander scores --json
  lander scores stats
  lander scores clear --yes`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

var scoresStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated score statistics",
	Args:  cobra.NoArgs,
	RunE:  runScoresStats,
}

var scoresClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded scores",
	Args:  cobra.NoArgs,
	RunE:  runScoresClear,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresJSON, "json", false, "Print scores as JSON")
	scoresClearCmd.Flags().BoolVar(&flagClearYes, "yes", false, "Confirm deletion")

	scoresCmd.AddCommand(scoresStatsCmd)
	scoresCmd.AddCommand(scoresClearCmd)
}

// mustStore opens the database for commands that cannot run without it.
func mustStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening scores database: %w", err)
	}
	return store, nil
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := mustStore()
	if err != nil {
		return err
	}
	defer store.Close()

	scores, err := store.TopScores(cmd.Context(), lander.GameID, flagScoresLimit)
	if err != nil {
		return err
	}

	if flagScoresJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(scores)
	}

	fmt.Println("High Scores - Lunar Lander")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Land every level in 'lander play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %-6s  %-6s  %-20s  %s\n", "Rank", "Player", "Score", "Levels", "Seed", "Date")
	fmt.Printf("  %-4s  %-12s  %-6s  %-6s  %-20s  %s\n", "----", "------", "-----", "------", "----", "----")

	for i, e := range scores {
		player := e.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-12s  %-6d  %-6d  %-20d  %s\n",
			i+1, player, e.Score, e.Levels, e.Seed, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println("Replay a run with 'lander play --seed <seed>'.")
	return nil
}

func runScoresStats(cmd *cobra.Command, _ []string) error {
	store, err := mustStore()
	if err != nil {
		return err
	}
	defer store.Close()

	st, err := store.GetGameStats(cmd.Context(), lander.GameID)
	if err != nil {
		return err
	}

	fmt.Printf("Runs recorded: %d\n", st.GamesCount)
	if st.GamesCount == 0 {
		return nil
	}
	fmt.Printf("Best score:    %d\n", st.HighScore)
	fmt.Printf("Average score: %.1f\n", st.AvgScore)
	fmt.Printf("Total fuel:    %d\n", st.TotalScore)
	if !st.LastPlayed.IsZero() {
		fmt.Printf("Last played:   %s\n", st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func runScoresClear(cmd *cobra.Command, _ []string) error {
	if !flagClearYes {
		return fmt.Errorf("refusing to delete scores without --yes")
	}

	store, err := mustStore()
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.ClearScores(cmd.Context(), lander.GameID)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d score(s).\n", n)
	return nil
}
