// lander is a terminal lunar-lander: fly down onto procedurally generated
// terrain and touch down gently inside a landing zone.
//
// Usage:
//
//	lander levels            - Show the level table
//	lander play              - Start a mission
//	lander menu              - Start menu with level/difficulty picker and scores
//	lander serve             - Start SSH server (and optional HTTP API)
//	lander scores            - Show high scores
//	lander terrain           - Print a terrain preview for a seed and level
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.lander/scores.db)
package main

import (
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/tui-lander/internal/games/lander"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "lander"})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lander",
	Short: "Lunar Lander - land safely in your terminal",
	Long: `Lunar Lander is a terminal game: steer a lander with rotation and
a single main engine, fight gravity and land slowly and upright inside
a flat landing zone. Fuel left over at each landing is your score.

Available commands:
  levels   - Show the per-level tuning
  play     - Start a mission directly
  menu     - Interactive menu (level, difficulty, high scores)
  serve    - Start SSH server for remote play, optionally an HTTP API
  scores   - View high scores
  terrain  - Preview generated terrain

Examples:
  lander play
  lander play --level 2 --difficulty hard
  lander menu
  lander serve --ssh :2222 --http :8080
  lander terrain --seed 42`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.lander/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(terrainCmd)
}

// openStore opens the scores database. Play continues without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// runtimeConfig builds the platform config for the current terminal.
func runtimeConfig() core.RuntimeConfig {
	w, h := terminalSize()
	return core.RuntimeConfig{
		ScreenW:  w,
		ScreenH:  h,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// playerName is the local login, used to label saved scores.
func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
