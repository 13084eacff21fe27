package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/games/lander"
	"github.com/vovakirdan/tui-lander/internal/platform/tui"
	"github.com/vovakirdan/tui-lander/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a mission",
	Long: `Start a Lunar Lander mission.

Controls (rebind under "controls" in lander.yaml):
  Left/A, Right/D  - Rotate
  Up/W/Space       - Main engine
  Enter/R          - Continue or restart after a landing or crash
  P                - Pause
  Esc              - Leave the mission
  Q/Ctrl+C         - Quit
  Ctrl+S           - Save a screenshot to ~/.lander/screenshots

A safe landing touches down inside a green landing zone, slower than the
vertical speed limit and within a few degrees of upright.

Difficulty options:
  easy   - Looser landing limits, more fuel
  normal - Default limits, difficulty scaling starts at 30%
  hard   - Tighter limits, less fuel, scaling starts at 70%
  fixed  - No per-level difficulty scaling

Examples:
  lander play
  lander play --level 2
  lander play --difficulty hard --seed 42
  lander play --config ./my-lander.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom lander config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Level to start at (1-based, 0 = config)")
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom lander config YAML")
}

// applyGameFlags passes CLI settings to the lander package before any
// game instance is created.
func applyGameFlags() error {
	if _, ok := config.ParsePreset(flagDifficulty); !ok {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	if flagLevel < 0 {
		return fmt.Errorf("invalid level %d", flagLevel)
	}
	lander.SetConfigPath(flagConfig)
	lander.SetDifficultyPreset(flagDifficulty)
	lander.SetStartLevel(flagLevel)
	return nil
}

func runPlay(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(); err != nil {
		return err
	}

	game, err := registry.Create(lander.GameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	if lg, ok := game.(*lander.Game); ok {
		if cfgErr := lg.ConfigError(); cfgErr != nil {
			logger.Warn("using default config", "error", cfgErr)
		}
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, runtimeConfig(), playerName()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
