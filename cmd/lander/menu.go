package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/games/lander"
	"github.com/vovakirdan/tui-lander/internal/platform/tui"
	"github.com/vovakirdan/tui-lander/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the interactive menu",
	Long: `Start Lunar Lander in interactive menu mode.

Pick the starting level and difficulty, browse high scores, and return
to the menu with Esc after a mission.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change level or difficulty
  Enter/Space     - Select
  Tab             - High scores
  Q               - Quit

Examples:
  lander menu
  lander menu --fps 30
  lander menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	lander.SetConfigPath(flagConfig)

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	opts := tui.MenuOptions{
		GameID:     lander.GameID,
		Difficulty: config.DifficultyNormal,
	}

	for {
		probe, err := registry.Create(lander.GameID)
		if err != nil {
			return err
		}
		opts.Title = probe.Title()
		opts.MaxLevel = probe.(*lander.Game).MaxLevel()

		res, err := tui.RunMenu(store, cfg, opts)
		if err != nil {
			return err
		}
		cfg = res.Config
		opts.StartLevel = res.StartLevel
		opts.Difficulty = res.Difficulty

		switch {
		case res.Quit:
			return nil

		case res.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, lander.GameID, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		game, err := registry.Create(res.GameID)
		if err != nil {
			logger.Error("creating game", "error", err)
			continue
		}
		if lg, ok := game.(*lander.Game); ok {
			lg.Configure(res.StartLevel, res.Difficulty)
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(game, store, cfg, playerName()); err != nil {
			logger.Error("running game", "error", err)
		}
	}
}
