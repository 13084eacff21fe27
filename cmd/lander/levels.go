package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/games/lander"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show the level table",
	Long: `Print every level with the tuning a mission will use for it, after
the difficulty preset and per-level scaling have been applied.

Examples:
  lander levels
  lander levels --difficulty hard
  lander levels --config ./my-lander.yaml`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom lander config YAML")
	levelsCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runLevels(_ *cobra.Command, _ []string) error {
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	lc, err := config.LoadLander(flagConfig)
	if err != nil {
		logger.Warn("using default config", "error", err)
	}
	config.ApplyLanderPreset(&lc, preset)
	sc := lander.SimConfig(lc)

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Level", "Zones", "Zone width", "Gravity", "Max v-speed", "Max tilt").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	for n := 1; n <= sc.MaxLevel(); n++ {
		pol := sc.Level(n)
		land := sc.LandingFor(n)
		t.Row(
			strconv.Itoa(n),
			strconv.Itoa(pol.LandingZones),
			strconv.Itoa(pol.ZoneWidth),
			fmt.Sprintf("%.2f", sc.PhysicsFor(n).Gravity),
			fmt.Sprintf("%.1f", land.MaxVerticalSpeed),
			fmt.Sprintf("%.0f°", land.MaxAngleDeg),
		)
	}

	fmt.Println(t)
	fmt.Printf("world %dx%d, fuel %d, difficulty %s\n",
		sc.Width, sc.Height, sc.Physics.MaxFuel, describeDifficulty(lc, preset))
	return nil
}

func describeDifficulty(lc config.LanderConfig, preset config.DifficultyPreset) string {
	switch {
	case preset != "":
		return string(preset)
	case lc.Difficulty.Enabled:
		return "scaling"
	}
	return "off"
}
