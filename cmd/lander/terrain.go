package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lander"
	"github.com/vovakirdan/tui-lander/internal/games/lander/sim"
	"github.com/vovakirdan/tui-lander/internal/platform/tui"
)

var (
	flagPreviewLevel int
	flagPreviewCols  int
	flagPreviewRows  int
)

var terrainCmd = &cobra.Command{
	Use:   "terrain",
	Short: "Print a preview of generated terrain",
	Long: `Generate the terrain a mission would start on and print it as text,
followed by the landing zones in world units.

The terrain depends only on --seed, --level and the world/terrain/levels
sections of the config, so the same flags always print the same picture.

Examples:
  lander terrain --seed 42
  lander terrain --seed 42 --level 2
  lander terrain --seed 7 --cols 160 --rows 40 > terrain.txt`,
	Args: cobra.NoArgs,
	RunE: runTerrain,
}

func init() {
	terrainCmd.Flags().IntVar(&flagPreviewLevel, "level", 1, "Level to generate (1-based)")
	terrainCmd.Flags().IntVar(&flagPreviewCols, "cols", 0, "Preview width in columns (0 = terminal width)")
	terrainCmd.Flags().IntVar(&flagPreviewRows, "rows", 24, "Preview height in rows")
	terrainCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom lander config YAML")
}

func runTerrain(_ *cobra.Command, _ []string) error {
	lc, err := config.LoadLander(flagConfig)
	if err != nil {
		logger.Warn("using default config", "error", err)
	}
	if flagPreviewLevel < 1 || flagPreviewLevel > len(lc.Levels) {
		return fmt.Errorf("level %d out of range 1..%d", flagPreviewLevel, len(lc.Levels))
	}
	lc.Session.StartLevel = flagPreviewLevel

	cols := flagPreviewCols
	if cols <= 0 {
		cols, _ = terminalSize()
	}
	rows := max(flagPreviewRows, 3)

	s := sim.NewSession(lander.SimConfig(lc), uint64(flagSeed))
	t := s.Terrain()

	screen := core.NewScreen(cols, rows)
	lander.RenderTerrain(screen, t)
	screen.DrawText(0, 0, fmt.Sprintf("seed %d  level %d/%d  %dx%d  hash %x",
		flagSeed, s.Level(), s.MaxLevel(), t.Width, t.Height, t.Hash()))

	if isTerminal() {
		fmt.Println(tui.RenderScreen(screen))
	} else {
		fmt.Println(screen.String())
	}

	fmt.Println()
	for i, z := range t.Zones {
		fmt.Printf("zone %d: x %d..%d (width %d) at y %.1f\n", i+1, z.Start, z.End, z.Width(), z.Height)
	}
	if len(t.Zones) == 0 {
		fmt.Println("no landing zones fit this world")
	}
	return nil
}
