// cubetower opens the cube tower board: drag cubes up from the scrolling
// panel to stack them, and drop tower cubes into the hole to pull them out.
//
// Usage:
//
//	cubetower                         - Play with the default config
//	cubetower --config my.yaml        - Play with a custom config
//	cubetower --seed 42               - Reproducible tower jitter
//	cubetower --script play.json      - Drive the board from a JSON input script
//	cubetower --debug                 - Debug logging and an FPS overlay
//	cubetower --shots out/            - Directory for script screenshots
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/cubetower"
)

var (
	flagConfig string
	flagSeed   uint64
	flagScript string
	flagDebug  bool
	flagExit   bool
	flagShots  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cubetower",
	Short: "Stack colored cubes into a tower, or feed them to the hole",
	Long: `Cube Tower is a small drag-and-drop toy.

Swipe the bottom panel sideways to scroll it. Pull a cube upwards to pick
it up and release it over the tower to stack it. Cubes already in the tower
can be picked up again and dropped into the hole; cubes above that lose
their footing fall away.

Examples:
  cubetower
  cubetower --seed 42
  cubetower --config ./configs/cubetower.yaml
  cubetower --script demos/cubetower/scripts/stack.json --exit`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = config seed, or time based)")
	rootCmd.Flags().StringVar(&flagScript, "script", "", "Path to a JSON input script")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug logging and the FPS overlay")
	rootCmd.Flags().BoolVar(&flagExit, "exit", false, "Quit once the input script has finished")
	rootCmd.Flags().StringVar(&flagShots, "shots", "screenshots", "Directory for screenshots taken by the input script")
}

func run(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "cubetower",
		ReportTimestamp: true,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := cubetower.LoadConfig(flagConfig)
	if err != nil {
		return err
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}

	board, err := cubetower.NewBoard(cfg, cubetower.WithLogger(logger))
	if err != nil {
		return err
	}

	board.Scene().ScreenshotDir = flagShots
	board.Scene().SetDebug(flagDebug)

	rc := cubetower.RunConfig{
		Title:              "Cube Tower",
		ShowFPS:            flagDebug,
		ExitWhenScriptDone: flagExit,
	}
	if flagScript != "" {
		data, err := os.ReadFile(flagScript)
		if err != nil {
			return fmt.Errorf("failed to read script %s: %w", flagScript, err)
		}
		if rc.Script, err = cubetower.LoadTestScript(data); err != nil {
			return err
		}
	}
	return cubetower.Run(board, rc)
}
