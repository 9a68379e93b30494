package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/doodle/internal/core"
	"github.com/vovakirdan/doodle/internal/games/doodle"
	"github.com/vovakirdan/doodle/internal/platform/gui"
)

var flagScale float64

var windowCmd = &cobra.Command{
	Use:   "window [variant]",
	Short: "Play in a desktop window",
	Long: `Open a desktop window running the specified variant (doodle by default).
The window shows the world at its full resolution and reads real key state,
so movement is smoother than in the terminal.

Controls:
  Left/A, Right/D  - Move (or the left stick of a gamepad)
  P/Esc            - Pause
  R                - Restart the run
  Q                - Quit

Examples:
  doodle window
  doodle window doodle_classic --scale 0.75`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config (yaml or toml)")
	windowCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	windowCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload --config on change (applies from the next run)")
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window size relative to the 600x800 world")
}

func runWindow(cmd *cobra.Command, args []string) error {
	variant, err := variantArg(args)
	if err != nil {
		return err
	}
	cfg, err := loadVariantConfig(variant)
	if err != nil {
		return err
	}

	game := doodle.New(variant)
	game.Configure(cfg)

	watcher, err := startWatcher(variant)
	if err != nil {
		return err
	}
	if watcher != nil {
		defer watcher.Close()
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	rc := core.RuntimeConfig{TickRate: flagFPS, Seed: flagSeed}
	return gui.Run(game, rc, gui.Options{
		Store:   store,
		Logger:  logger,
		Watcher: watcher,
		Scale:   flagScale,
	})
}
