package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/doodle/internal/config"
	"github.com/vovakirdan/doodle/internal/core"
	"github.com/vovakirdan/doodle/internal/platform/tui"
	"github.com/vovakirdan/doodle/internal/registry"
)

var (
	flagWatch        bool
	flagHoldTicks    int
	flagInitialTicks int
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play in the terminal",
	Long: `Start playing the specified variant (doodle by default).

Controls:
  Left/A/H    - Move left
  Right/D/L   - Move right
  Down/S/Spc  - Stop moving
  P/Esc       - Pause
  R           - Restart the run
  Ctrl+S      - Save a text screenshot
  Q/Ctrl+C    - Quit

Terminals report key presses, not key releases, so a direction stays held
for a short while after each press. Tune it with --hold if your terminal
repeats keys slowly.

Difficulty options:
  easy   - Platforms drift down at half the rate
  normal - The variant's own progression
  hard   - Platforms drift down twice as fast
  fixed  - No drift at all

Examples:
  doodle play
  doodle play doodle_classic
  doodle play --difficulty hard
  doodle play --config ./my-doodle.yaml --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config (yaml or toml)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload --config on change (applies from the next run)")
	playCmd.Flags().IntVar(&flagHoldTicks, "hold", tui.DefaultHoldTicks, "Ticks a direction stays held after a key repeat")
	playCmd.Flags().IntVar(&flagInitialTicks, "hold-initial", tui.DefaultInitialTicks, "Ticks a direction stays held after the first press")
}

func runPlay(cmd *cobra.Command, args []string) error {
	variant, err := variantArg(args)
	if err != nil {
		return err
	}
	cfg, err := loadVariantConfig(variant)
	if err != nil {
		return err
	}

	game, err := registry.CreateConfigured(variant, cfg)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

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

	return tui.Run(game, rc, tui.Options{
		Store:        store,
		Logger:       logger,
		Watcher:      watcher,
		Source:       "local",
		HoldTicks:    flagHoldTicks,
		InitialTicks: flagInitialTicks,
	})
}

// startWatcher watches --config when --watch is set.
func startWatcher(variant string) (*config.Watcher, error) {
	if !flagWatch {
		return nil, nil
	}
	if flagConfig == "" {
		return nil, fmt.Errorf("--watch needs --config")
	}
	w, err := config.NewWatcher(variant, flagConfig, config.ParsePreset(flagDifficulty))
	if err != nil {
		return nil, fmt.Errorf("watching %s: %w", flagConfig, err)
	}
	logger.Info("watching config", "path", flagConfig)
	return w, nil
}
