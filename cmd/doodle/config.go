package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/doodle/internal/config"
	"github.com/vovakirdan/doodle/internal/registry"
	"github.com/vovakirdan/doodle/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagFormat     string
)

var configCmd = &cobra.Command{
	Use:   "config [variant]",
	Short: "Print the effective rules of a variant",
	Long: `Print the configuration a variant would run with after applying
--config and --difficulty. The output is a complete config file that can be
edited and passed back with --config.

Examples:
  doodle config
  doodle config doodle_classic --format toml > classic.toml
  doodle config --difficulty hard`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config (yaml or toml)")
	configCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	configCmd.Flags().StringVar(&flagFormat, "format", "yaml", "Output format: yaml or toml")
}

func runConfig(cmd *cobra.Command, args []string) error {
	variant, err := variantArg(args)
	if err != nil {
		return err
	}
	cfg, err := loadVariantConfig(variant)
	if err != nil {
		return err
	}

	data, err := config.Encode(cfg, "."+flagFormat)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

// variantArg returns the variant named by args, the canonical one by default.
func variantArg(args []string) (string, error) {
	if len(args) == 0 {
		return config.VariantDoodle, nil
	}
	if !registry.Exists(args[0]) {
		return "", fmt.Errorf("unknown variant %q, run 'doodle list' to see available variants", args[0])
	}
	return args[0], nil
}

// loadVariantConfig resolves the rules of variant from --config and --difficulty.
func loadVariantConfig(variant string) (config.DoodleConfig, error) {
	cfg, err := config.LoadDoodle(variant, flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q, use easy, normal, hard or fixed", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	logger.Debug("config loaded", "variant", variant, "path", flagConfig, "difficulty", flagDifficulty)
	return cfg, nil
}

// openStore opens the runs database. Failure only costs the run history.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		logger.Warn("runs database unavailable", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
