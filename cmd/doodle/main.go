// doodle is an endless vertical platformer for the terminal, the desktop and SSH.
//
// Usage:
//
//	doodle list               - List available variants
//	doodle play [variant]     - Play in the terminal
//	doodle window [variant]   - Play in a desktop window
//	doodle serve              - Start SSH server for remote play
//	doodle scores [variant]   - Show run history for a variant
//	doodle config [variant]   - Print the effective rules of a variant
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.doodle/runs.db)
//	--log <path>    - Set log file, "-" for stderr (default: ~/.doodle/doodle.log)
//	--debug         - Log every bounce, spring and break
//
// Flags left unset fall back to DOODLE_* environment variables, which may
// also come from a .env file in the working directory.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/doodle/internal/games/doodle"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogPath string
	flagDebug   bool

	logger    = log.New(io.Discard)
	logCloser io.Closer
)

// envFlags maps flag names to the environment variables that back them.
var envFlags = map[string]string{
	"db":         "DOODLE_DB",
	"log":        "DOODLE_LOG",
	"config":     "DOODLE_CONFIG",
	"difficulty": "DOODLE_DIFFICULTY",
	"addr":       "DOODLE_SSH_ADDR",
	"host-key":   "DOODLE_HOST_KEY",
}

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "doodle",
	Short: "Doodle - jump from platform to platform, forever upward",
	Long: `Doodle is an endless vertical platformer. Steer left and right,
bounce off platforms, ride springs and don't fall off the bottom.

Available commands:
  list     - Show all available variants
  play     - Play in the terminal
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  scores   - View run history
  config   - Print the effective rules of a variant

Examples:
  doodle play
  doodle play doodle_classic --difficulty hard
  doodle window --scale 0.75
  doodle serve --addr :2222
  doodle scores doodle --browse`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.doodle/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.doodle/doodle.log", `Log file path, "-" for stderr`)
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// setup fills unset flags from the environment and opens the log.
func setup(cmd *cobra.Command, _ []string) error {
	if err := applyEnv(cmd); err != nil {
		return err
	}

	w, err := openLog(flagLogPath)
	if err != nil {
		return err
	}
	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "doodle",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return nil
}

func applyEnv(cmd *cobra.Command) error {
	for name, key := range envFlags {
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			continue
		}
		if err := f.Value.Set(v); err != nil {
			return fmt.Errorf("invalid %s=%q: %w", key, v, err)
		}
	}
	return nil
}

func openLog(path string) (io.Writer, error) {
	switch path {
	case "":
		return io.Discard, nil
	case "-":
		return os.Stderr, nil
	}

	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	logCloser = f
	return f, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
