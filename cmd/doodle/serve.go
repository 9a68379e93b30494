package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/doodle/internal/config"
	"github.com/vovakirdan/doodle/internal/platform/tui"
	"github.com/vovakirdan/doodle/internal/registry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the doodle SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game. The command sent by the client
picks the variant; without one the canonical doodle is played.
Runs are stored per-server (all users share the same history).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.doodle/host_key

Examples:
  doodle serve                           # Listen on :23234 with auto-generated key
  doodle serve --addr :2222              # Listen on port 2222
  doodle serve --difficulty hard         # Every session plays hard

Users can connect with:
  ssh -t localhost -p 23234
  ssh -t localhost -p 23234 doodle_classic`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "addr", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset for every session")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Configs = make(map[string]config.DoodleConfig)

	for _, id := range registry.IDs() {
		rules, err := loadVariantConfig(id)
		if err != nil {
			return err
		}
		cfg.Configs[id] = rules
	}

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting doodle SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
