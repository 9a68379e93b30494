package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/doodle/internal/platform/tui"
	"github.com/vovakirdan/doodle/internal/registry"
	"github.com/vovakirdan/doodle/internal/storage"
)

var (
	flagBrowse bool
	flagRecent bool
	flagLimit  int
	flagClear  bool
	flagRunID  string
	flagAll    bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show run history for a variant",
	Long: `Display the best runs for the specified variant (doodle by default).

Examples:
  doodle scores
  doodle scores doodle_classic --recent
  doodle scores --browse
  doodle scores --all
  doodle scores --run 6f1c2b1e-8f0a-4c47-9d3e-2b7f5a0c9e41
  doodle scores doodle --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Browse runs interactively")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest runs instead of the best")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all runs of the variant")
	scoresCmd.Flags().StringVar(&flagRunID, "run", "", "Show a single run by its ID")
	scoresCmd.Flags().BoolVar(&flagAll, "all", false, "Show a summary of every variant")
}

func runScores(cmd *cobra.Command, args []string) error {
	variant, err := variantArg(args)
	if err != nil {
		return err
	}
	game, err := registry.Create(variant)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	switch {
	case flagRunID != "":
		return printRun(store, flagRunID)
	case flagAll:
		return printAllStats(store)
	case flagClear:
		if err := store.ClearScores(variant); err != nil {
			return err
		}
		logger.Info("runs cleared", "game", variant)
		fmt.Printf("Cleared all %s runs.\n", game.Title())
		return nil
	case flagBrowse:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, variant, width, height)
	}

	var runs []storage.Run
	heading := "Best Runs"
	if flagRecent {
		heading = "Recent Runs"
		runs, err = store.RecentRuns(variant, flagLimit)
	} else {
		runs, err = store.TopScores(variant, flagLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Printf("%s - %s\n", heading, game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'doodle play %s' to set the first high score!\n", variant)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-6s  %s\n", "Rank", "Score", "Level", "Time", "Source", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-6s  %s\n", "----", "-----", "-----", "----", "------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-6d  %-6s  %-6s  %s\n",
			i+1, r.Score, r.MaxLevel, formatDuration(r.Ticks), r.Source, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(variant)
	if err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Best: %d  Runs: %d  Average: %.1f  Highest level: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.MaxLevel)
	}
	return nil
}

func printRun(store *storage.Store, runID string) error {
	r, err := store.RunByID(runID)
	if errors.Is(err, storage.ErrRunNotFound) {
		return fmt.Errorf("no run with ID %s", runID)
	}
	if err != nil {
		return fmt.Errorf("retrieving run: %w", err)
	}

	fmt.Printf("Run %s\n\n", r.RunID)
	fmt.Printf("  Variant: %s\n", r.GameID)
	fmt.Printf("  Score:   %d\n", r.Score)
	fmt.Printf("  Level:   %d\n", r.MaxLevel)
	fmt.Printf("  Time:    %s\n", formatDuration(r.Ticks))
	fmt.Printf("  Source:  %s\n", r.Source)
	fmt.Printf("  Date:    %s\n", r.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

func printAllStats(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-16s  %-6s  %-8s  %-8s  %-6s  %s\n", "Variant", "Runs", "Best", "Average", "Level", "Last played")
	fmt.Printf("  %-16s  %-6s  %-8s  %-8s  %-6s  %s\n", "-------", "----", "----", "-------", "-----", "-----------")
	for _, id := range ids {
		st := all[id]
		fmt.Printf("  %-16s  %-6d  %-8d  %-8.1f  %-6d  %s\n",
			id, st.GamesCount, st.HighScore, st.AvgScore, st.MaxLevel, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

// formatDuration renders a tick count as m:ss at the configured tick rate.
func formatDuration(ticks int) string {
	rate := max(flagFPS, 1)
	secs := ticks / rate
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
