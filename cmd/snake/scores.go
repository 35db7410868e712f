package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagLimit      int
	flagScoresDiff string
	flagRecent     bool
	flagClear      bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recorded rounds",
	Long: `Display the best recorded rounds.

In a terminal this opens an interactive table with one tab per
difficulty. When the output is piped, a plain listing is printed.

Examples:
  snake scores
  snake scores --difficulty hard --limit 5
  snake scores --recent | less
  snake scores --difficulty easy --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rounds to list")
	scoresCmd.Flags().StringVar(&flagScoresDiff, "difficulty", "", "Difficulty whose rounds to list")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "List the latest rounds instead of the best")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded rounds of the chosen difficulty")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()

	preset, err := config.ParsePreset(flagScoresDiff)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(cfg.Storage.HistoryDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		removed, err := clearRounds(store, preset)
		if err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted %d %s rounds\n", removed, preset)
		return
	}

	if term.IsTerminal(int(os.Stdout.Fd())) && !flagRecent {
		size := core.DefaultConfig()
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			size.ScreenW, size.ScreenH = w, h
		}
		if err := tui.RunHistory(store, size.ScreenW, size.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	gameID := preset.HistoryID()
	var scores []storage.ScoreEntry
	if flagRecent {
		scores, err = store.RecentScores(gameID, flagLimit)
	} else {
		scores, err = store.TopScores(gameID, flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Scores - %s\n", preset)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-14s  %s\n", "Rank", "Score", "Player", "Date")
	fmt.Printf("  %-4s  %-10s  %-14s  %s\n", "----", "-----", "------", "----")

	for i, entry := range scores {
		player := entry.Player
		if player == "" {
			player = "local"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-14s  %s\n", i+1, entry.Score, player, dateStr)
	}

	if stats, err := store.Stats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Rounds: %d  Best: %d  Average: %.1f\n", stats.Rounds, stats.Best, stats.Average)
	}
}

// clearRounds deletes every round of the preset and reports how many
// there were.
func clearRounds(store *storage.Store, preset config.DifficultyPreset) (int, error) {
	gameID := preset.HistoryID()
	stats, err := store.Stats(gameID)
	if err != nil {
		return 0, err
	}
	if err := store.ClearScores(gameID); err != nil {
		return 0, err
	}
	return stats.Rounds, nil
}
