package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var highScoreCmd = &cobra.Command{
	Use:   "highscore",
	Short: "Show or reset the high score file",
	Long: `The high score lives in a plain text file holding one integer.
A game refuses to start while the file is missing or unreadable.`,
}

var flagShowRounds bool

var highScoreShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the persisted high score",
	Long: `Print the persisted high score. With --rounds, the best round
recorded in the scores database is listed for each difficulty as well.

Examples:
  snake highscore show
  snake highscore show --rounds`,
	Args: cobra.NoArgs,
	Run:  runHighScoreShow,
}

var highScoreResetCmd = &cobra.Command{
	Use:   "reset [value]",
	Short: "Create or overwrite the high score file",
	Long: `Write a high score to the file, creating it and its directory when
needed. The value defaults to 0.

Examples:
  snake highscore reset
  snake highscore reset 25`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHighScoreReset,
}

func init() {
	highScoreShowCmd.Flags().BoolVar(&flagShowRounds, "rounds", false, "Also list the best recorded round per difficulty")
	highScoreCmd.AddCommand(highScoreShowCmd)
	highScoreCmd.AddCommand(highScoreResetCmd)
}

func openHighScores(cfg config.SnakeConfig) *storage.FileStore {
	store, err := storage.NewFileStore(cfg.Storage.HighScoreFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runHighScoreShow(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()
	store := openHighScores(cfg)

	high, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, storage.ErrNoHighScore) {
			fmt.Fprintln(os.Stderr, "Run 'snake highscore reset' to create it.")
		}
		os.Exit(1)
	}
	fmt.Println(high)

	if !flagShowRounds {
		return
	}
	history, err := storage.Open(cfg.Storage.HistoryDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer history.Close()

	rounds, err := bestRounds(history)
	if err != nil {
		history.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, r := range rounds {
		fmt.Printf("  %-8s %d\n", r.Preset, r.Best)
	}
}

type presetBest struct {
	Preset config.DifficultyPreset
	Best   int
}

// bestRounds returns the best recorded round for every preset with its own
// history. Fixed shares the normal history and is not listed separately.
func bestRounds(history *storage.Store) ([]presetBest, error) {
	presets := []config.DifficultyPreset{config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard}
	out := make([]presetBest, 0, len(presets))
	for _, p := range presets {
		best, err := history.HighScore(p.HistoryID())
		if err != nil {
			return nil, err
		}
		out = append(out, presetBest{Preset: p, Best: best})
	}
	return out, nil
}

func runHighScoreReset(_ *cobra.Command, args []string) {
	store := openHighScores(mustLoadConfig())

	value := 0
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 {
			fmt.Fprintf(os.Stderr, "Error: high score must be a non-negative integer, got %q\n", args[0])
			os.Exit(1)
		}
		value = v
	}

	if err := store.Save(value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("High score set to %d in %s\n", value, store.Path())
}
