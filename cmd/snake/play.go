package main

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagDifficulty string
	flagSeed       int64
	flagTick       time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a local game",
	Long: `Start a game in this terminal.

The high score file must exist before the first game; create it with
'snake highscore reset'.

Controls:
  Arrows/WASD  - Steer
  P/Space      - Pause
  Q/Ctrl+C     - Quit

Difficulty options:
  normal - Constant pace (default)
  easy   - Slower start, speeds up as you score
  hard   - Faster start, speeds up as you score
  fixed  - Constant pace, ignores the config's progression

Examples:
  snake play
  snake play --difficulty hard
  snake play --seed 42 --tick 80ms`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

// addPlayFlags registers the play flags. The root command runs play too,
// so it carries the same set.
func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed for food placement (0 = random based on time)")
	cmd.Flags().DurationVar(&flagTick, "tick", 0, "Tick interval, e.g. 100ms (overrides config)")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	config.ApplyPreset(&cfg, preset)

	runtime := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}
	runtime.TickInterval = flagTick
	runtime.Seed = flagSeed

	highScores, err := storage.NewFileStore(cfg.Storage.HighScoreFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(flagLogFile, "snake")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Open score history
	var history *storage.Store
	if cfg.Storage.HistoryDB != "" {
		history, err = storage.Open(cfg.Storage.HistoryDB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
			// Continue without history - game still works
			history = nil
		}
	}

	runErr := tui.Run(tui.SessionConfig{
		Game:       cfg,
		Runtime:    runtime,
		HighScores: highScores,
		History:    history,
		HistoryID:  preset.HistoryID(),
		Player:     currentUser(),
		Logger:     logger,
	})

	// Close store before potential exit
	if history != nil {
		history.Close()
	}

	if runErr != nil {
		// os.Exit skips deferred calls.
		closeLog()
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		if errors.Is(runErr, storage.ErrNoHighScore) {
			fmt.Fprintf(os.Stderr, "Create %s with 'snake highscore reset'.\n", highScores.Path())
		}
		os.Exit(1)
	}
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}
