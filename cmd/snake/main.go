// snake is the classic snake game for the terminal.
//
// Usage:
//
//	snake                      - Play (same as snake play)
//	snake play                 - Play a local game
//	snake serve                - Start SSH server for remote play
//	snake scores               - Show recorded rounds
//	snake highscore show       - Print the persisted high score
//	snake highscore reset [n]  - Create or overwrite the high score file
//	snake config dump          - Print the effective configuration
//
// Global flags:
//
//	--config <path>      - Custom config YAML
//	--score-file <path>  - High score file (default: ~/.snake/data.txt)
//	--db <path>          - Score history database (default: ~/.snake/scores.db)
//	--log-file <path>    - Write debug logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var (
	// Global flags
	flagConfig    string
	flagScoreFile string
	flagDBPath    string
	flagLogFile   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake steers a growing chain of segments around a walled arena.
Eat the food to grow and score; hitting a wall or your own body
ends the round and the snake starts over. The best score is kept
in a small text file and survives restarts.

Available commands:
  play       - Play a local game (default)
  serve      - Start SSH server for remote play
  scores     - View recorded rounds
  highscore  - Show or reset the high score file
  config     - Inspect the configuration

Examples:
  snake
  snake play --difficulty hard
  snake serve --ssh :2222
  snake highscore reset`,
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagScoreFile, "score-file", "", "Path to the high score file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(highScoreCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the configuration and applies the storage flags.
func loadConfig() (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagScoreFile != "" {
		cfg.Storage.HighScoreFile = flagScoreFile
	}
	if flagDBPath != "" {
		cfg.Storage.HistoryDB = flagDBPath
	}
	return cfg, nil
}

// mustLoadConfig is loadConfig for commands that cannot go on without one.
func mustLoadConfig() config.SnakeConfig {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
