package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration a game would start with, after the config
file and the storage flags are applied. The output is a valid config
file and a starting point for customisation.

Examples:
  snake config dump > ~/.snake/configs/snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfigDump,
}

func init() {
	configCmd.AddCommand(configDumpCmd)
}

func runConfigDump(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	data, err := config.Dump(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
