package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// LoadSnake loads the snake configuration.
// Search order: customPath -> ~/.snake/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a file only has to mention
// the values it changes.
func LoadSnake(customPath string) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("snake.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if parsed, ok := decodeOverDefaults(data); ok {
				return parsed, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/snake.yaml"); err == nil {
		if parsed, ok := decodeOverDefaults(data); ok {
			return parsed, nil
		}
	}

	// Use embedded default YAML
	if parsed, ok := decodeOverDefaults(defaultSnakeYAML); ok {
		return parsed, nil
	}
	return DefaultSnakeConfig(), nil // Fallback to hardcoded if embed fails
}

func decodeOverDefaults(data []byte) (SnakeConfig, bool) {
	cfg := DefaultSnakeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", "configs", filename)
}

// Dump renders a configuration back to YAML.
func Dump(cfg SnakeConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// Validate reports every problem with a configuration at once.
func Validate(cfg SnakeConfig) error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("config: "+format, args...))
		}
	}

	check(cfg.Arena.HalfSize > 0, "arena.half_size must be positive, got %v", cfg.Arena.HalfSize)
	check(cfg.Arena.WallMargin >= 0 && cfg.Arena.WallMargin < cfg.Arena.HalfSize,
		"arena.wall_margin must be in [0, half_size), got %v", cfg.Arena.WallMargin)

	check(len(cfg.Snake.Start) > 0, "snake.start needs at least one segment")
	if cfg.Snake.Heading != "" {
		if _, err := core.ParseHeading(cfg.Snake.Heading); err != nil {
			errs = append(errs, fmt.Errorf("config: snake.heading: %w", err))
		}
	}
	check(cfg.Snake.Step > 0, "snake.step must be positive, got %v", cfg.Snake.Step)
	check(cfg.Snake.SegmentSize > 0, "snake.segment_size must be positive, got %v", cfg.Snake.SegmentSize)
	check(cfg.Snake.SelfCollisionDistance >= 0,
		"snake.self_collision_distance must not be negative, got %v", cfg.Snake.SelfCollisionDistance)

	check(cfg.Food.Margin >= 0 && cfg.Food.Margin <= cfg.Arena.HalfSize,
		"food.margin must be in [0, half_size], got %v", cfg.Food.Margin)
	check(cfg.Food.ContactDistance > 0, "food.contact_distance must be positive, got %v", cfg.Food.ContactDistance)
	check(cfg.Food.Size > 0, "food.size must be positive, got %v", cfg.Food.Size)

	check(cfg.Loop.TickInterval > 0, "loop.tick_interval must be positive, got %v", cfg.Loop.TickInterval)

	switch cfg.Difficulty.Progression.Type {
	case "", "none", "score", "time":
	default:
		check(false, "difficulty.progression.type must be score, time or none, got %q", cfg.Difficulty.Progression.Type)
	}
	check(cfg.Difficulty.InitialLevel >= 0 && cfg.Difficulty.InitialLevel <= 1,
		"difficulty.initial_level must be in [0, 1], got %v", cfg.Difficulty.InitialLevel)
	check(cfg.Difficulty.Scaling.SpeedMultiplier >= 0,
		"difficulty.scaling.speed_multiplier must not be negative, got %v", cfg.Difficulty.Scaling.SpeedMultiplier)

	colors := []struct{ field, name string }{
		{"arena.color", cfg.Arena.Color},
		{"snake.color", cfg.Snake.Color},
		{"food.color", cfg.Food.Color},
		{"scoreboard.color", cfg.Scoreboard.Color},
	}
	for _, c := range colors {
		if _, err := core.ParseColor(c.name); err != nil {
			errs = append(errs, fmt.Errorf("config: %s: %w", c.field, err))
		}
	}

	check(cfg.Storage.HighScoreFile != "", "storage.high_score_file must be set")

	return errors.Join(errs...)
}
