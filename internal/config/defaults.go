package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Arena: ArenaConfig{
			HalfSize:   300,
			WallMargin: 20,
			Color:      "gray",
		},
		Snake: BodyConfig{
			Start: []Point{
				{X: 0, Y: 0},
				{X: -20, Y: 0},
				{X: -40, Y: 0},
			},
			Step:                  20,
			Heading:               "right",
			SegmentSize:           20,
			SelfCollisionDistance: 10,
			Color:                 "white",
		},
		Food: FoodConfig{
			Margin:          20,
			ContactDistance: 15,
			Size:            10,
			Color:           "blue",
		},
		Scoreboard: ScoreboardConfig{
			X:     0,
			Y:     270,
			Color: "white",
		},
		Loop: LoopConfig{
			TickInterval: 100 * time.Millisecond,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
		Storage: StorageConfig{
			HighScoreFile: "~/.snake/data.txt",
			HistoryDB:     "~/.snake/scores.db",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
