// Package config provides YAML-based game configuration loading and
// difficulty management for the snake game.
package config

import "time"

// SnakeConfig contains all configuration for the snake game.
// Every geometric constant of the game lives here rather than in package
// level constants, so tests and alternative arenas can swap them freely.
type SnakeConfig struct {
	Arena      ArenaConfig      `yaml:"arena"`
	Snake      BodyConfig       `yaml:"snake"`
	Food       FoodConfig       `yaml:"food"`
	Scoreboard ScoreboardConfig `yaml:"scoreboard"`
	Collision  CollisionConfig  `yaml:"collision"`
	Loop       LoopConfig       `yaml:"loop"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Storage    StorageConfig    `yaml:"storage"`
}

// ArenaConfig defines the playfield. The world is the square
// [-HalfSize, HalfSize] on both axes, centred on the origin.
type ArenaConfig struct {
	HalfSize   float64 `yaml:"half_size"`
	WallMargin float64 `yaml:"wall_margin"` // Inset of the deadly wall from the edge
	Color      string  `yaml:"color"`       // Border color in the terminal
}

// WallBound is the largest |x| or |y| the head may have without dying.
func (a ArenaConfig) WallBound() float64 {
	return a.HalfSize - a.WallMargin
}

// Point is a world position in config files.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// BodyConfig defines the snake itself.
type BodyConfig struct {
	Start                 []Point `yaml:"start"` // Initial segments, head first
	Step                  float64 `yaml:"step"`  // Distance the head moves per tick
	Heading               string  `yaml:"heading"` // Start heading: right, up, left or down
	SegmentSize           float64 `yaml:"segment_size"`
	SelfCollisionDistance float64 `yaml:"self_collision_distance"`
	Color                 string  `yaml:"color"`
}

// FoodConfig defines food placement and contact.
type FoodConfig struct {
	Margin          float64 `yaml:"margin"` // Inset from the arena edge for spawning
	ContactDistance float64 `yaml:"contact_distance"`
	Size            float64 `yaml:"size"`
	Color           string  `yaml:"color"`
}

// Bound is the largest |x| or |y| a food item may spawn at.
func (f FoodConfig) Bound(a ArenaConfig) float64 {
	return a.HalfSize - f.Margin
}

// ScoreboardConfig places the score text.
type ScoreboardConfig struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Color string  `yaml:"color"`
}

// CollisionConfig tunes how a tick handles several collisions.
type CollisionConfig struct {
	// StopAfterReset ends the collision checks of a tick as soon as one of
	// them has reset the snake. Off by default: the remaining checks then run
	// against the freshly reset snake.
	StopAfterReset bool `yaml:"stop_after_reset"`
}

// LoopConfig defines the pacing of the game loop.
type LoopConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
}

// DifficultyConfig defines the speed progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = base speed, 1.0 = max speed
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a round.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Speed added at max difficulty (1.0 = twice as fast)
}

// StorageConfig locates persisted state.
type StorageConfig struct {
	HighScoreFile string `yaml:"high_score_file"`
	HistoryDB     string `yaml:"history_db"`
}
