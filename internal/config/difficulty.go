package config

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// HistoryID is the game ID scores are recorded under in the history
// database. Presets change the pace of the game, so their scores are
// kept apart.
func (p DifficultyPreset) HistoryID() string {
	switch p {
	case "", DifficultyNormal, DifficultyFixed:
		return "snake"
	default:
		return "snake_" + string(p)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Loop.TickInterval = cfg.Loop.TickInterval * 3 / 2
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = 0.0
	case DifficultyHard:
		cfg.Loop.TickInterval = cfg.Loop.TickInterval * 6 / 10
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = 0.3
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	}
}

// DifficultyManager calculates the tick interval from the current score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none" && d.cfg.Progression.Type != ""
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
// Without progression the level is 0 and the game runs at the base speed.
func (d *DifficultyManager) Level(score int, ticks uint64) float64 {
	if !d.IsEnabled() {
		return 0
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Interval returns the tick interval to use for the given progress.
// Speed grows from base to base * (1 + speed_multiplier).
func (d *DifficultyManager) Interval(base time.Duration, score int, ticks uint64) time.Duration {
	speed := 1.0 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier
	if speed <= 0 {
		return base
	}
	interval := time.Duration(float64(base) / speed)
	if interval < time.Millisecond {
		interval = time.Millisecond
	}
	return interval
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
