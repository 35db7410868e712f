package core

import (
	"fmt"
	"time"
)

// RuntimeConfig contains configuration passed to a game session at startup.
type RuntimeConfig struct {
	ScreenW      int           // Screen width in characters
	ScreenH      int           // Screen height in characters
	TickInterval time.Duration // Delay between simulation ticks; 0 uses the game config
	Seed         int64         // RNG seed for deterministic gameplay
}

// DefaultConfig returns the runtime used when the terminal size is unknown.
// The zero TickInterval keeps the game's configured pace and the zero Seed
// asks the platform layer for a time-based one.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}

// GameState is a read-only summary of a running game.
type GameState struct {
	Tick      uint64 // Ticks simulated so far
	Score     int    // Current score
	HighScore int    // Best score ever reached
	Length    int    // Number of snake segments
}

// EventKind identifies something notable that happened during a tick.
type EventKind int

const (
	EventAteFood EventKind = iota + 1
	EventHitWall
	EventHitSelf
)

func (k EventKind) String() string {
	switch k {
	case EventAteFood:
		return "ate_food"
	case EventHitWall:
		return "hit_wall"
	case EventHitSelf:
		return "hit_self"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is emitted by a tick. Score is the score held when the event fired,
// so for collisions it is the score of the round that just ended.
type Event struct {
	Kind  EventKind
	Tick  uint64
	Score int
}

// IsCollision reports whether the event ended a round.
func (e Event) IsCollision() bool {
	return e.Kind == EventHitWall || e.Kind == EventHitSelf
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}
