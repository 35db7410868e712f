package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Score     int
	HighScore int
	Segments  []core.Vec // Head first
	Heading   core.Heading
	Food      core.Vec
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:      g.tick,
		Score:     g.scoreboard.Score(),
		HighScore: g.scoreboard.HighScore(),
		Segments:  g.chain.Positions(),
		Heading:   g.chain.Heading(),
		Food:      g.food.Position(),
	}
}

// Equal reports whether two snapshots describe the same state.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.Tick != o.Tick || s.Score != o.Score || s.HighScore != o.HighScore ||
		s.Heading != o.Heading || s.Food != o.Food || len(s.Segments) != len(o.Segments) {
		return false
	}
	for i := range s.Segments {
		if s.Segments[i] != o.Segments[i] {
			return false
		}
	}
	return true
}
