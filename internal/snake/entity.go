// Package snake implements the turtle-world snake: a segment chain that
// crawls a fixed step per tick, food that respawns at random, a scoreboard
// backed by a persisted high score, and the tick that ties them together.
//
// The package draws nothing itself. Every entity is spawned on, and moved
// through, a core.Display.
package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// sprite is the shared half of every entity: a display handle plus the
// position the game believes it is at. Entities embed it to satisfy
// core.Positionable and core.Renderable.
type sprite struct {
	display core.Display
	id      core.EntityID
	pos     core.Vec
	look    core.Appearance
}

func spawn(d core.Display, pos core.Vec, look core.Appearance) sprite {
	return sprite{
		display: d,
		id:      d.Spawn(pos, look),
		pos:     pos,
		look:    look,
	}
}

func (s *sprite) ID() core.EntityID { return s.id }

func (s *sprite) Position() core.Vec { return s.pos }

func (s *sprite) Appearance() core.Appearance { return s.look }

// MoveTo places the entity at an absolute world position.
func (s *sprite) MoveTo(pos core.Vec) {
	s.pos = pos
	s.display.MoveTo(s.id, pos)
}

func (s *sprite) hide() {
	s.display.Hide(s.id)
}

// Segment is one body unit of the snake.
type Segment struct {
	sprite
}

var (
	_ core.Positionable = (*Segment)(nil)
	_ core.Renderable   = (*Segment)(nil)
	_ core.Positionable = (*Food)(nil)
	_ core.Renderable   = (*Food)(nil)
	_ core.Renderable   = (*Scoreboard)(nil)
)
