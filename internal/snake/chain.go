package snake

import (
	"sync"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// DefaultStart is the start layout used when a ChainConfig has none:
// three segments along the x axis, head at the origin.
var DefaultStart = []core.Vec{{X: 0, Y: 0}, {X: -20, Y: 0}, {X: -40, Y: 0}}

// ChainConfig describes the snake body.
type ChainConfig struct {
	Start   []core.Vec   // Initial layout, head first
	Heading core.Heading // Heading after every build; the zero value is right
	Step    float64      // Distance the head travels per Advance
	Look    core.Appearance
}

// Chain is the ordered snake body. Index 0 is the head.
//
// Direction changes may arrive from another goroutine than the one calling
// Advance. They only touch the pending heading, which Advance applies
// before moving; both sides hold mu.
type Chain struct {
	display core.Display
	cfg     ChainConfig

	segments []*Segment

	mu      sync.Mutex
	heading core.Heading
	pending core.Heading
}

// NewChain spawns the start layout on d.
func NewChain(d core.Display, cfg ChainConfig) *Chain {
	if len(cfg.Start) == 0 {
		cfg.Start = DefaultStart
	}
	c := &Chain{display: d, cfg: cfg}
	c.build()
	return c
}

func (c *Chain) build() {
	c.segments = make([]*Segment, 0, len(c.cfg.Start))
	for _, pos := range c.cfg.Start {
		c.segments = append(c.segments, &Segment{sprite: spawn(c.display, pos, c.cfg.Look)})
	}

	c.mu.Lock()
	c.heading = c.cfg.Heading
	c.pending = c.cfg.Heading
	c.mu.Unlock()
}

// Advance moves the body one step. The pending heading is applied first;
// then every segment but the head takes the position its predecessor held,
// tail first so no position is overwritten before it is read; then the
// head moves Step units along the heading.
func (c *Chain) Advance() {
	c.mu.Lock()
	c.heading = c.pending
	heading := c.heading
	c.mu.Unlock()

	for i := len(c.segments) - 1; i > 0; i-- {
		c.segments[i].MoveTo(c.segments[i-1].Position())
	}

	head := c.segments[0]
	head.MoveTo(head.Position().Add(heading.Unit().Scale(c.cfg.Step)))
}

// Grow appends a segment at the current tail position.
func (c *Chain) Grow() {
	tail := c.Tail().Position()
	c.segments = append(c.segments, &Segment{sprite: spawn(c.display, tail, c.cfg.Look)})
}

// Reset hides every segment and rebuilds the start layout with the start
// heading.
func (c *Chain) Reset() {
	for _, s := range c.segments {
		s.hide()
	}
	c.build()
}

// SetDirection requests a new heading for the next Advance. A heading
// that reverses the current one is ignored; the result reports whether
// the request was accepted.
func (c *Chain) SetDirection(h core.Heading) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if h.IsOpposite(c.heading) {
		return false
	}
	c.pending = h
	return true
}

// Head returns the leading segment.
func (c *Chain) Head() *Segment { return c.segments[0] }

// Tail returns the last segment.
func (c *Chain) Tail() *Segment { return c.segments[len(c.segments)-1] }

// Len returns the number of segments.
func (c *Chain) Len() int { return len(c.segments) }

// Segment returns the i-th segment, head at 0.
func (c *Chain) Segment(i int) *Segment { return c.segments[i] }

// Positions returns a copy of every segment position, head first.
func (c *Chain) Positions() []core.Vec {
	out := make([]core.Vec, len(c.segments))
	for i, s := range c.segments {
		out[i] = s.Position()
	}
	return out
}

// Heading returns the heading applied by the last Advance.
func (c *Chain) Heading() core.Heading {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.heading
}

// Pending returns the heading the next Advance will apply.
func (c *Chain) Pending() core.Heading {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}
