package core

import "math"

// Viewport maps world coordinates onto a block of screen cells.
// The world spans [-HalfW, HalfW] x [-HalfH, HalfH]; CellW and CellH are the
// world units covered by one character cell. OffsetX/OffsetY place the
// block on the screen.
type Viewport struct {
	HalfW, HalfH float64
	CellW, CellH float64
	OffsetX      int
	OffsetY      int
}

// Cols returns the number of character columns the viewport covers.
func (vp Viewport) Cols() int {
	if vp.CellW <= 0 {
		return 0
	}
	return int(math.Round(2 * vp.HalfW / vp.CellW))
}

// Rows returns the number of character rows the viewport covers.
func (vp Viewport) Rows() int {
	if vp.CellH <= 0 {
		return 0
	}
	return int(math.Round(2 * vp.HalfH / vp.CellH))
}

// Cell projects a world position to a screen cell. The y axis is flipped:
// larger world y means a smaller row index.
func (vp Viewport) Cell(p Vec) (x, y int) {
	return vp.col(p.X), vp.row(p.Y)
}

func (vp Viewport) col(wx float64) int {
	return int(math.Floor((wx+vp.HalfW)/vp.CellW)) + vp.OffsetX
}

func (vp Viewport) row(wy float64) int {
	return int(math.Floor((vp.HalfH-wy)/vp.CellH)) + vp.OffsetY
}

// Bounds returns the screen rectangle covered by the viewport.
func (vp Viewport) Bounds() Rect {
	return NewRect(vp.OffsetX, vp.OffsetY, vp.Cols(), vp.Rows())
}

// sprite is one entity held by a Scene.
type sprite struct {
	pos  Vec
	look Appearance
	text string
}

// Scene is an in-memory Display. It remembers every visible entity and
// rasterises them into a Screen on demand.
type Scene struct {
	next    EntityID
	sprites map[EntityID]*sprite
	order   []EntityID // draw order, oldest first
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{
		sprites: make(map[EntityID]*sprite),
	}
}

// Spawn implements Display.
func (s *Scene) Spawn(pos Vec, look Appearance) EntityID {
	s.next++
	id := s.next
	s.sprites[id] = &sprite{pos: pos, look: look}
	s.order = append(s.order, id)
	return id
}

// MoveTo implements Display. Unknown IDs are ignored.
func (s *Scene) MoveTo(id EntityID, pos Vec) {
	if sp, ok := s.sprites[id]; ok {
		sp.pos = pos
	}
}

// Hide implements Display.
func (s *Scene) Hide(id EntityID) {
	if _, ok := s.sprites[id]; !ok {
		return
	}
	delete(s.sprites, id)
	for i, got := range s.order {
		if got == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// WriteText implements Display.
func (s *Scene) WriteText(id EntityID, text string) {
	if sp, ok := s.sprites[id]; ok {
		sp.text = text
	}
}

// ClearText implements Display.
func (s *Scene) ClearText(id EntityID) {
	s.WriteText(id, "")
}

// Len returns the number of visible entities.
func (s *Scene) Len() int {
	return len(s.order)
}

// Position returns where an entity currently is.
func (s *Scene) Position(id EntityID) (Vec, bool) {
	sp, ok := s.sprites[id]
	if !ok {
		return Vec{}, false
	}
	return sp.pos, true
}

// Text returns the text currently written by an entity.
func (s *Scene) Text(id EntityID) string {
	if sp, ok := s.sprites[id]; ok {
		return sp.text
	}
	return ""
}

// Render draws every entity into dst through the viewport.
// Cells outside the viewport are left untouched.
func (s *Scene) Render(dst *Screen, vp Viewport) {
	if vp.CellW <= 0 || vp.CellH <= 0 {
		return
	}
	clip := vp.Bounds()
	for _, id := range s.order {
		sp := s.sprites[id]
		switch sp.look.Shape {
		case ShapeText:
			s.renderText(dst, vp, clip, sp)
		default:
			s.renderShape(dst, vp, clip, sp)
		}
	}
}

func (s *Scene) renderShape(dst *Screen, vp Viewport, clip Rect, sp *sprite) {
	glyph := glyphFor(sp.look)
	half := sp.look.Size / 2

	row := vp.row(sp.pos.Y)
	c0 := vp.col(sp.pos.X - half)
	// the right edge is exclusive, so step back a hair before projecting
	c1 := vp.col(sp.pos.X + half - 1e-9)
	if c1 < c0 {
		c1 = c0
	}
	for x := c0; x <= c1; x++ {
		if clip.Contains(x, row) {
			dst.SetCell(x, row, glyph, sp.look.Color)
		}
	}
}

func (s *Scene) renderText(dst *Screen, vp Viewport, clip Rect, sp *sprite) {
	if sp.text == "" {
		return
	}
	cx, row := vp.Cell(sp.pos)
	runes := []rune(sp.text)
	start := cx - len(runes)/2
	for i, r := range runes {
		if clip.Contains(start+i, row) {
			dst.SetCell(start+i, row, r, sp.look.Color)
		}
	}
}

func glyphFor(look Appearance) rune {
	switch look.Shape {
	case ShapeCircle:
		if look.Size > 0 && look.Size < 20 {
			return '•'
		}
		return '●'
	default:
		return '█'
	}
}
