package core

// EntityID identifies something the display is drawing.
type EntityID uint32

// Shape selects how an entity is drawn.
type Shape uint8

const (
	ShapeSquare Shape = iota
	ShapeCircle
	ShapeText
)

func (s Shape) String() string {
	switch s {
	case ShapeSquare:
		return "square"
	case ShapeCircle:
		return "circle"
	case ShapeText:
		return "text"
	default:
		return "unknown"
	}
}

// Appearance describes how an entity looks on the display.
// Size is the edge length of the entity in world units; it is ignored for text.
type Appearance struct {
	Shape Shape
	Color Color
	Size  float64
}

// Display is the rendering collaborator the game drives.
// The game only ever tells the display where things are; how they end up
// on a terminal (or anywhere else) is the display's business.
type Display interface {
	// Spawn creates a new visible entity at pos and returns its ID.
	Spawn(pos Vec, look Appearance) EntityID
	// MoveTo places an entity at an absolute world position.
	MoveTo(id EntityID, pos Vec)
	// Hide removes an entity from view for good.
	Hide(id EntityID)
	// WriteText sets the text drawn by a ShapeText entity.
	WriteText(id EntityID, text string)
	// ClearText erases previously written text.
	ClearText(id EntityID)
}

// Positionable is anything with a world position that can be moved.
type Positionable interface {
	Position() Vec
	MoveTo(pos Vec)
}

// Renderable is anything the display knows how to draw.
type Renderable interface {
	ID() EntityID
	Appearance() Appearance
}
