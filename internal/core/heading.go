package core

import (
	"fmt"
	"math"
	"strings"
)

// Heading is a direction of travel expressed as an angle in degrees,
// measured counter-clockwise from the positive x axis.
type Heading int

// The four cardinal headings the snake can take.
const (
	HeadingRight Heading = 0
	HeadingUp    Heading = 90
	HeadingLeft  Heading = 180
	HeadingDown  Heading = 270
)

// normalize maps any angle into [0, 360).
func (h Heading) normalize() Heading {
	h %= 360
	if h < 0 {
		h += 360
	}
	return h
}

// Opposite returns the heading rotated by 180 degrees.
func (h Heading) Opposite() Heading {
	return (h + 180).normalize()
}

// IsOpposite reports whether h points exactly the other way from o.
func (h Heading) IsOpposite(o Heading) bool {
	return h.normalize() == o.Opposite()
}

// Unit returns the unit vector for the heading.
// Cardinal headings are exact so repeated moves stay on the grid.
func (h Heading) Unit() Vec {
	switch h.normalize() {
	case HeadingRight:
		return Vec{X: 1}
	case HeadingUp:
		return Vec{Y: 1}
	case HeadingLeft:
		return Vec{X: -1}
	case HeadingDown:
		return Vec{Y: -1}
	}
	rad := float64(h) * math.Pi / 180
	return Vec{X: math.Cos(rad), Y: math.Sin(rad)}
}

func (h Heading) String() string {
	switch h.normalize() {
	case HeadingRight:
		return "right"
	case HeadingUp:
		return "up"
	case HeadingLeft:
		return "left"
	case HeadingDown:
		return "down"
	default:
		return fmt.Sprintf("%d°", int(h))
	}
}

// ParseHeading converts a cardinal name ("up", "down", "left", "right")
// into a Heading.
func ParseHeading(s string) (Heading, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right":
		return HeadingRight, nil
	case "up":
		return HeadingUp, nil
	case "left":
		return HeadingLeft, nil
	case "down":
		return HeadingDown, nil
	}
	return 0, fmt.Errorf("core: unknown heading %q", s)
}
