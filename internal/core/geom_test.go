package core

import (
	"math"
	"testing"
)

func TestVecDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec
		expected float64
	}{
		{"same point", V(0, 0), V(0, 0), 0},
		{"horizontal", V(0, 0), V(20, 0), 20},
		{"vertical", V(0, -40), V(0, 0), 40},
		{"3-4-5", V(1, 1), V(4, 5), 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Distance(tc.b); math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Distance() = %v, expected %v", got, tc.expected)
			}
			// Also test symmetry
			if got := tc.b.Distance(tc.a); math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Distance() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestVecArithmetic(t *testing.T) {
	v := V(3, -4)
	if got := v.Add(V(1, 1)); got != V(4, -3) {
		t.Errorf("Add() = %v, expected (4,-3)", got)
	}
	if got := v.Sub(V(3, -4)); got != V(0, 0) {
		t.Errorf("Sub() = %v, expected (0,0)", got)
	}
	if got := v.Scale(2); got != V(6, -8) {
		t.Errorf("Scale() = %v, expected (6,-8)", got)
	}
	if got := v.Len(); got != 5 {
		t.Errorf("Len() = %v, expected 5", got)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 {
		t.Error("Min(5, 10) should be 5")
	}
	if Min(10, 5) != 5 {
		t.Error("Min(10, 5) should be 5")
	}
	if Max(5, 10) != 10 {
		t.Error("Max(5, 10) should be 10")
	}
	if Max(10, 5) != 10 {
		t.Error("Max(10, 5) should be 10")
	}
}

func TestHeadingOpposite(t *testing.T) {
	tests := []struct {
		h, opposite Heading
	}{
		{HeadingRight, HeadingLeft},
		{HeadingLeft, HeadingRight},
		{HeadingUp, HeadingDown},
		{HeadingDown, HeadingUp},
	}

	for _, tc := range tests {
		t.Run(tc.h.String(), func(t *testing.T) {
			if got := tc.h.Opposite(); got != tc.opposite {
				t.Errorf("Opposite() = %v, expected %v", got, tc.opposite)
			}
			if !tc.h.IsOpposite(tc.opposite) {
				t.Errorf("%v.IsOpposite(%v) should be true", tc.h, tc.opposite)
			}
			if tc.h.IsOpposite(tc.h) {
				t.Errorf("%v.IsOpposite(itself) should be false", tc.h)
			}
		})
	}

	if HeadingUp.IsOpposite(HeadingRight) {
		t.Error("perpendicular headings are not opposite")
	}
	if !Heading(-90).IsOpposite(HeadingUp) {
		t.Error("-90 should normalise to down")
	}
}

func TestHeadingUnit(t *testing.T) {
	tests := []struct {
		h        Heading
		expected Vec
	}{
		{HeadingRight, V(1, 0)},
		{HeadingUp, V(0, 1)},
		{HeadingLeft, V(-1, 0)},
		{HeadingDown, V(0, -1)},
		{Heading(450), V(0, 1)},
	}

	for _, tc := range tests {
		if got := tc.h.Unit(); got != tc.expected {
			t.Errorf("%v.Unit() = %v, expected %v", tc.h, got, tc.expected)
		}
	}

	diag := Heading(45).Unit()
	if math.Abs(diag.Len()-1) > 1e-9 {
		t.Errorf("non-cardinal unit vector should have length 1, got %v", diag.Len())
	}
}

func TestParseHeading(t *testing.T) {
	for _, name := range []string{"up", "Down", " left ", "RIGHT"} {
		h, err := ParseHeading(name)
		if err != nil {
			t.Errorf("ParseHeading(%q) failed: %v", name, err)
			continue
		}
		again, _ := ParseHeading(h.String())
		if again != h {
			t.Errorf("round trip of %q gave %v", name, again)
		}
	}

	if _, err := ParseHeading("north"); err == nil {
		t.Error("ParseHeading(north) should fail")
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("blue")
	if err != nil || c != ColorBlue {
		t.Errorf("ParseColor(blue) = %v, %v", c, err)
	}
	c, err = ParseColor("")
	if err != nil || c != ColorDefault {
		t.Errorf("ParseColor(\"\") = %v, %v", c, err)
	}
	if _, err := ParseColor("chartreuse"); err == nil {
		t.Error("ParseColor(chartreuse) should fail")
	}
}
