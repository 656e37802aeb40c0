package core

import (
	"math"
	"testing"
)

func TestVecNormalize(t *testing.T) {
	tests := []struct {
		name string
		v    Vec2
		ok   bool
	}{
		{"axis", V(3, 0), true},
		{"diagonal", V(-3, 4), true},
		{"tiny", V(1e-6, -1e-6), true},
		{"zero", V(0, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n, ok := tc.v.Normalize()
			if ok != tc.ok {
				t.Fatalf("Normalize() ok = %v, expected %v", ok, tc.ok)
			}
			if !ok {
				return
			}
			if math.Abs(n.Len()-1) > 1e-9 {
				t.Errorf("Normalize() length = %f, expected 1", n.Len())
			}
			if n.Dot(tc.v) <= 0 {
				t.Errorf("Normalize() flipped direction: %v -> %v", tc.v, n)
			}
		})
	}
}

func TestVecArithmetic(t *testing.T) {
	a := V(1, 2)
	b := V(3, -4)

	if got := a.Add(b); got != V(4, -2) {
		t.Errorf("Add() = %v, expected (4, -2)", got)
	}
	if got := a.Sub(b); got != V(-2, 6) {
		t.Errorf("Sub() = %v, expected (-2, 6)", got)
	}
	if got := a.Scale(3); got != V(3, 6) {
		t.Errorf("Scale() = %v, expected (3, 6)", got)
	}
	if got := a.Dot(b); got != -5 {
		t.Errorf("Dot() = %f, expected -5", got)
	}
	if got := b.Len(); got != 5 {
		t.Errorf("Len() = %f, expected 5", got)
	}
}

func TestAABBOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     AABB
		expected bool
	}{
		{"overlapping", Box(V(0, 0), 5, 5), Box(V(6, 6), 5, 5), true},
		{"apart horizontal", Box(V(0, 0), 5, 5), Box(V(20, 0), 5, 5), false},
		{"apart vertical", Box(V(0, 0), 5, 5), Box(V(0, 20), 5, 5), false},
		{"touching edges", Box(V(0, 0), 5, 5), Box(V(10, 0), 5, 5), false},
		{"contained", Box(V(0, 0), 10, 10), Box(V(1, 1), 2, 2), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestAABBPenetration(t *testing.T) {
	a := Box(V(0, 0), 5, 5)
	b := Box(V(8, 3), 5, 5)

	px, py := a.Penetration(b)
	if px != 2 || py != 7 {
		t.Errorf("Penetration() = (%f, %f), expected (2, 7)", px, py)
	}
	if a.Min() != V(-5, -5) || a.Max() != V(5, 5) {
		t.Errorf("Min/Max = %v/%v, expected (-5,-5)/(5,5)", a.Min(), a.Max())
	}
}

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping rects", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"non-overlapping horizontal", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"adjacent vertical (no overlap)", NewRect(0, 0, 10, 10), NewRect(0, 10, 10, 10), false},
		{"single pixel overlap", NewRect(0, 0, 10, 10), NewRect(9, 9, 10, 10), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	if !r.Contains(10, 10) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(30, 25) {
		t.Error("bottom-right edge should be exclusive")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}

	if got := ClampF(0.5, 0, 0.2); got != 0.2 {
		t.Errorf("ClampF(0.5, 0, 0.2) = %f, expected 0.2", got)
	}
}
