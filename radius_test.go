package lumen

import (
	"math"
	"testing"
)

func TestRadiusDistance(t *testing.T) {
	tests := []struct {
		shape  Radius
		dx, dy float64
		want   float64
	}{
		{RadiusSquare, 3, 4, 4},
		{RadiusSquare, -5, 2, 5},
		{RadiusSquare, 0, 0, 0},
		{RadiusDiamond, 3, 4, 7},
		{RadiusDiamond, -5, 2, 7},
		{RadiusDiamond, 0, -6, 6},
		{RadiusCircle, 3, 4, 5},
		{RadiusCircle, -3, -4, 5},
		{RadiusCircle, 1, 1, math.Sqrt2},
	}
	for _, tt := range tests {
		got := tt.shape.Distance(tt.dx, tt.dy)
		if !approxEqual(got, tt.want, 1e-9) {
			t.Errorf("%v.Distance(%v,%v) = %v, want %v", tt.shape, tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestRadiusDistanceBetween(t *testing.T) {
	a := Position{2, 3}
	b := Position{5, 7}
	if got := RadiusCircle.DistanceBetween(a, b); !approxEqual(got, 5, 1e-9) {
		t.Errorf("DistanceBetween = %v, want 5", got)
	}
	if got := RadiusCircle.DistanceBetween(b, a); !approxEqual(got, 5, 1e-9) {
		t.Errorf("DistanceBetween reversed = %v, want 5", got)
	}
}

func TestRadiusString(t *testing.T) {
	if RadiusSquare.String() != "Square" || RadiusDiamond.String() != "Diamond" || RadiusCircle.String() != "Circle" {
		t.Errorf("Radius strings = %q %q %q", RadiusSquare, RadiusDiamond, RadiusCircle)
	}
}

func TestRadiusDirections(t *testing.T) {
	if got := len(RadiusDiamond.Directions()); got != 4 {
		t.Errorf("Diamond directions = %d, want 4", got)
	}
	if got := len(RadiusSquare.Directions()); got != 8 {
		t.Errorf("Square directions = %d, want 8", got)
	}
	if got := len(RadiusCircle.Directions()); got != 8 {
		t.Errorf("Circle directions = %d, want 8", got)
	}

	// All directions must be unit steps.
	for _, d := range RadiusSquare.Directions() {
		if d.X < -1 || d.X > 1 || d.Y < -1 || d.Y > 1 || (d.X == 0 && d.Y == 0) {
			t.Errorf("bad direction %v", d)
		}
	}
}

func TestPositionsInCounts(t *testing.T) {
	tests := []struct {
		shape  Radius
		radius float64
		want   int
	}{
		{RadiusSquare, 1, 9},
		{RadiusSquare, 2, 25},
		{RadiusDiamond, 1, 5},
		{RadiusDiamond, 2, 13},
		{RadiusCircle, 1, 5},
		{RadiusCircle, 1.5, 9},
	}
	for _, tt := range tests {
		count := 0
		for range tt.shape.PositionsIn(Position{10, 10}, tt.radius) {
			count++
		}
		if count != tt.want {
			t.Errorf("%v.PositionsIn radius %v yielded %d positions, want %d", tt.shape, tt.radius, count, tt.want)
		}
	}
}

func TestPositionsInMembership(t *testing.T) {
	center := Position{0, 0}
	for pos := range RadiusCircle.PositionsIn(center, 4) {
		if RadiusCircle.DistanceBetween(center, pos) > 4 {
			t.Errorf("position %v outside radius 4", pos)
		}
	}
}

func TestPositionsInNegativeRadiusEmpty(t *testing.T) {
	for pos := range RadiusSquare.PositionsIn(Position{0, 0}, -1) {
		t.Errorf("negative radius yielded %v", pos)
	}
}

func TestPositionsInEarlyStop(t *testing.T) {
	// Breaking out of the loop must not panic or keep yielding.
	count := 0
	for range RadiusSquare.PositionsIn(Position{0, 0}, 3) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestConeContains(t *testing.T) {
	tests := []struct {
		angle, span float64
		dx, dy      float64
		want        bool
	}{
		// Up cone.
		{0, 90, 0, -1, true},
		{0, 90, 1, -1, true},   // 45 degrees, on the edge
		{0, 90, 1, 0, false},   // due right
		{0, 90, 0, 1, false},   // due down
		{0, 360, -3, 2, true},  // full circle sees everything
		{90, 90, 1, 0, true},   // right cone sees right
		{90, 90, 0, -1, false}, // right cone misses up
		// Wraparound across 0 degrees.
		{350, 40, 0, -1, true},
		{350, 40, -1, -5, true},
		{350, 40, 1, 0, false},
	}
	for _, tt := range tests {
		got := coneContains(tt.angle, tt.span, tt.dx, tt.dy)
		if got != tt.want {
			t.Errorf("coneContains(angle=%v, span=%v, d=(%v,%v)) = %v, want %v",
				tt.angle, tt.span, tt.dx, tt.dy, got, tt.want)
		}
	}
}
