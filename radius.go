package lumen

import (
	"iter"
	"math"
)

// Radius selects the shape a sense spreads in, and with it the distance
// metric used to measure that spread: squares grow under Chebyshev
// distance, diamonds under Manhattan, and circles under Euclidean.
type Radius int

const (
	// RadiusSquare spreads in a square (Chebyshev distance).
	RadiusSquare Radius = iota
	// RadiusDiamond spreads in a diamond (Manhattan distance).
	RadiusDiamond
	// RadiusCircle spreads in a circle (Euclidean distance).
	RadiusCircle
)

func (r Radius) String() string {
	switch r {
	case RadiusSquare:
		return "Square"
	case RadiusDiamond:
		return "Diamond"
	case RadiusCircle:
		return "Circle"
	}
	return "Unknown"
}

// Distance returns the length of the offset (dx, dy) under the shape's
// metric.
func (r Radius) Distance(dx, dy float64) float64 {
	switch r {
	case RadiusSquare:
		return math.Max(math.Abs(dx), math.Abs(dy))
	case RadiusDiamond:
		return math.Abs(dx) + math.Abs(dy)
	default:
		return math.Sqrt(dx*dx + dy*dy)
	}
}

// DistanceBetween returns the distance from a to b under the shape's metric.
func (r Radius) DistanceBetween(a, b Position) float64 {
	return r.Distance(float64(b.X-a.X), float64(b.Y-a.Y))
}

// Neighbor direction vectors in clockwise order starting from up,
// matching the 0-degrees-is-up angle convention used by cones.
var (
	dirsAll = [8]Position{
		{0, -1}, {1, -1}, {1, 0}, {1, 1},
		{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
	}
	dirsCardinal = [4]Position{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
)

// Directions returns the neighbor directions a sense spreads through under
// this shape: the four cardinals for diamonds, all eight for squares and
// circles. The returned slice is shared and must not be mutated.
func (r Radius) Directions() []Position {
	if r == RadiusDiamond {
		return dirsCardinal[:]
	}
	return dirsAll[:]
}

// PositionsIn yields every position within the given distance of center
// under the shape's metric, scanning the bounding square in row-major
// order. Positions are not bounds-checked against any grid.
func (r Radius) PositionsIn(center Position, radius float64) iter.Seq[Position] {
	return func(yield func(Position) bool) {
		if radius < 0 {
			return
		}
		c := int(math.Ceil(radius))
		for dy := -c; dy <= c; dy++ {
			for dx := -c; dx <= c; dx++ {
				if r.Distance(float64(dx), float64(dy)) > radius {
					continue
				}
				if !yield(Position{center.X + dx, center.Y + dy}) {
					return
				}
			}
		}
	}
}

// coneContains reports whether the offset (dx, dy) falls inside a cone of
// the given total span centered on angle. Angles are in degrees, measured
// clockwise with 0 pointing up.
func coneContains(angle, span, dx, dy float64) bool {
	cell := math.Atan2(dx, -dy) * 180 / math.Pi
	diff := math.Mod(cell-angle, 360)
	if diff < 0 {
		diff += 360
	}
	if diff > 180 {
		diff = 360 - diff
	}
	return diff <= span/2
}
