package lumen

import "math"

// Octant transforms mapping scan-local (dx, dy) offsets into map offsets.
// Each entry is {xx, xy, yx, yy}: mapDX = dx*xx + dy*xy, mapDY = dx*yx + dy*yy.
var octants = [8][4]int{
	{1, 0, 0, 1}, {0, 1, 1, 0}, {0, -1, 1, 0}, {-1, 0, 0, 1},
	{-1, 0, 0, -1}, {0, -1, -1, 0}, {0, 1, -1, 0}, {1, 0, 0, -1},
}

// scanFrame is one pending octant scan: rows from row outward, visible
// between the start and end slopes. Frames replace the usual recursion with
// an explicit worklist so stack usage stays flat regardless of radius.
type scanFrame struct {
	row        int
	start, end float64
}

// castParams configures one shadowcast pass. The scanner itself is output
// agnostic: emit receives every visible cell along with its metric distance
// from the origin, and the caller decides what to store. Graded and boolean
// outputs therefore lag behind a single geometry implementation and cannot
// disagree on which cells are lit.
type castParams struct {
	origin Position
	radius float64
	shape  Radius

	// Cone restriction; span and angle are ignored unless restrict is set.
	restrict    bool
	angle, span float64

	// inBounds reports whether a map cell exists. Cells outside are
	// skipped without aborting the scan.
	inBounds func(x, y int) bool
	// opaque reports whether a map cell blocks the sense. Only called
	// with in-bounds coordinates.
	opaque func(x, y int) bool
	// emit is called once per visible in-radius cell, excluding the
	// origin. Cells on octant seams are emitted more than once with the
	// same distance.
	emit func(x, y int, distance float64)
}

// castShadows runs the octant slope-interval scan for all eight octants.
// The origin cell is never emitted; callers light it by direct assignment.
// frames is an optional scratch worklist that is reused and returned to
// avoid per-call allocation.
func castShadows(p castParams, frames []scanFrame) []scanFrame {
	for _, oct := range octants {
		frames = scanOctant(p, oct[0], oct[1], oct[2], oct[3], frames[:0])
	}
	return frames
}

// scanOctant processes one octant. Rows are scanned at increasing distance
// while a [start, end] slope window tracks the still-visible interval:
// cells whose near slope exceeds start have not been reached yet, and the
// row is exhausted once a cell's far slope falls below end. Entering an
// opaque run pushes a continuation frame for the rows behind it, bounded by
// the narrowed end slope; leaving the run narrows start for the rest of the
// row.
func scanOctant(p castParams, xx, xy, yx, yy int, frames []scanFrame) []scanFrame {
	maxRow := int(math.Ceil(p.radius))
	frames = append(frames, scanFrame{row: 1, start: 1.0, end: 0.0})

	for len(frames) > 0 {
		f := frames[len(frames)-1]
		frames = frames[:len(frames)-1]
		if f.start < f.end {
			continue
		}

		start := f.start
		newStart := 0.0
		blocked := false
		for dist := f.row; dist <= maxRow && !blocked; dist++ {
			dy := -dist
			for dx := -dist; dx <= 0; dx++ {
				leftSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
				rightSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)
				if start < rightSlope {
					continue
				}
				if f.end > leftSlope {
					break
				}

				mapDX := dx*xx + dy*xy
				mapDY := dx*yx + dy*yy
				curX := p.origin.X + mapDX
				curY := p.origin.Y + mapDY
				if !p.inBounds(curX, curY) {
					continue
				}

				d := p.shape.Distance(float64(dx), float64(dy))
				if d <= p.radius {
					if !p.restrict || coneContains(p.angle, p.span, float64(mapDX), float64(mapDY)) {
						p.emit(curX, curY, d)
					}
				}

				if blocked {
					// Still inside an opaque run or just past it.
					if p.opaque(curX, curY) {
						newStart = rightSlope
					} else {
						blocked = false
						start = newStart
					}
				} else if p.opaque(curX, curY) && dist < maxRow {
					// Clear-to-opaque transition: the rows behind
					// this wall continue under a narrowed window.
					blocked = true
					frames = append(frames, scanFrame{row: dist + 1, start: start, end: leftSlope})
					newStart = rightSlope
				}
			}
		}
	}
	return frames
}
