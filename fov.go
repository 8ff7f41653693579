package lumen

import (
	"fmt"
	"iter"
	"math"
)

// FOV computes field of view for an observer over a TransparencyView,
// writing straight into a map-sized result grid. It produces a graded
// result (1.0 at the observer falling linearly to zero past the radius)
// and a boolean result in the same pass, so the two can never disagree on
// which cells are visible.
//
// Like SenseMap, an FOV tracks which positions became newly visible and
// newly hidden between full calculations.
type FOV struct {
	// OnReset, if set, is called at the start of every full Calculate,
	// before any scanning. The append variants never call it.
	OnReset func()

	view    TransparencyView
	light   []float64
	visible []bool
	w, h    int

	current  map[Position]struct{}
	previous map[Position]struct{}

	frames []scanFrame
}

// NewFOV creates an FOV calculator over the given transparency view.
func NewFOV(view TransparencyView) *FOV {
	if view == nil {
		panic("lumen: NewFOV requires a transparency view")
	}
	w, h := view.Width(), view.Height()
	return &FOV{
		view:     view,
		light:    make([]float64, w*h),
		visible:  make([]bool, w*h),
		w:        w,
		h:        h,
		current:  make(map[Position]struct{}),
		previous: make(map[Position]struct{}),
	}
}

// Width returns the map width in cells.
func (f *FOV) Width() int { return f.w }

// Height returns the map height in cells.
func (f *FOV) Height() int { return f.h }

// Calculate computes unrestricted visibility from (originX, originY) out to
// radius under the given shape, replacing the previous result. The prior
// visible set is snapshotted for NewlySeen and NewlyUnseen.
func (f *FOV) Calculate(originX, originY int, radius float64, shape Radius) {
	f.validate(originX, originY, radius)
	f.reset()
	f.scan(originX, originY, radius, shape, false, 0, 0)
}

// CalculateCone is Calculate restricted to a directional wedge. Angle is
// the wedge center in degrees clockwise from up; span is the total wedge
// width and must be in (0, 360].
func (f *FOV) CalculateCone(originX, originY int, radius float64, shape Radius, angle, span float64) {
	f.validate(originX, originY, radius)
	if span <= 0 || span > 360 {
		panic(fmt.Sprintf("lumen: cone span must be in (0, 360], got %v", span))
	}
	f.reset()
	f.scan(originX, originY, radius, shape, true, angle, span)
}

// CalculateAppend computes visibility for one more observer and merges it
// into the existing result with a per-cell max, without clearing what is
// already there. The snapshot from the last full Calculate is untouched.
func (f *FOV) CalculateAppend(originX, originY int, radius float64, shape Radius) {
	f.validate(originX, originY, radius)
	f.scan(originX, originY, radius, shape, false, 0, 0)
}

// CalculateAppendCone is CalculateAppend restricted to a directional wedge.
func (f *FOV) CalculateAppendCone(originX, originY int, radius float64, shape Radius, angle, span float64) {
	f.validate(originX, originY, radius)
	if span <= 0 || span > 360 {
		panic(fmt.Sprintf("lumen: cone span must be in (0, 360], got %v", span))
	}
	f.scan(originX, originY, radius, shape, true, angle, span)
}

// validate fails fast before any state is touched, so a bad call leaves
// the previous result and diff snapshot intact.
func (f *FOV) validate(originX, originY int, radius float64) {
	if radius < 0 {
		panic(fmt.Sprintf("lumen: fov radius must be >= 0, got %v", radius))
	}
	if originX < 0 || originY < 0 || originX >= f.w || originY >= f.h {
		panic(fmt.Sprintf("lumen: fov origin (%d,%d) out of bounds for %dx%d map", originX, originY, f.w, f.h))
	}
}

func (f *FOV) reset() {
	if f.OnReset != nil {
		f.OnReset()
	}
	f.current, f.previous = f.previous, f.current
	clear(f.current)
	clear(f.light)
	clear(f.visible)
}

func (f *FOV) scan(originX, originY int, radius float64, shape Radius, restrict bool, angle, span float64) {
	decay := 1.0 / (radius + 1)
	f.mark(originX, originY, 1.0)
	if radius == 0 {
		return
	}

	f.frames = castShadows(castParams{
		origin:   Position{originX, originY},
		radius:   radius,
		shape:    shape,
		restrict: restrict,
		angle:    angle,
		span:     span,
		inBounds: func(x, y int) bool {
			return x >= 0 && y >= 0 && x < f.w && y < f.h
		},
		opaque: func(x, y int) bool {
			return !f.view.TransparentAt(x, y)
		},
		emit: func(x, y int, distance float64) {
			f.mark(x, y, math.Max(1.0-decay*distance, 0))
		},
	}, f.frames)
}

// mark records a visible cell with a max merge, so append calculations from
// several observers compose the same way SenseMap merges sources.
func (f *FOV) mark(x, y int, bright float64) {
	if bright <= 0 {
		return
	}
	i := y*f.w + x
	if bright > f.light[i] {
		f.light[i] = bright
	}
	f.visible[i] = true
	f.current[Position{x, y}] = struct{}{}
}

// IntensityAt returns the graded visibility at (x, y): 1.0 at an observer
// falling linearly to zero past the radius. Positions outside the map are
// dark.
func (f *FOV) IntensityAt(x, y int) float64 {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return 0
	}
	return f.light[y*f.w+x]
}

// IsVisible reports whether (x, y) is in view. Always identical to
// IntensityAt(x, y) > 0.
func (f *FOV) IsVisible(x, y int) bool {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return false
	}
	return f.visible[y*f.w+x]
}

// VisibleCount returns the number of currently visible positions.
func (f *FOV) VisibleCount() int { return len(f.current) }

// CurrentFOV yields every currently visible position. Lazy and
// restartable; valid until the next full Calculate.
func (f *FOV) CurrentFOV() iter.Seq[Position] {
	set := f.current
	return func(yield func(Position) bool) {
		for pos := range set {
			if !yield(pos) {
				return
			}
		}
	}
}

// NewlySeen yields the positions visible now that were not visible before
// the most recent full Calculate. Lazy and restartable.
func (f *FOV) NewlySeen() iter.Seq[Position] {
	return diffSeq(f.current, f.previous)
}

// NewlyUnseen yields the positions visible before the most recent full
// Calculate that are not visible now. Lazy and restartable.
func (f *FOV) NewlyUnseen() iter.Seq[Position] {
	return diffSeq(f.previous, f.current)
}
