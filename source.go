package lumen

import (
	"fmt"
	"math"
)

// SourceType selects the spread algorithm a SenseSource uses. Shadow is the
// exact occlusion algorithm; the Ripple variants diffuse around corners,
// with looser variants wrapping further.
type SourceType int

const (
	// SourceShadow computes exact visibility with shadowcasting.
	SourceShadow SourceType = iota
	// SourceRipple diffuses with two sampled neighbors per cell.
	SourceRipple
	// SourceRippleTight diffuses with one sampled neighbor per cell.
	SourceRippleTight
	// SourceRippleLoose diffuses with three sampled neighbors per cell.
	SourceRippleLoose
	// SourceRippleVeryLoose diffuses with six sampled neighbors per cell.
	SourceRippleVeryLoose
)

func (t SourceType) String() string {
	switch t {
	case SourceShadow:
		return "Shadow"
	case SourceRipple:
		return "Ripple"
	case SourceRippleTight:
		return "RippleTight"
	case SourceRippleLoose:
		return "RippleLoose"
	case SourceRippleVeryLoose:
		return "RippleVeryLoose"
	}
	return "Unknown"
}

// rippleNeighbors returns how many nearest already-lit neighbors the ripple
// variant samples when computing a cell's value. Zero for non-ripple types.
func (t SourceType) rippleNeighbors() int {
	switch t {
	case SourceRippleTight:
		return 1
	case SourceRipple:
		return 2
	case SourceRippleLoose:
		return 3
	case SourceRippleVeryLoose:
		return 6
	}
	return 0
}

// SenseSource is one origin of a propagating sense: a position, a maximum
// radius, a starting intensity, a spread algorithm, and an optional cone
// restriction. Each source owns a local result buffer sized
// (2*ceil(Radius)+1)^2 in source-relative coordinates; a SenseMap merges
// these buffers into map space.
//
// Position, Radius, Intensity, Shape, and the cone fields may be mutated
// freely between calculations. Radius changes are detected at the start of
// the next Calculate and trigger reallocation of the local buffer; all
// other changes are picked up without reallocation.
type SenseSource struct {
	// Type selects the spread algorithm. Fixed at construction.
	Type SourceType
	// Position is the source's location on the map.
	Position Position
	// Radius is the maximum spread distance in cells. Must be >= 0; a
	// radius of zero lights only the origin.
	Radius float64
	// Shape selects the radius shape and distance metric.
	Shape Radius
	// Intensity is the sense strength at the origin. Defaults to 1.0.
	// The per-distance decay is Intensity / (Radius + 1), so the sense
	// reaches exactly zero at Radius+1.
	Intensity float64
	// Enabled determines whether SenseMap.Calculate computes this source.
	// Disabled sources are skipped entirely.
	Enabled bool

	// ConeRestricted limits the spread to a directional wedge described
	// by Angle and Span.
	ConeRestricted bool
	// Angle is the wedge center in degrees, measured clockwise with 0
	// pointing up.
	Angle float64
	// Span is the total wedge width in degrees. Must be in (0, 360]
	// when ConeRestricted is set.
	Span float64

	decay       float64
	light       []float64 // local buffer, (2*allocRadius+1)^2, row-major
	nearLight   []bool    // ripple work-avoidance marks, same layout
	queue       []int     // ripple work queue of local indices, reused
	frames      []scanFrame
	neighborBuf []int
	allocRadius int // ceil(Radius) the buffers were sized for
	calculated  bool

	// disablePruning turns off the ripple nearLight skip. The converged
	// result must be identical either way; tests assert exactly that.
	disablePruning bool
}

// NewSenseSource creates a source with the given algorithm, position,
// radius, and shape. Intensity defaults to 1.0 and the source starts
// enabled. Radius must be >= 0.
func NewSenseSource(t SourceType, pos Position, radius float64, shape Radius) *SenseSource {
	if radius < 0 {
		panic(fmt.Sprintf("lumen: sense source radius must be >= 0, got %v", radius))
	}
	return &SenseSource{
		Type:        t,
		Position:    pos,
		Radius:      radius,
		Shape:       shape,
		Intensity:   1.0,
		Enabled:     true,
		allocRadius: -1,
	}
}

// NewConeSenseSource creates a cone-restricted source. Angle is the wedge
// center in degrees clockwise from up; span is the total wedge width and
// must be in (0, 360].
func NewConeSenseSource(t SourceType, pos Position, radius float64, shape Radius, angle, span float64) *SenseSource {
	s := NewSenseSource(t, pos, radius, shape)
	if span <= 0 || span > 360 {
		panic(fmt.Sprintf("lumen: cone span must be in (0, 360], got %v", span))
	}
	s.ConeRestricted = true
	s.Angle = angle
	s.Span = span
	return s
}

// Decay returns the per-distance-unit intensity reduction used by the most
// recent Calculate: Intensity / (Radius + 1).
func (s *SenseSource) Decay() float64 { return s.decay }

// Calculate computes the source's spread over the given resistance view
// into the source's local buffer. The view must cover every map position
// the source can reach; lookups outside it are treated as fully opaque.
//
// This is phase one of the two-phase protocol: compute every source, then
// let the SenseMap merge the finished buffers. SenseMap.Calculate does both
// phases for registered sources, so calling this directly is only needed
// when computing a source standalone.
func (s *SenseSource) Calculate(res ResistanceView) {
	if res == nil {
		panic("lumen: SenseSource.Calculate requires a resistance view")
	}
	if s.Radius < 0 {
		panic(fmt.Sprintf("lumen: sense source radius must be >= 0, got %v", s.Radius))
	}
	if s.ConeRestricted && (s.Span <= 0 || s.Span > 360) {
		panic(fmt.Sprintf("lumen: cone span must be in (0, 360], got %v", s.Span))
	}

	s.ensureBuffers()
	s.decay = s.Intensity / (s.Radius + 1)

	// The origin is always lit by direct assignment, never by scanning.
	s.light[s.centerIndex()] = s.Intensity
	s.calculated = true
	if s.Radius == 0 || s.Intensity <= 0 {
		return
	}

	if s.Type == SourceShadow {
		s.spreadShadow(res)
	} else {
		s.spreadRipple(res)
	}
}

// ensureBuffers reallocates the local buffers when the radius changed since
// the last calculation, and clears them otherwise. Detection is a pull
// check here rather than a setter-side notification.
func (s *SenseSource) ensureBuffers() {
	c := int(math.Ceil(s.Radius))
	if c != s.allocRadius {
		s.allocRadius = c
		n := 2*c + 1
		s.light = make([]float64, n*n)
		s.nearLight = make([]bool, n*n)
		return
	}
	clear(s.light)
	clear(s.nearLight)
}

// size returns the local buffer edge length.
func (s *SenseSource) size() int { return 2*s.allocRadius + 1 }

func (s *SenseSource) centerIndex() int {
	return s.allocRadius*s.size() + s.allocRadius
}

// localIntensityAt returns the computed intensity at a map position, or 0
// if the position is outside the local buffer. Used by tests and by
// SenseMap's merge step.
func (s *SenseSource) localIntensityAt(x, y int) float64 {
	lx := x - s.Position.X + s.allocRadius
	ly := y - s.Position.Y + s.allocRadius
	n := s.size()
	if lx < 0 || ly < 0 || lx >= n || ly >= n {
		return 0
	}
	return s.light[ly*n+lx]
}

// spreadShadow fills the local buffer using the octant scanner. Cells at or
// above the source intensity in resistance block the scan; cells outside
// the view are skipped.
func (s *SenseSource) spreadShadow(res ResistanceView) {
	w, h := res.Width(), res.Height()
	s.frames = castShadows(castParams{
		origin:   s.Position,
		radius:   s.Radius,
		shape:    s.Shape,
		restrict: s.ConeRestricted,
		angle:    s.Angle,
		span:     s.Span,
		inBounds: func(x, y int) bool {
			return x >= 0 && y >= 0 && x < w && y < h
		},
		opaque: func(x, y int) bool {
			return res.ResistanceAt(x, y) >= s.Intensity
		},
		emit: func(x, y int, distance float64) {
			bright := s.Intensity - s.decay*distance
			if bright <= 0 {
				return
			}
			lx := x - s.Position.X + s.allocRadius
			ly := y - s.Position.Y + s.allocRadius
			s.light[ly*s.size()+lx] = bright
		},
	}, s.frames)
}
