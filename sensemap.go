package lumen

import "iter"

// SenseMap aggregates any number of SenseSources into one map-wide result
// grid. Calculate runs the fixed two-phase protocol: compute every enabled
// source to completion into its local buffer, then merge the finished
// buffers into map space taking the maximum intensity per cell. The merge
// is therefore independent of source order, and a source whose own
// calculation fails fast can never leave partial writes in the map grid.
//
// Across calculations the map tracks which positions became newly lit and
// newly unlit; see NewlySeen and NewlyUnseen.
//
// A SenseMap is not safe for concurrent use, and the resistance view must
// not be mutated while a calculation is running.
type SenseMap struct {
	// OnReset, if set, is called at the start of every full Calculate,
	// before any source is computed, so dependent state can
	// resynchronize. CalculateAppend never calls it.
	OnReset func()

	res     ResistanceView
	sources []*SenseSource
	cells   []float64
	w, h    int

	current  map[Position]struct{}
	previous map[Position]struct{}
}

// NewSenseMap creates a SenseMap over the given resistance view.
func NewSenseMap(res ResistanceView) *SenseMap {
	if res == nil {
		panic("lumen: NewSenseMap requires a resistance view")
	}
	w, h := res.Width(), res.Height()
	return &SenseMap{
		res:      res,
		cells:    make([]float64, w*h),
		w:        w,
		h:        h,
		current:  make(map[Position]struct{}),
		previous: make(map[Position]struct{}),
	}
}

// AddSource registers a source with the map. The map does not take
// ownership: the caller keeps mutating position, radius, and the rest
// between calculations.
func (m *SenseMap) AddSource(s *SenseSource) {
	if s == nil {
		panic("lumen: AddSource requires a source")
	}
	m.sources = append(m.sources, s)
}

// RemoveSource unregisters a source. Removing a source that was never
// added is a no-op. The map grid is unchanged until the next Calculate.
func (m *SenseMap) RemoveSource(s *SenseSource) {
	for i, existing := range m.sources {
		if existing == s {
			m.sources = append(m.sources[:i], m.sources[i+1:]...)
			return
		}
	}
}

// Sources returns the registered sources. The returned slice must not be
// mutated.
func (m *SenseMap) Sources() []*SenseSource { return m.sources }

// Width returns the map width in cells.
func (m *SenseMap) Width() int { return m.w }

// Height returns the map height in cells.
func (m *SenseMap) Height() int { return m.h }

// Calculate recomputes the whole map: the previous lit set is snapshotted
// for diff tracking, the result grid is zeroed, every enabled source is
// computed to completion, and the finished buffers are max-merged.
func (m *SenseMap) Calculate() {
	if m.OnReset != nil {
		m.OnReset()
	}

	// Snapshot the lit set by swapping the two sets and rebuilding the
	// current one; the map backing is reused across calculations.
	m.current, m.previous = m.previous, m.current
	clear(m.current)
	clear(m.cells)

	// Phase one: every source finishes before any merging starts.
	for _, s := range m.sources {
		if s.Enabled {
			s.Calculate(m.res)
		}
	}
	// Phase two: order-independent max merge.
	for _, s := range m.sources {
		if s.Enabled {
			m.merge(s)
		}
	}
}

// CalculateAppend registers the source if needed, computes just that
// source, and max-merges it into the existing grid without recomputing or
// clearing anything already merged. The previous lit set is left alone, so
// diff tracking still compares against the last full Calculate.
func (m *SenseMap) CalculateAppend(s *SenseSource) {
	if s == nil {
		panic("lumen: CalculateAppend requires a source")
	}
	if s.Enabled {
		s.Calculate(m.res)
		m.merge(s)
	}
	// Register only after a successful calculation, so a source that
	// fails fast does not poison later full calculations.
	for _, existing := range m.sources {
		if existing == s {
			return
		}
	}
	m.sources = append(m.sources, s)
}

// merge blits a computed source buffer into map space with a per-cell max.
// Positions outside the map are dropped.
func (m *SenseMap) merge(s *SenseSource) {
	if !s.calculated {
		return
	}
	c := s.allocRadius
	n := s.size()
	for ly := 0; ly < n; ly++ {
		gy := s.Position.Y - c + ly
		if gy < 0 || gy >= m.h {
			continue
		}
		for lx := 0; lx < n; lx++ {
			v := s.light[ly*n+lx]
			if v <= 0 {
				continue
			}
			gx := s.Position.X - c + lx
			if gx < 0 || gx >= m.w {
				continue
			}
			i := gy*m.w + gx
			if v > m.cells[i] {
				m.cells[i] = v
			}
			m.current[Position{gx, gy}] = struct{}{}
		}
	}
}

// IntensityAt returns the merged intensity at (x, y). Positions outside the
// map are dark.
func (m *SenseMap) IntensityAt(x, y int) float64 {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return 0
	}
	return m.cells[y*m.w+x]
}

// IsLit reports whether (x, y) holds any sense value. Equivalent to
// IntensityAt(x, y) > 0.
func (m *SenseMap) IsLit(x, y int) bool { return m.IntensityAt(x, y) > 0 }

// LitCount returns the number of currently lit positions.
func (m *SenseMap) LitCount() int { return len(m.current) }

// CurrentlyLit yields every position holding a sense value after the most
// recent calculation. The sequence is lazy and restartable; it is valid
// until the next Calculate.
func (m *SenseMap) CurrentlyLit() iter.Seq[Position] {
	set := m.current
	return func(yield func(Position) bool) {
		for pos := range set {
			if !yield(pos) {
				return
			}
		}
	}
}

// NewlySeen yields the positions that are lit now but were not lit before
// the most recent full Calculate. Lazy and restartable; valid until the
// next Calculate.
func (m *SenseMap) NewlySeen() iter.Seq[Position] {
	return diffSeq(m.current, m.previous)
}

// NewlyUnseen yields the positions that were lit before the most recent
// full Calculate but are not lit now. Lazy and restartable; valid until
// the next Calculate.
func (m *SenseMap) NewlyUnseen() iter.Seq[Position] {
	return diffSeq(m.previous, m.current)
}

// diffSeq yields the members of a that are absent from b.
func diffSeq(a, b map[Position]struct{}) iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for pos := range a {
			if _, ok := b[pos]; ok {
				continue
			}
			if !yield(pos) {
				return
			}
		}
	}
}
