package lumen

import "math"

// Ripple diffusion. Intensity bleeds outward from the origin through the
// shape's neighbor directions using a work queue: every dequeued cell
// re-evaluates its neighbors, and a neighbor whose value improves is
// enqueued in turn. A cell's value is derived from its nearest
// already-brighter neighbors, so looser variants (more sampled neighbors)
// wrap further around corners.
//
// Termination: a cell is only enqueued on a strict improvement, every hop
// loses at least decay (> 0), and values are capped at the source
// intensity, so the number of improvements per cell is finite.

// spreadRipple fills the local buffer by diffusion over the resistance
// view. Opaque cells (resistance >= intensity) still receive values but
// are never enqueued, halting spread through them.
func (s *SenseSource) spreadRipple(res ResistanceView) {
	sample := s.Type.rippleNeighbors()
	dirs := s.Shape.Directions()
	n := s.size()
	c := s.allocRadius

	q := append(s.queue[:0], s.centerIndex())
	for head := 0; head < len(q); head++ {
		i := q[head]
		if s.light[i] <= 0 {
			continue
		}
		if s.nearLight[i] && !s.disablePruning {
			// Work avoidance only: marked cells have nothing new to
			// contribute. The converged values are unaffected.
			continue
		}
		px, py := i%n, i/n
		for _, d := range dirs {
			lx, ly := px+d.X, py+d.Y
			if lx < 0 || ly < 0 || lx >= n || ly >= n {
				continue
			}
			if s.Shape.Distance(float64(lx-c), float64(ly-c)) > s.Radius {
				continue
			}
			gx := s.Position.X + lx - c
			gy := s.Position.Y + ly - c
			if gx < 0 || gy < 0 || gx >= res.Width() || gy >= res.Height() {
				// Off the view: fully opaque, receives nothing.
				continue
			}
			if s.ConeRestricted && !coneContains(s.Angle, s.Span, float64(lx-c), float64(ly-c)) {
				continue
			}
			j := ly*n + lx
			candidate := s.nearRippleLight(lx, ly, sample, dirs, res)
			if candidate > s.light[j] {
				s.light[j] = candidate
				if res.ResistanceAt(gx, gy) < s.Intensity {
					q = append(q, j)
				}
			}
		}
	}
	s.queue = q[:0]
}

// nearRippleLight computes the candidate value for local cell (lx, ly) from
// the sample nearest-to-origin in-view neighbors that already hold light:
// the best of neighbor value minus the metric step cost times decay minus
// the neighbor's own resistance.
//
// As a side effect it refreshes the cell's nearLight mark: set when the
// cell is opaque, or when every sampled lit neighbor is itself marked.
func (s *SenseSource) nearRippleLight(lx, ly, sample int, dirs []Position, res ResistanceView) float64 {
	c := s.allocRadius
	n := s.size()
	if lx == c && ly == c {
		return s.Intensity
	}

	// Collect in-buffer, in-view neighbors and order them by distance
	// from the origin so the sample window prefers cells the sense
	// reached first.
	nb := s.neighborBuf[:0]
	for _, d := range dirs {
		x2, y2 := lx+d.X, ly+d.Y
		if x2 < 0 || y2 < 0 || x2 >= n || y2 >= n {
			continue
		}
		gx, gy := s.Position.X+x2-c, s.Position.Y+y2-c
		if gx < 0 || gy < 0 || gx >= res.Width() || gy >= res.Height() {
			continue
		}
		nb = append(nb, y2*n+x2)
	}
	s.neighborBuf = nb
	if len(nb) == 0 {
		return 0
	}
	originDist := func(j int) float64 {
		return s.Shape.Distance(float64(j%n-c), float64(j/n-c))
	}
	for a := 1; a < len(nb); a++ {
		for b := a; b > 0 && originDist(nb[b]) < originDist(nb[b-1]); b-- {
			nb[b], nb[b-1] = nb[b-1], nb[b]
		}
	}
	if len(nb) > sample {
		nb = nb[:sample]
	}

	best := 0.0
	lit, marked := 0, 0
	for _, j := range nb {
		v := s.light[j]
		if v <= 0 {
			continue
		}
		lit++
		if s.nearLight[j] {
			marked++
		}
		jx, jy := j%n, j/n
		step := s.Shape.Distance(float64(lx-jx), float64(ly-jy))
		if cand := v - step*s.decay - s.resistanceLocal(res, jx, jy); cand > best {
			best = cand
		}
	}
	s.nearLight[ly*n+lx] = s.resistanceLocal(res, lx, ly) >= s.Intensity ||
		(lit > 0 && marked >= lit)
	return best
}

// resistanceLocal returns the resistance at a local buffer coordinate,
// treating anything outside the view as infinitely opaque.
func (s *SenseSource) resistanceLocal(res ResistanceView, lx, ly int) float64 {
	gx := s.Position.X + lx - s.allocRadius
	gy := s.Position.Y + ly - s.allocRadius
	if gx < 0 || gy < 0 || gx >= res.Width() || gy >= res.Height() {
		return math.Inf(1)
	}
	return res.ResistanceAt(gx, gy)
}
