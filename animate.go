package lumen

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// SourceTween animates a SenseSource's intensity and radius over time,
// for torch flicker, spells winding up, sounds fading out, and similar
// effects. Call Update once per frame and recalculate the owning map when
// it reports a change.
//
// The source is mutated directly; radius tweens simply rely on the
// source's own radius-change detection at the next calculation.
type SourceTween struct {
	source *SenseSource

	intensity     *gween.Tween
	radius        *gween.Tween
	intensityDone bool
	radiusDone    bool
}

// NewSourceTween creates a tween controller for the given source.
func NewSourceTween(s *SenseSource) *SourceTween {
	if s == nil {
		panic("lumen: NewSourceTween requires a source")
	}
	return &SourceTween{source: s, intensityDone: true, radiusDone: true}
}

// Source returns the controlled source.
func (t *SourceTween) Source() *SenseSource { return t.source }

// TweenIntensity animates the source intensity from its current value to
// the target over duration seconds. Replaces any running intensity tween.
func (t *SourceTween) TweenIntensity(to float64, duration float32, easeFn ease.TweenFunc) {
	t.intensity = gween.New(float32(t.source.Intensity), float32(to), duration, easeFn)
	t.intensityDone = false
}

// TweenRadius animates the source radius from its current value to the
// target over duration seconds. Replaces any running radius tween.
func (t *SourceTween) TweenRadius(to float64, duration float32, easeFn ease.TweenFunc) {
	t.radius = gween.New(float32(t.source.Radius), float32(to), duration, easeFn)
	t.radiusDone = false
}

// Update advances the running tweens by dt seconds and writes the new
// values into the source. It returns true if either value changed, which
// is the caller's cue to recalculate.
func (t *SourceTween) Update(dt float32) bool {
	changed := false
	if !t.intensityDone {
		val, done := t.intensity.Update(dt)
		t.source.Intensity = float64(val)
		t.intensityDone = done
		changed = true
	}
	if !t.radiusDone {
		val, done := t.radius.Update(dt)
		r := float64(val)
		if r < 0 {
			r = 0
		}
		t.source.Radius = r
		t.radiusDone = done
		changed = true
	}
	return changed
}

// Done reports whether all tweens have finished.
func (t *SourceTween) Done() bool { return t.intensityDone && t.radiusDone }
