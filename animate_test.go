package lumen

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestSourceTweenIntensity(t *testing.T) {
	s := NewSenseSource(SourceShadow, Position{5, 5}, 4, RadiusCircle)
	tw := NewSourceTween(s)

	if !tw.Done() {
		t.Error("fresh tween should report done")
	}
	if tw.Update(0.1) {
		t.Error("idle Update should report no change")
	}

	tw.TweenIntensity(2.0, 1.0, ease.Linear)
	if tw.Done() {
		t.Error("tween should be running")
	}

	if !tw.Update(0.5) {
		t.Error("Update should report a change mid-tween")
	}
	if !approxEqual(s.Intensity, 1.5, 1e-3) {
		t.Errorf("intensity at t=0.5 = %v, want 1.5", s.Intensity)
	}

	tw.Update(0.5)
	if !approxEqual(s.Intensity, 2.0, 1e-3) {
		t.Errorf("final intensity = %v, want 2.0", s.Intensity)
	}
	if !tw.Done() {
		t.Error("tween should be done")
	}
	if tw.Update(0.1) {
		t.Error("finished tween should report no change")
	}
}

func TestSourceTweenRadius(t *testing.T) {
	s := NewSenseSource(SourceRipple, Position{5, 5}, 10, RadiusCircle)
	tw := NewSourceTween(s)

	tw.TweenRadius(2, 1.0, ease.Linear)
	tw.Update(0.25)
	if !approxEqual(s.Radius, 8, 1e-3) {
		t.Errorf("radius at t=0.25 = %v, want 8", s.Radius)
	}
	tw.Update(0.75)
	if !approxEqual(s.Radius, 2, 1e-3) {
		t.Errorf("final radius = %v, want 2", s.Radius)
	}

	// A shrunken source still calculates fine.
	s.Calculate(openResistance(11, 11))
}

func TestSourceTweenRadiusClampsAtZero(t *testing.T) {
	s := NewSenseSource(SourceShadow, Position{3, 3}, 1, RadiusSquare)
	tw := NewSourceTween(s)

	// An overshooting ease may dip below zero; the source never sees it.
	tw.TweenRadius(0, 0.5, ease.OutBack)
	for i := 0; i < 20; i++ {
		tw.Update(0.05)
		if s.Radius < 0 {
			t.Fatalf("radius went negative: %v", s.Radius)
		}
	}
	if !approxEqual(s.Radius, 0, 1e-3) {
		t.Errorf("final radius = %v, want 0", s.Radius)
	}
}

func TestSourceTweenBothAtOnce(t *testing.T) {
	s := NewSenseSource(SourceShadow, Position{5, 5}, 4, RadiusCircle)
	tw := NewSourceTween(s)

	tw.TweenIntensity(0, 1.0, ease.Linear)
	tw.TweenRadius(8, 1.0, ease.Linear)
	tw.Update(0.5)

	if !approxEqual(s.Intensity, 0.5, 1e-3) {
		t.Errorf("intensity = %v, want 0.5", s.Intensity)
	}
	if !approxEqual(s.Radius, 6, 1e-3) {
		t.Errorf("radius = %v, want 6", s.Radius)
	}
	if tw.Done() {
		t.Error("both tweens should still be running")
	}

	tw.Update(0.5)
	if !tw.Done() {
		t.Error("both tweens should be done")
	}

	mustPanic(t, "nil source", func() { NewSourceTween(nil) })
}

func TestSourceTweenRestart(t *testing.T) {
	s := NewSenseSource(SourceShadow, Position{5, 5}, 4, RadiusCircle)
	s.Intensity = 1.0
	tw := NewSourceTween(s)

	tw.TweenIntensity(0, 1.0, ease.Linear)
	tw.Update(0.5)
	// Retarget mid-flight: the new tween starts from the current value.
	tw.TweenIntensity(1.0, 1.0, ease.Linear)
	tw.Update(1.0)
	if !approxEqual(s.Intensity, 1.0, 1e-3) {
		t.Errorf("intensity after retarget = %v, want 1.0", s.Intensity)
	}
}
