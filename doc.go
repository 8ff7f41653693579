// Package lumen computes visibility and sense propagation on 2D grids.
//
// Lumen answers the question every grid game eventually asks: standing
// here, with this much light (or sound, or heat), what can I perceive?
// It provides exact field-of-view via recursive shadowcasting, approximate
// diffusion via the ripple family of algorithms, multi-source aggregation
// with order-independent merging, and newly-seen / newly-unseen diff
// tracking across recalculations.
//
// # Quick start
//
// For plain observer visibility, build a [TransparencyView] and an [FOV]:
//
//	grid := lumen.NewTransparencyGrid(80, 50)
//	grid.Fill(true)
//	// ... mark walls with grid.Set(x, y, false) ...
//
//	fov := lumen.NewFOV(grid)
//	fov.Calculate(playerX, playerY, 8, lumen.RadiusCircle)
//	if fov.IsVisible(mx, my) { /* draw the monster */ }
//
// For graded light or sound with multiple emitters, build a
// [ResistanceView], wrap each emitter in a [SenseSource], and aggregate
// with a [SenseMap]:
//
//	res := lumen.NewResistanceGrid(80, 50)
//	// ... set per-cell resistance; 1.0 blocks a default source ...
//
//	torch := lumen.NewSenseSource(lumen.SourceShadow, lumen.Position{X: 10, Y: 4}, 6, lumen.RadiusCircle)
//	hum := lumen.NewSenseSource(lumen.SourceRippleLoose, lumen.Position{X: 31, Y: 20}, 12, lumen.RadiusDiamond)
//
//	senses := lumen.NewSenseMap(res)
//	senses.AddSource(torch)
//	senses.AddSource(hum)
//	senses.Calculate()
//	level := senses.IntensityAt(x, y) // 0 = unreached, up to source intensity
//
// # Algorithms
//
// [SourceShadow] is exact: a cell is lit if and only if an unobstructed
// line of sight reaches it, computed with the classic octant slope-interval
// scan. The ripple types ([SourceRippleTight] through
// [SourceRippleVeryLoose]) diffuse outward instead, letting intensity
// bleed around corners; looser variants wrap further. All algorithms share
// the same falloff: intensity drops by intensity/(radius+1) per distance
// unit, reaching zero exactly past the radius.
//
// # Shapes and cones
//
// [Radius] selects how distance is measured: [RadiusSquare] (Chebyshev),
// [RadiusDiamond] (Manhattan), or [RadiusCircle] (Euclidean). Any source
// or FOV pass can additionally be restricted to a directional cone given
// a center angle (degrees, clockwise from up) and a span.
//
// # Change tracking
//
// After each full Calculate, [SenseMap.NewlySeen], [SenseMap.NewlyUnseen],
// and their [FOV] counterparts yield the positions that changed state,
// as lazy restartable sequences. Renderers and AI can react to deltas
// instead of rescanning the whole grid.
//
// # Rendering
//
// The core is pure computation with no drawing dependency at runtime.
// [FogOverlay] is an optional bridge for [Ebitengine] games: it converts a
// result grid into a per-cell darkness texture, with optional
// explored-area memory for roguelike fog of war. [SourceTween] animates
// source intensity and radius with [gween] for flicker and fades. ECS
// integration (via [Donburi]) lives in the lumen/ecs submodule.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package lumen
