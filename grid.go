package lumen

import "fmt"

// Position is an integer cell coordinate on a grid.
type Position struct {
	X, Y int
}

// ResistanceView is a read-only grid of per-cell resistance values consumed
// by sense calculations. Resistance is subtracted from a sense value as it
// propagates through a cell; a cell whose resistance is at or above a
// source's intensity blocks that source entirely. Values must be
// non-negative.
//
// Positions outside the view are treated as fully opaque by every engine in
// this package, so map edges behave like walls.
type ResistanceView interface {
	// Width and Height report the grid dimensions in cells.
	Width() int
	Height() int
	// ResistanceAt returns the resistance of cell (x, y). It is only
	// called with in-bounds coordinates.
	ResistanceAt(x, y int) float64
}

// TransparencyView is the on/off degenerate form of ResistanceView: a cell
// either passes a sense completely or blocks it completely.
type TransparencyView interface {
	Width() int
	Height() int
	TransparentAt(x, y int) bool
}

// ResultView is a read-only grid of computed sense intensities, as exposed
// by SenseMap and FOV. A cell is lit exactly when its intensity is greater
// than zero.
type ResultView interface {
	Width() int
	Height() int
	IntensityAt(x, y int) float64
}

// ResistanceGrid is a concrete ResistanceView backed by a row-major slice.
type ResistanceGrid struct {
	w, h  int
	cells []float64
}

// NewResistanceGrid creates a (w x h) grid with all resistances zero.
func NewResistanceGrid(w, h int) *ResistanceGrid {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("lumen: invalid resistance grid size %dx%d", w, h))
	}
	return &ResistanceGrid{w: w, h: h, cells: make([]float64, w*h)}
}

// Width returns the grid width in cells.
func (g *ResistanceGrid) Width() int { return g.w }

// Height returns the grid height in cells.
func (g *ResistanceGrid) Height() int { return g.h }

// ResistanceAt returns the resistance of cell (x, y).
func (g *ResistanceGrid) ResistanceAt(x, y int) float64 {
	g.check(x, y)
	return g.cells[y*g.w+x]
}

// Set assigns the resistance of cell (x, y). Resistance must be >= 0.
func (g *ResistanceGrid) Set(x, y int, resistance float64) {
	g.check(x, y)
	if resistance < 0 {
		panic(fmt.Sprintf("lumen: negative resistance %v at (%d,%d)", resistance, x, y))
	}
	g.cells[y*g.w+x] = resistance
}

// Fill assigns the same resistance to every cell.
func (g *ResistanceGrid) Fill(resistance float64) {
	if resistance < 0 {
		panic(fmt.Sprintf("lumen: negative resistance %v", resistance))
	}
	for i := range g.cells {
		g.cells[i] = resistance
	}
}

func (g *ResistanceGrid) check(x, y int) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		panic(fmt.Sprintf("lumen: position (%d,%d) out of bounds for %dx%d grid", x, y, g.w, g.h))
	}
}

// TransparencyGrid is a concrete TransparencyView backed by a row-major
// slice. The zero state of every cell is opaque; call Fill(true) first for
// an open map.
type TransparencyGrid struct {
	w, h  int
	cells []bool
}

// NewTransparencyGrid creates a (w x h) grid with all cells opaque.
func NewTransparencyGrid(w, h int) *TransparencyGrid {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("lumen: invalid transparency grid size %dx%d", w, h))
	}
	return &TransparencyGrid{w: w, h: h, cells: make([]bool, w*h)}
}

// Width returns the grid width in cells.
func (g *TransparencyGrid) Width() int { return g.w }

// Height returns the grid height in cells.
func (g *TransparencyGrid) Height() int { return g.h }

// TransparentAt reports whether cell (x, y) passes senses.
func (g *TransparencyGrid) TransparentAt(x, y int) bool {
	g.check(x, y)
	return g.cells[y*g.w+x]
}

// Set marks cell (x, y) transparent or opaque.
func (g *TransparencyGrid) Set(x, y int, transparent bool) {
	g.check(x, y)
	g.cells[y*g.w+x] = transparent
}

// Fill marks every cell transparent or opaque.
func (g *TransparencyGrid) Fill(transparent bool) {
	for i := range g.cells {
		g.cells[i] = transparent
	}
}

func (g *TransparencyGrid) check(x, y int) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		panic(fmt.Sprintf("lumen: position (%d,%d) out of bounds for %dx%d grid", x, y, g.w, g.h))
	}
}

// AsResistance adapts a TransparencyView into a ResistanceView where opaque
// cells have resistance 1 and transparent cells 0. Sources with the default
// intensity of 1.0 are blocked exactly by the opaque cells.
func AsResistance(view TransparencyView) ResistanceView {
	if view == nil {
		panic("lumen: AsResistance requires a view")
	}
	return transparencyResistance{view}
}

type transparencyResistance struct {
	view TransparencyView
}

func (t transparencyResistance) Width() int  { return t.view.Width() }
func (t transparencyResistance) Height() int { return t.view.Height() }

func (t transparencyResistance) ResistanceAt(x, y int) float64 {
	if t.view.TransparentAt(x, y) {
		return 0
	}
	return 1
}
