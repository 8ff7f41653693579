package lumen

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// FogOverlay turns a computed result grid into a darkness texture for
// rendering. It owns a one-pixel-per-cell image: each pixel is black with
// an alpha derived from the cell's intensity, so drawing the image over a
// tile map (scaled up by the tile size, with linear filtering if a soft
// edge is wanted) darkens everything the current senses do not reach.
//
// With Remember enabled the overlay also tracks which cells have ever been
// lit, and renders currently-dark-but-explored cells at ExploredAlpha
// instead of full darkness. This is purely presentational state owned by
// the overlay; the sense results themselves carry no memory.
type FogOverlay struct {
	// DarkAlpha is the overlay opacity over cells that are dark and
	// unexplored. Defaults to 1 (fully black).
	DarkAlpha float64
	// ExploredAlpha is the overlay opacity over explored but currently
	// dark cells when Remember is enabled. Defaults to 0.65.
	ExploredAlpha float64
	// Remember enables explored-cell tracking.
	Remember bool

	img      *ebiten.Image
	pix      []byte
	explored []bool
	w, h     int
}

// NewFogOverlay creates an overlay for a (w x h) cell map.
func NewFogOverlay(w, h int) *FogOverlay {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("lumen: invalid fog overlay size %dx%d", w, h))
	}
	return &FogOverlay{
		DarkAlpha:     1.0,
		ExploredAlpha: 0.65,
		img:           ebiten.NewImage(w, h),
		pix:           make([]byte, w*h*4),
		explored:      make([]bool, w*h),
		w:             w,
		h:             h,
	}
}

// Image returns the overlay texture. Draw it scaled by the tile size after
// the tiles it darkens.
func (o *FogOverlay) Image() *ebiten.Image { return o.img }

// Width returns the overlay width in cells.
func (o *FogOverlay) Width() int { return o.w }

// Height returns the overlay height in cells.
func (o *FogOverlay) Height() int { return o.h }

// ResetExplored forgets every explored cell.
func (o *FogOverlay) ResetExplored() {
	clear(o.explored)
}

// Explored reports whether cell (x, y) has ever been lit since the last
// ResetExplored. Always false while Remember is disabled.
func (o *FogOverlay) Explored(x, y int) bool {
	if x < 0 || y < 0 || x >= o.w || y >= o.h {
		return false
	}
	return o.explored[y*o.w+x]
}

// Redraw rebuilds the overlay texture from a result view. The view must
// match the overlay dimensions. Call after every recalculation, before
// drawing.
func (o *FogOverlay) Redraw(result ResultView) {
	if result == nil {
		panic("lumen: FogOverlay.Redraw requires a result view")
	}
	if result.Width() != o.w || result.Height() != o.h {
		panic(fmt.Sprintf("lumen: result view is %dx%d, overlay is %dx%d",
			result.Width(), result.Height(), o.w, o.h))
	}

	for y := 0; y < o.h; y++ {
		for x := 0; x < o.w; x++ {
			i := y*o.w + x
			v := clamp01(result.IntensityAt(x, y))
			a := o.DarkAlpha * (1 - v)
			if v > 0 {
				if o.Remember {
					o.explored[i] = true
				}
			} else if o.Remember && o.explored[i] {
				a = o.ExploredAlpha
			}
			// Premultiplied black: only the alpha byte varies.
			o.pix[i*4+3] = uint8(clamp01(a)*255 + 0.5)
		}
	}
	o.img.WritePixels(o.pix)
}

// Dispose releases the overlay texture. The overlay must not be used after
// disposal.
func (o *FogOverlay) Dispose() {
	o.img.Deallocate()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
