package octree

import (
	"image"
	"image/color"
	"image/draw"
)

// Quantizer adapts the octree to draw.Quantizer so it can supply palettes
// to image/gif and image.Paletted.
type Quantizer struct {
	// MaxColors caps the number of colors added. Zero means fill the
	// remaining capacity of the palette passed to Quantize, or 256 when it
	// has none. Spare capacity in that palette always caps the count too.
	MaxColors int

	// ColorBits is the tree depth. Zero means DefaultColorBits.
	ColorBits int
}

var _ draw.Quantizer = (*Quantizer)(nil)

// Quantize appends up to the configured number of colors found in m to p,
// most populous first. Appended colors are fully opaque. If the
// configuration is invalid, p is returned unchanged.
func (q *Quantizer) Quantize(p color.Palette, m image.Image) color.Palette {
	n := q.MaxColors
	if spare := cap(p) - len(p); spare > 0 && (n == 0 || n > spare) {
		n = spare
	}
	if n == 0 {
		n = 256
	}
	bits := q.ColorBits
	if bits == 0 {
		bits = DefaultColorBits
	}

	t, err := BuildImage(m, n, bits)
	if err != nil {
		return p
	}
	entries := t.Palette()
	SortByCount(entries)
	for _, e := range entries {
		p = append(p, color.RGBA{R: e.R, G: e.G, B: e.B, A: 0xff})
	}
	return p
}
