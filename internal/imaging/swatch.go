package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// SwatchResult contains a palette rendered as a horizontal strip of color
// blocks, encoded as base64 PNG.
type SwatchResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	Colors      int    `json:"colors"` // Number of blocks drawn
}

// RenderSwatch draws palette colors left to right in palette order.
//
// Parameters:
//   - palette: Colors to draw, typically from Palette.
//   - width, height: Output size in pixels. Both must be positive.
//   - proportional: If true, each block's width follows its PixelCount share;
//     otherwise every block gets the same width, and width must be at least
//     len(palette) so no color is lost.
//
// Rounding leftovers go to the last block so the strip always fills the
// full width. In proportional mode, blocks that round down to zero width
// are skipped and not counted in Colors.
func RenderSwatch(palette []PaletteColor, width, height int, proportional bool) (*SwatchResult, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("swatch size must be positive, got %dx%d", width, height)
	}
	if len(palette) == 0 {
		return nil, fmt.Errorf("palette is empty")
	}
	if !proportional && width < len(palette) {
		return nil, fmt.Errorf("swatch width %d too small for %d colors", width, len(palette))
	}

	widths := swatchWidths(palette, width, proportional)
	strip := imaging.New(width, height, color.Black)

	x, drawn := 0, 0
	for i, pc := range palette {
		w := widths[i]
		if w == 0 {
			continue
		}
		c := color.NRGBA{R: pc.RGB.R, G: pc.RGB.G, B: pc.RGB.B, A: 255}
		strip = imaging.Paste(strip, imaging.New(w, height, c), image.Pt(x, 0))
		x += w
		drawn++
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, strip, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode swatch: %w", err)
	}

	return &SwatchResult{
		Width:       width,
		Height:      height,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
		Colors:      drawn,
	}, nil
}

// swatchWidths splits width across the palette. The widths always sum to
// width.
func swatchWidths(palette []PaletteColor, width int, proportional bool) []int {
	n := len(palette)
	widths := make([]int, n)

	var total uint64
	for _, pc := range palette {
		total += pc.PixelCount
	}

	used := 0
	for i, pc := range palette {
		if proportional && total > 0 {
			widths[i] = int(uint64(width) * pc.PixelCount / total)
		} else {
			widths[i] = width / n
		}
		used += widths[i]
	}
	widths[n-1] += width - used
	return widths
}
