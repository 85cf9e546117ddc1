package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/palette-mcp/internal/octree"
)

// PaletteColor is one palette entry with its share of the analyzed pixels.
type PaletteColor struct {
	ColorResult
	PixelCount uint64  `json:"pixel_count"` // Pixels represented by this color
	Percentage float64 `json:"percentage"`  // Share of analyzed pixels (0-100)
}

// PaletteResult contains a quantized palette, most populous color first.
type PaletteResult struct {
	Colors       []PaletteColor `json:"colors"`        // Sorted by PixelCount (descending)
	TotalPixels  uint64         `json:"total_pixels"`  // Pixels fed to the quantizer
	ColorBits    int            `json:"color_bits"`    // Octree depth used
	SampleWidth  int            `json:"sample_width"`  // Width after crop and subsampling
	SampleHeight int            `json:"sample_height"` // Height after crop and subsampling
}

// Palette extracts up to count representative colors from an image.
//
// Parameters:
//   - img: The source image to analyze.
//   - count: Palette size ceiling (at least 1). Images with fewer distinct
//     colors return fewer entries.
//   - opts: Region, subsampling, blur and tree depth. See PaletteOptions.
//
// Returns:
//   - *PaletteResult: Colors ranked by pixel count with percentages.
//   - error: Non-nil if count or ColorBits is out of range, or the region is
//     invalid. An image with no pixels yields an empty palette, not an error.
//
// # Algorithm
//
// Pixels are inserted into an octree whose levels consume one bit of each
// channel. Whenever the tree holds more than count leaves, the deepest,
// most recently created branch is collapsed into a leaf. Each remaining
// leaf's average color is a palette entry.
func Palette(img image.Image, count int, opts PaletteOptions) (*PaletteResult, error) {
	prepared, err := prepareImage(img, opts)
	if err != nil {
		return nil, err
	}

	tree, err := octree.BuildImage(prepared, count, opts.colorBits())
	if err != nil {
		return nil, fmt.Errorf("failed to build palette: %w", err)
	}

	entries := tree.Palette()
	octree.SortByCount(entries)

	total := tree.PixelCount()
	colors := make([]PaletteColor, 0, len(entries))
	for _, e := range entries {
		colors = append(colors, PaletteColor{
			ColorResult: newColorResult(e.R, e.G, e.B),
			PixelCount:  e.Count,
			Percentage:  percentage(e.Count, total),
		})
	}

	b := prepared.Bounds()
	return &PaletteResult{
		Colors:       colors,
		TotalPixels:  total,
		ColorBits:    tree.ColorBits(),
		SampleWidth:  b.Dx(),
		SampleHeight: b.Dy(),
	}, nil
}

// DominantColorResult contains the single color an image reduces to.
type DominantColorResult struct {
	Color       ColorResult `json:"color"`        // Average of every analyzed pixel at the chosen depth
	TotalPixels uint64      `json:"total_pixels"` // Pixels fed to the quantizer
}

// DominantColor reduces an image to one color.
//
// This is Palette with a budget of one: the octree collapses to a single
// root leaf whose average is the result. With the default depth that is the
// exact integer-truncated mean of the analyzed pixels.
//
// Returns an error wrapping octree.ErrEmptyInput when there are no pixels
// to analyze.
func DominantColor(img image.Image, opts PaletteOptions) (*DominantColorResult, error) {
	p, err := Palette(img, 1, opts)
	if err != nil {
		return nil, err
	}
	if len(p.Colors) == 0 {
		return nil, fmt.Errorf("no pixels to analyze: %w", octree.ErrEmptyInput)
	}
	return &DominantColorResult{
		Color:       p.Colors[0].ColorResult,
		TotalPixels: p.TotalPixels,
	}, nil
}

func percentage(n, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)/float64(total)*10000) / 100
}
