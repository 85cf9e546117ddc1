package imaging

import (
	"fmt"
	"image"
	"math"
)

// Point represents a 2D point or size
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// noticeableDeltaE is the CIEDE2000 difference most observers can just see.
const noticeableDeltaE = 2.3

// CompareRegionsResult contains the dominant color of two regions and how
// far apart they are perceptually.
type CompareRegionsResult struct {
	Region1Color ColorResult `json:"region1_color"`
	Region2Color ColorResult `json:"region2_color"`
	DeltaE       float64     `json:"delta_e"`        // CIEDE2000 difference
	SameColor    bool        `json:"same_color"`     // DeltaE below the visibility threshold
	Region1Size  Point       `json:"region1_size"`
	Region2Size  Point       `json:"region2_size"`
}

// CompareRegions reduces two regions of an image to their dominant colors
// and reports the perceptual difference between them. Regions may differ in
// size. opts.Region is ignored; the other options apply to both regions.
func CompareRegions(img image.Image, r1, r2 Region, opts PaletteOptions) (*CompareRegionsResult, error) {
	opts.Region = &r1
	d1, err := DominantColor(img, opts)
	if err != nil {
		return nil, fmt.Errorf("region1: %w", err)
	}

	opts.Region = &r2
	d2, err := DominantColor(img, opts)
	if err != nil {
		return nil, fmt.Errorf("region2: %w", err)
	}

	delta := colorDistance(d1.Color.RGB, d2.Color.RGB)
	return &CompareRegionsResult{
		Region1Color: d1.Color,
		Region2Color: d2.Color,
		DeltaE:       math.Round(delta*100) / 100,
		SameColor:    delta < noticeableDeltaE,
		Region1Size:  Point{X: r1.X2 - r1.X1, Y: r1.Y2 - r1.Y1},
		Region2Size:  Point{X: r2.X2 - r2.X1, Y: r2.Y2 - r2.Y1},
	}, nil
}

// PaletteMatchResult describes the palette entry closest to a target color.
type PaletteMatchResult struct {
	Target  ColorResult  `json:"target"`
	Nearest PaletteColor `json:"nearest"`
	Rank    int          `json:"rank"`    // 1-based position in the ranked palette
	DeltaE  float64      `json:"delta_e"` // CIEDE2000 difference to the target
}

// MatchPalette finds which of an image's count palette colors is
// perceptually closest to the hex color target.
func MatchPalette(img image.Image, target string, count int, opts PaletteOptions) (*PaletteMatchResult, error) {
	want, err := ParseHexColor(target)
	if err != nil {
		return nil, err
	}

	p, err := Palette(img, count, opts)
	if err != nil {
		return nil, err
	}
	if len(p.Colors) == 0 {
		return nil, fmt.Errorf("image has no pixels to match against")
	}

	best, bestDelta := 0, math.Inf(1)
	for i, pc := range p.Colors {
		if d := colorDistance(want, pc.RGB); d < bestDelta {
			best, bestDelta = i, d
		}
	}

	return &PaletteMatchResult{
		Target:  newColorResult(want.R, want.G, want.B),
		Nearest: p.Colors[best],
		Rank:    best + 1,
		DeltaE:  math.Round(bestDelta*100) / 100,
	}, nil
}
