package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/palette-mcp/internal/octree"
)

// DefaultMaxDimension is the longest side, in pixels, an image is
// subsampled to before quantization when the caller does not choose one.
const DefaultMaxDimension = 256

// PaletteOptions controls how an image is prepared and quantized.
//
// Preparation runs in a fixed order: crop to Region, subsample to
// MaxDimension, then blur by BlurRadius. The prepared pixels are then fed
// to the octree row by row.
type PaletteOptions struct {
	// Region restricts analysis to a rectangle. Nil means the whole image.
	Region *Region

	// ColorBits is the octree depth (1-8). Zero means 8, full precision.
	// Lower values merge colors that share their top ColorBits bits.
	ColorBits int

	// MaxDimension subsamples the image with nearest-neighbor sampling so
	// that neither side exceeds it. Zero or negative disables subsampling.
	// Nearest-neighbor keeps every sampled color exact.
	MaxDimension int

	// BlurRadius applies a Gaussian blur before quantization to suppress
	// noise and dithering patterns. Zero disables it.
	BlurRadius float64
}

func (o PaletteOptions) colorBits() int {
	if o.ColorBits == 0 {
		return octree.DefaultColorBits
	}
	return o.ColorBits
}

// validateRegion checks that a region is non-empty and inside bounds.
func validateRegion(bounds image.Rectangle, r Region) error {
	if r.X1 < bounds.Min.X || r.Y1 < bounds.Min.Y || r.X2 > bounds.Max.X || r.Y2 > bounds.Max.Y {
		return fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
	}
	return nil
}

// prepareImage crops, subsamples and blurs img according to opts. The
// source image is never modified.
func prepareImage(img image.Image, opts PaletteOptions) (image.Image, error) {
	if opts.Region != nil {
		if err := validateRegion(img.Bounds(), *opts.Region); err != nil {
			return nil, err
		}
		img = imaging.Crop(img, opts.Region.Rect())
	}

	if maxDim := opts.MaxDimension; maxDim > 0 {
		b := img.Bounds()
		if b.Dx() > maxDim || b.Dy() > maxDim {
			img = imaging.Fit(img, maxDim, maxDim, imaging.NearestNeighbor)
		}
	}

	if opts.BlurRadius < 0 {
		return nil, fmt.Errorf("blur radius must not be negative, got %g", opts.BlurRadius)
	}
	if opts.BlurRadius > 0 && !img.Bounds().Empty() {
		img = blur.Gaussian(img, opts.BlurRadius)
	}

	return img, nil
}
