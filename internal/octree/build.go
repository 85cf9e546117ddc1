package octree

import (
	"fmt"
	"image"
	"image/color"
	"iter"
)

// DefaultColorBits keeps full 8-bit precision per channel.
const DefaultColorBits = MaxColorBits

// Build quantizes a pixel sequence into a tree holding at most maxColors
// leaves.
//
// Parameters:
//   - pixels: the image's pixels, consumed once in order.
//   - maxColors: leaf budget, at least 1. Use 1 for the dominant color.
//   - colorBits: tree depth in [1, 8]. Lower values bucket colors by their
//     top colorBits bits before any reduction happens.
//
// The budget is enforced after every pixel, so the tree never grows past
// maxColors leaves plus the one just inserted. An empty sequence yields an
// empty tree and no error.
func Build(pixels iter.Seq[Pixel], maxColors, colorBits int) (*Tree, error) {
	if maxColors < 1 {
		return nil, fmt.Errorf("%w: maxColors %d must be at least 1", ErrInvalidConfiguration, maxColors)
	}
	t, err := New(colorBits)
	if err != nil {
		return nil, err
	}

	for p := range pixels {
		t.Insert(p)
		for t.leafCount > maxColors {
			if t.Reduce() == 0 {
				break
			}
		}
	}
	return t, nil
}

// BuildImage is Build over FromImage(img).
func BuildImage(img image.Image, maxColors, colorBits int) (*Tree, error) {
	return Build(FromImage(img), maxColors, colorBits)
}

// DominantColor returns the average color of the whole sequence as found
// by a single-leaf tree. It returns ErrEmptyInput when the sequence is
// empty.
func DominantColor(pixels iter.Seq[Pixel], colorBits int) (Pixel, error) {
	t, err := Build(pixels, 1, colorBits)
	if err != nil {
		return Pixel{}, err
	}
	p, ok := t.Dominant()
	if !ok {
		return Pixel{}, ErrEmptyInput
	}
	return p, nil
}

// Pixels returns a sequence over literal pixels.
func Pixels(px ...Pixel) iter.Seq[Pixel] {
	return func(yield func(Pixel) bool) {
		for _, p := range px {
			if !yield(p) {
				return
			}
		}
	}
}

// FromBytes returns a sequence over packed RGB triples (width x height x 3
// bytes, no alpha). A trailing partial triple is ignored.
func FromBytes(buf []byte) iter.Seq[Pixel] {
	return func(yield func(Pixel) bool) {
		for i := 0; i+2 < len(buf); i += 3 {
			if !yield(Pixel{R: buf[i], G: buf[i+1], B: buf[i+2]}) {
				return
			}
		}
	}
}

// FromImage returns a row-major sequence over an image's pixels. Colors are
// converted to non-premultiplied 8-bit RGB and alpha is dropped.
func FromImage(img image.Image) iter.Seq[Pixel] {
	return func(yield func(Pixel) bool) {
		b := img.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				if !yield(Pixel{R: c.R, G: c.G, B: c.B}) {
					return
				}
			}
		}
	}
}
