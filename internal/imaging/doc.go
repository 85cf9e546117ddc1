// Package imaging provides the image operations behind the MCP palette tools.
//
// It loads and caches images, samples single pixels, and reduces images or
// regions of them to color palettes using the octree quantizer in
// internal/octree. All operations work with standard Go image.Image types and
// use a coordinate system where (0,0) is at the top-left corner, X increases
// rightward, and Y increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Palette Pipeline
//
// Palette, DominantColor, CompareRegions and MatchPalette share one
// preparation step controlled by PaletteOptions:
//
//  1. Crop to the requested region
//  2. Subsample with nearest-neighbor so no side exceeds MaxDimension
//  3. Gaussian blur by BlurRadius
//  4. Feed pixels row by row into the octree
//
// Alpha is ignored throughout. Each palette color is the average of the
// pixels its octree leaf absorbed, so palette colors need not appear in the
// image verbatim.
//
// # Color Representation
//
// Colors are returned in multiple formats for flexibility:
//   - Hex: 6-character format "#RRGGBB"
//   - RGB: 8-bit components (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// Perceptual differences are CIEDE2000 delta E values. Below 2.3 most
// observers cannot tell two colors apart.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Every operation here reads
// its input image and allocates its own output, so cached images can be
// shared between concurrent requests.
package imaging
