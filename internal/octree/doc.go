// Package octree implements adaptive color quantization with an octree.
//
// Each level of the tree consumes one bit of every RGB channel, most
// significant bit first, so a node at depth d holds every color sharing the
// same top d bits per channel. Leaves are running accumulators (pixel count
// and per-channel sums); their averages are the palette colors.
//
// # Budget
//
// Build enforces the leaf budget eagerly: after every inserted pixel the
// tree is reduced until it holds at most maxColors leaves. Peak memory is
// therefore bounded by the budget and the tree depth, not by the number of
// distinct colors in the image.
//
// # Reduction Order
//
// Reduce collapses a branch from the deepest level that has one, choosing
// the branch created most recently at that level. The root is collapsed
// only when nothing deeper is left. This order is deterministic and the
// resulting palette depends on it.
//
// # Pixel Sources
//
// The package never decodes images. Build consumes an iter.Seq[Pixel];
// Pixels, FromBytes and FromImage adapt literal pixels, packed RGB buffers
// and decoded image.Image values. Alpha is discarded.
//
// # Thread Safety
//
// A Tree is not safe for concurrent use. Quantize independent images with
// independent trees.
package octree
