package octree

import "fmt"

// MaxColorBits is the deepest tree: one level per bit of an 8-bit channel.
const MaxColorBits = 8

const none int32 = -1

type nodeKind uint8

const (
	branchNode nodeKind = iota
	leafNode
)

// node is an arena slot. Sums stay zero on branches until Reduce folds the
// children in and flips the kind to leaf.
type node struct {
	kind       nodeKind
	pixelCount uint64
	redSum     uint64
	greenSum   uint64
	blueSum    uint64
	children   [8]int32
	next       int32 // reducible list link, branches only
}

func (n *node) reset(kind nodeKind) {
	*n = node{kind: kind, next: none}
	for i := range n.children {
		n.children[i] = none
	}
}

// Pixel is an 8-bit RGB triple.
type Pixel struct {
	R, G, B uint8
}

// childIndex packs bit (7 - depth) of red, green and blue into bits 2, 1
// and 0 of the slot index.
func childIndex(p Pixel, depth int) int {
	shift := uint(7 - depth)
	return int((p.R>>shift)&1)<<2 | int((p.G>>shift)&1)<<1 | int((p.B>>shift)&1)
}

// Node is a read-only view of a tree node. It is valid until the tree is
// mutated again.
type Node struct {
	t   *Tree
	idx int32
}

func (n Node) slot() *node {
	return &n.t.nodes[n.idx]
}

// IsLeaf reports whether the node is a leaf.
func (n Node) IsLeaf() bool {
	return n.slot().kind == leafNode
}

// PixelCount returns the number of pixels accumulated in a leaf. Branches
// report zero.
func (n Node) PixelCount() uint64 {
	return n.slot().pixelCount
}

// Children returns the populated child slots of a branch, in slot order.
// Calling it on a leaf panics with ErrInvalidAccess.
func (n Node) Children() []Node {
	s := n.slot()
	if s.kind == leafNode {
		panic(fmt.Errorf("%w: children of a leaf", ErrInvalidAccess))
	}
	out := make([]Node, 0, 8)
	for _, c := range s.children {
		if c != none {
			out = append(out, Node{t: n.t, idx: c})
		}
	}
	return out
}

// Average returns the truncated mean color of a leaf. It panics with
// ErrInvalidAccess on a branch and with ErrEmptyInput on a leaf that holds
// no pixels.
func (n Node) Average() Pixel {
	s := n.slot()
	if s.kind != leafNode {
		panic(fmt.Errorf("%w: average of a branch", ErrInvalidAccess))
	}
	if s.pixelCount == 0 {
		panic(fmt.Errorf("%w: average of a leaf with no pixels", ErrEmptyInput))
	}
	return Pixel{
		R: uint8(s.redSum / s.pixelCount),
		G: uint8(s.greenSum / s.pixelCount),
		B: uint8(s.blueSum / s.pixelCount),
	}
}

// Red returns the leaf's average red channel. See Average.
func (n Node) Red() uint8 { return n.Average().R }

// Green returns the leaf's average green channel. See Average.
func (n Node) Green() uint8 { return n.Average().G }

// Blue returns the leaf's average blue channel. See Average.
func (n Node) Blue() uint8 { return n.Average().B }
