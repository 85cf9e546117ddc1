package octree

import "fmt"

// Tree is an octree over one image's pixels.
//
// Nodes live in an arena addressed by int32 indices. Child slots and the
// per-depth reducible lists are indices into the same arena, so list
// membership never aliases tree ownership. Slots released by Reduce are
// recycled by later insertions.
type Tree struct {
	nodes     []node
	free      []int32
	root      int32
	colorBits int
	reducible [MaxColorBits + 1]int32
	leafCount int
	pixels    uint64
}

// New returns an empty tree that stops subdividing at depth colorBits.
func New(colorBits int) (*Tree, error) {
	if colorBits < 1 || colorBits > MaxColorBits {
		return nil, fmt.Errorf("%w: colorBits %d outside [1,%d]", ErrInvalidConfiguration, colorBits, MaxColorBits)
	}
	t := &Tree{root: none, colorBits: colorBits}
	for i := range t.reducible {
		t.reducible[i] = none
	}
	return t, nil
}

// ColorBits returns the depth limit the tree was created with.
func (t *Tree) ColorBits() int { return t.colorBits }

// LeafCount returns the number of live leaves.
func (t *Tree) LeafCount() int { return t.leafCount }

// PixelCount returns the number of pixels inserted so far.
func (t *Tree) PixelCount() uint64 { return t.pixels }

// Root returns the root node, or false if nothing has been inserted.
func (t *Tree) Root() (Node, bool) {
	if t.root == none {
		return Node{}, false
	}
	return Node{t: t, idx: t.root}, true
}

// Insert adds one pixel, creating nodes along its bit path as needed. The
// walk stops at the first leaf it reaches, which may be a branch collapsed
// by an earlier Reduce.
func (t *Tree) Insert(p Pixel) {
	t.pixels++
	if t.root == none {
		t.root = t.newNode(0)
	}

	idx := t.root
	for depth := 0; ; depth++ {
		n := &t.nodes[idx]
		if n.kind == leafNode {
			n.pixelCount++
			n.redSum += uint64(p.R)
			n.greenSum += uint64(p.G)
			n.blueSum += uint64(p.B)
			return
		}

		ci := childIndex(p, depth)
		child := n.children[ci]
		if child == none {
			// newNode may grow the arena; n is stale after this call.
			child = t.newNode(depth + 1)
			t.nodes[idx].children[ci] = child
		}
		idx = child
	}
}

// Reduce collapses one branch into a leaf and returns how many children it
// absorbed. It picks the most recently created branch at the deepest level
// in [1, colorBits-1] that has one, and falls back to the root only when
// every deeper level is empty. It returns 0 and leaves the tree unchanged
// when no branch remains.
func (t *Tree) Reduce() int {
	depth := t.colorBits - 1
	for depth > 0 && t.reducible[depth] == none {
		depth--
	}

	idx := t.reducible[depth]
	if idx == none {
		return 0
	}

	n := &t.nodes[idx]
	t.reducible[depth] = n.next
	n.next = none

	merged := 0
	for i, c := range n.children {
		if c == none {
			continue
		}
		child := &t.nodes[c]
		n.pixelCount += child.pixelCount
		n.redSum += child.redSum
		n.greenSum += child.greenSum
		n.blueSum += child.blueSum
		n.children[i] = none
		t.release(c)
		merged++
	}

	n.kind = leafNode
	t.leafCount -= merged - 1
	return merged
}

// newNode allocates a node for the given depth: a leaf at colorBits, else
// a branch pushed onto the head of that depth's reducible list.
func (t *Tree) newNode(depth int) int32 {
	kind := branchNode
	if depth == t.colorBits {
		kind = leafNode
	}

	var idx int32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		idx = int32(len(t.nodes))
		t.nodes = append(t.nodes, node{})
	}
	t.nodes[idx].reset(kind)

	if kind == leafNode {
		t.leafCount++
	} else {
		t.nodes[idx].next = t.reducible[depth]
		t.reducible[depth] = idx
	}
	return idx
}

// release returns a leaf slot to the free list.
func (t *Tree) release(idx int32) {
	t.nodes[idx].reset(leafNode)
	t.free = append(t.free, idx)
}

// liveNodes is the arena size minus recycled slots.
func (t *Tree) liveNodes() int {
	return len(t.nodes) - len(t.free)
}
