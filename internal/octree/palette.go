package octree

import "sort"

// Entry is one palette color and the number of pixels it represents.
type Entry struct {
	R     uint8  `json:"r"`
	G     uint8  `json:"g"`
	B     uint8  `json:"b"`
	Count uint64 `json:"count"`
}

// Pixel returns the entry's color.
func (e Entry) Pixel() Pixel {
	return Pixel{R: e.R, G: e.G, B: e.B}
}

// Palette returns every leaf's average color in depth-first order, child
// slots visited 0 through 7. The order is not ranked; see SortByCount. An
// empty tree yields an empty slice.
func (t *Tree) Palette() []Entry {
	out := make([]Entry, 0, t.leafCount)
	if t.root == none {
		return out
	}

	var walk func(idx int32)
	walk = func(idx int32) {
		n := &t.nodes[idx]
		if n.kind == leafNode {
			if n.pixelCount == 0 {
				return
			}
			avg := Node{t: t, idx: idx}.Average()
			out = append(out, Entry{R: avg.R, G: avg.G, B: avg.B, Count: n.pixelCount})
			return
		}
		for _, c := range n.children {
			if c != none {
				walk(c)
			}
		}
	}
	walk(t.root)
	return out
}

// Leaves returns the leaf nodes in the same order as Palette.
func (t *Tree) Leaves() []Node {
	out := make([]Node, 0, t.leafCount)
	if t.root == none {
		return out
	}
	var walk func(idx int32)
	walk = func(idx int32) {
		n := &t.nodes[idx]
		if n.kind == leafNode {
			out = append(out, Node{t: t, idx: idx})
			return
		}
		for _, c := range n.children {
			if c != none {
				walk(c)
			}
		}
	}
	walk(t.root)
	return out
}

// Dominant returns the color of the most populous leaf. For a tree built
// with maxColors = 1 that is the single root leaf, the average of every
// pixel. It returns false when the tree holds no pixels.
func (t *Tree) Dominant() (Pixel, bool) {
	var best Entry
	found := false
	for _, e := range t.Palette() {
		if !found || e.Count > best.Count {
			best = e
			found = true
		}
	}
	return best.Pixel(), found
}

// SortByCount orders entries by pixel count, most populous first. Ties keep
// their tree order.
func SortByCount(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
}
