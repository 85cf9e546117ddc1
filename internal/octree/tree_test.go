package octree

import (
	"errors"
	"math/rand"
	"testing"
)

func randomPixels(n int, seed int64) []Pixel {
	r := rand.New(rand.NewSource(seed))
	px := make([]Pixel, n)
	for i := range px {
		px[i] = Pixel{R: uint8(r.Intn(256)), G: uint8(r.Intn(256)), B: uint8(r.Intn(256))}
	}
	return px
}

// newTree returns an empty tree or fails the test.
func newTree(t *testing.T, colorBits int) *Tree {
	t.Helper()
	tree, err := New(colorBits)
	if err != nil {
		t.Fatalf("New(%d) failed: %v", colorBits, err)
	}
	return tree
}

// recoverError runs f and returns the error it panicked with.
func recoverError(t *testing.T, f func()) (err error) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic")
		}
		e, ok := r.(error)
		if !ok {
			t.Fatalf("panic value %v is not an error", r)
		}
		err = e
	}()
	f()
	return nil
}

func TestChildIndex(t *testing.T) {
	tests := []struct {
		name  string
		p     Pixel
		depth int
		want  int
	}{
		{"black", Pixel{0, 0, 0}, 0, 0},
		{"white top bit", Pixel{255, 255, 255}, 0, 7},
		{"red only", Pixel{0x80, 0, 0}, 0, 4},
		{"green only", Pixel{0, 0x80, 0}, 0, 2},
		{"blue only", Pixel{0, 0, 0x80}, 0, 1},
		{"lowest bit", Pixel{1, 0, 1}, 7, 5},
		{"middle bit", Pixel{0x10, 0x10, 0}, 3, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := childIndex(tt.p, tt.depth); got != tt.want {
				t.Errorf("childIndex(%v, %d) = %d, want %d", tt.p, tt.depth, got, tt.want)
			}
		})
	}
}

func TestNew_InvalidColorBits(t *testing.T) {
	for _, bits := range []int{-1, 0, 9, 16} {
		if _, err := New(bits); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("New(%d): got %v, want ErrInvalidConfiguration", bits, err)
		}
	}
}

func TestInsert_CountsLeaves(t *testing.T) {
	tree := newTree(t, 8)

	tree.Insert(Pixel{1, 2, 3})
	tree.Insert(Pixel{1, 2, 3})
	if tree.LeafCount() != 1 {
		t.Errorf("LeafCount: got %d, want 1", tree.LeafCount())
	}

	tree.Insert(Pixel{200, 2, 3})
	if tree.LeafCount() != 2 {
		t.Errorf("LeafCount: got %d, want 2", tree.LeafCount())
	}
	if tree.PixelCount() != 3 {
		t.Errorf("PixelCount: got %d, want 3", tree.PixelCount())
	}

	root, ok := tree.Root()
	if !ok {
		t.Fatal("Root should exist")
	}
	if root.IsLeaf() {
		t.Error("root should be a branch")
	}
	if n := len(root.Children()); n != 2 {
		t.Errorf("root children: got %d, want 2", n)
	}
}

func TestInsert_BranchesRegisteredMostRecentFirst(t *testing.T) {
	tree := newTree(t, 8)

	tree.Insert(Pixel{0, 0, 0})
	first := tree.reducible[1]
	tree.Insert(Pixel{255, 255, 255})
	second := tree.reducible[1]

	if first == none {
		t.Fatal("first branch was not registered")
	}
	if first == second {
		t.Error("second branch should become the list head")
	}
	if tree.nodes[second].next != first {
		t.Errorf("head.next: got %d, want %d", tree.nodes[second].next, first)
	}
	if tree.reducible[MaxColorBits] != none {
		t.Error("leaves must not be registered as reducible")
	}
}

func TestReduce_Empty(t *testing.T) {
	tree := newTree(t, 8)
	if got := tree.Reduce(); got != 0 {
		t.Errorf("Reduce on empty tree: got %d, want 0", got)
	}
	if tree.LeafCount() != 0 {
		t.Errorf("LeafCount: got %d, want 0", tree.LeafCount())
	}
}

func TestReduce_DeepestLevelFirst(t *testing.T) {
	tree := newTree(t, 8)

	// Diverge at depth 7 (lowest blue bit) and at depth 0.
	tree.Insert(Pixel{0, 0, 0})
	tree.Insert(Pixel{0, 0, 1})
	tree.Insert(Pixel{255, 255, 255})
	if tree.LeafCount() != 3 {
		t.Fatalf("LeafCount: got %d, want 3", tree.LeafCount())
	}

	// Most recent depth-7 branch belongs to the white path: one child.
	if got := tree.Reduce(); got != 1 {
		t.Errorf("first Reduce merged %d, want 1", got)
	}
	if tree.LeafCount() != 3 {
		t.Errorf("LeafCount: got %d, want 3", tree.LeafCount())
	}

	// Next is the black path's depth-7 branch holding two leaves.
	if got := tree.Reduce(); got != 2 {
		t.Errorf("second Reduce merged %d, want 2", got)
	}
	if tree.LeafCount() != 2 {
		t.Errorf("LeafCount: got %d, want 2", tree.LeafCount())
	}
}

func TestReduce_CollapsesRootLast(t *testing.T) {
	tree := newTree(t, 2)

	for _, p := range []Pixel{{0, 0, 0}, {255, 255, 255}, {0, 255, 0}} {
		tree.Insert(p)
	}

	for tree.Reduce() > 0 {
	}

	root, ok := tree.Root()
	if !ok {
		t.Fatal("Root should exist")
	}
	if !root.IsLeaf() {
		t.Fatal("root should have collapsed into a leaf")
	}
	if tree.LeafCount() != 1 {
		t.Errorf("LeafCount: got %d, want 1", tree.LeafCount())
	}
	if root.PixelCount() != 3 {
		t.Errorf("PixelCount: got %d, want 3", root.PixelCount())
	}
	if got := root.Average(); got != (Pixel{85, 170, 85}) {
		t.Errorf("Average: got %v, want {85 170 85}", got)
	}
}

func TestReduce_CollapsedNodeKeepsAccumulating(t *testing.T) {
	tree := newTree(t, 8)

	tree.Insert(Pixel{0, 0, 0})
	tree.Insert(Pixel{0, 0, 1})
	for tree.Reduce() > 0 {
	}
	if tree.LeafCount() != 1 {
		t.Fatalf("LeafCount: got %d, want 1", tree.LeafCount())
	}

	tree.Insert(Pixel{255, 255, 255})
	if tree.LeafCount() != 1 {
		t.Errorf("LeafCount after insert: got %d, want 1", tree.LeafCount())
	}

	root, _ := tree.Root()
	if root.PixelCount() != 3 {
		t.Errorf("PixelCount: got %d, want 3", root.PixelCount())
	}
}

func TestNode_InvalidAccess(t *testing.T) {
	tree, err := Build(Pixels(Pixel{0, 0, 0}, Pixel{255, 0, 0}), 8, 8)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	root, ok := tree.Root()
	if !ok {
		t.Fatal("Root should exist")
	}

	if err := recoverError(t, func() { root.Average() }); !errors.Is(err, ErrInvalidAccess) {
		t.Errorf("Average on branch: got %v, want ErrInvalidAccess", err)
	}
	if err := recoverError(t, func() { root.Red() }); !errors.Is(err, ErrInvalidAccess) {
		t.Errorf("Red on branch: got %v, want ErrInvalidAccess", err)
	}

	leaves := tree.Leaves()
	if len(leaves) != 2 {
		t.Fatalf("got %d leaves, want 2", len(leaves))
	}
	if err := recoverError(t, func() { leaves[0].Children() }); !errors.Is(err, ErrInvalidAccess) {
		t.Errorf("Children on leaf: got %v, want ErrInvalidAccess", err)
	}

	if r, g, b := leaves[1].Red(), leaves[1].Green(), leaves[1].Blue(); r != 255 || g != 0 || b != 0 {
		t.Errorf("leaf channels: got (%d,%d,%d), want (255,0,0)", r, g, b)
	}
}

func TestNode_AverageOfEmptyLeaf(t *testing.T) {
	tree := newTree(t, 8)

	idx := tree.newNode(8)
	err := recoverError(t, func() { Node{t: tree, idx: idx}.Average() })
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("got %v, want ErrEmptyInput", err)
	}
}

func TestTree_ArenaRecyclesReducedSlots(t *testing.T) {
	const maxColors = 16
	tree, err := Build(Pixels(randomPixels(20000, 7)...), maxColors, 8)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// Every live branch has at least one child, so branches never outnumber
	// leaves times depth.
	bound := (maxColors + 1) * (MaxColorBits + 1)
	if tree.liveNodes() > bound {
		t.Errorf("live nodes %d exceed %d", tree.liveNodes(), bound)
	}
	if len(tree.nodes) > bound {
		t.Errorf("arena size %d exceeds %d", len(tree.nodes), bound)
	}
}
