package fmm

import "github.com/xuyanwen2012/fmm2d/pkg/opt"

// TreeNode is one cell of the dense quadtree arena. It carries the
// upward-pass aggregate (total mass, treated as a single monopole at the
// node's geometric center), the downward-pass local expansion, and the
// leaf's body list.
//
// Nodes never hold pointers to siblings, parents, or children: every
// relationship is recovered arithmetically from (level, local index) by
// the functions in geometry.go, so the arena can be a flat, contiguous
// slice.
type TreeNode struct {
	Level int
	X, Y  int

	// Mass is the total mass of bodies in this node's subtree.
	Mass float64

	// Center caches this node's geometric center, set once by
	// buildArena and read repeatedly by every later pass. An
	// opt.Option rather than a bare complex128 so a node whose center
	// has not been computed yet (never the case after New returns, but
	// a useful distinction while the arena is under construction) is
	// distinguishable from one centered at the origin.
	Center opt.Option[complex128]

	// Local accumulates the local expansion contributed by this node's
	// interaction list and, after the downward pass, by its parent's
	// local expansion too.
	Local complex128

	// Bodies lists the indices, into the tree's body slice, of bodies
	// directly owned by this node. Only leaves ever populate this.
	Bodies []int

	// InteractionList holds the global indices of this node's
	// well-separated set, built once by buildInteractionLists. Empty
	// for levels 0 and 1.
	InteractionList []int
}
