package fmm

import (
	"github.com/xuyanwen2012/fmm2d/internal/xsync"
	"github.com/xuyanwen2012/fmm2d/pkg/opt"
)

// neighborKey addresses one memoization slot of an arena's neighbor-list
// cache: a (level, x, y) cell address.
type neighborKey struct {
	level, x, y int
}

// Arena is the dense, pointer-free storage for every node of a quadtree
// of depth L: level l's nodes occupy the contiguous range
// [levelStart(l), levelStart(l+1)) of nodes. Unlike a pointer tree, a
// node's parent, children, and neighbors are all recovered
// arithmetically from its (level, x, y) address, never stored.
//
// The arena's size is fixed at construction by the tree's level L and
// never grows afterwards, so it is backed by a single flat slice rather
// than the reallocating, unsafe-pointer arena allocator used elsewhere
// in this module's ancestry.
type Arena struct {
	nodes []TreeNode
	level int

	// neighborCache memoizes sortedNeighborIndices, since the same
	// cell's Moore neighborhood is recomputed once per child during
	// interaction-list construction and again, potentially from several
	// goroutines, during near-field direct summation.
	neighborCache xsync.Map[neighborKey, []int]
}

// buildArena allocates every node of a quadtree whose leaves sit at
// level (depth level+1), levels 0..level inclusive, and fixes each
// node's (level, x, y) address.
func buildArena(level int) *Arena {
	n := levelStart(level + 1)
	nodes := make([]TreeNode, n)

	for l := 0; l <= level; l++ {
		start := levelStart(l)
		w := levelWidth(l)
		for y := 0; y < w; y++ {
			for x := 0; x < w; x++ {
				idx := start + x + y*w
				nodes[idx].Level = l
				nodes[idx].X = x
				nodes[idx].Y = y
				nodes[idx].Center = opt.Some(cellCenter(l, x, y))
			}
		}
	}

	return &Arena{nodes: nodes, level: level}
}

// Len returns the total number of nodes across every level of the arena.
func (a *Arena) Len() int { return len(a.nodes) }

// at returns the node at global index idx.
func (a *Arena) at(idx int) *TreeNode { return &a.nodes[idx] }

// node returns the node at (level, x, y).
func (a *Arena) node(level, x, y int) *TreeNode {
	return &a.nodes[globalIndex(level, x, y)]
}

// levelNodes returns the contiguous slice of nodes at level.
func (a *Arena) levelNodes(level int) []TreeNode {
	start := levelStart(level)
	end := start + levelWidth(level)*levelWidth(level)
	return a.nodes[start:end]
}

// neighborsOf returns the sorted global indices of the Moore
// neighborhood of (level, x, y), computing it once and caching the
// result for every later caller.
func (a *Arena) neighborsOf(level, x, y int) []int {
	key := neighborKey{level, x, y}
	if v, ok := a.neighborCache.Load(key); ok {
		return v
	}

	v, _ := a.neighborCache.LoadOrStore(key, func() []int {
		return sortedNeighborIndices(level, x, y)
	})

	return v
}
