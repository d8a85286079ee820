package fmm

import "github.com/xuyanwen2012/fmm2d/pkg/tuple"

// MinLevel and MaxLevel bound the depth of the quadtree. A single root
// level (MinLevel) is degenerate but valid: it has no interaction lists,
// only near-field direct summation applies.
const (
	MinLevel = 1
	MaxLevel = 10
)

// pow4 returns 4^n for small non-negative n, used to size each level of
// the arena.
func pow4(n int) int {
	r := 1
	for i := 0; i < n; i++ {
		r *= 4
	}
	return r
}

// pow2 returns 2^n for small non-negative n, the side length in cells of
// level n.
func pow2(n int) int {
	return 1 << uint(n)
}

// levelStart returns S(level), the index of the first node at level in
// the dense arena, where S(l) = (4^l - 1) / 3.
func levelStart(level int) int {
	return (pow4(level) - 1) / 3
}

// levelWidth returns the number of cells along one side of the grid at
// level, i.e. 2^level.
func levelWidth(level int) int {
	return pow2(level)
}

// globalIndex maps a (level, x, y) cell address to its index in the
// dense arena: S(level) + x + y*2^level.
func globalIndex(level, x, y int) int {
	return levelStart(level) + x + y*levelWidth(level)
}

// localXY recovers the (x, y) cell coordinates of a node from its local
// index within its level (idx - S(level)).
func localXY(level, local int) (x, y int) {
	w := levelWidth(level)
	return local % w, local / w
}

// childIndex returns the global index of the child of node (level, x, y)
// in quadrant (dx, dy), dx and dy each in {0, 1}.
func childIndex(level, x, y, dx, dy int) int {
	return globalIndex(level+1, 2*x+dx, 2*y+dy)
}

// neighborCoords enumerates the coordinates of the (up to) eight
// Moore-neighborhood cells of (level, x, y) that lie within the grid,
// plus the cell itself is never included. Cells past the boundary of
// [0, 2^level) x [0, 2^level) are clipped, not wrapped.
func neighborCoords(level, x, y int) []tuple.Tuple2[int, int] {
	w := levelWidth(level)
	out := make([]tuple.Tuple2[int, int], 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= w || ny < 0 || ny >= w {
				continue
			}
			out = append(out, tuple.New2(nx, ny))
		}
	}
	return out
}

// cellOf locates the cell at the given level containing a point in
// [0,1)^2, returning its (x, y) coordinates. The caller must have
// already validated p is in domain.
func cellOf(p complex128, level int) (x, y int) {
	w := float64(levelWidth(level))
	x = int(real(p) * w)
	y = int(imag(p) * w)
	if x >= int(w) {
		x = int(w) - 1
	}
	if y >= int(w) {
		y = int(w) - 1
	}
	return x, y
}

// cellCenter returns the geometric center of cell (level, x, y) as a
// point in the plane.
func cellCenter(level, x, y int) complex128 {
	w := float64(levelWidth(level))
	half := 0.5 / w
	return complex(float64(x)/w+half, float64(y)/w+half)
}

// inDomain reports whether p lies within the half-open unit square
// [0,1)^2 that the tree is built over.
func inDomain(p complex128) bool {
	re, im := real(p), imag(p)
	return re >= 0 && re < 1 && im >= 0 && im < 1
}
