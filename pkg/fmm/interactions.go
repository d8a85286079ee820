package fmm

import "sort"

// buildInteractionLists populates Multipole-to-local interaction lists
// for every node from level 2 up to maxLevel. For parent level l in
// [1, maxLevel-1], each parent P's neighborhood children (PNC) is the
// sorted union of the four children of every neighbor of P -- P itself
// is excluded, only P's neighbors contribute. Each child C of P then
// gets interaction_list = PNC \ neighbors(C), the well-separated set
// that first appears at C's level.
//
// Root (level 0) and level 1 keep empty interaction lists, per the
// coverage argument: a cell only becomes well-separated from another
// once their common ancestor's children stop being neighbors, which
// cannot happen before level 2.
func (a *Arena) buildInteractionLists() {
	maxLevel := a.level

	for parentLevel := 1; parentLevel <= maxLevel-1; parentLevel++ {
		w := levelWidth(parentLevel)

		for py := 0; py < w; py++ {
			for px := 0; px < w; px++ {
				pnc := parentNeighborhoodChildren(parentLevel, px, py)

				for dy := 0; dy < 2; dy++ {
					for dx := 0; dx < 2; dx++ {
						cx, cy := 2*px+dx, 2*py+dy
						childLevel := parentLevel + 1

						cn := a.neighborsOf(childLevel, cx, cy)
						il := setDifference(pnc, cn)

						node := a.node(childLevel, cx, cy)
						node.InteractionList = il
					}
				}
			}
		}
	}
}

// parentNeighborhoodChildren returns, sorted by global index, the union
// of the four children of every neighbor of parent cell (level, x, y).
// The parent itself never contributes children here.
func parentNeighborhoodChildren(level, x, y int) []int {
	out := make([]int, 0, 32)

	for _, nb := range neighborCoords(level, x, y) {
		nx, ny := nb.Unpack()
		for dy := 0; dy < 2; dy++ {
			for dx := 0; dx < 2; dx++ {
				out = append(out, childIndex(level, nx, ny, dx, dy))
			}
		}
	}

	sort.Ints(out)
	return out
}

// sortedNeighborIndices returns the sorted global indices of the Moore
// neighborhood of (level, x, y).
func sortedNeighborIndices(level, x, y int) []int {
	coords := neighborCoords(level, x, y)
	out := make([]int, len(coords))
	for i, c := range coords {
		cx, cy := c.Unpack()
		out[i] = globalIndex(level, cx, cy)
	}
	sort.Ints(out)
	return out
}

// setDifference computes a \ b for two sorted, duplicate-free integer
// slices in linear time.
func setDifference(a, b []int) []int {
	out := make([]int, 0, len(a))
	i, j := 0, 0

	for i < len(a) {
		if j >= len(b) || a[i] < b[j] {
			out = append(out, a[i])
			i++
		} else if a[i] == b[j] {
			i++
			j++
		} else {
			j++
		}
	}

	return out
}
