package fmm

import "sync"

// sumDirect runs the near-field pass: each leaf computes the exact
// pairwise sum between its own bodies and the bodies of its Moore
// neighborhood at the leaf level. Leaves write only to bodies they
// themselves own, so distinct leaves may run concurrently without
// coordination.
func (t *Tree) sumDirect() {
	leafLevel := t.level
	w := levelWidth(leafLevel)
	start := levelStart(leafLevel)

	if !t.parallel {
		for y := 0; y < w; y++ {
			for x := 0; x < w; x++ {
				t.sumDirectLeaf(leafLevel, start, x, y, w)
			}
		}
		return
	}

	var wg sync.WaitGroup

	for y := 0; y < w; y++ {
		for x := 0; x < w; x++ {
			wg.Add(1)
			go func(x, y int) {
				defer wg.Done()
				t.sumDirectLeaf(leafLevel, start, x, y, w)
			}(x, y)
		}
	}

	wg.Wait()
}

func (t *Tree) sumDirectLeaf(leafLevel, start, x, y, w int) {
	leaf := t.arena.at(start + x + y*w)
	if len(leaf.Bodies) == 0 {
		return
	}

	bodies := t.bodies

	for _, pi := range leaf.Bodies {
		p := bodies[pi]
		var acc complex128

		for _, qi := range leaf.Bodies {
			if qi == pi {
				continue
			}
			q := bodies[qi]
			acc += kernel(p.Pos, q.Pos) * complex(q.Mass, 0)
		}

		for _, nbIdx := range t.arena.neighborsOf(leafLevel, x, y) {
			other := t.arena.at(nbIdx)
			for _, qi := range other.Bodies {
				q := bodies[qi]
				acc += kernel(p.Pos, q.Pos) * complex(q.Mass, 0)
			}
		}

		p.U += acc
	}
}
