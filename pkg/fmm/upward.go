package fmm

// computeCenterOfMass runs the upward pass: leaves sum the mass of
// their contents, then each level from maxLevel-1 down to 0 sums its
// four children's mass. Level-synchronous: a level is never started
// before the level beneath it has finished.
func (t *Tree) computeCenterOfMass() {
	leafLevel := t.level
	bodies := t.bodies

	for i := range t.arena.levelNodes(leafLevel) {
		leaf := t.arena.at(levelStart(leafLevel) + i)
		var mass float64
		for _, bi := range leaf.Bodies {
			mass += bodies[bi].Mass
		}
		leaf.Mass = mass
	}

	for l := leafLevel - 1; l >= 0; l-- {
		w := levelWidth(l)
		for y := 0; y < w; y++ {
			for x := 0; x < w; x++ {
				node := t.arena.node(l, x, y)
				var mass float64
				for dy := 0; dy < 2; dy++ {
					for dx := 0; dx < 2; dx++ {
						mass += t.arena.at(childIndex(l, x, y, dx, dy)).Mass
					}
				}
				node.Mass = mass
			}
		}
	}
}
