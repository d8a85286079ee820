package fmm

import (
	"sort"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestInteractionLists(t *testing.T) {
	Convey("Given a level-5 arena", t, func() {
		a := buildArena(4)
		a.buildInteractionLists()

		Convey("Then root and level 1 have empty interaction lists", func() {
			So(a.at(0).InteractionList, ShouldBeEmpty)
			for i := levelStart(1); i < levelStart(2); i++ {
				So(a.at(i).InteractionList, ShouldBeEmpty)
			}
		})

		Convey("Then every node's interaction list is disjoint from its own neighbors", func() {
			for level := 2; level <= a.level; level++ {
				w := levelWidth(level)
				for y := 0; y < w; y++ {
					for x := 0; x < w; x++ {
						n := a.node(level, x, y)
						nbrs := make(map[int]bool)
						for _, v := range a.neighborsOf(level, x, y) {
							nbrs[v] = true
						}
						for _, v := range n.InteractionList {
							So(nbrs[v], ShouldBeFalse)
						}
					}
				}
			}
		})

		Convey("Then every interaction list has at most 27 entries", func() {
			for level := 2; level <= a.level; level++ {
				w := levelWidth(level)
				for y := 0; y < w; y++ {
					for x := 0; x < w; x++ {
						n := a.node(level, x, y)
						So(len(n.InteractionList), ShouldBeLessThanOrEqualTo, 27)
					}
				}
			}
		})

		Convey("Then a fully-interior cell reaches the maximum of 27", func() {
			level := a.level
			w := levelWidth(level)
			mid := w / 2
			n := a.node(level, mid, mid)
			So(len(n.InteractionList), ShouldEqual, 27)
		})

		Convey("Then interaction lists contain only same-level global indices", func() {
			for level := 2; level <= a.level; level++ {
				start := levelStart(level)
				end := start + levelWidth(level)*levelWidth(level)
				n := a.node(level, 0, 0)
				for _, v := range n.InteractionList {
					So(v, ShouldBeGreaterThanOrEqualTo, start)
					So(v, ShouldBeLessThan, end)
				}
			}
		})
	})
}

func TestSetDifference(t *testing.T) {
	Convey("Given two sorted slices", t, func() {
		a := []int{1, 2, 3, 4, 5}
		b := []int{2, 4}

		Convey("Then set difference removes the shared elements", func() {
			So(setDifference(a, b), ShouldResemble, []int{1, 3, 5})
		})
	})

	Convey("Given a fully overlapping subtrahend", t, func() {
		So(setDifference([]int{1, 2}, []int{1, 2, 3}), ShouldBeEmpty)
	})
}

func TestSortedNeighborIndices(t *testing.T) {
	Convey("Given an interior cell", t, func() {
		idx := sortedNeighborIndices(3, 4, 4)

		Convey("Then the result is sorted", func() {
			sorted := append([]int(nil), idx...)
			sort.Ints(sorted)
			So(idx, ShouldResemble, sorted)
		})
	})
}
