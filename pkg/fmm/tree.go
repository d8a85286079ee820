package fmm

import (
	"fmt"
	"iter"

	"github.com/xuyanwen2012/fmm2d/internal/debug"
	"github.com/xuyanwen2012/fmm2d/internal/xsync"
	"github.com/xuyanwen2012/fmm2d/pkg/res"
	"github.com/xuyanwen2012/fmm2d/pkg/xiter"
)

// State names a point in the tree's pipeline. Every pass transitions
// the tree exactly one edge forward; calling a pass from the wrong
// state returns a *StateError wrapping ErrWrongPhase.
type State int

const (
	Empty State = iota
	Built
	Populated
	CoMReady
	MultipolesReady
	LocalsReady
	Done
)

func (s State) String() string {
	switch s {
	case Empty:
		return "Empty"
	case Built:
		return "Built"
	case Populated:
		return "Populated"
	case CoMReady:
		return "CoMReady"
	case MultipolesReady:
		return "MultipolesReady"
	case LocalsReady:
		return "LocalsReady"
	case Done:
		return "Done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Tree is a dense, pointer-free quadtree over [0,1)^2 together with the
// bodies it has been given and the state machine governing which pass
// may run next.
//
// A Tree is single-owner: the arena and the body references it holds
// are alive for the tree's lifetime, and there is no dynamic growth
// after New returns.
type Tree struct {
	level int // leaf level index, i.e. L-1 where L is the tree depth
	arena *Arena

	bodies []*Body

	state State
	sink  Sink

	parallel bool
}

// New constructs a Tree of depth level+1 (levels 0..level, leaves at
// level). Fails with ErrInvalidLevel if level is outside
// [MinLevel-1, MaxLevel-1], i.e. the spec's 1 <= L <= 10 with L = level+1.
func New(level int, opts ...Option) (*Tree, error) {
	if level < MinLevel-1 || level > MaxLevel-1 {
		return nil, fmt.Errorf("%w: level %d (L=%d) outside [%d,%d]", ErrInvalidLevel, level, level+1, MinLevel, MaxLevel)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	sink := defaultSink
	if cfg.sink.IsSome() {
		sink = cfg.sink.Unwrap()
	}

	t := &Tree{
		level:    level,
		bodies:   nil,
		state:    Empty,
		sink:     sink,
		parallel: cfg.parallel,
	}

	t.timePhase(PhaseBuild, func() {
		t.arena = buildArena(level)
		t.arena.buildInteractionLists()

		if debug.Enabled {
			for idx := range t.arena.nodes {
				t.checkInteractionListDisjoint(idx)
			}
		}
	})
	t.state = Built

	return t, nil
}

// Insert assigns a body to the leaf containing its position, computed
// from floor(px*2^level), floor(py*2^level). Fails with ErrOutOfDomain
// if the position is outside [0,1)^2. Repeated insertion of the same
// body is permitted and produces duplicate contributions; the caller
// is responsible for idempotence if it matters.
func (t *Tree) Insert(b *Body) error {
	if t.state != Built && t.state != Populated {
		return wrongPhase("Insert", t.state)
	}

	if !inDomain(b.Pos) {
		return fmt.Errorf("%w: %v", ErrOutOfDomain, b.Pos)
	}

	x, y := cellOf(b.Pos, t.level)
	idx := globalIndex(t.level, x, y)
	leaf := t.arena.at(idx)

	bodyIdx := len(t.bodies)
	t.bodies = append(t.bodies, b)
	leaf.Bodies = append(leaf.Bodies, bodyIdx)

	t.state = Populated

	return nil
}

// InsertAll inserts every body in bs, reporting per-body whether
// insertion succeeded (wrapping the body's index into Bodies()/the
// final tree) or failed with its error, indexed the same way bs is
// indexed.
func (t *Tree) InsertAll(bs []*Body) []res.Result[int] {
	out := make([]res.Result[int], len(bs))

	t.timePhase(PhaseInsert, func() {
		for i, b := range bs {
			if err := t.Insert(b); err != nil {
				out[i] = res.Err[int](err)
				continue
			}
			out[i] = res.Ok(len(t.bodies) - 1)
		}
	})

	return out
}

// ComputeCenterOfMass runs the upward pass. Valid from Built (zero
// bodies inserted, producing all-zero masses) or Populated.
func (t *Tree) ComputeCenterOfMass() error {
	if t.state != Built && t.state != Populated {
		return wrongPhase("ComputeCenterOfMass", t.state)
	}

	t.timePhase(PhaseCenterOfMass, t.computeCenterOfMass)
	t.state = CoMReady

	return nil
}

// ComputeMultipoles runs the M2L pass.
func (t *Tree) ComputeMultipoles() error {
	if t.state != CoMReady {
		return wrongPhase("ComputeMultipoles", t.state)
	}

	t.timePhase(PhaseMultipoles, t.computeMultipoles)
	t.state = MultipolesReady

	return nil
}

// DownwardPass propagates local expansions from parents to children
// and distributes each leaf's final local expansion to its bodies.
func (t *Tree) DownwardPass() error {
	if t.state != MultipolesReady {
		return wrongPhase("DownwardPass", t.state)
	}

	t.timePhase(PhaseDownward, t.downwardPass)
	t.state = LocalsReady

	return nil
}

// SumDirect runs the near-field direct summation.
func (t *Tree) SumDirect() error {
	if t.state != LocalsReady {
		return wrongPhase("SumDirect", t.state)
	}

	t.timePhase(PhaseDirect, t.sumDirect)
	t.state = Done

	return nil
}

// Run executes the four passes in order, stopping at the first error.
func (t *Tree) Run() error {
	if err := t.ComputeCenterOfMass(); err != nil {
		return err
	}
	if err := t.ComputeMultipoles(); err != nil {
		return err
	}
	if err := t.DownwardPass(); err != nil {
		return err
	}
	return t.SumDirect()
}

// Clear returns the tree to Built: every node's mass, local expansion,
// and body list is reset, and every inserted body is forgotten. The
// arena's shape (levels, interaction lists) is unchanged and is not
// rebuilt.
func (t *Tree) Clear() {
	for i := range t.arena.nodes {
		n := &t.arena.nodes[i]
		n.Mass = 0
		n.Local = 0
		n.Bodies = nil
	}

	t.bodies = nil
	t.state = Built
}

// Neighbors returns the global indices of the Moore neighborhood of the
// node at (level, local), up to 8 entries, clipped at the grid
// boundary.
func (t *Tree) Neighbors(level, local int) []int {
	x, y := localXY(level, local)
	return t.arena.neighborsOf(level, x, y)
}

// InteractionList returns the well-separated set of global indices for
// the node at the given global index. Empty for levels 0 and 1.
func (t *Tree) InteractionList(global int) []int {
	return t.arena.at(global).InteractionList
}

// NodeMass returns the aggregated mass of the node at the given global
// index, valid only after ComputeCenterOfMass has run.
func (t *Tree) NodeMass(global int) float64 {
	return t.arena.at(global).Mass
}

// NodeCenter returns the geometric center of the node at the given
// global index.
func (t *Tree) NodeCenter(global int) complex128 {
	return t.arena.at(global).Center.Unwrap()
}

// TotalMass returns the mass aggregated at the root, equal to the sum
// of every inserted body's mass once ComputeCenterOfMass has run.
func (t *Tree) TotalMass() float64 {
	return t.NodeMass(0)
}

// Bodies iterates every inserted body, in insertion order, with
// whatever potential U has accumulated so far.
func (t *Tree) Bodies() iter.Seq[*Body] {
	return func(yield func(*Body) bool) {
		for i := range xiter.Range(0, len(t.bodies)) {
			if !yield(t.bodies[i]) {
				return
			}
		}
	}
}

// checkInteractionListDisjoint validates, in debug builds only, that a
// node's interaction list and its own neighbor set never overlap. This
// is the invariant spec.md §8 calls "interaction-list disjointness".
func (t *Tree) checkInteractionListDisjoint(global int) {
	if !debug.Enabled {
		return
	}

	n := t.arena.at(global)
	if len(n.InteractionList) == 0 {
		return
	}

	var nbrs xsync.Set[int]
	for _, nb := range t.arena.neighborsOf(n.Level, n.X, n.Y) {
		nbrs.Store(nb)
	}

	for _, v := range n.InteractionList {
		debug.Assert(!nbrs.Load(v), "interaction list of node %d contains neighbor %d", global, v)
	}
}
