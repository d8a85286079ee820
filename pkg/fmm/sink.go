package fmm

import (
	"time"

	"github.com/xuyanwen2012/fmm2d/internal/debug"
	"github.com/xuyanwen2012/fmm2d/internal/xsync"
	"github.com/xuyanwen2012/fmm2d/pkg/either"
)

// Phase names the four ordered passes plus the pipeline's pseudo-phases
// (build and insertion) that a Sink may be told about.
type Phase string

const (
	PhaseBuild        Phase = "build"
	PhaseInsert       Phase = "insert"
	PhaseCenterOfMass Phase = "compute_com"
	PhaseMultipoles   Phase = "compute_u"
	PhaseDownward     Phase = "downward_pass"
	PhaseDirect       Phase = "sum_direct_computation"
)

// PhaseStart is emitted immediately before a phase begins.
type PhaseStart struct {
	Phase Phase
}

// PhaseEnd is emitted immediately after a phase finishes, carrying how
// long it took.
type PhaseEnd struct {
	Phase   Phase
	Elapsed time.Duration
}

// PhaseEvent is the value passed to a Sink: either a PhaseStart or a
// PhaseEnd, never both.
type PhaseEvent = either.Either[PhaseStart, PhaseEnd]

// Sink receives phase-start and phase-end notifications as a tree runs
// its passes. The zero Sink is nil and is never called; use
// defaultSink or WithSink to install one.
type Sink func(PhaseEvent)

// totalElapsed accumulates wall-clock time spent across phases,
// observed by the default sink. It is package-level so every default
// sink across every Tree shares one running total, matching the
// description in spec.md §6 of a shared logging/progress collaborator.
var totalElapsed xsync.AtomicFloat64

// defaultSink forwards phase events to internal/debug.Log, which is a
// no-op unless the binary is built with -tags debug.
func defaultSink(ev PhaseEvent) {
	if ev.HasLeft() {
		start := ev.UnwrapLeft()
		debug.Log(nil, "phase start", "%s", start.Phase)
		return
	}

	end := ev.UnwrapRight()
	total := totalElapsed.Add(end.Elapsed.Seconds())
	debug.Log(nil, "phase end", "%s took %s (cumulative %.6fs)", end.Phase, end.Elapsed, total)
}

func (t *Tree) emit(ev PhaseEvent) {
	if t.sink != nil {
		t.sink(ev)
	}
}

func (t *Tree) timePhase(phase Phase, f func()) {
	t.emit(either.Left[PhaseStart, PhaseEnd](PhaseStart{Phase: phase}))
	start := time.Now()
	f()
	t.emit(either.Right[PhaseStart, PhaseEnd](PhaseEnd{Phase: phase, Elapsed: time.Since(start)}))
}
