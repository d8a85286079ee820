package fmm

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Use errors.Is to test against these, or
// github.com/xuyanwen2012/fmm2d/pkg/xerrors.AsA to recover the wrapped
// *StateError where applicable.
var (
	// ErrInvalidLevel is returned by New when L is outside [1,10].
	ErrInvalidLevel = errors.New("fmm: invalid level")

	// ErrOutOfDomain is returned by Insert when a body's position falls
	// outside [0,1)^2.
	ErrOutOfDomain = errors.New("fmm: position out of domain")

	// ErrWrongPhase is returned when a pass is invoked from a state that
	// does not admit it.
	ErrWrongPhase = errors.New("fmm: operation invalid in current phase")
)

// StateError wraps ErrWrongPhase with the state the tree was in and the
// operation that was rejected, recoverable with errors.As.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("fmm: %s: invalid in state %s", e.Op, e.State)
}

func (e *StateError) Unwrap() error { return ErrWrongPhase }

func wrongPhase(op string, s State) error {
	return &StateError{Op: op, State: s}
}
