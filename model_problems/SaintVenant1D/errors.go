package SaintVenant1D

import (
	"errors"
	"fmt"
)

// Domain errors for solver construction and stepping.
var (
	// ErrBadChannel indicates invalid channel configuration parameters.
	ErrBadChannel = errors.New("saintvenant: invalid channel configuration")

	// ErrBadGrid indicates an invalid reach length or spatial step.
	ErrBadGrid = errors.New("saintvenant: invalid grid configuration")

	// ErrBadTimestep indicates a non-positive fixed time step.
	ErrBadTimestep = errors.New("saintvenant: invalid time step")

	// ErrUninitialized indicates stepping before initial conditions were set.
	ErrUninitialized = errors.New("saintvenant: initial conditions not set")

	// ErrBadInitial indicates initial condition arrays of the wrong length
	// or with nonphysical values.
	ErrBadInitial = errors.New("saintvenant: invalid initial conditions")

	// ErrUnstable indicates the explicit scheme diverged (negative depth or
	// non-finite state). Lower the Courant number or refine dx.
	ErrUnstable = errors.New("saintvenant: numerical instability")
)

// InstabilityError reports where and when the scheme went unstable.
// It unwraps to ErrUnstable.
type InstabilityError struct {
	Step     int
	Time     float64
	Node     int
	Quantity string // "h" or "Q"
	Value    float64
}

func (e *InstabilityError) Error() string {
	return fmt.Sprintf("%v: %s[%d] = %g at step %d (t = %.4f s)",
		ErrUnstable, e.Quantity, e.Node, e.Value, e.Step, e.Time)
}

func (e *InstabilityError) Unwrap() error { return ErrUnstable }
