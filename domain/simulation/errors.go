package simulation

import "errors"

var (
	// ErrNumericalInstability is raised when any body's state stops being
	// finite mid-integration. Terminal for the run; there is no retry.
	ErrNumericalInstability = errors.New("simulation: numerical instability detected")

	// ErrInvalidDuration is raised when Params.Duration <= 0.
	ErrInvalidDuration = errors.New("simulation: duration must be positive")

	// ErrInvalidTimeStep is raised when Params.TimeStep <= 0.
	ErrInvalidTimeStep = errors.New("simulation: time step must be positive")
)

// Validate checks the Params-level invariants spec.md §4.1 requires.
func (p Params) Validate() error {
	if p.Duration <= 0 {
		return ErrInvalidDuration
	}
	if p.TimeStep <= 0 {
		return ErrInvalidTimeStep
	}
	return nil
}
