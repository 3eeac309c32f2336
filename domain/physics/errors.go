package physics

import "errors"

// Validation errors for SystemConfiguration construction. Grouped here rather
// than under internal/pkg/apperr because they are pure domain-shape
// violations, not taxonomy-classified failures raised mid-simulation.
var (
	ErrNonPositiveMass     = errors.New("physics: body mass must be positive and finite")
	ErrNonFiniteComponent  = errors.New("physics: vector component must be finite")
	ErrNonPositiveG        = errors.New("physics: gravitational constant G must be positive")
	ErrNegativeSoftening   = errors.New("physics: softening parameter epsilon must be non-negative")
)

// Validate checks the invariants spec.md §4.1 requires before integration
// begins: positive finite masses, finite vector components, G>0, Eps>=0.
func (c SystemConfiguration) Validate() error {
	if c.G <= 0 {
		return ErrNonPositiveG
	}
	if c.Eps < 0 {
		return ErrNegativeSoftening
	}
	for _, b := range c.Bodies {
		if b.Mass <= 0 || isNaNOrInf(b.Mass) {
			return ErrNonPositiveMass
		}
		if !b.Position.IsFinite() || !b.Velocity.IsFinite() {
			return ErrNonFiniteComponent
		}
	}
	return nil
}
