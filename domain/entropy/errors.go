package entropy

import "errors"

var (
	// ErrNoCommitment is returned when reveal is called without a live,
	// unused commitment cache entry for the session (spec.md §4.2/§4.7).
	ErrNoCommitment = errors.New("entropy: no live commitment for session")

	// ErrCommitmentAlreadyUsed names a second reveal of an already consumed
	// commitment. Oracle.Reveal does not return it: a consumed entry is
	// removed from the cache, so a second reveal fails with ErrNoCommitment.
	ErrCommitmentAlreadyUsed = errors.New("entropy: commitment already revealed")

	// ErrInvalidClientSeed is returned when the client seed is outside the
	// 16-256 character range spec.md §6 requires.
	ErrInvalidClientSeed = errors.New("entropy: client seed must be 16-256 characters")

	// ErrSimulationFailed is returned when the three-body simulation that
	// seeds a quick-flow (RequestEntropy) commitment fails.
	ErrSimulationFailed = errors.New("entropy: house-seed simulation failed")
)
