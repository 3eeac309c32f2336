package session

import "errors"

var (
	// ErrInvalidBet is returned when bet <= 0 or bet > balance (spec.md §4.7).
	ErrInvalidBet = errors.New("session: bet must be positive and not exceed balance")

	// ErrInvalidTransition is returned when an operation is attempted from a
	// state that does not permit it.
	ErrInvalidTransition = errors.New("session: operation not valid in current state")

	// ErrSessionComplete is returned when spin is called after the hash
	// chain has been fully consumed (spec.md §4.7: chain exhaustion).
	ErrSessionComplete = errors.New("session: hash chain exhausted")
)
