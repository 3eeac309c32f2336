package reel

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidReelCount is returned when ReelCount falls outside [3, 8]
	// (spec.md §4.3).
	ErrInvalidReelCount = errors.New("reel: reel count must be in [3, 8]")

	// ErrInvalidSymbolsPerReel is returned when SymbolsPerReel < 1.
	ErrInvalidSymbolsPerReel = errors.New("reel: symbols per reel must be >= 1")

	// ErrNoSymbols is returned when a configuration has an empty symbol set.
	ErrNoSymbols = errors.New("reel: configuration has no symbols")

	// ErrEntropyTooShort is returned when the entropy hex digest does not
	// carry enough bytes to resolve every reel (spec.md §4.3: "the entropy
	// digest must contain >= 8*reelCount hex chars").
	ErrEntropyTooShort = errors.New("reel: entropy digest shorter than 8*reelCount hex chars")
)

// Validate checks the structural invariants spec.md §4.3 requires of a
// ReelConfiguration, independent of any particular entropy digest.
func (c ReelConfiguration) Validate() error {
	if c.ReelCount < 3 || c.ReelCount > 8 {
		return fmt.Errorf("%w: got %d", ErrInvalidReelCount, c.ReelCount)
	}
	if c.SymbolsPerReel < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSymbolsPerReel, c.SymbolsPerReel)
	}
	if len(c.Symbols) == 0 {
		return ErrNoSymbols
	}
	return nil
}
