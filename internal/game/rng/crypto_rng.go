// Package rng provides the cryptographically secure byte source shared by
// the entropy oracle and the session hash chain. Adapted from the donor's
// internal/game/rng.CryptoRNG, trimmed to the one primitive this core
// actually needs: uniformly random bytes. The donor's Int/IntRange/Float64/
// Shuffle/WeightedChoice helpers existed to drive symbol selection directly
// from an RNG; this core never selects symbols that way (domain/reel maps
// deterministically from already-revealed entropy), so they have no caller
// here and are dropped rather than kept unwired.
package rng

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// CryptoRNG generates cryptographically secure random bytes.
// CRITICAL: uses crypto/rand ONLY - NEVER math/rand for gaming compliance.
type CryptoRNG struct{}

// NewCryptoRNG creates a new cryptographically secure byte source.
func NewCryptoRNG() *CryptoRNG {
	return &CryptoRNG{}
}

// Bytes fills the provided byte slice with random bytes.
func (r *CryptoRNG) Bytes(b []byte) error {
	if _, err := rand.Read(b); err != nil {
		return fmt.Errorf("crypto RNG read failed: %w", err)
	}
	return nil
}

// HexSeed returns n cryptographically secure random bytes hex-encoded. Used
// to mint the random suffix of session IDs.
func (r *CryptoRNG) HexSeed(n int) (string, error) {
	b := make([]byte, n)
	if err := r.Bytes(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
