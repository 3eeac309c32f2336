package rng

import (
	"crypto/sha256"
	"encoding/hex"
)

// BuildChain materializes a hash chain of the given length from a seed,
// per spec.md §4.5: h[length-1] = SHA-256(seed), h[i] = SHA-256(h[i+1]) for
// i counting down to 0. The chain is consumed tail-to-head, so the first
// spin reveals h[length-1] and the last spin reveals h[0] - no link ever
// exposes the one that produced it.
//
// Adapted from the donor's HashChainGenerator, which chained
// prevSpinHash+serverSeed+clientSeed+nonce per spin (a dual-commitment
// design this core does not use); here the chain is a single pre-computed
// sequence of plain SHA-256 iterations, independent of client input.
func BuildChain(seed []byte, length int) [][32]byte {
	chain := make([][32]byte, length)
	chain[length-1] = sha256.Sum256(seed)
	for i := length - 2; i >= 0; i-- {
		chain[i] = sha256.Sum256(chain[i+1][:])
	}
	return chain
}

// ChainCommitment returns the hex-encoded SHA-256 of a chain link, the value
// published as the session's hash-chain commitment (spec.md §4.5 names this
// commitment over h[0], the link revealed last).
func ChainCommitment(link [32]byte) string {
	sum := sha256.Sum256(link[:])
	return hex.EncodeToString(sum[:])
}

// VerifyLink reports whether child is the immediate successor of parent in
// a hash chain, i.e. parent == SHA-256(child). Used to check a session's
// consumed links form an unbroken chain back to its published commitment.
func VerifyLink(parent, child [32]byte) bool {
	return sha256.Sum256(child[:]) == parent
}
