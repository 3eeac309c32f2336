// Package simulation defines the reproducible output contract of the
// three-body entropy simulator: the digest, its inputs, and the metadata
// that makes two independent runs comparable.
package simulation

import "github.com/provablyfair/slotcore/domain/physics"

// Params are the run-level inputs of a simulation. Two verifiers given
// identical Params and an identical initial SystemConfiguration must produce
// byte-identical Digests (spec.md §4.1 determinism contract). Simulator.Run
// takes G and Eps from the SystemConfiguration; it does not read Params.G or
// Params.Eps.
type Params struct {
	Duration float64 // simulated seconds, > 0
	TimeStep float64 // integration step, > 0
	G        float64
	Eps      float64
}

// Digest is the reproducible, immutable output of a simulation run: the
// SHA-256 hex digest of the canonical serialization of the final state,
// plus the metadata needed to audit how it was produced.
type Digest struct {
	Hex              string  // 64 lowercase hex chars
	InitialStateHash string  // SHA-256 hex of the initial SystemConfiguration
	Duration         float64
	TimeStep         float64
	Steps            int
	ChaoticMetric    float64 // diagnostic only, not consumed downstream
}

// FinalState is the terminal system configuration a simulation run produced,
// kept around for callers that want to inspect it beyond the digest.
type FinalState struct {
	Bodies [3]physics.Body
}
