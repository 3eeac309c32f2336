// Package verify defines the verifier's (component F) result types: the
// per-spin and per-session verdicts a third party uses to confirm nothing
// was tampered with after the fact. Grounded on the donor's provablyfair
// domain's verification-result shape, generalized to the five bytewise
// checks spec.md §4.6 specifies.
package verify

import "github.com/provablyfair/slotcore/domain/reel"

// Check names one of the bytewise comparisons a spin verification performs,
// in the order spec.md §4.6 lists them.
type Check string

const (
	CheckCommitment Check = "commitment"
	CheckEntropy    Check = "entropy"
	CheckSignature  Check = "signature"
	CheckPositions  Check = "positions"
	CheckSymbols    Check = "symbols"
)

// SpinResult is the outcome of verifying a single spin record.
type SpinResult struct {
	Valid        bool
	FailingCheck Check // empty when Valid
}

// SessionResult is the outcome of verifying every spin in a session plus
// the hash chain's structural invariants.
type SessionResult struct {
	Valid          bool
	FirstFailure   *SpinResult
	FailingSpinIdx int // -1 when Valid
	ChainValid     bool
}

// Verifier is the stateless contract a third party uses to recompute a
// spin or whole session from its stored inputs.
type Verifier interface {
	VerifySpin(record SpinRecordView, reelConfig reel.ReelConfiguration, serverSecret []byte) SpinResult
	VerifySession(records []SpinRecordView, reelConfig reel.ReelConfiguration, currentIndex, chainLength int, serverSecret []byte) SessionResult
}

// SpinRecordView is the minimal read-only projection of a
// domain/session.SpinRecord a verifier needs; kept independent of
// domain/session so this package has no dependency on session construction
// internals.
type SpinRecordView struct {
	SpinID        string
	Nonce         uint32
	BetCents      int64
	EntropyHex    string
	ReelPositions []int
	Symbols       []string
	HouseSeed     string
	ClientSeed    string
	Commitment    string
	Signature     string
}
