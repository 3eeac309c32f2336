// Package session defines the per-session state machine's data model: the
// hash chain a session consumes, the append-only spin history it produces,
// and the states a session moves through. Adapted from the donor's
// domain/session package, which modeled a GORM-backed GameSession/
// PlayerSession pair for login and wagering bookkeeping; this core has no
// database, so Session is a plain in-memory value owned exclusively by
// internal/game/session.Machine.
package session

import (
	"crypto/sha256"
	"time"
)

// State is one of the session machine's states (spec.md §4.5).
type State string

const (
	StateInit             State = "INIT"
	StateAwaitingBet      State = "AWAITING_BET"
	StateEntropyRequested State = "ENTROPY_REQUESTED"
	StateSpinning         State = "SPINNING"
	StateResultReady      State = "RESULT_READY"
	StateComplete         State = "COMPLETE"
	StateError            State = "ERROR"
)

// HashChain is the pre-computed, fixed-length sequence of 32-byte digests a
// session consumes tail-to-head: Links[length-1] = SHA-256(seed), Links[i] =
// SHA-256(Links[i+1]). Immutable after construction; only the owning
// session's CurrentIndex tracks how much of it has been consumed.
type HashChain struct {
	Seed   []byte
	Links  [][32]byte // Links[i] == h_i; Links[length-1] revealed first, Links[0] last
	Length int
}

// ServerCommitment returns SHA-256(h_0), the value published before any
// spin is played.
func (c HashChain) ServerCommitment() [32]byte {
	return sha256.Sum256(c.Links[0][:])
}

// HouseSeedForNonce returns the chain link a spin at the given nonce
// consumes: nonce 0 consumes h_{L-1}, nonce L-1 consumes h_0.
func (c HashChain) HouseSeedForNonce(nonce uint32) [32]byte {
	return c.Links[c.Length-1-int(nonce)]
}

// Proof mirrors domain/entropy.Proof's shape for a session-produced spin,
// computed with the session's own serverSecret rather than the oracle's
// houseSeed-keyed formula (spec.md §9's "simplified simulation path").
type Proof struct {
	ProofID    string
	Commitment string
	HouseSeed  string
	ClientSeed string
	Nonce      uint32
	Signature  string
}

// SpinRecord is the append-only record of one resolved spin.
type SpinRecord struct {
	SpinID        string
	Nonce         uint32
	BetCents      int64
	EntropyHex    string
	ReelPositions []int
	Symbols       []string
	WinCents      int64
	Timestamp     time.Time
	Proof         Proof
}

// Session is the full state a Machine owns for the lifetime of one player's
// play session. Single-owner: not safe for concurrent use by more than one
// goroutine (spec.md §5: "single-threaded-per-session; a session is not
// reentrant").
type Session struct {
	SessionID    string
	UserID       string
	GameID       string
	State        State
	BalanceCents int64
	ClientSeed   string
	CurrentIndex uint32
	Chain        HashChain
	SpinHistory  []SpinRecord
	CreatedAt    time.Time
}
