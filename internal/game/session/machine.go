// Package session implements the per-session state machine (component E):
// construction of a fresh hash chain, the atomic spin cycle, and the
// observer list sessions emit events through. Adapted from the donor's
// internal/service (session bookkeeping) and internal/game/rng
// (hash-chain primitives), recombined around spec.md's single-writer,
// non-reentrant session model rather than the donor's GORM-backed
// multi-table session bookkeeping.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainreel "github.com/provablyfair/slotcore/domain/reel"
	domainsession "github.com/provablyfair/slotcore/domain/session"
	gamereel "github.com/provablyfair/slotcore/internal/game/reel"
	"github.com/provablyfair/slotcore/internal/game/rng"
	"github.com/provablyfair/slotcore/internal/pkg/apperr"
)

// Machine drives a single domainsession.Session through its lifecycle. Not
// safe for concurrent use: spec.md §5 requires one goroutine per session.
type Machine struct {
	session      domainsession.Session
	reelConfig   domainreel.ReelConfiguration
	serverSecret []byte
	observers    []domainsession.Observer
}

// DefaultClientSeed is used for a spin when the caller never called
// SetClientSeed.
const DefaultClientSeed = "00000000000000000000000000000000"

// New constructs a session in state INIT: it mints a sessionId, draws a
// fresh hash-chain seed, materializes the chain, and derives the published
// serverCommitment. The chain and serverSecret are immutable for the rest
// of the machine's life (spec.md §4.4/§5).
func New(userID, gameID string, reelConfig domainreel.ReelConfiguration, initialBalanceCents int64, serverSecret []byte, chainLength int) (*Machine, error) {
	r := rng.NewCryptoRNG()

	idSuffix, err := r.HexSeed(8)
	if err != nil {
		return nil, fmt.Errorf("session: failed to mint session id: %w", err)
	}
	sessionID := fmt.Sprintf("%d-%s", time.Now().UnixNano(), idSuffix)

	seed := make([]byte, 32)
	if err := r.Bytes(seed); err != nil {
		return nil, fmt.Errorf("session: failed to seed hash chain: %w", err)
	}

	links := rng.BuildChain(seed, chainLength)
	chain := domainsession.HashChain{Seed: seed, Links: links, Length: chainLength}

	sess := domainsession.Session{
		SessionID:    sessionID,
		UserID:       userID,
		GameID:       gameID,
		State:        domainsession.StateInit,
		BalanceCents: initialBalanceCents,
		ClientSeed:   DefaultClientSeed,
		CurrentIndex: 0,
		Chain:        chain,
		CreatedAt:    time.Now(),
	}

	return &Machine{session: sess, reelConfig: reelConfig, serverSecret: serverSecret}, nil
}

// Observe registers an observer that receives every event this machine
// emits from this point forward.
func (m *Machine) Observe(obs domainsession.Observer) {
	m.observers = append(m.observers, obs)
}

// Snapshot returns a copy of the session's current state.
func (m *Machine) Snapshot() domainsession.Session {
	snap := m.session
	snap.SpinHistory = append([]domainsession.SpinRecord(nil), m.session.SpinHistory...)
	return snap
}

// Start transitions INIT -> AWAITING_BET.
func (m *Machine) Start() error {
	if m.session.State != domainsession.StateInit {
		return m.invalidTransition("start")
	}
	m.transition(domainsession.StateAwaitingBet)
	return nil
}

// SetClientSeed records the client seed used by subsequent spins. Allowed
// only before any spin has consumed the chain, so a change mid-session can
// never be attributed to knowledge of an already-revealed house seed.
func (m *Machine) SetClientSeed(clientSeed string) error {
	if m.session.State != domainsession.StateInit && m.session.State != domainsession.StateAwaitingBet {
		return m.invalidTransition("setClientSeed")
	}
	if m.session.CurrentIndex > 0 {
		return m.invalidTransition("setClientSeed")
	}
	if len(clientSeed) < 16 || len(clientSeed) > 256 {
		return apperr.New(apperr.Validation, "client seed must be 16-256 characters")
	}
	m.session.ClientSeed = clientSeed
	return nil
}

// Reset returns the session from ERROR to INIT, the only transition out of
// the terminal sink (spec.md §4.5).
func (m *Machine) Reset() error {
	if m.session.State != domainsession.StateError {
		return m.invalidTransition("reset")
	}
	m.transition(domainsession.StateInit)
	return nil
}

// Spin runs the atomic spin cycle of spec.md §4.4: bet validation, chain
// consumption, entropy derivation, reel resolution, and balance update.
func (m *Machine) Spin(betCents int64) (domainsession.SpinRecord, error) {
	if m.session.State == domainsession.StateComplete {
		return domainsession.SpinRecord{}, apperr.Wrap(apperr.SessionComplete, "hash chain exhausted", domainsession.ErrSessionComplete)
	}
	if m.session.State != domainsession.StateAwaitingBet {
		return domainsession.SpinRecord{}, m.invalidTransition("spin")
	}
	if betCents <= 0 || betCents > m.session.BalanceCents {
		return domainsession.SpinRecord{}, apperr.Wrap(apperr.Validation, "bet must be positive and not exceed balance", domainsession.ErrInvalidBet)
	}

	m.session.BalanceCents -= betCents
	m.transition(domainsession.StateEntropyRequested)

	nonce := m.session.CurrentIndex
	houseSeed := m.session.Chain.HouseSeedForNonce(nonce)
	clientSeed := m.session.ClientSeed

	m.transition(domainsession.StateSpinning)

	entropyHex := computeSessionEntropy(m.serverSecret, houseSeed, clientSeed, nonce)

	outcome, err := gamereel.ResolveSpin(entropyHex, m.reelConfig, betCents)
	if err != nil {
		m.transition(domainsession.StateError)
		m.emit(domainsession.Event{Kind: domainsession.EventError, SessionID: m.session.SessionID, Err: err})
		return domainsession.SpinRecord{}, apperr.Wrap(apperr.Internal, "reel resolution failed", err)
	}

	spinID := uuid.New().String()
	proof := buildSessionProof(m.serverSecret, spinID, houseSeed, clientSeed, nonce)

	record := domainsession.SpinRecord{
		SpinID:        spinID,
		Nonce:         nonce,
		BetCents:      betCents,
		EntropyHex:    entropyHex,
		ReelPositions: outcome.Positions,
		Symbols:       outcome.Symbols,
		WinCents:      outcome.WinCents,
		Timestamp:     time.Now(),
		Proof:         proof,
	}

	m.session.SpinHistory = append(m.session.SpinHistory, record)
	m.session.BalanceCents += outcome.WinCents
	m.session.CurrentIndex++

	m.transition(domainsession.StateResultReady)
	if m.session.CurrentIndex == uint32(m.session.Chain.Length) {
		m.transition(domainsession.StateComplete)
	} else {
		m.transition(domainsession.StateAwaitingBet)
	}

	m.emit(domainsession.Event{Kind: domainsession.EventSpin, SessionID: m.session.SessionID, SpinRecord: &record})
	if outcome.WinCents > 0 {
		m.emit(domainsession.Event{Kind: domainsession.EventWin, SessionID: m.session.SessionID, SpinRecord: &record})
	}

	return record, nil
}

func (m *Machine) transition(to domainsession.State) {
	from := m.session.State
	m.session.State = to
	m.emit(domainsession.Event{Kind: domainsession.EventStateChange, SessionID: m.session.SessionID, From: from, To: to})
}

func (m *Machine) emit(ev domainsession.Event) {
	for _, obs := range m.observers {
		obs(ev)
	}
}

func (m *Machine) invalidTransition(op string) error {
	return apperr.Wrap(apperr.InvalidTransition, fmt.Sprintf("%s not valid in state %s", op, m.session.State), domainsession.ErrInvalidTransition)
}

// computeSessionEntropy implements spec.md §9's simplified simulation path:
// HMAC-SHA-256(serverSecret, houseSeed + ":" + clientSeed + ":" + nonce).
// This is the formula the session machine itself uses - distinct from the
// entropy oracle's houseSeed-keyed HMAC in domain/entropy, which only
// applies to the standalone commit/reveal flow.
func computeSessionEntropy(serverSecret []byte, houseSeed [32]byte, clientSeed string, nonce uint32) string {
	mac := hmac.New(sha256.New, serverSecret)
	fmt.Fprintf(mac, "%s:%s:%d", hex.EncodeToString(houseSeed[:]), clientSeed, nonce)
	return hex.EncodeToString(mac.Sum(nil))
}

func buildSessionProof(serverSecret []byte, spinID string, houseSeed [32]byte, clientSeed string, nonce uint32) domainsession.Proof {
	houseSeedHex := hex.EncodeToString(houseSeed[:])
	commitment := sha256Hex(houseSeed[:])
	signature := signSpin(serverSecret, spinID, commitment, clientSeed, nonce)
	proofIDSum := sha256.Sum256([]byte(spinID))

	return domainsession.Proof{
		ProofID:    hex.EncodeToString(proofIDSum[:])[:32],
		Commitment: commitment,
		HouseSeed:  houseSeedHex,
		ClientSeed: clientSeed,
		Nonce:      nonce,
		Signature:  signature,
	}
}

func signSpin(serverSecret []byte, spinID, commitment, clientSeed string, nonce uint32) string {
	mac := hmac.New(sha256.New, serverSecret)
	fmt.Fprintf(mac, "%s:%s:%s:%d", spinID, commitment, clientSeed, nonce)
	return hex.EncodeToString(mac.Sum(nil))
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
