// Package oracle implements the entropy oracle (component C): the
// commit-reveal protocol that publishes a house-seed commitment ahead of
// time and, on reveal, binds it to the client's seed with an HMAC proof.
// Grounded on the donor's domain/provablyfair.Service, adapted from its
// GORM-backed commitment table to internal/pkg/cache.TTLCache.
package oracle

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/provablyfair/slotcore/domain/entropy"
	"github.com/provablyfair/slotcore/domain/physics"
	"github.com/provablyfair/slotcore/domain/simulation"
	"github.com/provablyfair/slotcore/internal/game/rng"
	gamesim "github.com/provablyfair/slotcore/internal/game/simulation"
	"github.com/provablyfair/slotcore/internal/pkg/cache"
	"github.com/provablyfair/slotcore/internal/pkg/logger"
)

// Stats are the oracle's concurrency-safe counters (spec.md §5: "the
// oracle's statistics counters... must tolerate concurrent access from
// session threads").
type Stats struct {
	CommitsIssued   int64
	RevealsServed   int64
	RevealsRejected int64
}

// Oracle implements domain/entropy.Service.
type Oracle struct {
	cache         *cache.TTLCache[[]byte]
	rng           *rng.CryptoRNG
	simulator     *gamesim.Simulator
	simParams     simulation.Params
	serverSecret  []byte
	cacheTTL      time.Duration
	log           *logger.Logger
	commitsIssued int64
	revealsServed int64
	revealsReject int64
}

// New constructs an Oracle. serverSecret signs every proof (spec.md §4.6);
// simParams governs the three-body run RequestEntropy drives for its "quick"
// flow.
func New(serverSecret []byte, simParams simulation.Params, cacheTTL time.Duration, log *logger.Logger) *Oracle {
	return &Oracle{
		cache:        cache.New[[]byte](),
		rng:          rng.NewCryptoRNG(),
		simulator:    gamesim.New(),
		simParams:    simParams,
		serverSecret: serverSecret,
		cacheTTL:     cacheTTL,
		log:          log,
	}
}

// Close releases the oracle's cache resources.
func (o *Oracle) Close() {
	o.cache.Close()
}

// Stats returns a snapshot of the oracle's counters.
func (o *Oracle) Stats() Stats {
	return Stats{
		CommitsIssued:   atomic.LoadInt64(&o.commitsIssued),
		RevealsServed:   atomic.LoadInt64(&o.revealsServed),
		RevealsRejected: atomic.LoadInt64(&o.revealsReject),
	}
}

// PreCommit generates a 32-byte house seed, caches it under sessionID, and
// returns SHA-256(houseSeed) as the published commitment (spec.md §4.2).
// Concurrent PreCommit calls for the same sessionID are deduplicated via the
// cache's singleflight group, so a racing retry never mints two seeds for
// one session.
func (o *Oracle) PreCommit(ctx context.Context, sessionID string) (entropy.Commitment, error) {
	v, err, _ := o.cache.Group.Do(sessionID, func() (interface{}, error) {
		houseSeed := make([]byte, 32)
		if err := o.rng.Bytes(houseSeed); err != nil {
			return nil, err
		}
		o.cache.Put(sessionID, houseSeed, o.cacheTTL)
		return houseSeed, nil
	})
	if err != nil {
		return entropy.Commitment{}, fmt.Errorf("oracle: precommit failed: %w", err)
	}

	houseSeed := v.([]byte)
	commitment := sha256Hex(houseSeed)
	atomic.AddInt64(&o.commitsIssued, 1)

	o.log.Debug().Str("session_id", sessionID).Msg("entropy commitment issued")

	return entropy.Commitment{
		SessionID: sessionID,
		Hex:       commitment,
		ExpiresAt: time.Now().Add(o.cacheTTL),
	}, nil
}

// Reveal retrieves the cached house seed for sessionID, computes the
// revealed entropy, and returns it with a signed proof. The cache entry is
// consumed: a second Reveal for the same sessionID fails with
// ErrNoCommitment.
func (o *Oracle) Reveal(ctx context.Context, sessionID, clientSeed string, nonce uint32) (entropy.Revealed, error) {
	if err := validateClientSeed(clientSeed); err != nil {
		atomic.AddInt64(&o.revealsReject, 1)
		return entropy.Revealed{}, err
	}

	houseSeed, ok := o.cache.Consume(sessionID)
	if !ok {
		atomic.AddInt64(&o.revealsReject, 1)
		return entropy.Revealed{}, entropy.ErrNoCommitment
	}

	spinID := uuid.New().String()
	revealed, proof := o.buildReveal(spinID, houseSeed, clientSeed, nonce)

	atomic.AddInt64(&o.revealsServed, 1)
	o.log.Debug().Str("session_id", sessionID).Uint32("nonce", nonce).Msg("entropy revealed")

	return entropy.Revealed{Hex: revealed, Proof: proof}, nil
}

// RequestEntropy is the "quick" flow (spec.md §4.2): it drives the
// three-body simulator immediately, using its digest bytes as the house
// seed, then commits and reveals in the same call. Documented as less
// secure than the two-step PreCommit/Reveal flow because the house seed can,
// in principle, be produced with knowledge of the client seed.
func (o *Oracle) RequestEntropy(ctx context.Context, sessionID, clientSeed string, nonce uint32) (entropy.RequestEntropyResult, error) {
	if err := validateClientSeed(clientSeed); err != nil {
		atomic.AddInt64(&o.revealsReject, 1)
		return entropy.RequestEntropyResult{}, err
	}

	cfg, err := o.randomSystemConfiguration()
	if err != nil {
		return entropy.RequestEntropyResult{}, fmt.Errorf("oracle: random configuration failed: %w", err)
	}

	digest, _, err := o.simulator.Run(cfg, o.simParams)
	if err != nil {
		atomic.AddInt64(&o.revealsReject, 1)
		return entropy.RequestEntropyResult{}, fmt.Errorf("%w: %v", entropy.ErrSimulationFailed, err)
	}

	houseSeed, err := hex.DecodeString(digest.Hex)
	if err != nil {
		return entropy.RequestEntropyResult{}, fmt.Errorf("oracle: malformed digest: %w", err)
	}

	commitment := sha256Hex(houseSeed)
	atomic.AddInt64(&o.commitsIssued, 1)

	spinID := uuid.New().String()
	revealed, proof := o.buildReveal(spinID, houseSeed, clientSeed, nonce)
	atomic.AddInt64(&o.revealsServed, 1)

	return entropy.RequestEntropyResult{
		Commitment: entropy.Commitment{SessionID: sessionID, Hex: commitment, ExpiresAt: time.Now().Add(o.cacheTTL)},
		Revealed:   entropy.Revealed{Hex: revealed, Proof: proof},
	}, nil
}

// Verify recomputes the commitment, entropy, and signature from proof and
// reports the first failing check, per spec.md §4.2/§4.6.
func (o *Oracle) Verify(claimedEntropy string, proof entropy.Proof, commitment string) entropy.VerifyOutcome {
	if len(proof.ProofID) != 32 || !isLowerHex(proof.ProofID) {
		return entropy.VerifyOutcome{FailingCheck: "proofId"}
	}
	if proof.ProofID != proofID(proof.SpinID) {
		return entropy.VerifyOutcome{FailingCheck: "proofId"}
	}

	houseSeed, err := hex.DecodeString(proof.HouseSeed)
	if err != nil {
		return entropy.VerifyOutcome{FailingCheck: "houseSeed"}
	}
	if sha256Hex(houseSeed) != commitment || proof.Commitment != commitment {
		return entropy.VerifyOutcome{FailingCheck: "commitment"}
	}

	wantEntropy := computeEntropy(houseSeed, proof.ClientSeed, proof.Nonce)
	if wantEntropy != claimedEntropy {
		return entropy.VerifyOutcome{FailingCheck: "entropy"}
	}

	wantSig := o.sign(proof.SpinID, commitment, proof.ClientSeed, proof.Nonce)
	if !hmac.Equal([]byte(wantSig), []byte(proof.Signature)) {
		return entropy.VerifyOutcome{FailingCheck: "signature"}
	}

	return entropy.VerifyOutcome{Valid: true}
}

func (o *Oracle) buildReveal(spinID string, houseSeed []byte, clientSeed string, nonce uint32) (string, entropy.Proof) {
	commitment := sha256Hex(houseSeed)
	revealed := computeEntropy(houseSeed, clientSeed, nonce)
	signature := o.sign(spinID, commitment, clientSeed, nonce)

	proof := entropy.Proof{
		SpinID:     spinID,
		ProofID:    proofID(spinID),
		Commitment: commitment,
		HouseSeed:  hex.EncodeToString(houseSeed),
		ClientSeed: clientSeed,
		Nonce:      nonce,
		Signature:  signature,
	}
	return revealed, proof
}

// sign computes HMAC-SHA-256(serverSecret, spinID+":"+commitment+":"+clientSeed+":"+nonce).
func (o *Oracle) sign(spinID, commitment, clientSeed string, nonce uint32) string {
	mac := hmac.New(sha256.New, o.serverSecret)
	fmt.Fprintf(mac, "%s:%s:%s:%d", spinID, commitment, clientSeed, nonce)
	return hex.EncodeToString(mac.Sum(nil))
}

// computeEntropy is HMAC-SHA-256(houseSeed, clientSeed+":"+nonce), the
// revealed per-spin randomness spec.md §4.2 defines.
func computeEntropy(houseSeed []byte, clientSeed string, nonce uint32) string {
	mac := hmac.New(sha256.New, houseSeed)
	fmt.Fprintf(mac, "%s:%d", clientSeed, nonce)
	return hex.EncodeToString(mac.Sum(nil))
}

// proofID is SHA-256(spinID) truncated to 32 lowercase hex chars.
func proofID(spinID string) string {
	sum := sha256.Sum256([]byte(spinID))
	return hex.EncodeToString(sum[:])[:32]
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func isLowerHex(s string) bool {
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')) {
			return false
		}
	}
	return true
}

func validateClientSeed(clientSeed string) error {
	if len(clientSeed) < 16 || len(clientSeed) > 256 {
		return entropy.ErrInvalidClientSeed
	}
	return nil
}

// randomSystemConfiguration builds a random, valid three-body configuration
// for the "quick" requestEntropy flow, so each call drives an independent
// simulation run rather than reusing fixed bodies.
func (o *Oracle) randomSystemConfiguration() (physics.SystemConfiguration, error) {
	var bodies [3]physics.Body
	for i := range bodies {
		mass, err := o.randomUnitFloat()
		if err != nil {
			return physics.SystemConfiguration{}, err
		}
		pos, err := o.randomVector(2.0)
		if err != nil {
			return physics.SystemConfiguration{}, err
		}
		vel, err := o.randomVector(1.0)
		if err != nil {
			return physics.SystemConfiguration{}, err
		}
		bodies[i] = physics.Body{Mass: 0.5 + mass, Position: pos, Velocity: vel}
	}
	return physics.SystemConfiguration{Bodies: bodies, G: o.simParams.G, Eps: o.simParams.Eps}, nil
}

func (o *Oracle) randomVector(scale float64) (physics.Vector3, error) {
	x, err := o.randomSignedFloat(scale)
	if err != nil {
		return physics.Vector3{}, err
	}
	y, err := o.randomSignedFloat(scale)
	if err != nil {
		return physics.Vector3{}, err
	}
	return physics.Vector3{X: x, Y: y, Z: 0}, nil
}

func (o *Oracle) randomUnitFloat() (float64, error) {
	var b [8]byte
	if err := o.rng.Bytes(b[:]); err != nil {
		return 0, err
	}
	const mantissaBits = 1 << 53
	n := uint64FromBytes(b[:]) % mantissaBits
	return float64(n) / float64(mantissaBits), nil
}

func (o *Oracle) randomSignedFloat(scale float64) (float64, error) {
	u, err := o.randomUnitFloat()
	if err != nil {
		return 0, err
	}
	return (u*2 - 1) * scale, nil
}

func uint64FromBytes(b []byte) uint64 {
	var n uint64
	for _, v := range b {
		n = n<<8 | uint64(v)
	}
	return n
}
