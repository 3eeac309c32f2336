package entropy

import (
	"context"
	"time"
)

// Service is the entropy oracle's public contract, per spec.md §4.2/§6.
type Service interface {
	// PreCommit generates a house seed, caches it under sessionID with a
	// TTL, and returns SHA-256(houseSeed) as the published commitment.
	PreCommit(ctx context.Context, sessionID string) (Commitment, error)

	// Reveal retrieves the cached house seed for sessionID, computes the
	// revealed entropy, marks the cache entry used, and returns the
	// entropy plus a signed proof. Fails with ErrNoCommitment if no live
	// cache entry exists.
	Reveal(ctx context.Context, sessionID, clientSeed string, nonce uint32) (Revealed, error)

	// Verify recomputes the commitment, entropy, and signature from proof
	// and reports whether all checks pass, naming the first failure.
	Verify(entropy string, proof Proof, commitment string) VerifyOutcome

	// RequestEntropy is the "quick" flow: it runs the simulator
	// immediately, skipping the time separation between commit and
	// reveal. Documented as less secure, since the house seed can then be
	// generated with knowledge of the client seed.
	RequestEntropy(ctx context.Context, sessionID, clientSeed string, nonce uint32) (RequestEntropyResult, error)
}

// CacheRepository is the pending-commitment store's contract, satisfied by
// internal/pkg/cache.TTLCache[[]byte]. internal/game/oracle.Oracle holds a
// concrete *TTLCache and does not accept a CacheRepository.
type CacheRepository interface {
	Put(sessionID string, houseSeed []byte, ttl time.Duration)
	Consume(sessionID string) ([]byte, bool)
}
