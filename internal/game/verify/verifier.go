// Package verify implements the provably-fair verifier (component F):
// given a stored spin record (or a whole session's worth of them) and the
// serverSecret, it independently recomputes every value the session
// machine derived and reports the first bytewise mismatch. Grounded on the
// donor's provablyfair service's own recompute-and-compare verification
// path, generalized to spec.md §4.6's five checks.
package verify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/provablyfair/slotcore/domain/reel"
	"github.com/provablyfair/slotcore/domain/verify"
	gamereel "github.com/provablyfair/slotcore/internal/game/reel"
)

// Verifier implements domain/verify.Verifier.
type Verifier struct{}

// New constructs a stateless Verifier.
func New() *Verifier {
	return &Verifier{}
}

// VerifySpin recomputes spec.md §4.6's five checks, in order, returning on
// the first mismatch.
func (v *Verifier) VerifySpin(record verify.SpinRecordView, reelConfig reel.ReelConfiguration, serverSecret []byte) verify.SpinResult {
	houseSeed, err := hex.DecodeString(record.HouseSeed)
	if err != nil {
		return verify.SpinResult{FailingCheck: verify.CheckCommitment}
	}

	expectedCommitment := sha256Hex(houseSeed)
	if expectedCommitment != record.Commitment {
		return verify.SpinResult{FailingCheck: verify.CheckCommitment}
	}

	expectedEntropy := computeSessionEntropy(serverSecret, record.HouseSeed, record.ClientSeed, record.Nonce)
	if expectedEntropy != record.EntropyHex {
		return verify.SpinResult{FailingCheck: verify.CheckEntropy}
	}

	expectedSignature := signSpin(serverSecret, record.SpinID, record.Commitment, record.ClientSeed, record.Nonce)
	if !hmac.Equal([]byte(expectedSignature), []byte(record.Signature)) {
		return verify.SpinResult{FailingCheck: verify.CheckSignature}
	}

	outcome, err := gamereel.ResolveSpin(record.EntropyHex, reelConfig, record.BetCents)
	if err != nil {
		return verify.SpinResult{FailingCheck: verify.CheckPositions}
	}
	if !intSliceEqual(outcome.Positions, record.ReelPositions) {
		return verify.SpinResult{FailingCheck: verify.CheckPositions}
	}
	if !stringSliceEqual(outcome.Symbols, record.Symbols) {
		return verify.SpinResult{FailingCheck: verify.CheckSymbols}
	}

	return verify.SpinResult{Valid: true}
}

// VerifySession runs VerifySpin over every record plus a structural check
// on the hash chain: every stored digest is 64 lowercase hex chars, and
// currentIndex <= chainLength (spec.md §4.6).
func (v *Verifier) VerifySession(records []verify.SpinRecordView, reelConfig reel.ReelConfiguration, currentIndex, chainLength int, serverSecret []byte) verify.SessionResult {
	chainValid := currentIndex <= chainLength
	for _, r := range records {
		if len(r.HouseSeed) != 64 || !isLowerHex(r.HouseSeed) {
			chainValid = false
			break
		}
	}

	for i, r := range records {
		result := v.VerifySpin(r, reelConfig, serverSecret)
		if !result.Valid {
			return verify.SessionResult{
				Valid:          false,
				FirstFailure:   &result,
				FailingSpinIdx: i,
				ChainValid:     chainValid,
			}
		}
	}

	return verify.SessionResult{Valid: chainValid, FailingSpinIdx: -1, ChainValid: chainValid}
}

func computeSessionEntropy(serverSecret []byte, houseSeedHex, clientSeed string, nonce uint32) string {
	mac := hmac.New(sha256.New, serverSecret)
	fmt.Fprintf(mac, "%s:%s:%d", houseSeedHex, clientSeed, nonce)
	return hex.EncodeToString(mac.Sum(nil))
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

func isLowerHex(s string) bool {
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')) {
			return false
		}
	}
	return true
}

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
