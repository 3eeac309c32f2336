package oracle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provablyfair/slotcore/domain/entropy"
	"github.com/provablyfair/slotcore/domain/simulation"
	"github.com/provablyfair/slotcore/internal/pkg/logger"
)

func testOracle() *Oracle {
	params := simulation.Params{Duration: 1.0, TimeStep: 0.01, G: 1.0, Eps: 0.01}
	return New([]byte("test-server-secret"), params, time.Minute, logger.New("error", "json"))
}

func TestOracle_PreCommitThenReveal(t *testing.T) {
	o := testOracle()
	defer o.Close()
	ctx := context.Background()

	commitment, err := o.PreCommit(ctx, "session-1")
	require.NoError(t, err)
	assert.Len(t, commitment.Hex, 64)

	revealed, err := o.Reveal(ctx, "session-1", "client-seed-0123456789", 0)
	require.NoError(t, err)
	assert.Len(t, revealed.Hex, 64)

	outcome := o.Verify(revealed.Hex, revealed.Proof, commitment.Hex)
	assert.True(t, outcome.Valid)
	assert.Empty(t, outcome.FailingCheck)
}

func TestOracle_RevealWithoutCommitmentFails(t *testing.T) {
	o := testOracle()
	defer o.Close()

	_, err := o.Reveal(context.Background(), "never-committed", "client-seed-0123456789", 0)
	assert.ErrorIs(t, err, entropy.ErrNoCommitment)
}

func TestOracle_RevealIsSingleUse(t *testing.T) {
	o := testOracle()
	defer o.Close()
	ctx := context.Background()

	_, err := o.PreCommit(ctx, "session-2")
	require.NoError(t, err)

	_, err = o.Reveal(ctx, "session-2", "client-seed-0123456789", 0)
	require.NoError(t, err)

	_, err = o.Reveal(ctx, "session-2", "client-seed-0123456789", 0)
	assert.ErrorIs(t, err, entropy.ErrNoCommitment)
}

func TestOracle_RejectsShortClientSeed(t *testing.T) {
	o := testOracle()
	defer o.Close()
	ctx := context.Background()

	_, err := o.PreCommit(ctx, "session-3")
	require.NoError(t, err)

	_, err = o.Reveal(ctx, "session-3", "short", 0)
	assert.ErrorIs(t, err, entropy.ErrInvalidClientSeed)
}

func TestOracle_RequestEntropyQuickFlow(t *testing.T) {
	o := testOracle()
	defer o.Close()

	result, err := o.RequestEntropy(context.Background(), "session-4", "client-seed-0123456789", 7)
	require.NoError(t, err)
	assert.Len(t, result.Commitment.Hex, 64)
	assert.Len(t, result.Revealed.Hex, 64)

	outcome := o.Verify(result.Revealed.Hex, result.Revealed.Proof, result.Commitment.Hex)
	assert.True(t, outcome.Valid)
}

func TestOracle_VerifyFlipsOnTamperedEntropy(t *testing.T) {
	o := testOracle()
	defer o.Close()
	ctx := context.Background()

	commitment, err := o.PreCommit(ctx, "session-5")
	require.NoError(t, err)
	revealed, err := o.Reveal(ctx, "session-5", "client-seed-0123456789", 0)
	require.NoError(t, err)

	tampered := "0" + revealed.Hex[1:]
	if revealed.Hex[0] == '0' {
		tampered = "1" + revealed.Hex[1:]
	}
	outcome := o.Verify(tampered, revealed.Proof, commitment.Hex)
	assert.False(t, outcome.Valid)
	assert.Equal(t, "entropy", outcome.FailingCheck)
}

func TestOracle_VerifyFlipsOnTamperedSignature(t *testing.T) {
	o := testOracle()
	defer o.Close()
	ctx := context.Background()

	commitment, err := o.PreCommit(ctx, "session-6")
	require.NoError(t, err)
	revealed, err := o.Reveal(ctx, "session-6", "client-seed-0123456789", 0)
	require.NoError(t, err)

	proof := revealed.Proof
	if proof.Signature[0] == '0' {
		proof.Signature = "1" + proof.Signature[1:]
	} else {
		proof.Signature = "0" + proof.Signature[1:]
	}
	outcome := o.Verify(revealed.Hex, proof, commitment.Hex)
	assert.False(t, outcome.Valid)
	assert.Equal(t, "signature", outcome.FailingCheck)
}

func TestOracle_StatsTrackCommitsAndReveals(t *testing.T) {
	o := testOracle()
	defer o.Close()
	ctx := context.Background()

	_, err := o.PreCommit(ctx, "session-7")
	require.NoError(t, err)
	_, err = o.Reveal(ctx, "session-7", "client-seed-0123456789", 0)
	require.NoError(t, err)
	_, err = o.Reveal(ctx, "session-7", "client-seed-0123456789", 0)
	assert.Error(t, err)

	stats := o.Stats()
	assert.Equal(t, int64(1), stats.CommitsIssued)
	assert.Equal(t, int64(1), stats.RevealsServed)
	assert.Equal(t, int64(1), stats.RevealsRejected)
}
