package session

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainreel "github.com/provablyfair/slotcore/domain/reel"
	domainsession "github.com/provablyfair/slotcore/domain/session"
)

func testReelConfig() domainreel.ReelConfiguration {
	return domainreel.ReelConfiguration{
		ReelCount:      3,
		SymbolsPerReel: 20,
		RowCount:       1,
		Symbols: []domainreel.Symbol{
			{ID: "cherry", PayoutMultiplier: 100},
			{ID: "bar", PayoutMultiplier: 200},
			{ID: "seven", PayoutMultiplier: 500},
		},
		Paylines: []domainreel.Payline{
			{Rows: []int{0, 0, 0}, Multiplier: 100},
		},
	}
}

func newTestMachine(t *testing.T, chainLength int, balanceCents int64) *Machine {
	t.Helper()
	m, err := New("user-1", "game-1", testReelConfig(), balanceCents, []byte("server-secret"), chainLength)
	require.NoError(t, err)
	require.NoError(t, m.Start())
	require.NoError(t, m.SetClientSeed("test-client-seed-0123456789"))
	return m
}

func TestMachine_SingleSpinConservesBalance(t *testing.T) {
	m := newTestMachine(t, 1000, 1000)

	record, err := m.Spin(10)
	require.NoError(t, err)

	snap := m.Snapshot()
	assert.Equal(t, int64(1000)-10+record.WinCents, snap.BalanceCents)
	assert.GreaterOrEqual(t, snap.BalanceCents, int64(0))
	assert.Equal(t, domainsession.StateAwaitingBet, snap.State)
}

func TestMachine_BetRejection(t *testing.T) {
	m := newTestMachine(t, 1000, 1000)

	_, err := m.Spin(0)
	assert.Error(t, err)

	snap := m.Snapshot()
	assert.Equal(t, int64(1000), snap.BalanceCents)
	assert.Equal(t, domainsession.StateAwaitingBet, snap.State)
}

func TestMachine_BetExceedingBalanceRejected(t *testing.T) {
	m := newTestMachine(t, 1000, 100)

	_, err := m.Spin(101)
	assert.Error(t, err)
}

func TestMachine_ChainExhaustion(t *testing.T) {
	m := newTestMachine(t, 3, 1000)

	for i := 0; i < 3; i++ {
		record, err := m.Spin(1)
		require.NoError(t, err)
		assert.Equal(t, uint32(i), record.Nonce)
	}

	assert.Equal(t, domainsession.StateComplete, m.Snapshot().State)

	_, err := m.Spin(1)
	assert.Error(t, err)
}

func TestMachine_NoncesAreSequential(t *testing.T) {
	m := newTestMachine(t, 10, 1000)

	for i := 0; i < 5; i++ {
		record, err := m.Spin(1)
		require.NoError(t, err)
		assert.Equal(t, uint32(i), record.Nonce)
	}
}

func TestMachine_SpinEmitsEvents(t *testing.T) {
	m := newTestMachine(t, 10, 1000)

	var kinds []domainsession.EventKind
	m.Observe(func(ev domainsession.Event) { kinds = append(kinds, ev.Kind) })

	_, err := m.Spin(1)
	require.NoError(t, err)

	assert.Contains(t, kinds, domainsession.EventSpin)
	assert.Contains(t, kinds, domainsession.EventStateChange)
}

func TestMachine_ProofCommitmentBindsToHouseSeed(t *testing.T) {
	m := newTestMachine(t, 10, 1000)

	record, err := m.Spin(1)
	require.NoError(t, err)
	assert.Len(t, record.Proof.HouseSeed, 64)
	assert.Len(t, record.Proof.Commitment, 64)
	assert.Len(t, record.Proof.ProofID, 32)

	houseSeed, err := hex.DecodeString(record.Proof.HouseSeed)
	require.NoError(t, err)
	sum := sha256.Sum256(houseSeed)
	assert.Equal(t, hex.EncodeToString(sum[:]), record.Proof.Commitment)
}
