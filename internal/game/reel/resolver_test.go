package reel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provablyfair/slotcore/domain/reel"
)

func threeSymbolConfig() reel.ReelConfiguration {
	return reel.ReelConfiguration{
		ReelCount:      3,
		SymbolsPerReel: 20,
		RowCount:       1,
		Symbols: []reel.Symbol{
			{ID: "cherry", PayoutMultiplier: 100},
			{ID: "bar", PayoutMultiplier: 200},
			{ID: "seven", PayoutMultiplier: 500},
		},
		Paylines: []reel.Payline{
			{Rows: []int{0, 0, 0}, Multiplier: 100},
		},
	}
}

// entropyForPositions builds a 64-hex-char digest whose first 8*len(positions)
// hex chars decode to exactly the given positions under modulo
// symbolsPerReel, by encoding each position directly as a big-endian uint32.
func entropyForPositions(positions []int) string {
	var sb strings.Builder
	for _, p := range positions {
		sb.WriteString(hexUint32(uint32(p)))
	}
	for sb.Len() < 64 {
		sb.WriteString("00")
	}
	return sb.String()[:64]
}

func hexUint32(v uint32) string {
	const hexDigits = "0123456789abcdef"
	b := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		b[i] = hexDigits[v&0xF]
		v >>= 4
	}
	return string(b)
}

func TestResolveSpin_ExtractsExpectedPositions(t *testing.T) {
	cfg := threeSymbolConfig()
	entropyHex := entropyForPositions([]int{1, 2, 0})

	outcome, err := ResolveSpin(entropyHex, cfg, 100)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 0}, outcome.Positions)
	assert.Equal(t, []string{"bar", "seven", "cherry"}, outcome.Symbols)
}

func TestResolveSpin_ThreeOfAKindPays(t *testing.T) {
	cfg := threeSymbolConfig()
	entropyHex := entropyForPositions([]int{0, 0, 0})

	outcome, err := ResolveSpin(entropyHex, cfg, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"cherry", "cherry", "cherry"}, outcome.Symbols)
	// bet(100) * payout(100) * (k-2=1) * paylineMult(100) / 10000 = 100
	assert.Equal(t, int64(100), outcome.WinCents)
}

func TestResolveSpin_TwoOfAKindDoesNotPay(t *testing.T) {
	cfg := threeSymbolConfig()
	entropyHex := entropyForPositions([]int{0, 0, 1})

	outcome, err := ResolveSpin(entropyHex, cfg, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), outcome.WinCents)
}

func TestResolveSpin_RejectsShortEntropy(t *testing.T) {
	cfg := threeSymbolConfig()
	_, err := ResolveSpin("deadbeef", cfg, 100)
	assert.ErrorIs(t, err, reel.ErrEntropyTooShort)
}

func TestResolveSpin_RejectsInvalidReelCount(t *testing.T) {
	cfg := threeSymbolConfig()
	cfg.ReelCount = 2
	_, err := ResolveSpin(entropyForPositions([]int{0, 0}), cfg, 100)
	assert.ErrorIs(t, err, reel.ErrInvalidReelCount)
}

func TestResolveSpin_RejectsNonPositiveBet(t *testing.T) {
	cfg := threeSymbolConfig()
	_, err := ResolveSpin(entropyForPositions([]int{0, 0, 0}), cfg, 0)
	assert.Error(t, err)
}

func TestResolveSpin_IsDeterministic(t *testing.T) {
	cfg := threeSymbolConfig()
	entropyHex := entropyForPositions([]int{5, 5, 5})

	a, err := ResolveSpin(entropyHex, cfg, 250)
	require.NoError(t, err)
	b, err := ResolveSpin(entropyHex, cfg, 250)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
