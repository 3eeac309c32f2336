// Package reel implements the reel mapper (component D): a pure function
// from an entropy digest and a reel configuration to positions, symbols,
// and a win amount. Adapted from the donor's internal/game/wins.
// CalculateCascadeWin, replacing its grid/ways/cascade-multiplier pipeline
// (built for the donor's own tumbling-reels game) with the prefix-match
// payline scoring spec.md §4.3 specifies, and its float64 win arithmetic
// with fixed-point integer cents throughout - the donor's own
// "win = payout * ways * cascadeMultiplier * betPerWay" is float64
// end-to-end; spec.md §4.3 calls this out as a requirement to fix, so this
// is a deliberate correction rather than a straight port.
package reel

import (
	"encoding/hex"
	"fmt"

	"github.com/provablyfair/slotcore/domain/reel"
)

const hexCharsPerReel = 8 // 8 hex chars = 32 bits = one big-endian uint32

// ResolveSpin implements spec.md §4.3 steps 1-3 for the single-row
// (RowCount == 1) interpretation: reel positions and symbols are extracted
// from entropyHex, and every payline's row component is ignored - only the
// symbol at each reel index is read.
func ResolveSpin(entropyHex string, cfg reel.ReelConfiguration, betCents int64) (reel.SpinOutcome, error) {
	if err := cfg.Validate(); err != nil {
		return reel.SpinOutcome{}, err
	}
	if betCents <= 0 {
		return reel.SpinOutcome{}, fmt.Errorf("reel: bet must be positive, got %d", betCents)
	}
	if len(entropyHex) < hexCharsPerReel*cfg.ReelCount {
		return reel.SpinOutcome{}, reel.ErrEntropyTooShort
	}

	positions, err := extractPositions(entropyHex, cfg.ReelCount, cfg.SymbolsPerReel)
	if err != nil {
		return reel.SpinOutcome{}, err
	}

	symbolIDs := make([]string, cfg.ReelCount)
	symbolValues := make([]int64, cfg.ReelCount)
	for i, pos := range positions {
		sym := cfg.Symbols[pos%len(cfg.Symbols)]
		symbolIDs[i] = sym.ID
		symbolValues[i] = sym.PayoutMultiplier
	}

	winCents := scorePaylines(cfg.Paylines, symbolIDs, symbolValues, betCents)

	return reel.SpinOutcome{Positions: positions, Symbols: symbolIDs, WinCents: winCents}, nil
}

// extractPositions implements spec.md §4.3 step 1: for each reel index i,
// take bytes e[8i:8i+8] of the hex digest, interpret as an unsigned
// big-endian 32-bit integer, reduce modulo symbolsPerReel.
func extractPositions(entropyHex string, reelCount, symbolsPerReel int) ([]int, error) {
	positions := make([]int, reelCount)
	for i := 0; i < reelCount; i++ {
		start := i * hexCharsPerReel
		chunk := entropyHex[start : start+hexCharsPerReel]
		raw, err := hex.DecodeString(chunk)
		if err != nil {
			return nil, fmt.Errorf("reel: malformed entropy chunk at reel %d: %w", i, err)
		}
		value := uint32(raw[0])<<24 | uint32(raw[1])<<16 | uint32(raw[2])<<8 | uint32(raw[3])
		positions[i] = int(value % uint32(symbolsPerReel))
	}
	return positions, nil
}

// scorePaylines implements spec.md §4.3 step 3: for each payline, find the
// maximal prefix of reels sharing the first reel's symbol; a prefix of
// length k >= 3 awards bet * symbolValue * (k-2) * paylineMultiplier, scaled
// down by the two fixed-point factors (symbol payout and payline
// multiplier, both scaled by 100).
func scorePaylines(paylines []reel.Payline, symbolIDs []string, symbolValues []int64, betCents int64) int64 {
	var total int64
	for _, pl := range paylines {
		if len(symbolIDs) == 0 {
			continue
		}
		first := symbolIDs[0]
		k := 1
		for k < len(symbolIDs) && symbolIDs[k] == first {
			k++
		}
		if k < 3 {
			continue
		}
		symbolValue := symbolValues[0]
		win := betCents * symbolValue * int64(k-2) * pl.Multiplier
		total += win / 10000 // undo the two 100x fixed-point scales
	}
	return total
}
