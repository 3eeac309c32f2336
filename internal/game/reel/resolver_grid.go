package reel

import (
	"fmt"

	"github.com/provablyfair/slotcore/domain/reel"
)

// ResolveSpinGrid is the row-aware variant of ResolveSpin, for
// configurations with RowCount > 1. It extracts one position per reel
// exactly as ResolveSpin does, then expands each reel's visible window into
// RowCount consecutive symbol rows (position, position+1, ..., wrapping
// modulo SymbolsPerReel), and scores each payline against the symbol its
// Rows entry selects on each reel rather than always reading row zero.
//
// Not wired into domain/session by default - spec.md §4.3 only specifies
// arithmetic for the single-row interpretation ResolveSpin implements; see
// DESIGN.md's Open Question entry for why this variant exists without a
// caller.
func ResolveSpinGrid(entropyHex string, cfg reel.ReelConfiguration, betCents int64) (reel.SpinOutcome, error) {
	if cfg.RowCount < 1 {
		return reel.SpinOutcome{}, fmt.Errorf("reel: row count must be >= 1, got %d", cfg.RowCount)
	}
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

	grid := make([][]reel.Symbol, cfg.ReelCount)
	for i, pos := range positions {
		grid[i] = make([]reel.Symbol, cfg.RowCount)
		for row := 0; row < cfg.RowCount; row++ {
			window := (pos + row) % cfg.SymbolsPerReel
			grid[i][row] = cfg.Symbols[window%len(cfg.Symbols)]
		}
	}

	topSymbolIDs := make([]string, cfg.ReelCount)
	for i := range grid {
		topSymbolIDs[i] = grid[i][0].ID
	}

	var winCents int64
	for _, pl := range cfg.Paylines {
		winCents += scoreGridPayline(pl, grid, betCents)
	}

	return reel.SpinOutcome{Positions: positions, Symbols: topSymbolIDs, WinCents: winCents}, nil
}

func scoreGridPayline(pl reel.Payline, grid [][]reel.Symbol, betCents int64) int64 {
	if len(pl.Rows) == 0 || len(pl.Rows) > len(grid) {
		return 0
	}

	firstRow := pl.Rows[0]
	if firstRow >= len(grid[0]) {
		return 0
	}
	first := grid[0][firstRow].ID

	k := 1
	for k < len(pl.Rows) {
		row := pl.Rows[k]
		if row >= len(grid[k]) || grid[k][row].ID != first {
			break
		}
		k++
	}
	if k < 3 {
		return 0
	}

	symbolValue := grid[0][firstRow].PayoutMultiplier
	win := betCents * symbolValue * int64(k-2) * pl.Multiplier
	return win / 10000
}
