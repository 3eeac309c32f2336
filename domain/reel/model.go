// Package reel defines the reel mapper's data model: the configuration a
// spin is resolved against, and the symbols/paylines it is built from.
// Adapted from the donor's domain/reelstrip package, stripped of its
// GORM-backed persisted strip rows: this core's reel configuration is a
// plain value resolved against entropy, not a database-versioned asset.
package reel

// Symbol is one entry of a reel's symbol set. PayoutMultiplier is
// fixed-point, scaled by 100 (so 250 means a 2.50x multiplier), matching
// spec.md §4.3's "exact integer... stored as fixed-point (cents)"
// requirement for every quantity that feeds the win calculation.
type Symbol struct {
	ID               string
	PayoutMultiplier int64
}

// Payline is an ordered sequence of row indices, one per reel, describing
// which cell on each reel counts toward that payline's win. RowCount > 1
// configurations use Rows to pick a cell per reel; RowCount == 1
// configurations (the default, and the only variant internal/game/reel.
// ResolveSpin consumes) ignore Rows entirely.
type Payline struct {
	Rows       []int
	Multiplier int64 // fixed-point, scaled by 100 (100 == 1.00x)
}

// ReelConfiguration is the pure data a spin is resolved against: how many
// reels, how many symbol positions per reel, which symbols occupy those
// positions, and which paylines pay out.
//
// (NEW) RowCount resolves spec.md §9's open question about payline row
// semantics. The single-row variant internal/game/reel.ResolveSpin does not
// read it; no default is applied, so a zero-value configuration carries 0.
// The grid-aware internal/game/reel.ResolveSpinGrid requires RowCount >= 1
// and is not wired into domain/session by default.
type ReelConfiguration struct {
	ReelCount      int
	SymbolsPerReel int
	RowCount       int
	Symbols        []Symbol // shared symbol set; position[i] mod len(Symbols) selects symbol[i]
	Paylines       []Payline
}
