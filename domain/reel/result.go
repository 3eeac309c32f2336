package reel

// SpinOutcome is the pure result of resolving one entropy digest against a
// ReelConfiguration: the reel positions, the symbol at each reel, and the
// total win in fixed-point cents.
type SpinOutcome struct {
	Positions []int
	Symbols   []string
	WinCents  int64
}
