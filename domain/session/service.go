package session

// Service is the session machine's public contract, per spec.md §4.4/§4.5.
// Implemented by internal/game/session.Machine.
type Service interface {
	// Start transitions a freshly constructed session from INIT to
	// AWAITING_BET.
	Start() error

	// SetClientSeed records the client seed a subsequent Spin will combine
	// with the next hash-chain link. Administrative; callable before the
	// session has consumed its first link.
	SetClientSeed(clientSeed string) error

	// Spin atomically validates the bet, consumes the next hash-chain
	// link, resolves the reel outcome, and credits any win. It traverses
	// AWAITING_BET -> ENTROPY_REQUESTED -> SPINNING -> RESULT_READY and
	// back to AWAITING_BET (or COMPLETE if the chain is now exhausted).
	Spin(betCents int64) (SpinRecord, error)

	// Reset returns a session from ERROR to INIT. It is the only
	// transition out of the terminal ERROR sink.
	Reset() error

	// Snapshot returns a copy of the session's current state.
	Snapshot() Session
}

// Observer receives session events as they are emitted (spec.md §9:
// "Reimplement as an explicit observer list with typed event variants").
type Observer func(Event)

// EventKind names the kind of session event observed.
type EventKind string

const (
	EventStateChange EventKind = "stateChange"
	EventSpin        EventKind = "spin"
	EventWin         EventKind = "win"
	EventError       EventKind = "error"
)

// Event is one observation a session machine emits.
type Event struct {
	Kind       EventKind
	SessionID  string
	From       State
	To         State
	SpinRecord *SpinRecord
	Err        error
}
