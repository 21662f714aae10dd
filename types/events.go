package types

import "time"

// EventKind identifies the type of an Event
type EventKind string

const (
	// EventMazeCreated is emitted when a new maze is stored
	EventMazeCreated EventKind = "maze-created"
	// EventSolutionSubmitted is emitted when a new solution is stored
	EventSolutionSubmitted EventKind = "solution-submitted"
	// EventVerificationRequested is emitted when a decryption request is
	// sent to the oracle
	EventVerificationRequested EventKind = "verification-requested"
	// EventVerificationComplete is emitted when a VerificationResult is
	// revealed
	EventVerificationComplete EventKind = "verification-complete"
)

// Event carries the identifiers relevant to a registry or verifier state
// change. It is delivered to subscribers through an event.Feed; fields not
// relevant to the Kind are zero.
type Event struct {
	Kind       EventKind
	MazeID     uint64
	SolutionID uint64
	RequestID  uint64
	Timestamp  time.Time
}
