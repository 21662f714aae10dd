package types

import (
	"time"

	"github.com/fhemaze/fhemaze-node/fhe"
)

// EncryptedPoint contains the encrypted row/column coordinates of a maze
// cell
type EncryptedPoint struct {
	Row fhe.Ciphertext `json:"row"`
	Col fhe.Ciphertext `json:"col"`
}

// EncryptedMaze represents a maze whose layout exists only as ciphertexts.
// Grid cells encrypt 0 (open) or 1 (wall). Start and End are encrypted
// coordinates; their validity is never checked in plaintext, only
// homomorphically when a solution references them. A maze is immutable
// once stored.
type EncryptedMaze struct {
	ID               uint64
	Grid             [][]fhe.Ciphertext
	Start            EncryptedPoint
	End              EncryptedPoint
	InsertedDatetime time.Time
}

// Rows returns the number of rows of the maze grid
func (m *EncryptedMaze) Rows() int {
	return len(m.Grid)
}

// Cols returns the number of columns of the maze grid
func (m *EncryptedMaze) Cols() int {
	if len(m.Grid) == 0 {
		return 0
	}
	return len(m.Grid[0])
}

// EncryptedSolution represents a path submission against a maze. The Path
// order is the claimed walk order. A solution is immutable once stored.
type EncryptedSolution struct {
	ID               uint64
	MazeID           uint64
	Path             []EncryptedPoint
	InsertedDatetime time.Time
}

// VerificationResult contains the verification outcome of a solution.
// Valid is meaningful only once Revealed is true. Revealed transitions
// false->true exactly once, and Valid is write-once.
type VerificationResult struct {
	SolutionID       uint64
	Valid            bool
	Revealed         bool
	InsertedDatetime time.Time
}

// PendingRequest maps an oracle-issued decryption request id to the
// solution awaiting resolution. It is marked consumed once the request
// resolves, preventing replay of the same request id.
type PendingRequest struct {
	RequestID        uint64
	SolutionID       uint64
	InsertedDatetime time.Time
}
