package types

import "errors"

var (
	// ErrInvalidDimensions is used when the given maze grid is empty or
	// not rectangular
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	// ErrUnknownMaze is used when the given mazeID does not exist
	ErrUnknownMaze = errors.New("unknown maze")
	// ErrEmptyPath is used when the given solution path has zero length
	ErrEmptyPath = errors.New("empty path")
	// ErrUnknownSolution is used when the given solutionID does not exist
	ErrUnknownSolution = errors.New("unknown solution")
	// ErrAlreadyVerified is used when the VerificationResult of the given
	// solution is already revealed
	ErrAlreadyVerified = errors.New("solution already verified")
	// ErrAlreadyPending is used when a decryption request is already
	// outstanding for the given solution
	ErrAlreadyPending = errors.New("verification request already pending")
	// ErrUnknownRequest is used when the given requestID is not in the
	// pending requests set
	ErrUnknownRequest = errors.New("unknown verification request")
	// ErrInvalidProof is used when the oracle callback proof does not
	// verify against (requestID, cleartexts)
	ErrInvalidProof = errors.New("invalid decryption proof")
)
