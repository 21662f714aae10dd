// Package registry implements the maze and solution registries: it accepts
// already-encrypted mazes and path submissions, performs the plaintext
// structural checks, and assigns the sequential identifiers. Cell and
// coordinate contents stay encrypted and are never inspected here.
package registry

import (
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/fhemaze/fhemaze-node/db"
	"github.com/fhemaze/fhemaze-node/fhe"
	"github.com/fhemaze/fhemaze-node/types"
	"go.vocdoni.io/dvote/log"
)

// Registry stores the encrypted mazes and solutions
type Registry struct {
	mu   sync.Mutex
	db   *db.SQLite
	feed *event.Feed
}

// New returns a new Registry over the given db, emitting its events
// through the given feed
func New(sqlite *db.SQLite, feed *event.Feed) (*Registry, error) {
	if sqlite == nil || feed == nil {
		return nil, fmt.Errorf("registry needs a db and an event feed")
	}
	return &Registry{
		db:   sqlite,
		feed: feed,
	}, nil
}

// CreateMaze stores the given encrypted grid and start/end coordinates and
// returns the assigned mazeID. The only plaintext check is structural: the
// grid must be non-empty and rectangular, otherwise
// types.ErrInvalidDimensions is returned. Whether start/end are in-bounds
// or open cells is only ever determined homomorphically when a solution
// referencing the maze is verified.
func (r *Registry) CreateMaze(grid [][]fhe.Ciphertext, start,
	end types.EncryptedPoint) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(grid) == 0 || len(grid[0]) == 0 {
		return 0, fmt.Errorf("empty grid, %w", types.ErrInvalidDimensions)
	}
	cols := len(grid[0])
	for i := 1; i < len(grid); i++ {
		if len(grid[i]) != cols {
			return 0, fmt.Errorf("row %d has %d columns, expected %d, %w",
				i, len(grid[i]), cols, types.ErrInvalidDimensions)
		}
	}

	id, err := r.db.StoreMaze(grid, start, end)
	if err != nil {
		return 0, err
	}
	log.Debugf("[MazeID=%d] created (%dx%d)", id, len(grid), cols)

	r.feed.Send(types.Event{
		Kind:      types.EventMazeCreated,
		MazeID:    id,
		Timestamp: time.Now(),
	})
	return id, nil
}

// MazeInfo returns the plaintext-visible metadata of the maze with the
// given id
func (r *Registry) MazeInfo(mazeID uint64) (*db.MazeInfo, error) {
	return r.db.ReadMazeInfo(mazeID)
}

// SubmitSolution stores the given encrypted path against the given mazeID
// and returns the assigned solutionID. Fails with types.ErrUnknownMaze if
// the maze does not exist and with types.ErrEmptyPath if the path has zero
// length. The VerificationResult of the new solution is initialized as
// unrevealed.
func (r *Registry) SubmitSolution(mazeID uint64,
	path []types.EncryptedPoint) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(path) == 0 {
		return 0, fmt.Errorf("mazeID: %d, %w", mazeID, types.ErrEmptyPath)
	}
	exists, err := r.db.MazeExists(mazeID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("mazeID: %d, %w", mazeID, types.ErrUnknownMaze)
	}

	id, err := r.db.StoreSolution(mazeID, path)
	if err != nil {
		return 0, err
	}
	if err := r.db.InitResult(id); err != nil {
		return 0, err
	}
	log.Debugf("[SolutionID=%d] submitted for MazeID=%d, path length %d",
		id, mazeID, len(path))

	r.feed.Send(types.Event{
		Kind:       types.EventSolutionSubmitted,
		MazeID:     mazeID,
		SolutionID: id,
		Timestamp:  time.Now(),
	})
	return id, nil
}
