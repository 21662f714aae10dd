package db

import (
	"errors"
	"testing"

	"github.com/fhemaze/fhemaze-node/types"
	qt "github.com/frankban/quicktest"
)

func TestStoreSolution(t *testing.T) {
	c := qt.New(t)
	sqlite := newTestSQLite(c)
	s := testScheme(c)

	mazeID, err := sqlite.StoreMaze(testGrid(c, s, 2, 2),
		testPoint(c, s, 0, 0), testPoint(c, s, 1, 1))
	c.Assert(err, qt.IsNil)

	path := []types.EncryptedPoint{
		testPoint(c, s, 0, 0),
		testPoint(c, s, 1, 0),
		testPoint(c, s, 1, 1),
	}
	id, err := sqlite.StoreSolution(mazeID, path)
	c.Assert(err, qt.IsNil)
	c.Assert(id, qt.Equals, uint64(1))

	solution, err := sqlite.ReadSolutionByID(id)
	c.Assert(err, qt.IsNil)
	c.Assert(solution.MazeID, qt.Equals, mazeID)
	c.Assert(len(solution.Path), qt.Equals, 3)

	// path order is the claimed walk order
	v, err := s.Decrypt(solution.Path[1].Row)
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, uint64(1))
	v, err = s.Decrypt(solution.Path[1].Col)
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, uint64(0))

	solutions, err := sqlite.ReadSolutionsByMazeID(mazeID)
	c.Assert(err, qt.IsNil)
	c.Assert(len(solutions), qt.Equals, 1)
}

func TestReadSolutionUnknown(t *testing.T) {
	c := qt.New(t)
	sqlite := newTestSQLite(c)

	_, err := sqlite.ReadSolutionByID(1)
	c.Assert(errors.Is(err, types.ErrUnknownSolution), qt.IsTrue)
}
