package db

import (
	"errors"
	"testing"

	"github.com/fhemaze/fhemaze-node/types"
	qt "github.com/frankban/quicktest"
)

func TestStoreMaze(t *testing.T) {
	c := qt.New(t)
	sqlite := newTestSQLite(c)
	s := testScheme(c)

	grid := testGrid(c, s, 3, 4)
	start := testPoint(c, s, 0, 0)
	end := testPoint(c, s, 2, 3)

	id, err := sqlite.StoreMaze(grid, start, end)
	c.Assert(err, qt.IsNil)
	// identifiers start at 1; 0 is the "not found" sentinel
	c.Assert(id, qt.Equals, uint64(1))

	id2, err := sqlite.StoreMaze(grid, start, end)
	c.Assert(err, qt.IsNil)
	c.Assert(id2, qt.Equals, uint64(2))

	maze, err := sqlite.ReadMazeByID(id)
	c.Assert(err, qt.IsNil)
	c.Assert(maze.ID, qt.Equals, id)
	c.Assert(maze.Rows(), qt.Equals, 3)
	c.Assert(maze.Cols(), qt.Equals, 4)

	// stored ciphertexts must roundtrip untouched
	v, err := s.Decrypt(maze.Start.Row)
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, uint64(0))
	v, err = s.Decrypt(maze.End.Col)
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, uint64(3))

	info, err := sqlite.ReadMazeInfo(id)
	c.Assert(err, qt.IsNil)
	c.Assert(info.Rows, qt.Equals, 3)
	c.Assert(info.Cols, qt.Equals, 4)

	exists, err := sqlite.MazeExists(id)
	c.Assert(err, qt.IsNil)
	c.Assert(exists, qt.IsTrue)
	exists, err = sqlite.MazeExists(999)
	c.Assert(err, qt.IsNil)
	c.Assert(exists, qt.IsFalse)
}

func TestReadMazeUnknown(t *testing.T) {
	c := qt.New(t)
	sqlite := newTestSQLite(c)

	_, err := sqlite.ReadMazeByID(1)
	c.Assert(errors.Is(err, types.ErrUnknownMaze), qt.IsTrue)

	_, err = sqlite.ReadMazeInfo(1)
	c.Assert(errors.Is(err, types.ErrUnknownMaze), qt.IsTrue)
}
