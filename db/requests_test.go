package db

import (
	"errors"
	"testing"

	"github.com/fhemaze/fhemaze-node/types"
	qt "github.com/frankban/quicktest"
)

func TestPendingRequests(t *testing.T) {
	c := qt.New(t)
	sqlite := newTestSQLite(c)
	solutionID := storeTestSolution(c, sqlite)

	err := sqlite.StorePendingRequest(42, solutionID)
	c.Assert(err, qt.IsNil)

	gotSolutionID, err := sqlite.ReadPendingRequest(42)
	c.Assert(err, qt.IsNil)
	c.Assert(gotSolutionID, qt.Equals, solutionID)

	pending, err := sqlite.HasPendingRequestForSolution(solutionID)
	c.Assert(err, qt.IsNil)
	c.Assert(pending, qt.IsTrue)

	err = sqlite.ConsumePendingRequest(42)
	c.Assert(err, qt.IsNil)

	// a consumed entry stays readable (to classify replays) but is no
	// longer outstanding
	gotSolutionID, err = sqlite.ReadPendingRequest(42)
	c.Assert(err, qt.IsNil)
	c.Assert(gotSolutionID, qt.Equals, solutionID)

	pending, err = sqlite.HasPendingRequestForSolution(solutionID)
	c.Assert(err, qt.IsNil)
	c.Assert(pending, qt.IsFalse)
}

func TestReadPendingRequestUnknown(t *testing.T) {
	c := qt.New(t)
	sqlite := newTestSQLite(c)

	_, err := sqlite.ReadPendingRequest(7)
	c.Assert(errors.Is(err, types.ErrUnknownRequest), qt.IsTrue)
}
