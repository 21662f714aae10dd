package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/ethereum/go-ethereum/event"
	"github.com/fhemaze/fhemaze-node/db"
	"github.com/fhemaze/fhemaze-node/fhe"
	"github.com/fhemaze/fhemaze-node/oracle"
	"github.com/fhemaze/fhemaze-node/registry"
	"github.com/fhemaze/fhemaze-node/test"
	"github.com/fhemaze/fhemaze-node/verifier"
	qt "github.com/frankban/quicktest"
	_ "github.com/mattn/go-sqlite3"
	kvdb "go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/pebbledb"
)

func newTestAPI(c *qt.C) (*API, *fhe.DevScheme, *oracle.Tester) {
	sqlDB, err := sql.Open("sqlite3", filepath.Join(c.TempDir(), "testdb.sqlite3"))
	c.Assert(err, qt.IsNil)

	sqlite := db.NewSQLite(sqlDB)
	err = sqlite.Migrate()
	c.Assert(err, qt.IsNil)

	treeDB, err := pebbledb.New(kvdb.Options{Path: c.TempDir()})
	c.Assert(err, qt.IsNil)

	scheme := test.NewScheme(c)
	testOracle, err := oracle.NewTester(scheme)
	c.Assert(err, qt.IsNil)

	feed := new(event.Feed)

	reg, err := registry.New(sqlite, feed)
	c.Assert(err, qt.IsNil)

	verif, err := verifier.New(verifier.Options{
		SQLite:     sqlite,
		Algebra:    scheme,
		Oracle:     testOracle,
		OraclePubK: testOracle.PublicKey(),
		Feed:       feed,
		TreeDB:     treeDB,
	})
	c.Assert(err, qt.IsNil)

	a, err := New(reg, verif)
	c.Assert(err, qt.IsNil)
	return a, scheme, testOracle
}

func doPost(c *qt.C, a *API, path string, reqData, respData interface{}) int {
	var body *bytes.Buffer
	if reqData != nil {
		jsonReqData, err := json.Marshal(reqData)
		c.Assert(err, qt.IsNil)
		body = bytes.NewBuffer(jsonReqData)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest("POST", path, body)
	c.Assert(err, qt.IsNil)
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)

	if respData != nil && w.Code == http.StatusOK {
		respBody, err := ioutil.ReadAll(w.Body)
		c.Assert(err, qt.IsNil)
		err = json.Unmarshal(respBody, respData)
		c.Assert(err, qt.IsNil)
	}
	return w.Code
}

func doGet(c *qt.C, a *API, path string, respData interface{}) int {
	req, err := http.NewRequest("GET", path, nil)
	c.Assert(err, qt.IsNil)
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)

	if respData != nil && w.Code == http.StatusOK {
		respBody, err := ioutil.ReadAll(w.Body)
		c.Assert(err, qt.IsNil)
		err = json.Unmarshal(respBody, respData)
		c.Assert(err, qt.IsNil)
	}
	return w.Code
}

func TestAPIEndToEnd(t *testing.T) {
	c := qt.New(t)
	a, scheme, testOracle := newTestAPI(c)

	// create the maze
	mazeReq := newMazeReq{
		Grid:  test.OpenGrid(c, scheme, 3, 3),
		Start: test.EncryptPoint(c, scheme, 0, 0),
		End:   test.EncryptPoint(c, scheme, 2, 2),
	}
	var mazeID uint64
	code := doPost(c, a, "/maze", mazeReq, &mazeID)
	c.Assert(code, qt.Equals, http.StatusOK)
	c.Assert(mazeID, qt.Equals, uint64(1))

	var info db.MazeInfo
	code = doGet(c, a, "/maze/"+strconv.Itoa(int(mazeID)), &info)
	c.Assert(code, qt.Equals, http.StatusOK)
	c.Assert(info.Rows, qt.Equals, 3)
	c.Assert(info.Cols, qt.Equals, 3)

	// submit the solution
	solutionReq := newSolutionReq{
		Path: test.EncryptPath(c, scheme,
			[][2]uint64{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}}),
	}
	var solutionID uint64
	code = doPost(c, a, "/maze/"+strconv.Itoa(int(mazeID))+"/solution",
		solutionReq, &solutionID)
	c.Assert(code, qt.Equals, http.StatusOK)

	// request the verification
	var requestID uint64
	code = doPost(c, a, "/solution/"+strconv.Itoa(int(solutionID))+"/verify",
		nil, &requestID)
	c.Assert(code, qt.Equals, http.StatusOK)

	// no premature reveal before the oracle callback
	var result resultResp
	code = doGet(c, a, "/solution/"+strconv.Itoa(int(solutionID))+"/result",
		&result)
	c.Assert(code, qt.Equals, http.StatusOK)
	c.Assert(result.Revealed, qt.IsFalse)

	// deliver the oracle callback through the HTTP entry point
	err := testOracle.Respond(requestID, func(reqID uint64,
		cleartexts []uint64, proof *oracle.Proof) error {
		code := doPost(c, a, "/verification/callback", oracle.Callback{
			RequestID:  reqID,
			Cleartexts: cleartexts,
			Proof:      *proof,
		}, nil)
		c.Assert(code, qt.Equals, http.StatusOK)
		return nil
	})
	c.Assert(err, qt.IsNil)

	code = doGet(c, a, "/solution/"+strconv.Itoa(int(solutionID))+"/result",
		&result)
	c.Assert(code, qt.Equals, http.StatusOK)
	c.Assert(result.Revealed, qt.IsTrue)
	c.Assert(result.Valid, qt.IsTrue)

	var root string
	code = doGet(c, a, "/results/root", &root)
	c.Assert(code, qt.Equals, http.StatusOK)
	c.Assert(root, qt.Not(qt.Equals), "")
}

func TestAPIErrors(t *testing.T) {
	c := qt.New(t)
	a, scheme, _ := newTestAPI(c)

	// solution for an unknown maze
	solutionReq := newSolutionReq{
		Path: test.EncryptPath(c, scheme, [][2]uint64{{0, 0}}),
	}
	var solutionID uint64
	code := doPost(c, a, "/maze/99/solution", solutionReq, &solutionID)
	c.Assert(code, qt.Equals, http.StatusBadRequest)

	// unknown maze info
	code = doGet(c, a, "/maze/99", nil)
	c.Assert(code, qt.Equals, http.StatusBadRequest)

	// verification of an unknown solution
	var requestID uint64
	code = doPost(c, a, "/solution/99/verify", nil, &requestID)
	c.Assert(code, qt.Equals, http.StatusBadRequest)

	// ragged grid
	grid := test.OpenGrid(c, scheme, 2, 2)
	grid[1] = grid[1][:1]
	mazeReq := newMazeReq{
		Grid:  grid,
		Start: test.EncryptPoint(c, scheme, 0, 0),
		End:   test.EncryptPoint(c, scheme, 1, 1),
	}
	var mazeID uint64
	code = doPost(c, a, "/maze", mazeReq, &mazeID)
	c.Assert(code, qt.Equals, http.StatusBadRequest)
}
