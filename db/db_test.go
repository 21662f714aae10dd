package db

import (
	"database/sql"
	"path/filepath"

	"github.com/fhemaze/fhemaze-node/fhe"
	"github.com/fhemaze/fhemaze-node/types"
	qt "github.com/frankban/quicktest"
	_ "github.com/mattn/go-sqlite3"
)

func newTestSQLite(c *qt.C) *SQLite {
	database, err := sql.Open("sqlite3", filepath.Join(c.TempDir(), "testdb.sqlite3"))
	c.Assert(err, qt.IsNil)

	sqlite := NewSQLite(database)
	err = sqlite.Migrate()
	c.Assert(err, qt.IsNil)
	return sqlite
}

func testScheme(c *qt.C) *fhe.DevScheme {
	key, err := fhe.NewDevKey()
	c.Assert(err, qt.IsNil)
	s, err := fhe.NewDevScheme(key)
	c.Assert(err, qt.IsNil)
	return s
}

func testGrid(c *qt.C, s *fhe.DevScheme, rows, cols int) [][]fhe.Ciphertext {
	grid := make([][]fhe.Ciphertext, rows)
	for i := range grid {
		grid[i] = make([]fhe.Ciphertext, cols)
		for j := range grid[i] {
			ct, err := s.Encrypt(0)
			c.Assert(err, qt.IsNil)
			grid[i][j] = ct
		}
	}
	return grid
}

func testPoint(c *qt.C, s *fhe.DevScheme, row, col uint64) types.EncryptedPoint {
	rowCt, err := s.Encrypt(row)
	c.Assert(err, qt.IsNil)
	colCt, err := s.Encrypt(col)
	c.Assert(err, qt.IsNil)
	return types.EncryptedPoint{Row: rowCt, Col: colCt}
}
