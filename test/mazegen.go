// Package test provides helpers to generate encrypted test mazes and
// paths, playing the role of the client-side encryption tooling.
package test

import (
	"github.com/fhemaze/fhemaze-node/fhe"
	"github.com/fhemaze/fhemaze-node/types"
	qt "github.com/frankban/quicktest"
)

// NewScheme returns a fhe.DevScheme with a fresh key
func NewScheme(c *qt.C) *fhe.DevScheme {
	key, err := fhe.NewDevKey()
	c.Assert(err, qt.IsNil)
	scheme, err := fhe.NewDevScheme(key)
	c.Assert(err, qt.IsNil)
	return scheme
}

// EncryptGrid encrypts the given plaintext maze layout, where each cell is
// 0 (open) or 1 (wall)
func EncryptGrid(c *qt.C, s *fhe.DevScheme, walls [][]uint64) [][]fhe.Ciphertext {
	grid := make([][]fhe.Ciphertext, len(walls))
	for i := range walls {
		grid[i] = make([]fhe.Ciphertext, len(walls[i]))
		for j := range walls[i] {
			ct, err := s.Encrypt(walls[i][j])
			c.Assert(err, qt.IsNil)
			grid[i][j] = ct
		}
	}
	return grid
}

// OpenGrid returns an encrypted rows x cols grid with every cell open
func OpenGrid(c *qt.C, s *fhe.DevScheme, rows, cols int) [][]fhe.Ciphertext {
	walls := make([][]uint64, rows)
	for i := range walls {
		walls[i] = make([]uint64, cols)
	}
	return EncryptGrid(c, s, walls)
}

// EncryptPoint encrypts the given row/column coordinate
func EncryptPoint(c *qt.C, s *fhe.DevScheme, row, col uint64) types.EncryptedPoint {
	rowCt, err := s.Encrypt(row)
	c.Assert(err, qt.IsNil)
	colCt, err := s.Encrypt(col)
	c.Assert(err, qt.IsNil)
	return types.EncryptedPoint{Row: rowCt, Col: colCt}
}

// EncryptPath encrypts the given sequence of [row, col] coordinates
func EncryptPath(c *qt.C, s *fhe.DevScheme, coords [][2]uint64) []types.EncryptedPoint {
	var path []types.EncryptedPoint
	for _, p := range coords {
		path = append(path, EncryptPoint(c, s, p[0], p[1]))
	}
	return path
}
