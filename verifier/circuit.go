package verifier

import (
	"github.com/fhemaze/fhemaze-node/fhe"
	"github.com/fhemaze/fhemaze-node/types"
)

// evalValidity builds the single encrypted boolean stating that the
// solution path is a valid walk through the maze: it starts at the maze
// start, ends at the maze end, every step is exactly one axis-aligned unit
// move, and every visited cell is open. All four checks are combined with
// encrypted AND into one ciphertext; nothing is decrypted here.
func (v *Verifier) evalValidity(maze *types.EncryptedMaze,
	solution *types.EncryptedSolution) (fhe.Ciphertext, error) {
	path := solution.Path

	one, err := v.alg.EncryptConst(1)
	if err != nil {
		return nil, err
	}

	startOK, err := v.pointEq(path[0], maze.Start)
	if err != nil {
		return nil, err
	}
	endOK, err := v.pointEq(path[len(path)-1], maze.End)
	if err != nil {
		return nil, err
	}
	valid, err := v.alg.And(startOK, endOK)
	if err != nil {
		return nil, err
	}

	for i := 1; i < len(path); i++ {
		stepOK, err := v.stepValid(one, path[i-1], path[i])
		if err != nil {
			return nil, err
		}
		if valid, err = v.alg.And(valid, stepOK); err != nil {
			return nil, err
		}
	}

	for i := 0; i < len(path); i++ {
		openOK, err := v.cellOpen(maze, path[i])
		if err != nil {
			return nil, err
		}
		if valid, err = v.alg.And(valid, openOK); err != nil {
			return nil, err
		}
	}

	return valid, nil
}

// pointEq returns an encrypted boolean of both coordinates of a and b
// being equal
func (v *Verifier) pointEq(a, b types.EncryptedPoint) (fhe.Ciphertext, error) {
	rowEq, err := v.alg.Eq(a.Row, b.Row)
	if err != nil {
		return nil, err
	}
	colEq, err := v.alg.Eq(a.Col, b.Col)
	if err != nil {
		return nil, err
	}
	return v.alg.And(rowEq, colEq)
}

// stepValid returns an encrypted boolean of the move from a to b being
// exactly one of the four axis-aligned unit moves: one axis changes by
// exactly 1 while the other stays fixed. The two axis cases are combined
// with XOR, so a diagonal step (both axes changing) never passes, even
// though each axis alone differs by exactly 1. |delta|==1 is evaluated as
// Eq(b-a, 1) OR Eq(a-b, 1), avoiding any signed encoding.
func (v *Verifier) stepValid(one fhe.Ciphertext, a,
	b types.EncryptedPoint) (fhe.Ciphertext, error) {
	rowStep, err := v.axisStep(one, a.Row, b.Row, a.Col, b.Col)
	if err != nil {
		return nil, err
	}
	colStep, err := v.axisStep(one, a.Col, b.Col, a.Row, b.Row)
	if err != nil {
		return nil, err
	}
	return v.alg.Xor(rowStep, colStep)
}

// axisStep returns an encrypted boolean of the moving axis changing by
// exactly 1 while the fixed axis does not change
func (v *Verifier) axisStep(one, movA, movB, fixA,
	fixB fhe.Ciphertext) (fhe.Ciphertext, error) {
	inc, err := v.alg.Sub(movB, movA)
	if err != nil {
		return nil, err
	}
	incOne, err := v.alg.Eq(inc, one)
	if err != nil {
		return nil, err
	}
	dec, err := v.alg.Sub(movA, movB)
	if err != nil {
		return nil, err
	}
	decOne, err := v.alg.Eq(dec, one)
	if err != nil {
		return nil, err
	}
	unitMove, err := v.alg.Or(incOne, decOne)
	if err != nil {
		return nil, err
	}
	fixedSame, err := v.alg.Eq(fixA, fixB)
	if err != nil {
		return nil, err
	}
	return v.alg.And(unitMove, fixedSame)
}

// cellOpen returns an encrypted boolean of the maze cell addressed by the
// encrypted coordinate p being open. The coordinate is encrypted, so the
// grid can not be indexed directly: the lookup is an oblivious gather over
// every cell, computing an encrypted indicator of the coordinate matching
// that cell and OR-reducing indicator AND cell. The cost is rows*cols
// algebra operations per visited point, which is the dominant cost driver
// for large mazes. A coordinate that matches no cell is out of bounds and
// must not pass as open, hence the conjunction with the indicator
// OR-reduction.
func (v *Verifier) cellOpen(maze *types.EncryptedMaze,
	p types.EncryptedPoint) (fhe.Ciphertext, error) {
	anyMatch, err := v.alg.EncryptConst(0)
	if err != nil {
		return nil, err
	}
	wallHit, err := v.alg.EncryptConst(0)
	if err != nil {
		return nil, err
	}

	for i := range maze.Grid {
		rowI, err := v.alg.EncryptConst(uint64(i))
		if err != nil {
			return nil, err
		}
		rowEq, err := v.alg.Eq(p.Row, rowI)
		if err != nil {
			return nil, err
		}
		for j := range maze.Grid[i] {
			colJ, err := v.alg.EncryptConst(uint64(j))
			if err != nil {
				return nil, err
			}
			colEq, err := v.alg.Eq(p.Col, colJ)
			if err != nil {
				return nil, err
			}
			indicator, err := v.alg.And(rowEq, colEq)
			if err != nil {
				return nil, err
			}
			if anyMatch, err = v.alg.Or(anyMatch, indicator); err != nil {
				return nil, err
			}
			hit, err := v.alg.And(indicator, maze.Grid[i][j])
			if err != nil {
				return nil, err
			}
			if wallHit, err = v.alg.Or(wallHit, hit); err != nil {
				return nil, err
			}
		}
	}

	openCell, err := v.alg.Not(wallHit)
	if err != nil {
		return nil, err
	}
	return v.alg.And(anyMatch, openCell)
}
