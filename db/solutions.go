package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fhemaze/fhemaze-node/types"
)

// StoreSolution stores a new solution path for the given mazeID and returns
// the assigned solutionID. The path ciphertexts are stored opaquely in the
// claimed walk order.
func (r *SQLite) StoreSolution(mazeID uint64,
	path []types.EncryptedPoint) (uint64, error) {
	pathBlob, err := json.Marshal(path)
	if err != nil {
		return 0, err
	}

	sqlQuery := `
	INSERT INTO solutions(
		mazeID,
		path,
		insertedDatetime
	) values(?, ?, CURRENT_TIMESTAMP)
	`

	stmt, err := r.db.Prepare(sqlQuery)
	if err != nil {
		return 0, err
	}
	defer stmt.Close() //nolint:errcheck

	res, err := stmt.Exec(mazeID, pathBlob)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ReadSolutionByID reads the types.EncryptedSolution by the given id
func (r *SQLite) ReadSolutionByID(id uint64) (*types.EncryptedSolution, error) {
	row := r.db.QueryRow("SELECT id, mazeID, path, insertedDatetime"+
		" FROM solutions WHERE id = ?", id)

	var solution types.EncryptedSolution
	var pathBlob []byte
	err := row.Scan(&solution.ID, &solution.MazeID, &pathBlob,
		&solution.InsertedDatetime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("solutionID: %d, %w", id,
				types.ErrUnknownSolution)
		}
		return nil, err
	}
	if err = json.Unmarshal(pathBlob, &solution.Path); err != nil {
		return nil, err
	}
	return &solution, nil
}

// ReadSolutionsByMazeID reads all the stored types.EncryptedSolution for
// the given mazeID
func (r *SQLite) ReadSolutionsByMazeID(mazeID uint64) ([]types.EncryptedSolution, error) {
	sqlQuery := `
	SELECT id, mazeID, path, insertedDatetime FROM solutions
	WHERE mazeID = ?
	ORDER BY datetime(insertedDatetime) DESC
	`

	rows, err := r.db.Query(sqlQuery, mazeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var solutions []types.EncryptedSolution
	for rows.Next() {
		var solution types.EncryptedSolution
		var pathBlob []byte
		err = rows.Scan(&solution.ID, &solution.MazeID, &pathBlob,
			&solution.InsertedDatetime)
		if err != nil {
			return nil, err
		}
		if err = json.Unmarshal(pathBlob, &solution.Path); err != nil {
			return nil, err
		}
		solutions = append(solutions, solution)
	}
	return solutions, nil
}
