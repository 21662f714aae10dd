package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fhemaze/fhemaze-node/fhe"
	"github.com/fhemaze/fhemaze-node/types"
)

// StoreMaze stores a new maze with the given encrypted grid and start/end
// coordinates, and returns the assigned mazeID. The ciphertexts are stored
// opaquely; no cell content is ever inspected.
func (r *SQLite) StoreMaze(grid [][]fhe.Ciphertext, start,
	end types.EncryptedPoint) (uint64, error) {
	gridBlob, err := json.Marshal(grid)
	if err != nil {
		return 0, err
	}
	startBlob, err := json.Marshal(start)
	if err != nil {
		return 0, err
	}
	endBlob, err := json.Marshal(end)
	if err != nil {
		return 0, err
	}

	sqlQuery := `
	INSERT INTO mazes(
		rows,
		cols,
		grid,
		startPoint,
		endPoint,
		insertedDatetime
	) values(?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`

	stmt, err := r.db.Prepare(sqlQuery)
	if err != nil {
		return 0, err
	}
	defer stmt.Close() //nolint:errcheck

	res, err := stmt.Exec(len(grid), len(grid[0]), gridBlob, startBlob, endBlob)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ReadMazeByID reads the types.EncryptedMaze by the given id
func (r *SQLite) ReadMazeByID(id uint64) (*types.EncryptedMaze, error) {
	row := r.db.QueryRow("SELECT id, grid, startPoint, endPoint,"+
		" insertedDatetime FROM mazes WHERE id = ?", id)

	var maze types.EncryptedMaze
	var gridBlob, startBlob, endBlob []byte
	err := row.Scan(&maze.ID, &gridBlob, &startBlob, &endBlob,
		&maze.InsertedDatetime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("mazeID: %d, %w", id, types.ErrUnknownMaze)
		}
		return nil, err
	}
	if err = json.Unmarshal(gridBlob, &maze.Grid); err != nil {
		return nil, err
	}
	if err = json.Unmarshal(startBlob, &maze.Start); err != nil {
		return nil, err
	}
	if err = json.Unmarshal(endBlob, &maze.End); err != nil {
		return nil, err
	}
	return &maze, nil
}

// MazeInfo contains the plaintext-visible metadata of a stored maze
type MazeInfo struct {
	ID               uint64    `json:"id"`
	Rows             int       `json:"rows"`
	Cols             int       `json:"cols"`
	InsertedDatetime time.Time `json:"createdAt"`
}

// ReadMazeInfo reads the plaintext-visible metadata of the maze with the
// given id, without loading the ciphertexts
func (r *SQLite) ReadMazeInfo(id uint64) (*MazeInfo, error) {
	row := r.db.QueryRow("SELECT id, rows, cols, insertedDatetime"+
		" FROM mazes WHERE id = ?", id)

	var info MazeInfo
	err := row.Scan(&info.ID, &info.Rows, &info.Cols, &info.InsertedDatetime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("mazeID: %d, %w", id, types.ErrUnknownMaze)
		}
		return nil, err
	}
	return &info, nil
}

// MazeExists returns true if a maze with the given id is stored
func (r *SQLite) MazeExists(id uint64) (bool, error) {
	row := r.db.QueryRow("SELECT COUNT(*) FROM mazes WHERE id = ?", id)
	var count int
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
