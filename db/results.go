package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/fhemaze/fhemaze-node/types"
)

// InitResult initializes the unrevealed VerificationResult for the given
// solutionID. It is called at solution-submission time.
func (r *SQLite) InitResult(solutionID uint64) error {
	sqlQuery := `
	INSERT INTO results(
		solutionID,
		isValid,
		revealed,
		insertedDatetime
	) values(?, 0, 0, CURRENT_TIMESTAMP)
	`

	stmt, err := r.db.Prepare(sqlQuery)
	if err != nil {
		return err
	}
	defer stmt.Close() //nolint:errcheck

	_, err = stmt.Exec(solutionID)
	if err != nil {
		return err
	}
	return nil
}

// ReadResultBySolutionID reads the types.VerificationResult for the given
// solutionID
func (r *SQLite) ReadResultBySolutionID(solutionID uint64) (*types.VerificationResult, error) {
	row := r.db.QueryRow("SELECT solutionID, isValid, revealed,"+
		" insertedDatetime FROM results WHERE solutionID = ?", solutionID)

	var result types.VerificationResult
	err := row.Scan(&result.SolutionID, &result.Valid, &result.Revealed,
		&result.InsertedDatetime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("solutionID: %d, %w", solutionID,
				types.ErrUnknownSolution)
		}
		return nil, err
	}
	return &result, nil
}

// RevealResult sets the revealed boolean for the given solutionID. The
// write only happens if the result is still unrevealed, so a finalized
// result can never be overwritten; types.ErrAlreadyVerified is returned
// otherwise.
func (r *SQLite) RevealResult(solutionID uint64, isValid bool) error {
	sqlQuery := `
	UPDATE results SET isValid=?, revealed=1
	WHERE solutionID=? AND revealed=0
	`

	stmt, err := r.db.Prepare(sqlQuery)
	if err != nil {
		return err
	}
	defer stmt.Close() //nolint:errcheck

	res, err := stmt.Exec(isValid, solutionID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("solutionID: %d, %w", solutionID,
			types.ErrAlreadyVerified)
	}
	return nil
}
