package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/fhemaze/fhemaze-node/types"
)

// StorePendingRequest stores the mapping between the oracle-issued
// requestID and the solutionID awaiting resolution
func (r *SQLite) StorePendingRequest(requestID, solutionID uint64) error {
	sqlQuery := `
	INSERT INTO pendingrequests(
		requestID,
		solutionID,
		insertedDatetime
	) values(?, ?, CURRENT_TIMESTAMP)
	`

	stmt, err := r.db.Prepare(sqlQuery)
	if err != nil {
		return err
	}
	defer stmt.Close() //nolint:errcheck

	_, err = stmt.Exec(requestID, solutionID)
	if err != nil {
		return err
	}
	return nil
}

// ReadPendingRequest returns the solutionID stored for the given
// requestID. It also returns consumed entries: a replayed callback for an
// already-resolved request must be distinguishable (AlreadyVerified) from
// a forged request id (UnknownRequest).
func (r *SQLite) ReadPendingRequest(requestID uint64) (uint64, error) {
	row := r.db.QueryRow("SELECT solutionID FROM pendingrequests"+
		" WHERE requestID = ?", requestID)

	var solutionID uint64
	err := row.Scan(&solutionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("requestID: %d, %w", requestID,
				types.ErrUnknownRequest)
		}
		return 0, err
	}
	return solutionID, nil
}

// ConsumePendingRequest marks the pending entry for the given requestID as
// consumed, removing it from the outstanding set
func (r *SQLite) ConsumePendingRequest(requestID uint64) error {
	stmt, err := r.db.Prepare("UPDATE pendingrequests SET consumed=1" +
		" WHERE requestID = ?")
	if err != nil {
		return err
	}
	defer stmt.Close() //nolint:errcheck

	_, err = stmt.Exec(requestID)
	if err != nil {
		return err
	}
	return nil
}

// HasPendingRequestForSolution returns true if a decryption request is
// still outstanding for the given solutionID
func (r *SQLite) HasPendingRequestForSolution(solutionID uint64) (bool, error) {
	row := r.db.QueryRow("SELECT COUNT(*) FROM pendingrequests"+
		" WHERE solutionID = ? AND consumed = 0", solutionID)
	var count int
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
