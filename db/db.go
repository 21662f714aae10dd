package db

import (
	"database/sql"
)

// SQLite represents the SQLite database
type SQLite struct {
	db *sql.DB
}

// NewSQLite returns a new *SQLite database
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{
		db: db,
	}
}

// Migrate creates the tables needed for the database. Maze and solution
// identifiers are assigned by AUTOINCREMENT, which starts at 1; 0 is kept
// as the "not found" sentinel.
func (r *SQLite) Migrate() error {
	query := `
	PRAGMA foreign_keys = ON;
	`
	_, err := r.db.Exec(query)
	if err != nil {
		return err
	}

	query = `
	CREATE TABLE IF NOT EXISTS mazes(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		rows INTEGER NOT NULL,
		cols INTEGER NOT NULL,
		grid BLOB NOT NULL,
		startPoint BLOB NOT NULL,
		endPoint BLOB NOT NULL,
		insertedDatetime DATETIME
	);
	`
	_, err = r.db.Exec(query)
	if err != nil {
		return err
	}

	query = `
	CREATE TABLE IF NOT EXISTS solutions(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		mazeID INTEGER NOT NULL,
		path BLOB NOT NULL,
		insertedDatetime DATETIME,
		FOREIGN KEY(mazeID) REFERENCES mazes(id)
	);
	`
	_, err = r.db.Exec(query)
	if err != nil {
		return err
	}

	query = `
	CREATE TABLE IF NOT EXISTS results(
		solutionID INTEGER NOT NULL PRIMARY KEY UNIQUE,
		isValid INTEGER NOT NULL,
		revealed INTEGER NOT NULL,
		insertedDatetime DATETIME,
		FOREIGN KEY(solutionID) REFERENCES solutions(id)
	);
	`
	_, err = r.db.Exec(query)
	if err != nil {
		return err
	}

	query = `
	CREATE TABLE IF NOT EXISTS pendingrequests(
		requestID INTEGER NOT NULL PRIMARY KEY UNIQUE,
		solutionID INTEGER NOT NULL,
		consumed INTEGER NOT NULL DEFAULT 0,
		insertedDatetime DATETIME,
		FOREIGN KEY(solutionID) REFERENCES solutions(id)
	);
	`
	_, err = r.db.Exec(query)
	if err != nil {
		return err
	}

	return nil
}
