// Package oplog implements the core.OperationLog interface: a journal
// of mutating CLI operations backing the history command.
package oplog

import (
	"database/sql"
	"fmt"
	"time"

	"codeclip/internal/core"
	"codeclip/internal/oplog/migrations"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteLog implements the OperationLog interface using SQLite.
type SQLiteLog struct {
	db   *sql.DB
	path string
}

// NewSQLiteLog opens (and migrates) the journal database at path.
// path can be a file path or ":memory:" for an in-memory database.
func NewSQLiteLog(path string) (*SQLiteLog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating journal database: %w", err)
	}

	return &SQLiteLog{db: db, path: path}, nil
}

// Record inserts a new operation row with its start time.
func (l *SQLiteLog) Record(op *core.Operation) error {
	_, err := l.db.Exec(
		`INSERT INTO operations (id, name, parameters, started_at, status) VALUES (?, ?, ?, ?, ?)`,
		op.ID, op.Name, op.Parameters, op.StartedAt, op.Status,
	)
	if err != nil {
		return fmt.Errorf("inserting operation: %w", err)
	}
	return nil
}

// Finish sets the final status and finish time of an operation.
func (l *SQLiteLog) Finish(id string, status string, finishedAt time.Time) error {
	res, err := l.db.Exec(
		`UPDATE operations SET status = ?, finished_at = ? WHERE id = ?`,
		status, finishedAt, id,
	)
	if err != nil {
		return fmt.Errorf("finishing operation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("operation not found: %s", id)
	}
	return nil
}

// List returns the most recent operations, newest first.
func (l *SQLiteLog) List(limit int) ([]*core.Operation, error) {
	rows, err := l.db.Query(
		`SELECT id, name, parameters, started_at, finished_at, status
		 FROM operations ORDER BY started_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	defer rows.Close()

	var ops []*core.Operation
	for rows.Next() {
		var op core.Operation
		var finished sql.NullTime
		if err := rows.Scan(&op.ID, &op.Name, &op.Parameters, &op.StartedAt, &finished, &op.Status); err != nil {
			return nil, fmt.Errorf("scanning operation: %w", err)
		}
		if finished.Valid {
			op.FinishedAt = finished.Time
		}
		ops = append(ops, &op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading operations: %w", err)
	}
	return ops, nil
}

// Close closes the underlying database.
func (l *SQLiteLog) Close() error {
	return l.db.Close()
}

// Compile-time check that SQLiteLog implements core.OperationLog
var _ core.OperationLog = (*SQLiteLog)(nil)
