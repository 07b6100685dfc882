package core

import "time"

// Operation is a journal entry for a single CLI invocation that mutated
// the working set or the filesystem. Non-mutating commands are not recorded.
type Operation struct {
	ID         string
	Name       string
	Parameters string
	StartedAt  time.Time
	FinishedAt time.Time // zero until Finish
	Status     string    // "success" or "error"
}

// OperationLog records mutating operations for the history command.
type OperationLog interface {
	// Record inserts a new operation with its start time.
	Record(op *Operation) error

	// Finish sets the final status and finish time of an operation.
	Finish(id string, status string, finishedAt time.Time) error

	// List returns the most recent operations, newest first.
	List(limit int) ([]*Operation, error)

	// Close releases any underlying resources.
	Close() error
}
