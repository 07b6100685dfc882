package oplog

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"codeclip/internal/core"
)

// MemoryLog is an in-memory implementation of the OperationLog
// interface. Entries vanish when the process ends; use in tests.
// This implementation is safe for concurrent use.
type MemoryLog struct {
	ops []*core.Operation
	mu  sync.RWMutex
}

// NewMemoryLog creates an empty in-memory journal.
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

// Record appends a new operation.
func (l *MemoryLog) Record(op *core.Operation) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := *op
	l.ops = append(l.ops, &entry)
	return nil
}

// Finish sets the final status and finish time of an operation.
func (l *MemoryLog) Finish(id string, status string, finishedAt time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, op := range l.ops {
		if op.ID == id {
			op.Status = status
			op.FinishedAt = finishedAt
			return nil
		}
	}
	return fmt.Errorf("operation not found: %s", id)
}

// List returns the most recent operations, newest first.
func (l *MemoryLog) List(limit int) ([]*core.Operation, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*core.Operation, len(l.ops))
	for i, op := range l.ops {
		entry := *op
		out[i] = &entry
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close is a no-op for the in-memory journal.
func (l *MemoryLog) Close() error { return nil }

// Compile-time check that MemoryLog implements core.OperationLog
var _ core.OperationLog = (*MemoryLog)(nil)
