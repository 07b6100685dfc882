package core

// DefaultHistoryCapacity is the number of snapshots kept per file.
const DefaultHistoryCapacity = 5

// VersionHistory holds bounded per-file stacks of full-text snapshots,
// taken before a mutating write so the write can be undone.
type VersionHistory interface {
	// Push records a snapshot for path. When the stack is full the
	// oldest snapshot is dropped silently.
	Push(path, content string) error

	// Pop removes and returns the most recent snapshot for path.
	// The boolean is false when no snapshot is available.
	Pop(path string) (string, bool, error)

	// Depth returns the number of snapshots currently held for path.
	// Best effort; returns 0 when the count cannot be determined.
	Depth(path string) int
}

// MemoryHistory is an in-memory VersionHistory. Snapshots are lost when
// the process ends; it backs tests and the memory history backend.
type MemoryHistory struct {
	capacity  int
	snapshots map[string][]string // path -> snapshots, oldest first
}

// NewMemoryHistory creates a MemoryHistory keeping at most capacity
// snapshots per path. Non-positive capacities fall back to
// DefaultHistoryCapacity.
func NewMemoryHistory(capacity int) *MemoryHistory {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &MemoryHistory{
		capacity:  capacity,
		snapshots: make(map[string][]string),
	}
}

func (h *MemoryHistory) Push(path, content string) error {
	stack := append(h.snapshots[path], content)
	if len(stack) > h.capacity {
		stack = stack[len(stack)-h.capacity:]
	}
	h.snapshots[path] = stack
	return nil
}

func (h *MemoryHistory) Pop(path string) (string, bool, error) {
	stack := h.snapshots[path]
	if len(stack) == 0 {
		return "", false, nil
	}
	content := stack[len(stack)-1]
	h.snapshots[path] = stack[:len(stack)-1]
	return content, true, nil
}

func (h *MemoryHistory) Depth(path string) int {
	return len(h.snapshots[path])
}

// Compile-time check that MemoryHistory implements VersionHistory
var _ VersionHistory = (*MemoryHistory)(nil)
