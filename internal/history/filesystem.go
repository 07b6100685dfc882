package history

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"codeclip/internal/core"
)

// FileSystemHistory is a filesystem-based implementation of the
// VersionHistory interface. Snapshots survive between process runs so a
// paste in one invocation can be reverted in the next.
//
// Directory structure:
//
//	<history_dir>/
//	  files/
//	    <sha256 of target path>/
//	      target          (absolute path of the snapshotted file)
//	      00000001        (oldest snapshot content)
//	      00000002
type FileSystemHistory struct {
	filesDir string
	capacity int
}

// NewFileSystemHistory creates a filesystem-based history rooted at
// historyDir, keeping at most capacity snapshots per file.
func NewFileSystemHistory(historyDir string, capacity int) (*FileSystemHistory, error) {
	if capacity <= 0 {
		capacity = core.DefaultHistoryCapacity
	}
	filesDir := filepath.Join(historyDir, "files")

	if err := os.MkdirAll(filesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	return &FileSystemHistory{
		filesDir: filesDir,
		capacity: capacity,
	}, nil
}

// stackDir returns the per-target directory, keyed by a hash of the
// absolute path so arbitrary paths map to flat directory names.
func (h *FileSystemHistory) stackDir(path string) string {
	sum := sha256.Sum256([]byte(path))
	return filepath.Join(h.filesDir, hex.EncodeToString(sum[:]))
}

// sequence returns the snapshot sequence numbers for dir, sorted
// ascending. A missing directory yields an empty sequence.
func (h *FileSystemHistory) sequence(dir string) ([]int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history directory: %w", err)
	}

	var seq []int
	for _, e := range entries {
		n, err := strconv.Atoi(e.Name())
		if err != nil {
			continue // target marker or stray file
		}
		seq = append(seq, n)
	}
	sort.Ints(seq)
	return seq, nil
}

func (h *FileSystemHistory) Push(path, content string) error {
	dir := h.stackDir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "target"), []byte(path), 0644); err != nil {
		return fmt.Errorf("writing target marker: %w", err)
	}

	seq, err := h.sequence(dir)
	if err != nil {
		return err
	}

	next := 1
	if len(seq) > 0 {
		next = seq[len(seq)-1] + 1
	}
	name := fmt.Sprintf("%08d", next)
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	// Evict oldest snapshots beyond capacity. Best effort; a leftover
	// file is re-evicted on the next push.
	for i := 0; i <= len(seq)-h.capacity; i++ {
		os.Remove(filepath.Join(dir, fmt.Sprintf("%08d", seq[i])))
	}
	return nil
}

func (h *FileSystemHistory) Pop(path string) (string, bool, error) {
	dir := h.stackDir(path)
	seq, err := h.sequence(dir)
	if err != nil {
		return "", false, err
	}
	if len(seq) == 0 {
		return "", false, nil
	}

	name := filepath.Join(dir, fmt.Sprintf("%08d", seq[len(seq)-1]))
	data, err := os.ReadFile(name)
	if err != nil {
		return "", false, fmt.Errorf("reading snapshot: %w", err)
	}
	if err := os.Remove(name); err != nil {
		return "", false, fmt.Errorf("removing snapshot: %w", err)
	}

	if len(seq) == 1 {
		os.Remove(filepath.Join(dir, "target"))
		os.Remove(dir)
	}
	return string(data), true, nil
}

func (h *FileSystemHistory) Depth(path string) int {
	seq, err := h.sequence(h.stackDir(path))
	if err != nil {
		return 0
	}
	return len(seq)
}

// Compile-time check that FileSystemHistory implements core.VersionHistory
var _ core.VersionHistory = (*FileSystemHistory)(nil)
