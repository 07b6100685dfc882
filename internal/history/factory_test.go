package history

import (
	"testing"

	"codeclip/internal/config"
	"codeclip/internal/core"
)

func TestNewHistoryFromConfig(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		h, err := NewHistoryFromConfig(config.HistoryConfig{Type: "memory", Capacity: 5})
		if err != nil {
			t.Fatalf("NewHistoryFromConfig() error = %v", err)
		}
		if _, ok := h.(*core.MemoryHistory); !ok {
			t.Errorf("got %T, want *core.MemoryHistory", h)
		}
	})

	t.Run("filesystem", func(t *testing.T) {
		h, err := NewHistoryFromConfig(config.HistoryConfig{
			Type:        "filesystem",
			Capacity:    5,
			SnapshotDir: t.TempDir(),
		})
		if err != nil {
			t.Fatalf("NewHistoryFromConfig() error = %v", err)
		}
		if _, ok := h.(*FileSystemHistory); !ok {
			t.Errorf("got %T, want *FileSystemHistory", h)
		}
	})

	t.Run("filesystem without snapshot_dir is an error", func(t *testing.T) {
		if _, err := NewHistoryFromConfig(config.HistoryConfig{Type: "filesystem"}); err == nil {
			t.Error("expected error for missing snapshot_dir")
		}
	})

	t.Run("unknown type is an error", func(t *testing.T) {
		if _, err := NewHistoryFromConfig(config.HistoryConfig{Type: "redis"}); err == nil {
			t.Error("expected error for unknown type")
		}
	})
}
