package history

import (
	"fmt"

	"codeclip/internal/config"
	"codeclip/internal/core"
)

// NewHistoryFromConfig creates a VersionHistory implementation based on
// the config type.
func NewHistoryFromConfig(cfg config.HistoryConfig) (core.VersionHistory, error) {
	switch cfg.Type {
	case "memory":
		return core.NewMemoryHistory(cfg.Capacity), nil
	case "filesystem":
		if cfg.SnapshotDir == "" {
			return nil, fmt.Errorf("filesystem history requires snapshot_dir to be set")
		}
		return NewFileSystemHistory(cfg.SnapshotDir, cfg.Capacity)
	default:
		return nil, fmt.Errorf("unknown history type: %s", cfg.Type)
	}
}
