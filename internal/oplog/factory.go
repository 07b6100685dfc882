package oplog

import (
	"fmt"
	"os"
	"path/filepath"

	"codeclip/internal/config"
	"codeclip/internal/core"
)

// NewLogFromConfig creates an OperationLog implementation based on the
// journal config type.
func NewLogFromConfig(cfg config.JournalConfig) (core.OperationLog, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite journal")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
		return NewSQLiteLog(filepath.Join(cfg.DataDir, "journal.db"))
	case "memory":
		return NewMemoryLog(), nil
	default:
		return nil, fmt.Errorf("unknown journal type: %s", cfg.Type)
	}
}
