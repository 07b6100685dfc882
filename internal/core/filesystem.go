package core

import (
	"io/fs"
)

// FilesystemManager provides an interface for filesystem operations.
// It abstracts file access to enable testing without touching the real filesystem.
type FilesystemManager interface {
	// Resolve converts a raw path to a validated absolute path.
	// The path must exist and be a regular file or directory
	// (not a symlink, device, pipe or socket).
	Resolve(rawPath string) (string, error)

	// Abs converts a raw path to an absolute path without requiring
	// it to exist. Used for paste targets that may be created.
	Abs(rawPath string) (string, error)

	// ReadFile reads the full content of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces the full content of a file, creating it if absent.
	WriteFile(path string, data []byte) error

	// Stat returns file info for a path.
	Stat(path string) (fs.FileInfo, error)

	// Walk traverses the tree rooted at root in lexical order,
	// calling fn for every entry. fn may return fs.SkipDir to prune.
	Walk(root string, fn fs.WalkDirFunc) error
}
