// Package clipboard provides implementations of the core.Clipboard
// interface: the host system clipboard and an in-memory buffer for tests.
package clipboard

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"

	"codeclip/internal/core"
)

// SystemClipboard talks to the host clipboard.
type SystemClipboard struct{}

// NewSystemClipboard creates a clipboard backed by the host environment.
func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{}
}

// ReadText returns the current clipboard text.
func (c *SystemClipboard) ReadText() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("reading system clipboard: %w", err)
	}
	return text, nil
}

// WriteText replaces the clipboard content.
func (c *SystemClipboard) WriteText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing system clipboard: %w", err)
	}
	return nil
}

// WriteFileReferences places the files on the clipboard as a file URI
// list, the closest text representation of file objects the host
// clipboard API supports.
func (c *SystemClipboard) WriteFileReferences(paths []string) error {
	uris := make([]string, len(paths))
	for i, p := range paths {
		uris[i] = "file://" + filepath.ToSlash(p)
	}
	return c.WriteText(strings.Join(uris, "\n"))
}

// Compile-time check that SystemClipboard implements core.Clipboard
var _ core.Clipboard = (*SystemClipboard)(nil)
