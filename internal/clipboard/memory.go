package clipboard

import (
	"codeclip/internal/core"
)

// MemoryClipboard is an in-memory implementation of the Clipboard
// interface, useful for testing and headless environments.
type MemoryClipboard struct {
	text string
	refs []string
}

// NewMemoryClipboard creates an empty in-memory clipboard.
func NewMemoryClipboard() *MemoryClipboard {
	return &MemoryClipboard{}
}

// ReadText returns the current buffer content.
func (c *MemoryClipboard) ReadText() (string, error) {
	return c.text, nil
}

// WriteText replaces the buffer content and clears any file references.
func (c *MemoryClipboard) WriteText(text string) error {
	c.text = text
	c.refs = nil
	return nil
}

// WriteFileReferences records the given paths as the buffer content.
func (c *MemoryClipboard) WriteFileReferences(paths []string) error {
	c.refs = append([]string(nil), paths...)
	return nil
}

// FileReferences returns the recorded file references, if any.
func (c *MemoryClipboard) FileReferences() []string {
	return c.refs
}

// Compile-time check that MemoryClipboard implements core.Clipboard
var _ core.Clipboard = (*MemoryClipboard)(nil)
