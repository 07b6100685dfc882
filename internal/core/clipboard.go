package core

// Clipboard is the shared text buffer supplied by the host environment.
// The core never assumes exclusive access to it across process boundaries,
// only within a single operation.
type Clipboard interface {
	// ReadText returns the current clipboard text. An empty clipboard
	// yields an empty string, not an error.
	ReadText() (string, error)

	// WriteText replaces the clipboard content with the given text.
	WriteText(text string) error

	// WriteFileReferences places the given files on the clipboard as
	// file references rather than text. Implementations that cannot
	// represent file objects fall back to a URI list.
	WriteFileReferences(paths []string) error
}
