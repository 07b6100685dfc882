package core

import "errors"

// Operation-level user errors. These abort a single operation with a
// warning and leave no partial side effects.
var (
	// ErrEmptyClipboard is returned by paste when there is nothing to paste.
	ErrEmptyClipboard = errors.New("clipboard is empty")

	// ErrNothingChecked is returned when an operation needs checked files
	// and none are checked.
	ErrNothingChecked = errors.New("no files checked")

	// ErrNothingToRevert is returned by revert when no snapshot exists
	// for the file.
	ErrNothingToRevert = errors.New("no previous version available")

	// ErrNoRoot is returned when an operation needs a root directory and
	// none has been selected.
	ErrNoRoot = errors.New("no root directory selected")
)
