package core

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// Engine produces the combined artifact from the working set and decides
// how clipboard text merges back into a single file.
type Engine struct {
	fsmgr  FilesystemManager
	logger Logger
}

// NewEngine creates an Engine.
func NewEngine(fsmgr FilesystemManager, logger Logger) *Engine {
	return &Engine{fsmgr: fsmgr, logger: logger}
}

// CombineResult is the outcome of a Combine call. Missing and Skipped
// carry the names of files that were dropped from the batch; the batch
// itself always runs to completion.
type CombineResult struct {
	Text    string
	Files   int      // files included in the artifact
	Lines   int      // newline count of the artifact
	Missing []string // checked files that no longer exist on disk
	Skipped []string // unreadable or binary files
}

// Combine concatenates the checked files of set in list order. Each
// file's content is prefixed with its combine-form identifier (unless
// already present) and followed by a blank-line separator. Missing,
// unreadable and binary files are skipped with a warning; the result
// text is empty when nothing was included.
func (e *Engine) Combine(set *FileSet, root string) (*CombineResult, error) {
	result := &CombineResult{}
	var b strings.Builder

	for _, path := range set.Checked() {
		ref := FileReference{Path: path}

		if _, err := e.fsmgr.Stat(path); err != nil {
			if os.IsNotExist(err) {
				e.logger.Warn("file no longer exists", "path", path)
				result.Missing = append(result.Missing, ref.Name())
				continue
			}
			e.logger.Warn("cannot stat file", "path", path, "error", err)
			result.Skipped = append(result.Skipped, ref.Name())
			continue
		}

		data, err := e.fsmgr.ReadFile(path)
		if err != nil {
			e.logger.Warn("cannot read file", "path", path, "error", err)
			result.Skipped = append(result.Skipped, ref.Name())
			continue
		}
		if looksBinary(data) {
			e.logger.Warn("skipping binary file", "path", path)
			result.Skipped = append(result.Skipped, ref.Name())
			continue
		}

		text := EnsureIdentifier(string(data), CombineIdentifierFor(path, root))
		b.WriteString(text)
		b.WriteString("\n\n")
		result.Files++
	}

	result.Text = b.String()
	result.Lines = strings.Count(result.Text, "\n")
	return result, nil
}

// CopyOne reads a single file and returns its content prefixed with the
// single-form identifier. Unlike Combine, no trailing separator is added
// and a binary file is an error rather than a silent skip.
func (e *Engine) CopyOne(path, root string) (string, error) {
	data, err := e.fsmgr.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}
	if looksBinary(data) {
		return "", fmt.Errorf("not a valid text file: %s", path)
	}
	return EnsureIdentifier(string(data), IdentifierFor(path, root)), nil
}

// ReconcilePaste decides the content to write when pasting clipboard
// text into the file at path. When the clipboard already starts with
// the file's identifier it is written verbatim; otherwise the clipboard
// is treated as a header-less body and exactly one correct identifier
// line is prepended. Repeated copy/paste cycles therefore never
// accumulate duplicate or mismatched headers.
func ReconcilePaste(clipboardText, expected string) (string, error) {
	if clipboardText == "" {
		return "", ErrEmptyClipboard
	}
	if HasIdentifier(clipboardText, expected) {
		return clipboardText, nil
	}
	return expected + "\n" + clipboardText, nil
}

// looksBinary sniffs up to the first 512 bytes for NUL bytes and checks
// the whole content decodes as UTF-8. Empty content is text.
func looksBinary(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	if bytes.IndexByte(head, 0) >= 0 {
		return true
	}
	return !utf8.Valid(data)
}
