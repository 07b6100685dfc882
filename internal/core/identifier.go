package core

import (
	"path/filepath"
	"strings"
)

// TopLevelLabel is the sentinel group label for files directly under the
// scan root.
const TopLevelLabel = "(top-level)"

// identifierPrefix is the literal lead-in of a file identifier line.
// The full line is the prefix followed by a POSIX-style path, with no
// trailing content. Round-trip compatibility depends on this exact form.
const identifierPrefix = "# "

// RelativeOrAbsolute returns path relative to root using POSIX separators,
// falling back to the absolute path when path does not lie under root.
func RelativeOrAbsolute(path, root string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return filepath.ToSlash(path)
	}
	return rel
}

// IdentifierFor builds the canonical single-file identifier line for a
// file: "# " followed by its root-relative (or absolute) POSIX path.
// This form is used for single-file copy and paste reconciliation.
func IdentifierFor(path, root string) string {
	return identifierPrefix + RelativeOrAbsolute(path, root)
}

// CombineIdentifierFor builds the identifier line used inside a combined
// artifact: the containing directory's root-relative path plus the
// filename, or just the filename when the parent is the root itself.
func CombineIdentifierFor(path, root string) string {
	name := filepath.Base(path)
	dir := RelativeOrAbsolute(filepath.Dir(path), root)
	if dir == "" || dir == "." || dir == TopLevelLabel {
		return identifierPrefix + name
	}
	return identifierPrefix + dir + "/" + name
}

// firstLine returns the first line of text without its line terminator.
func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return strings.TrimSuffix(text[:i], "\r")
	}
	return text
}

// HasIdentifier reports whether the first line of text, stripped of
// surrounding whitespace, equals the expected identifier.
func HasIdentifier(text, expected string) bool {
	return strings.TrimSpace(firstLine(text)) == strings.TrimSpace(expected)
}

// EnsureIdentifier returns text prefixed with the expected identifier
// line, or text unchanged if it already starts with it. Applying it
// twice is the same as applying it once.
func EnsureIdentifier(text, expected string) string {
	if HasIdentifier(text, expected) {
		return text
	}
	return expected + "\n" + text
}
