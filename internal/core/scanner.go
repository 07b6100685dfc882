package core

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
)

// IgnoreMatcher checks relative paths against user-supplied ignore
// patterns layered on top of the static filter rules.
type IgnoreMatcher interface {
	MatchesPath(path string) bool
}

// ScanEntry is a discovered candidate file: its path relative to the
// scan root (for display) and its absolute path.
type ScanEntry struct {
	RelativePath string
	AbsolutePath string
}

// ScanResult groups discovered files by containing directory. Group
// labels are directory paths relative to the root, with TopLevelLabel
// standing in for the root itself. Labels exist only when at least one
// qualifying file was found under them.
type ScanResult struct {
	Groups  map[string][]ScanEntry
	Skipped []string // subtrees or entries that could not be read
}

// Labels returns the group labels in sorted order.
func (r *ScanResult) Labels() []string {
	labels := make([]string, 0, len(r.Groups))
	for label := range r.Groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Files returns the total number of discovered files.
func (r *ScanResult) Files() int {
	n := 0
	for _, entries := range r.Groups {
		n += len(entries)
	}
	return n
}

// Scanner walks a root directory and buckets candidate files by
// containing directory. Two scans of the same filesystem state produce
// identical groupings: traversal is lexical and grouping is pure.
type Scanner struct {
	fsmgr  FilesystemManager
	filter *Filter
	ignore IgnoreMatcher // optional
	logger Logger
}

// NewScanner creates a Scanner. ignore may be nil.
func NewScanner(fsmgr FilesystemManager, filter *Filter, ignore IgnoreMatcher, logger Logger) *Scanner {
	return &Scanner{fsmgr: fsmgr, filter: filter, ignore: ignore, logger: logger}
}

// Scan traverses root, pruning excluded directories before descending,
// and returns candidate files grouped by directory label. Unreadable
// entries are skipped and reported in the result, not fatal.
func (s *Scanner) Scan(root string) (*ScanResult, error) {
	info, err := s.fsmgr.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root is not a directory: %s", root)
	}

	result := &ScanResult{Groups: make(map[string][]ScanEntry)}

	err = s.fsmgr.Walk(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("skipping unreadable path", "path", path, "error", err)
			result.Skipped = append(result.Skipped, filepath.Base(path))
			return nil
		}

		rel := RelativeOrAbsolute(path, root)

		if d.IsDir() {
			if path == root {
				return nil
			}
			if s.filter.IsExcludedDir(d.Name()) {
				return fs.SkipDir
			}
			if s.ignore != nil && s.ignore.MatchesPath(rel) {
				return fs.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if !s.filter.IsCandidate(path) {
			return nil
		}
		if s.ignore != nil && s.ignore.MatchesPath(rel) {
			return nil
		}

		label := RelativeOrAbsolute(filepath.Dir(path), root)
		if label == "." {
			label = TopLevelLabel
		}
		result.Groups[label] = append(result.Groups[label], ScanEntry{
			RelativePath: rel,
			AbsolutePath: path,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	s.logger.Debug("scan complete", "root", root, "groups", len(result.Groups), "files", result.Files())
	return result, nil
}
