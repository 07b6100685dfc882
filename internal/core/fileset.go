package core

import (
	"path/filepath"
)

// FileReference is a single entry in the working set: an absolute
// filesystem path with a display name derived from its basename.
type FileReference struct {
	Path string
}

// Name returns the display name (basename) of the reference.
func (r FileReference) Name() string { return filepath.Base(r.Path) }

// FileSet is the ordered working set of file references.
// Uniqueness is enforced by filename only: two files with the same
// basename in different directories are treated as duplicates and the
// later one is rejected. Order determines combination and display order.
// A subset of entries is "checked" (selected for combination); checked
// is always a subset of the current entries.
type FileSet struct {
	entries []FileReference
	checked map[string]bool // keyed by absolute path
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{checked: make(map[string]bool)}
}

// AddResult reports the outcome of an Add or ReplaceAll call.
type AddResult struct {
	Added      []string // paths appended to the set
	Duplicates []string // names rejected because an entry with the same basename exists
	Rejected   []string // names rejected by the filter
}

// Len returns the number of entries.
func (s *FileSet) Len() int { return len(s.entries) }

// References returns the entries in order. The returned slice is a copy.
func (s *FileSet) References() []FileReference {
	out := make([]FileReference, len(s.entries))
	copy(out, s.entries)
	return out
}

// Paths returns the entry paths in order.
func (s *FileSet) Paths() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Path
	}
	return out
}

// Checked returns the checked entry paths in set order.
func (s *FileSet) Checked() []string {
	var out []string
	for _, e := range s.entries {
		if s.checked[e.Path] {
			out = append(out, e.Path)
		}
	}
	return out
}

// Contains reports whether the exact path is in the set.
func (s *FileSet) Contains(path string) bool {
	for _, e := range s.entries {
		if e.Path == path {
			return true
		}
	}
	return false
}

// ContainsName reports whether any entry has the given basename.
func (s *FileSet) ContainsName(name string) bool {
	for _, e := range s.entries {
		if e.Name() == name {
			return true
		}
	}
	return false
}

// IsChecked reports whether the path is currently checked.
func (s *FileSet) IsChecked(path string) bool { return s.checked[path] }

// Add appends each candidate path that is not already present by filename
// and marks it checked. Paths failing the filter are rejected; paths whose
// basename collides with an existing entry are reported as duplicates and
// left untouched.
func (s *FileSet) Add(paths []string, filter *Filter) AddResult {
	var res AddResult
	names := make(map[string]bool, len(s.entries))
	for _, e := range s.entries {
		names[e.Name()] = true
	}
	for _, p := range paths {
		ref := FileReference{Path: p}
		if filter != nil && !filter.IsCandidate(p) {
			res.Rejected = append(res.Rejected, ref.Name())
			continue
		}
		if names[ref.Name()] {
			res.Duplicates = append(res.Duplicates, ref.Name())
			continue
		}
		s.entries = append(s.entries, ref)
		s.checked[p] = true
		names[ref.Name()] = true
		res.Added = append(res.Added, p)
	}
	return res
}

// ReplaceAll discards the current set and rebuilds it from paths, applying
// the filter and deduplicating by filename (first occurrence wins, in input
// order). Every surviving entry is checked.
func (s *FileSet) ReplaceAll(paths []string, filter *Filter) AddResult {
	s.entries = nil
	s.checked = make(map[string]bool)
	return s.Add(paths, filter)
}

// Refilter re-applies the filter to the current entries, dropping entries
// that no longer qualify and deduplicating by filename. Checked state is
// preserved for survivors. Returns the names of removed entries.
func (s *FileSet) Refilter(filter *Filter) []string {
	var removed []string
	var kept []FileReference
	seen := make(map[string]bool, len(s.entries))
	for _, e := range s.entries {
		if (filter != nil && !filter.IsCandidate(e.Path)) || seen[e.Name()] {
			removed = append(removed, e.Name())
			delete(s.checked, e.Path)
			continue
		}
		seen[e.Name()] = true
		kept = append(kept, e)
	}
	s.entries = kept
	return removed
}

// Remove deletes the reference with the given path, unchecking it.
// Removing an absent path is a no-op. Returns whether anything was removed.
func (s *FileSet) Remove(path string) bool {
	for i, e := range s.entries {
		if e.Path == path {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			delete(s.checked, path)
			return true
		}
	}
	return false
}

// SetChecked sets the checked state of path. No-op if path is absent.
// Returns whether the path was found.
func (s *FileSet) SetChecked(path string, value bool) bool {
	if !s.Contains(path) {
		return false
	}
	if value {
		s.checked[path] = true
	} else {
		delete(s.checked, path)
	}
	return true
}

// CheckAll marks every entry checked.
func (s *FileSet) CheckAll() {
	for _, e := range s.entries {
		s.checked[e.Path] = true
	}
}

// UncheckAll clears the checked set.
func (s *FileSet) UncheckAll() {
	s.checked = make(map[string]bool)
}

// MoveCheckedToTop stable-partitions the entries into checked entries
// followed by unchecked entries, preserving relative order within each
// partition. Returns the number of checked entries moved to the front;
// zero means nothing was checked and the set is unchanged.
func (s *FileSet) MoveCheckedToTop() int {
	var checked, unchecked []FileReference
	for _, e := range s.entries {
		if s.checked[e.Path] {
			checked = append(checked, e)
		} else {
			unchecked = append(unchecked, e)
		}
	}
	if len(checked) == 0 {
		return 0
	}
	s.entries = append(checked, unchecked...)
	return len(checked)
}
