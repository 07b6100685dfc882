package core

import (
	"path/filepath"
	"strings"
)

// Filter decides which files are candidates for the working set.
// A file qualifies when its extension is in the allow-list and its
// basename is not explicitly excluded. Directory names can be excluded
// wholesale to prune traversal (VCS metadata, virtualenvs, IDE dirs).
type Filter struct {
	extensions    map[string]bool
	excludedFiles map[string]bool
	excludedDirs  map[string]bool
}

// NewFilter creates a Filter from raw rule lists. Extensions are matched
// case-insensitively and may be given with or without the leading dot.
func NewFilter(extensions, excludedFiles, excludedDirs []string) *Filter {
	f := &Filter{
		extensions:    make(map[string]bool, len(extensions)),
		excludedFiles: make(map[string]bool, len(excludedFiles)),
		excludedDirs:  make(map[string]bool, len(excludedDirs)),
	}
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		f.extensions[ext] = true
	}
	for _, name := range excludedFiles {
		if name = strings.TrimSpace(name); name != "" {
			f.excludedFiles[name] = true
		}
	}
	for _, name := range excludedDirs {
		if name = strings.TrimSpace(name); name != "" {
			f.excludedDirs[name] = true
		}
	}
	return f
}

// IsCandidate reports whether the file at path passes the filter rules.
// Only the extension and basename are inspected; the file is not stat'd.
func (f *Filter) IsCandidate(path string) bool {
	name := filepath.Base(path)
	if f.excludedFiles[name] {
		return false
	}
	return f.extensions[strings.ToLower(filepath.Ext(name))]
}

// IsExcludedDir reports whether a directory with the given basename
// should be pruned from traversal. Matching is by exact name.
func (f *Filter) IsExcludedDir(name string) bool {
	return f.excludedDirs[name]
}
