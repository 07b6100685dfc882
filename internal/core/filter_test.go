package core_test

import (
	"testing"

	"codeclip/internal/core"
)

func TestFilter_IsCandidate(t *testing.T) {
	filter := core.NewFilter([]string{".py", "go"}, []string{"__init__.py"}, nil)

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"allowed extension", "/src/main.py", true},
		{"extension given without dot", "/src/main.go", true},
		{"uppercase extension matches", "/src/MAIN.PY", true},
		{"disallowed extension", "/src/readme.md", false},
		{"no extension", "/src/Makefile", false},
		{"excluded filename", "/src/pkg/__init__.py", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.IsCandidate(tt.path); got != tt.want {
				t.Errorf("IsCandidate(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestFilter_IsExcludedDir(t *testing.T) {
	filter := core.NewFilter([]string{".py"}, nil, []string{"__pycache__", ".git"})

	if !filter.IsExcludedDir("__pycache__") {
		t.Error("IsExcludedDir(__pycache__) = false, want true")
	}
	if !filter.IsExcludedDir(".git") {
		t.Error("IsExcludedDir(.git) = false, want true")
	}
	if filter.IsExcludedDir("src") {
		t.Error("IsExcludedDir(src) = true, want false")
	}
}

func TestNewFilter_NormalizesRules(t *testing.T) {
	filter := core.NewFilter([]string{" PY ", "", ".Txt"}, []string{" ", ""}, nil)

	if !filter.IsCandidate("/a/b.py") {
		t.Error("expected ' PY ' to normalize to .py")
	}
	if !filter.IsCandidate("/a/b.txt") {
		t.Error("expected '.Txt' to normalize to .txt")
	}
}
