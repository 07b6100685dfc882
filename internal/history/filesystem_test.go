package history

import (
	"fmt"
	"path/filepath"
	"testing"
)

func TestFileSystemHistory_PushPop(t *testing.T) {
	t.Run("pops newest first", func(t *testing.T) {
		h, err := NewFileSystemHistory(t.TempDir(), 5)
		if err != nil {
			t.Fatalf("NewFileSystemHistory() error = %v", err)
		}

		h.Push("/project/foo.py", "v1")
		h.Push("/project/foo.py", "v2")

		got, ok, err := h.Pop("/project/foo.py")
		if err != nil {
			t.Fatalf("Pop() error = %v", err)
		}
		if !ok || got != "v2" {
			t.Fatalf("Pop() = %q, %v, want v2, true", got, ok)
		}

		got, ok, _ = h.Pop("/project/foo.py")
		if !ok || got != "v1" {
			t.Fatalf("second Pop() = %q, %v, want v1, true", got, ok)
		}

		if _, ok, _ := h.Pop("/project/foo.py"); ok {
			t.Error("Pop() on drained stack = true, want false")
		}
	})

	t.Run("stacks are per target path", func(t *testing.T) {
		h, err := NewFileSystemHistory(t.TempDir(), 5)
		if err != nil {
			t.Fatalf("NewFileSystemHistory() error = %v", err)
		}

		h.Push("/a.py", "a")
		h.Push("/b.py", "b")

		got, ok, _ := h.Pop("/a.py")
		if !ok || got != "a" {
			t.Fatalf("Pop(/a.py) = %q, %v", got, ok)
		}
		if h.Depth("/b.py") != 1 {
			t.Errorf("Depth(/b.py) = %d, want 1", h.Depth("/b.py"))
		}
	})
}

func TestFileSystemHistory_Capacity(t *testing.T) {
	h, err := NewFileSystemHistory(t.TempDir(), 2)
	if err != nil {
		t.Fatalf("NewFileSystemHistory() error = %v", err)
	}

	for i := 1; i <= 4; i++ {
		if err := h.Push("/f.py", fmt.Sprintf("v%d", i)); err != nil {
			t.Fatalf("Push() error = %v", err)
		}
	}

	if h.Depth("/f.py") != 2 {
		t.Fatalf("Depth() = %d, want 2", h.Depth("/f.py"))
	}
	got, _, _ := h.Pop("/f.py")
	if got != "v4" {
		t.Errorf("Pop() = %q, want v4", got)
	}
	got, _, _ = h.Pop("/f.py")
	if got != "v3" {
		t.Errorf("Pop() = %q, want v3", got)
	}
}

func TestFileSystemHistory_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	h, err := NewFileSystemHistory(dir, 5)
	if err != nil {
		t.Fatalf("NewFileSystemHistory() error = %v", err)
	}
	if err := h.Push("/project/foo.py", "original content"); err != nil {
		t.Fatalf("Push() error = %v", err)
	}

	reopened, err := NewFileSystemHistory(dir, 5)
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	if reopened.Depth("/project/foo.py") != 1 {
		t.Fatalf("Depth() = %d after reopen, want 1", reopened.Depth("/project/foo.py"))
	}

	got, ok, err := reopened.Pop("/project/foo.py")
	if err != nil {
		t.Fatalf("Pop() error = %v", err)
	}
	if !ok || got != "original content" {
		t.Errorf("Pop() = %q, %v", got, ok)
	}
}

func TestFileSystemHistory_DepthOnEmpty(t *testing.T) {
	h, err := NewFileSystemHistory(filepath.Join(t.TempDir(), "hist"), 5)
	if err != nil {
		t.Fatalf("NewFileSystemHistory() error = %v", err)
	}
	if h.Depth("/never/seen.py") != 0 {
		t.Errorf("Depth() = %d, want 0", h.Depth("/never/seen.py"))
	}
}
