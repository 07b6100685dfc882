package core_test

import (
	"reflect"
	"strings"
	"testing"

	"codeclip/internal/core"
	"codeclip/internal/testutil"
)

// prefixIgnore ignores any relative path starting with one of the
// given prefixes.
type prefixIgnore struct {
	prefixes []string
}

func (m *prefixIgnore) MatchesPath(path string) bool {
	for _, p := range m.prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

func TestScanner_Scan(t *testing.T) {
	filter := core.NewFilter([]string{".py"}, []string{"__init__.py"}, []string{"__pycache__"})

	setup := func(t *testing.T) *testutil.MockFilesystemManager {
		t.Helper()
		fsmgr := testutil.NewMockFilesystemManager()
		fsmgr.AddFile("/project/foo.py", []byte("print(1)\n"))
		fsmgr.AddFile("/project/notes.txt", []byte("notes"))
		fsmgr.AddFile("/project/__init__.py", []byte(""))
		fsmgr.AddFile("/project/sub/bar.py", []byte("print(2)\n"))
		fsmgr.AddFile("/project/sub/deep/baz.py", []byte("print(3)\n"))
		fsmgr.AddFile("/project/__pycache__/foo.cpython-312.py", []byte("x"))
		return fsmgr
	}

	t.Run("groups candidates by directory", func(t *testing.T) {
		fsmgr := setup(t)
		scanner := core.NewScanner(fsmgr, filter, nil, core.NewNopLogger())

		result, err := scanner.Scan("/project")
		if err != nil {
			t.Fatalf("Scan() error = %v", err)
		}

		wantLabels := []string{core.TopLevelLabel, "sub", "sub/deep"}
		if !reflect.DeepEqual(result.Labels(), wantLabels) {
			t.Fatalf("Labels() = %v, want %v", result.Labels(), wantLabels)
		}

		top := result.Groups[core.TopLevelLabel]
		if len(top) != 1 || top[0].RelativePath != "foo.py" {
			t.Errorf("top-level group = %+v, want [foo.py]", top)
		}
		if top[0].AbsolutePath != "/project/foo.py" {
			t.Errorf("AbsolutePath = %q", top[0].AbsolutePath)
		}

		sub := result.Groups["sub"]
		if len(sub) != 1 || sub[0].RelativePath != "sub/bar.py" {
			t.Errorf("sub group = %+v, want [sub/bar.py]", sub)
		}

		if result.Files() != 3 {
			t.Errorf("Files() = %d, want 3", result.Files())
		}
	})

	t.Run("prunes excluded directories", func(t *testing.T) {
		fsmgr := setup(t)
		scanner := core.NewScanner(fsmgr, filter, nil, core.NewNopLogger())

		result, err := scanner.Scan("/project")
		if err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		if _, ok := result.Groups["__pycache__"]; ok {
			t.Error("excluded directory appeared in result")
		}
	})

	t.Run("applies ignore patterns", func(t *testing.T) {
		fsmgr := setup(t)
		ignore := &prefixIgnore{prefixes: []string{"sub"}}
		scanner := core.NewScanner(fsmgr, filter, ignore, core.NewNopLogger())

		result, err := scanner.Scan("/project")
		if err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		if !reflect.DeepEqual(result.Labels(), []string{core.TopLevelLabel}) {
			t.Errorf("Labels() = %v, want only top level", result.Labels())
		}
	})

	t.Run("two scans produce identical groupings", func(t *testing.T) {
		fsmgr := setup(t)
		scanner := core.NewScanner(fsmgr, filter, nil, core.NewNopLogger())

		first, err := scanner.Scan("/project")
		if err != nil {
			t.Fatalf("first Scan() error = %v", err)
		}
		second, err := scanner.Scan("/project")
		if err != nil {
			t.Fatalf("second Scan() error = %v", err)
		}
		if !reflect.DeepEqual(first.Groups, second.Groups) {
			t.Error("scans of unchanged tree differ")
		}
	})

	t.Run("root must be a directory", func(t *testing.T) {
		fsmgr := setup(t)
		scanner := core.NewScanner(fsmgr, filter, nil, core.NewNopLogger())

		if _, err := scanner.Scan("/project/foo.py"); err == nil {
			t.Error("Scan() expected error for file root")
		}
	})

	t.Run("missing root is an error", func(t *testing.T) {
		fsmgr := setup(t)
		scanner := core.NewScanner(fsmgr, filter, nil, core.NewNopLogger())

		if _, err := scanner.Scan("/nope"); err == nil {
			t.Error("Scan() expected error for missing root")
		}
	})
}
