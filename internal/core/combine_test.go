package core_test

import (
	"errors"
	"reflect"
	"testing"

	"codeclip/internal/core"
	"codeclip/internal/testutil"
)

func TestEngine_Combine(t *testing.T) {
	setup := func(t *testing.T) (*core.Engine, *testutil.MockFilesystemManager, *core.FileSet) {
		t.Helper()
		fsmgr := testutil.NewMockFilesystemManager()
		engine := core.NewEngine(fsmgr, core.NewNopLogger())
		set := core.NewFileSet()
		return engine, fsmgr, set
	}

	t.Run("concatenates checked files with identifiers and separators", func(t *testing.T) {
		engine, fsmgr, set := setup(t)
		fsmgr.AddFile("/project/foo.py", []byte("print(1)\n"))
		fsmgr.AddFile("/project/sub/bar.py", []byte("print(2)\n"))
		set.Add([]string{"/project/foo.py", "/project/sub/bar.py"}, nil)

		result, err := engine.Combine(set, "/project")
		if err != nil {
			t.Fatalf("Combine() error = %v", err)
		}

		want := "# foo.py\nprint(1)\n\n\n# sub/bar.py\nprint(2)\n\n\n"
		if result.Text != want {
			t.Errorf("Text = %q, want %q", result.Text, want)
		}
		if result.Files != 2 {
			t.Errorf("Files = %d, want 2", result.Files)
		}
		if result.Lines != 8 {
			t.Errorf("Lines = %d, want 8", result.Lines)
		}
	})

	t.Run("respects set order", func(t *testing.T) {
		engine, fsmgr, set := setup(t)
		fsmgr.AddFile("/p/z.py", []byte("z\n"))
		fsmgr.AddFile("/p/a.py", []byte("a\n"))
		set.Add([]string{"/p/z.py", "/p/a.py"}, nil)

		result, err := engine.Combine(set, "/p")
		if err != nil {
			t.Fatalf("Combine() error = %v", err)
		}
		want := "# z.py\nz\n\n\n# a.py\na\n\n\n"
		if result.Text != want {
			t.Errorf("Text = %q, want %q", result.Text, want)
		}
	})

	t.Run("does not duplicate an existing identifier", func(t *testing.T) {
		engine, fsmgr, set := setup(t)
		fsmgr.AddFile("/p/foo.py", []byte("# foo.py\nprint(1)\n"))
		set.Add([]string{"/p/foo.py"}, nil)

		result, err := engine.Combine(set, "/p")
		if err != nil {
			t.Fatalf("Combine() error = %v", err)
		}
		if result.Text != "# foo.py\nprint(1)\n\n\n" {
			t.Errorf("Text = %q", result.Text)
		}
	})

	t.Run("skips missing files but completes the batch", func(t *testing.T) {
		engine, fsmgr, set := setup(t)
		fsmgr.AddFile("/p/a.py", []byte("a\n"))
		set.Add([]string{"/p/a.py", "/p/gone.py"}, nil)

		result, err := engine.Combine(set, "/p")
		if err != nil {
			t.Fatalf("Combine() error = %v", err)
		}
		if !reflect.DeepEqual(result.Missing, []string{"gone.py"}) {
			t.Errorf("Missing = %v, want [gone.py]", result.Missing)
		}
		if result.Files != 1 {
			t.Errorf("Files = %d, want 1", result.Files)
		}
	})

	t.Run("skips binary files", func(t *testing.T) {
		engine, fsmgr, set := setup(t)
		fsmgr.AddFile("/p/blob.py", []byte{0x00, 0x01, 0x02})
		fsmgr.AddFile("/p/a.py", []byte("a\n"))
		set.Add([]string{"/p/blob.py", "/p/a.py"}, nil)

		result, err := engine.Combine(set, "/p")
		if err != nil {
			t.Fatalf("Combine() error = %v", err)
		}
		if !reflect.DeepEqual(result.Skipped, []string{"blob.py"}) {
			t.Errorf("Skipped = %v, want [blob.py]", result.Skipped)
		}
		if result.Text != "# a.py\na\n\n\n" {
			t.Errorf("Text = %q", result.Text)
		}
	})

	t.Run("unchecked files are not included", func(t *testing.T) {
		engine, fsmgr, set := setup(t)
		fsmgr.AddFile("/p/a.py", []byte("a\n"))
		fsmgr.AddFile("/p/b.py", []byte("b\n"))
		set.Add([]string{"/p/a.py", "/p/b.py"}, nil)
		set.SetChecked("/p/b.py", false)

		result, err := engine.Combine(set, "/p")
		if err != nil {
			t.Fatalf("Combine() error = %v", err)
		}
		if result.Text != "# a.py\na\n\n\n" {
			t.Errorf("Text = %q", result.Text)
		}
	})

	t.Run("empty selection yields empty text", func(t *testing.T) {
		engine, _, set := setup(t)

		result, err := engine.Combine(set, "/p")
		if err != nil {
			t.Fatalf("Combine() error = %v", err)
		}
		if result.Text != "" || result.Files != 0 {
			t.Errorf("got Text=%q Files=%d, want empty", result.Text, result.Files)
		}
	})
}

func TestEngine_CopyOne(t *testing.T) {
	t.Run("prefixes the single-file identifier", func(t *testing.T) {
		fsmgr := testutil.NewMockFilesystemManager()
		fsmgr.AddFile("/project/sub/bar.py", []byte("print(2)\n"))
		engine := core.NewEngine(fsmgr, core.NewNopLogger())

		got, err := engine.CopyOne("/project/sub/bar.py", "/project")
		if err != nil {
			t.Fatalf("CopyOne() error = %v", err)
		}
		if got != "# sub/bar.py\nprint(2)\n" {
			t.Errorf("CopyOne() = %q", got)
		}
	})

	t.Run("binary file is an error", func(t *testing.T) {
		fsmgr := testutil.NewMockFilesystemManager()
		fsmgr.AddFile("/p/blob.py", []byte{0x00, 0xff})
		engine := core.NewEngine(fsmgr, core.NewNopLogger())

		if _, err := engine.CopyOne("/p/blob.py", "/p"); err == nil {
			t.Error("CopyOne() expected error for binary content")
		}
	})

	t.Run("missing file is an error", func(t *testing.T) {
		fsmgr := testutil.NewMockFilesystemManager()
		engine := core.NewEngine(fsmgr, core.NewNopLogger())

		if _, err := engine.CopyOne("/p/gone.py", "/p"); err == nil {
			t.Error("CopyOne() expected error for missing file")
		}
	})
}

func TestReconcilePaste(t *testing.T) {
	t.Run("empty clipboard", func(t *testing.T) {
		_, err := core.ReconcilePaste("", "# foo.py")
		if !errors.Is(err, core.ErrEmptyClipboard) {
			t.Fatalf("error = %v, want ErrEmptyClipboard", err)
		}
	})

	t.Run("matching identifier written verbatim", func(t *testing.T) {
		got, err := core.ReconcilePaste("# foo.py\nprint(3)\n", "# foo.py")
		if err != nil {
			t.Fatalf("ReconcilePaste() error = %v", err)
		}
		if got != "# foo.py\nprint(3)\n" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("headerless body gets the identifier prepended", func(t *testing.T) {
		got, err := core.ReconcilePaste("print(3)\n", "# foo.py")
		if err != nil {
			t.Fatalf("ReconcilePaste() error = %v", err)
		}
		if got != "# foo.py\nprint(3)\n" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("mismatched identifier treated as body", func(t *testing.T) {
		got, err := core.ReconcilePaste("# bar.py\nprint(3)\n", "# foo.py")
		if err != nil {
			t.Fatalf("ReconcilePaste() error = %v", err)
		}
		if got != "# foo.py\n# bar.py\nprint(3)\n" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("reconcile is idempotent on its own output", func(t *testing.T) {
		once, err := core.ReconcilePaste("print(3)\n", "# foo.py")
		if err != nil {
			t.Fatalf("ReconcilePaste() error = %v", err)
		}
		twice, err := core.ReconcilePaste(once, "# foo.py")
		if err != nil {
			t.Fatalf("second ReconcilePaste() error = %v", err)
		}
		if once != twice {
			t.Errorf("second pass changed content: %q vs %q", once, twice)
		}
	})
}
