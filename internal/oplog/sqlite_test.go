package oplog

import (
	"path/filepath"
	"testing"
	"time"

	"codeclip/internal/core"
	"codeclip/internal/testutil"
)

func newTestSQLiteLog(t *testing.T) *SQLiteLog {
	t.Helper()
	log, err := NewSQLiteLog(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("NewSQLiteLog() error = %v", err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}

func TestSQLiteLog_RecordAndList(t *testing.T) {
	log := newTestSQLiteLog(t)
	clock := testutil.FixedClock()

	ops := []*core.Operation{
		{ID: "op-1", Name: "Scan", Parameters: "/project", Status: "success"},
		{ID: "op-2", Name: "Combine", Status: "success"},
		{ID: "op-3", Name: "PasteFile", Parameters: "/project/foo.py", Status: "success"},
	}
	for _, op := range ops {
		op.StartedAt = clock.Now()
		if err := log.Record(op); err != nil {
			t.Fatalf("Record(%s) error = %v", op.ID, err)
		}
		clock.Advance(time.Minute)
	}

	t.Run("newest first with limit", func(t *testing.T) {
		got, err := log.List(2)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d ops, want 2", len(got))
		}
		if got[0].ID != "op-3" || got[1].ID != "op-2" {
			t.Errorf("order = [%s, %s], want [op-3, op-2]", got[0].ID, got[1].ID)
		}
	})

	t.Run("round-trips fields", func(t *testing.T) {
		got, err := log.List(10)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		last := got[len(got)-1]
		if last.Name != "Scan" || last.Parameters != "/project" {
			t.Errorf("got Name=%q Parameters=%q", last.Name, last.Parameters)
		}
		if !last.FinishedAt.IsZero() {
			t.Errorf("FinishedAt = %v, want zero before Finish", last.FinishedAt)
		}
	})
}

func TestSQLiteLog_Finish(t *testing.T) {
	t.Run("updates status and finish time", func(t *testing.T) {
		log := newTestSQLiteLog(t)
		clock := testutil.FixedClock()

		op := &core.Operation{ID: "op-1", Name: "RevertFile", StartedAt: clock.Now(), Status: "success"}
		if err := log.Record(op); err != nil {
			t.Fatalf("Record() error = %v", err)
		}

		clock.Advance(2 * time.Second)
		if err := log.Finish("op-1", "error", clock.Now()); err != nil {
			t.Fatalf("Finish() error = %v", err)
		}

		got, err := log.List(1)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if got[0].Status != "error" {
			t.Errorf("Status = %q, want error", got[0].Status)
		}
		if !got[0].FinishedAt.After(got[0].StartedAt) {
			t.Errorf("FinishedAt = %v, want after StartedAt %v", got[0].FinishedAt, got[0].StartedAt)
		}
	})

	t.Run("unknown id is an error", func(t *testing.T) {
		log := newTestSQLiteLog(t)
		if err := log.Finish("nope", "success", time.Now()); err == nil {
			t.Error("Finish() expected error for unknown id")
		}
	})
}

func TestSQLiteLog_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.db")

	log, err := NewSQLiteLog(path)
	if err != nil {
		t.Fatalf("NewSQLiteLog() error = %v", err)
	}
	if err := log.Record(&core.Operation{ID: "op-1", Name: "Scan", StartedAt: time.Now(), Status: "success"}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewSQLiteLog(path)
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	defer reopened.Close()

	ops, err := reopened.List(10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(ops) != 1 || ops[0].ID != "op-1" {
		t.Errorf("got %d ops, want the recorded one", len(ops))
	}
}
