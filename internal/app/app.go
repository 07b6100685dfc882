package app

import (
	"fmt"
	"os"
	"strings"

	"codeclip/internal/clipboard"
	"codeclip/internal/config"
	"codeclip/internal/core"
	"codeclip/internal/fs"
	"codeclip/internal/history"
	"codeclip/internal/oplog"
	"codeclip/internal/settings"
)

// App is the application layer between the CLI and the core Service.
// It constructs all dependencies from config, exposes high-level
// operations that accept raw string paths, and manages the journal
// lifecycle on Close.
type App struct {
	cfg     *config.Config
	service *core.Service
	journal core.OperationLog
	clock   core.Clock
	op      *core.Operation
	logged  bool
	logFile *os.File
}

// NewApp creates a fully wired App from the given config.
// operation identifies the CLI command being run (e.g. "Scan", "Paste").
// The caller must call Close when done.
func NewApp(cfg *config.Config, operation string) (*App, error) {
	fsmgr := fs.NewOSFilesystemManager()
	clip := clipboard.NewSystemClipboard()

	store, err := settings.NewTOMLStore(cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("opening settings store: %w", err)
	}

	journal, err := oplog.NewLogFromConfig(cfg.Journal)
	if err != nil {
		return nil, fmt.Errorf("opening operation journal: %w", err)
	}

	ignore, err := fs.LoadIgnoreMatcher(cfg.Filter.IgnoreFile)
	if err != nil {
		journal.Close()
		return nil, fmt.Errorf("loading ignore file: %w", err)
	}

	filter := core.NewFilter(cfg.Filter.Extensions, cfg.Filter.ExcludedFiles, cfg.Filter.ExcludedDirs)

	hist, err := history.NewHistoryFromConfig(cfg.History)
	if err != nil {
		journal.Close()
		return nil, fmt.Errorf("opening version history: %w", err)
	}

	clock := core.RealClock{}
	opID := core.UUIDGenerator{}.New()

	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		journal.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	svc := core.NewService(fsmgr, clip, store, filter, ignore, hist, &slogAdapter{l: logger})
	if err := svc.LoadState(); err != nil {
		journal.Close()
		logFile.Close()
		return nil, fmt.Errorf("loading session state: %w", err)
	}

	return &App{
		cfg:     cfg,
		service: svc,
		journal: journal,
		clock:   clock,
		op:      &core.Operation{ID: opID, Name: operation, Status: "success"},
		logFile: logFile,
	}, nil
}

// logOperation records the journal entry for a mutating command.
// Non-mutating commands never call this and leave no journal row.
func (a *App) logOperation(parameters ...string) error {
	if a.logged {
		return nil // already recorded
	}
	a.op.Parameters = strings.Join(parameters, " ")
	a.op.StartedAt = a.clock.Now()
	if err := a.journal.Record(a.op); err != nil {
		return fmt.Errorf("recording operation: %w", err)
	}
	a.logged = true
	return nil
}

// fail marks the operation as failed and passes the error through.
func (a *App) fail(err error) error {
	if err != nil {
		a.op.Status = "error"
	}
	return err
}

// Root returns the currently selected root directory, or "".
func (a *App) Root() string { return a.service.Root() }

// SetRoot selects and persists a new root directory.
func (a *App) SetRoot(rawPath string) error {
	if err := a.logOperation(rawPath); err != nil {
		return err
	}
	return a.fail(a.service.SetRoot(rawPath))
}

// Scan walks the root directory and returns candidate files grouped by
// directory, plus the names dropped from the working set by refiltering.
func (a *App) Scan() (*core.ScanResult, []string, error) {
	if err := a.logOperation(a.service.Root()); err != nil {
		return nil, nil, err
	}
	result, removed, err := a.service.Scan()
	return result, removed, a.fail(err)
}

// AddFiles appends the given files to the working set.
func (a *App) AddFiles(rawPaths []string) (core.AddResult, error) {
	if err := a.logOperation(rawPaths...); err != nil {
		return core.AddResult{}, err
	}
	res, err := a.service.AddFiles(rawPaths)
	return res, a.fail(err)
}

// ReplaceFiles rebuilds the working set from the given files.
func (a *App) ReplaceFiles(rawPaths []string) (core.AddResult, error) {
	if err := a.logOperation(rawPaths...); err != nil {
		return core.AddResult{}, err
	}
	res, err := a.service.ReplaceFiles(rawPaths)
	return res, a.fail(err)
}

// RemoveFile removes a file from the working set.
func (a *App) RemoveFile(rawPath string) (bool, error) {
	if err := a.logOperation(rawPath); err != nil {
		return false, err
	}
	removed, err := a.service.RemoveFile(rawPath)
	return removed, a.fail(err)
}

// SetChecked marks a working-set entry checked or unchecked.
func (a *App) SetChecked(rawPath string, value bool) (bool, error) {
	return a.service.SetChecked(rawPath, value)
}

// CheckAll checks every entry; UncheckAll clears the selection.
func (a *App) CheckAll() error   { return a.service.CheckAll() }
func (a *App) UncheckAll() error { return a.service.UncheckAll() }

// MoveCheckedToTop reorders the working set with checked entries first.
func (a *App) MoveCheckedToTop() (int, error) {
	if err := a.logOperation(); err != nil {
		return 0, err
	}
	moved, err := a.service.MoveCheckedToTop()
	return moved, a.fail(err)
}

// Combine concatenates the checked files and places the artifact on the
// clipboard.
func (a *App) Combine() (*core.CombineResult, error) {
	if err := a.logOperation(); err != nil {
		return nil, err
	}
	result, err := a.service.Combine()
	return result, a.fail(err)
}

// CopyFile copies a single file's identified content to the clipboard.
func (a *App) CopyFile(rawPath string) error {
	return a.service.CopyFile(rawPath)
}

// CopyCheckedPaths copies the checked files' relative paths to the clipboard.
func (a *App) CopyCheckedPaths() (int, error) {
	return a.service.CopyCheckedPaths()
}

// CopyCheckedFileReferences copies the checked files as file references.
func (a *App) CopyCheckedFileReferences() (int, error) {
	return a.service.CopyCheckedFileReferences()
}

// PasteFile writes the clipboard into the given file after identifier
// reconciliation, snapshotting the previous content for revert.
func (a *App) PasteFile(rawPath string) error {
	if err := a.logOperation(rawPath); err != nil {
		return err
	}
	return a.fail(a.service.PasteFile(rawPath))
}

// RevertFile restores the most recent snapshot of the given file.
func (a *App) RevertFile(rawPath string) error {
	if err := a.logOperation(rawPath); err != nil {
		return err
	}
	return a.fail(a.service.RevertFile(rawPath))
}

// FileEntry is a display row for the list command.
type FileEntry struct {
	Path    string
	Name    string
	Rel     string
	Checked bool
}

// Files returns the working set in order for display.
func (a *App) Files() []FileEntry {
	set := a.service.FileSet()
	root := a.service.Root()
	refs := set.References()
	entries := make([]FileEntry, len(refs))
	for i, ref := range refs {
		entries[i] = FileEntry{
			Path:    ref.Path,
			Name:    ref.Name(),
			Rel:     core.RelativeOrAbsolute(ref.Path, root),
			Checked: set.IsChecked(ref.Path),
		}
	}
	return entries
}

// History returns the most recent journal entries, newest first.
func (a *App) History(limit int) ([]*core.Operation, error) {
	return a.journal.List(limit)
}

// Close finalizes the journal entry for mutating operations and closes
// all resources.
func (a *App) Close() error {
	var firstErr error

	if a.logged {
		if err := a.journal.Finish(a.op.ID, a.op.Status, a.clock.Now()); err != nil {
			firstErr = fmt.Errorf("finishing operation: %w", err)
		}
	}

	if err := a.journal.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing journal: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
