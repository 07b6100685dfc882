package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Service is the orchestration layer that coordinates the working set,
// the combine engine, the version history and the external collaborators
// (clipboard, settings store, filesystem) to perform the high-level
// operations needed by the CLI. All operations are synchronous and run
// to completion; there is no background work.
type Service struct {
	fsmgr     FilesystemManager
	clipboard Clipboard
	settings  SettingsStore
	filter    *Filter
	scanner   *Scanner
	engine    *Engine
	set       *FileSet
	history   VersionHistory
	logger    Logger

	root string
}

// NewService creates a Service with the provided dependencies.
// ignore may be nil when no user ignore file is configured.
func NewService(fsmgr FilesystemManager, clipboard Clipboard, settings SettingsStore, filter *Filter, ignore IgnoreMatcher, history VersionHistory, logger Logger) *Service {
	return &Service{
		fsmgr:     fsmgr,
		clipboard: clipboard,
		settings:  settings,
		filter:    filter,
		scanner:   NewScanner(fsmgr, filter, ignore, logger),
		engine:    NewEngine(fsmgr, logger),
		set:       NewFileSet(),
		history:   history,
		logger:    logger,
	}
}

// LoadState restores the root directory, the ordered file list and the
// checked selection from the settings store. Stored paths that no
// longer pass the filter are dropped; checked entries that are no
// longer present are ignored, keeping checked a subset of the list.
func (s *Service) LoadState() error {
	root, err := s.settings.GetString(SettingLastRoot, "")
	if err != nil {
		return fmt.Errorf("loading root directory: %w", err)
	}
	s.root = filepath.FromSlash(root)

	stored, err := s.settings.GetStringList(SettingFileList)
	if err != nil {
		return fmt.Errorf("loading file list: %w", err)
	}

	paths := make([]string, 0, len(stored))
	for _, p := range stored {
		paths = append(paths, filepath.FromSlash(p))
	}
	s.set = NewFileSet()
	s.set.Add(paths, s.filter)
	s.set.UncheckAll()

	checked, err := s.settings.GetStringList(SettingCheckedList)
	if err != nil {
		return fmt.Errorf("loading checked list: %w", err)
	}
	for _, p := range checked {
		s.set.SetChecked(filepath.FromSlash(p), true)
	}
	return nil
}

// Root returns the currently selected root directory, or "" if none.
func (s *Service) Root() string { return s.root }

// SetRoot selects a new root directory and persists it.
func (s *Service) SetRoot(rawPath string) error {
	path, err := s.fsmgr.Resolve(rawPath)
	if err != nil {
		return fmt.Errorf("resolving root: %w", err)
	}
	info, err := s.fsmgr.Stat(path)
	if err != nil {
		return fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root is not a directory: %s", path)
	}
	s.root = path
	if err := s.settings.SetString(SettingLastRoot, filepath.ToSlash(path)); err != nil {
		return fmt.Errorf("saving root directory: %w", err)
	}
	s.logger.Info("root directory selected", "root", path)
	return nil
}

// FileSet exposes the working set for display. Mutations must go
// through the Service so state stays persisted.
func (s *Service) FileSet() *FileSet { return s.set }

// saveState persists the ordered file list and the checked selection
// as POSIX-style strings.
func (s *Service) saveState() error {
	toSlash := func(paths []string) []string {
		stored := make([]string, len(paths))
		for i, p := range paths {
			stored[i] = filepath.ToSlash(p)
		}
		return stored
	}
	if err := s.settings.SetStringList(SettingFileList, toSlash(s.set.Paths())); err != nil {
		return fmt.Errorf("saving file list: %w", err)
	}
	if err := s.settings.SetStringList(SettingCheckedList, toSlash(s.set.Checked())); err != nil {
		return fmt.Errorf("saving checked list: %w", err)
	}
	return nil
}

// Scan re-applies the filter to the working set (preserving checked
// state of survivors), persists it, then walks the root directory and
// returns the discovered candidate files grouped by directory.
// The removed names are returned alongside the scan result.
func (s *Service) Scan() (*ScanResult, []string, error) {
	if s.root == "" {
		return nil, nil, ErrNoRoot
	}

	removed := s.set.Refilter(s.filter)
	if err := s.saveState(); err != nil {
		return nil, nil, err
	}

	result, err := s.scanner.Scan(s.root)
	if err != nil {
		return nil, removed, err
	}
	return result, removed, nil
}

// AddFiles resolves the given raw paths and appends the candidates to
// the working set, marking them checked. Unresolvable paths are
// reported as rejected.
func (s *Service) AddFiles(rawPaths []string) (AddResult, error) {
	var resolved []string
	var res AddResult
	for _, raw := range rawPaths {
		path, err := s.fsmgr.Resolve(raw)
		if err != nil {
			s.logger.Warn("cannot resolve path", "path", raw, "error", err)
			res.Rejected = append(res.Rejected, filepath.Base(raw))
			continue
		}
		resolved = append(resolved, path)
	}

	added := s.set.Add(resolved, s.filter)
	res.Added = added.Added
	res.Duplicates = added.Duplicates
	res.Rejected = append(res.Rejected, added.Rejected...)

	if len(res.Added) > 0 {
		if err := s.saveState(); err != nil {
			return res, err
		}
	}
	return res, nil
}

// ReplaceFiles discards the working set and rebuilds it from the given
// raw paths, checking every surviving entry.
func (s *Service) ReplaceFiles(rawPaths []string) (AddResult, error) {
	var resolved []string
	var rejected []string
	for _, raw := range rawPaths {
		path, err := s.fsmgr.Resolve(raw)
		if err != nil {
			s.logger.Warn("cannot resolve path", "path", raw, "error", err)
			rejected = append(rejected, filepath.Base(raw))
			continue
		}
		resolved = append(resolved, path)
	}

	res := s.set.ReplaceAll(resolved, s.filter)
	res.Rejected = append(rejected, res.Rejected...)

	if err := s.saveState(); err != nil {
		return res, err
	}
	return res, nil
}

// RemoveFile removes a file from the working set. Removing an absent
// path is a no-op, reported through the return value.
func (s *Service) RemoveFile(rawPath string) (bool, error) {
	path, err := s.fsmgr.Abs(rawPath)
	if err != nil {
		return false, fmt.Errorf("resolving path: %w", err)
	}
	if !s.set.Remove(path) {
		return false, nil
	}
	if err := s.saveState(); err != nil {
		return true, err
	}
	s.logger.Info("file removed from set", "path", path)
	return true, nil
}

// SetChecked marks a working-set entry checked or unchecked and
// persists the selection.
func (s *Service) SetChecked(rawPath string, value bool) (bool, error) {
	path, err := s.fsmgr.Abs(rawPath)
	if err != nil {
		return false, fmt.Errorf("resolving path: %w", err)
	}
	if !s.set.SetChecked(path, value) {
		return false, nil
	}
	if err := s.saveState(); err != nil {
		return true, err
	}
	return true, nil
}

// CheckAll checks every entry; UncheckAll clears the selection.
// Both persist the new selection.
func (s *Service) CheckAll() error {
	s.set.CheckAll()
	return s.saveState()
}

func (s *Service) UncheckAll() error {
	s.set.UncheckAll()
	return s.saveState()
}

// MoveCheckedToTop stable-partitions the working set with checked
// entries first and persists the new order. Returns the number of
// entries moved; zero means nothing was checked.
func (s *Service) MoveCheckedToTop() (int, error) {
	moved := s.set.MoveCheckedToTop()
	if moved == 0 {
		return 0, nil
	}
	if err := s.saveState(); err != nil {
		return moved, err
	}
	return moved, nil
}

// Combine concatenates the checked files into a single artifact and
// places it on the clipboard. Returns ErrNothingChecked when the
// artifact would be empty (nothing checked, or everything skipped).
func (s *Service) Combine() (*CombineResult, error) {
	result, err := s.engine.Combine(s.set, s.root)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(result.Text) == "" {
		return result, ErrNothingChecked
	}
	if err := s.clipboard.WriteText(result.Text); err != nil {
		return result, fmt.Errorf("writing clipboard: %w", err)
	}
	s.logger.Info("combined files copied", "files", result.Files, "lines", result.Lines)
	return result, nil
}

// CopyFile copies a single file's content to the clipboard, prefixed
// with its identifier.
func (s *Service) CopyFile(rawPath string) error {
	path, err := s.fsmgr.Abs(rawPath)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	text, err := s.engine.CopyOne(path, s.root)
	if err != nil {
		return err
	}
	if err := s.clipboard.WriteText(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	s.logger.Info("file copied", "path", path)
	return nil
}

// CopyCheckedPaths copies the checked files' root-relative paths to the
// clipboard, one per line. Returns how many paths were copied.
func (s *Service) CopyCheckedPaths() (int, error) {
	checked := s.set.Checked()
	if len(checked) == 0 {
		return 0, ErrNothingChecked
	}
	rels := make([]string, len(checked))
	for i, p := range checked {
		rels[i] = RelativeOrAbsolute(p, s.root)
	}
	if err := s.clipboard.WriteText(strings.Join(rels, "\n")); err != nil {
		return 0, fmt.Errorf("writing clipboard: %w", err)
	}
	return len(checked), nil
}

// CopyCheckedFileReferences places the checked files on the clipboard
// as file references. Returns how many references were copied.
func (s *Service) CopyCheckedFileReferences() (int, error) {
	checked := s.set.Checked()
	if len(checked) == 0 {
		return 0, ErrNothingChecked
	}
	if err := s.clipboard.WriteFileReferences(checked); err != nil {
		return 0, fmt.Errorf("writing clipboard: %w", err)
	}
	return len(checked), nil
}

// PasteFile writes the clipboard text into the file at rawPath after
// reconciling the identifier header. The file's previous content is
// snapshotted for revert before the write; a failed snapshot read
// aborts the paste. Pasting into a nonexistent file creates it.
func (s *Service) PasteFile(rawPath string) error {
	path, err := s.fsmgr.Abs(rawPath)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	clipboardText, err := s.clipboard.ReadText()
	if err != nil {
		return fmt.Errorf("reading clipboard: %w", err)
	}

	content, err := ReconcilePaste(clipboardText, IdentifierFor(path, s.root))
	if err != nil {
		return err
	}

	snapshotted := false
	if data, err := s.fsmgr.ReadFile(path); err == nil {
		if err := s.history.Push(path, string(data)); err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}
		snapshotted = true
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("reading current content: %w", err)
	}

	if err := s.fsmgr.WriteFile(path, []byte(content)); err != nil {
		if snapshotted {
			s.history.Pop(path)
		}
		return fmt.Errorf("writing file: %w", err)
	}

	s.logger.Info("clipboard pasted", "path", path, "snapshots", s.history.Depth(path))
	return nil
}

// RevertFile restores the most recent snapshot of the file at rawPath.
// A second revert restores the next-older snapshot. Returns
// ErrNothingToRevert when no snapshot exists. If the write fails the
// snapshot is retained so the revert can be retried.
func (s *Service) RevertFile(rawPath string) error {
	path, err := s.fsmgr.Abs(rawPath)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	content, ok, err := s.history.Pop(path)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}
	if !ok {
		return ErrNothingToRevert
	}
	if err := s.fsmgr.WriteFile(path, []byte(content)); err != nil {
		s.history.Push(path, content)
		return fmt.Errorf("writing file: %w", err)
	}

	s.logger.Info("file reverted", "path", path, "remaining", s.history.Depth(path))
	return nil
}
