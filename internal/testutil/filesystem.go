package testutil

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"time"

	"codeclip/internal/core"
)

// MockFile represents a file in the mock filesystem.
type MockFile struct {
	Content     []byte
	IsDirectory bool
	ModTime     time.Time
}

// MockFilesystemManager is an in-memory filesystem for testing.
// WriteErr and ReadErr, when set, are returned by WriteFile and
// ReadFile to exercise failure paths.
type MockFilesystemManager struct {
	files map[string]*MockFile

	WriteErr error
	ReadErr  error
}

// NewMockFilesystemManager creates a new mock filesystem containing
// only the root directory "/".
func NewMockFilesystemManager() *MockFilesystemManager {
	m := &MockFilesystemManager{files: make(map[string]*MockFile)}
	m.AddDirectory("/")
	return m
}

// AddFile adds a file to the mock filesystem, creating parent
// directories as needed.
func (m *MockFilesystemManager) AddFile(path string, content []byte) {
	path = m.clean(path)
	m.addParents(path)
	m.files[path] = &MockFile{Content: content, ModTime: time.Now()}
}

// AddDirectory adds a directory to the mock filesystem.
func (m *MockFilesystemManager) AddDirectory(path string) {
	path = m.clean(path)
	m.addParents(path)
	m.files[path] = &MockFile{IsDirectory: true, ModTime: time.Now()}
}

func (m *MockFilesystemManager) addParents(path string) {
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		if _, ok := m.files[dir]; ok {
			break
		}
		m.files[dir] = &MockFile{IsDirectory: true, ModTime: time.Now()}
		if dir == filepath.Dir(dir) {
			break
		}
	}
}

func (m *MockFilesystemManager) clean(rawPath string) string {
	if filepath.IsAbs(rawPath) {
		return filepath.Clean(rawPath)
	}
	return filepath.Join("/", rawPath)
}

func (m *MockFilesystemManager) Resolve(rawPath string) (string, error) {
	path := m.clean(rawPath)
	if _, ok := m.files[path]; !ok {
		return "", fmt.Errorf("file not found: %s", path)
	}
	return path, nil
}

func (m *MockFilesystemManager) Abs(rawPath string) (string, error) {
	return m.clean(rawPath), nil
}

func (m *MockFilesystemManager) ReadFile(path string) ([]byte, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	file, ok := m.files[m.clean(path)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if file.IsDirectory {
		return nil, fmt.Errorf("is a directory: %s", path)
	}
	return file.Content, nil
}

func (m *MockFilesystemManager) WriteFile(path string, data []byte) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.AddFile(path, data)
	return nil
}

func (m *MockFilesystemManager) Stat(path string) (fs.FileInfo, error) {
	path = m.clean(path)
	file, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return newMockFileInfo(path, file), nil
}

// Walk traverses the mock tree in lexical order, honoring fs.SkipDir
// the way filepath.WalkDir does for directories.
func (m *MockFilesystemManager) Walk(root string, fn fs.WalkDirFunc) error {
	root = m.clean(root)
	if _, ok := m.files[root]; !ok {
		return &fs.PathError{Op: "walk", Path: root, Err: fs.ErrNotExist}
	}
	err := m.walk(root, fn)
	if err == fs.SkipDir {
		return nil
	}
	return err
}

func (m *MockFilesystemManager) walk(path string, fn fs.WalkDirFunc) error {
	file := m.files[path]
	entry := fs.FileInfoToDirEntry(newMockFileInfo(path, file))

	if err := fn(path, entry, nil); err != nil {
		if err == fs.SkipDir && file.IsDirectory {
			return nil
		}
		return err
	}
	if !file.IsDirectory {
		return nil
	}

	var children []string
	for p := range m.files {
		if p != path && filepath.Dir(p) == path {
			children = append(children, p)
		}
	}
	sort.Strings(children)

	for _, child := range children {
		if err := m.walk(child, fn); err != nil {
			// SkipDir from a file entry skips the rest of this directory.
			if err == fs.SkipDir {
				return nil
			}
			return err
		}
	}
	return nil
}

// mockFileInfo implements fs.FileInfo
type mockFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func newMockFileInfo(path string, file *MockFile) *mockFileInfo {
	mode := fs.FileMode(0644)
	if file.IsDirectory {
		mode = fs.ModeDir | 0755
	}
	return &mockFileInfo{
		name:    filepath.Base(path),
		size:    int64(len(file.Content)),
		mode:    mode,
		modTime: file.ModTime,
		isDir:   file.IsDirectory,
	}
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() any           { return nil }

// Compile-time check
var _ core.FilesystemManager = (*MockFilesystemManager)(nil)
