package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for codeclip.
type Config struct {
	BaseDir   string        `toml:"base_dir"`
	LogDir    string        `toml:"log_dir"`
	StatePath string        `toml:"state_path"`
	Filter    FilterConfig  `toml:"filter"`
	History   HistoryConfig `toml:"history"`
	Journal   JournalConfig `toml:"journal"`
}

// FilterConfig holds the candidate-file rules: which extensions are
// allowed and which file and directory names are always excluded.
// IgnoreFile optionally points to a gitignore-style pattern file
// applied on top during scans.
type FilterConfig struct {
	Extensions    []string `toml:"extensions"`
	ExcludedFiles []string `toml:"excluded_files"`
	ExcludedDirs  []string `toml:"excluded_dirs"`
	IgnoreFile    string   `toml:"ignore_file,omitempty"`
}

// HistoryConfig holds version-history settings.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type HistoryConfig struct {
	Type        string `toml:"type"`                   // "filesystem" or "memory"
	Capacity    int    `toml:"capacity"`               // snapshots kept per file
	SnapshotDir string `toml:"snapshot_dir,omitempty"` // only used for type=filesystem
}

// JournalConfig represents configuration for the operation journal.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type JournalConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// NewConfig creates a new Config with the provided base directory and
// default rules.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir:   baseDir,
		LogDir:    filepath.Join(baseDir, "log"),
		StatePath: filepath.Join(baseDir, "state.toml"),
		Filter: FilterConfig{
			Extensions:    []string{".py"},
			ExcludedFiles: []string{"__init__.py"},
			ExcludedDirs:  []string{"__pycache__", ".git", ".venv", "venv", ".idea", ".vscode"},
		},
		History: HistoryConfig{
			Type:        "filesystem",
			Capacity:    5,
			SnapshotDir: filepath.Join(baseDir, "snapshots"),
		},
		Journal: JournalConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "journal"),
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
// This is an internal helper and should not be exported.
func writeToFile(path string, cfg *Config) error {
	// Ensure the directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
