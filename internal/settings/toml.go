// Package settings provides implementations of the core.SettingsStore
// interface for persisting session state between invocations.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"codeclip/internal/core"
)

// TOMLStore persists settings as a small TOML document on disk. Every
// Set rewrites the file so state survives abrupt exits.
type TOMLStore struct {
	path    string
	strings map[string]string
	lists   map[string][]string
}

// NewTOMLStore opens (or lazily creates) the settings file at path.
// A missing file yields an empty store, not an error.
func NewTOMLStore(path string) (*TOMLStore, error) {
	s := &TOMLStore{
		path:    path,
		strings: make(map[string]string),
		lists:   make(map[string][]string),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *TOMLStore) load() error {
	var raw map[string]any
	if _, err := toml.DecodeFile(s.path, &raw); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading settings file %s: %w", s.path, err)
	}

	for key, value := range raw {
		switch v := value.(type) {
		case string:
			s.strings[key] = v
		case []any:
			list := make([]string, 0, len(v))
			for _, item := range v {
				str, ok := item.(string)
				if !ok {
					return fmt.Errorf("settings key %q: list holds non-string value %T", key, item)
				}
				list = append(list, str)
			}
			s.lists[key] = list
		default:
			return fmt.Errorf("settings key %q: unsupported value type %T", key, value)
		}
	}
	return nil
}

func (s *TOMLStore) save() error {
	doc := make(map[string]any, len(s.strings)+len(s.lists))
	for k, v := range s.strings {
		doc[k] = v
	}
	for k, v := range s.lists {
		doc[k] = v
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("creating settings file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(doc); err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	return nil
}

// GetString returns the stored value for key, or def if unset.
func (s *TOMLStore) GetString(key, def string) (string, error) {
	if v, ok := s.strings[key]; ok {
		return v, nil
	}
	return def, nil
}

// SetString stores a string value and persists the file.
func (s *TOMLStore) SetString(key, value string) error {
	s.strings[key] = value
	return s.save()
}

// GetStringList returns the stored list for key, or nil if unset.
func (s *TOMLStore) GetStringList(key string) ([]string, error) {
	return append([]string(nil), s.lists[key]...), nil
}

// SetStringList stores a list value and persists the file.
func (s *TOMLStore) SetStringList(key string, values []string) error {
	s.lists[key] = append([]string(nil), values...)
	return s.save()
}

// Compile-time check that TOMLStore implements core.SettingsStore
var _ core.SettingsStore = (*TOMLStore)(nil)
