package settings

import (
	"codeclip/internal/core"
)

// MemoryStore is an in-memory implementation of the SettingsStore
// interface. Nothing is persisted; use in tests.
type MemoryStore struct {
	strings map[string]string
	lists   map[string][]string
}

// NewMemoryStore creates an empty in-memory settings store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		strings: make(map[string]string),
		lists:   make(map[string][]string),
	}
}

// GetString returns the stored value for key, or def if unset.
func (s *MemoryStore) GetString(key, def string) (string, error) {
	if v, ok := s.strings[key]; ok {
		return v, nil
	}
	return def, nil
}

// SetString stores a string value.
func (s *MemoryStore) SetString(key, value string) error {
	s.strings[key] = value
	return nil
}

// GetStringList returns the stored list for key, or nil if unset.
func (s *MemoryStore) GetStringList(key string) ([]string, error) {
	return append([]string(nil), s.lists[key]...), nil
}

// SetStringList stores a list value.
func (s *MemoryStore) SetStringList(key string, values []string) error {
	s.lists[key] = append([]string(nil), values...)
	return nil
}

// Compile-time check that MemoryStore implements core.SettingsStore
var _ core.SettingsStore = (*MemoryStore)(nil)
