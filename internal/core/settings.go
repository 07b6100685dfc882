package core

// Settings keys persisted between sessions. Paths are stored as
// POSIX-style strings regardless of platform.
const (
	SettingLastRoot    = "last_root_directory"
	SettingFileList    = "ordered_file_path_list"
	SettingCheckedList = "checked_file_path_list"
)

// SettingsStore is the persisted key-value store for session state.
// Only the keys above are used.
type SettingsStore interface {
	// GetString returns the stored value for key, or def if unset.
	GetString(key, def string) (string, error)

	// SetString stores a string value and persists it.
	SetString(key, value string) error

	// GetStringList returns the stored list for key, or nil if unset.
	GetStringList(key string) ([]string, error)

	// SetStringList stores a list value and persists it.
	SetStringList(key string, values []string) error
}
