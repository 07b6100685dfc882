package fs

import (
	"fmt"
	"os"

	gitignore "github.com/sabhiram/go-gitignore"

	"codeclip/internal/core"
)

// LoadIgnoreMatcher compiles a gitignore-style pattern file into a
// core.IgnoreMatcher. Returns nil (no matcher) when the file does not
// exist, so an absent ignore file is not an error.
func LoadIgnoreMatcher(path string) (core.IgnoreMatcher, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat ignore file: %w", err)
	}

	matcher, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, fmt.Errorf("compiling ignore file %s: %w", path, err)
	}
	return matcher, nil
}
