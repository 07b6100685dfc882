package core

import (
	"fmt"
	"strings"
)

// maxListedNames bounds how many names an aggregated warning spells out.
const maxListedNames = 5

// FormatNames renders a list of file names for a warning message,
// truncating beyond maxListedNames with a "+N more" suffix.
func FormatNames(names []string) string {
	if len(names) <= maxListedNames {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s, +%d more",
		strings.Join(names[:maxListedNames], ", "), len(names)-maxListedNames)
}
