// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strconv"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-rstify/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), ".config/go-rstify") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForOutputIsInput returns hints for inputs that would be overwritten.
func ForOutputIsInput() string {
	return format("the file already has the .rst extension; rename it or use --output to write elsewhere")
}

// ForInvalidWidth returns hints for out-of-range page widths.
func ForInvalidWidth(minWidth, maxWidth int) string {
	return format("use --width between " + strconv.Itoa(minWidth) + " and " + strconv.Itoa(maxWidth))
}

// ForUnknownStyle returns hints listing the available highlight styles.
func ForUnknownStyle(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
