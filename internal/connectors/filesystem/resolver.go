package filesystem

import (
	"path/filepath"
	"strings"
)

// ResolveRoot converts a file:// URI or bare path to a cleaned local path.
// A leading ~/ expands to the user's home directory when known.
func ResolveRoot(uri, home string) string {
	p := strings.TrimPrefix(uri, "file://")
	if home != "" && (p == "~" || strings.HasPrefix(p, "~/")) {
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	if p == "" {
		return "."
	}
	return filepath.Clean(p)
}
