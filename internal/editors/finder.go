// pattern: Imperative Shell
package editors

import (
	"os"
	"path/filepath"
)

// FindApp locates an installed application bundle by name, checking the
// search directories in order. Returns the first existing path, or false if
// the app is not installed anywhere.
func FindApp(bundle string, searchDirs []string) (string, bool) {
	for _, dir := range searchDirs {
		candidate := filepath.Join(dir, bundle)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}
