// pattern: Imperative Shell
package alfred

import (
	"os"
	"path/filepath"
)

// Workflow describes the directories Alfred assigns to a running workflow.
// Outside Alfred the zero paths fall back to locations under the user cache.
type Workflow struct {
	BundleID string
	DataDir  string
	CacheDir string
}

// DetectWorkflow reads the standard Alfred workflow environment.
func DetectWorkflow(getenv func(string) string) Workflow {
	wf := Workflow{
		BundleID: getenv("alfred_workflow_bundleid"),
		DataDir:  getenv("alfred_workflow_data"),
		CacheDir: getenv("alfred_workflow_cache"),
	}
	if wf.DataDir == "" || wf.CacheDir == "" {
		base := fallbackBase(getenv)
		if wf.DataDir == "" {
			wf.DataDir = filepath.Join(base, "data")
		}
		if wf.CacheDir == "" {
			wf.CacheDir = filepath.Join(base, "cache")
		}
	}
	return wf
}

// PreferencesDir locates the Alfred preferences bundle, needed to find the
// clipboard history database.
func PreferencesDir(getenv func(string) string) string {
	if dir := getenv("ALFRED_PREFERENCES_PATH"); dir != "" {
		return dir
	}
	if dir := getenv("alfred_preferences"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Library", "Application Support", "Alfred", "Alfred.alfredpreferences")
}

// ClipboardDBPath returns the path of Alfred's clipboard history store.
func ClipboardDBPath(getenv func(string) string) string {
	prefs := PreferencesDir(getenv)
	if prefs == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(prefs), "Databases", "clipboard.alfdb")
}

// EnsureDirs creates the workflow data and cache directories.
func (wf Workflow) EnsureDirs() error {
	for _, dir := range []string{wf.DataDir, wf.CacheDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// LogPath returns the workflow log file location inside the data dir.
func (wf Workflow) LogPath() string {
	return filepath.Join(wf.DataDir, "gitopen.log")
}

// DebugEnabled reports whether Alfred's debug console is attached or the
// DEBUG variable is set.
func DebugEnabled(getenv func(string) string) bool {
	if getenv("alfred_debug") == "1" {
		return true
	}
	return getenv("DEBUG") != ""
}

func fallbackBase(getenv func(string) string) string {
	if cache := getenv("XDG_CACHE_HOME"); cache != "" {
		return filepath.Join(cache, "gitopen")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "gitopen")
	}
	return filepath.Join(home, ".cache", "gitopen")
}
