package alfred

import (
	"os"
	"path/filepath"
	"testing"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestDetectWorkflow_UsesAlfredDirs(t *testing.T) {
	wf := DetectWorkflow(envMap(map[string]string{
		"alfred_workflow_bundleid": "com.example.gitopen",
		"alfred_workflow_data":     "/data/gitopen",
		"alfred_workflow_cache":    "/cache/gitopen",
	}))

	if wf.BundleID != "com.example.gitopen" {
		t.Errorf("BundleID: got %q", wf.BundleID)
	}
	if wf.DataDir != "/data/gitopen" || wf.CacheDir != "/cache/gitopen" {
		t.Errorf("dirs: %+v", wf)
	}
}

func TestDetectWorkflow_FallsBackOutsideAlfred(t *testing.T) {
	cacheHome := t.TempDir()
	wf := DetectWorkflow(envMap(map[string]string{
		"XDG_CACHE_HOME": cacheHome,
	}))

	if wf.DataDir != filepath.Join(cacheHome, "gitopen", "data") {
		t.Errorf("DataDir: got %q", wf.DataDir)
	}
	if wf.CacheDir != filepath.Join(cacheHome, "gitopen", "cache") {
		t.Errorf("CacheDir: got %q", wf.CacheDir)
	}
}

func TestWorkflowEnsureDirs(t *testing.T) {
	base := t.TempDir()
	wf := Workflow{
		DataDir:  filepath.Join(base, "data"),
		CacheDir: filepath.Join(base, "cache"),
	}
	if err := wf.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs failed: %v", err)
	}
	for _, dir := range []string{wf.DataDir, wf.CacheDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("missing dir %s: %v", dir, err)
		}
	}
}

func TestWorkflowLogPath(t *testing.T) {
	wf := Workflow{DataDir: "/data/gitopen"}
	if got := wf.LogPath(); got != filepath.Join("/data/gitopen", "gitopen.log") {
		t.Errorf("got %q", got)
	}
}

func TestPreferencesDir_ExplicitOverride(t *testing.T) {
	got := PreferencesDir(envMap(map[string]string{
		"ALFRED_PREFERENCES_PATH": "/custom/Alfred.alfredpreferences",
	}))
	if got != "/custom/Alfred.alfredpreferences" {
		t.Errorf("got %q", got)
	}
}

func TestClipboardDBPath_DerivedFromPreferences(t *testing.T) {
	got := ClipboardDBPath(envMap(map[string]string{
		"alfred_preferences": "/sync/Alfred.alfredpreferences",
	}))
	want := filepath.Join("/sync", "Databases", "clipboard.alfdb")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDebugEnabled(t *testing.T) {
	if !DebugEnabled(envMap(map[string]string{"alfred_debug": "1"})) {
		t.Error("alfred_debug=1 should enable debug")
	}
	if !DebugEnabled(envMap(map[string]string{"DEBUG": "yes"})) {
		t.Error("DEBUG should enable debug")
	}
	if DebugEnabled(envMap(nil)) {
		t.Error("no vars should disable debug")
	}
}
