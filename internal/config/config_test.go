package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFullConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")
	configContent := `
theme: latte
log_level: debug
app_search_paths:
  - /Applications
  - ~/CustomApps
editors:
  - GoLand
  - Cursor
workspace_dir: ~/src
max_depth: 5
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Theme != "latte" {
		t.Errorf("Theme: got %q, want %q", cfg.Theme, "latte")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, "debug")
	}
	if len(cfg.AppSearchPaths) != 2 || cfg.AppSearchPaths[1] != "~/CustomApps" {
		t.Errorf("AppSearchPaths: got %v", cfg.AppSearchPaths)
	}
	if len(cfg.Editors) != 2 || cfg.Editors[0] != "GoLand" {
		t.Errorf("Editors: got %v", cfg.Editors)
	}
	if cfg.WorkspaceDir != "~/src" {
		t.Errorf("WorkspaceDir: got %q", cfg.WorkspaceDir)
	}
	if cfg.MaxDepth != 5 {
		t.Errorf("MaxDepth: got %d", cfg.MaxDepth)
	}
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Theme != "mocha" {
		t.Errorf("Theme: got %q, want default", cfg.Theme)
	}
	if cfg.MaxDepth != 3 {
		t.Errorf("MaxDepth: got %d, want default 3", cfg.MaxDepth)
	}
	if len(cfg.Editors) == 0 {
		t.Error("expected default editors")
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("theme: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(configPath)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	// Defaults still returned so callers can proceed.
	if cfg.Theme != "mocha" {
		t.Errorf("Theme: got %q, want default", cfg.Theme)
	}
}

func TestApplyEnv_Overrides(t *testing.T) {
	cfg := DefaultConfig()
	env := map[string]string{
		"APP_SEARCH_PATHS": "/Apps, ~/Apps ,",
		"IDES_TO_CHECK":    "PyCharm, Cursor",
		"WORKSPACE_DIR":    "~/code",
		"MAX_DEPTH":        "7",
	}
	cfg.ApplyEnv(func(key string) string { return env[key] })

	if len(cfg.AppSearchPaths) != 2 || cfg.AppSearchPaths[0] != "/Apps" || cfg.AppSearchPaths[1] != "~/Apps" {
		t.Errorf("AppSearchPaths: got %v", cfg.AppSearchPaths)
	}
	if len(cfg.Editors) != 2 || cfg.Editors[0] != "PyCharm" {
		t.Errorf("Editors: got %v", cfg.Editors)
	}
	if cfg.WorkspaceDir != "~/code" {
		t.Errorf("WorkspaceDir: got %q", cfg.WorkspaceDir)
	}
	if cfg.MaxDepth != 7 {
		t.Errorf("MaxDepth: got %d", cfg.MaxDepth)
	}
}

func TestApplyEnv_EmptyKeepsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	want := len(cfg.Editors)
	cfg.ApplyEnv(func(string) string { return "" })

	if len(cfg.Editors) != want {
		t.Errorf("Editors changed: got %v", cfg.Editors)
	}
	if cfg.MaxDepth != 3 {
		t.Errorf("MaxDepth: got %d", cfg.MaxDepth)
	}
}

func TestApplyEnv_InvalidDepthIgnored(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyEnv(func(key string) string {
		if key == "MAX_DEPTH" {
			return "not-a-number"
		}
		return ""
	})
	if cfg.MaxDepth != 3 {
		t.Errorf("MaxDepth: got %d, want 3", cfg.MaxDepth)
	}
}

func TestExpandUser(t *testing.T) {
	if got := ExpandUser("~/workspace", "/Users/dev"); got != "/Users/dev/workspace" {
		t.Errorf("got %q", got)
	}
	if got := ExpandUser("~", "/Users/dev"); got != "/Users/dev" {
		t.Errorf("got %q", got)
	}
	if got := ExpandUser("/absolute", "/Users/dev"); got != "/absolute" {
		t.Errorf("got %q", got)
	}
}

func TestResolveSearchPaths(t *testing.T) {
	cfg := Config{AppSearchPaths: []string{"/Applications", "~/Applications"}}
	got := cfg.ResolveSearchPaths("/Users/dev")
	if got[0] != "/Applications" || got[1] != "/Users/dev/Applications" {
		t.Errorf("got %v", got)
	}
}
