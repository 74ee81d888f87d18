// pattern: Functional Core
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds workflow settings. File values come from the YAML config;
// Alfred workflow variables (environment) override them per ApplyEnv.
type Config struct {
	Theme          string   `yaml:"theme"`
	LogLevel       string   `yaml:"log_level"`
	AppSearchPaths []string `yaml:"app_search_paths"`
	Editors        []string `yaml:"editors"`
	WorkspaceDir   string   `yaml:"workspace_dir"`
	MaxDepth       int      `yaml:"max_depth"`
}

// GetenvFunc is the function signature for environment lookups.
type GetenvFunc func(key string) string

func DefaultConfig() Config {
	return Config{
		Theme:          "mocha",
		LogLevel:       "info",
		AppSearchPaths: []string{"/Applications", "~/Applications"},
		Editors: []string{
			"Visual Studio Code",
			"Cursor",
			"GoLand",
			"Rider",
			"WebStorm",
			"IntelliJ IDEA",
		},
		WorkspaceDir: "~/workspace",
		MaxDepth:     3,
	}
}

func Load() (Config, error) {
	return LoadFrom(getConfigPath())
}

func LoadFrom(configPath string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}

	if cfg.Theme == "" {
		cfg.Theme = "mocha"
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 3
	}

	return cfg, nil
}

// ApplyEnv overlays Alfred workflow variables onto the config. Empty
// variables leave the corresponding field untouched.
func (c *Config) ApplyEnv(getenv GetenvFunc) {
	if paths := splitList(getenv("APP_SEARCH_PATHS")); len(paths) > 0 {
		c.AppSearchPaths = paths
	}
	if editors := splitList(getenv("IDES_TO_CHECK")); len(editors) > 0 {
		c.Editors = editors
	}
	if dir := strings.TrimSpace(getenv("WORKSPACE_DIR")); dir != "" {
		c.WorkspaceDir = dir
	}
	if raw := strings.TrimSpace(getenv("MAX_DEPTH")); raw != "" {
		if depth, err := strconv.Atoi(raw); err == nil && depth > 0 {
			c.MaxDepth = depth
		}
	}
}

// ResolveSearchPaths expands each app search path against home.
func (c Config) ResolveSearchPaths(home string) []string {
	out := make([]string, 0, len(c.AppSearchPaths))
	for _, p := range c.AppSearchPaths {
		out = append(out, ExpandUser(p, home))
	}
	return out
}

// ResolveWorkspaceDir expands the workspace directory against home.
func (c Config) ResolveWorkspaceDir(home string) string {
	return ExpandUser(c.WorkspaceDir, home)
}

// ExpandUser replaces a leading ~ with the home directory.
func ExpandUser(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "gitopen", "config.yaml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "gitopen", "config.yaml")
	}

	return filepath.Join(home, ".config", "gitopen", "config.yaml")
}
