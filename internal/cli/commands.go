// pattern: Imperative Shell
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/unsafe9/alfred-gitopen/internal/alfred"
	"github.com/unsafe9/alfred-gitopen/internal/clipboard"
	"github.com/unsafe9/alfred-gitopen/internal/config"
	"github.com/unsafe9/alfred-gitopen/internal/editors"
	"github.com/unsafe9/alfred-gitopen/internal/gitfind"
	"github.com/unsafe9/alfred-gitopen/internal/giturl"
	"github.com/unsafe9/alfred-gitopen/internal/instance"
	"github.com/unsafe9/alfred-gitopen/internal/launcher"
	"github.com/unsafe9/alfred-gitopen/internal/logging"
	"github.com/unsafe9/alfred-gitopen/internal/recent"
)

// ResolveDataDir returns the directory for lock and log files. The Alfred
// workflow data dir wins; a config dir override is mainly for development.
func ResolveDataDir(configDir string) string {
	if configDir != "" {
		return configDir
	}
	return alfred.DetectWorkflow(os.Getenv).DataDir
}

// BuildApp creates and configures the CLI application with all commands.
func BuildApp(version string, configDir string) *App {
	app := NewApp(version)

	app.AddCommand(&Command{
		Name:    "recent",
		Summary: "List recently opened projects across installed editors",
		Usage:   "Usage: gitopen recent [query]",
		Run: func(args []string) error {
			return runRecentCommand(configDir, strings.Join(args, " "))
		},
	})

	app.AddCommand(&Command{
		Name:    "repos",
		Summary: "List git repositories under the workspace directory",
		Usage:   "Usage: gitopen repos [query]",
		Run: func(args []string) error {
			return runReposCommand(configDir, strings.Join(args, " "))
		},
	})

	app.AddCommand(&Command{
		Name:    "ides",
		Summary: "List installed editors for a repository path",
		Usage:   "Usage: gitopen ides <repo-path>",
		Run: func(args []string) error {
			return runIDEsCommand(configDir, args)
		},
	})

	app.AddCommand(&Command{
		Name:    "clipboard",
		Summary: "Find git repository URLs in Alfred clipboard history",
		Usage:   "Usage: gitopen clipboard",
		Run: func(args []string) error {
			return runClipboardCommand(configDir)
		},
	})

	app.AddCommand(&Command{
		Name:    "open",
		Summary: "Open a project with an editor (arg: app|path)",
		Usage:   "Usage: gitopen open <app-path>|<repo-path>",
		Run: func(args []string) error {
			return runOpenCommand(configDir, args)
		},
	})

	app.AddCommand(&Command{
		Name:    "notify",
		Summary: "Post a macOS notification",
		Usage:   "Usage: gitopen notify <title> <message>",
		Run: func(args []string) error {
			return runNotifyCommand(args)
		},
	})

	app.AddCommand(&Command{
		Name:    "cleanup",
		Summary: "Remove a stale lock file from a crashed instance",
		Usage:   "Usage: gitopen cleanup",
		Run: func(args []string) error {
			return runCleanupCommand(configDir)
		},
	})

	app.AddCommand(&Command{
		Name:    "version",
		Summary: "Print version and exit",
		Usage:   "Usage: gitopen version",
		Run: func(args []string) error {
			fmt.Println(version)
			return nil
		},
	})

	return app
}

// loadConfig loads the YAML config and applies Alfred variable overrides.
func loadConfig(configDir string) config.Config {
	var cfg config.Config
	var err error
	if configDir != "" {
		cfg, err = config.LoadFrom(filepath.Join(configDir, "config.yaml"))
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg
}

// newLogManager sets up file logging in the workflow data dir. Commands run
// as Alfred script filters, so stdout stays reserved for JSON and a logging
// failure degrades to a no-op provider.
func newLogManager(configDir, level string) logging.LoggerProvider {
	dataDir := ResolveDataDir(configDir)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil
	}
	mgr, err := logging.NewManager(logging.Config{
		FilePath:   filepath.Join(dataDir, "gitopen.log"),
		MaxSizeMB:  5,
		MaxBackups: 2,
		MaxAgeDays: 7,
		Level:      level,
		Console:    alfred.DebugEnabled(os.Getenv),
	})
	if err != nil {
		return nil
	}
	return mgr
}

// writeFeedback emits the script-filter document on stdout.
func writeFeedback(items []alfred.Item) error {
	fb := alfred.NewFeedback()
	fb.Items = append(fb.Items, items...)
	return fb.Write(os.Stdout)
}

func runRecentCommand(configDir, query string) error {
	cfg := loadConfig(configDir)
	logs := newLogManager(configDir, cfg.LogLevel)

	home, err := os.UserHomeDir()
	if err != nil {
		return writeFeedback([]alfred.Item{alfred.ErrorItem("Cannot resolve home directory", err.Error())})
	}

	agg := recent.NewAggregator(
		editors.ConfiguredFrom(cfg.Editors),
		cfg.ResolveSearchPaths(home),
		home,
		filepath.Join(home, "Library", "Application Support", "JetBrains"),
		logs,
	)
	projects := agg.Collect()

	items := alfred.FilterItems(RecentItems(projects), query)
	if len(items) == 0 {
		items = []alfred.Item{alfred.NoResultsItem("No recent projects found. Check your editor list and app search paths.")}
	}
	return writeFeedback(items)
}

func runReposCommand(configDir, query string) error {
	cfg := loadConfig(configDir)
	logs := newLogManager(configDir, cfg.LogLevel)

	home, err := os.UserHomeDir()
	if err != nil {
		return writeFeedback([]alfred.Item{alfred.ErrorItem("Cannot resolve home directory", err.Error())})
	}

	workspace := cfg.ResolveWorkspaceDir(home)
	if info, err := os.Stat(workspace); err != nil || !info.IsDir() {
		_ = writeFeedback([]alfred.Item{alfred.ErrorItem(
			"Workspace directory is not set or invalid",
			fmt.Sprintf("Set WORKSPACE_DIR or workspace_dir in the config. Current value: %q", workspace),
		)})
		os.Exit(1)
	}

	scanner := gitfind.NewScanner(cfg.MaxDepth, logs)
	repos := scanner.ScanAll([]string{workspace})

	items := alfred.FilterItems(RepoItems(repos), query)
	if len(items) == 0 {
		items = []alfred.Item{alfred.NoResultsItem("No git repositories found in " + workspace)}
	}
	return writeFeedback(items)
}

func runIDEsCommand(configDir string, args []string) error {
	if len(args) < 1 || strings.TrimSpace(args[0]) == "" {
		_ = writeFeedback([]alfred.Item{alfred.ErrorItem(
			"No repository path provided",
			"This command expects a repository path as an argument.",
		)})
		os.Exit(1)
	}
	repoPath := args[0]

	cfg := loadConfig(configDir)
	home, err := os.UserHomeDir()
	if err != nil {
		return writeFeedback([]alfred.Item{alfred.ErrorItem("Cannot resolve home directory", err.Error())})
	}
	searchDirs := cfg.ResolveSearchPaths(home)

	var installed []InstalledIDE
	for _, configured := range editors.ConfiguredFrom(cfg.Editors) {
		desc, ok := editors.Match(configured.DisplayName)
		if !ok {
			continue
		}
		appPath, ok := editors.FindApp(desc.AppBundle, searchDirs)
		if !ok {
			continue
		}
		installed = append(installed, InstalledIDE{Name: configured.DisplayName, AppPath: appPath})
	}

	items := IDEItems(installed, repoPath)
	if len(items) == 0 {
		items = []alfred.Item{alfred.NoResultsItem("No supported editors found in the app search paths.")}
	}
	return writeFeedback(items)
}

func runClipboardCommand(configDir string) error {
	cfg := loadConfig(configDir)
	logs := newLogManager(configDir, cfg.LogLevel)

	history := clipboard.NewHistory(alfred.ClipboardDBPath(os.Getenv), logs)
	entries, err := history.RecentText(clipboard.DefaultLimit)
	if err != nil {
		return writeFeedback([]alfred.Item{alfred.ErrorItem("Failed to read clipboard history", err.Error())})
	}
	if len(entries) == 0 {
		return writeFeedback([]alfred.Item{alfred.NoResultsItem("Unable to access Alfred's clipboard history")})
	}

	var urls []string
	seen := make(map[string]bool)
	for _, entry := range entries {
		for _, u := range giturl.ExtractURLs(entry) {
			if !seen[u] {
				seen[u] = true
				urls = append(urls, u)
			}
		}
	}

	if len(urls) == 0 {
		return writeFeedback([]alfred.Item{alfred.NoResultsItem(
			fmt.Sprintf("No git repository URLs found in %d clipboard entries", len(entries)),
		)})
	}
	return writeFeedback(CloneURLItems(urls))
}

func runOpenCommand(configDir string, args []string) error {
	appPath, projectPath, err := launcher.SplitOpenArg(strings.Join(args, " "))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := loadConfig(configDir)
	l := launcher.New(newLogManager(configDir, cfg.LogLevel))
	if err := l.OpenWithApp(appPath, projectPath); err != nil {
		l.Notify("gitopen", fmt.Sprintf("Failed to open %s", projectPath))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Success: Opened %s with %s\n", projectPath, appPath)
	return nil
}

func runNotifyCommand(args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: gitopen notify <title> <message>")
		os.Exit(1)
	}
	launcher.New(nil).Notify(args[0], strings.Join(args[1:], " "))
	return nil
}

// runCleanupCommand removes a stale lock file from a crashed instance.
func runCleanupCommand(configDir string) error {
	dataDir := ResolveDataDir(configDir)

	// Try to acquire the lock to verify no instance is actually running
	fl, err := instance.Lock(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: a gitopen instance appears to be running. Stop it first.\n")
		os.Exit(1)
	}
	// We got the lock, so no instance is running. Release it.
	instance.Cleanup(fl)
	fmt.Println("Cleaned up stale lock file.")
	return nil
}
