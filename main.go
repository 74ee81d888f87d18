// pattern: Imperative Shell
package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"github.com/unsafe9/alfred-gitopen/internal/alfred"
	"github.com/unsafe9/alfred-gitopen/internal/cli"
	"github.com/unsafe9/alfred-gitopen/internal/config"
	"github.com/unsafe9/alfred-gitopen/internal/editors"
	"github.com/unsafe9/alfred-gitopen/internal/instance"
	"github.com/unsafe9/alfred-gitopen/internal/launcher"
	"github.com/unsafe9/alfred-gitopen/internal/logging"
	"github.com/unsafe9/alfred-gitopen/internal/recent"
	"github.com/unsafe9/alfred-gitopen/internal/tui"
)

var version = "dev"

func main() {
	// Stop parsing flags after the first non-flag arg (the subcommand),
	// so that --help after a subcommand is handled by the subcommand.
	flag.CommandLine.SetInterspersed(false)

	configDir := flag.StringP("config-dir", "c", "", "config directory (default: ~/.config/gitopen)")

	// Override flag.Usage before Parse so --help uses the CLI app's help
	flag.Usage = func() {
		app := cli.BuildApp(version, *configDir)
		app.PrintHelp(os.Stderr)
		flag.PrintDefaults()
	}

	flag.Parse()

	app := cli.BuildApp(version, *configDir)

	if app.Execute(flag.Args()) {
		runTUI(*configDir)
	}
}

// loadConfig loads the configuration from the specified directory or the
// default location, then applies Alfred variable overrides.
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

// runTUI launches the interactive project picker.
func runTUI(configDir string) {
	cfg := loadConfig(configDir)

	dataDir := cli.ResolveDataDir(configDir)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Acquire single-instance lock
	fl, err := instance.Lock(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer instance.Cleanup(fl)

	logManager, err := logging.NewManager(logging.Config{
		FilePath:   filepath.Join(dataDir, "gitopen.log"),
		MaxSizeMB:  5,
		MaxBackups: 2,
		MaxAgeDays: 7,
		Level:      cfg.LogLevel,
		Console:    alfred.DebugEnabled(os.Getenv),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logManager.Close() }()

	appLogger := logManager.For("app")
	appLogger.Info("application starting")

	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	agg := recent.NewAggregator(
		editors.ConfiguredFrom(cfg.Editors),
		cfg.ResolveSearchPaths(home),
		home,
		filepath.Join(home, "Library", "Application Support", "JetBrains"),
		logManager,
	)
	projects := agg.Collect()
	appLogger.Info("collected recent projects", "count", len(projects))

	model := tui.NewModel(projects, cfg.Theme, launcher.New(logManager), logManager)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		appLogger.Error("application exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}

	appLogger.Info("application stopped")
}
