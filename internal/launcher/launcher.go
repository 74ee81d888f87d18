// pattern: Imperative Shell
package launcher

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/unsafe9/alfred-gitopen/internal/logging"
)

// Runner executes an external command. Injected so tests can record the
// invocations instead of spawning processes.
type Runner func(name string, args ...string) error

func execRunner(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// Launcher opens paths in applications via the macOS open command.
type Launcher struct {
	Run Runner
	Log *logging.ScopedLogger
}

func New(logs logging.LoggerProvider) *Launcher {
	var log *logging.ScopedLogger
	if logs != nil {
		log = logs.For("launcher")
	} else {
		log = logging.NopLogger()
	}
	return &Launcher{Run: execRunner, Log: log}
}

// OpenWithApp opens projectPath in the application at appPath.
func (l *Launcher) OpenWithApp(appPath, projectPath string) error {
	if strings.TrimSpace(appPath) == "" || strings.TrimSpace(projectPath) == "" {
		return fmt.Errorf("launcher: app path and project path must be non-empty")
	}
	l.Log.Info("opening project", "app", appPath, "path", projectPath)
	if err := l.Run("open", "-a", appPath, projectPath); err != nil {
		return fmt.Errorf("open %s with %s: %w", projectPath, appPath, err)
	}
	return nil
}

// OpenInFinder reveals the path in Finder.
func (l *Launcher) OpenInFinder(path string) error {
	if err := l.Run("open", path); err != nil {
		return fmt.Errorf("open %s in Finder: %w", path, err)
	}
	return nil
}

// OpenInTerminal opens a Terminal window at the path.
func (l *Launcher) OpenInTerminal(path string) error {
	if err := l.Run("open", "-a", "Terminal", path); err != nil {
		return fmt.Errorf("open %s in Terminal: %w", path, err)
	}
	return nil
}

// Notify posts a macOS notification. Failures are logged and swallowed,
// a missed notification never fails the surrounding action.
func (l *Launcher) Notify(title, message string) {
	script := fmt.Sprintf("display notification %q with title %q", message, title)
	if err := l.Run("osascript", "-e", script); err != nil {
		l.Log.Warn("notification failed", "title", title, "error", err)
	}
}

// SplitOpenArg parses the "app|path" argument Alfred hands to the open
// action.
func SplitOpenArg(arg string) (appPath, projectPath string, err error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", "", fmt.Errorf("launcher: empty argument, expected app|path")
	}
	app, path, found := strings.Cut(arg, "|")
	if !found {
		return "", "", fmt.Errorf("launcher: invalid argument %q, expected app|path", arg)
	}
	app, path = strings.TrimSpace(app), strings.TrimSpace(path)
	if app == "" || path == "" {
		return "", "", fmt.Errorf("launcher: invalid argument %q, expected app|path", arg)
	}
	return app, path, nil
}
