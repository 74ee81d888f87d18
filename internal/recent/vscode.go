// pattern: Imperative Shell

package recent

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/unsafe9/alfred-gitopen/internal/editors"
	"github.com/unsafe9/alfred-gitopen/internal/logging"
)

const recentlyOpenedKey = "history.recentlyOpenedPathsList"

// VSCodeExtractor reads recent-project history from a VS Code-style state
// database: a SQLite key-value store whose history value is an embedded
// JSON document. The store carries no per-entry timestamps, so last-used
// times are correlated from the workspaceStorage metadata directory.
type VSCodeExtractor struct {
	// Home anchors the descriptor's relative state path.
	Home string
	Log  *logging.ScopedLogger
}

// NewVSCodeExtractor creates an extractor anchored at home.
// A nil logger disables logging.
func NewVSCodeExtractor(home string, log *logging.ScopedLogger) *VSCodeExtractor {
	if log == nil {
		log = logging.NopLogger()
	}
	return &VSCodeExtractor{Home: home, Log: log}
}

// openedEntry is one element of the embedded history document. Folder
// entries take precedence over file entries; any other shape is ignored.
type openedEntry struct {
	FolderURI string `json:"folderUri"`
	FileURI   string `json:"fileUri"`
}

type openedPathsList struct {
	Entries []openedEntry `json:"entries"`
}

// Extract returns the recent projects recorded in the editor's state store.
// Entries whose decoded path no longer exists on disk are dropped. Missing
// store, missing key, and parse failures all yield an empty result.
func (e *VSCodeExtractor) Extract(desc editors.Descriptor, appPath string) []Project {
	statePath := filepath.Join(e.Home, filepath.FromSlash(desc.StatePath))
	if _, err := os.Stat(statePath); err != nil {
		e.Log.Debug("state store not found", "path", statePath)
		return nil
	}

	raw, err := e.readRecentlyOpened(statePath)
	if err != nil {
		e.Log.Warn("state store unreadable", "path", statePath, "error", err)
		return nil
	}
	if raw == "" {
		return nil
	}

	var list openedPathsList
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		e.Log.Warn("malformed history document", "path", statePath, "error", err)
		return nil
	}

	// workspaceStorage sits next to globalStorage under the User dir.
	userDir := filepath.Dir(filepath.Dir(statePath))
	index := e.buildWorkspaceIndex(filepath.Join(userDir, "workspaceStorage"))

	var projects []Project
	for _, entry := range list.Entries {
		uri := entry.FolderURI
		if uri == "" {
			uri = entry.FileURI
		}
		if !strings.HasPrefix(uri, "file:///") {
			continue
		}

		path, err := url.PathUnescape(strings.TrimPrefix(uri, "file://"))
		if err != nil {
			e.Log.Debug("undecodable entry URI", "uri", uri, "error", err)
			continue
		}
		if _, err := os.Stat(path); err != nil {
			e.Log.Debug("stale entry dropped", "path", path)
			continue
		}

		projects = append(projects, Project{
			Name:       filepath.Base(path),
			Path:       path,
			Timestamp:  index[uri],
			EditorName: desc.DisplayName,
			AppPath:    appPath,
		})
	}

	return projects
}

// readRecentlyOpened fetches the history value from the store, read-only.
// Returns "" when the key is absent.
func (e *VSCodeExtractor) readRecentlyOpened(statePath string) (string, error) {
	db, err := sql.Open("sqlite", "file:"+statePath+"?mode=ro")
	if err != nil {
		return "", err
	}
	defer func() { _ = db.Close() }()

	var value string
	err = db.QueryRow("SELECT value FROM ItemTable WHERE key = ?", recentlyOpenedKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// buildWorkspaceIndex maps folder URIs to last-used timestamps derived from
// workspaceStorage: each workspace directory names its folder in
// workspace.json, and the directory's mtime approximates last use.
func (e *VSCodeExtractor) buildWorkspaceIndex(storageDir string) map[string]int64 {
	entries, err := os.ReadDir(storageDir)
	if err != nil {
		return nil
	}

	index := make(map[string]int64)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(storageDir, entry.Name(), "workspace.json"))
		if err != nil {
			continue
		}

		var meta struct {
			Folder string `json:"folder"`
		}
		if err := json.Unmarshal(data, &meta); err != nil || meta.Folder == "" {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		index[meta.Folder] = info.ModTime().UnixMilli()
	}

	return index
}
