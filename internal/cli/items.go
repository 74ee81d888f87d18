// pattern: Functional Core
package cli

import (
	"fmt"
	"time"

	"github.com/unsafe9/alfred-gitopen/internal/alfred"
	"github.com/unsafe9/alfred-gitopen/internal/gitfind"
	"github.com/unsafe9/alfred-gitopen/internal/giturl"
	"github.com/unsafe9/alfred-gitopen/internal/recent"
)

// RecentItems renders aggregated recent projects as script-filter rows.
// The arg carries "app|path" so the open action can launch directly.
func RecentItems(projects []recent.Project) []alfred.Item {
	items := make([]alfred.Item, 0, len(projects))
	for _, proj := range projects {
		subtitle := proj.Path
		if proj.Timestamp > 0 {
			opened := time.UnixMilli(proj.Timestamp).Format("2006-01-02 15:04:05")
			subtitle = fmt.Sprintf("Last Used: %s - %s", opened, proj.Path)
		}
		items = append(items, alfred.Item{
			UID:      proj.Path,
			Title:    fmt.Sprintf("%s (%s)", proj.Name, proj.EditorName),
			Subtitle: subtitle,
			Arg:      proj.AppPath + "|" + proj.Path,
			Valid:    true,
			Icon:     &alfred.Icon{Type: "fileicon", Path: proj.AppPath},
			Mods: map[string]alfred.Mod{
				"cmd": {
					Valid:    true,
					Arg:      proj.Path,
					Subtitle: "Reveal in Finder",
				},
			},
		})
	}
	return items
}

// RepoItems renders scanned repositories. The arg is the bare repository
// path; the next step in the workflow picks the editor.
func RepoItems(repos []gitfind.Repo) []alfred.Item {
	items := make([]alfred.Item, 0, len(repos))
	for _, repo := range repos {
		subtitle := repo.Path
		if repo.Branch != "" {
			subtitle = fmt.Sprintf("%s (%s)", repo.Path, repo.Branch)
		}
		items = append(items, alfred.Item{
			UID:      repo.Path,
			Title:    repo.Name,
			Subtitle: subtitle,
			Arg:      repo.Path,
			Valid:    true,
			Icon:     &alfred.Icon{Type: "fileicon", Path: repo.Path},
		})
	}
	return items
}

// InstalledIDE pairs an editor display name with its resolved app bundle.
type InstalledIDE struct {
	Name    string
	AppPath string
}

// IDEItems renders the editor choices for a repository.
func IDEItems(ides []InstalledIDE, repoPath string) []alfred.Item {
	items := make([]alfred.Item, 0, len(ides))
	for _, ide := range ides {
		items = append(items, alfred.Item{
			Title:    ide.Name,
			Subtitle: ide.AppPath,
			Arg:      ide.AppPath + "|" + repoPath,
			Valid:    true,
			Icon:     &alfred.Icon{Type: "fileicon", Path: ide.AppPath},
		})
	}
	return items
}

// CloneURLItems renders repository URLs harvested from clipboard history.
func CloneURLItems(urls []string) []alfred.Item {
	items := make([]alfred.Item, 0, len(urls))
	for _, u := range urls {
		items = append(items, alfred.Item{
			UID:      u,
			Title:    giturl.RepoName(u),
			Subtitle: fmt.Sprintf("%s • %s", giturl.Domain(u), u),
			Arg:      u,
			Valid:    true,
			Icon:     &alfred.Icon{Type: "default"},
		})
	}
	return items
}
