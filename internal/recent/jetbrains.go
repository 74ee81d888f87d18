// pattern: Imperative Shell

package recent

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/unsafe9/alfred-gitopen/internal/editors"
	"github.com/unsafe9/alfred-gitopen/internal/logging"
)

// JetBrainsExtractor reads recent-project history from a JetBrains-style
// config root: an XML document whose stored paths contain $MACRO$
// placeholders resolved against the document's own PathMacros table.
type JetBrainsExtractor struct {
	// ConfigDir is the directory holding per-product config roots,
	// normally ~/Library/Application Support/JetBrains.
	ConfigDir string
	// Home seeds the implicit $USER_HOME$ macro.
	Home string
	Log  *logging.ScopedLogger
}

// NewJetBrainsExtractor creates an extractor rooted at configDir.
// A nil logger disables logging.
func NewJetBrainsExtractor(configDir, home string, log *logging.ScopedLogger) *JetBrainsExtractor {
	if log == nil {
		log = logging.NopLogger()
	}
	return &JetBrainsExtractor{ConfigDir: configDir, Home: home, Log: log}
}

// Extract returns the recent projects recorded by the given product.
// Missing or malformed state yields an empty result. Stored paths are NOT
// checked for existence on disk, so stale entries may surface.
func (e *JetBrainsExtractor) Extract(desc editors.Descriptor, appPath string) []Project {
	root, ok := e.selectConfigRoot(desc.Product)
	if !ok {
		e.Log.Debug("no config root found", "product", desc.Product)
		return nil
	}

	xmlPath := filepath.Join(root, "options", desc.RecentFile)
	data, err := os.ReadFile(xmlPath)
	if err != nil {
		e.Log.Debug("recent file unreadable", "path", xmlPath, "error", err)
		return nil
	}

	var doc ideaComponents
	if err := xml.Unmarshal(data, &doc); err != nil {
		e.Log.Warn("malformed recent file", "path", xmlPath, "error", err)
		return nil
	}

	table := NewMacroTable(e.Home)
	for _, c := range doc.Components {
		if c.Name != "PathMacros" {
			continue
		}
		for _, m := range c.Macros {
			table.Define(m.Name, m.Value)
		}
		break
	}

	var projects []Project
	for _, entry := range doc.recentEntries() {
		path, ok := table.Resolve(entry.Key)
		if !ok {
			e.Log.Debug("unresolved macro in stored path", "raw", entry.Key)
			continue
		}

		ts, ok := entry.activationTimestamp()
		if !ok {
			e.Log.Debug("entry without activation timestamp", "path", path)
			continue
		}

		projects = append(projects, Project{
			Name:       filepath.Base(path),
			Path:       path,
			Timestamp:  ts,
			EditorName: desc.DisplayName,
			AppPath:    appPath,
		})
	}

	return projects
}

// selectConfigRoot picks one config root among the installed versions of a
// product: the directory name that sorts last under reverse lexicographic
// ordering. (This misorders e.g. "2023.10" before "2023.9"; preserved as
// the established selection behavior.)
func (e *JetBrainsExtractor) selectConfigRoot(product string) (string, bool) {
	matches, err := filepath.Glob(filepath.Join(e.ConfigDir, product+"*"))
	if err != nil || len(matches) == 0 {
		return "", false
	}
	sort.Sort(sort.Reverse(sort.StringSlice(matches)))
	return matches[0], true
}

// ideaComponents mirrors just enough of the IDE's application-level XML:
// <application><component name="...">...</component></application>.
type ideaComponents struct {
	Components []ideaComponent `xml:"component"`
}

type ideaComponent struct {
	Name    string       `xml:"name,attr"`
	Macros  []ideaMacro  `xml:"macro"`
	Options []ideaOption `xml:"option"`
}

type ideaMacro struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type ideaOption struct {
	Name  string   `xml:"name,attr"`
	Value string   `xml:"value,attr"`
	Map   *ideaMap `xml:"map"`
}

type ideaMap struct {
	Entries []ideaEntry `xml:"entry"`
}

type ideaEntry struct {
	Key   string         `xml:"key,attr"`
	Value ideaEntryValue `xml:"value"`
}

type ideaEntryValue struct {
	Meta *ideaMetaInfo `xml:"RecentProjectMetaInfo"`
}

type ideaMetaInfo struct {
	Options []ideaOption `xml:"option"`
}

// recentEntries returns the additionalInfo map entries of the
// RecentProjectsManager component, keyed by stored (macro-bearing) path.
func (d *ideaComponents) recentEntries() []ideaEntry {
	for _, c := range d.Components {
		if c.Name != "RecentProjectsManager" {
			continue
		}
		for _, opt := range c.Options {
			if opt.Name == "additionalInfo" && opt.Map != nil {
				return opt.Map.Entries
			}
		}
	}
	return nil
}

// activationTimestamp extracts the entry's last-used time in milliseconds.
func (e ideaEntry) activationTimestamp() (int64, bool) {
	if e.Value.Meta == nil {
		return 0, false
	}
	for _, opt := range e.Value.Meta.Options {
		if opt.Name != "activationTimestamp" {
			continue
		}
		ts, err := strconv.ParseInt(opt.Value, 10, 64)
		if err != nil {
			return 0, false
		}
		return ts, true
	}
	return 0, false
}
