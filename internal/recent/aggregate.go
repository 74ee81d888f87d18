// pattern: Imperative Shell

package recent

import (
	"sort"

	"github.com/unsafe9/alfred-gitopen/internal/editors"
	"github.com/unsafe9/alfred-gitopen/internal/logging"
)

// Aggregator runs the applicable extractor for each configured editor and
// merges the results into one recency-ordered list. Editors are processed
// strictly one at a time; extractors share no state.
type Aggregator struct {
	Editors    []editors.Configured
	SearchDirs []string
	TreeMacro  Extractor
	Embedded   Extractor
	Log        *logging.ScopedLogger

	// findApp is swappable for tests; defaults to editors.FindApp.
	findApp func(bundle string, dirs []string) (string, bool)
}

// NewAggregator wires an aggregator with the standard extractors for the
// given home directory. A nil provider disables logging.
func NewAggregator(configured []editors.Configured, searchDirs []string, home, jetbrainsDir string, logs logging.LoggerProvider) *Aggregator {
	var log *logging.ScopedLogger
	if logs != nil {
		log = logs.For("recent")
	} else {
		log = logging.NopLogger()
	}
	return &Aggregator{
		Editors:    configured,
		SearchDirs: searchDirs,
		TreeMacro:  NewJetBrainsExtractor(jetbrainsDir, home, log),
		Embedded:   NewVSCodeExtractor(home, log),
		Log:        log,
		findApp:    editors.FindApp,
	}
}

// Collect gathers recent projects across all configured editors, most
// recently used first. Ties (including unknown timestamps) keep their
// insertion order: registry order, then extractor emission order. An empty
// result is a normal terminal state, not an error.
func (a *Aggregator) Collect() []Project {
	findApp := a.findApp
	if findApp == nil {
		findApp = editors.FindApp
	}

	var all []Project
	for _, configured := range a.Editors {
		desc, ok := editors.Match(configured.DisplayName)
		if !ok {
			a.Log.Debug("unsupported editor skipped", "id", configured.ID)
			continue
		}

		appPath, ok := findApp(desc.AppBundle, a.SearchDirs)
		if !ok {
			a.Log.Debug("editor not installed", "bundle", desc.AppBundle)
			continue
		}

		var ext Extractor
		switch desc.Family {
		case editors.FamilyTreeMacro:
			ext = a.TreeMacro
		case editors.FamilyEmbeddedDoc:
			ext = a.Embedded
		}
		if ext == nil {
			continue
		}

		projects := ext.Extract(desc, appPath)
		a.Log.Debug("editor scanned", "editor", desc.DisplayName, "count", len(projects))
		all = append(all, projects...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp > all[j].Timestamp
	})
	return all
}
