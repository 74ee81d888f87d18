package recent

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/unsafe9/alfred-gitopen/internal/editors"
	"github.com/unsafe9/alfred-gitopen/internal/logging"
)

// stubExtractor emits a fixed set of projects regardless of descriptor.
type stubExtractor struct {
	projects []Project
}

func (s stubExtractor) Extract(desc editors.Descriptor, appPath string) []Project {
	out := make([]Project, len(s.projects))
	copy(out, s.projects)
	for i := range out {
		out[i].EditorName = desc.DisplayName
		out[i].AppPath = appPath
	}
	return out
}

func TestCollect_SortsByRecency(t *testing.T) {
	agg := &Aggregator{
		Editors: editors.ConfiguredFrom([]string{"GoLand", "Cursor"}),
		Log:     logging.NopLogger(),
		TreeMacro: stubExtractor{projects: []Project{
			{Name: "old", Path: "/p/old", Timestamp: 100},
		}},
		Embedded: stubExtractor{projects: []Project{
			{Name: "new", Path: "/p/new", Timestamp: 200},
		}},
		findApp: func(bundle string, dirs []string) (string, bool) { return "/Applications/" + bundle, true },
	}

	got := agg.Collect()
	if len(got) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(got))
	}
	if got[0].Name != "new" || got[1].Name != "old" {
		t.Errorf("expected recency order [new old], got [%s %s]", got[0].Name, got[1].Name)
	}
}

func TestCollect_StableOrderForEqualTimestamps(t *testing.T) {
	agg := &Aggregator{
		Editors: editors.ConfiguredFrom([]string{"GoLand", "Cursor"}),
		Log:     logging.NopLogger(),
		TreeMacro: stubExtractor{projects: []Project{
			{Name: "first", Timestamp: 0},
			{Name: "second", Timestamp: 0},
		}},
		Embedded: stubExtractor{projects: []Project{
			{Name: "third", Timestamp: 0},
		}},
		findApp: func(bundle string, dirs []string) (string, bool) { return "/Applications/" + bundle, true },
	}

	got := agg.Collect()
	if len(got) != 3 {
		t.Fatalf("expected 3 projects, got %d", len(got))
	}
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Name != want {
			t.Errorf("position %d: got %s, want %s", i, got[i].Name, want)
		}
	}
}

func TestCollect_SkipsUnknownAndNotInstalledEditors(t *testing.T) {
	agg := &Aggregator{
		Editors: editors.ConfiguredFrom([]string{"Emacs", "GoLand", "Cursor"}),
		Log:     logging.NopLogger(),
		TreeMacro: stubExtractor{projects: []Project{
			{Name: "kept", Timestamp: 10},
		}},
		Embedded: stubExtractor{projects: []Project{
			{Name: "never", Timestamp: 20},
		}},
		findApp: func(bundle string, dirs []string) (string, bool) {
			// Only GoLand is installed.
			return "/Applications/" + bundle, bundle == "GoLand.app"
		},
	}

	got := agg.Collect()
	if len(got) != 1 {
		t.Fatalf("expected 1 project, got %d", len(got))
	}
	if got[0].Name != "kept" {
		t.Errorf("got %s", got[0].Name)
	}
}

func TestCollect_EmptyIsNotAnError(t *testing.T) {
	agg := &Aggregator{
		Editors: editors.ConfiguredFrom([]string{"GoLand"}),
		Log:     logging.NopLogger(),
		findApp: func(string, []string) (string, bool) { return "", false },
	}
	if got := agg.Collect(); len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

// TestCollect_EndToEnd drives the real extractors against on-disk fixtures:
// a JetBrains root with one valid entry (ts 100) and one entry with an
// undefined macro, plus a Cursor state store with one live entry (ts 200
// via workspaceStorage) and one stale entry.
func TestCollect_EndToEnd(t *testing.T) {
	home := t.TempDir()
	jetbrainsDir := filepath.Join(home, "Library", "Application Support", "JetBrains")

	writeRecentProjectsXML(t, jetbrainsDir, "GoLand2023.3", recentXML(
		entryXML("$USER_HOME$/alpha", 100)+"\n"+entryXML("$GHOST$/beta", 400),
	))

	liveDir := filepath.Join(home, "bravo")
	if err := os.MkdirAll(liveDir, 0755); err != nil {
		t.Fatal(err)
	}
	staleDir := filepath.Join(home, "charlie")

	cursorHome := filepath.Join(home, "Library", "Application Support", "Cursor")
	history := fmt.Sprintf(`{"entries": [{"folderUri": %q}, {"folderUri": %q}]}`,
		"file://"+liveDir, "file://"+staleDir)
	writeStateDB(t, cursorHome, history)
	writeWorkspaceMeta(t, cursorHome, "ws1", "file://"+liveDir, time.UnixMilli(200))

	agg := NewAggregator(
		editors.ConfiguredFrom([]string{"GoLand", "Cursor"}),
		nil, home, jetbrainsDir, nil,
	)
	agg.findApp = func(bundle string, dirs []string) (string, bool) {
		return "/Applications/" + bundle, true
	}

	got := agg.Collect()
	if len(got) != 2 {
		t.Fatalf("expected exactly 2 projects, got %d: %+v", len(got), got)
	}
	if got[0].Name != "bravo" || got[0].Timestamp != 200 {
		t.Errorf("first: got %s (%d), want bravo (200)", got[0].Name, got[0].Timestamp)
	}
	if got[1].Name != "alpha" || got[1].Timestamp != 100 {
		t.Errorf("second: got %s (%d), want alpha (100)", got[1].Name, got[1].Timestamp)
	}
	if got[0].EditorName != "Cursor" || got[1].EditorName != "GoLand" {
		t.Errorf("editor names: %s, %s", got[0].EditorName, got[1].EditorName)
	}
}
