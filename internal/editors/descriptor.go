// pattern: Functional Core
package editors

import "strings"

// Family identifies which extraction strategy an editor's recent-project
// state requires.
type Family int

const (
	// FamilyTreeMacro is the JetBrains-style store: an XML tree whose paths
	// contain $MACRO$ placeholders.
	FamilyTreeMacro Family = iota
	// FamilyEmbeddedDoc is the VS Code-style store: a key-value SQLite
	// database holding an embedded JSON document.
	FamilyEmbeddedDoc
)

// Descriptor is the static configuration for one supported editor.
type Descriptor struct {
	ID          string
	DisplayName string
	Family      Family

	// AppBundle is the bundle name used for installed-app lookup,
	// e.g. "GoLand.app".
	AppBundle string

	// Product is the config directory prefix under the JetBrains support
	// directory (TreeMacro only), e.g. "GoLand" matching "GoLand2023.3".
	Product string

	// RecentFile is the XML file name under options/ (TreeMacro only).
	// Rider uses recentSolutions.xml; everything else recentProjects.xml.
	RecentFile string

	// StatePath is the state database path relative to the home directory
	// (EmbeddedDoc only).
	StatePath string
}

// Configured is one entry of the ordered configured-editor list.
type Configured struct {
	ID          string
	DisplayName string
}

type product struct {
	fragment string
	desc     Descriptor
}

// Matching is by lowercase fragment containment, checked in declaration
// order so that overlapping fragments resolve deterministically.
var jetbrainsProducts = []product{
	{"goland", Descriptor{AppBundle: "GoLand.app", Product: "GoLand", RecentFile: "recentProjects.xml"}},
	{"rider", Descriptor{AppBundle: "Rider.app", Product: "Rider", RecentFile: "recentSolutions.xml"}},
	{"webstorm", Descriptor{AppBundle: "WebStorm.app", Product: "WebStorm", RecentFile: "recentProjects.xml"}},
	{"intellij idea", Descriptor{AppBundle: "IntelliJ IDEA.app", Product: "IntelliJIdea", RecentFile: "recentProjects.xml"}},
	{"pycharm", Descriptor{AppBundle: "PyCharm.app", Product: "PyCharm", RecentFile: "recentProjects.xml"}},
	{"phpstorm", Descriptor{AppBundle: "PhpStorm.app", Product: "PhpStorm", RecentFile: "recentProjects.xml"}},
	{"rubymine", Descriptor{AppBundle: "RubyMine.app", Product: "RubyMine", RecentFile: "recentProjects.xml"}},
	{"clion", Descriptor{AppBundle: "CLion.app", Product: "CLion", RecentFile: "recentProjects.xml"}},
	{"datagrip", Descriptor{AppBundle: "DataGrip.app", Product: "DataGrip", RecentFile: "recentProjects.xml"}},
	{"appcode", Descriptor{AppBundle: "AppCode.app", Product: "AppCode", RecentFile: "recentProjects.xml"}},
}

var vscodeProducts = []product{
	{"code - insiders", Descriptor{
		AppBundle: "Visual Studio Code - Insiders.app",
		StatePath: "Library/Application Support/Code - Insiders/User/globalStorage/state.vscdb",
	}},
	{"visual studio code", Descriptor{
		AppBundle: "Visual Studio Code.app",
		StatePath: "Library/Application Support/Code/User/globalStorage/state.vscdb",
	}},
	{"vscode", Descriptor{
		AppBundle: "Visual Studio Code.app",
		StatePath: "Library/Application Support/Code/User/globalStorage/state.vscdb",
	}},
	{"cursor", Descriptor{
		AppBundle: "Cursor.app",
		StatePath: "Library/Application Support/Cursor/User/globalStorage/state.vscdb",
	}},
}

// NormalizeID derives a stable identifier from a display name:
// lowercase with spaces and dots removed.
func NormalizeID(name string) string {
	id := strings.ToLower(name)
	id = strings.ReplaceAll(id, " ", "")
	id = strings.ReplaceAll(id, ".", "")
	return id
}

// ConfiguredFrom builds the ordered configured-editor list from display
// names, preserving order.
func ConfiguredFrom(names []string) []Configured {
	var out []Configured
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, Configured{ID: NormalizeID(name), DisplayName: name})
	}
	return out
}

// Match resolves a display name to its editor descriptor. Fragment
// containment lets "IntelliJ IDEA Ultimate" still resolve. Returns false for
// editors with no known descriptor; callers skip those silently.
func Match(displayName string) (Descriptor, bool) {
	lower := strings.ToLower(displayName)

	for _, p := range jetbrainsProducts {
		if strings.Contains(lower, p.fragment) {
			d := p.desc
			d.ID = NormalizeID(displayName)
			d.DisplayName = displayName
			d.Family = FamilyTreeMacro
			return d, true
		}
	}

	for _, p := range vscodeProducts {
		if strings.Contains(lower, p.fragment) {
			d := p.desc
			d.ID = NormalizeID(displayName)
			d.DisplayName = displayName
			d.Family = FamilyEmbeddedDoc
			return d, true
		}
	}

	return Descriptor{}, false
}
