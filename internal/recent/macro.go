// pattern: Functional Core

package recent

import (
	"path/filepath"
	"strings"
)

// MacroTable maps bracketed placeholder tokens (e.g. "$USER_HOME$") to
// literal filesystem prefixes. A table is scoped to one editor's config
// root and rebuilt fresh per extraction; it is never shared across editors.
type MacroTable map[string]string

// NewMacroTable returns a table seeded with the implicit $USER_HOME$ entry.
// The entry exists even when the source config does not define it.
func NewMacroTable(home string) MacroTable {
	return MacroTable{"$USER_HOME$": home}
}

// Define registers a macro under its bracketed form. Entries missing a name
// or a value are ignored.
func (t MacroTable) Define(name, value string) {
	if name == "" || value == "" {
		return
	}
	t["$"+name+"$"] = value
}

// Resolve substitutes every known placeholder in raw and canonicalizes the
// result. ok is false when a placeholder marker survives substitution; the
// caller must discard that entry rather than emit a partially substituted
// path.
func (t MacroTable) Resolve(raw string) (string, bool) {
	path := raw
	for macro, value := range t {
		path = strings.ReplaceAll(path, macro, value)
	}
	if strings.Contains(path, "$") {
		return "", false
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	return filepath.Clean(path), true
}
