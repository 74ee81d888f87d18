// pattern: Functional Core

package recent

import "github.com/unsafe9/alfred-gitopen/internal/editors"

// Project represents one recently opened project surfaced by an editor.
type Project struct {
	Name       string // Final path segment, used as the display label
	Path       string // Absolute, macro-free filesystem path
	Timestamp  int64  // Milliseconds since epoch; 0 means unknown
	EditorName string // Display name of the owning editor
	AppPath    string // Absolute path of the editor's app bundle
}

// Extractor produces recent projects for one editor family.
// A failed or missing state store yields an empty result, never an error:
// per-editor extraction failures must not abort the aggregation.
type Extractor interface {
	Extract(desc editors.Descriptor, appPath string) []Project
}
