// pattern: Functional Core
package alfred

import (
	"encoding/json"
	"io"
	"strings"
)

// Icon references an icon file or a file-type icon.
type Icon struct {
	Path string `json:"path,omitempty"`
	Type string `json:"type,omitempty"`
}

// Mod customizes an item's behavior for a modifier key.
type Mod struct {
	Valid    bool              `json:"valid"`
	Arg      string            `json:"arg,omitempty"`
	Subtitle string            `json:"subtitle,omitempty"`
	Vars     map[string]string `json:"variables,omitempty"`
}

// Item is a single script-filter result row.
type Item struct {
	UID          string            `json:"uid,omitempty"`
	Title        string            `json:"title"`
	Subtitle     string            `json:"subtitle,omitempty"`
	Arg          string            `json:"arg,omitempty"`
	Valid        bool              `json:"valid"`
	Autocomplete string            `json:"autocomplete,omitempty"`
	Icon         *Icon             `json:"icon,omitempty"`
	Mods         map[string]Mod    `json:"mods,omitempty"`
	Vars         map[string]string `json:"variables,omitempty"`
}

// Feedback is the top-level script-filter document.
type Feedback struct {
	Items []Item `json:"items"`
}

func NewFeedback() *Feedback {
	return &Feedback{Items: []Item{}}
}

func (f *Feedback) Add(item Item) {
	f.Items = append(f.Items, item)
}

// Write renders the document as indented JSON. Alfred reads this from
// stdout, so nothing else may be written there.
func (f *Feedback) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(f)
}

// ErrorItem builds a single invalid row carrying an error message, the
// conventional way to surface a failure inside Alfred itself.
func ErrorItem(title, subtitle string) Item {
	return Item{
		Title:    title,
		Subtitle: subtitle,
		Valid:    false,
		Icon:     &Icon{Path: "icons/error.png"},
	}
}

// NoResultsItem builds the placeholder row shown when a listing is empty.
func NoResultsItem(subtitle string) Item {
	return Item{
		Title:    "No results",
		Subtitle: subtitle,
		Valid:    false,
	}
}

// FilterItems keeps the items whose title or subtitle contains the query,
// case-insensitively. An empty query keeps everything.
func FilterItems(items []Item, query string) []Item {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}
	var out []Item
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), query) ||
			strings.Contains(strings.ToLower(item.Subtitle), query) {
			out = append(out, item)
		}
	}
	return out
}
