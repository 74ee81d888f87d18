// pattern: Imperative Shell

package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unsafe9/alfred-gitopen/internal/recent"
)

// projectItem wraps a recent project for display in a list.
type projectItem struct {
	project recent.Project
}

// Title returns the project name for display.
func (i projectItem) Title() string {
	return i.project.Name
}

// Description returns project details for display.
func (i projectItem) Description() string {
	if i.project.Timestamp > 0 {
		opened := time.UnixMilli(i.project.Timestamp).Format("2006-01-02 15:04")
		return fmt.Sprintf("%s | %s | %s", i.project.EditorName, opened, i.project.Path)
	}
	return fmt.Sprintf("%s | %s", i.project.EditorName, i.project.Path)
}

// FilterValue returns the value to filter on.
func (i projectItem) FilterValue() string {
	return i.project.Name + " " + i.project.Path
}

// projectDelegate handles rendering of project items in a list.
type projectDelegate struct {
	styles *Styles
}

func newProjectDelegate(styles *Styles) projectDelegate {
	return projectDelegate{styles: styles}
}

// Height returns the height of a single item.
func (d projectDelegate) Height() int {
	return 2
}

// Spacing returns the spacing between items.
func (d projectDelegate) Spacing() int {
	return 1
}

// Update handles item-specific updates.
func (d projectDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

// Render renders a single project item.
func (d projectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	pi, ok := item.(projectItem)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(d.styles.flavor.Text().Hex))
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(d.styles.flavor.Subtext0().Hex))

	if isSelected {
		titleStyle = titleStyle.
			Bold(true).
			Foreground(lipgloss.Color(d.styles.flavor.Mauve().Hex))
		descStyle = descStyle.
			Foreground(lipgloss.Color(d.styles.flavor.Overlay0().Hex))
	}

	indicator := "  "
	if isSelected {
		indicator = lipgloss.NewStyle().
			Foreground(lipgloss.Color(d.styles.flavor.Mauve().Hex)).
			Render("▸ ")
	}

	editorBadge := lipgloss.NewStyle().
		Foreground(lipgloss.Color(d.styles.flavor.Teal().Hex)).
		Render("●")

	title := titleStyle.Render(pi.project.Name)
	desc := descStyle.Render(pi.Description())

	_, _ = fmt.Fprintf(w, "%s%s %s\n%s%s", indicator, editorBadge, title, "    ", desc)
}

// toListItems converts projects to list items.
func toListItems(projects []recent.Project) []list.Item {
	items := make([]list.Item, len(projects))
	for i, p := range projects {
		items[i] = projectItem{project: p}
	}
	return items
}
