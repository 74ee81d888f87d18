// pattern: Imperative Shell

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unsafe9/alfred-gitopen/internal/launcher"
	"github.com/unsafe9/alfred-gitopen/internal/logging"
	"github.com/unsafe9/alfred-gitopen/internal/recent"
)

// keyMap defines the picker keybindings.
type keyMap struct {
	Open     key.Binding
	Finder   key.Binding
	Terminal key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open in editor"),
		),
		Finder: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "reveal in Finder"),
		),
		Terminal: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "open in Terminal"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// launchedMsg reports the outcome of a launch action.
type launchedMsg struct {
	action string
	path   string
	err    error
}

// Model is the interactive project picker.
type Model struct {
	list     list.Model
	styles   *Styles
	keys     keyMap
	launcher *launcher.Launcher
	log      *logging.ScopedLogger
	status   string
	width    int
	height   int
}

// NewModel builds the picker over the given projects, already sorted by
// recency.
func NewModel(projects []recent.Project, theme string, l *launcher.Launcher, logs logging.LoggerProvider) *Model {
	styles := NewStyles(theme)

	projectList := list.New(toListItems(projects), newProjectDelegate(styles), 0, 0)
	projectList.Title = "Recent Projects"
	projectList.SetShowStatusBar(false)
	projectList.SetShowHelp(false)
	projectList.Styles.Title = styles.TitleStyle()

	var log *logging.ScopedLogger
	if logs != nil {
		log = logs.For("tui")
	} else {
		log = logging.NopLogger()
	}
	if l == nil {
		l = launcher.New(logs)
	}

	return &Model{
		list:     projectList,
		styles:   styles,
		keys:     defaultKeyMap(),
		launcher: l,
		log:      log,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width-2, msg.Height-4)
		return m, nil

	case launchedMsg:
		if msg.err != nil {
			m.status = m.styles.ErrorStyle().Render(fmt.Sprintf("Failed to %s %s: %v", msg.action, msg.path, msg.err))
			m.log.Error("launch failed", "action", msg.action, "path", msg.path, "error", msg.err)
			return m, nil
		}
		// A successful editor launch ends the picker.
		if msg.action == "open" {
			return m, tea.Quit
		}
		m.status = m.styles.AccentStyle().Render(fmt.Sprintf("Opened %s", msg.path))
		return m, nil

	case tea.KeyMsg:
		// Let the list's filter input consume keys while active.
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Open):
			return m, m.launchSelected("open")
		case key.Matches(msg, m.keys.Finder):
			return m, m.launchSelected("finder")
		case key.Matches(msg, m.keys.Terminal):
			return m, m.launchSelected("terminal")
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	help := m.styles.HelpStyle().Render("enter: open • f: finder • t: terminal • /: filter • q: quit")
	view := m.list.View() + "\n" + help
	if m.status != "" {
		view += "\n" + m.status
	}
	return view
}

// launchSelected runs the action against the highlighted project.
func (m *Model) launchSelected(action string) tea.Cmd {
	item, ok := m.list.SelectedItem().(projectItem)
	if !ok {
		return nil
	}
	proj := item.project

	return func() tea.Msg {
		var err error
		switch action {
		case "open":
			err = m.launcher.OpenWithApp(proj.AppPath, proj.Path)
		case "finder":
			err = m.launcher.OpenInFinder(proj.Path)
		case "terminal":
			err = m.launcher.OpenInTerminal(proj.Path)
		}
		return launchedMsg{action: action, path: proj.Path, err: err}
	}
}
