package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unsafe9/alfred-gitopen/internal/launcher"
	"github.com/unsafe9/alfred-gitopen/internal/recent"
)

func testProjects() []recent.Project {
	return []recent.Project{
		{Name: "svc", Path: "/Users/dev/svc", Timestamp: 200, EditorName: "GoLand", AppPath: "/Applications/GoLand.app"},
		{Name: "web", Path: "/Users/dev/web", Timestamp: 100, EditorName: "Cursor", AppPath: "/Applications/Cursor.app"},
	}
}

// newTestModel builds a model whose launcher records invocations.
func newTestModel(t *testing.T, runErr error) (*Model, *[][]string) {
	t.Helper()
	var calls [][]string
	l := launcher.New(nil)
	l.Run = func(name string, args ...string) error {
		calls = append(calls, append([]string{name}, args...))
		return runErr
	}
	m := NewModel(testProjects(), "mocha", l, nil)
	m.list.SetSize(80, 24)
	return m, &calls
}

func TestModelView_ShowsProjectsAndHelp(t *testing.T) {
	m, _ := newTestModel(t, nil)
	view := m.View()

	if !strings.Contains(view, "svc") {
		t.Errorf("view missing project name:\n%s", view)
	}
	if !strings.Contains(view, "enter: open") {
		t.Errorf("view missing help line:\n%s", view)
	}
}

func TestModelUpdate_EnterLaunchesSelectedProject(t *testing.T) {
	m, calls := newTestModel(t, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected launch command")
	}
	msg := cmd()

	launched, ok := msg.(launchedMsg)
	if !ok {
		t.Fatalf("expected launchedMsg, got %T", msg)
	}
	if launched.err != nil {
		t.Fatalf("launch error: %v", launched.err)
	}
	if len(*calls) != 1 {
		t.Fatalf("expected 1 launcher call, got %d", len(*calls))
	}
	got := (*calls)[0]
	if got[0] != "open" || got[2] != "/Applications/GoLand.app" || got[3] != "/Users/dev/svc" {
		t.Errorf("launcher call: %v", got)
	}
}

func TestModelUpdate_SuccessfulOpenQuits(t *testing.T) {
	m, _ := newTestModel(t, nil)

	model, cmd := m.Update(launchedMsg{action: "open", path: "/Users/dev/svc"})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Errorf("expected QuitMsg, got %T", msg)
	}
	_ = model
}

func TestModelUpdate_FailedLaunchShowsStatus(t *testing.T) {
	m, _ := newTestModel(t, nil)

	model, cmd := m.Update(launchedMsg{action: "open", path: "/p", err: errors.New("boom")})
	if cmd != nil {
		t.Error("failed launch must not quit")
	}
	view := model.(*Model).View()
	if !strings.Contains(view, "Failed to open") {
		t.Errorf("view missing error status:\n%s", view)
	}
}

func TestModelUpdate_FinderAndTerminalKeys(t *testing.T) {
	m, calls := newTestModel(t, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	if cmd == nil {
		t.Fatal("expected finder command")
	}
	cmd()

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	if cmd == nil {
		t.Fatal("expected terminal command")
	}
	cmd()

	if len(*calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(*calls))
	}
	finderCall := (*calls)[0]
	if finderCall[0] != "open" || len(finderCall) != 2 {
		t.Errorf("finder call: %v", finderCall)
	}
	terminalCall := (*calls)[1]
	if terminalCall[2] != "Terminal" {
		t.Errorf("terminal call: %v", terminalCall)
	}
}

func TestModelUpdate_QuitKey(t *testing.T) {
	m, _ := newTestModel(t, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Errorf("expected QuitMsg, got %T", msg)
	}
}

func TestModelUpdate_WindowSizeResizesList(t *testing.T) {
	m, _ := newTestModel(t, nil)

	model, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	got := model.(*Model)
	if got.width != 120 || got.height != 40 {
		t.Errorf("size: got %dx%d", got.width, got.height)
	}
}
