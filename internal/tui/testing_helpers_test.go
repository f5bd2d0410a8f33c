package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/resto/internal/clipboard"
	"github.com/studiowebux/resto/internal/config"
	"github.com/studiowebux/resto/internal/executor"
	"github.com/studiowebux/resto/internal/history"
	"github.com/studiowebux/resto/internal/keybinds"
	"github.com/studiowebux/resto/internal/session"
	"github.com/studiowebux/resto/internal/types"
)

// CreateTestModel creates a Model backed by a temp-dir history database,
// a temp session file and an isolated clipboard register.
func CreateTestModel(t *testing.T) *Model {
	t.Helper()
	return createTestModelWith(t, session.NewManager(filepath.Join(t.TempDir(), "session.json")))
}

func createTestModelWith(t *testing.T, sess *session.Manager) *Model {
	t.Helper()

	hist, err := history.NewManager(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create history manager: %v", err)
	}
	t.Cleanup(func() { hist.Close() })

	client, err := executor.New(executor.Options{})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	m := New(Options{
		Config:    config.Defaults(),
		Client:    client,
		History:   hist,
		Session:   sess,
		Keybinds:  keybinds.NewDefaultRegistry(),
		Clipboard: clipboard.NewRegister(false),
		Version:   "test-version",
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

// key builds a key message from a bubbletea key name or literal text.
func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends each key in order and returns the last command.
func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

// typeText sends text one rune at a time.
func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func paste(m *Model, text string) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text), Paste: true})
	return cmd
}

// isQuit reports whether cmd ends the program.
func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func jsonResult(body string) *types.RequestResult {
	return &types.RequestResult{
		Status:     200,
		StatusText: "OK",
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}
}

// AssertModelField checks a model field value
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}
