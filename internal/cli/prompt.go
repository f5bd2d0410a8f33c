package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/resto/internal/format"
	"github.com/studiowebux/resto/internal/types"
)

// ErrSelectionCancelled is returned when the picker is closed without a choice.
var ErrSelectionCancelled = errors.New("selection cancelled")

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1).MarginLeft(2)
)

type item struct {
	entry types.HistoryEntry
}

func (i item) FilterValue() string { return i.entry.Title() }

func (i item) Title() string {
	status := "ERR"
	if i.entry.Result != nil && !i.entry.Result.Failed() {
		status = lipgloss.NewStyle().
			Foreground(format.StatusColor(i.entry.Result.Status)).
			Render(fmt.Sprintf("%d", i.entry.Result.Status))
	}
	return fmt.Sprintf("%s  %s  %s", i.entry.Timestamp.Local().Format(historyTimeFormat), status, i.entry.Title())
}

func (i item) Description() string { return "" }

type selectorModel struct {
	list     list.Model
	choice   *types.HistoryEntry
	quitting bool
}

func newSelector(entries []types.HistoryEntry) selectorModel {
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, item{entry: e})
	}

	const defaultWidth = 100
	const listHeight = 16

	l := list.New(items, itemDelegate{}, defaultWidth, listHeight)
	l.Title = "Select a request to send again"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return selectorModel{list: l}
}

func (m selectorModel) Init() tea.Cmd {
	return nil
}

func (m selectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		// Keys belong to the filter input while it is focused.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			m.choice = nil
			return m, tea.Quit

		case "enter":
			if i, ok := m.list.SelectedItem().(item); ok {
				entry := i.entry
				m.choice = &entry
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectorModel) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("↑/↓: navigate • /: search • enter: send • q/esc: cancel")
	return fmt.Sprintf("%s\n\n%s", m.list.View(), help)
}

// PickHistory shows an interactive list of entries and returns the chosen one.
func PickHistory(entries []types.HistoryEntry) (types.HistoryEntry, error) {
	if len(entries) == 0 {
		return types.HistoryEntry{}, fmt.Errorf("history is empty")
	}

	p := tea.NewProgram(newSelector(entries))
	finalModel, err := p.Run()
	if err != nil {
		return types.HistoryEntry{}, fmt.Errorf("error running selector: %w", err)
	}

	result := finalModel.(selectorModel)
	if result.choice == nil {
		return types.HistoryEntry{}, ErrSelectionCancelled
	}
	return *result.choice, nil
}

// itemDelegate renders one entry per line with a cursor marker.
type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(item)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s", index+1, i.Title())

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}
