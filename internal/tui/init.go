package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/resto/internal/clipboard"
	"github.com/studiowebux/resto/internal/keybinds"
	"github.com/studiowebux/resto/internal/log"
	"github.com/studiowebux/resto/internal/types"
)

// New creates a new TUI model
func New(opts Options) *Model {
	keys := opts.Keybinds
	if keys == nil {
		keys = keybinds.NewDefaultRegistry()
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.Shared()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleWarning

	m := &Model{
		cfg:          opts.Config,
		client:       opts.Client,
		historyMgr:   opts.History,
		sessionMgr:   opts.Session,
		keys:         keys,
		clip:         clip,
		version:      opts.Version,
		mode:         ModeNormal,
		tab:          TabRequest,
		request:      types.NewRequest(),
		responseView: viewport.New(80, 20),
		helpView:     viewport.New(80, 20),
		spinner:      sp,
	}

	if m.sessionMgr != nil {
		m.request = m.sessionMgr.Draft()
		s := m.sessionMgr.GetSession()
		m.requestSection = RequestSection(clampIndex(s.RequestSection, len(requestSectionNames)))
		m.responseSection = ResponseSection(clampIndex(s.ResponseSection, len(responseSectionNames)))
		m.filterExpr = s.Filter
	}

	return m
}

// Run starts the TUI and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	defer m.Cleanup()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.ErrorErr(log.CatUI, "tui exited with error", err)
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

func clampIndex(i, n int) int {
	if i < 0 || i >= n {
		return 0
	}
	return i
}
