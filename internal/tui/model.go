package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/resto/internal/clipboard"
	"github.com/studiowebux/resto/internal/config"
	"github.com/studiowebux/resto/internal/executor"
	"github.com/studiowebux/resto/internal/history"
	"github.com/studiowebux/resto/internal/keybinds"
	"github.com/studiowebux/resto/internal/session"
	"github.com/studiowebux/resto/internal/types"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
	ModeHelp
	ModeHistoryClearConfirm
)

// Tab is one of the main tabs.
type Tab int

const (
	TabRequest Tab = iota
	TabHistory
)

var tabNames = []string{"Request", "History"}

// RequestSection is the focused part of the request box.
type RequestSection int

const (
	SectionHeaders RequestSection = iota
	SectionBody
	SectionQuery
)

var requestSectionNames = []string{"Headers", "Body", "Query"}

// ResponseSection is the focused part of the response box.
type ResponseSection int

const (
	ResponseBody ResponseSection = iota
	ResponseHeaders
	ResponseCookies
)

var responseSectionNames = []string{"Body", "Headers", "Cookies"}

// Fullscreen cycles none -> request -> response.
type Fullscreen int

const (
	FullscreenNone Fullscreen = iota
	FullscreenRequest
	FullscreenResponse
)

// Options wires the model to its collaborators. History and Session may be
// nil.
type Options struct {
	Config    config.Config
	Client    *executor.Client
	History   *history.Manager
	Session   *session.Manager
	Keybinds  *keybinds.Registry
	Clipboard *clipboard.Register
	Version   string
}

// Model represents the TUI state
type Model struct {
	// Core state
	cfg        config.Config
	client     *executor.Client
	historyMgr *history.Manager
	sessionMgr *session.Manager
	keys       *keybinds.Registry
	clip       *clipboard.Register
	version    string

	mode            Mode
	tab             Tab
	request         *types.HttpRequest
	requestSection  RequestSection
	responseSection ResponseSection
	fullscreen      Fullscreen

	// Field being edited, nil outside ModeEditing
	editor *fieldEditor

	// Response state
	response      *types.RequestResult
	filterExpr    string
	filtered      string
	responseView  viewport.Model
	spinner       spinner.Model
	loading       bool
	cancelRequest context.CancelFunc

	history  historyState
	helpView viewport.Model

	// Window
	width  int
	height int

	// Footer
	statusMsg string
	errorMsg  string
}

type requestExecutedMsg struct {
	request *types.HttpRequest
	result  *types.RequestResult
	err     error
	saveErr error
}

type historyLoadedMsg struct {
	entries []types.HistoryEntry
	err     error
}

type clearStatusMsg struct{}

type errorMsg string

// Init initializes the TUI
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("resto"), m.loadHistory())
}

// Cleanup stops any request in flight and persists the draft.
func (m *Model) Cleanup() {
	if m.cancelRequest != nil {
		m.cancelRequest()
		m.cancelRequest = nil
	}
	m.saveSession()
	if m.historyMgr != nil {
		if err := m.historyMgr.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing history database: %v\n", err)
		}
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
		}

	case requestExecutedMsg:
		cmd = m.handleRequestExecuted(msg)

	case historyLoadedMsg:
		if msg.err != nil {
			cmd = m.setErrorMessage(fmt.Sprintf("Failed to load history: %v", msg.err))
			break
		}
		m.history.setEntries(msg.entries)

	case errorMsg:
		cmd = m.setErrorMessage(string(msg))

	case clearStatusMsg:
		m.statusMsg = ""
	}

	return m, cmd
}

// View renders the TUI
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	switch m.mode {
	case ModeHelp:
		return m.renderHelp()
	default:
		return m.renderMain()
	}
}

// Helper methods for setting footer messages
func (m *Model) setStatusMessage(msg string) tea.Cmd {
	m.statusMsg = truncate(msg, MaxFooterMessage)
	m.errorMsg = ""
	return tea.Tick(StatusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m *Model) setErrorMessage(msg string) tea.Cmd {
	m.errorMsg = truncate(msg, MaxFooterMessage)
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
