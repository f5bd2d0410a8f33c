package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/resto/internal/converter"
	"github.com/studiowebux/resto/internal/keybinds"
	"github.com/studiowebux/resto/internal/log"
	"github.com/studiowebux/resto/internal/vim"
)

// handleKeyPress routes a key to the handler for the current mode.
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	if msg.Paste {
		return m.handlePaste(string(msg.Runes))
	}

	switch m.mode {
	case ModeEditing:
		return m.handleEditingKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	case ModeHistoryClearConfirm:
		return m.handleClearConfirmKeys(msg)
	}

	if m.tab == TabHistory {
		return m.dispatch(keybinds.ContextHistory, msg)
	}
	return m.dispatch(keybinds.ContextNormal, msg)
}

// dispatch resolves msg in context and runs the bound action.
func (m *Model) dispatch(context keybinds.Context, msg tea.KeyMsg) tea.Cmd {
	action, ok, partial := m.keys.MatchMultiKey(context, msg.String())
	if partial || !ok {
		return nil
	}
	log.Debug(log.CatUI, "action", "context", context, "key", msg.String(), "action", action)
	if context == keybinds.ContextHistory {
		return m.runHistoryAction(action)
	}
	return m.runAction(action)
}

// runAction executes an action on the Request tab.
func (m *Model) runAction(action keybinds.Action) tea.Cmd {
	switch action {
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		return tea.Quit
	case keybinds.ActionNextTab, keybinds.ActionPrevTab:
		return m.switchTab()
	case keybinds.ActionOpenHelp:
		m.openHelp()

	case keybinds.ActionNavigateUp:
		m.responseView.ScrollUp(1)
	case keybinds.ActionNavigateDown:
		m.responseView.ScrollDown(1)
	case keybinds.ActionHalfPageUp:
		m.responseView.HalfViewUp()
	case keybinds.ActionHalfPageDown:
		m.responseView.HalfViewDown()
	case keybinds.ActionPageUp:
		m.responseView.PageUp()
	case keybinds.ActionPageDown:
		m.responseView.PageDown()
	case keybinds.ActionGoToTop:
		m.responseView.GotoTop()
	case keybinds.ActionGoToBottom:
		m.responseView.GotoBottom()

	case keybinds.ActionNextRequestSection:
		m.requestSection = (m.requestSection + 1) % RequestSection(len(requestSectionNames))
	case keybinds.ActionNextResponseSection:
		m.responseSection = (m.responseSection + 1) % ResponseSection(len(responseSectionNames))
		m.updateResponseView()
		m.responseView.GotoTop()
	case keybinds.ActionToggleFullscreen:
		m.fullscreen = (m.fullscreen + 1) % 3
		m.updateLayout()

	case keybinds.ActionExecute:
		return m.executeRequest()
	case keybinds.ActionMethodNext:
		m.request.Method = m.request.Method.Next()
	case keybinds.ActionMethodPrev:
		m.request.Method = m.request.Method.Prev()
	case keybinds.ActionEditURL:
		m.startEditing(targetURL, "URL", m.request.URL)
	case keybinds.ActionEditSection:
		m.editRequestSection()
	case keybinds.ActionInspectSection:
		return m.inspectResponseSection()
	case keybinds.ActionCopyAsCurl:
		return m.copyAsCurl()
	case keybinds.ActionCopyResponse:
		return m.copyResponse()
	case keybinds.ActionImportCurl:
		return m.importCurlFromClipboard()
	case keybinds.ActionNewRequest:
		return m.newRequest()
	case keybinds.ActionFilterResponse:
		m.startEditing(targetFilter, "Filter", m.filterExpr)
	}
	return nil
}

// runHistoryAction executes an action on the History tab.
func (m *Model) runHistoryAction(action keybinds.Action) tea.Cmd {
	page := max(1, m.historyListHeight())

	switch action {
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		return tea.Quit
	case keybinds.ActionNextTab, keybinds.ActionPrevTab:
		return m.switchTab()
	case keybinds.ActionOpenHelp:
		m.openHelp()
	case keybinds.ActionCloseModal:
		if m.history.query != "" {
			m.history.setQuery("")
			return nil
		}
		return m.switchTab()

	case keybinds.ActionNavigateUp:
		m.history.move(-1)
	case keybinds.ActionNavigateDown:
		m.history.move(1)
	case keybinds.ActionPageUp, keybinds.ActionHalfPageUp:
		m.history.move(-page)
	case keybinds.ActionPageDown, keybinds.ActionHalfPageDown:
		m.history.move(page)
	case keybinds.ActionGoToTop:
		m.history.top()
	case keybinds.ActionGoToBottom:
		m.history.bottom()

	case keybinds.ActionHistoryLoad:
		return m.loadHistoryEntry()
	case keybinds.ActionHistoryDelete:
		return m.deleteHistoryEntry()
	case keybinds.ActionHistoryClear:
		if len(m.history.entries) > 0 {
			m.mode = ModeHistoryClearConfirm
		}
	case keybinds.ActionHistorySearch:
		m.startEditing(targetSearch, "Search", m.history.query)
	}
	return nil
}

func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok, partial := m.keys.MatchMultiKey(keybinds.ContextHelp, msg.String())
	if partial || !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuitForce:
		return tea.Quit
	case keybinds.ActionCloseModal:
		m.mode = ModeNormal
	case keybinds.ActionNavigateUp:
		m.helpView.ScrollUp(1)
	case keybinds.ActionNavigateDown:
		m.helpView.ScrollDown(1)
	case keybinds.ActionHalfPageUp:
		m.helpView.HalfViewUp()
	case keybinds.ActionHalfPageDown:
		m.helpView.HalfViewDown()
	case keybinds.ActionPageUp:
		m.helpView.PageUp()
	case keybinds.ActionPageDown:
		m.helpView.PageDown()
	case keybinds.ActionGoToTop:
		m.helpView.GotoTop()
	case keybinds.ActionGoToBottom:
		m.helpView.GotoBottom()
	}
	return nil
}

func (m *Model) handleClearConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	m.mode = ModeNormal
	switch msg.String() {
	case "y", "Y":
		return m.clearHistory()
	case "ctrl+c":
		return tea.Quit
	}
	return m.setStatusMessage("Clear cancelled")
}

// handleEditingKeys feeds keys to the field editor until it commits or
// cancels.
func (m *Model) handleEditingKeys(msg tea.KeyMsg) tea.Cmd {
	e := m.editor
	if e == nil {
		m.mode = ModeNormal
		return nil
	}
	// Ctrl+c leaves Insert mode; anywhere else it quits
	if msg.Type == tea.KeyCtrlC && e.mode().Kind != vim.ModeInsert {
		return tea.Quit
	}

	for _, in := range vim.FromKeyMsg(msg) {
		switch e.handle(in) {
		case editCommit:
			return m.commitEdit()
		case editCancel:
			m.cancelEdit()
			return nil
		}
		if e.target == targetSearch {
			m.history.setQuery(e.text())
		}
	}
	return nil
}

// handlePaste inserts pasted text into the field being edited. Outside an
// editor a pasted curl command replaces the draft.
func (m *Model) handlePaste(text string) tea.Cmd {
	switch {
	case m.mode == ModeEditing && m.editor != nil:
		m.editor.paste(text)
		if m.editor.target == targetSearch {
			m.history.setQuery(m.editor.text())
		}
	case m.mode == ModeNormal && m.tab == TabRequest && converter.LooksLikeCurl(text):
		return m.importCurl(text)
	}
	return nil
}
