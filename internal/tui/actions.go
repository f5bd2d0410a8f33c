package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/resto/internal/converter"
	"github.com/studiowebux/resto/internal/executor"
	"github.com/studiowebux/resto/internal/filter"
	"github.com/studiowebux/resto/internal/format"
	"github.com/studiowebux/resto/internal/log"
	"github.com/studiowebux/resto/internal/types"
)

// startEditing opens a field editor over content.
func (m *Model) startEditing(target editTarget, title, content string) {
	m.editor = newFieldEditor(target, title, content, m.clip)
	m.mode = ModeEditing
	m.errorMsg = ""
	log.Debug(log.CatVim, "editing started", "field", title, "mode", m.editor.mode())
}

func (m *Model) editRequestSection() {
	switch m.requestSection {
	case SectionHeaders:
		m.startEditing(targetHeaders, "Headers", m.request.HeadersText())
	case SectionBody:
		m.startEditing(targetBody, "Body", m.request.Body)
	case SectionQuery:
		m.startEditing(targetQuery, "Query", m.request.QueryText())
	}
}

// commitEdit writes the editor's text back to its field.
func (m *Model) commitEdit() tea.Cmd {
	e := m.editor
	m.editor = nil
	m.mode = ModeNormal
	if e == nil {
		return nil
	}
	text := e.text()
	log.Debug(log.CatVim, "editing committed", "field", e.title)

	switch e.target {
	case targetURL:
		m.request.URL = strings.TrimSpace(text)
	case targetHeaders:
		m.request.Headers = types.ParseKeyValues(text, ":")
	case targetBody:
		m.request.Body = text
	case targetQuery:
		m.request.Query = types.ParseKeyValues(text, "=")
	case targetFilter:
		return m.applyFilter(text)
	case targetSearch:
		m.history.setQuery(strings.TrimSpace(text))
	}
	return nil
}

// cancelEdit drops the editor without touching its field.
func (m *Model) cancelEdit() {
	e := m.editor
	m.editor = nil
	m.mode = ModeNormal
	if e == nil {
		return
	}
	if e.target == targetSearch {
		m.history.setQuery(e.original)
	}
	log.Debug(log.CatVim, "editing cancelled", "field", e.title)
}

// executeRequest sends a copy of the draft in the background.
func (m *Model) executeRequest() tea.Cmd {
	if m.loading {
		return m.setStatusMessage("Request already in progress")
	}
	if !m.request.IsValid() {
		return m.setErrorMessage("URL must start with http:// or https://")
	}
	if m.client == nil {
		return m.setErrorMessage("HTTP client not configured")
	}

	req := m.request.Clone()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelRequest = cancel
	m.loading = true
	m.errorMsg = ""

	log.Info(log.CatHTTP, "sending request", "method", req.Method, "url", req.URL)
	return tea.Batch(m.spinner.Tick, m.sendRequest(ctx, cancel, req))
}

// sendRequest returns the command that performs req and, on success,
// records it in history.
func (m *Model) sendRequest(ctx context.Context, cancel context.CancelFunc, req *types.HttpRequest) tea.Cmd {
	client := m.client
	store := m.historyMgr
	if !m.cfg.History.Enabled {
		store = nil
	}
	limit := m.cfg.History.Limit

	return func() tea.Msg {
		defer cancel()
		result, err := client.Execute(ctx, req)
		msg := requestExecutedMsg{request: req, result: result, err: err}
		if err != nil || result.Failed() || store == nil {
			return msg
		}
		if _, err := store.Save(req, result); err != nil {
			msg.saveErr = err
			return msg
		}
		if limit > 0 {
			if err := store.Trim(limit); err != nil {
				log.ErrorErr(log.CatDB, "failed to trim history", err)
			}
		}
		return msg
	}
}

func (m *Model) handleRequestExecuted(msg requestExecutedMsg) tea.Cmd {
	m.loading = false
	m.cancelRequest = nil

	if msg.err != nil {
		log.ErrorErr(log.CatHTTP, "request failed", msg.err)
		return m.setErrorMessage(fmt.Sprintf("Request failed: %v", msg.err))
	}

	m.response = msg.result
	m.responseSection = ResponseBody
	filterErr := m.refreshFilter()
	m.updateResponseView()
	m.responseView.GotoTop()

	if msg.result.Failed() {
		return m.setErrorMessage(msg.result.Error)
	}

	var cmds []tea.Cmd
	status := fmt.Sprintf("%d %s in %s", msg.result.Status, msg.result.StatusText,
		executor.FormatDuration(msg.result.Duration))
	cmds = append(cmds, m.setStatusMessage(status))

	switch {
	case msg.saveErr != nil:
		log.ErrorErr(log.CatDB, "failed to save history", msg.saveErr)
		cmds = append(cmds, m.setErrorMessage(fmt.Sprintf("Failed to save history: %v", msg.saveErr)))
	case filterErr != nil:
		cmds = append(cmds, m.setErrorMessage(filterErr.Error()))
	}
	cmds = append(cmds, m.loadHistory())
	return tea.Batch(cmds...)
}

// applyFilter sets the response filter. An empty expression clears it.
func (m *Model) applyFilter(expr string) tea.Cmd {
	expr = strings.TrimSpace(expr)
	if err := filter.Validate(expr); err != nil {
		return m.setErrorMessage(err.Error())
	}
	m.filterExpr = expr
	err := m.refreshFilter()
	m.updateResponseView()
	m.responseView.GotoTop()
	if err != nil {
		return m.setErrorMessage(err.Error())
	}
	if m.filterExpr == "" {
		return m.setStatusMessage("Filter cleared")
	}
	return m.setStatusMessage("Filter: " + m.filterExpr)
}

// refreshFilter re-evaluates the filter against the current response.
func (m *Model) refreshFilter() error {
	m.filtered = ""
	if m.filterExpr == "" || m.response == nil || m.response.Failed() {
		return nil
	}
	out, err := filter.Apply(m.response.Body, m.filterExpr)
	if err != nil {
		return err
	}
	m.filtered = out
	return nil
}

// responseText is the plain text of the focused response section.
func (m *Model) responseText() string {
	r := m.response
	if r == nil {
		return ""
	}
	switch m.responseSection {
	case ResponseHeaders:
		return format.KeyValues(r.Headers)
	case ResponseCookies:
		return strings.Join(r.Cookies, "\n")
	default:
		if r.Failed() {
			return r.Error
		}
		if m.filterExpr != "" && m.filtered != "" {
			return format.PrettyJSON(m.filtered)
		}
		return format.Body(r)
	}
}

func (m *Model) inspectResponseSection() tea.Cmd {
	if m.response == nil {
		return m.setStatusMessage("No response to inspect")
	}
	title := "Response " + responseSectionNames[m.responseSection]
	m.startEditing(targetInspect, title, m.responseText())
	return nil
}

func (m *Model) copyAsCurl() tea.Cmd {
	cmd, err := converter.ToCurl(m.request)
	if err != nil {
		return m.setErrorMessage(fmt.Sprintf("Failed to build curl command: %v", err))
	}
	if err := m.clip.Set(cmd); err != nil {
		log.Warn(log.CatUI, "system clipboard unavailable", "error", err)
		return m.setStatusMessage("Copied as curl (register only, system clipboard unavailable)")
	}
	return m.setStatusMessage("Copied as curl")
}

func (m *Model) copyResponse() tea.Cmd {
	text := m.responseText()
	if text == "" {
		return m.setStatusMessage("Nothing to copy")
	}
	if err := m.clip.Set(text); err != nil {
		log.Warn(log.CatUI, "system clipboard unavailable", "error", err)
		return m.setStatusMessage("Copied response (register only, system clipboard unavailable)")
	}
	return m.setStatusMessage("Copied response " + strings.ToLower(responseSectionNames[m.responseSection]))
}

func (m *Model) importCurlFromClipboard() tea.Cmd {
	text, err := m.clip.Get()
	if err != nil {
		return m.setErrorMessage(fmt.Sprintf("Failed to read clipboard: %v", err))
	}
	if !converter.LooksLikeCurl(text) {
		return m.setErrorMessage("Clipboard does not contain a curl command")
	}
	return m.importCurl(text)
}

// importCurl replaces the draft with a parsed curl command.
func (m *Model) importCurl(text string) tea.Cmd {
	req, err := converter.ParseCurl(text)
	if err != nil {
		return m.setErrorMessage(fmt.Sprintf("Failed to import curl: %v", err))
	}
	m.request = req
	return m.setStatusMessage(fmt.Sprintf("Imported %s %s", req.Method, req.URL))
}

func (m *Model) newRequest() tea.Cmd {
	m.request = types.NewRequest()
	m.response = nil
	m.filterExpr = ""
	m.filtered = ""
	m.updateResponseView()
	return m.setStatusMessage("New request")
}

func (m *Model) switchTab() tea.Cmd {
	if m.tab == TabRequest {
		m.tab = TabHistory
		return m.loadHistory()
	}
	m.tab = TabRequest
	return nil
}

func (m *Model) openHelp() {
	m.helpView.SetContent(m.buildHelpContent())
	m.helpView.GotoTop()
	m.mode = ModeHelp
}

// loadHistory reads the history database in the background.
func (m *Model) loadHistory() tea.Cmd {
	store := m.historyMgr
	if store == nil {
		return nil
	}
	limit := m.cfg.History.Limit
	return func() tea.Msg {
		entries, err := store.Load(limit)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

func (m *Model) loadHistoryEntry() tea.Cmd {
	entry, ok := m.history.selected()
	if !ok {
		return nil
	}
	m.request = entry.Request.Clone()
	m.response = entry.Result
	if err := m.refreshFilter(); err != nil {
		m.filterExpr = ""
	}
	m.updateResponseView()
	m.responseView.GotoTop()
	m.tab = TabRequest
	return m.setStatusMessage("Loaded " + entry.Title())
}

func (m *Model) deleteHistoryEntry() tea.Cmd {
	entry, ok := m.history.selected()
	if !ok || m.historyMgr == nil {
		return nil
	}
	if err := m.historyMgr.Delete(entry.ID); err != nil {
		return m.setErrorMessage(fmt.Sprintf("Failed to delete entry: %v", err))
	}
	m.history.remove(entry.ID)
	return m.setStatusMessage("Deleted " + entry.Title())
}

func (m *Model) clearHistory() tea.Cmd {
	if m.historyMgr == nil {
		return nil
	}
	if err := m.historyMgr.Clear(); err != nil {
		return m.setErrorMessage(fmt.Sprintf("Failed to clear history: %v", err))
	}
	m.history.setEntries(nil)
	return m.setStatusMessage("History cleared")
}

// saveSession persists the draft and view state.
func (m *Model) saveSession() {
	if m.sessionMgr == nil {
		return
	}
	m.sessionMgr.SetDraft(m.request)
	m.sessionMgr.SetView(int(m.requestSection), int(m.responseSection))
	m.sessionMgr.SetFilter(m.filterExpr)
	if err := m.sessionMgr.Save(); err != nil {
		log.ErrorErr(log.CatConfig, "failed to save session", err)
	}
}
