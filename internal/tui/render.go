package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/studiowebux/resto/internal/executor"
	"github.com/studiowebux/resto/internal/format"
	"github.com/studiowebux/resto/internal/keybinds"
	"github.com/studiowebux/resto/internal/types"
	"github.com/studiowebux/resto/internal/vim"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#5f87ff"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleBadge = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("0"))
)

// renderMain renders the tab bar, the active tab and the footer.
func (m *Model) renderMain() string {
	parts := []string{m.renderTabBar()}
	if m.tab == TabHistory {
		parts = append(parts, m.renderHistory(m.height-TabBarLines-FooterLines))
	} else {
		parts = append(parts, m.renderRequestTab()...)
	}
	parts = append(parts, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderTabBar() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == m.tab {
			tabs[i] = styleTitle.Underline(true).Render(name)
		} else {
			tabs[i] = styleSubtle.Render(name)
		}
	}
	bar := " " + strings.Join(tabs, styleSubtle.Render(" │ "))
	if m.loading {
		bar += "  " + m.spinner.View() + styleWarning.Render(" Sending...")
	}
	return bar
}

// layoutHeights splits the space between the tab bar and the footer.
func (m *Model) layoutHeights() (urlH, requestH, responseH int) {
	avail := m.height - TabBarLines - FooterLines
	switch m.fullscreen {
	case FullscreenRequest:
		return URLBoxHeight, max(0, avail-URLBoxHeight), 0
	case FullscreenResponse:
		return 0, 0, max(0, avail)
	}
	rest := max(0, avail-URLBoxHeight)
	requestH = max(MinRequestHeight, int(float64(rest)*RequestHeightRatio))
	requestH = min(requestH, rest)
	return URLBoxHeight, requestH, rest - requestH
}

// contentHeight is the number of text rows inside a box of height h.
func contentHeight(h int) int { return max(1, h-BorderSize-BoxTitleLines) }

// contentWidth is the number of text columns inside a full-width box.
func (m *Model) contentWidth() int { return max(1, m.width-BorderSize-2) }

// updateLayout resizes the viewports after a resize or fullscreen change.
func (m *Model) updateLayout() {
	_, _, responseH := m.layoutHeights()
	m.responseView.Width = m.contentWidth()
	m.responseView.Height = contentHeight(responseH)
	m.helpView.Width = m.contentWidth()
	m.helpView.Height = max(1, m.height-FooterLines-BorderSize-BoxTitleLines)
	m.updateResponseView()
}

// updateResponseView refreshes the viewport content for the focused section.
func (m *Model) updateResponseView() {
	m.responseView.SetContent(m.responseContent())
}

func (m *Model) responseContent() string {
	r := m.response
	if r == nil {
		return styleSubtle.Render("Press Enter to send the request")
	}
	width := m.responseView.Width
	text := m.responseText()

	switch {
	case m.responseSection == ResponseBody && r.Failed():
		return styleError.Render(format.Wrap(text, width))
	case m.responseSection == ResponseBody:
		contentType := r.ContentType()
		if m.filterExpr != "" && m.filtered != "" {
			contentType = "application/json"
		}
		return format.Wrap(format.Highlight(text, contentType), width)
	case text == "":
		return styleSubtle.Render("No " + strings.ToLower(responseSectionNames[m.responseSection]))
	default:
		return format.Wrap(text, width)
	}
}

func (m *Model) renderRequestTab() []string {
	urlH, requestH, responseH := m.layoutHeights()
	var parts []string
	if urlH > 0 {
		parts = append(parts, m.renderURLRow())
	}
	if requestH > 0 {
		parts = append(parts, m.renderRequestBox(requestH))
	}
	if responseH > 0 {
		parts = append(parts, m.renderResponseBox(responseH))
	}
	return parts
}

func (m *Model) renderURLRow() string {
	method := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(methodColor(m.request.Method)).
		Foreground(methodColor(m.request.Method)).
		Bold(true).
		Align(lipgloss.Center).
		Width(MethodBoxWidth - BorderSize).
		Render(string(m.request.Method))

	width := max(BorderSize+1, m.width-MethodBoxWidth)
	inner := max(1, width-BorderSize-2)
	border := lipgloss.TerminalColor(colorBlue)

	var content string
	if e := m.editing(targetURL); e != nil {
		border = e.mode().BorderColor()
		content = e.view(inner, 1)
	} else if m.request.URL == "" {
		content = styleSubtle.Render(clip(m.hint(keybinds.ContextNormal, keybinds.ActionEditURL, "edit the URL"), inner))
	} else {
		content = clip(m.request.URL, inner)
	}

	url := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(width - BorderSize).
		Render(content)
	return lipgloss.JoinHorizontal(lipgloss.Top, method, url)
}

func (m *Model) renderRequestBox(height int) string {
	title := styleTitle.Render("Request ") + sectionTabs(requestSectionNames, int(m.requestSection))
	width := m.contentWidth()
	rows := contentHeight(height)
	border := lipgloss.TerminalColor(colorBlue)

	var content string
	if e := m.editingRequestSection(); e != nil {
		border = e.mode().BorderColor()
		content = e.view(width, rows)
	} else {
		content = clipLines(m.requestSectionText(), width)
	}
	return box(title, content, m.width, height, border)
}

func (m *Model) editingRequestSection() *fieldEditor {
	switch m.requestSection {
	case SectionHeaders:
		return m.editing(targetHeaders)
	case SectionBody:
		return m.editing(targetBody)
	default:
		return m.editing(targetQuery)
	}
}

func (m *Model) requestSectionText() string {
	switch m.requestSection {
	case SectionHeaders:
		if len(m.request.Headers) == 0 {
			return styleSubtle.Render("No headers")
		}
		return format.KeyValues(m.request.Headers)
	case SectionBody:
		if m.request.Body == "" {
			return styleSubtle.Render("No body")
		}
		body := m.request.Body
		if !m.request.HasBody() {
			body += "\n" + styleWarning.Render(fmt.Sprintf("(not sent with %s)", m.request.Method))
		}
		return body
	default:
		if len(m.request.Query) == 0 {
			return styleSubtle.Render("No query parameters")
		}
		return format.KeyValues(m.request.Query)
	}
}

func (m *Model) renderResponseBox(height int) string {
	title := styleTitle.Render("Response ")
	if r := m.response; r != nil && !r.Failed() {
		status := lipgloss.NewStyle().Bold(true).Foreground(format.StatusColor(r.Status)).
			Render(fmt.Sprintf("%d %s", r.Status, r.StatusText))
		meta := styleSubtle.Render(fmt.Sprintf(" · %s · %s ",
			executor.FormatDuration(r.Duration), executor.FormatSize(r.ResponseSize)))
		title += status + meta
	}
	if m.filterExpr != "" {
		title += styleWarning.Render("[" + m.filterExpr + "] ")
	}
	title += sectionTabs(responseSectionNames, int(m.responseSection))

	border := lipgloss.TerminalColor(colorGreen)
	var content string
	if e := m.editing(targetInspect); e != nil {
		border = e.mode().BorderColor()
		content = e.view(m.contentWidth(), contentHeight(height))
	} else {
		content = m.responseView.View()
	}
	return box(title, content, m.width, height, border)
}

func (m *Model) renderHistory(height int) string {
	title := styleTitle.Render(fmt.Sprintf("History (%d)", len(m.history.filtered)))
	if m.history.query != "" {
		title += styleWarning.Render("  /" + m.history.query)
	}
	width := m.contentWidth()
	rows, first := m.history.visible(contentHeight(height))

	var lines []string
	if len(rows) == 0 {
		if len(m.history.entries) == 0 {
			lines = append(lines, styleSubtle.Render("No history yet"))
		} else {
			lines = append(lines, styleSubtle.Render("No matches"))
		}
	}
	for i, entry := range rows {
		lines = append(lines, historyRow(entry, width, first+i == m.history.index))
	}
	return box(title, strings.Join(lines, "\n"), m.width, height, colorBlue)
}

// historyListHeight is the number of history rows on screen.
func (m *Model) historyListHeight() int {
	return contentHeight(m.height - TabBarLines - FooterLines)
}

func historyRow(entry types.HistoryEntry, width int, selected bool) string {
	status := "ERR"
	statusColor := lipgloss.TerminalColor(colorRed)
	if r := entry.Result; r != nil && !r.Failed() {
		status = fmt.Sprintf("%d", r.Status)
		statusColor = format.StatusColor(r.Status)
	}
	stamp := entry.Timestamp.Local().Format(HistoryTimeFormat)
	method := fmt.Sprintf("%-7s", entry.Request.Method)
	prefix := stamp + "  " + status + "  " + method + " "
	url := clip(entry.Request.URL, max(1, width-runewidth.StringWidth(prefix)))

	if selected {
		line := clip(prefix+url, width)
		return styleSelected.Render(line + strings.Repeat(" ", max(0, width-runewidth.StringWidth(line))))
	}
	return styleSubtle.Render(stamp) + "  " +
		lipgloss.NewStyle().Foreground(statusColor).Render(status) + "  " +
		lipgloss.NewStyle().Foreground(methodColor(entry.Request.Method)).Render(method) + " " + url
}

// renderHelp renders the keybinding reference.
func (m *Model) renderHelp() string {
	title := styleTitle.Render("Keybindings")
	help := box(title, m.helpView.View(), m.width, m.height-FooterLines, colorCyan)
	return lipgloss.JoinVertical(lipgloss.Left, help, m.renderFooter())
}

// buildHelpContent lists the active bindings followed by the editor keys.
func (m *Model) buildHelpContent() string {
	var sb strings.Builder
	section := func(name string, context keybinds.Context) {
		sb.WriteString(styleTitle.Render(name) + "\n")
		seen := map[keybinds.Action][]string{}
		var order []keybinds.Action
		for _, b := range m.keys.ListBindings(context) {
			if b.Action == keybinds.ActionGoToTopPrepare {
				continue
			}
			if _, ok := seen[b.Action]; !ok {
				order = append(order, b.Action)
			}
			if !contains(seen[b.Action], b.Key) {
				seen[b.Action] = append(seen[b.Action], b.Key)
			}
		}
		for _, action := range order {
			keys := strings.Join(seen[action], ", ")
			sb.WriteString(fmt.Sprintf("  %-22s %s\n", keys, keybinds.GetActionInfo(action).Description))
		}
		sb.WriteString("\n")
	}
	section("Request", keybinds.ContextNormal)
	section("History", keybinds.ContextHistory)

	sb.WriteString(styleTitle.Render("Editing") + "\n")
	for _, row := range editorHelp {
		sb.WriteString(fmt.Sprintf("  %-22s %s\n", row[0], row[1]))
	}
	return strings.TrimRight(sb.String(), "\n")
}

var editorHelp = [][2]string{
	{"i a A I o O", "Insert mode"},
	{"esc", "Back to Normal mode, again to cancel"},
	{"enter", "Save (Normal mode, or Insert in a one-line field)"},
	{"h j k l w b e 0 $", "Move"},
	{"gg G", "First or last line"},
	{"v V", "Visual mode, by character or line"},
	{"y d c + motion", "Yank, delete or change"},
	{"yy dd cc", "Whole line"},
	{"x D C", "Delete char, to end, change to end"},
	{"p", "Paste"},
	{"u ctrl+r", "Undo, redo"},
	{"ctrl+e ctrl+y", "Scroll one line"},
	{"ctrl+d ctrl+u", "Scroll half a page"},
	{"ctrl+f ctrl+b", "Scroll a page"},
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// renderFooter renders the mode badge, the message or key hints and the
// version.
func (m *Model) renderFooter() string {
	badge := m.renderBadge()
	right := styleSubtle.Render(" resto " + m.versionString() + " ")
	avail := max(0, m.width-lipgloss.Width(badge)-lipgloss.Width(right)-1)

	var middle string
	switch {
	case m.mode == ModeEditing && m.editor != nil && m.editor.target.singleLine() && m.editor.target != targetURL:
		prefix := "/"
		if m.editor.target == targetFilter {
			prefix = "filter: "
		}
		middle = prefix + m.editor.view(max(1, avail-len(prefix)), 1)
	case m.mode == ModeHistoryClearConfirm:
		middle = styleWarning.Render(clip(fmt.Sprintf("Clear all %d history entries? (y/n)", len(m.history.entries)), avail))
	case m.errorMsg != "":
		middle = styleError.Render(clip(m.errorMsg, avail))
	case m.statusMsg != "":
		middle = styleSuccess.Render(clip(m.statusMsg, avail))
	default:
		middle = styleSubtle.Render(clip(m.hints(), avail))
	}

	gap := max(0, m.width-lipgloss.Width(badge)-lipgloss.Width(middle)-lipgloss.Width(right)-1)
	return badge + " " + middle + strings.Repeat(" ", gap) + right
}

func (m *Model) renderBadge() string {
	if m.mode == ModeEditing && m.editor != nil {
		mode := m.editor.mode()
		label := mode.String()
		if m.editor.readOnly {
			label += " (read-only)"
		}
		return styleBadge.Background(mode.BorderColor()).Render(label)
	}
	switch {
	case m.mode == ModeHelp:
		return styleBadge.Background(colorCyan).Render("HELP")
	case m.tab == TabHistory:
		return styleBadge.Background(colorBlue).Render("HISTORY")
	default:
		return styleBadge.Background(colorGray).Render("RESTO")
	}
}

func (m *Model) versionString() string {
	if m.version == "" {
		return "dev"
	}
	if strings.HasPrefix(m.version, "v") {
		return m.version
	}
	return "v" + m.version
}

// hints lists the most useful bindings for the current state.
func (m *Model) hints() string {
	var parts []string
	add := func(context keybinds.Context, action keybinds.Action, label string) {
		if keys := m.keys.GetBinding(context, action); len(keys) > 0 {
			parts = append(parts, keys[0]+" "+label)
		}
	}

	switch {
	case m.mode == ModeEditing && m.editor != nil:
		if m.editor.mode().Kind == vim.ModeInsert {
			parts = append(parts, "esc normal")
			if m.editor.target.singleLine() {
				parts = append(parts, "enter save")
			}
		} else if m.editor.readOnly {
			parts = append(parts, "v select", "y yank", "esc close")
		} else {
			parts = append(parts, "enter save", "esc cancel", "i insert")
		}
	case m.mode == ModeHelp:
		add(keybinds.ContextHelp, keybinds.ActionCloseModal, "close")
		add(keybinds.ContextHelp, keybinds.ActionNavigateDown, "scroll")
	case m.tab == TabHistory:
		add(keybinds.ContextHistory, keybinds.ActionHistoryLoad, "load")
		add(keybinds.ContextHistory, keybinds.ActionHistorySearch, "search")
		add(keybinds.ContextHistory, keybinds.ActionHistoryDelete, "delete")
		add(keybinds.ContextHistory, keybinds.ActionHistoryClear, "clear")
		add(keybinds.ContextHistory, keybinds.ActionNextTab, "request")
		add(keybinds.ContextHistory, keybinds.ActionQuit, "quit")
	default:
		add(keybinds.ContextNormal, keybinds.ActionExecute, "send")
		add(keybinds.ContextNormal, keybinds.ActionEditURL, "url")
		add(keybinds.ContextNormal, keybinds.ActionEditSection, "edit")
		add(keybinds.ContextNormal, keybinds.ActionMethodNext, "method")
		add(keybinds.ContextNormal, keybinds.ActionNextRequestSection, "section")
		add(keybinds.ContextNormal, keybinds.ActionFilterResponse, "filter")
		add(keybinds.ContextNormal, keybinds.ActionOpenHelp, "help")
		add(keybinds.ContextNormal, keybinds.ActionQuit, "quit")
	}
	return strings.Join(parts, " • ")
}

// hint renders "press <key> to <label>" for action.
func (m *Model) hint(context keybinds.Context, action keybinds.Action, label string) string {
	keys := m.keys.GetBinding(context, action)
	if len(keys) == 0 {
		return ""
	}
	return fmt.Sprintf("press %s to %s", keys[0], label)
}

// editing returns the editor if it targets target.
func (m *Model) editing(target editTarget) *fieldEditor {
	if m.mode != ModeEditing || m.editor == nil || m.editor.target != target {
		return nil
	}
	return m.editor
}

// box draws a rounded box of the given outer size with a title row.
func box(title, content string, width, height int, border lipgloss.TerminalColor) string {
	inner := max(1, height-BorderSize)
	lines := append([]string{title}, strings.Split(content, "\n")...)
	if len(lines) > inner {
		lines = lines[:inner]
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(max(1, width-BorderSize)).
		Height(inner).
		Render(strings.Join(lines, "\n"))
}

func sectionTabs(names []string, active int) string {
	out := make([]string, len(names))
	for i, name := range names {
		if i == active {
			out[i] = styleTitle.Underline(true).Render(name)
		} else {
			out[i] = styleSubtle.Render(name)
		}
	}
	return strings.Join(out, styleSubtle.Render(" | "))
}

// clip truncates plain text to width cells.
func clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// clipLines truncates every line of plain text to width cells.
func clipLines(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = clip(line, width)
		}
	}
	return strings.Join(lines, "\n")
}

var methodColors = map[types.HttpMethod]lipgloss.TerminalColor{
	types.MethodGet:     colorGreen,
	types.MethodPost:    colorYellow,
	types.MethodPut:     colorBlue,
	types.MethodPatch:   colorCyan,
	types.MethodDelete:  colorRed,
	types.MethodHead:    colorGray,
	types.MethodOptions: colorGray,
}

func methodColor(method types.HttpMethod) lipgloss.TerminalColor {
	if c, ok := methodColors[method]; ok {
		return c
	}
	return colorGray
}
