package textbuf

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Style controls how View renders the buffer.
type Style struct {
	Text       lipgloss.Style
	Cursor     lipgloss.Style
	Selection  lipgloss.Style
	Width      int
	ShowCursor bool
}

// DefaultStyle renders a reversed block cursor and a reversed selection.
func DefaultStyle(width int) Style {
	return Style{
		Text:       lipgloss.NewStyle(),
		Cursor:     lipgloss.NewStyle().Reverse(true),
		Selection:  lipgloss.NewStyle().Reverse(true),
		Width:      width,
		ShowCursor: true,
	}
}

// View renders the visible rows. It scrolls the viewport as needed to keep
// the cursor on screen.
func (b *Buffer) View(st Style) string {
	h := b.Height()
	if b.cursor.Row < b.top {
		b.top = b.cursor.Row
	}
	if b.cursor.Row >= b.top+h {
		b.top = b.cursor.Row - h + 1
	}
	b.top = clampInt(b.top, 0, len(b.lines)-1)
	b.followX(st.Width)

	end := min(len(b.lines), b.top+h)
	rows := make([]string, 0, end-b.top)
	for row := b.top; row < end; row++ {
		rows = append(rows, b.renderLine(row, st))
	}
	return strings.Join(rows, "\n")
}

// followX keeps the cursor column inside width cells.
func (b *Buffer) followX(width int) {
	if width <= 0 {
		b.xOffset = 0
		return
	}
	cs := clusters(b.lines[b.cursor.Row])
	if b.cursor.Col < b.xOffset {
		b.xOffset = b.cursor.Col
	}
	for b.xOffset < b.cursor.Col && cellWidth(cs, b.xOffset, b.cursor.Col)+1 > width {
		b.xOffset++
	}
}

func cellWidth(cs []string, from, to int) int {
	w := 0
	for i := from; i < to && i < len(cs); i++ {
		w += displayWidth(cs[i])
	}
	return w
}

func displayWidth(cluster string) int {
	if cluster == "\t" {
		return len(tabText)
	}
	return runewidth.StringWidth(cluster)
}

func displayText(cluster string) string {
	if cluster == "\t" {
		return tabText
	}
	return cluster
}

func (b *Buffer) renderLine(row int, st Style) string {
	cs := clusters(b.lines[row])
	selStart, selEnd, selecting := b.Selection()

	var out, plain strings.Builder
	flush := func() {
		if plain.Len() > 0 {
			out.WriteString(st.Text.Render(plain.String()))
			plain.Reset()
		}
	}

	used := 0
	for col := b.xOffset; col < len(cs); col++ {
		w := displayWidth(cs[col])
		if st.Width > 0 && used+w > st.Width {
			break
		}
		used += w
		pos := Pos{Row: row, Col: col}
		text := displayText(cs[col])
		switch {
		case st.ShowCursor && pos == b.cursor:
			flush()
			out.WriteString(st.Cursor.Render(text))
		case selecting && !pos.Before(selStart) && pos.Before(selEnd):
			flush()
			out.WriteString(st.Selection.Render(text))
		default:
			plain.WriteString(text)
		}
	}
	flush()

	if st.ShowCursor && b.cursor.Row == row && b.cursor.Col >= len(cs) {
		if st.Width <= 0 || used < st.Width {
			out.WriteString(st.Cursor.Render(" "))
		}
	}
	return out.String()
}
