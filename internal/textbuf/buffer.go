// Package textbuf is the multi-line text buffer behind every editable field.
// It implements vim.TextBuffer.
package textbuf

import (
	"strings"

	"github.com/studiowebux/resto/internal/vim"
)

const (
	maxHistory    = 500
	defaultHeight = 10
	tabText       = "  "
)

// Pos is a cursor position. Col counts grapheme clusters.
type Pos struct {
	Row int
	Col int
}

// Before reports whether p sorts before q.
func (p Pos) Before(q Pos) bool {
	return p.Row < q.Row || (p.Row == q.Row && p.Col < q.Col)
}

type snapshot struct {
	lines  []string
	cursor Pos
}

// Buffer holds the text of one field plus its cursor, selection, yank slot
// and undo history.
type Buffer struct {
	lines      []string
	cursor     Pos
	prefCol    int
	anchor     Pos
	selecting  bool
	yank       string
	undo       []snapshot
	redo       []snapshot
	top        int
	xOffset    int
	height     int
	singleLine bool
}

var _ vim.TextBuffer = (*Buffer)(nil)

// New creates a buffer holding text with the cursor at the start.
func New(text string) *Buffer {
	b := &Buffer{prefCol: -1}
	b.SetText(text)
	return b
}

// NewSingleLine creates a buffer that never holds more than one line.
// Newlines in text, pastes and Enter are folded into spaces or ignored.
func NewSingleLine(text string) *Buffer {
	b := &Buffer{prefCol: -1, singleLine: true}
	b.SetText(text)
	return b
}

// SetText replaces the content and resets cursor, selection and history.
// The yank slot survives.
func (b *Buffer) SetText(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if b.singleLine {
		text = strings.ReplaceAll(text, "\n", " ")
	}
	b.lines = strings.Split(text, "\n")
	b.cursor = Pos{}
	b.prefCol = -1
	b.selecting = false
	b.undo = nil
	b.redo = nil
	b.top = 0
	b.xOffset = 0
}

// Text returns the content joined with newlines.
func (b *Buffer) Text() string { return strings.Join(b.lines, "\n") }

// Lines returns a copy of the content lines.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int { return len(b.lines) }

// SingleLine reports whether the buffer folds newlines.
func (b *Buffer) SingleLine() bool { return b.singleLine }

// Cursor returns the cursor row and grapheme column.
func (b *Buffer) Cursor() (row, col int) { return b.cursor.Row, b.cursor.Col }

// SetCursor moves the cursor, clamping to the content.
func (b *Buffer) SetCursor(row, col int) {
	b.cursor = b.clamp(Pos{Row: row, Col: col})
	b.prefCol = -1
}

// SetHeight sets the number of visible rows used for paging and View.
func (b *Buffer) SetHeight(h int) { b.height = h }

// Height returns the viewport height, falling back to a default when unset.
func (b *Buffer) Height() int {
	if b.height <= 0 {
		return defaultHeight
	}
	return b.height
}

func (b *Buffer) lineLen(row int) int { return length(b.lines[row]) }

func (b *Buffer) clamp(p Pos) Pos {
	if p.Row < 0 {
		p.Row = 0
	}
	if p.Row >= len(b.lines) {
		p.Row = len(b.lines) - 1
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if n := b.lineLen(p.Row); p.Col > n {
		p.Col = n
	}
	return p
}

// checkpoint records the current state for Undo and drops the redo stack.
func (b *Buffer) checkpoint() {
	b.undo = append(b.undo, b.snapshot())
	if len(b.undo) > maxHistory {
		b.undo = b.undo[len(b.undo)-maxHistory:]
	}
	b.redo = nil
}

func (b *Buffer) snapshot() snapshot {
	lines := make([]string, len(b.lines))
	copy(lines, b.lines)
	return snapshot{lines: lines, cursor: b.cursor}
}

func (b *Buffer) restore(s snapshot) {
	b.lines = s.lines
	b.cursor = b.clamp(s.cursor)
	b.prefCol = -1
	b.selecting = false
}

// Undo reverts the last mutation.
func (b *Buffer) Undo() bool {
	if len(b.undo) == 0 {
		return false
	}
	last := b.undo[len(b.undo)-1]
	b.undo = b.undo[:len(b.undo)-1]
	b.redo = append(b.redo, b.snapshot())
	b.restore(last)
	return true
}

// Redo reapplies the last undone mutation.
func (b *Buffer) Redo() bool {
	if len(b.redo) == 0 {
		return false
	}
	next := b.redo[len(b.redo)-1]
	b.redo = b.redo[:len(b.redo)-1]
	b.undo = append(b.undo, b.snapshot())
	b.restore(next)
	return true
}

// StartSelection anchors a selection at the cursor.
func (b *Buffer) StartSelection() {
	b.anchor = b.cursor
	b.selecting = true
}

// CancelSelection drops the selection, if any.
func (b *Buffer) CancelSelection() { b.selecting = false }

// takeSelection ends the selection and returns its range when it covers at
// least one character.
func (b *Buffer) takeSelection() (start, end Pos, ok bool) {
	start, end, ok = b.Selection()
	b.selecting = false
	return start, end, ok && start != end
}

// Selection returns the ordered selected range. End is exclusive.
func (b *Buffer) Selection() (start, end Pos, ok bool) {
	if !b.selecting {
		return Pos{}, Pos{}, false
	}
	start, end = b.clamp(b.anchor), b.cursor
	if end.Before(start) {
		start, end = end, start
	}
	return start, end, true
}

func (b *Buffer) textRange(start, end Pos) string {
	if start.Row == end.Row {
		_, rest := splitAt(b.lines[start.Row], start.Col)
		mid, _ := splitAt(rest, end.Col-start.Col)
		return mid
	}
	var sb strings.Builder
	_, first := splitAt(b.lines[start.Row], start.Col)
	sb.WriteString(first)
	for row := start.Row + 1; row < end.Row; row++ {
		sb.WriteByte('\n')
		sb.WriteString(b.lines[row])
	}
	last, _ := splitAt(b.lines[end.Row], end.Col)
	sb.WriteByte('\n')
	sb.WriteString(last)
	return sb.String()
}

func (b *Buffer) deleteRange(start, end Pos) {
	head, _ := splitAt(b.lines[start.Row], start.Col)
	_, tail := splitAt(b.lines[end.Row], end.Col)
	lines := append([]string{}, b.lines[:start.Row]...)
	lines = append(lines, head+tail)
	lines = append(lines, b.lines[end.Row+1:]...)
	b.lines = lines
	b.cursor = start
	b.prefCol = -1
}

// insertText inserts text at the cursor and leaves the cursor after it.
func (b *Buffer) insertText(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if b.singleLine {
		text = strings.ReplaceAll(text, "\n", " ")
	}
	before, after := splitAt(b.lines[b.cursor.Row], b.cursor.Col)
	parts := strings.Split(text, "\n")

	if len(parts) == 1 {
		b.lines[b.cursor.Row] = before + text + after
		b.cursor.Col = length(before + text)
		b.prefCol = -1
		return
	}

	inserted := make([]string, 0, len(parts))
	inserted = append(inserted, before+parts[0])
	inserted = append(inserted, parts[1:len(parts)-1]...)
	last := parts[len(parts)-1]
	inserted = append(inserted, last+after)

	lines := append([]string{}, b.lines[:b.cursor.Row]...)
	lines = append(lines, inserted...)
	lines = append(lines, b.lines[b.cursor.Row+1:]...)
	b.lines = lines
	b.cursor = Pos{Row: b.cursor.Row + len(parts) - 1, Col: length(last)}
	b.prefCol = -1
}

// Cut moves the selection into the yank slot.
func (b *Buffer) Cut() bool {
	start, end, ok := b.Selection()
	b.selecting = false
	if !ok || start == end {
		return false
	}
	b.checkpoint()
	b.yank = b.textRange(start, end)
	b.deleteRange(start, end)
	return true
}

// Copy puts the selection into the yank slot and moves the cursor to its
// start.
func (b *Buffer) Copy() {
	start, end, ok := b.Selection()
	b.selecting = false
	if !ok || start == end {
		return
	}
	b.yank = b.textRange(start, end)
	b.cursor = start
	b.prefCol = -1
}

// Paste replaces the selection, if any, with the yank slot.
func (b *Buffer) Paste() bool {
	start, end, sel := b.takeSelection()
	if b.yank == "" && !sel {
		return false
	}
	b.checkpoint()
	if sel {
		b.deleteRange(start, end)
	}
	if b.yank != "" {
		b.insertText(b.yank)
	}
	return true
}

// YankText returns the yank slot.
func (b *Buffer) YankText() string { return b.yank }

// SetYankText replaces the yank slot.
func (b *Buffer) SetYankText(text string) { b.yank = text }

// InsertString replaces the selection, if any, with s as one undoable edit.
func (b *Buffer) InsertString(s string) bool {
	start, end, sel := b.takeSelection()
	if s == "" && !sel {
		return false
	}
	b.checkpoint()
	if sel {
		b.deleteRange(start, end)
	}
	b.insertText(s)
	return true
}

// InsertNewline replaces the selection, if any, with a line break.
func (b *Buffer) InsertNewline() {
	start, end, sel := b.takeSelection()
	if b.singleLine && !sel {
		return
	}
	b.checkpoint()
	if sel {
		b.deleteRange(start, end)
	}
	if !b.singleLine {
		b.insertText("\n")
	}
}

// dropSelection deletes the selected text without yanking it and reports
// whether anything was removed. The selection is cancelled either way.
func (b *Buffer) dropSelection() bool {
	start, end, ok := b.takeSelection()
	if !ok {
		return false
	}
	b.checkpoint()
	b.deleteRange(start, end)
	return true
}

// DeleteLineByEnd removes the text from the cursor to the end of the line
// into the yank slot. With a selection it deletes the selection instead.
// At the end of a line it does nothing; lines are never joined.
func (b *Buffer) DeleteLineByEnd() bool {
	if b.dropSelection() {
		return true
	}
	head, tail := splitAt(b.lines[b.cursor.Row], b.cursor.Col)
	if tail == "" {
		return false
	}
	b.checkpoint()
	b.yank = tail
	b.lines[b.cursor.Row] = head
	b.prefCol = -1
	return true
}

// DeleteNextChar removes the character under the cursor. At the end of a
// non-empty line it removes the last character, the one a block cursor
// sits on. It never joins lines. With a selection it deletes the
// selection instead.
func (b *Buffer) DeleteNextChar() bool {
	if b.dropSelection() {
		return true
	}
	n := b.lineLen(b.cursor.Row)
	if n == 0 {
		return false
	}
	col := b.cursor.Col
	if col >= n {
		col = n - 1
	}
	b.checkpoint()
	cs := clusters(b.lines[b.cursor.Row])
	b.lines[b.cursor.Row] = strings.Join(cs[:col], "") + strings.Join(cs[col+1:], "")
	b.cursor.Col = col
	b.prefCol = -1
	return true
}

func (b *Buffer) deleteBackward() bool {
	if b.cursor.Col == 0 && b.cursor.Row == 0 {
		return false
	}
	b.checkpoint()
	if b.cursor.Col == 0 {
		row := b.cursor.Row
		prevLen := b.lineLen(row - 1)
		b.lines[row-1] += b.lines[row]
		b.lines = append(b.lines[:row], b.lines[row+1:]...)
		b.cursor = Pos{Row: row - 1, Col: prevLen}
	} else {
		cs := clusters(b.lines[b.cursor.Row])
		col := b.cursor.Col
		b.lines[b.cursor.Row] = strings.Join(cs[:col-1], "") + strings.Join(cs[col:], "")
		b.cursor.Col = col - 1
	}
	b.prefCol = -1
	return true
}

func (b *Buffer) deleteForward() bool {
	row, col := b.cursor.Row, b.cursor.Col
	n := b.lineLen(row)
	if col >= n && row == len(b.lines)-1 {
		return false
	}
	b.checkpoint()
	if col >= n {
		b.lines[row] += b.lines[row+1]
		b.lines = append(b.lines[:row+1], b.lines[row+2:]...)
	} else {
		cs := clusters(b.lines[row])
		b.lines[row] = strings.Join(cs[:col], "") + strings.Join(cs[col+1:], "")
	}
	return true
}

// Input applies an Insert mode keystroke.
func (b *Buffer) Input(in vim.Input) bool {
	switch in.Key {
	case vim.KeyChar:
		if in.Ctrl {
			return b.ctrlInput(in.Char)
		}
		if in.Alt {
			return false
		}
		return b.InsertString(string(in.Char))
	case vim.KeyEnter:
		if b.singleLine {
			return false
		}
		b.InsertNewline()
		return true
	case vim.KeyBackspace:
		return b.deleteBackward()
	case vim.KeyDelete:
		return b.deleteForward()
	case vim.KeyTab:
		return b.InsertString(tabText)
	case vim.KeyLeft:
		b.MoveCursor(vim.CursorBack)
	case vim.KeyRight:
		b.MoveCursor(vim.CursorForward)
	case vim.KeyUp:
		b.MoveCursor(vim.CursorUp)
	case vim.KeyDown:
		b.MoveCursor(vim.CursorDown)
	case vim.KeyHome:
		b.MoveCursor(vim.CursorHead)
	case vim.KeyEnd:
		b.MoveCursor(vim.CursorEnd)
	case vim.KeyPageUp:
		b.ScrollPage(-1)
	case vim.KeyPageDown:
		b.ScrollPage(1)
	}
	return false
}

// ctrlInput handles the emacs-style bindings available while inserting.
func (b *Buffer) ctrlInput(r rune) bool {
	switch r {
	case 'h':
		return b.deleteBackward()
	case 'd':
		return b.deleteForward()
	case 'k':
		return b.DeleteLineByEnd()
	case 'a':
		b.MoveCursor(vim.CursorHead)
	case 'e':
		b.MoveCursor(vim.CursorEnd)
	case 'u':
		return b.Undo()
	case 'r':
		return b.Redo()
	}
	return false
}
