package textbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/resto/internal/vim"
)

func cursor(b *Buffer) Pos {
	row, col := b.Cursor()
	return Pos{Row: row, Col: col}
}

func TestNewSplitsLines(t *testing.T) {
	b := New("GET /foo\r\nHost: x")
	assert.Equal(t, []string{"GET /foo", "Host: x"}, b.Lines())
	assert.Equal(t, "GET /foo\nHost: x", b.Text())
	assert.Equal(t, Pos{}, cursor(b))
}

func TestSingleLineFoldsNewlines(t *testing.T) {
	b := NewSingleLine("http://a\nb")
	assert.Equal(t, "http://a b", b.Text())

	b.InsertNewline()
	assert.Equal(t, 1, b.LineCount())
	assert.False(t, b.Input(vim.Named(vim.KeyEnter)))

	b.SetYankText("x\ny")
	b.MoveCursor(vim.CursorEnd)
	require.True(t, b.Paste())
	assert.Equal(t, "http://a bx y", b.Text())
}

func TestInsertTyping(t *testing.T) {
	b := New("")
	for _, r := range "ab" {
		b.Input(vim.Char(r))
	}
	b.Input(vim.Named(vim.KeyEnter))
	b.Input(vim.Char('c'))
	assert.Equal(t, "ab\nc", b.Text())
	assert.Equal(t, Pos{Row: 1, Col: 1}, cursor(b))

	b.Input(vim.Named(vim.KeyBackspace))
	b.Input(vim.Named(vim.KeyBackspace))
	assert.Equal(t, "ab", b.Text())
	assert.Equal(t, Pos{Row: 0, Col: 2}, cursor(b))

	b.Input(vim.Named(vim.KeyTab))
	assert.Equal(t, "ab  ", b.Text())
}

func TestInsertIgnoresAlt(t *testing.T) {
	b := New("")
	assert.False(t, b.Input(vim.Input{Key: vim.KeyChar, Char: 'x', Alt: true}))
	assert.Equal(t, "", b.Text())
}

func TestDeleteForwardJoinsLines(t *testing.T) {
	b := New("ab\ncd")
	b.MoveCursor(vim.CursorEnd)
	require.True(t, b.Input(vim.Named(vim.KeyDelete)))
	assert.Equal(t, "abcd", b.Text())

	b.MoveCursor(vim.CursorEnd)
	assert.False(t, b.Input(vim.Named(vim.KeyDelete)))
}

func TestGraphemeColumns(t *testing.T) {
	b := New("héllo 👍🏽!")
	b.MoveCursor(vim.CursorEnd)
	assert.Equal(t, 8, cursor(b).Col)

	b.MoveCursor(vim.CursorBack)
	b.MoveCursor(vim.CursorBack)
	require.True(t, b.DeleteNextChar())
	assert.Equal(t, "héllo !", b.Text())
}

func TestDeleteNextCharAtLineEnd(t *testing.T) {
	b := New("abc")
	b.MoveCursor(vim.CursorEnd)
	require.True(t, b.DeleteNextChar())
	assert.Equal(t, "ab", b.Text())
	assert.Equal(t, Pos{Col: 2}, cursor(b))

	empty := New("")
	assert.False(t, empty.DeleteNextChar())
}

func TestDeleteLineByEnd(t *testing.T) {
	b := New("Host: example.com")
	b.SetCursor(0, 6)
	require.True(t, b.DeleteLineByEnd())
	assert.Equal(t, "Host: ", b.Text())
	assert.Equal(t, "example.com", b.YankText())

	assert.False(t, b.DeleteLineByEnd())
}

func TestSelectionCutAndPaste(t *testing.T) {
	b := New("one\ntwo\nthree")
	b.SetCursor(0, 1)
	b.StartSelection()
	b.SetCursor(2, 2)

	start, end, ok := b.Selection()
	require.True(t, ok)
	assert.Equal(t, Pos{Row: 0, Col: 1}, start)
	assert.Equal(t, Pos{Row: 2, Col: 2}, end)

	require.True(t, b.Cut())
	assert.Equal(t, "oree", b.Text())
	assert.Equal(t, "ne\ntwo\nth", b.YankText())
	assert.Equal(t, Pos{Col: 1}, cursor(b))

	_, _, ok = b.Selection()
	assert.False(t, ok)

	require.True(t, b.Paste())
	assert.Equal(t, "one\ntwo\nthree", b.Text())
	assert.Equal(t, Pos{Row: 2, Col: 2}, cursor(b))
}

func TestSelectionBackwardsIsOrdered(t *testing.T) {
	b := New("abcdef")
	b.SetCursor(0, 4)
	b.StartSelection()
	b.SetCursor(0, 1)

	b.Copy()
	assert.Equal(t, "bcd", b.YankText())
	assert.Equal(t, "abcdef", b.Text())
	assert.Equal(t, Pos{Col: 1}, cursor(b))
}

func TestCutWithoutSelection(t *testing.T) {
	b := New("abc")
	b.SetYankText("keep")
	assert.False(t, b.Cut())
	b.Copy()
	assert.Equal(t, "keep", b.YankText())
	assert.Equal(t, "abc", b.Text())
}

func TestUndoRedo(t *testing.T) {
	b := New("abc")
	b.MoveCursor(vim.CursorEnd)
	b.InsertString("def")
	b.InsertNewline()
	assert.Equal(t, "abcdef\n", b.Text())

	require.True(t, b.Undo())
	assert.Equal(t, "abcdef", b.Text())
	require.True(t, b.Undo())
	assert.Equal(t, "abc", b.Text())
	assert.False(t, b.Undo())

	require.True(t, b.Redo())
	assert.Equal(t, "abcdef", b.Text())

	b.InsertString("!")
	assert.False(t, b.Redo(), "new edits drop the redo stack")
}

func TestSetTextKeepsYank(t *testing.T) {
	b := New("abc")
	b.SetYankText("y")
	b.InsertString("x")
	b.SetText("new")
	assert.Equal(t, "y", b.YankText())
	assert.False(t, b.Undo())
}

func TestCtrlBindingsInInsert(t *testing.T) {
	b := New("hello world")
	b.SetCursor(0, 5)
	require.True(t, b.Input(vim.Ctrl('k')))
	assert.Equal(t, "hello", b.Text())

	b.Input(vim.Ctrl('a'))
	assert.Equal(t, 0, cursor(b).Col)
	require.True(t, b.Input(vim.Ctrl('d')))
	assert.Equal(t, "ello", b.Text())

	require.True(t, b.Input(vim.Ctrl('u')))
	assert.Equal(t, "hello", b.Text())
}

func TestEditsReplaceSelection(t *testing.T) {
	b := New("hello world")
	b.SetYankText("HEY")
	b.StartSelection()
	b.SetCursor(0, 5)

	require.True(t, b.Paste())
	assert.Equal(t, "HEY world", b.Text())
	_, _, ok := b.Selection()
	assert.False(t, ok)

	// the replacement is one undo step
	require.True(t, b.Undo())
	assert.Equal(t, "hello world", b.Text())

	b.SetCursor(0, 6)
	b.StartSelection()
	b.SetCursor(0, 11)
	require.True(t, b.DeleteNextChar())
	assert.Equal(t, "hello ", b.Text())
	assert.Equal(t, "HEY", b.YankText(), "deleting a selection does not yank it")

	b.SetCursor(0, 0)
	b.StartSelection()
	b.SetCursor(0, 2)
	require.True(t, b.DeleteLineByEnd())
	assert.Equal(t, "llo ", b.Text())
	_, _, ok = b.Selection()
	assert.False(t, ok)
}

func TestEmptySelectionIsDropped(t *testing.T) {
	b := New("abc")
	b.StartSelection()

	require.True(t, b.DeleteNextChar())
	assert.Equal(t, "bc", b.Text())
	_, _, ok := b.Selection()
	assert.False(t, ok)
}

func TestSingleLineNewlineDeletesSelection(t *testing.T) {
	b := NewSingleLine("https://api.test")
	b.StartSelection()
	b.SetCursor(0, 8)

	b.InsertNewline()
	assert.Equal(t, "api.test", b.Text())
	assert.Equal(t, 1, b.LineCount())
}
