package textbuf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studiowebux/resto/internal/vim"
)

func TestHorizontalMotionsStayOnLine(t *testing.T) {
	b := New("ab\ncd")
	b.MoveCursor(vim.CursorBack)
	assert.Equal(t, Pos{}, cursor(b))

	b.MoveCursor(vim.CursorForward)
	b.MoveCursor(vim.CursorForward)
	b.MoveCursor(vim.CursorForward)
	assert.Equal(t, Pos{Col: 2}, cursor(b))
}

func TestVerticalMotionKeepsPreferredColumn(t *testing.T) {
	b := New("abcdef\nab\nabcdef")
	b.SetCursor(0, 5)

	b.MoveCursor(vim.CursorDown)
	assert.Equal(t, Pos{Row: 1, Col: 2}, cursor(b))
	b.MoveCursor(vim.CursorDown)
	assert.Equal(t, Pos{Row: 2, Col: 5}, cursor(b))

	b.MoveCursor(vim.CursorDown)
	assert.Equal(t, Pos{Row: 2, Col: 5}, cursor(b), "down on the last line does not move")
}

func TestTopBottomHeadEnd(t *testing.T) {
	b := New("one\ntwo\nthree")
	b.SetCursor(1, 2)

	b.MoveCursor(vim.CursorEnd)
	assert.Equal(t, Pos{Row: 1, Col: 3}, cursor(b))
	b.MoveCursor(vim.CursorHead)
	assert.Equal(t, Pos{Row: 1}, cursor(b))
	b.MoveCursor(vim.CursorBottom)
	assert.Equal(t, Pos{Row: 2}, cursor(b))
	b.MoveCursor(vim.CursorTop)
	assert.Equal(t, Pos{}, cursor(b))
}

func TestWordMotions(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		start Pos
		move  vim.CursorMove
		want  Pos
	}{
		{"forward over word", "hello world", Pos{}, vim.CursorWordForward, Pos{Col: 6}},
		{"forward stops at punctuation", "foo.bar", Pos{}, vim.CursorWordForward, Pos{Col: 3}},
		{"forward crosses line", "foo\n  bar", Pos{Col: 1}, vim.CursorWordForward, Pos{Row: 1, Col: 2}},
		{"forward stops on empty line", "foo\n\nbar", Pos{}, vim.CursorWordForward, Pos{Row: 1}},
		{"forward at buffer end", "foo", Pos{}, vim.CursorWordForward, Pos{Col: 3}},
		{"end of word", "hello world", Pos{}, vim.CursorWordEnd, Pos{Col: 4}},
		{"end of next word", "hello world", Pos{Col: 4}, vim.CursorWordEnd, Pos{Col: 10}},
		{"back to word start", "hello world", Pos{Col: 8}, vim.CursorWordBack, Pos{Col: 6}},
		{"back over space", "hello world", Pos{Col: 6}, vim.CursorWordBack, Pos{}},
		{"back crosses line", "abc\ndef", Pos{Row: 1}, vim.CursorWordBack, Pos{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.text)
			b.SetCursor(tt.start.Row, tt.start.Col)
			b.MoveCursor(tt.move)
			assert.Equal(t, tt.want, cursor(b))
		})
	}
}

func numbered(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = "line"
	}
	return strings.Join(lines, "\n")
}

func TestScrolling(t *testing.T) {
	b := New(numbered(40))
	b.SetHeight(10)

	b.ScrollHalfPage(1)
	assert.Equal(t, 5, cursor(b).Row)

	b.ScrollPage(1)
	assert.Equal(t, 15, cursor(b).Row)

	b.ScrollPage(-1)
	b.ScrollPage(-1)
	assert.Equal(t, 0, cursor(b).Row)

	b.ScrollLines(3)
	assert.Equal(t, 3, cursor(b).Row, "cursor is dragged into the viewport")

	b.ScrollLines(-1)
	assert.Equal(t, 3, cursor(b).Row, "cursor already visible stays")

	b.ScrollPage(10)
	assert.Equal(t, 39, cursor(b).Row)
}
