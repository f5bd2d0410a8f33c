package textbuf

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/studiowebux/resto/internal/vim"
)

// plainStyle renders markers instead of escape codes.
func plainStyle(width int) Style {
	return Style{
		Text:       lipgloss.NewStyle(),
		Cursor:     lipgloss.NewStyle().Transform(func(s string) string { return "[" + s + "]" }),
		Selection:  lipgloss.NewStyle().Transform(strings.ToUpper),
		Width:      width,
		ShowCursor: true,
	}
}

func TestViewCursorAndSelection(t *testing.T) {
	b := New("abcdef\nxyz")
	b.SetCursor(0, 1)
	b.StartSelection()
	b.SetCursor(0, 4)

	assert.Equal(t, "aBCD[e]f\nxyz", b.View(plainStyle(0)))
}

func TestViewCursorPastLineEnd(t *testing.T) {
	b := New("ab")
	b.MoveCursor(vim.CursorEnd)
	assert.Equal(t, "ab[ ]", b.View(plainStyle(0)))
}

func TestViewScrollsToCursor(t *testing.T) {
	b := New("0\n1\n2\n3\n4")
	b.SetHeight(2)
	b.SetCursor(4, 0)
	assert.Equal(t, "3\n[4]", b.View(plainStyle(0)))
}

func TestViewHorizontalScroll(t *testing.T) {
	b := New("0123456789")
	b.MoveCursor(vim.CursorEnd)
	assert.Equal(t, "789[ ]", b.View(plainStyle(4)))

	b.MoveCursor(vim.CursorHead)
	assert.Equal(t, "[0]123", b.View(plainStyle(4)))
}

func TestViewWideRunes(t *testing.T) {
	b := New("日本語")
	b.SetCursor(0, 2)
	assert.Equal(t, "本[語]", b.View(plainStyle(4)))
}
