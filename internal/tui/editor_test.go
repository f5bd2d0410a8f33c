package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/resto/internal/clipboard"
	"github.com/studiowebux/resto/internal/vim"
)

func feed(e *fieldEditor, inputs ...vim.Input) editResult {
	res := editContinue
	for _, in := range inputs {
		res = e.handle(in)
		if res != editContinue {
			return res
		}
	}
	return res
}

func chars(s string) []vim.Input {
	out := make([]vim.Input, 0, len(s))
	for _, r := range s {
		out = append(out, vim.Char(r))
	}
	return out
}

func TestFieldEditorOpeningMode(t *testing.T) {
	cb := clipboard.NewRegister(false)

	tests := []struct {
		name    string
		target  editTarget
		content string
		want    vim.ModeKind
	}{
		{"empty url", targetURL, "", vim.ModeInsert},
		{"filled url", targetURL, "https://a.test", vim.ModeNormal},
		{"empty body", targetBody, "", vim.ModeInsert},
		{"filled body", targetBody, "{}", vim.ModeNormal},
		{"inspect", targetInspect, "", vim.ModeNormal},
		{"filter prompt", targetFilter, "items", vim.ModeInsert},
		{"search prompt", targetSearch, "users", vim.ModeInsert},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newFieldEditor(tt.target, tt.name, tt.content, cb)
			assert.Equal(t, tt.want, e.mode().Kind)
			assert.Equal(t, tt.content, e.text())
		})
	}
}

func TestFieldEditorSingleLineEnterCommits(t *testing.T) {
	e := newFieldEditor(targetURL, "URL", "", clipboard.NewRegister(false))

	assert.Equal(t, editContinue, feed(e, chars("http://x")...))
	assert.Equal(t, editCommit, e.handle(vim.Named(vim.KeyEnter)))
	assert.Equal(t, "http://x", e.text())
}

func TestFieldEditorMultiLineEnterInserts(t *testing.T) {
	e := newFieldEditor(targetBody, "Body", "", clipboard.NewRegister(false))

	feed(e, chars("a")...)
	assert.Equal(t, editContinue, e.handle(vim.Named(vim.KeyEnter)))
	feed(e, chars("b")...)
	assert.Equal(t, "a\nb", e.text())

	assert.Equal(t, editContinue, e.handle(vim.Named(vim.KeyEsc)))
	assert.Equal(t, editCommit, e.handle(vim.Named(vim.KeyEnter)))
}

func TestFieldEditorEscInNormalCancels(t *testing.T) {
	e := newFieldEditor(targetBody, "Body", "text", clipboard.NewRegister(false))
	require.Equal(t, vim.ModeNormal, e.mode().Kind)
	assert.Equal(t, editCancel, e.handle(vim.Named(vim.KeyEsc)))
}

func TestFieldEditorEscLeavesVisual(t *testing.T) {
	e := newFieldEditor(targetBody, "Body", "text", clipboard.NewRegister(false))

	e.handle(vim.Char('v'))
	require.Equal(t, vim.ModeVisual, e.mode().Kind)
	assert.Equal(t, editContinue, e.handle(vim.Named(vim.KeyEsc)))
	assert.Equal(t, vim.ModeNormal, e.mode().Kind)
}

func TestFieldEditorEscDropsOperator(t *testing.T) {
	e := newFieldEditor(targetBody, "Body", "one two", clipboard.NewRegister(false))

	e.handle(vim.Char('d'))
	require.True(t, e.mode().IsOperator())
	assert.Equal(t, editContinue, e.handle(vim.Named(vim.KeyEsc)))
	assert.Equal(t, vim.ModeNormal, e.mode().Kind)

	_, _, selecting := e.buf.Selection()
	assert.False(t, selecting)
	assert.Equal(t, "one two", e.text())
}

func TestFieldEditorDeleteWord(t *testing.T) {
	e := newFieldEditor(targetBody, "Body", "one two", clipboard.NewRegister(false))

	feed(e, vim.Char('d'), vim.Char('w'))
	assert.Equal(t, "two", e.text())
	assert.Equal(t, vim.ModeNormal, e.mode().Kind)
}

func TestFieldEditorYankReachesRegister(t *testing.T) {
	cb := clipboard.NewRegister(false)
	src := newFieldEditor(targetBody, "Body", "hello world", cb)
	feed(src, vim.Char('y'), vim.Char('w'))

	got, err := cb.Get()
	require.NoError(t, err)
	assert.Equal(t, "hello ", got)

	dst := newFieldEditor(targetHeaders, "Headers", "x", cb)
	feed(dst, vim.Char('$'), vim.Char('p'))
	assert.Equal(t, "xhello ", dst.text())
}

func TestFieldEditorPaste(t *testing.T) {
	e := newFieldEditor(targetURL, "URL", "", clipboard.NewRegister(false))
	e.paste("https://a.test\n")
	assert.Equal(t, "https://a.test ", e.text(), "single-line fields fold newlines")

	ro := newFieldEditor(targetInspect, "Inspect", "body", clipboard.NewRegister(false))
	ro.paste("ignored")
	assert.Equal(t, "body", ro.text())
}

func TestFieldEditorView(t *testing.T) {
	e := newFieldEditor(targetBody, "Body", "line1\nline2\nline3", clipboard.NewRegister(false))
	view := e.view(20, 2)
	assert.Contains(t, view, "line1")
	assert.NotContains(t, view, "line3")
}
