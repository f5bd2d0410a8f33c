package tui

import (
	"github.com/studiowebux/resto/internal/textbuf"
	"github.com/studiowebux/resto/internal/vim"
)

// editTarget is the field a fieldEditor writes back to.
type editTarget int

const (
	targetURL editTarget = iota
	targetHeaders
	targetBody
	targetQuery
	targetInspect
	targetFilter
	targetSearch
)

func (t editTarget) singleLine() bool {
	return t == targetURL || t == targetFilter || t == targetSearch
}

// editResult tells the model what to do after an input.
type editResult int

const (
	editContinue editResult = iota
	editCommit
	editCancel
)

// fieldEditor is one editing session: a vim controller driving a text
// buffer. The model owns at most one at a time.
type fieldEditor struct {
	target   editTarget
	title    string
	buf      *textbuf.Buffer
	ctl      *vim.Controller
	cb       vim.Clipboard
	readOnly bool
	original string
}

func newFieldEditor(target editTarget, title, content string, cb vim.Clipboard) *fieldEditor {
	e := &fieldEditor{
		target:   target,
		title:    title,
		cb:       cb,
		readOnly: target == targetInspect,
		original: content,
	}
	if target.singleLine() {
		e.buf = textbuf.NewSingleLine(content)
	} else {
		e.buf = textbuf.New(content)
	}
	switch {
	case e.readOnly:
		e.ctl = vim.New(vim.Normal(), cb)
	case target == targetFilter || target == targetSearch:
		// prompts open in Insert mode at the end of their text
		e.ctl = vim.New(vim.Insert(), cb)
		e.buf.MoveCursor(vim.CursorEnd)
	default:
		e.ctl = vim.NewForContent(content, cb)
	}
	return e
}

// mode is the controller's current mode.
func (e *fieldEditor) mode() vim.Mode { return e.ctl.Mode() }

func (e *fieldEditor) text() string { return e.buf.Text() }

// handle feeds one input to the controller.
//
// Enter commits from Normal mode, and from Insert mode in a single-line
// field. Esc in Normal mode cancels. Esc while an operator is pending drops
// the operator.
func (e *fieldEditor) handle(in vim.Input) editResult {
	before := e.ctl.Mode()
	if in.Key == vim.KeyEnter && before.Kind == vim.ModeInsert && e.buf.SingleLine() {
		return editCommit
	}

	t := e.ctl.Handle(in, e.buf)
	switch t.Kind {
	case vim.TransitionQuit:
		return editCancel
	case vim.TransitionPending:
		switch {
		case before.Kind == vim.ModeNormal && in.Key == vim.KeyEsc:
			return editCancel
		case before.Kind == vim.ModeNormal && in.Key == vim.KeyEnter:
			return editCommit
		case before.IsOperator() && in.Key == vim.KeyEsc:
			e.buf.CancelSelection()
			e.ctl = vim.New(vim.Normal(), e.cb)
		}
	}
	return editContinue
}

// paste inserts text at the cursor regardless of mode.
func (e *fieldEditor) paste(text string) {
	if e.readOnly {
		return
	}
	e.buf.InsertString(text)
}

// view renders the visible part of the buffer.
func (e *fieldEditor) view(width, height int) string {
	e.buf.SetHeight(max(1, height))
	st := textbuf.DefaultStyle(width)
	st.Cursor = e.mode().CursorStyle()
	return e.buf.View(st)
}
