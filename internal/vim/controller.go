package vim

import (
	"github.com/studiowebux/resto/internal/log"
)

// Controller is the modal state of one editing session: the current mode
// plus at most one pending input. It owns no text; every edit goes through
// the TextBuffer passed to Transition.
type Controller struct {
	mode       Mode
	pending    Input
	hasPending bool
	clipboard  Clipboard
}

// New creates a controller in mode. cb may be nil, in which case yanks stay
// in the buffer's own register.
func New(mode Mode, cb Clipboard) *Controller {
	return &Controller{mode: mode, clipboard: cb}
}

// NewForContent picks the opening mode for a field: Insert when the field
// is empty, Normal otherwise.
func NewForContent(content string, cb Clipboard) *Controller {
	if content == "" {
		return New(Insert(), cb)
	}
	return New(Normal(), cb)
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode { return c.mode }

// Pending returns the stored pending input, if any.
func (c *Controller) Pending() (Input, bool) { return c.pending, c.hasPending }

// Handle dispatches in and applies the resulting transition.
func (c *Controller) Handle(in Input, buf TextBuffer) Transition {
	if in.Key == KeyNull {
		return NoOp()
	}
	t := c.Transition(in, buf)
	c.Apply(t)
	return t
}

// Apply folds a transition into the controller. Pending stores its input,
// every other transition clears the pending slot.
func (c *Controller) Apply(t Transition) {
	switch t.Kind {
	case TransitionPending:
		c.pending, c.hasPending = t.Input, true
		return
	case TransitionMode:
		if t.Mode != c.mode {
			log.Debug(log.CatVim, "mode changed", "from", c.mode, "to", t.Mode)
		}
		c.mode = t.Mode
	}
	c.pending, c.hasPending = Input{}, false
}

// Transition maps one input to buffer effects and a Transition. It does not
// change the controller's mode or pending slot; see Apply.
func (c *Controller) Transition(in Input, buf TextBuffer) Transition {
	if in.Key == KeyNull {
		return NoOp()
	}
	if c.mode.Kind == ModeInsert {
		return c.insert(in, buf)
	}

	// Motions fall through to operator resolution below, everything else
	// returns directly.
	switch {
	case in.Is('h'):
		buf.MoveCursor(CursorBack)
	case in.Is('j'):
		buf.MoveCursor(CursorDown)
	case in.Is('k'):
		buf.MoveCursor(CursorUp)
	case in.Is('l'):
		buf.MoveCursor(CursorForward)
	case in.Is('w'):
		buf.MoveCursor(CursorWordForward)
	case in.IsPlain('e'):
		buf.MoveCursor(CursorWordEnd)
		if c.mode.IsOperator() {
			// include the character under the cursor
			buf.MoveCursor(CursorForward)
		}
	case in.IsPlain('b'):
		buf.MoveCursor(CursorWordBack)
	case in.Is('0'):
		buf.MoveCursor(CursorHead)
	case in.Is('$'):
		buf.MoveCursor(CursorEnd)

	case in.Is('D'):
		buf.DeleteLineByEnd()
		c.publishYank(buf)
		return ModeChanged(Normal())
	case in.Is('C'):
		buf.DeleteLineByEnd()
		c.publishYank(buf)
		buf.CancelSelection()
		return ModeChanged(Insert())
	case in.Is('p'):
		c.loadYank(buf)
		buf.Paste()
		return ModeChanged(Normal())
	case in.IsPlain('u'):
		buf.Undo()
		return ModeChanged(Normal())
	case in.IsCtrl('r'):
		buf.Redo()
		return ModeChanged(Normal())
	case in.Is('x'):
		buf.DeleteNextChar()
		return ModeChanged(Normal())
	case in.Is('i'):
		buf.CancelSelection()
		return ModeChanged(Insert())
	case in.Is('a'):
		buf.CancelSelection()
		buf.MoveCursor(CursorForward)
		return ModeChanged(Insert())
	case in.Is('A'):
		buf.CancelSelection()
		buf.MoveCursor(CursorEnd)
		return ModeChanged(Insert())
	case in.Is('o'):
		buf.MoveCursor(CursorEnd)
		buf.InsertNewline()
		return ModeChanged(Insert())
	case in.Is('O'):
		buf.MoveCursor(CursorHead)
		buf.InsertNewline()
		buf.MoveCursor(CursorUp)
		return ModeChanged(Insert())
	case in.Is('I'):
		buf.CancelSelection()
		buf.MoveCursor(CursorHead)
		return ModeChanged(Insert())

	case in.IsCtrl('e'):
		buf.ScrollLines(1)
	case in.IsCtrl('y'):
		buf.ScrollLines(-1)
	case in.IsCtrl('d'):
		buf.ScrollHalfPage(1)
	case in.IsCtrl('u'):
		buf.ScrollHalfPage(-1)
	case in.IsCtrl('f'):
		buf.ScrollPage(1)
	case in.IsCtrl('b'):
		buf.ScrollPage(-1)

	case in.IsPlain('v') && c.mode.Kind == ModeNormal:
		buf.StartSelection()
		return ModeChanged(Visual())
	case in.IsPlain('V') && c.mode.Kind == ModeNormal:
		buf.MoveCursor(CursorHead)
		buf.StartSelection()
		buf.MoveCursor(CursorEnd)
		return ModeChanged(Visual())
	case (in.Key == KeyEsc || in.IsPlain('v')) && c.mode.Kind == ModeVisual:
		buf.CancelSelection()
		return ModeChanged(Normal())

	case in.IsPlain('g') && c.pendingIs('g'):
		buf.MoveCursor(CursorTop)
	case in.IsPlain('G'):
		buf.MoveCursor(CursorBottom)

	case c.mode.IsOperator() && in.IsPlain(c.mode.Op):
		// yy, dd, cc: select from line head to the next line head, or to
		// line end on the last line
		buf.MoveCursor(CursorHead)
		buf.StartSelection()
		row, col := buf.Cursor()
		buf.MoveCursor(CursorDown)
		if r, cl := buf.Cursor(); r == row && cl == col {
			buf.MoveCursor(CursorEnd)
		}

	case isOperator(in) && c.mode.Kind == ModeNormal:
		buf.StartSelection()
		return ModeChanged(Operator(in.Char))

	case isOperator(in) && c.mode.Kind == ModeVisual:
		// the selection end is exclusive; take the cursor cell too
		buf.MoveCursor(CursorForward)
		return c.resolve(in.Char, buf)

	default:
		return Pending(in)
	}

	if c.mode.IsOperator() {
		return c.resolve(c.mode.Op, buf)
	}
	return NoOp()
}

func (c *Controller) insert(in Input, buf TextBuffer) Transition {
	if in.Key == KeyEsc || in.IsCtrl('c') {
		return ModeChanged(Normal())
	}
	buf.Input(in)
	return ModeChanged(Insert())
}

// resolve applies operator op to the current selection.
func (c *Controller) resolve(op rune, buf TextBuffer) Transition {
	switch op {
	case 'y':
		buf.Copy()
		c.publishYank(buf)
		return ModeChanged(Normal())
	case 'd':
		buf.Cut()
		c.publishYank(buf)
		return ModeChanged(Normal())
	case 'c':
		buf.Cut()
		c.publishYank(buf)
		return ModeChanged(Insert())
	}
	return NoOp()
}

func (c *Controller) pendingIs(r rune) bool {
	return c.hasPending && c.pending.IsPlain(r)
}

func isOperator(in Input) bool {
	return in.IsPlain('y') || in.IsPlain('d') || in.IsPlain('c')
}

// publishYank mirrors the buffer's yank slot into the shared clipboard.
// Clipboard failures never reach the editor.
func (c *Controller) publishYank(buf TextBuffer) {
	if c.clipboard == nil {
		return
	}
	text := buf.YankText()
	if text == "" {
		return
	}
	if err := c.clipboard.Set(text); err != nil {
		log.Debug(log.CatVim, "clipboard write failed", "error", err)
	}
}

// loadYank refreshes the buffer's yank slot from the shared clipboard so a
// paste picks up text yanked in another field.
func (c *Controller) loadYank(buf TextBuffer) {
	if c.clipboard == nil {
		return
	}
	text, err := c.clipboard.Get()
	if err != nil {
		log.Debug(log.CatVim, "clipboard read failed", "error", err)
		return
	}
	if text != "" {
		buf.SetYankText(text)
	}
}
