package vim

// CursorMove is a cursor motion understood by a TextBuffer.
type CursorMove int

const (
	CursorBack CursorMove = iota
	CursorForward
	CursorUp
	CursorDown
	CursorWordForward
	CursorWordBack
	CursorWordEnd
	CursorHead
	CursorEnd
	CursorTop
	CursorBottom
)

// TextBuffer is the editing surface the controller drives. The controller
// never inspects text, only the cursor position.
type TextBuffer interface {
	MoveCursor(m CursorMove)
	Cursor() (row, col int)

	StartSelection()
	CancelSelection()

	// The editing calls below first delete an active selection and always
	// leave the buffer without one. DeleteLineByEnd and DeleteNextChar then
	// stop there; at a line end DeleteLineByEnd does nothing and never joins
	// the next line.
	DeleteLineByEnd() bool
	DeleteNextChar() bool
	InsertNewline()

	Undo() bool
	Redo() bool

	// Cut and Copy act on the active selection and fill the yank slot.
	Cut() bool
	Copy()
	// Paste replaces the selection, if any, with the yank slot.
	Paste() bool
	YankText() string
	SetYankText(text string)

	// ScrollLines scrolls by n rows; dir is +1 (down) or -1 (up) for the
	// page variants.
	ScrollLines(n int)
	ScrollHalfPage(dir int)
	ScrollPage(dir int)

	// Input applies an Insert mode keystroke and reports whether the text
	// changed.
	Input(in Input) bool
}

// Clipboard is the register shared by every field being edited.
type Clipboard interface {
	Get() (string, error)
	Set(text string) error
}
