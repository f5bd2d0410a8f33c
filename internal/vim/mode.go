// Package vim implements the modal editing state machine that drives every
// editable field in resto (URL, headers, body, query).
package vim

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ModeKind identifies one of the four editing modes.
type ModeKind int

const (
	ModeNormal ModeKind = iota
	ModeInsert
	ModeVisual
	ModeOperator
)

// Mode is the current editing mode. Op is only meaningful for ModeOperator
// and holds the pending operator ('y', 'd' or 'c').
type Mode struct {
	Kind ModeKind
	Op   rune
}

func Normal() Mode { return Mode{Kind: ModeNormal} }
func Insert() Mode { return Mode{Kind: ModeInsert} }
func Visual() Mode { return Mode{Kind: ModeVisual} }

// Operator returns the operator-pending mode for op.
func Operator(op rune) Mode { return Mode{Kind: ModeOperator, Op: op} }

// IsOperator reports whether m is operator-pending for any operator.
func (m Mode) IsOperator() bool { return m.Kind == ModeOperator }

func (m Mode) String() string {
	switch m.Kind {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeVisual:
		return "VISUAL"
	case ModeOperator:
		return fmt.Sprintf("OPERATOR(%c)", m.Op)
	default:
		return "UNKNOWN"
	}
}

var borderColour = map[ModeKind]lipgloss.Color{
	ModeNormal:   lipgloss.Color("4"),
	ModeInsert:   lipgloss.Color("3"),
	ModeVisual:   lipgloss.Color("6"),
	ModeOperator: lipgloss.Color("2"),
}

var cursorColour = map[ModeKind]lipgloss.Color{
	ModeInsert:   lipgloss.Color("12"),
	ModeVisual:   lipgloss.Color("11"),
	ModeOperator: lipgloss.Color("10"),
}

// BorderColor is the border colour of a field being edited in this mode.
func (m Mode) BorderColor() lipgloss.TerminalColor {
	if c, ok := borderColour[m.Kind]; ok {
		return c
	}
	return lipgloss.NoColor{}
}

// CursorStyle is the style of the cursor cell. Normal mode uses a plain
// block cursor, the other modes a coloured reversed one.
func (m Mode) CursorStyle() lipgloss.Style {
	style := lipgloss.NewStyle().Reverse(true)
	if c, ok := cursorColour[m.Kind]; ok {
		style = style.Foreground(c)
	}
	return style
}

// Block returns a bordered box in the mode's border colour.
func (m Mode) Block() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.BorderColor())
}
