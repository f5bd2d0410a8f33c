package vim

import "fmt"

// TransitionKind is the kind of outcome of one key dispatch.
type TransitionKind int

const (
	TransitionNoOp TransitionKind = iota
	TransitionMode
	TransitionPending
	TransitionQuit
)

// Transition is the result of feeding one Input to the controller.
// Mode is set for TransitionMode, Input for TransitionPending.
type Transition struct {
	Kind  TransitionKind
	Mode  Mode
	Input Input
}

// NoOp means nothing changed at the mode level.
func NoOp() Transition { return Transition{Kind: TransitionNoOp} }

// ModeChanged asks the host to make m the current mode.
func ModeChanged(m Mode) Transition { return Transition{Kind: TransitionMode, Mode: m} }

// Pending carries an input the controller did not consume. The host keeps
// it for the next dispatch, which may combine with it (gg).
func Pending(in Input) Transition { return Transition{Kind: TransitionPending, Input: in} }

// Quit asks the host to end the editing session.
func Quit() Transition { return Transition{Kind: TransitionQuit} }

func (t Transition) String() string {
	switch t.Kind {
	case TransitionNoOp:
		return "NoOp"
	case TransitionMode:
		return fmt.Sprintf("Mode(%s)", t.Mode)
	case TransitionPending:
		return fmt.Sprintf("Pending(%s)", t.Input)
	case TransitionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
