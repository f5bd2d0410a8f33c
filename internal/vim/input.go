package vim

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Key is a key identifier, either a character or a named key.
type Key int

const (
	KeyNull Key = iota
	KeyChar
	KeyEsc
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

var keyNames = map[Key]string{
	KeyNull:      "null",
	KeyEsc:       "esc",
	KeyEnter:     "enter",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyTab:       "tab",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
}

// Input is a normalized key event. Char is only set when Key is KeyChar.
type Input struct {
	Key  Key
	Char rune
	Ctrl bool
	Alt  bool
}

// Char returns the input for an unmodified character key.
func Char(r rune) Input { return Input{Key: KeyChar, Char: r} }

// Ctrl returns the input for Ctrl+r.
func Ctrl(r rune) Input { return Input{Key: KeyChar, Char: r, Ctrl: true} }

// Named returns the input for a named key such as KeyEsc.
func Named(k Key) Input { return Input{Key: k} }

// Is reports whether in is the character r, ignoring modifiers.
func (in Input) Is(r rune) bool { return in.Key == KeyChar && in.Char == r }

// IsPlain reports whether in is the character r without Ctrl.
func (in Input) IsPlain(r rune) bool { return in.Is(r) && !in.Ctrl }

// IsCtrl reports whether in is Ctrl+r.
func (in Input) IsCtrl(r rune) bool { return in.Is(r) && in.Ctrl }

func (in Input) String() string {
	var s string
	if in.Key == KeyChar {
		s = string(in.Char)
	} else {
		s = keyNames[in.Key]
	}
	if in.Alt {
		s = "alt+" + s
	}
	if in.Ctrl {
		s = "ctrl+" + s
	}
	return s
}

// GoString keeps test failure output readable.
func (in Input) GoString() string { return fmt.Sprintf("vim.Input(%q)", in.String()) }

// FromKeyMsg converts a bubbletea key event. Multi-rune events (pastes)
// yield one Input per rune.
func FromKeyMsg(msg tea.KeyMsg) []Input {
	switch msg.Type {
	case tea.KeyRunes:
		inputs := make([]Input, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			inputs = append(inputs, Input{Key: KeyChar, Char: r, Alt: msg.Alt})
		}
		return inputs
	case tea.KeySpace:
		return []Input{{Key: KeyChar, Char: ' ', Alt: msg.Alt}}
	case tea.KeyEsc:
		return []Input{Named(KeyEsc)}
	case tea.KeyEnter:
		return []Input{{Key: KeyEnter, Alt: msg.Alt}}
	case tea.KeyBackspace:
		return []Input{Named(KeyBackspace)}
	case tea.KeyDelete:
		return []Input{Named(KeyDelete)}
	case tea.KeyTab:
		return []Input{Named(KeyTab)}
	case tea.KeyLeft:
		return []Input{Named(KeyLeft)}
	case tea.KeyRight:
		return []Input{Named(KeyRight)}
	case tea.KeyUp:
		return []Input{Named(KeyUp)}
	case tea.KeyDown:
		return []Input{Named(KeyDown)}
	case tea.KeyHome:
		return []Input{Named(KeyHome)}
	case tea.KeyEnd:
		return []Input{Named(KeyEnd)}
	case tea.KeyPgUp:
		return []Input{Named(KeyPageUp)}
	case tea.KeyPgDown:
		return []Input{Named(KeyPageDown)}
	}

	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		return []Input{Ctrl(rune('a' + int(msg.Type-tea.KeyCtrlA)))}
	}

	return []Input{Named(KeyNull)}
}
