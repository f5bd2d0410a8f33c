package keybinds

import (
	"fmt"
	"sort"
	"strings"
)

// Severity ranks a Problem.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Problem is one questionable binding.
type Problem struct {
	Severity Severity
	Context  Context
	Key      string
	Message  string
}

func (p Problem) Error() string {
	return fmt.Sprintf("[%s] %s in context '%s': %s", p.Severity, p.Key, p.Context, p.Message)
}

// Report is the outcome of Check, ordered by context then key.
type Report struct {
	Problems []Problem
}

func (r Report) HasErrors() bool {
	for _, p := range r.Problems {
		if p.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Warnings returns the non-fatal problems.
func (r Report) Warnings() []Problem {
	var out []Problem
	for _, p := range r.Problems {
		if p.Severity == SeverityWarning {
			out = append(out, p)
		}
	}
	return out
}

func (r Report) String() string {
	if len(r.Problems) == 0 {
		return "No issues found"
	}
	lines := make([]string, len(r.Problems))
	for i, p := range r.Problems {
		lines[i] = "  - " + p.Error()
	}
	return strings.Join(lines, "\n")
}

// forceQuitKey always quits, whatever the user binds.
const forceQuitKey = "ctrl+c"

// namedKeys are the multi-character key names bubbletea reports.
var namedKeys = map[string]bool{
	"enter": true, "esc": true, "tab": true, "backspace": true, "delete": true,
	"up": true, "down": true, "left": true, "right": true, "home": true,
	"end": true, "pgup": true, "pgdown": true, "space": true, "insert": true,
}

// Check inspects r for bindings that cannot work as written. Unknown
// actions are errors; everything else is a warning.
func Check(r *Registry) Report {
	var rep Report
	add := func(sev Severity, c Context, key, msg string) {
		rep.Problems = append(rep.Problems, Problem{Severity: sev, Context: c, Key: key, Message: msg})
	}

	global := r.bindings[ContextGlobal]
	for c, bindings := range r.bindings {
		for key, action := range bindings {
			if !IsKnownAction(action) {
				add(SeverityError, c, key, fmt.Sprintf("unknown action %q", action))
				continue
			}
			if key == forceQuitKey && action != ActionQuitForce {
				add(SeverityWarning, c, key, "ctrl+c always force quits; this binding is ignored while editing")
			}
			if !matchable(key) {
				add(SeverityWarning, c, key, "multi-key sequence is never matched")
			}
			if c == ContextGlobal {
				continue
			}
			if g, ok := global[key]; ok && g != action {
				add(SeverityWarning, c, key, fmt.Sprintf("shadows global binding (%s -> %s)", g, action))
			}
		}
	}

	sort.Slice(rep.Problems, func(i, j int) bool {
		a, b := rep.Problems[i], rep.Problems[j]
		if a.Context != b.Context {
			return a.Context < b.Context
		}
		return a.Key < b.Key
	})
	return rep
}

// matchable reports whether MatchMultiKey can ever produce key. Only "gg"
// is recognised as a sequence.
func matchable(key string) bool {
	return len([]rune(key)) <= 1 || strings.Contains(key, "+") || namedKeys[key] || key == "gg"
}

var modifiers = []string{"ctrl+", "alt+", "shift+", "super+"}

// ValidateKey rejects empty keys and bare modifiers such as "ctrl+".
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	for _, mod := range modifiers {
		if key == mod {
			return fmt.Errorf("modifier without key: %s", key)
		}
	}
	return nil
}
