package textbuf

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// clusters splits s into grapheme clusters. Columns in a Buffer index
// into this slice, never into bytes or runes.
func clusters(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

func length(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// splitAt cuts s before grapheme col.
func splitAt(s string, col int) (string, string) {
	cs := clusters(s)
	if col <= 0 {
		return "", s
	}
	if col >= len(cs) {
		return s, ""
	}
	return strings.Join(cs[:col], ""), strings.Join(cs[col:], "")
}

type charClass int

const (
	classSpace charClass = iota
	classWord
	classPunct
)

func classOf(cluster string) charClass {
	r := []rune(cluster)[0]
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return classWord
	default:
		return classPunct
	}
}
