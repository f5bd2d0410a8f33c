// Package format turns request and response data into display text.
package format

import (
	"encoding/json"
	"fmt"
	"mime"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/tidwall/pretty"

	"github.com/studiowebux/resto/internal/types"
)

// KeyValues renders m sorted by key as "key : value" lines with the keys
// padded to the longest one.
func KeyValues(m map[string]string) string {
	if len(m) == 0 {
		return ""
	}
	keys := types.SortedKeys(m)
	width := 0
	for _, k := range keys {
		width = max(width, len(k))
	}
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%-*s : %s", width, k, m[k]))
	}
	return strings.Join(lines, "\n")
}

var prettyOptions = &pretty.Options{Width: 80, Indent: "  "}

// PrettyJSON indents body when it is valid JSON and returns it unchanged
// otherwise.
func PrettyJSON(body string) string {
	if !json.Valid([]byte(body)) {
		return body
	}
	return strings.TrimRight(string(pretty.PrettyOptions([]byte(body), prettyOptions)), "\n")
}

// Body prepares a response body for display: JSON is indented, everything
// else is passed through.
func Body(result *types.RequestResult) string {
	if result == nil {
		return ""
	}
	if result.IsJSON() {
		return PrettyJSON(result.Body)
	}
	return result.Body
}

const (
	highlightStyle     = "monokai"
	highlightFormatter = "terminal256"
)

// Highlight colours source for a terminal using the lexer matching
// contentType, guessing from the content when the type is unknown. It
// returns source unchanged if nothing matches.
func Highlight(source, contentType string) string {
	lexer := lexerFor(source, contentType)
	if lexer == nil {
		return source
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(highlightStyle)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get(highlightFormatter)

	it, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}
	var sb strings.Builder
	if err := formatter.Format(&sb, style, it); err != nil {
		return source
	}
	return sb.String()
}

func lexerFor(source, contentType string) chroma.Lexer {
	if contentType != "" {
		mt, _, err := mime.ParseMediaType(contentType)
		if err == nil {
			if l := lexers.MatchMimeType(mt); l != nil {
				return l
			}
			if strings.HasSuffix(mt, "+json") {
				return lexers.Get("json")
			}
		}
	}
	return lexers.Analyse(source)
}

// Wrap word-wraps text to width. A non-positive width disables wrapping.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

var (
	statusOK       = lipgloss.Color("2")
	statusRedirect = lipgloss.Color("3")
	statusClient   = lipgloss.Color("1")
	statusServer   = lipgloss.Color("5")
	statusOther    = lipgloss.Color("7")
)

// StatusColor picks the colour for an HTTP status code.
func StatusColor(status int) lipgloss.Color {
	switch {
	case status >= 200 && status < 300:
		return statusOK
	case status >= 300 && status < 400:
		return statusRedirect
	case status >= 400 && status < 500:
		return statusClient
	case status >= 500 && status < 600:
		return statusServer
	default:
		return statusOther
	}
}
