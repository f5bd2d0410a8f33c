package converter

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/studiowebux/resto/internal/log"
	"github.com/studiowebux/resto/internal/types"
)

// flags whose value is consumed and discarded
var skippedWithValue = map[string]bool{
	"-o": true, "--output": true,
	"-m": true, "--max-time": true,
	"--connect-timeout": true,
	"-w": true, "--write-out": true,
	"-x": true, "--proxy": true,
	"-F": true, "--form": true,
	"--cert": true, "--key": true, "--cacert": true,
	"-r": true, "--range": true,
	"--retry": true,
}

// short flags that accept an attached value (-XPOST, -HAccept:x)
var attachedShort = map[string]bool{
	"-X": true, "-H": true, "-d": true, "-u": true, "-A": true, "-b": true, "-e": true,
}

// ParseCurl converts a curl command line into a request. The leading
// "curl" word is optional. Unknown flags are ignored.
func ParseCurl(cmd string) (*types.HttpRequest, error) {
	tokens, err := tokenize(cmd)
	if err != nil {
		return nil, err
	}
	if len(tokens) > 0 && tokens[0] == "curl" {
		tokens = tokens[1:]
	}

	req := types.NewRequest()
	var (
		method   string
		rawURL   string
		data     []string
		getMode  bool
		headMode bool
	)

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if !strings.HasPrefix(tok, "-") || tok == "-" {
			if rawURL == "" {
				rawURL = tok
			}
			continue
		}

		flag, value, hasValue := splitFlag(tok)
		next := func() (string, error) {
			if hasValue {
				return value, nil
			}
			if i+1 >= len(tokens) {
				return "", fmt.Errorf("missing value for %s", flag)
			}
			i++
			return tokens[i], nil
		}

		switch flag {
		case "-X", "--request":
			v, err := next()
			if err != nil {
				return nil, err
			}
			method = v
		case "-H", "--header":
			v, err := next()
			if err != nil {
				return nil, err
			}
			if key, val, ok := strings.Cut(v, ":"); ok && strings.TrimSpace(key) != "" {
				req.Headers[strings.TrimSpace(key)] = strings.TrimSpace(val)
			}
		case "-d", "--data", "--data-raw", "--data-binary", "--data-ascii", "--data-urlencode":
			v, err := next()
			if err != nil {
				return nil, err
			}
			data = append(data, v)
		case "--json":
			v, err := next()
			if err != nil {
				return nil, err
			}
			data = append(data, v)
			setDefault(req.Headers, "Content-Type", "application/json")
			setDefault(req.Headers, "Accept", "application/json")
		case "--url":
			v, err := next()
			if err != nil {
				return nil, err
			}
			rawURL = v
		case "-G", "--get":
			getMode = true
		case "-I", "--head":
			headMode = true
		case "-u", "--user":
			v, err := next()
			if err != nil {
				return nil, err
			}
			req.Headers["Authorization"] = "Basic " + base64.StdEncoding.EncodeToString([]byte(v))
		case "-A", "--user-agent":
			v, err := next()
			if err != nil {
				return nil, err
			}
			req.Headers["User-Agent"] = v
		case "-b", "--cookie":
			v, err := next()
			if err != nil {
				return nil, err
			}
			req.Headers["Cookie"] = v
		case "-e", "--referer":
			v, err := next()
			if err != nil {
				return nil, err
			}
			req.Headers["Referer"] = v
		default:
			if skippedWithValue[flag] && !hasValue {
				i++
			}
		}
	}

	if rawURL == "" {
		return nil, fmt.Errorf("could not find URL in cURL command")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	for key, values := range u.Query() {
		if len(values) > 0 {
			req.Query[key] = values[len(values)-1]
		}
	}
	u.RawQuery = ""
	req.URL = u.String()

	body := strings.Join(data, "&")
	if getMode && body != "" {
		for key, val := range types.ParseKeyValues(strings.ReplaceAll(body, "&", "\n"), "=") {
			req.Query[key] = val
		}
		body = ""
	}
	req.Body = body

	switch {
	case method != "":
		m, err := types.ParseMethod(method)
		if err != nil {
			return nil, err
		}
		req.Method = m
	case headMode:
		req.Method = types.MethodHead
	case body != "":
		req.Method = types.MethodPost
	default:
		req.Method = types.MethodGet
	}

	log.Debug(log.CatCurl, "parsed curl command",
		"method", req.Method, "url", req.URL, "headers", len(req.Headers), "body", len(req.Body))
	return req, nil
}

// LooksLikeCurl reports whether text is a curl command worth importing.
func LooksLikeCurl(text string) bool {
	t := strings.TrimSpace(text)
	return strings.HasPrefix(t, "curl ") || strings.HasPrefix(t, "curl\t")
}

// ReadCurl reads a whole curl command from r.
func ReadCurl(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read curl command: %w", err)
	}
	return string(data), nil
}

func setDefault(m map[string]string, key, value string) {
	if _, ok := m[key]; !ok {
		m[key] = value
	}
}

// splitFlag separates --flag=value and attached short values like -XPOST.
func splitFlag(tok string) (flag, value string, ok bool) {
	if strings.HasPrefix(tok, "--") {
		if k, v, found := strings.Cut(tok, "="); found {
			return k, v, true
		}
		return tok, "", false
	}
	if len(tok) > 2 && attachedShort[tok[:2]] {
		return tok[:2], tok[2:], true
	}
	return tok, "", false
}

// tokenize splits a shell command line, honouring single quotes, double
// quotes, $'...' strings, backslash escapes and line continuations.
func tokenize(s string) ([]string, error) {
	var (
		tokens  []string
		cur     strings.Builder
		inToken bool
	)
	runes := []rune(s)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\':
			if i+1 < len(runes) {
				i++
				if runes[i] == '\n' || (runes[i] == '\r' && i+1 < len(runes) && runes[i+1] == '\n') {
					if runes[i] == '\r' {
						i++
					}
					continue
				}
				cur.WriteRune(runes[i])
				inToken = true
			}
		case r == '\'':
			end := indexRune(runes, i+1, '\'')
			if end < 0 {
				return nil, fmt.Errorf("unterminated single quote")
			}
			cur.WriteString(string(runes[i+1 : end]))
			inToken = true
			i = end
		case r == '$' && i+1 < len(runes) && runes[i+1] == '\'':
			j, err := ansiQuoted(runes, i+2, &cur)
			if err != nil {
				return nil, err
			}
			inToken = true
			i = j
		case r == '"':
			j, err := doubleQuoted(runes, i+1, &cur)
			if err != nil {
				return nil, err
			}
			inToken = true
			i = j
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	if inToken {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}

func indexRune(runes []rune, from int, r rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

// doubleQuoted copies a "..." string starting after the opening quote and
// returns the index of the closing quote.
func doubleQuoted(runes []rune, i int, out *strings.Builder) (int, error) {
	for ; i < len(runes); i++ {
		switch runes[i] {
		case '"':
			return i, nil
		case '\\':
			if i+1 < len(runes) && strings.ContainsRune("\"\\$`\n", runes[i+1]) {
				i++
				if runes[i] != '\n' {
					out.WriteRune(runes[i])
				}
				continue
			}
			out.WriteRune('\\')
		default:
			out.WriteRune(runes[i])
		}
	}
	return 0, fmt.Errorf("unterminated double quote")
}

// ansiQuoted copies a $'...' string, expanding the common C escapes.
func ansiQuoted(runes []rune, i int, out *strings.Builder) (int, error) {
	for ; i < len(runes); i++ {
		switch runes[i] {
		case '\'':
			return i, nil
		case '\\':
			if i+1 >= len(runes) {
				return 0, fmt.Errorf("unterminated $' quote")
			}
			i++
			switch runes[i] {
			case 'n':
				out.WriteRune('\n')
			case 't':
				out.WriteRune('\t')
			case 'r':
				out.WriteRune('\r')
			default:
				out.WriteRune(runes[i])
			}
		default:
			out.WriteRune(runes[i])
		}
	}
	return 0, fmt.Errorf("unterminated $' quote")
}
