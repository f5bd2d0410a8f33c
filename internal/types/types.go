package types

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HttpMethod is one of the request methods resto can send.
type HttpMethod string

const (
	MethodGet     HttpMethod = "GET"
	MethodPost    HttpMethod = "POST"
	MethodPut     HttpMethod = "PUT"
	MethodDelete  HttpMethod = "DELETE"
	MethodPatch   HttpMethod = "PATCH"
	MethodHead    HttpMethod = "HEAD"
	MethodOptions HttpMethod = "OPTIONS"
)

// Methods lists the methods in cycling order.
var Methods = []HttpMethod{
	MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch, MethodHead, MethodOptions,
}

// ParseMethod returns the method named s (case-insensitive).
func ParseMethod(s string) (HttpMethod, error) {
	m := HttpMethod(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Methods {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unsupported HTTP method: %q", s)
}

func (m HttpMethod) index() int {
	for i, known := range Methods {
		if m == known {
			return i
		}
	}
	return 0
}

// Next returns the following method, wrapping OPTIONS to GET.
func (m HttpMethod) Next() HttpMethod {
	return Methods[(m.index()+1)%len(Methods)]
}

// Prev returns the preceding method, wrapping GET to OPTIONS.
func (m HttpMethod) Prev() HttpMethod {
	return Methods[(m.index()+len(Methods)-1)%len(Methods)]
}

// HasBody reports whether requests with this method carry a body.
func (m HttpMethod) HasBody() bool {
	return m == MethodPost || m == MethodPut || m == MethodPatch
}

func (m HttpMethod) String() string { return string(m) }

// HttpRequest is a request draft.
type HttpRequest struct {
	ID        string            `json:"id" yaml:"id"`
	Method    HttpMethod        `json:"method" yaml:"method"`
	URL       string            `json:"url" yaml:"url"`
	Headers   map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Query     map[string]string `json:"query,omitempty" yaml:"query,omitempty"`
	Body      string            `json:"body,omitempty" yaml:"body,omitempty"`
	CreatedAt time.Time         `json:"createdAt" yaml:"createdAt"`
}

// NewRequest returns an empty GET request with a fresh ID.
func NewRequest() *HttpRequest {
	return &HttpRequest{
		ID:        uuid.NewString(),
		Method:    MethodGet,
		Headers:   map[string]string{},
		Query:     map[string]string{},
		CreatedAt: time.Now(),
	}
}

// Clone returns a deep copy.
func (r *HttpRequest) Clone() *HttpRequest {
	c := *r
	c.Headers = copyMap(r.Headers)
	c.Query = copyMap(r.Query)
	return &c
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// IsValid reports whether the request can be sent.
func (r *HttpRequest) IsValid() bool {
	return r.URL != "" && strings.HasPrefix(r.URL, "http")
}

// HasBody reports whether the body will be sent.
func (r *HttpRequest) HasBody() bool { return r.Method.HasBody() }

// Header looks a header up case-insensitively.
func (r *HttpRequest) Header(name string) (string, bool) {
	return lookupFold(r.Headers, name)
}

// ContentType returns the Content-Type header, if set.
func (r *HttpRequest) ContentType() string {
	v, _ := r.Header("Content-Type")
	return v
}

// FullURL returns URL with Query merged into its query string. Query
// entries override parameters already present in URL.
func (r *HttpRequest) FullURL() (string, error) {
	if len(r.Query) == 0 {
		return r.URL, nil
	}
	u, err := url.Parse(r.URL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	q := u.Query()
	for k, v := range r.Query {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// HeadersText renders headers as editable "Key: Value" lines.
func (r *HttpRequest) HeadersText() string {
	return KeyValueText(r.Headers, ": ")
}

// QueryText renders query parameters as editable "key=value" lines.
func (r *HttpRequest) QueryText() string {
	return KeyValueText(r.Query, "=")
}

// KeyValueText renders m sorted by key, one "key<sep>value" per line.
func KeyValueText(m map[string]string, sep string) string {
	keys := SortedKeys(m)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+sep+m[k])
	}
	return strings.Join(lines, "\n")
}

// ParseKeyValues parses "key<sep>value" lines. Blank lines, lines starting
// with '#' and lines without sep are skipped; keys and values are trimmed.
func ParseKeyValues(text, sep string) map[string]string {
	out := map[string]string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, sep)
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out[key] = strings.TrimSpace(value)
	}
	return out
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func lookupFold(m map[string]string, name string) (string, bool) {
	if v, ok := m[name]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}
