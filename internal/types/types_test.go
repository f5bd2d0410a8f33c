package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodCycle(t *testing.T) {
	m := MethodGet
	seen := []HttpMethod{m}
	for i := 0; i < len(Methods); i++ {
		m = m.Next()
		seen = append(seen, m)
	}
	assert.Equal(t, []HttpMethod{
		MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch, MethodHead, MethodOptions, MethodGet,
	}, seen)

	assert.Equal(t, MethodOptions, MethodGet.Prev())
	assert.Equal(t, MethodGet, MethodPost.Prev())
	for _, m := range Methods {
		assert.Equal(t, m, m.Next().Prev())
	}
}

func TestMethodHasBody(t *testing.T) {
	for _, m := range Methods {
		want := m == MethodPost || m == MethodPut || m == MethodPatch
		assert.Equal(t, want, m.HasBody(), m)
	}
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod(" patch ")
	require.NoError(t, err)
	assert.Equal(t, MethodPatch, m)

	_, err = ParseMethod("TRACE")
	assert.Error(t, err)
}

func TestNewRequest(t *testing.T) {
	a, b := NewRequest(), NewRequest()
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, MethodGet, a.Method)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"", false},
		{"example.com", false},
		{"http://example.com", true},
		{"https://example.com/x", true},
	}
	for _, tt := range tests {
		r := &HttpRequest{URL: tt.url}
		assert.Equal(t, tt.want, r.IsValid(), tt.url)
	}
}

func TestContentTypeIsCaseInsensitive(t *testing.T) {
	r := &HttpRequest{Headers: map[string]string{"content-type": "application/json"}}
	assert.Equal(t, "application/json", r.ContentType())

	r = &HttpRequest{}
	assert.Equal(t, "", r.ContentType())
}

func TestFullURL(t *testing.T) {
	r := &HttpRequest{
		URL:   "https://api.example.com/items?page=1&sort=asc",
		Query: map[string]string{"page": "2", "q": "a b"},
	}
	got, err := r.FullURL()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/items?page=2&q=a+b&sort=asc", got)

	r = &HttpRequest{URL: "http://x"}
	got, err = r.FullURL()
	require.NoError(t, err)
	assert.Equal(t, "http://x", got)
}

func TestKeyValueRoundTrip(t *testing.T) {
	r := &HttpRequest{Headers: map[string]string{"Accept": "*/*", "X-Id": "1"}}
	text := r.HeadersText()
	assert.Equal(t, "Accept: */*\nX-Id: 1", text)
	assert.Equal(t, r.Headers, ParseKeyValues(text, ":"))
}

func TestParseKeyValues(t *testing.T) {
	text := "  Authorization: Bearer a:b  \n\n# comment\nnot a header\n: empty key\nX-Empty:"
	got := ParseKeyValues(text, ":")
	assert.Equal(t, map[string]string{
		"Authorization": "Bearer a:b",
		"X-Empty":       "",
	}, got)

	assert.Equal(t, map[string]string{"q": "a=b"}, ParseKeyValues("q=a=b", "="))
}

func TestClone(t *testing.T) {
	r := NewRequest()
	r.Headers["A"] = "1"
	c := r.Clone()
	c.Headers["A"] = "2"
	assert.Equal(t, "1", r.Headers["A"])
}

func TestResultClasses(t *testing.T) {
	tests := []struct {
		status                            int
		success, redirect, client, server bool
	}{
		{200, true, false, false, false},
		{204, true, false, false, false},
		{301, false, true, false, false},
		{404, false, false, true, false},
		{503, false, false, false, true},
	}
	for _, tt := range tests {
		r := &RequestResult{Status: tt.status}
		assert.Equal(t, tt.success, r.IsSuccess(), tt.status)
		assert.Equal(t, tt.redirect, r.IsRedirect(), tt.status)
		assert.Equal(t, tt.client, r.IsClientError(), tt.status)
		assert.Equal(t, tt.server, r.IsServerError(), tt.status)
	}
}

func TestResultContentKinds(t *testing.T) {
	r := &RequestResult{Headers: map[string]string{"Content-Type": "application/json; charset=utf-8"}}
	assert.True(t, r.IsJSON())
	assert.False(t, r.IsXML())

	r = &RequestResult{Headers: map[string]string{"content-type": "text/xml"}}
	assert.True(t, r.IsXML())

	r = &RequestResult{Headers: map[string]string{"Content-Type": "text/html"}}
	assert.True(t, r.IsHTML())
}

func TestHistoryTitle(t *testing.T) {
	h := HistoryEntry{Request: HttpRequest{Method: MethodPost, URL: "http://x/y"}}
	assert.Equal(t, "POST http://x/y", h.Title())
}
