package converter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/resto/internal/types"
)

func TestParseCurlBrowserCopy(t *testing.T) {
	cmd := `
		curl 'https://api.example.com/users/me/' \
		  -H 'Accept: application/json, text/plain, */*' \
		  -H 'Authorization: Bearer some_jwt_token' \
		  -H 'Connection: keep-alive' \
		  -H 'Origin: https://api.example.com' \
		  -H 'Referer: https://api.example.com' \
		  -H 'Sec-Fetch-Site: same-site' \
		`

	req, err := ParseCurl(cmd)
	require.NoError(t, err)
	assert.Equal(t, types.MethodGet, req.Method)
	assert.Equal(t, "https://api.example.com/users/me/", req.URL)
	assert.Equal(t, "", req.Body)
	assert.Equal(t, map[string]string{
		"Accept":         "application/json, text/plain, */*",
		"Authorization":  "Bearer some_jwt_token",
		"Connection":     "keep-alive",
		"Origin":         "https://api.example.com",
		"Referer":        "https://api.example.com",
		"Sec-Fetch-Site": "same-site",
	}, req.Headers)
}

func TestParseCurlFlags(t *testing.T) {
	tests := []struct {
		name    string
		cmd     string
		method  types.HttpMethod
		url     string
		query   map[string]string
		headers map[string]string
		body    string
	}{
		{
			name:    "data implies POST",
			cmd:     `curl https://x.io/items -d '{"a":1}' -H "Content-Type: application/json"`,
			method:  types.MethodPost,
			url:     "https://x.io/items",
			headers: map[string]string{"Content-Type": "application/json"},
			body:    `{"a":1}`,
		},
		{
			name:   "explicit method wins",
			cmd:    `curl -X PUT --data-raw 'x=1' https://x.io`,
			method: types.MethodPut,
			url:    "https://x.io",
			body:   "x=1",
		},
		{
			name:    "attached and long forms",
			cmd:     `curl -XPATCH --header='X-A: 1' --url=https://x.io/a`,
			method:  types.MethodPatch,
			url:     "https://x.io/a",
			headers: map[string]string{"X-A": "1"},
		},
		{
			name:   "query string moves to Query",
			cmd:    `curl 'https://x.io/search?q=go&page=2'`,
			method: types.MethodGet,
			url:    "https://x.io/search",
			query:  map[string]string{"q": "go", "page": "2"},
		},
		{
			name:   "get mode turns data into query",
			cmd:    `curl -G https://x.io/s -d q=go -d limit=5`,
			method: types.MethodGet,
			url:    "https://x.io/s",
			query:  map[string]string{"q": "go", "limit": "5"},
		},
		{
			name:   "multiple data joined",
			cmd:    `curl https://x.io --data a=1 --data b=2`,
			method: types.MethodPost,
			url:    "https://x.io",
			body:   "a=1&b=2",
		},
		{
			name:    "user, agent, cookie, referer",
			cmd:     `curl -u bob:secret -A resto -b 'sid=1' -e https://ref.io https://x.io`,
			method:  types.MethodGet,
			url:     "https://x.io",
			headers: map[string]string{
				"Authorization": "Basic Ym9iOnNlY3JldA==",
				"User-Agent":    "resto",
				"Cookie":        "sid=1",
				"Referer":       "https://ref.io",
			},
		},
		{
			name:   "head flag",
			cmd:    `curl -I https://x.io`,
			method: types.MethodHead,
			url:    "https://x.io",
		},
		{
			name:   "unknown flags skipped",
			cmd:    `curl -s -L --compressed -o out.json --max-time 5 -k https://x.io`,
			method: types.MethodGet,
			url:    "https://x.io",
		},
		{
			name:    "json flag",
			cmd:     `curl --json '{"a":true}' https://x.io`,
			method:  types.MethodPost,
			url:     "https://x.io",
			headers: map[string]string{"Content-Type": "application/json", "Accept": "application/json"},
			body:    `{"a":true}`,
		},
		{
			name:   "ansi c quoting",
			cmd:    `curl https://x.io --data-raw $'line1\nit\'s'`,
			method: types.MethodPost,
			url:    "https://x.io",
			body:   "line1\nit's",
		},
		{
			name:   "double quote escapes",
			cmd:    `curl https://x.io -d "{\"a\":\"\$b\"}"`,
			method: types.MethodPost,
			url:    "https://x.io",
			body:   `{"a":"$b"}`,
		},
		{
			name:   "without curl prefix",
			cmd:    `https://x.io/ping`,
			method: types.MethodGet,
			url:    "https://x.io/ping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseCurl(tt.cmd)
			require.NoError(t, err)
			assert.Equal(t, tt.method, req.Method)
			assert.Equal(t, tt.url, req.URL)
			assert.Equal(t, tt.body, req.Body)
			if tt.headers == nil {
				tt.headers = map[string]string{}
			}
			if tt.query == nil {
				tt.query = map[string]string{}
			}
			assert.Equal(t, tt.headers, req.Headers)
			assert.Equal(t, tt.query, req.Query)
		})
	}
}

func TestParseCurlErrors(t *testing.T) {
	for _, cmd := range []string{
		`curl -H 'Accept: x'`,
		`curl 'https://x.io`,
		`curl https://x.io -X`,
		`curl -X TRACE https://x.io`,
		``,
	} {
		_, err := ParseCurl(cmd)
		assert.Error(t, err, cmd)
	}
}

func TestLooksLikeCurl(t *testing.T) {
	assert.True(t, LooksLikeCurl("  curl https://x.io"))
	assert.False(t, LooksLikeCurl("curly braces"))
	assert.False(t, LooksLikeCurl("https://x.io"))
}

func TestReadCurl(t *testing.T) {
	got, err := ReadCurl(strings.NewReader("curl https://x.io\n"))
	require.NoError(t, err)
	assert.Equal(t, "curl https://x.io\n", got)
}
