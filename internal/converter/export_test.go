package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/resto/internal/types"
)

func sampleRequest() *types.HttpRequest {
	req := types.NewRequest()
	req.Method = types.MethodPost
	req.URL = "https://x.io/items"
	req.Headers = map[string]string{"Content-Type": "application/json", "Authorization": "Bearer t"}
	req.Query = map[string]string{"dry": "1"}
	req.Body = `{"name":"it's"}`
	return req
}

func TestToCurl(t *testing.T) {
	got, err := ToCurl(sampleRequest())
	require.NoError(t, err)
	assert.Equal(t,
		`curl -X POST 'https://x.io/items?dry=1' -H 'Authorization: Bearer t' -H 'Content-Type: application/json' --data-raw '{"name":"it'\''s"}'`,
		got)
}

func TestToCurlRoundTrip(t *testing.T) {
	orig := sampleRequest()
	line, err := ToCurl(orig)
	require.NoError(t, err)

	back, err := ParseCurl(line)
	require.NoError(t, err)
	assert.Equal(t, orig.Method, back.Method)
	assert.Equal(t, orig.URL, back.URL)
	assert.Equal(t, orig.Headers, back.Headers)
	assert.Equal(t, orig.Query, back.Query)
	assert.Equal(t, orig.Body, back.Body)
}

func TestToCurlGetOmitsMethodAndBody(t *testing.T) {
	req := types.NewRequest()
	req.URL = "https://x.io"
	req.Body = "ignored"
	got, err := ToCurl(req)
	require.NoError(t, err)
	assert.Equal(t, `curl 'https://x.io'`, got)
}

func TestFilterSensitiveHeaders(t *testing.T) {
	req := sampleRequest()
	req.Headers["x-api-key"] = "k"
	FilterSensitiveHeaders(req)
	assert.Equal(t, redacted, req.Headers["Authorization"])
	assert.Equal(t, redacted, req.Headers["x-api-key"])
	assert.Equal(t, "application/json", req.Headers["Content-Type"])
}

func TestRender(t *testing.T) {
	req := sampleRequest()

	httpOut, err := Render(req, FormatHTTP)
	require.NoError(t, err)
	assert.Equal(t, "POST https://x.io/items?dry=1\nAuthorization: Bearer t\nContent-Type: application/json\n\n{\"name\":\"it's\"}\n", httpOut)

	jsonOut, err := Render(req, FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, jsonOut, `"method": "POST"`)
	assert.NotContains(t, jsonOut, req.ID)

	yamlOut, err := Render(req, FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, yamlOut, "method: POST\n")
	assert.Contains(t, yamlOut, "url: https://x.io/items\n")

	_, err = Render(req, "xml")
	assert.Error(t, err)
}
