package filter

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const users = `{"users":[{"name":"ada","active":true},{"name":"bob","active":false}]}`

func TestApplyJMESPath(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"empty returns body", "", users},
		{"projection", "users[].name", "[\n  \"ada\",\n  \"bob\"\n]"},
		{"filter", "users[?active].name | [0]", `"ada"`},
		{"missing field", "nothing", "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(users, tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyErrors(t *testing.T) {
	_, err := Apply("not json", "a")
	assert.ErrorContains(t, err, "invalid JSON")

	_, err = Apply(users, "users[")
	assert.ErrorContains(t, err, "invalid JMESPath")

	// syntax errors win over body errors
	_, err = Apply("not json", "users[")
	assert.ErrorContains(t, err, "invalid JMESPath")
}

func TestApplyShell(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	got, err := Apply("hello\nworld\n", "$(wc -l | tr -d ' ')")
	require.NoError(t, err)
	assert.Equal(t, "2", got)

	_, err = Apply("x", "$(exit 3)")
	assert.Error(t, err)
}

func TestApplyShellHonoursContext(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := ApplyContext(ctx, "", "$(sleep 5)")
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	tests := []struct {
		expr string
		kind Kind
		src  string
	}{
		{"", KindNone, ""},
		{"   ", KindNone, ""},
		{"users[0].name", KindJMESPath, "users[0].name"},
		{" $(jq .) ", KindShell, "jq ."},
		{"$()", KindJMESPath, "$()"},
		{"$(jq", KindJMESPath, "$(jq"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			kind, src := Parse(tt.expr)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.src, src)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(""))
	assert.NoError(t, Validate("users[0].name"))
	assert.NoError(t, Validate("$(anything goes)"))
	assert.ErrorContains(t, Validate("users[0"), "invalid JMESPath")
}
