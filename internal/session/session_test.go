package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/resto/internal/types"
)

func TestLoadMissingFile(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, m.Load())

	d := m.Draft()
	assert.Equal(t, types.MethodGet, d.Method)
	assert.Empty(t, d.URL)
	assert.NotEmpty(t, d.ID)
}

func TestSaveAndLoadDraft(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	m := NewManager(path)

	req := types.NewRequest()
	req.Method = types.MethodPatch
	req.URL = "https://api.example.com/items/1"
	req.Headers["Authorization"] = "Bearer x"
	req.Query["dry"] = "true"
	req.Body = `{"name":"new"}`
	m.SetDraft(req)
	m.SetView(2, 1)
	m.SetFilter("items[0]")
	require.NoError(t, m.Save())

	// later edits to req must not leak into the stored draft
	req.URL = "changed"

	loaded := NewManager(path)
	require.NoError(t, loaded.Load())
	d := loaded.Draft()
	assert.Equal(t, types.MethodPatch, d.Method)
	assert.Equal(t, "https://api.example.com/items/1", d.URL)
	assert.Equal(t, map[string]string{"Authorization": "Bearer x"}, d.Headers)
	assert.Equal(t, map[string]string{"dry": "true"}, d.Query)
	assert.Equal(t, `{"name":"new"}`, d.Body)

	s := loaded.GetSession()
	assert.Equal(t, 2, s.RequestSection)
	assert.Equal(t, 1, s.ResponseSection)
	assert.Equal(t, "items[0]", s.Filter)
	assert.False(t, s.UpdatedAt.IsZero())
}

func TestLoadRepairsDraft(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"draft":{"method":"BREW","url":"x"}}`), 0o644))

	m := NewManager(path)
	require.NoError(t, m.Load())
	d := m.Draft()
	assert.Equal(t, types.MethodGet, d.Method)
	assert.NotNil(t, d.Headers)
	assert.NotNil(t, d.Query)
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))
	assert.Error(t, NewManager(path).Load())
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	m := NewManager(path)
	m.SetDraft(types.NewRequest())
	require.NoError(t, m.Save())
	require.FileExists(t, path)

	require.NoError(t, m.Clear())
	assert.NoFileExists(t, path)
	assert.Nil(t, m.GetSession().Draft)
	require.NoError(t, m.Clear())
}
