package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/resto/internal/types"
)

func historyEntries(urls ...string) []types.HistoryEntry {
	out := make([]types.HistoryEntry, len(urls))
	for i, u := range urls {
		req := types.NewRequest()
		req.URL = u
		out[i] = types.HistoryEntry{ID: int64(i + 1), Request: *req, Result: jsonResult("{}")}
	}
	return out
}

func TestHistoryStateNavigation(t *testing.T) {
	var h historyState
	h.setEntries(historyEntries("https://a.test", "https://b.test", "https://c.test"))

	e, ok := h.selected()
	require.True(t, ok)
	assert.Equal(t, int64(1), e.ID)

	h.move(1)
	assert.Equal(t, 1, h.index)
	h.move(10)
	assert.Equal(t, 2, h.index)
	h.move(-10)
	assert.Equal(t, 0, h.index)
	h.bottom()
	assert.Equal(t, 2, h.index)
	h.top()
	assert.Equal(t, 0, h.index)
}

func TestHistoryStateEmpty(t *testing.T) {
	var h historyState
	h.setEntries(nil)
	_, ok := h.selected()
	assert.False(t, ok)
	h.move(1)
	h.bottom()
	assert.Equal(t, 0, h.index)
}

func TestHistoryStateSearch(t *testing.T) {
	var h historyState
	h.setEntries(historyEntries("https://api.test/users", "https://api.test/orders", "https://api.test/users/1"))
	h.move(2)

	h.setQuery("orders")
	require.Len(t, h.filtered, 1)
	assert.Equal(t, 0, h.index)
	e, _ := h.selected()
	assert.Equal(t, "https://api.test/orders", e.Request.URL)

	h.setQuery("")
	assert.Len(t, h.filtered, 3)
}

func TestHistoryStateRemove(t *testing.T) {
	var h historyState
	h.setEntries(historyEntries("https://a.test", "https://b.test"))
	h.bottom()

	h.remove(2)
	assert.Len(t, h.entries, 1)
	assert.Len(t, h.filtered, 1)
	assert.Equal(t, 0, h.index)
}

func TestHistoryStateVisibleWindow(t *testing.T) {
	var h historyState
	h.setEntries(historyEntries("1", "2", "3", "4", "5", "6"))

	rows, first := h.visible(3)
	assert.Len(t, rows, 3)
	assert.Equal(t, 0, first)

	h.move(4)
	rows, first = h.visible(3)
	assert.Len(t, rows, 3)
	assert.Equal(t, 2, first)
	assert.Equal(t, "5", rows[2].Request.URL)
}

func TestHistoryTab(t *testing.T) {
	m := CreateTestModel(t)

	req := types.NewRequest()
	req.Method = types.MethodPost
	req.URL = "https://api.test/login"
	_, err := m.historyMgr.Save(req, jsonResult(`{"token":"x"}`))
	require.NoError(t, err)

	cmd := press(m, "tab")
	require.Equal(t, TabHistory, m.tab)
	require.NotNil(t, cmd)
	m.Update(cmd())
	require.Len(t, m.history.entries, 1)
	assert.Contains(t, m.View(), "https://api.test/login")

	press(m, "enter")
	assert.Equal(t, TabRequest, m.tab)
	assert.Equal(t, types.MethodPost, m.request.Method)
	assert.Equal(t, "https://api.test/login", m.request.URL)
	require.NotNil(t, m.response)
	assert.Equal(t, `{"token":"x"}`, m.response.Body)
}

func TestHistoryTabDeleteAndClear(t *testing.T) {
	m := CreateTestModel(t)
	for _, u := range []string{"https://a.test", "https://b.test", "https://c.test"} {
		req := types.NewRequest()
		req.URL = u
		_, err := m.historyMgr.Save(req, jsonResult("{}"))
		require.NoError(t, err)
	}
	m.Update(press(m, "tab")())
	require.Len(t, m.history.entries, 3)

	press(m, "d")
	assert.Len(t, m.history.entries, 2)
	count, err := m.historyMgr.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	press(m, "D")
	require.Equal(t, ModeHistoryClearConfirm, m.mode)
	press(m, "n")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Len(t, m.history.entries, 2)

	press(m, "D", "y")
	assert.Empty(t, m.history.entries)
	count, err = m.historyMgr.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestHistoryTabSearch(t *testing.T) {
	m := CreateTestModel(t)
	m.tab = TabHistory
	m.history.setEntries(historyEntries("https://api.test/users", "https://api.test/orders"))

	press(m, "/")
	require.Equal(t, targetSearch, m.editor.target)
	typeText(m, "ord")
	assert.Len(t, m.history.filtered, 1, "search filters while typing")

	press(m, "esc", "esc")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Empty(t, m.history.query, "cancel restores the previous query")
	assert.Len(t, m.history.filtered, 2)

	press(m, "/")
	typeText(m, "ord")
	press(m, "enter")
	assert.Equal(t, "ord", m.history.query)

	// esc clears the query before leaving the tab
	press(m, "esc")
	assert.Empty(t, m.history.query)
	assert.Equal(t, TabHistory, m.tab)
	press(m, "esc")
	assert.Equal(t, TabRequest, m.tab)
}
