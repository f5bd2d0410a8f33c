package tui

import (
	"github.com/studiowebux/resto/internal/history"
	"github.com/studiowebux/resto/internal/types"
)

// historyState is the History tab: the loaded entries, the subset matching
// the search query and the selected row.
type historyState struct {
	entries  []types.HistoryEntry
	filtered []types.HistoryEntry
	index    int
	offset   int
	query    string
}

func (h *historyState) setEntries(entries []types.HistoryEntry) {
	h.entries = entries
	h.apply()
}

func (h *historyState) setQuery(query string) {
	if query == h.query {
		return
	}
	h.query = query
	h.index = 0
	h.offset = 0
	h.apply()
}

func (h *historyState) apply() {
	h.filtered = history.Search(h.entries, h.query)
	h.clamp()
}

func (h *historyState) clamp() {
	if h.index >= len(h.filtered) {
		h.index = len(h.filtered) - 1
	}
	if h.index < 0 {
		h.index = 0
	}
}

// selected returns the highlighted entry.
func (h *historyState) selected() (types.HistoryEntry, bool) {
	if h.index < 0 || h.index >= len(h.filtered) {
		return types.HistoryEntry{}, false
	}
	return h.filtered[h.index], true
}

// move shifts the selection by delta rows, clamped to the list.
func (h *historyState) move(delta int) {
	h.index += delta
	h.clamp()
}

func (h *historyState) top()    { h.index = 0 }
func (h *historyState) bottom() { h.index = len(h.filtered) - 1; h.clamp() }

// remove drops the entry with id from both lists.
func (h *historyState) remove(id int64) {
	out := h.entries[:0]
	for _, e := range h.entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	h.entries = out
	h.apply()
}

// visible returns the window of rows to draw and keeps the selection in it.
func (h *historyState) visible(height int) (rows []types.HistoryEntry, first int) {
	if height <= 0 {
		return nil, 0
	}
	if h.index < h.offset {
		h.offset = h.index
	}
	if h.index >= h.offset+height {
		h.offset = h.index - height + 1
	}
	end := min(len(h.filtered), h.offset+height)
	if h.offset > end {
		h.offset = 0
	}
	return h.filtered[h.offset:end], h.offset
}
