// Package history stores sent requests and their responses in SQLite.
package history

import (
	"github.com/sahilm/fuzzy"

	"github.com/studiowebux/resto/internal/types"
)

// entrySource exposes entry titles to the fuzzy matcher.
type entrySource []types.HistoryEntry

func (s entrySource) String(i int) string { return s[i].Title() }
func (s entrySource) Len() int            { return len(s) }

// Search returns the entries whose "METHOD URL" title fuzzy-matches query,
// best match first. An empty query returns entries unchanged.
func Search(entries []types.HistoryEntry, query string) []types.HistoryEntry {
	if query == "" {
		return entries
	}
	matches := fuzzy.FindFrom(query, entrySource(entries))
	out := make([]types.HistoryEntry, 0, len(matches))
	for _, m := range matches {
		out = append(out, entries[m.Index])
	}
	return out
}
