// Package citydex maps partial city-name queries to timezone identifiers
// using fuzzy matching. Matching itself is delegated to sahilm/fuzzy; this
// package only owns the (identifier, city) index.
package citydex

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Entry pairs a timezone identifier with its display city name.
type Entry struct {
	ID   string `json:"id"`
	City string `json:"city"`
}

// Match is one ranked search result, best matches first.
type Match struct {
	ID    string
	City  string
	Score int
}

// Index is a city-name fuzzy index. Build it once per city-list change and
// re-query it on every keystroke.
type Index struct {
	entries []Entry
}

// New builds an index over the given entries.
func New(entries []Entry) *Index {
	dup := make([]Entry, len(entries))
	copy(dup, entries)
	return &Index{entries: dup}
}

// Len implements fuzzy.Source.
func (ix *Index) Len() int { return len(ix.entries) }

// String implements fuzzy.Source.
func (ix *Index) String(i int) string { return ix.entries[i].City }

// Search returns ranked matches for a partial city-name query. An empty or
// whitespace query yields no results.
func (ix *Index) Search(query string) []Match {
	if ix == nil || strings.TrimSpace(query) == "" {
		return nil
	}

	results := fuzzy.FindFrom(query, ix)
	matches := make([]Match, 0, len(results))
	for _, r := range results {
		entry := ix.entries[r.Index]
		matches = append(matches, Match{ID: entry.ID, City: entry.City, Score: r.Score})
	}
	return matches
}

// Top returns at most n ranked matches.
func (ix *Index) Top(query string, n int) []Match {
	matches := ix.Search(query)
	if len(matches) > n {
		matches = matches[:n]
	}
	return matches
}
