package catalog

import (
	"strings"

	"github.com/samber/lo"
)

// maxSearchResults caps how many matches the search box shows.
const maxSearchResults = 5

// Search returns tracks whose title or artist contains the query,
// case-insensitively. An empty or whitespace-only query returns no
// results rather than the full catalog. At most maxSearchResults
// tracks are returned, in catalog order.
func (c *Catalog) Search(query string) []Track {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	matches := lo.Filter(c.tracks, func(t Track, _ int) bool {
		return strings.Contains(strings.ToLower(t.Title), query) ||
			strings.Contains(strings.ToLower(t.Artist), query)
	})
	if len(matches) > maxSearchResults {
		matches = matches[:maxSearchResults]
	}
	return matches
}
