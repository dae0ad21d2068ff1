package query

import (
	"sort"
	"strings"

	"github.com/ziadkadry99/folio/internal/posts"
)

// PostFilter narrows the blog list.
type PostFilter struct {
	Search   string `json:"search,omitempty"`
	Category string `json:"category,omitempty"`
}

// Match searches title, tags and summary. Category compares against the
// displayed category, so "Uncategorized" selects posts without one.
func (f PostFilter) Match(e posts.Entry) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(PostHaystack(e), q) {
			return false
		}
	}
	if f.Category != "" && e.DisplayCategory() != f.Category {
		return false
	}
	return true
}

// PostHaystack is the lower-cased text the post search matches against.
func PostHaystack(e posts.Entry) string {
	return strings.ToLower(e.Title + " " + strings.Join(e.Tags, " ") + " " + e.Summary)
}

// FilterPosts returns the matching entries in index order.
func FilterPosts(entries []posts.Entry, f PostFilter) []posts.Entry {
	out := make([]posts.Entry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// CategoryCount is one row of the blog's category list.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Categories counts posts per displayed category, sorted by name.
func Categories(entries []posts.Entry) []CategoryCount {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.DisplayCategory()]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
