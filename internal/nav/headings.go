// Package nav builds the quick-navigation panel: numbered heading
// outlines, scroll-spy positions and the blog panel state machine.
package nav

import (
	"regexp"
	"strconv"
	"strings"
)

// Heading is one heading of a rendered document, in document order.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}

// Entry is a heading with its hierarchical number, e.g. "2.1".
type Entry struct {
	Heading
	Number string `json:"number"`
	Depth  int    `json:"depth"`
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases text and collapses every run of other characters to "-".
func Slug(text string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(text), "-"), "-")
}

// IDSet hands out unique anchor IDs. The zero value is ready to use.
type IDSet struct {
	seen  map[string]int
	count int
}

// Next returns a unique ID for heading text. Text with no slug-able
// characters gets "heading-N", N being the heading's position.
func (s *IDSet) Next(text string) string {
	if s.seen == nil {
		s.seen = make(map[string]int)
	}
	n := s.count
	s.count++

	base := Slug(text)
	if base == "" {
		base = "heading-" + strconv.Itoa(n)
	}
	return s.claim(base)
}

// Reserve marks an existing ID as taken.
func (s *IDSet) Reserve(id string) {
	if s.seen == nil {
		s.seen = make(map[string]int)
	}
	s.seen[id]++
}

func (s *IDSet) claim(base string) string {
	id := base
	for s.seen[id] > 0 {
		id = base + "-" + strconv.Itoa(s.seen[base])
		s.seen[base]++
	}
	s.seen[id]++
	return id
}

// AssignIDs fills in missing IDs, keeping the ones already present.
func AssignIDs(headings []Heading) []Heading {
	out := make([]Heading, len(headings))
	copy(out, headings)

	var ids IDSet
	for _, h := range out {
		if h.ID != "" {
			ids.Reserve(h.ID)
		}
	}
	for i := range out {
		if out[i].ID != "" {
			ids.count++
			continue
		}
		out[i].ID = ids.Next(out[i].Text)
	}
	return out
}

// Outline numbers headings with one counter per level. A heading resets
// the counters of every deeper level. Numbering is relative to the
// shallowest level present, and levels skipped on the way down are left
// out of the number. A heading that comes before any shallower one is
// numbered under 0, so H3 H2 H3 gives 0.1, 1, 1.1. With skipTitle a leading level-1 heading, the
// page's own title, is dropped.
func Outline(headings []Heading, skipTitle bool) []Entry {
	if skipTitle && len(headings) > 0 && headings[0].Level == 1 {
		headings = headings[1:]
	}
	if len(headings) == 0 {
		return nil
	}

	base := headings[0].Level
	for _, h := range headings {
		if h.Level < base {
			base = h.Level
		}
	}

	var counters [6]int
	entries := make([]Entry, 0, len(headings))
	for _, h := range headings {
		depth := h.Level - base
		if depth < 0 {
			depth = 0
		}
		if depth >= len(counters) {
			depth = len(counters) - 1
		}
		counters[depth]++
		for i := depth + 1; i < len(counters); i++ {
			counters[i] = 0
		}

		parts := make([]string, 0, depth+1)
		for i := 0; i <= depth; i++ {
			if counters[i] > 0 || len(parts) == 0 {
				parts = append(parts, strconv.Itoa(counters[i]))
			}
		}
		entries = append(entries, Entry{
			Heading: h,
			Number:  strings.Join(parts, "."),
			Depth:   depth,
		})
	}
	return entries
}
