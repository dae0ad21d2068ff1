package site

import (
	"encoding/json"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ziadkadry99/folio/internal/frontmatter"
	"github.com/ziadkadry99/folio/internal/info"
	"github.com/ziadkadry99/folio/internal/posts"
	"github.com/ziadkadry99/folio/internal/query"
)

// SearchEntry is one searchable page or publication.
type SearchEntry struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

// maxSearchContent caps the body text stored per entry.
const maxSearchContent = 2000

// BuildSearchIndex lists every post, then every publication. Publications
// point at their card on the publications page.
func BuildSearchIndex(entries []posts.Entry, loaded map[string]*posts.Post, pubs []info.Publication) []SearchEntry {
	out := make([]SearchEntry, 0, len(entries)+len(pubs))
	for _, e := range entries {
		entry := SearchEntry{
			Path:    postPagePath(e),
			Kind:    "post",
			Title:   e.Title,
			Summary: e.Summary,
		}
		if p, ok := loaded[e.Ref()]; ok {
			entry.Title = p.Title
			entry.Summary = p.Entry.Summary
			entry.Content = truncate(plainBody(p), maxSearchContent)
		}
		out = append(out, entry)
	}
	for i := range pubs {
		p := &pubs[i]
		out = append(out, SearchEntry{
			Path:    "publications.html#pub-" + p.ID,
			Kind:    "publication",
			Title:   p.Title,
			Summary: strings.TrimSpace(p.Venue.Label() + " " + query.YearOf(p)),
			Content: truncate(query.PubHaystack(p)+" "+strings.ToLower(p.Abstract), maxSearchContent),
		})
	}
	return out
}

// plainBody is the post's heading text followed by its source body, with
// blank lines collapsed.
func plainBody(p *posts.Post) string {
	var parts []string
	for _, h := range p.Doc.Headings {
		parts = append(parts, h.Text)
	}
	_, body := frontmatter.Parse(string(p.Source))
	parts = append(parts, strings.Fields(body)...)
	return strings.Join(parts, " ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
