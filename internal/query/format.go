package query

import (
	"fmt"
	"io"
	"strings"

	"github.com/ziadkadry99/folio/internal/info"
	"github.com/ziadkadry99/folio/internal/posts"
)

// WriteText prints res as an indented plain-text listing, one block per
// year group, followed by a match count.
func WriteText(w io.Writer, res PubResult) error {
	var b strings.Builder
	for _, g := range res.Groups {
		fmt.Fprintf(&b, "%s (%d)\n", g.Year, len(g.Items))
		for i := range g.Items {
			writePub(&b, &g.Items[i])
		}
	}
	fmt.Fprintf(&b, "%d of %d publications\n", res.Matched, res.Total)
	_, err := io.WriteString(w, b.String())
	return err
}

func writePub(b *strings.Builder, p *info.Publication) {
	fmt.Fprintf(b, "  [%s] %s\n", p.ID, p.Title)

	authors := p.AuthorsList
	if len(authors) == 0 {
		authors = info.ParseAuthors(p.Authors)
	}
	if len(authors) > 0 {
		fmt.Fprintf(b, "      %s\n", strings.Join(authors, ", "))
	}

	var details []string
	if v := p.Venue.Label(); v != "" {
		details = append(details, v)
	}
	if p.Month != nil {
		if m := MonthAbbrev(*p.Month); m != "" {
			details = append(details, m)
		}
	}
	if p.Type != "" {
		details = append(details, p.Type)
	}
	if p.Status != "" && p.Status != "published" {
		details = append(details, strings.ReplaceAll(p.Status, "_", " "))
	}
	if p.Featured {
		details = append(details, "featured")
	}
	if len(details) > 0 {
		fmt.Fprintf(b, "      %s\n", strings.Join(details, " · "))
	}
}

// WritePostsText prints one line per post: title, category, date and file.
func WritePostsText(w io.Writer, entries []posts.Entry) error {
	var b strings.Builder
	for _, e := range entries {
		title := e.Title
		if title == "" {
			title = e.PageName()
		}
		fmt.Fprintf(&b, "- %s (%s", title, e.DisplayCategory())
		if e.Date != "" {
			fmt.Fprintf(&b, ", %s", e.Date)
		}
		fmt.Fprintf(&b, ") file: %s\n", e.Ref())
	}
	if len(entries) == 0 {
		b.WriteString("No posts match.\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
