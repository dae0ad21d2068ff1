package site

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ziadkadry99/folio/internal/info"
)

func TestLinkerURL(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		basePath string
		src      string
		want     string
	}{
		{"root page relative", "index.html", "", "img/a.png", "img/a.png"},
		{"nested page relative", "posts/x.html", "", "img/a.png", "../img/a.png"},
		{"root anchored", "posts/x.html", "", "/img/a.png", "../img/a.png"},
		{"root anchored with base path", "posts/x.html", "/~ada/", "/img/a.png", "/~ada/img/a.png"},
		{"external", "posts/x.html", "", "https://example.org/a.png", "https://example.org/a.png"},
		{"protocol relative", "index.html", "", "//cdn.example.org/a.js", "//cdn.example.org/a.js"},
		{"mailto", "index.html", "", "mailto:ada@example.org", "mailto:ada@example.org"},
		{"fragment", "posts/x.html", "", "#top", "#top"},
		{"empty", "index.html", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newLinker(tt.page, tt.basePath).URL(tt.src)
			if got != tt.want {
				t.Errorf("URL(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestLocalAsset(t *testing.T) {
	tests := map[string]string{
		"img/a.png":           "img/a.png",
		"/img/a.png?v=2":      "img/a.png",
		"docs/cv.pdf#page=2":  "docs/cv.pdf",
		"https://x.org/a.png": "",
		"#anchor":             "",
		"":                    "",
	}
	for src, want := range tests {
		if got := localAsset(src); got != want {
			t.Errorf("localAsset(%q) = %q, want %q", src, got, want)
		}
	}
}

func TestRouteHref(t *testing.T) {
	tests := map[string]string{
		"/publications":         "publications.html",
		"/":                     "index.html",
		"":                      "index.html",
		"blog.html":             "blog.html",
		"/awards#recent":        "awards.html#recent",
		"#contact":              "#contact",
		"https://scholar.x.org": "https://scholar.x.org",
	}
	for in, want := range tests {
		if got := routeHref(in); got != want {
			t.Errorf("routeHref(%q) = %q, want %q", in, got, want)
		}
	}
	if got := navTarget("/blog#top"); got != "blog.html" {
		t.Errorf("navTarget = %q", got)
	}
}

func TestEmphasizeAuthors(t *testing.T) {
	authors := []string{"A. Lovelace", "C. Babbage", "<script>"}
	tests := []struct {
		style string
		want  string
	}{
		{"", "<strong>A. Lovelace</strong>, C. Babbage, &lt;script&gt;"},
		{"underline", "<u>A. Lovelace</u>, C. Babbage, &lt;script&gt;"},
		{"highlight", "<mark>A. Lovelace</mark>, C. Babbage, &lt;script&gt;"},
	}
	for _, tt := range tests {
		got := emphasizeAuthors(authors, info.AuthorEmphasis{MyNameVariants: []string{"lovelace"}, Style: tt.style})
		if string(got) != tt.want {
			t.Errorf("style %q: got %q, want %q", tt.style, got, tt.want)
		}
	}

	if got := emphasizeAuthors(authors[:2], info.AuthorEmphasis{}); got != "A. Lovelace, C. Babbage" {
		t.Errorf("no variants: got %q", got)
	}
}

func TestPubBadges(t *testing.T) {
	one, many := 1, 1234
	p := &info.Publication{
		Type:     "conference",
		Status:   "under_review",
		Featured: true,
		Awards:   []string{"Best Paper"},
		Metrics:  &info.Metrics{Citations: &many},
	}

	var labels []string
	for _, b := range pubBadges(p, true) {
		labels = append(labels, b.Label)
	}
	want := []string{"Conference", "Under Review", "Featured", "Best Paper", "1,234 citations"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Errorf("badges (-want +got):\n%s", diff)
	}

	if got := pubBadges(p, false); len(got) != 4 {
		t.Errorf("metrics hidden: got %d badges, want 4", len(got))
	}

	p = &info.Publication{Status: "published", Metrics: &info.Metrics{Citations: &one}}
	got := pubBadges(p, true)
	if len(got) != 1 || got[0].Label != "1 citation" {
		t.Errorf("badges = %+v", got)
	}
}

func TestNewPubCardLinks(t *testing.T) {
	p := &info.Publication{
		ID:      "x",
		Title:   "X",
		Authors: "Ada Lovelace, Charles Babbage",
		Links:   &info.PubLinks{DOI: "https://doi.org/1", Code: "https://github.com/x", ArXiv: "https://arxiv.org/abs/1"},
	}
	card := newPubCard(0, p, nil, newLinker("publications.html", ""))
	if card.URL != "https://arxiv.org/abs/1" {
		t.Errorf("main link = %q, want the arXiv link", card.URL)
	}
	var labels []string
	for _, l := range card.Links {
		labels = append(labels, l.Label)
	}
	if diff := cmp.Diff([]string{"arXiv", "DOI", "Code"}, labels); diff != "" {
		t.Errorf("links (-want +got):\n%s", diff)
	}
	if card.Authors != "Ada Lovelace, Charles Babbage" {
		t.Errorf("authors = %q", card.Authors)
	}
}

func TestNewGalleryRow(t *testing.T) {
	folder := info.GalleryItem{
		Title: "Trip",
		Items: []info.GalleryItem{
			{Src: "img/1.jpg", Title: "First"},
			{Src: "img/2.mp4", Type: "video"},
			{Src: "img/3.jpg"},
		},
	}
	row := newGalleryRow(1, folder, newLinker("gallery.html", ""))
	if !row.Folder || row.More != "+2 more" || row.Side != "right" {
		t.Errorf("row = %+v", row)
	}
	if row.Cover.Src != "img/1.jpg" || row.Cover.Type != "image" || row.Title != "Trip" {
		t.Errorf("cover = %+v, title %q", row.Cover, row.Title)
	}
	if len(row.Items) != 3 || row.Items[1].Type != "video" {
		t.Errorf("items = %+v", row.Items)
	}

	single := newGalleryRow(0, info.GalleryItem{Src: "img/a.jpg", Description: "Hi", Side: "right"}, newLinker("gallery.html", ""))
	if single.Folder || single.More != "" || single.Side != "right" || single.Text != "Hi" || len(single.Items) != 1 {
		t.Errorf("single = %+v", single)
	}
}

func TestNewEmailView(t *testing.T) {
	off := false
	plain := newEmailView(info.Email{Address: "ada@example.org", ShowCopyButton: &off})
	if plain.Obfuscated || plain.Display != "ada@example.org" || plain.CopyButton {
		t.Errorf("plain = %+v", plain)
	}

	obf := newEmailView(info.Email{Address: "ada@cs.example.edu", Display: "obfuscated"})
	want := emailView{
		Display:    "ada [at] cs [dot] example [dot] edu",
		User:       "ada",
		Domain:     "cs.example.edu",
		Obfuscated: true,
		CopyButton: true,
	}
	if diff := cmp.Diff(want, obf); diff != "" {
		t.Errorf("obfuscated (-want +got):\n%s", diff)
	}
}

func TestLabel(t *testing.T) {
	if got := label("in_preparation"); got != "In Preparation" {
		t.Errorf("label = %q", got)
	}
}
