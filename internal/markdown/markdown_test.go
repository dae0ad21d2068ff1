package markdown

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ziadkadry99/folio/internal/nav"
)

func convert(t *testing.T, src string) Document {
	t.Helper()
	doc, err := Convert([]byte(src))
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	return doc
}

func TestConvertHeadings(t *testing.T) {
	doc := convert(t, "# Title\n\n## Intro\n\n### Hello *world*\n\n## Intro\n\n## ???\n")

	want := []nav.Heading{
		{Level: 1, Text: "Title", ID: "title"},
		{Level: 2, Text: "Intro", ID: "intro"},
		{Level: 3, Text: "Hello world", ID: "hello-world"},
		{Level: 2, Text: "Intro", ID: "intro-1"},
		{Level: 2, Text: "???", ID: "heading-4"},
	}
	if diff := cmp.Diff(want, doc.Headings); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}
	for _, frag := range []string{`<h2 id="intro">Intro</h2>`, `id="intro-1"`, `id="heading-4"`} {
		if !strings.Contains(doc.HTML, frag) {
			t.Errorf("HTML missing %q:\n%s", frag, doc.HTML)
		}
	}
}

func TestConvertSubset(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    []string
		notWant []string
	}{
		{
			name: "inline formatting",
			src:  "Some **bold** and *italic* and `code`.",
			want: []string{"<p>", "<strong>bold</strong>", "<em>italic</em>", "<code>code</code>"},
		},
		{
			name: "links open in a new tab",
			src:  "See [site](https://example.com).",
			want: []string{`href="https://example.com"`, `target="_blank"`, `rel="noopener"`},
		},
		{
			name:    "ordered list uses ul",
			src:     "1. one\n2. two\n",
			want:    []string{"<ul>", "<li>one</li>", "<li>two</li>"},
			notWant: []string{"<ol"},
		},
		{
			name: "unordered list",
			src:  "- a\n- b\n",
			want: []string{"<ul>", "<li>a</li>"},
		},
		{
			name: "fenced code keeps language",
			src:  "```go\nfmt.Println(1)\n```\n",
			want: []string{`<pre><code class="language-go">fmt.Println(1)`},
		},
		{
			name: "paragraphs split on blank lines",
			src:  "first\n\nsecond",
			want: []string{"<p>first</p>", "<p>second</p>"},
		},
		{
			name: "single newline is a line break",
			src:  "line one\nline two",
			want: []string{"line one<br"},
		},
		{
			name:    "raw html is text",
			src:     "<script>alert(1)</script>",
			notWant: []string{"<script"},
		},
		{
			name:    "javascript links dropped",
			src:     "[x](javascript:alert(1))",
			notWant: []string{"javascript:"},
		},
		{
			name:    "setext headings unsupported",
			src:     "Title\n=====\n",
			notWant: []string{"<h1"},
		},
		{
			name:    "block quotes unsupported",
			src:     "> quoted",
			notWant: []string{"<blockquote"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := convert(t, tt.src)
			for _, w := range tt.want {
				if !strings.Contains(doc.HTML, w) {
					t.Errorf("HTML missing %q:\n%s", w, doc.HTML)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(doc.HTML, nw) {
					t.Errorf("HTML unexpectedly contains %q:\n%s", nw, doc.HTML)
				}
			}
		})
	}
}

func TestConvertIsolatesIDs(t *testing.T) {
	a := convert(t, "## Setup\n")
	b := convert(t, "## Setup\n")
	if a.Headings[0].ID != "setup" || b.Headings[0].ID != "setup" {
		t.Errorf("IDs leaked across conversions: %q, %q", a.Headings[0].ID, b.Headings[0].ID)
	}
}

func TestHighlighting(t *testing.T) {
	c := New(WithHighlighting("github"))
	doc, err := c.Convert([]byte("```go\npackage main\n```\n"))
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if !strings.Contains(doc.HTML, `class="chroma"`) {
		t.Errorf("expected chroma markup, got:\n%s", doc.HTML)
	}

	css, err := HighlightCSS("github")
	if err != nil {
		t.Fatalf("HighlightCSS() error: %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Errorf("stylesheet lacks .chroma rules:\n%s", css)
	}
}
