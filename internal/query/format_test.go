package query

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ziadkadry99/folio/internal/info"
	"github.com/ziadkadry99/folio/internal/posts"
)

func TestWriteText(t *testing.T) {
	a := pub("a", "ICLR", 2023, 5)
	a.Authors = "Alice Smith and Bob Lee"
	a.Featured = true
	b := pub("b", "TBD", 0, 0)
	b.Venue.Short = "T"
	b.Status = "under_review"
	b.Type = ""

	res := PubResult{
		Groups: []YearGroup{
			{Year: "2023", Items: []info.Publication{a}},
			{Year: info.UnknownYear, Items: []info.Publication{b}},
		},
		Total:   5,
		Matched: 2,
	}

	var sb strings.Builder
	if err := WriteText(&sb, res); err != nil {
		t.Fatal(err)
	}
	want := "2023 (1)\n" +
		"  [a] Paper a\n" +
		"      Alice Smith, Bob Lee\n" +
		"      ICLR · May · conference · featured\n" +
		"Unknown (1)\n" +
		"  [b] Paper b\n" +
		"      T · under review\n" +
		"2 of 5 publications\n"
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("WriteText mismatch (-want +got):\n%s", diff)
	}
}

func TestWritePostsText(t *testing.T) {
	entries := []posts.Entry{
		{Title: "Hello", Filename: "hello.md", Category: "Notes", Date: "2025-01-02"},
		{Slug: "bare"},
	}

	var sb strings.Builder
	if err := WritePostsText(&sb, entries); err != nil {
		t.Fatal(err)
	}
	want := "- Hello (Notes, 2025-01-02) file: hello.md\n" +
		"- bare (Uncategorized) file: bare.md\n"
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("WritePostsText mismatch (-want +got):\n%s", diff)
	}

	sb.Reset()
	if err := WritePostsText(&sb, nil); err != nil {
		t.Fatal(err)
	}
	if sb.String() != "No posts match.\n" {
		t.Errorf("empty list = %q", sb.String())
	}
}
