package info

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file location")
	}
	return filepath.Join(filepath.Dir(filename), "testdata", name)
}

func TestParseAuthors(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Alice Smith, Bob Lee and Carol Wu", []string{"Alice Smith", "Bob Lee", "Carol Wu"}},
		{"A; B;C", []string{"A", "B", "C"}},
		{"Alice AND Bob", []string{"Alice", "Bob"}},
		{"Alexander Anderson", []string{"Alexander Anderson"}},
		{" , ; ", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := ParseAuthors(tt.in)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseAuthors(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestResolveYear(t *testing.T) {
	y := Year(2019)
	tests := []struct {
		name string
		pub  Publication
		want string
	}{
		{"venue string", Publication{Venue: Venue{Name: "In ICLR, 2025"}}, "2025"},
		{"no year anywhere", Publication{Venue: Venue{Name: "TBD"}}, UnknownYear},
		{"zero year ignored", Publication{Year: new(Year), Venue: Venue{Name: "ICML 2022"}}, "2022"},
		{"explicit year wins", Publication{Year: &y, Date: "2021-04-01", Venue: Venue{Name: "ICML 2022"}}, "2019"},
		{"date before venue", Publication{Date: "2021-04-01", Venue: Venue{Name: "ICML 2022"}}, "2021"},
		{"short venue", Publication{Venue: Venue{Name: "Workshop", Short: "WS'23 2023"}}, "2023"},
		{"19xx is not matched", Publication{Venue: Venue{Name: "Proc. 1999"}}, UnknownYear},
		{"embedded digits not matched", Publication{Venue: Venue{Name: "Room 120245"}}, UnknownYear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveYear(&tt.pub); got != tt.want {
				t.Errorf("ResolveYear() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadStructured(t *testing.T) {
	doc, err := Load(testdataPath(t, "structured.json"), Options{Strict: true})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	pubs := doc.Publications.Items
	if len(pubs) != 2 {
		t.Fatalf("expected 2 publications, got %d", len(pubs))
	}
	if diff := cmp.Diff([]string{"Ada Lovelace", "Charles Babbage"}, pubs[0].AuthorsList); diff != "" {
		t.Errorf("authorsList mismatch (-want +got):\n%s", diff)
	}
	if pubs[0].ResolvedYear != "2023" || pubs[1].ResolvedYear != "2024" {
		t.Errorf("resolved years = %q, %q", pubs[0].ResolvedYear, pubs[1].ResolvedYear)
	}

	s := doc.Publications.Settings
	if s.DefaultSort != "year_desc" || s.EqualContributionMarker != "*" || s.CorrespondingAuthorMarker != "†" {
		t.Errorf("publication settings defaults not applied: %+v", s)
	}
	if !IsTrue(s.CollapseYears.Enabled) || s.CollapseYears.ExpandedYearsCount != 1 {
		t.Errorf("collapseYears = %+v", s.CollapseYears)
	}

	if doc.Site.Locale != "en" || doc.Site.Theme.DefaultMode != "light" || !IsTrue(doc.Site.Theme.AllowToggle) {
		t.Errorf("site defaults not applied: %+v / %+v", doc.Site, doc.Site.Theme)
	}
	if !IsTrue(doc.Sections["projects"].Enabled) || IsTrue(doc.Sections["experience"].Enabled) {
		t.Error("section enabled flags wrong")
	}
	if doc.Nav.Items[0].Type != "anchor" || doc.Nav.Items[1].Type != "route" {
		t.Errorf("nav types = %q, %q", doc.Nav.Items[0].Type, doc.Nav.Items[1].Type)
	}
	if !IsTrue(doc.Projects.Settings.FeaturedFirst) {
		t.Error("projects.settings.featuredFirst should default to true")
	}
	if doc.CV.Label != "Curriculum Vitae" || doc.CV.ButtonLabel != "Download CV" {
		t.Errorf("cv defaults not applied: %+v", doc.CV)
	}
	if !IsTrue(doc.Contact.ShowEmail) || doc.Contact.Label != "Contact" {
		t.Errorf("contact defaults not applied: %+v", doc.Contact)
	}
	if doc.Profile.Headshot.Shape != "circle" || !IsTrue(doc.Profile.Email.ShowCopyButton) {
		t.Error("profile defaults not applied")
	}
}

func TestLoadLegacy(t *testing.T) {
	doc, err := Load(testdataPath(t, "legacy.json"), Options{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	p := doc.Profile
	if p.Name.Display() != "Jane Doe" || p.Tagline != "PhD Student" {
		t.Errorf("name/tagline = %q / %q", p.Name.Display(), p.Tagline)
	}
	if p.Email.Address != "jane@example.edu" {
		t.Errorf("email = %q", p.Email.Address)
	}
	if p.Headshot == nil || p.Headshot.Src != "assets/images/jane.jpg" {
		t.Errorf("headshot not derived from photo: %+v", p.Headshot)
	}
	if doc.CV == nil || doc.CV.PDFPath != "assets/cv.pdf" {
		t.Errorf("cv not derived from profile.cv: %+v", doc.CV)
	}
	wantLinks := []Link{
		{Type: "scholar", Label: "Scholar", URL: "https://scholar.example.org/jane"},
		{Type: "github", Label: "GitHub", URL: "https://github.com/jane"},
		{Type: "mastodon", Label: "Mastodon", URL: "https://social.example/@jane"},
	}
	if diff := cmp.Diff(wantLinks, p.Links.Items); diff != "" {
		t.Errorf("links mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"I study things."}, p.Bio.Items); diff != "" {
		t.Errorf("bio mismatch (-want +got):\n%s", diff)
	}

	pubs := doc.Publications.Items
	if len(pubs) != 3 {
		t.Fatalf("expected 3 publications, got %d", len(pubs))
	}
	if diff := cmp.Diff([]string{"Jane Doe", "John Roe", "Alex Poe"}, pubs[0].AuthorsList); diff != "" {
		t.Errorf("authors mismatch (-want +got):\n%s", diff)
	}
	if pubs[0].Links == nil || pubs[0].Links.PDF != "papers/seeing.pdf" || pubs[0].Links.Code == "" {
		t.Errorf("legacy pdf/code not folded into links: %+v", pubs[0].Links)
	}
	gotYears := []string{pubs[0].ResolvedYear, pubs[1].ResolvedYear, pubs[2].ResolvedYear}
	if diff := cmp.Diff([]string{"2025", UnknownYear, "2021"}, gotYears); diff != "" {
		t.Errorf("resolved years mismatch (-want +got):\n%s", diff)
	}
	if pubs[2].Title != "Referenced Elsewhere" || pubs[2].Ref != "pubs/extra.json" {
		t.Errorf("referenced publication not loaded: %+v", pubs[2])
	}

	aw := doc.Awards.Items[0]
	if aw.Title != "Best Poster" || aw.Org != "CVPR" || aw.Year != 2023 {
		t.Errorf("legacy award not normalized: %+v", aw)
	}

	if doc.Experience == nil || len(doc.Experience.Items) != 1 || doc.Experience.Items[0].Category != "education" {
		t.Errorf("education not merged into experience: %+v", doc.Experience)
	}

	if doc.Gallery[0].Type != "image" || doc.Gallery[1].Items[1].Type != "video" {
		t.Errorf("gallery media types not inferred: %+v", doc.Gallery)
	}
}

func TestLoadLegacyStrictFails(t *testing.T) {
	_, err := Load(testdataPath(t, "legacy.json"), Options{Strict: true})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}

	got := make(map[string]string)
	for _, v := range verr.Violations {
		got[v.Path] = v.Message
	}
	want := map[string]string{
		"site":                       "Required",
		"profile.name":               "Expected object, received string",
		"profile.email":              "Expected object, received string",
		"profile.links":              "Expected array, received object",
		"profile.bio":                "Expected array, received string",
		"publications":               "Expected object, received array",
		"publications.items.0.venue": "Expected object, received string",
		"publications.items.1.year":  "Required",
		"awards":                     "Expected object, received array",
	}
	for path, msg := range want {
		if got[path] != msg {
			t.Errorf("violation %s = %q, want %q", path, got[path], msg)
		}
	}
}

func TestDecodeNonNumericYear(t *testing.T) {
	const data = `{
  "awards": [{"name": "Best Paper", "by": "ICML", "year": ""}],
  "publications": [
    {"id": "p1", "title": "Pending", "venue": {"name": "NeurIPS 2024"}, "year": "2024 (to appear)", "type": "conference"}
  ]
}`
	doc, err := Decode(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	got := make(map[string]string)
	for _, v := range Validate(doc) {
		got[v.Path] = v.Message
	}
	for _, path := range []string{"awards.items.0.year", "publications.items.0.year"} {
		if got[path] != "Number must be greater than or equal to 1900" {
			t.Errorf("violation %s = %q", path, got[path])
		}
	}

	Normalize(doc)
	p := doc.Publications.Items[0]
	if p.Year != nil {
		t.Errorf("unparseable year kept as %d", *p.Year)
	}
	if p.ResolvedYear != "2024" {
		t.Errorf("ResolvedYear = %q, want year from venue", p.ResolvedYear)
	}
	if doc.Awards.Items[0].Year != 0 {
		t.Errorf("award year = %d, want unset", doc.Awards.Items[0].Year)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(testdataPath(t, "missing.json"), Options{})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing file: expected ErrNotFound, got %v", err)
	}

	_, err = Load(testdataPath(t, "broken.json"), Options{})
	if !errors.Is(err, ErrSyntax) {
		t.Errorf("broken file: expected ErrSyntax, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "line 4") {
		t.Errorf("syntax error should name the line, got %v", err)
	}
}

func TestValidateDuplicateIDs(t *testing.T) {
	doc, err := Load(testdataPath(t, "structured.json"), Options{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	doc.Publications.Items[1].ID = doc.Publications.Items[0].ID
	doc.Projects.Items = append(doc.Projects.Items, doc.Projects.Items[0])

	var dups []Violation
	for _, v := range Validate(doc) {
		if strings.Contains(v.Message, "duplicate IDs") {
			dups = append(dups, v)
		}
	}
	want := []Violation{
		{Path: "publications.items", Message: "duplicate IDs: notes-1843"},
		{Path: "projects.items", Message: "duplicate IDs: engine"},
	}
	if diff := cmp.Diff(want, dups); diff != "" {
		t.Errorf("duplicate violations mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateFieldRules(t *testing.T) {
	month := 13
	negative := -1
	tests := []struct {
		name   string
		mutate func(*Info)
		path   string
		msg    string
	}{
		{"missing bibtex", func(d *Info) { d.Publications.Items[0].Bibtex = "" },
			"publications.items.0.bibtex", "BibTeX is required"},
		{"no authors", func(d *Info) { d.Publications.Items[1].AuthorsList = nil },
			"publications.items.1", "Either authors or authorsList must be provided"},
		{"bad month", func(d *Info) { d.Publications.Items[0].Month = &month },
			"publications.items.0.month", "Month must be between 1 and 12"},
		{"bad type", func(d *Info) { d.Publications.Items[0].Type = "blog" },
			"publications.items.0.type",
			"Invalid enum value. Expected 'conference' | 'journal' | 'workshop' | 'preprint' | 'thesis' | 'demo', received 'blog'"},
		{"negative citations", func(d *Info) { d.Publications.Items[0].Metrics.Citations = &negative },
			"publications.items.0.metrics.citations", "Number must be greater than or equal to 0"},
		{"bad experience date", func(d *Info) { d.Experience.Items[0].Start = "Sept 2021" },
			"experience.items.0.start", `Must be YYYY-MM or "present"`},
		{"bad email", func(d *Info) { d.Profile.Email.Address = "not-an-email" },
			"profile.email.address", "Invalid email"},
		{"award year out of range", func(d *Info) { d.Awards.Items[0].Year = 1850 },
			"awards.items.0.year", "Number must be greater than or equal to 1900"},
		{"empty gallery folder", func(d *Info) { d.Gallery = []GalleryItem{{Title: "x", Items: []GalleryItem{}}} },
			"gallery.0.items", "Gallery folder must contain at least one item"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Load(testdataPath(t, "structured.json"), Options{})
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if vs := Validate(doc); len(vs) != 0 {
				t.Fatalf("baseline document has violations: %v", vs)
			}
			tt.mutate(doc)
			for _, v := range Validate(doc) {
				if v.Path == tt.path {
					if v.Message != tt.msg {
						t.Errorf("message = %q, want %q", v.Message, tt.msg)
					}
					return
				}
			}
			t.Errorf("no violation at %s", tt.path)
		})
	}
}

func TestValidateEmptyVersusMissing(t *testing.T) {
	const data = `{
  "profile": {"name": {"full": "A", "preferred": "A"}, "tagline": "", "email": {"address": "a@example.org"}, "links": [], "bio": []},
  "experience": {"items": [
    {"id": "x", "category": "position", "org": "", "role": "", "start": "2020-01", "end": "present", "bullets": []},
    {"id": "y", "category": "position", "start": "2020-01", "end": "present", "bullets": []}
  ]}
}`
	doc, err := Decode(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	got := make(map[string]string)
	for _, v := range Validate(doc) {
		got[v.Path] = v.Message
	}
	for _, path := range []string{"profile.tagline", "experience.items.0.org", "experience.items.0.role"} {
		if msg, ok := got[path]; ok {
			t.Errorf("empty %s rejected: %s", path, msg)
		}
	}
	for _, path := range []string{"profile.affiliation", "experience.items.1.org", "experience.items.1.role"} {
		if got[path] != "Required" {
			t.Errorf("missing %s: got %q, want Required", path, got[path])
		}
	}
}

func TestPresentIsCaseInsensitive(t *testing.T) {
	v := &validator{}
	v.date("Present", "x")
	v.date("2024-01", "y")
	if len(v.out) != 0 {
		t.Errorf("unexpected violations: %v", v.out)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	doc, err := Load(testdataPath(t, "legacy.json"), Options{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	before, _ := json.Marshal(doc)
	Normalize(doc)
	after, _ := json.Marshal(doc)
	if string(before) != string(after) {
		t.Errorf("second Normalize changed the document:\n%s\n%s", before, after)
	}
}

func TestJSONSchema(t *testing.T) {
	out, err := JSONSchema()
	if err != nil {
		t.Fatalf("JSONSchema() error: %v", err)
	}
	var parsed map[string]any
	if err := json.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("schema is not valid JSON: %v", err)
	}
	props, ok := parsed["properties"].(map[string]any)
	if !ok {
		t.Fatalf("schema has no properties: %s", out)
	}
	for _, key := range []string{"site", "profile", "publications", "gallery"} {
		if _, ok := props[key]; !ok {
			t.Errorf("schema missing property %q", key)
		}
	}
}

func TestStarterLoadsStrict(t *testing.T) {
	doc := Starter("Ada's Site", "Ada Lovelace", "")
	if v := Validate(doc); len(v) > 0 {
		t.Fatalf("starter has violations: %v", v)
	}

	path := filepath.Join(t.TempDir(), "data", "info.json")
	if err := WriteFile(path, doc); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	loaded, err := Load(path, Options{Strict: true})
	if err != nil {
		t.Fatalf("Load(strict) error: %v", err)
	}
	if got := loaded.Profile.Name.Display(); got != "Ada Lovelace" {
		t.Errorf("name = %q", got)
	}
	if loaded.Profile.Affiliation == "" {
		t.Error("affiliation should get a placeholder")
	}

	if err := WriteFile(path, doc); err == nil {
		t.Error("WriteFile should refuse to overwrite")
	}
}
