package site

import (
	"fmt"
	"html"
	"html/template"
	"net/url"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ziadkadry99/folio/internal/info"
	"github.com/ziadkadry99/folio/internal/query"
)

// label turns an enum value such as "under_review" into "Under Review".
func label(v string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(v, "_", " "))
}

// linker resolves URLs from the data file for a page at a given depth.
type linker struct {
	prefix   string // "../" repeated up to the site root
	basePath string
}

func newLinker(pagePath, basePath string) linker {
	return linker{
		prefix:   strings.Repeat("../", strings.Count(pagePath, "/")),
		basePath: strings.TrimSuffix(basePath, "/"),
	}
}

// Page links to another generated page by its root-relative name.
func (l linker) Page(name string) string { return l.prefix + name }

// URL leaves absolute and fragment URLs alone, prefixes root-anchored
// paths with the base path and makes everything else page-relative.
func (l linker) URL(src string) string {
	switch {
	case src == "":
		return ""
	case isExternal(src), strings.HasPrefix(src, "#"):
		return src
	case strings.HasPrefix(src, "/"):
		if l.basePath != "" {
			return l.basePath + src
		}
		return l.prefix + strings.TrimPrefix(src, "/")
	default:
		return l.prefix + src
	}
}

func isExternal(s string) bool {
	if strings.HasPrefix(s, "//") {
		return true
	}
	u, err := url.Parse(s)
	return err == nil && u.Scheme != ""
}

// localAsset returns the site-relative path of a local media reference, or
// "" when src points elsewhere.
func localAsset(src string) string {
	if src == "" || isExternal(src) || strings.HasPrefix(src, "#") {
		return ""
	}
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		src = src[:i]
	}
	return strings.TrimPrefix(src, "/")
}

type badge struct {
	Label string
	Class string
}

type actionLink struct {
	Label string
	URL   string
}

// pubCard is one rendered publication.
type pubCard struct {
	Index     int
	ID        string
	Title     string
	URL       string
	Authors   template.HTML
	Venue     string
	Year      string
	Month     int
	MonthName string
	Type      string
	Featured  bool
	Badges    []badge
	Links     []actionLink
	Bibtex    string
	Abstract  string
	Thumbnail string
	Search    string
}

func newPubCard(index int, p *info.Publication, settings *info.PublicationSettings, l linker) pubCard {
	c := pubCard{
		Index:    index,
		ID:       p.ID,
		Title:    p.Title,
		Venue:    p.Venue.Label(),
		Year:     query.YearOf(p),
		Type:     p.Type,
		Featured: p.Featured,
		Bibtex:   p.Bibtex,
		Abstract: p.Abstract,
		Search:   query.PubHaystack(p),
	}
	if p.Month != nil {
		c.Month = *p.Month
		c.MonthName = query.MonthAbbrev(*p.Month)
	}
	if p.Media != nil {
		c.Thumbnail = l.URL(p.Media.Thumbnail)
	}

	authors := p.AuthorsList
	if len(authors) == 0 {
		authors = info.ParseAuthors(p.Authors)
	}
	var emphasis info.AuthorEmphasis
	showMetrics := false
	if settings != nil {
		emphasis = settings.AuthorEmphasis
		showMetrics = settings.ShowMetrics
	}
	c.Authors = emphasizeAuthors(authors, emphasis)
	c.Badges = pubBadges(p, showMetrics)

	if p.Links != nil {
		c.URL = firstNonEmpty(p.Links.PDF, p.Links.ArXiv, p.Links.DOI)
		for _, a := range []actionLink{
			{"PDF", p.Links.PDF},
			{"arXiv", p.Links.ArXiv},
			{"DOI", p.Links.DOI},
			{"Code", p.Links.Code},
			{"Project", p.Links.Project},
			{"Video", p.Links.Video},
			{"Slides", p.Links.Slides},
			{"Poster", p.Links.Poster},
		} {
			if a.URL != "" {
				a.URL = l.URL(a.URL)
				c.Links = append(c.Links, a)
			}
		}
		c.URL = l.URL(c.URL)
	}
	return c
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// emphasizeAuthors joins the author names, wrapping every name that
// contains one of the owner's name variants (ignoring case) in the tag for
// the configured style.
func emphasizeAuthors(authors []string, e info.AuthorEmphasis) template.HTML {
	tag := "strong"
	switch e.Style {
	case "underline":
		tag = "u"
	case "highlight":
		tag = "mark"
	}

	parts := make([]string, len(authors))
	for i, name := range authors {
		escaped := html.EscapeString(name)
		if isOwner(name, e.MyNameVariants) {
			escaped = "<" + tag + ">" + escaped + "</" + tag + ">"
		}
		parts[i] = escaped
	}
	return template.HTML(strings.Join(parts, ", "))
}

func isOwner(name string, variants []string) bool {
	lower := strings.ToLower(name)
	for _, v := range variants {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" && strings.Contains(lower, v) {
			return true
		}
	}
	return false
}

func pubBadges(p *info.Publication, showMetrics bool) []badge {
	var out []badge
	if p.Type != "" {
		out = append(out, badge{label(p.Type), "badge-type"})
	}
	if p.Status != "" && p.Status != "published" {
		out = append(out, badge{label(p.Status), "badge-status"})
	}
	if p.Featured {
		out = append(out, badge{"Featured", "badge-featured"})
	}
	for _, a := range p.Awards {
		out = append(out, badge{a, "badge-award"})
	}
	if showMetrics && p.Metrics != nil && p.Metrics.Citations != nil {
		n := *p.Metrics.Citations
		unit := "citations"
		if n == 1 {
			unit = "citation"
		}
		out = append(out, badge{humanize.Comma(int64(n)) + " " + unit, "badge-metric"})
	}
	return out
}

// yearGroupView is one year bucket on the publications page.
type yearGroupView struct {
	Year     string
	Anchor   string
	Count    int
	Expanded bool
	Cards    []pubCard
}

func yearAnchor(year string) string {
	return "year-" + strings.ToLower(year)
}

// mediaView is one image or video.
type mediaView struct {
	Type        string `json:"type"`
	Src         string `json:"src"`
	Alt         string `json:"alt,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

func newMediaView(g info.GalleryItem, l linker) mediaView {
	typ := g.Type
	if typ == "" {
		typ = "image"
	}
	return mediaView{Type: typ, Src: l.URL(g.Src), Alt: g.Alt, Title: g.Title, Description: g.Description}
}

// galleryRow is a single medium or a folder shown through its cover.
type galleryRow struct {
	Index  int
	Folder bool
	Cover  mediaView
	Items  []mediaView
	More   string
	Title  string
	Text   string
	Side   string
}

func newGalleryRow(index int, g info.GalleryItem, l linker) galleryRow {
	row := galleryRow{
		Index:  index,
		Folder: g.IsFolder(),
		Cover:  newMediaView(g.Cover(), l),
		Title:  firstNonEmpty(g.Title, g.Cover().Title),
		Text:   firstNonEmpty(g.Description, g.Cover().Description),
		Side:   g.Side,
	}
	if row.Side == "" {
		row.Side = "left"
		if index%2 == 1 {
			row.Side = "right"
		}
	}
	if row.Folder {
		for _, item := range g.Items {
			row.Items = append(row.Items, newMediaView(item, l))
		}
		if extra := len(g.Items) - 1; extra > 0 {
			row.More = fmt.Sprintf("+%s more", humanize.Comma(int64(extra)))
		}
	} else {
		row.Items = []mediaView{row.Cover}
	}
	return row
}

// emailView renders an address either plainly or split so that it is only
// assembled in the browser.
type emailView struct {
	Address    string
	Display    string
	User       string
	Domain     string
	Obfuscated bool
	CopyButton bool
}

func newEmailView(e info.Email) emailView {
	v := emailView{
		Address:    e.Address,
		Display:    e.Address,
		CopyButton: e.ShowCopyButton == nil || *e.ShowCopyButton,
	}
	if e.Display == "obfuscated" {
		if at := strings.LastIndex(e.Address, "@"); at > 0 {
			v.Obfuscated = true
			v.User = e.Address[:at]
			v.Domain = e.Address[at+1:]
			v.Address = ""
			v.Display = v.User + " [at] " + strings.ReplaceAll(v.Domain, ".", " [dot] ")
		}
	}
	return v
}

// statView is one figure in the profile rail.
type statView struct {
	Label string
	Value string
}

func statViews(s *info.Stats) []statView {
	if s == nil {
		return nil
	}
	var out []statView
	add := func(label string, n int) {
		if n > 0 {
			out = append(out, statView{label, humanize.Comma(int64(n))})
		}
	}
	add("Publications", s.Publications)
	add("Citations", s.Citations)
	add("h-index", s.HIndex)
	add("Awards", s.Awards)
	add("Research years", s.ResearchYears)
	add("Collaborations", s.Collaborations)
	if len(s.Conferences) > 0 {
		out = append(out, statView{"Conferences", strings.Join(s.Conferences, ", ")})
	}
	if len(s.Languages) > 0 {
		out = append(out, statView{"Languages", strings.Join(s.Languages, ", ")})
	}
	return out
}

// experienceView is one entry of the experience timeline.
type experienceView struct {
	Category string
	Org      string
	OrgURL   string
	Role     string
	Location string
	Range    string
	Bullets  []string
}

func experienceViews(items []info.Experience) []experienceView {
	sorted := query.SortExperience(items)
	out := make([]experienceView, 0, len(sorted))
	for _, e := range sorted {
		v := experienceView{
			Category: e.Category,
			Org:      e.Org,
			Role:     e.Role,
			Location: e.Location,
			Range:    query.FormatDateRange(e.Start, e.End),
			Bullets:  e.Bullets,
		}
		if e.Links != nil {
			v.OrgURL = e.Links.Org
		}
		out = append(out, v)
	}
	return out
}

// projectView is one project card.
type projectView struct {
	Title    string
	Summary  string
	Tags     []string
	TagAttr  string
	Featured bool
	Image    string
	Links    []actionLink
}

func projectViews(p *info.Projects, l linker) ([]projectView, []string) {
	featuredFirst := p.Settings == nil || p.Settings.FeaturedFirst == nil || *p.Settings.FeaturedFirst
	items := query.ArrangeProjects(p.Items, featuredFirst)
	out := make([]projectView, 0, len(items))
	for _, pr := range items {
		v := projectView{
			Title:    pr.Title,
			Summary:  pr.Summary,
			Tags:     pr.Tags,
			TagAttr:  strings.Join(pr.Tags, "|"),
			Featured: pr.Featured,
		}
		if pr.Media != nil {
			v.Image = l.URL(pr.Media.Thumbnail)
		}
		if pr.Links != nil {
			for _, a := range []actionLink{
				{"Code", pr.Links.Code},
				{"Demo", pr.Links.Demo},
				{"Paper", pr.Links.Paper},
				{"Project", pr.Links.Project},
				{"Video", pr.Links.Video},
			} {
				if a.URL != "" {
					a.URL = l.URL(a.URL)
					v.Links = append(v.Links, a)
				}
			}
		}
		out = append(out, v)
	}
	return out, query.ProjectTags(p.Items)
}

// awardView is one award line.
type awardView struct {
	Title   string
	Org     string
	Year    string
	Details string
	URL     string
}

func awardViews(list *info.AwardList) []awardView {
	out := make([]awardView, 0, len(list.Items))
	for _, a := range list.Items {
		v := awardView{Title: a.Title, Org: a.Org, Details: a.Details}
		if a.Year > 0 {
			v.Year = fmt.Sprint(int(a.Year))
		}
		if a.Links != nil {
			v.URL = a.Links.URL
		}
		out = append(out, v)
	}
	return out
}
