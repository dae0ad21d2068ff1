package site

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"path"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/ziadkadry99/folio/internal/info"
	"github.com/ziadkadry99/folio/internal/nav"
	"github.com/ziadkadry99/folio/internal/posts"
	"github.com/ziadkadry99/folio/internal/query"
	"github.com/ziadkadry99/folio/internal/walker"
)

// Region is a named slot of a page. Element IDs in the output match the
// region names.
type Region string

const (
	RegionProfile      Region = "profile"
	RegionProfileRail  Region = "profile-rail"
	RegionStats        Region = "profile-stats-global"
	RegionSiteNav      Region = "site-nav"
	RegionNews         Region = "news"
	RegionInterests    Region = "interests"
	RegionHighlights   Region = "highlights"
	RegionProjects     Region = "projects"
	RegionExperience   Region = "experience"
	RegionCV           Region = "cv"
	RegionContact      Region = "contact"
	RegionPublications Region = "publications"
	RegionPubNav       Region = "pub-navigation"
	RegionAwards       Region = "awards"
	RegionBlogList     Region = "blog-list"
	RegionBlogCats     Region = "blog-categories"
	RegionBlogNav      Region = "blog-navigation"
	RegionPost         Region = "post"
	RegionPostNav      Region = "post-navigation"
	RegionGallery      Region = "gallery"
)

// errNoData marks a region whose data is absent. It renders nothing.
var errNoData = errors.New("region has no data")

// regionSpec builds the template data of one region.
type regionSpec struct {
	build func(rc *renderContext) (any, error)
	// subject names what failed in the placeholder: "Failed to load <subject>".
	subject string
}

var regionSpecs map[Region]regionSpec

func init() {
	regionSpecs = map[Region]regionSpec{
		RegionProfile:      {buildProfile, "profile"},
		RegionProfileRail:  {buildRail, "profile"},
		RegionStats:        {buildStats, "statistics"},
		RegionSiteNav:      {buildSiteNav, "navigation"},
		RegionNews:         {buildNews, "news"},
		RegionInterests:    {buildInterests, "interests"},
		RegionHighlights:   {buildHighlights, "highlights"},
		RegionProjects:     {buildProjects, "projects"},
		RegionExperience:   {buildExperience, "experience"},
		RegionCV:           {buildCV, "CV"},
		RegionContact:      {buildContact, "contact details"},
		RegionPublications: {buildPublications, "publications"},
		RegionPubNav:       {buildPubNav, "publication navigation"},
		RegionAwards:       {buildAwards, "awards"},
		RegionBlogList:     {buildBlogList, "blog posts"},
		RegionBlogCats:     {buildBlogCategories, "categories"},
		RegionBlogNav:      {buildBlogNav, "blog navigation"},
		RegionPost:         {buildPost, "post"},
		RegionPostNav:      {buildPostNav, "post navigation"},
		RegionGallery:      {buildGallery, "gallery"},
	}
}

// blogData is what the blog regions read. err is set when the posts index
// could not be loaded.
type blogData struct {
	entries []posts.Entry
	loaded  map[string]*posts.Post
	tree    *PanelTree
	err     error
}

// renderContext is everything a region builder may read for one page.
type renderContext struct {
	info         *info.Info
	page         Page
	link         linker
	blog         *blogData
	post         *posts.Post
	postErr      error
	assets       map[string]walker.File
	headerOffset int
	logger       *zap.Logger
	warnings     *warnings
}

func (rc *renderContext) warn(msg string, fields ...zap.Field) {
	rc.warnings.add(rc.logger, rc.page.Path, msg, fields...)
}

// media resolves a media reference and warns when a local file is missing
// from the static assets. The URL is kept so the client fallback applies.
func (rc *renderContext) media(src string) string {
	if local := localAsset(src); local != "" && rc.assets != nil {
		if _, ok := rc.assets[local]; !ok {
			rc.warn("missing media file", zap.String("src", src))
		}
	}
	return rc.link.URL(src)
}

// section reports whether a home page section is enabled and its label.
func (rc *renderContext) section(key, fallback string) (string, bool) {
	s, ok := rc.info.Sections[key]
	if !ok {
		return fallback, true
	}
	if s.Enabled != nil && !*s.Enabled {
		return "", false
	}
	if s.Label != "" {
		return s.Label, true
	}
	return fallback, true
}

// renderRegions fills the regions the page declares. Absent data renders
// nothing; a failing region renders a placeholder and logs a warning.
func renderRegions(tmpl *template.Template, rc *renderContext) map[string]template.HTML {
	out := make(map[string]template.HTML, len(rc.page.Regions))
	for _, r := range rc.page.Regions {
		spec, ok := regionSpecs[r]
		if !ok {
			rc.warn("unknown region", zap.String("region", string(r)))
			continue
		}
		data, err := spec.build(rc)
		if errors.Is(err, errNoData) {
			continue
		}
		if err == nil {
			var buf bytes.Buffer
			if err = tmpl.ExecuteTemplate(&buf, "region/"+string(r), data); err == nil {
				out[string(r)] = template.HTML(buf.String())
				continue
			}
		}
		rc.warn("region failed", zap.String("region", string(r)), zap.Error(err))
		out[string(r)] = placeholder(r, spec.subject)
	}
	return out
}

func placeholder(r Region, subject string) template.HTML {
	return template.HTML(fmt.Sprintf(`<div id="%s" class="region-error" role="alert">Failed to load %s</div>`,
		attr(string(r)), attr(subject)))
}

type headshotView struct {
	Src   string
	Alt   string
	Shape string
}

func (rc *renderContext) headshot() *headshotView {
	h := rc.info.Profile.Headshot
	if h == nil || h.Src == "" {
		return nil
	}
	shape := h.Shape
	if shape == "" {
		shape = "circle"
	}
	return &headshotView{Src: rc.media(h.Src), Alt: h.Alt, Shape: shape}
}

type profileView struct {
	Name        string
	Native      string
	Tagline     string
	Affiliation string
	Location    string
	Headshot    *headshotView
	Bio         []string
	Email       *emailView
}

func buildProfile(rc *renderContext) (any, error) {
	p := rc.info.Profile
	if p.Name.Display() == "" && len(p.Bio.Items) == 0 {
		return nil, errNoData
	}
	v := profileView{
		Name:        p.Name.Display(),
		Native:      p.Name.Native,
		Tagline:     p.Tagline,
		Affiliation: p.Affiliation,
		Location:    p.Location,
		Headshot:    rc.headshot(),
		Bio:         p.Bio.Items,
	}
	if p.Email.Address != "" {
		e := newEmailView(p.Email)
		v.Email = &e
	}
	return v, nil
}

type railView struct {
	Name     string
	Tagline  string
	Headshot *headshotView
	Links    []info.Link
	Home     string
}

func buildRail(rc *renderContext) (any, error) {
	p := rc.info.Profile
	if p.Name.Display() == "" {
		return nil, errNoData
	}
	v := railView{
		Name:     p.Name.Display(),
		Tagline:  p.Tagline,
		Headshot: rc.headshot(),
		Home:     rc.link.Page("index.html"),
	}
	for _, l := range p.Links.Items {
		l.URL = rc.link.URL(l.URL)
		if l.Label == "" {
			l.Label = label(l.Type)
		}
		v.Links = append(v.Links, l)
	}
	if cv := rc.info.CV; cv != nil && cv.AlsoInLinks && info.IsTrue(cv.Enabled) && cv.PDFPath != "" {
		v.Links = append(v.Links, info.Link{Type: "cv", Label: "CV", URL: rc.media(cv.PDFPath)})
	}
	return v, nil
}

func buildStats(rc *renderContext) (any, error) {
	stats := statViews(rc.info.Stats)
	if len(stats) == 0 {
		return nil, errNoData
	}
	return stats, nil
}

type navItemView struct {
	Label  string
	Href   string
	Active bool
}

func buildSiteNav(rc *renderContext) (any, error) {
	var items []info.NavItem
	if rc.info.Nav != nil {
		items = rc.info.Nav.Items
	} else {
		items = rc.defaultNav()
	}
	var out []navItemView
	for _, it := range items {
		if it.Enabled != nil && !*it.Enabled {
			continue
		}
		href := it.Href
		if strings.HasPrefix(href, "#") && rc.page.Path != "index.html" {
			href = "index.html" + href
		}
		out = append(out, navItemView{
			Label:  it.Label,
			Href:   rc.link.URL(routeHref(href)),
			Active: navTarget(href) == rc.page.Nav,
		})
	}
	if len(out) == 0 {
		return nil, errNoData
	}
	return out, nil
}

// routeHref maps a route such as "/publications" to its generated page.
func routeHref(href string) string {
	if isExternal(href) || strings.HasPrefix(href, "#") {
		return href
	}
	base, frag, _ := strings.Cut(href, "#")
	trimmed := strings.Trim(base, "/")
	switch {
	case trimmed == "":
		base = "index.html"
	case path.Ext(trimmed) == "":
		base = trimmed + ".html"
	default:
		base = trimmed
	}
	if frag != "" {
		return base + "#" + frag
	}
	return base
}

// navTarget is the page an item points at, used to mark it active.
func navTarget(href string) string {
	base, _, _ := strings.Cut(routeHref(href), "#")
	return base
}

func (rc *renderContext) defaultNav() []info.NavItem {
	items := []info.NavItem{{ID: "home", Label: "Home", Href: "index.html"}}
	if rc.info.Publications != nil && len(rc.info.Publications.Items) > 0 {
		items = append(items, info.NavItem{ID: "publications", Label: "Publications", Href: "publications.html"})
	}
	if rc.info.Awards != nil && len(rc.info.Awards.Items) > 0 {
		items = append(items, info.NavItem{ID: "awards", Label: "Awards", Href: "awards.html"})
	}
	if rc.blog != nil && (len(rc.blog.entries) > 0 || rc.blog.err != nil) {
		items = append(items, info.NavItem{ID: "blog", Label: "Blog", Href: "blog.html"})
	}
	if len(rc.info.Gallery) > 0 {
		items = append(items, info.NavItem{ID: "gallery", Label: "Gallery", Href: "gallery.html"})
	}
	return items
}

type listView[T any] struct {
	Label string
	Items []T
}

func buildNews(rc *renderContext) (any, error) {
	lbl, ok := rc.section("news", "News")
	if !ok || len(rc.info.News) == 0 {
		return nil, errNoData
	}
	return listView[info.NewsItem]{lbl, rc.info.News}, nil
}

func buildInterests(rc *renderContext) (any, error) {
	lbl, ok := rc.section("interests", "Research Interests")
	if !ok || len(rc.info.Profile.Interests) == 0 {
		return nil, errNoData
	}
	return listView[string]{lbl, rc.info.Profile.Interests}, nil
}

func buildHighlights(rc *renderContext) (any, error) {
	lbl, ok := rc.section("highlights", "Highlights")
	if !ok || len(rc.info.Profile.Highlights) == 0 {
		return nil, errNoData
	}
	items := make([]info.Highlight, len(rc.info.Profile.Highlights))
	for i, h := range rc.info.Profile.Highlights {
		h.URL = rc.link.URL(h.URL)
		items[i] = h
	}
	return listView[info.Highlight]{lbl, items}, nil
}

type projectsView struct {
	Label    string
	Tags     []string
	Projects []projectView
}

func buildProjects(rc *renderContext) (any, error) {
	lbl, ok := rc.section("projects", "Projects")
	if !ok || rc.info.Projects == nil || len(rc.info.Projects.Items) == 0 {
		return nil, errNoData
	}
	for _, pr := range rc.info.Projects.Items {
		if pr.Media != nil && pr.Media.Thumbnail != "" {
			rc.media(pr.Media.Thumbnail)
		}
	}
	projects, tags := projectViews(rc.info.Projects, rc.link)
	return projectsView{lbl, tags, projects}, nil
}

func buildExperience(rc *renderContext) (any, error) {
	lbl, ok := rc.section("experience", "Experience")
	if !ok || rc.info.Experience == nil || len(rc.info.Experience.Items) == 0 {
		return nil, errNoData
	}
	return listView[experienceView]{lbl, experienceViews(rc.info.Experience.Items)}, nil
}

type cvView struct {
	Label   string
	Button  string
	URL     string
	Size    string
	Preview string
}

func buildCV(rc *renderContext) (any, error) {
	cv := rc.info.CV
	if cv == nil || cv.PDFPath == "" || (cv.Enabled != nil && !*cv.Enabled) {
		return nil, errNoData
	}
	v := cvView{
		Label:  cv.Label,
		Button: cv.ButtonLabel,
		URL:    rc.media(cv.PDFPath),
	}
	if cv.PreviewImage != "" {
		v.Preview = rc.media(cv.PreviewImage)
	}
	if f, ok := rc.assets[localAsset(cv.PDFPath)]; ok {
		v.Size = humanize.Bytes(uint64(f.Size))
	}
	return v, nil
}

type contactView struct {
	Label        string
	Email        *emailView
	Links        []info.Link
	Availability string
}

func buildContact(rc *renderContext) (any, error) {
	c := rc.info.Contact
	if c == nil || (c.Enabled != nil && !*c.Enabled) {
		return nil, errNoData
	}
	v := contactView{Label: c.Label, Availability: c.Availability}
	if info.IsTrue(c.ShowEmail) && rc.info.Profile.Email.Address != "" {
		e := newEmailView(rc.info.Profile.Email)
		v.Email = &e
	}
	if info.IsTrue(c.ShowSocialLinks) {
		for _, l := range rc.info.Profile.Links.Items {
			l.URL = rc.link.URL(l.URL)
			if l.Label == "" {
				l.Label = label(l.Type)
			}
			v.Links = append(v.Links, l)
		}
	}
	return v, nil
}

type publicationsView struct {
	Groups   []yearGroupView
	Years    []string
	Types    []string
	Total    int
	Sort     query.SortMode
	Collapse bool
}

func (rc *renderContext) publications() (*info.Publications, error) {
	p := rc.info.Publications
	if p == nil || len(p.Items) == 0 {
		return nil, errNoData
	}
	return p, nil
}

func buildPublications(rc *renderContext) (any, error) {
	p, err := rc.publications()
	if err != nil {
		return nil, err
	}
	res := query.Query(p.Items, query.PubState{}, p.Settings)

	order := make(map[string]int, len(p.Items))
	for i := range p.Items {
		order[p.Items[i].ID] = i
	}

	v := publicationsView{
		Years:    res.Years,
		Types:    res.Types,
		Total:    res.Total,
		Sort:     query.SortYearDesc,
		Collapse: collapsing(p.Settings),
	}
	if p.Settings != nil && p.Settings.DefaultSort != "" {
		v.Sort = query.SortMode(p.Settings.DefaultSort)
	}
	for _, g := range res.Groups {
		gv := yearGroupView{
			Year:     g.Year,
			Anchor:   yearAnchor(g.Year),
			Count:    len(g.Items),
			Expanded: g.Expanded,
		}
		for i := range g.Items {
			pub := &g.Items[i]
			card := newPubCard(order[pub.ID], pub, p.Settings, rc.link)
			if pub.Media != nil && pub.Media.Thumbnail != "" {
				card.Thumbnail = rc.media(pub.Media.Thumbnail)
			}
			gv.Cards = append(gv.Cards, card)
		}
		v.Groups = append(v.Groups, gv)
	}
	return v, nil
}

func collapsing(s *info.PublicationSettings) bool {
	return s != nil && s.CollapseYears != nil && info.IsTrue(s.CollapseYears.Enabled)
}

type outlineView struct {
	Offset  int
	Entries []nav.Entry
}

func buildPubNav(rc *renderContext) (any, error) {
	p, err := rc.publications()
	if err != nil {
		return nil, err
	}
	var headings []nav.Heading
	for _, g := range query.GroupByYear(p.Items) {
		headings = append(headings, nav.Heading{
			Level: 2,
			Text:  fmt.Sprintf("%s (%d)", g.Year, len(g.Items)),
			ID:    yearAnchor(g.Year),
		})
	}
	return outlineView{rc.headerOffset, nav.Outline(headings, false)}, nil
}

func buildAwards(rc *renderContext) (any, error) {
	if rc.info.Awards == nil || len(rc.info.Awards.Items) == 0 {
		return nil, errNoData
	}
	lbl, _ := rc.section("awards", "Awards")
	return listView[awardView]{lbl, awardViews(rc.info.Awards)}, nil
}

type postCard struct {
	Title    string
	URL      string
	Date     string
	Tags     []string
	Category string
	Summary  string
	Cover    string
	Search   string
}

func (rc *renderContext) blogEntries() ([]posts.Entry, error) {
	if rc.blog == nil {
		return nil, errNoData
	}
	if rc.blog.err != nil {
		return nil, rc.blog.err
	}
	if len(rc.blog.entries) == 0 {
		return nil, errNoData
	}
	return rc.blog.entries, nil
}

func buildBlogList(rc *renderContext) (any, error) {
	entries, err := rc.blogEntries()
	if err != nil {
		return nil, err
	}
	cards := make([]postCard, 0, len(entries))
	for _, e := range entries {
		if p, ok := rc.blog.loaded[e.Ref()]; ok {
			e = p.Entry
			e.Title = p.Title
		}
		c := postCard{
			Title:    e.Title,
			URL:      rc.link.Page(postPagePath(e)),
			Date:     e.Date,
			Tags:     e.Tags,
			Category: e.DisplayCategory(),
			Summary:  e.Summary,
			Search:   query.PostHaystack(e),
		}
		if c.Title == "" {
			c.Title = e.PageName()
		}
		if e.Cover != "" {
			c.Cover = rc.media(e.Cover)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func buildBlogCategories(rc *renderContext) (any, error) {
	entries, err := rc.blogEntries()
	if err != nil {
		return nil, err
	}
	return query.Categories(entries), nil
}

type blogNavView struct {
	Tree        template.HTML
	Transitions []nav.Transition
	Start       nav.PanelState
}

func buildBlogNav(rc *renderContext) (any, error) {
	if _, err := rc.blogEntries(); err != nil {
		return nil, err
	}
	return blogNavView{
		Tree:        template.HTML(rc.blog.tree.ToHTML(rc.page.Path, rc.link.prefix)),
		Transitions: nav.Transitions(),
		Start:       nav.PanelPosts,
	}, nil
}

type postView struct {
	Title    string
	Meta     string
	Category string
	Tags     []string
	Cover    string
	Body     template.HTML
	Back     string
}

func buildPost(rc *renderContext) (any, error) {
	if rc.postErr != nil {
		return nil, rc.postErr
	}
	if rc.post == nil {
		return nil, errNoData
	}
	p := rc.post
	v := postView{
		Title:    p.Title,
		Meta:     p.Meta(),
		Category: p.Entry.DisplayCategory(),
		Tags:     p.Entry.Tags,
		Body:     template.HTML(p.Doc.HTML),
		Back:     rc.link.Page("blog.html"),
	}
	if p.Entry.Cover != "" {
		v.Cover = rc.media(p.Entry.Cover)
	}
	return v, nil
}

func buildPostNav(rc *renderContext) (any, error) {
	if rc.post == nil {
		return nil, errNoData
	}
	entries := nav.Outline(rc.post.Doc.Headings, true)
	if len(entries) == 0 {
		return nil, errNoData
	}
	return outlineView{rc.headerOffset, entries}, nil
}

func buildGallery(rc *renderContext) (any, error) {
	if len(rc.info.Gallery) == 0 {
		return nil, errNoData
	}
	rows := make([]galleryRow, 0, len(rc.info.Gallery))
	for i, g := range rc.info.Gallery {
		for _, m := range append([]info.GalleryItem{g}, g.Items...) {
			if m.Src != "" {
				rc.media(m.Src)
			}
		}
		rows = append(rows, newGalleryRow(i, g, rc.link))
	}
	return rows, nil
}
