package info

import (
	"path"
	"regexp"
	"strconv"
	"strings"
)

var (
	authorDelims = regexp.MustCompile(`(?i),|;|\band\b`)
	venueYear    = regexp.MustCompile(`\b(20\d{2})\b`)
	leadingYear  = regexp.MustCompile(`^(\d{4})`)
	isoMonth     = regexp.MustCompile(`^\d{4}-(\d{2})`)
)

// ParseAuthors splits an author string on commas, semicolons and the
// word "and", dropping empty tokens.
func ParseAuthors(s string) []string {
	var out []string
	for _, part := range authorDelims.Split(s, -1) {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// ResolveYear picks a publication's display year: the explicit year, then
// the leading four digits of its date, then a 20xx token in the venue text,
// and finally UnknownYear.
func ResolveYear(p *Publication) string {
	if p.Year != nil && *p.Year > 0 {
		return strconv.Itoa(int(*p.Year))
	}
	if m := leadingYear.FindStringSubmatch(p.Date); m != nil {
		return m[1]
	}
	for _, text := range []string{p.Venue.Name, p.Venue.Short} {
		if m := venueYear.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return UnknownYear
}

// Normalize fills defaults and derived fields in place. It is idempotent.
func Normalize(doc *Info) {
	normalizeSite(doc)
	normalizeProfile(doc)
	normalizePublications(doc)

	if doc.Projects != nil {
		if doc.Projects.Settings == nil {
			doc.Projects.Settings = &ProjectSettings{}
		}
		defaultTrue(&doc.Projects.Settings.FeaturedFirst)
	}

	if len(doc.Education) > 0 {
		if doc.Experience == nil {
			doc.Experience = &ExperienceList{}
		}
		for _, e := range doc.Education {
			if e.Category == "" {
				e.Category = "education"
			}
			doc.Experience.Items = append(doc.Experience.Items, e)
		}
		doc.Education = nil
	}

	if doc.CV != nil {
		defaultTrue(&doc.CV.Enabled)
		defaultString(&doc.CV.Label, "Curriculum Vitae")
		defaultString(&doc.CV.ButtonLabel, "Download CV")
	}

	if doc.Awards != nil {
		for i := range doc.Awards.Items {
			a := &doc.Awards.Items[i]
			defaultString(&a.Title, a.Name)
			defaultString(&a.Org, a.By)
		}
	}

	if doc.Contact != nil {
		defaultTrue(&doc.Contact.Enabled)
		defaultString(&doc.Contact.Label, "Contact")
		defaultTrue(&doc.Contact.ShowEmail)
		defaultTrue(&doc.Contact.ShowSocialLinks)
	}

	for i := range doc.Gallery {
		normalizeGallery(&doc.Gallery[i])
	}
}

func normalizeSite(doc *Info) {
	if s := doc.Site; s != nil {
		defaultString(&s.Locale, "en")
		defaultString(&s.LastUpdated, "auto")
		if s.Theme == nil {
			s.Theme = &Theme{}
		}
		defaultString(&s.Theme.DefaultMode, "light")
		defaultTrue(&s.Theme.AllowToggle)
	}
	if doc.Nav != nil {
		for i := range doc.Nav.Items {
			defaultString(&doc.Nav.Items[i].Type, "anchor")
			defaultTrue(&doc.Nav.Items[i].Enabled)
		}
	}
	for k, s := range doc.Sections {
		defaultTrue(&s.Enabled)
		doc.Sections[k] = s
	}
}

func normalizeProfile(doc *Info) {
	p := &doc.Profile
	defaultString(&p.Tagline, p.Title)
	if p.Headshot == nil && p.Photo != "" {
		p.Headshot = &Headshot{Src: p.Photo, Alt: p.Name.Display()}
	}
	if p.Headshot != nil {
		defaultString(&p.Headshot.Shape, "circle")
	}
	defaultString(&p.Email.Display, "plain")
	defaultTrue(&p.Email.ShowCopyButton)

	if doc.CV == nil && p.CV != "" {
		doc.CV = &CV{PDFPath: p.CV}
	}
}

func normalizePublications(doc *Info) {
	pubs := doc.Publications
	if pubs == nil {
		return
	}
	if pubs.Settings == nil {
		pubs.Settings = &PublicationSettings{}
	}
	s := pubs.Settings
	defaultString(&s.AuthorEmphasis.Style, "bold")
	defaultString(&s.EqualContributionMarker, "*")
	defaultString(&s.CorrespondingAuthorMarker, "†")
	defaultString(&s.GroupBy, "year")
	defaultString(&s.DefaultSort, "year_desc")
	if len(s.AuthorEmphasis.MyNameVariants) == 0 {
		if name := doc.Profile.Name; name.Full != "" {
			s.AuthorEmphasis.MyNameVariants = uniqueNonEmpty(name.Full, name.Preferred)
		}
	}
	if c := s.CollapseYears; c != nil {
		defaultTrue(&c.Enabled)
		if c.ExpandedYearsCount == 0 {
			c.ExpandedYearsCount = 2
		}
	}

	for i := range pubs.Items {
		p := &pubs.Items[i]
		if p.PDF != "" || p.Code != "" {
			if p.Links == nil {
				p.Links = &PubLinks{}
			}
			defaultString(&p.Links.PDF, p.PDF)
			defaultString(&p.Links.Code, p.Code)
		}
		if len(p.AuthorsList) == 0 && p.Authors != "" {
			p.AuthorsList = ParseAuthors(p.Authors)
		}
		if p.Month == nil {
			if m := isoMonth.FindStringSubmatch(p.Date); m != nil {
				if n, _ := strconv.Atoi(m[1]); n >= 1 && n <= 12 {
					p.Month = &n
				}
			}
		}
		if p.Year != nil && *p.Year <= 0 {
			p.Year = nil
		}
		p.ResolvedYear = ResolveYear(p)
	}
}

var videoExts = map[string]bool{".mp4": true, ".webm": true, ".mov": true, ".ogv": true}

func normalizeGallery(g *GalleryItem) {
	if g.Type == "" && g.Src != "" {
		g.Type = "image"
		if videoExts[strings.ToLower(path.Ext(g.Src))] {
			g.Type = "video"
		}
	}
	for i := range g.Items {
		normalizeGallery(&g.Items[i])
	}
}

func defaultString(s *string, def string) {
	if *s == "" {
		*s = def
	}
}

func defaultTrue(b **bool) {
	if *b == nil {
		t := true
		*b = &t
	}
}

func uniqueNonEmpty(values ...string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, v := range values {
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
