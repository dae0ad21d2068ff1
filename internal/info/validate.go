package info

import (
	"fmt"
	"net/mail"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Violation is one shape error in the data document. Path uses dotted
// segments with numeric list indices, e.g. "publications.items.3.year".
type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	p := v.Path
	if p == "" {
		p = "root"
	}
	return p + ": " + v.Message
}

// ValidationError carries every violation found in a data file.
type ValidationError struct {
	Path       string
	Violations []Violation
}

func (e *ValidationError) Error() string {
	n := len(e.Violations)
	if n == 1 {
		return fmt.Sprintf("%s: %s", e.Path, e.Violations[0])
	}
	return fmt.Sprintf("%s: %d validation errors, first: %s", e.Path, n, e.Violations[0])
}

var experienceDate = regexp.MustCompile(`(?i)^\d{4}-\d{2}$|^present$`)

const msgRequired = "Required"

// Validate checks a decoded (not yet normalized) document against the
// structured schema and returns every violation in document order.
func Validate(doc *Info) []Violation {
	v := &validator{}

	if doc.Site == nil {
		v.add(msgRequired, "site")
	} else {
		v.site(doc.Site)
	}
	if doc.Nav == nil {
		v.add(msgRequired, "nav")
	} else {
		v.nav(doc.Nav)
	}
	if doc.Sections == nil {
		v.add(msgRequired, "sections")
	} else {
		keys := make([]string, 0, len(doc.Sections))
		for k := range doc.Sections {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v.required(doc.Sections[k].Label, "sections", k, "label")
		}
	}

	v.profile(&doc.Profile)

	if doc.Publications != nil {
		v.publications(doc.Publications)
	}
	if doc.Projects != nil {
		v.projects(doc.Projects)
	}
	if doc.Experience != nil {
		for i, e := range doc.Experience.Items {
			v.experience(e, "experience", "items", i)
		}
	}
	if doc.CV != nil {
		v.required(doc.CV.PDFPath, "cv", "pdfPath")
	}
	if doc.Talks != nil {
		for i, t := range doc.Talks.Items {
			v.required(t.Title, "talks", "items", i, "title")
			v.required(t.Event, "talks", "items", i, "event")
			v.date(t.Date, "talks", "items", i, "date")
		}
	}
	if doc.Teaching != nil {
		for i, t := range doc.Teaching.Items {
			v.required(t.Course, "teaching", "items", i, "course")
			v.required(t.Org, "teaching", "items", i, "org")
			v.required(t.Term, "teaching", "items", i, "term")
			v.required(t.Role, "teaching", "items", i, "role")
		}
	}
	if doc.Service != nil {
		for i, s := range doc.Service.Items {
			v.required(s.Role, "service", "items", i, "role")
			v.required(s.VenueOrOrg, "service", "items", i, "venueOrOrg")
			v.year(int(s.Year), "service", "items", i, "year")
		}
	}
	if doc.Awards != nil {
		if doc.Awards.legacy {
			v.add("Expected object, received array", "awards")
		}
		for i, a := range doc.Awards.Items {
			v.required(a.Title, "awards", "items", i, "title")
			v.required(a.Org, "awards", "items", i, "org")
			v.year(int(a.Year), "awards", "items", i, "year")
		}
	}
	for i, g := range doc.Gallery {
		v.gallery(g, "gallery", i)
	}

	if doc.Publications != nil {
		ids := make([]string, len(doc.Publications.Items))
		for i, p := range doc.Publications.Items {
			ids[i] = p.ID
		}
		v.unique(ids, "publications", "items")
	}
	if doc.Projects != nil {
		ids := make([]string, len(doc.Projects.Items))
		for i, p := range doc.Projects.Items {
			ids[i] = p.ID
		}
		v.unique(ids, "projects", "items")
	}
	if doc.Experience != nil {
		ids := make([]string, len(doc.Experience.Items))
		for i, e := range doc.Experience.Items {
			ids[i] = e.ID
		}
		v.unique(ids, "experience", "items")
	}

	return v.out
}

type validator struct {
	out []Violation
}

func joinPath(segs ...any) string {
	parts := make([]string, len(segs))
	for i, s := range segs {
		switch s := s.(type) {
		case string:
			parts[i] = s
		case int:
			parts[i] = strconv.Itoa(s)
		default:
			parts[i] = fmt.Sprint(s)
		}
	}
	return strings.Join(parts, ".")
}

func (v *validator) add(msg string, path ...any) {
	v.out = append(v.out, Violation{Path: joinPath(path...), Message: msg})
}

func (v *validator) required(s string, path ...any) {
	if strings.TrimSpace(s) == "" {
		v.add(msgRequired, path...)
	}
}

// present reports key as required when the decoded object lacked it. An
// empty string is accepted.
func (v *validator) present(absent map[string]bool, key string, path ...any) {
	if absent[key] {
		v.add(msgRequired, append(append([]any{}, path...), key)...)
	}
}

func (v *validator) nonEmpty(s string, path ...any) {
	if s == "" {
		v.add("String must contain at least 1 character(s)", path...)
	}
}

func (v *validator) enum(s string, allowed []string, path ...any) {
	if s == "" {
		return
	}
	for _, a := range allowed {
		if s == a {
			return
		}
	}
	quoted := make([]string, len(allowed))
	for i, a := range allowed {
		quoted[i] = "'" + a + "'"
	}
	v.add(fmt.Sprintf("Invalid enum value. Expected %s, received '%s'", strings.Join(quoted, " | "), s), path...)
}

func (v *validator) year(y int, path ...any) {
	switch {
	case y < 1900:
		v.add("Number must be greater than or equal to 1900", path...)
	case y > 2100:
		v.add("Number must be less than or equal to 2100", path...)
	}
}

func (v *validator) date(s string, path ...any) {
	if !experienceDate.MatchString(s) {
		v.add(`Must be YYYY-MM or "present"`, path...)
	}
}

func (v *validator) list(present bool, path ...any) {
	if !present {
		v.add(msgRequired, path...)
	}
}

func (v *validator) unique(ids []string, path ...any) {
	seen := make(map[string]int)
	var dups []string
	for _, id := range ids {
		if id == "" {
			continue
		}
		seen[id]++
		if seen[id] == 2 {
			dups = append(dups, id)
		}
	}
	if len(dups) > 0 {
		v.add("duplicate IDs: "+strings.Join(dups, ", "), path...)
	}
}

var (
	themeModes    = []string{"light", "dark"}
	updateModes   = []string{"auto", "manual"}
	navTypes      = []string{"anchor", "route"}
	emailDisplays = []string{"plain", "obfuscated"}
	shapes        = []string{"circle", "rounded"}
	emphasis      = []string{"bold", "underline", "highlight"}
	groupings     = []string{"year"}
	sortModes     = []string{"year_desc", "year_asc", "title_az"}
	pubTypes      = []string{"conference", "journal", "workshop", "preprint", "thesis", "demo"}
	pubStatuses   = []string{"published", "accepted", "under_review", "in_preparation"}
	expCategories = []string{"education", "position", "internship", "visiting", "service"}
	mediaTypes    = []string{"image", "video"}
	sides         = []string{"left", "right"}
)

func (v *validator) site(s *Site) {
	v.nonEmpty(s.Title, "site", "title")
	v.nonEmpty(s.Description, "site", "description")
	if s.Theme != nil {
		v.enum(s.Theme.DefaultMode, themeModes, "site", "theme", "defaultMode")
	}
	v.enum(s.LastUpdated, updateModes, "site", "lastUpdated")
}

func (v *validator) nav(n *Nav) {
	v.list(n.Items != nil, "nav", "items")
	for i, it := range n.Items {
		v.required(it.ID, "nav", "items", i, "id")
		v.required(it.Label, "nav", "items", i, "label")
		v.required(it.Href, "nav", "items", i, "href")
		v.enum(it.Type, navTypes, "nav", "items", i, "type")
	}
}

func (v *validator) profile(p *Profile) {
	if p.Name.legacy {
		v.add("Expected object, received string", "profile", "name")
	} else {
		v.nonEmpty(p.Name.Full, "profile", "name", "full")
		v.nonEmpty(p.Name.Preferred, "profile", "name", "preferred")
	}
	v.present(p.absent, "tagline", "profile")
	v.present(p.absent, "affiliation", "profile")

	if p.Email.legacy {
		v.add("Expected object, received string", "profile", "email")
	} else {
		if p.Email.Address == "" {
			v.add(msgRequired, "profile", "email", "address")
		} else if addr, err := mail.ParseAddress(p.Email.Address); err != nil || addr.Address != p.Email.Address {
			v.add("Invalid email", "profile", "email", "address")
		}
		v.enum(p.Email.Display, emailDisplays, "profile", "email", "display")
	}

	if p.Headshot == nil {
		v.add(msgRequired, "profile", "headshot")
	} else {
		v.required(p.Headshot.Src, "profile", "headshot", "src")
		v.required(p.Headshot.Alt, "profile", "headshot", "alt")
		v.enum(p.Headshot.Shape, shapes, "profile", "headshot", "shape")
	}

	if p.Links.legacy {
		v.add("Expected array, received object", "profile", "links")
	} else {
		v.list(p.Links.Items != nil, "profile", "links")
		for i, l := range p.Links.Items {
			v.required(l.Type, "profile", "links", i, "type")
			v.required(l.Label, "profile", "links", i, "label")
			v.nonEmpty(l.URL, "profile", "links", i, "url")
		}
	}

	if p.Bio.legacy {
		v.add("Expected array, received string", "profile", "bio")
	} else {
		v.list(p.Bio.Items != nil, "profile", "bio")
	}
	v.list(p.Interests != nil, "profile", "interests")
	v.list(p.Highlights != nil, "profile", "highlights")
	for i, h := range p.Highlights {
		v.required(h.Label, "profile", "highlights", i, "label")
		v.required(h.Value, "profile", "highlights", i, "value")
	}
}

func (v *validator) publications(pubs *Publications) {
	if pubs.legacy {
		v.add("Expected object, received array", "publications")
	} else if s := pubs.Settings; s == nil {
		v.add(msgRequired, "publications", "settings")
	} else {
		v.list(s.AuthorEmphasis.MyNameVariants != nil, "publications", "settings", "authorEmphasis", "myNameVariants")
		v.enum(s.AuthorEmphasis.Style, emphasis, "publications", "settings", "authorEmphasis", "style")
		v.enum(s.GroupBy, groupings, "publications", "settings", "groupBy")
		v.enum(s.DefaultSort, sortModes, "publications", "settings", "defaultSort")
		if c := s.CollapseYears; c != nil && c.ExpandedYearsCount < 0 {
			v.add("Number must be greater than or equal to 1", "publications", "settings", "collapseYears", "expandedYearsCount")
		}
	}

	for i, p := range pubs.Items {
		at := func(field ...any) []any { return append([]any{"publications", "items", i}, field...) }

		v.nonEmpty(p.ID, at("id")...)
		v.nonEmpty(p.Title, at("title")...)
		if p.Venue.legacy {
			v.add("Expected object, received string", at("venue")...)
		} else {
			v.required(p.Venue.Name, at("venue", "name")...)
		}
		if p.Year == nil {
			v.add(msgRequired, at("year")...)
		} else {
			v.year(int(*p.Year), at("year")...)
		}
		if p.Month != nil && (*p.Month < 1 || *p.Month > 12) {
			v.add("Month must be between 1 and 12", at("month")...)
		}
		if p.Type == "" {
			v.add(msgRequired, at("type")...)
		} else {
			v.enum(p.Type, pubTypes, at("type")...)
		}
		v.enum(p.Status, pubStatuses, at("status")...)
		if p.Bibtex == "" {
			v.add("BibTeX is required", at("bibtex")...)
		}
		if p.Metrics != nil && p.Metrics.Citations != nil && *p.Metrics.Citations < 0 {
			v.add("Number must be greater than or equal to 0", at("metrics", "citations")...)
		}
		if p.Authors == "" && len(p.AuthorsList) == 0 {
			v.add("Either authors or authorsList must be provided", at()...)
		}
	}
}

func (v *validator) projects(p *Projects) {
	if p.Settings == nil {
		v.add(msgRequired, "projects", "settings")
	}
	for i, it := range p.Items {
		v.nonEmpty(it.ID, "projects", "items", i, "id")
		v.nonEmpty(it.Title, "projects", "items", i, "title")
		v.required(it.Summary, "projects", "items", i, "summary")
		v.list(it.Tags != nil, "projects", "items", i, "tags")
	}
}

func (v *validator) experience(e Experience, path ...any) {
	at := func(field string) []any { return append(append([]any{}, path...), field) }
	v.nonEmpty(e.ID, at("id")...)
	if e.Category == "" {
		v.add(msgRequired, at("category")...)
	} else {
		v.enum(e.Category, expCategories, at("category")...)
	}
	v.present(e.absent, "org", path...)
	v.present(e.absent, "role", path...)
	v.date(e.Start, at("start")...)
	v.date(e.End, at("end")...)
	v.list(e.Bullets != nil, at("bullets")...)
}

func (v *validator) gallery(g GalleryItem, path ...any) {
	at := func(field ...any) []any { return append(append([]any{}, path...), field...) }
	v.enum(g.Type, mediaTypes, at("type")...)
	v.enum(g.Side, sides, at("side")...)
	switch {
	case g.Items != nil && len(g.Items) == 0:
		v.add("Gallery folder must contain at least one item", at("items")...)
	case g.IsFolder():
		for i, child := range g.Items {
			if child.IsFolder() {
				v.add("Gallery folders cannot be nested", at("items", i)...)
				continue
			}
			v.gallery(child, at("items", i)...)
		}
	default:
		v.required(g.Src, at("src")...)
	}
}
