// Package info holds the portfolio data model read from data/info.json,
// together with its loader, normalizer and validator.
//
// Both shapes found in the wild are accepted on decode: the legacy flat
// document (string names, venue strings, publications as a bare array)
// and the structured document with settings blocks. Validate reports a
// legacy shape as a violation, so strict builds only pass structured data.
package info

// UnknownYear is the resolved year of a publication with no recognisable year.
const UnknownYear = "Unknown"

// Info is the root of data/info.json.
type Info struct {
	Site         *Site              `json:"site,omitempty"`
	Nav          *Nav               `json:"nav,omitempty"`
	Sections     map[string]Section `json:"sections,omitempty"`
	Profile      Profile            `json:"profile"`
	Publications *Publications      `json:"publications,omitempty" jsonschema:"description=Structured block; older files may use a bare array"`
	Projects     *Projects          `json:"projects,omitempty"`
	Experience   *ExperienceList    `json:"experience,omitempty"`
	Education    []Experience       `json:"education,omitempty" jsonschema:"description=Legacy list; merged into experience with category education"`
	CV           *CV                `json:"cv,omitempty"`
	Talks        *TalkList          `json:"talks,omitempty"`
	Teaching     *TeachingList      `json:"teaching,omitempty"`
	Service      *ServiceList       `json:"service,omitempty"`
	Awards       *AwardList         `json:"awards,omitempty" jsonschema:"description=Structured block; older files may use a bare array"`
	Contact      *Contact           `json:"contact,omitempty"`
	News         []NewsItem         `json:"news,omitempty"`
	Stats        *Stats             `json:"stats,omitempty"`
	Gallery      []GalleryItem      `json:"gallery,omitempty"`
}

// Site is page-wide metadata.
type Site struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Locale           string `json:"locale,omitempty"`
	Theme            *Theme `json:"theme,omitempty"`
	BasePath         string `json:"basePath,omitempty"`
	OGImage          string `json:"ogImage,omitempty"`
	Favicon          string `json:"favicon,omitempty"`
	LastUpdated      string `json:"lastUpdated,omitempty" jsonschema:"enum=auto,enum=manual"`
	LastUpdatedValue string `json:"lastUpdatedValue,omitempty"`
}

// Theme selects the initial colour scheme.
type Theme struct {
	DefaultMode string `json:"defaultMode,omitempty" jsonschema:"enum=light,enum=dark"`
	AllowToggle *bool  `json:"allowToggle,omitempty"`
}

// Nav is the top navigation bar.
type Nav struct {
	Items []NavItem `json:"items"`
}

type NavItem struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Href    string `json:"href"`
	Type    string `json:"type,omitempty" jsonschema:"enum=anchor,enum=route"`
	Enabled *bool  `json:"enabled,omitempty"`
}

// Section toggles and relabels one home page section.
type Section struct {
	Enabled *bool  `json:"enabled,omitempty"`
	Label   string `json:"label"`
	Layout  string `json:"layout,omitempty"`
}

// Profile describes the site owner.
type Profile struct {
	Name        PersonName   `json:"name"`
	Tagline     string       `json:"tagline,omitempty"`
	Title       string       `json:"title,omitempty" jsonschema:"description=Legacy alias of tagline"`
	Affiliation string       `json:"affiliation,omitempty"`
	Location    string       `json:"location,omitempty"`
	Email       Email        `json:"email"`
	Headshot    *Headshot    `json:"headshot,omitempty"`
	Photo       string       `json:"photo,omitempty" jsonschema:"description=Legacy alias of headshot.src"`
	Links       ProfileLinks `json:"links"`
	Bio         Paragraphs   `json:"bio"`
	Interests   []string     `json:"interests,omitempty"`
	Highlights  []Highlight  `json:"highlights,omitempty"`
	CV          string       `json:"cv,omitempty" jsonschema:"description=Legacy path to the CV PDF"`

	absent map[string]bool
}

// PersonName is either a plain string or {full, preferred, native}.
type PersonName struct {
	Full      string `json:"full"`
	Preferred string `json:"preferred"`
	Native    string `json:"native,omitempty"`

	legacy bool
}

// Display returns the preferred name, falling back to the full name.
func (n PersonName) Display() string {
	if n.Preferred != "" {
		return n.Preferred
	}
	return n.Full
}

// Email is either a plain address or {address, display, showCopyButton}.
type Email struct {
	Address        string `json:"address"`
	Display        string `json:"display,omitempty" jsonschema:"enum=plain,enum=obfuscated"`
	ShowCopyButton *bool  `json:"showCopyButton,omitempty"`

	legacy bool
}

type Headshot struct {
	Src   string `json:"src"`
	Alt   string `json:"alt"`
	Shape string `json:"shape,omitempty" jsonschema:"enum=circle,enum=rounded"`
}

// Link is an outbound profile link.
type Link struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	URL   string `json:"url"`
	Icon  string `json:"icon,omitempty"`
}

// ProfileLinks is a list of links; the legacy object form
// {"github": "...", "scholar": "..."} decodes to the same list in key order.
type ProfileLinks struct {
	Items []Link

	legacy bool
}

// Paragraphs is a bio given either as one string or as a list of paragraphs.
type Paragraphs struct {
	Items []string

	legacy bool
}

type Highlight struct {
	Icon  string `json:"icon,omitempty"`
	Label string `json:"label"`
	Value string `json:"value"`
	URL   string `json:"url,omitempty"`
}

// Publications is the structured {settings, items} block or a legacy bare array.
type Publications struct {
	Settings *PublicationSettings `json:"settings,omitempty"`
	Items    []Publication        `json:"items"`

	legacy bool
}

type PublicationSettings struct {
	AuthorEmphasis            AuthorEmphasis `json:"authorEmphasis"`
	EqualContributionMarker   string         `json:"equalContributionMarker,omitempty"`
	CorrespondingAuthorMarker string         `json:"correspondingAuthorMarker,omitempty"`
	GroupBy                   string         `json:"groupBy,omitempty" jsonschema:"enum=year"`
	DefaultSort               string         `json:"defaultSort,omitempty" jsonschema:"enum=year_desc,enum=year_asc,enum=title_az"`
	ShowMetrics               bool           `json:"showMetrics,omitempty"`
	CollapseYears             *CollapseYears `json:"collapseYears,omitempty"`
}

// AuthorEmphasis marks the owner's name inside author lists.
type AuthorEmphasis struct {
	MyNameVariants []string `json:"myNameVariants"`
	Style          string   `json:"style,omitempty" jsonschema:"enum=bold,enum=underline,enum=highlight"`
}

// CollapseYears shows only the most recent year groups expanded.
type CollapseYears struct {
	Enabled            *bool `json:"enabled,omitempty"`
	ExpandedYearsCount int   `json:"expandedYearsCount,omitempty"`
}

// Publication is one paper, preprint or thesis.
type Publication struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Authors     string    `json:"authors,omitempty"`
	AuthorsList []string  `json:"authorsList,omitempty"`
	Venue       Venue     `json:"venue"`
	Year        *Year     `json:"year,omitempty"`
	Date        string    `json:"date,omitempty"`
	Month       *int      `json:"month,omitempty"`
	Type        string    `json:"type,omitempty" jsonschema:"enum=conference,enum=journal,enum=workshop,enum=preprint,enum=thesis,enum=demo"`
	Status      string    `json:"status,omitempty" jsonschema:"enum=published,enum=accepted,enum=under_review,enum=in_preparation"`
	Featured    bool      `json:"featured,omitempty"`
	Awards      []string  `json:"awards,omitempty"`
	Keywords    []string  `json:"keywords,omitempty"`
	Abstract    string    `json:"abstract,omitempty"`
	Links       *PubLinks `json:"links,omitempty"`
	PDF         string    `json:"pdf,omitempty" jsonschema:"description=Legacy alias of links.pdf"`
	Code        string    `json:"code,omitempty" jsonschema:"description=Legacy alias of links.code"`
	Bibtex      string    `json:"bibtex"`
	Media       *Media    `json:"media,omitempty"`
	Metrics     *Metrics  `json:"metrics,omitempty"`

	// ResolvedYear is filled by Normalize: a four digit year or UnknownYear.
	ResolvedYear string `json:"-"`
	// Ref is set when a legacy document lists the publication as a path
	// to a separate JSON file instead of inlining it.
	Ref string `json:"-"`
}

// Venue is either a plain string ("In ICLR, 2025") or {name, short}.
type Venue struct {
	Name  string `json:"name"`
	Short string `json:"short,omitempty"`

	legacy bool
}

// Label returns the short venue name when set.
func (v Venue) Label() string {
	if v.Short != "" {
		return v.Short
	}
	return v.Name
}

type PubLinks struct {
	PDF     string `json:"pdf,omitempty"`
	ArXiv   string `json:"arxiv,omitempty"`
	DOI     string `json:"doi,omitempty"`
	Code    string `json:"code,omitempty"`
	Project string `json:"project,omitempty"`
	Video   string `json:"video,omitempty"`
	Slides  string `json:"slides,omitempty"`
	Poster  string `json:"poster,omitempty"`
}

type Media struct {
	Thumbnail string `json:"thumbnail,omitempty"`
}

type Metrics struct {
	Citations *int `json:"citations,omitempty"`
}

// Projects is {settings, items} or a bare array.
type Projects struct {
	Settings *ProjectSettings `json:"settings,omitempty"`
	Items    []Project        `json:"items"`
}

type ProjectSettings struct {
	FeaturedFirst *bool `json:"featuredFirst,omitempty"`
}

type Project struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Summary  string        `json:"summary"`
	Tags     []string      `json:"tags"`
	Featured bool          `json:"featured,omitempty"`
	Links    *ProjectLinks `json:"links,omitempty"`
	Media    *Media        `json:"media,omitempty"`
}

type ProjectLinks struct {
	Code    string `json:"code,omitempty"`
	Demo    string `json:"demo,omitempty"`
	Paper   string `json:"paper,omitempty"`
	Project string `json:"project,omitempty"`
	Video   string `json:"video,omitempty"`
}

// ExperienceList is {items} or a bare array.
type ExperienceList struct {
	Items []Experience `json:"items"`
}

// Experience is a position, degree, internship, visit or service role.
// Start and End are "YYYY-MM" or "present".
type Experience struct {
	ID       string           `json:"id"`
	Category string           `json:"category" jsonschema:"enum=education,enum=position,enum=internship,enum=visiting,enum=service"`
	Org      string           `json:"org"`
	Role     string           `json:"role"`
	Location string           `json:"location,omitempty"`
	Start    string           `json:"start"`
	End      string           `json:"end"`
	Bullets  []string         `json:"bullets"`
	Links    *ExperienceLinks `json:"links,omitempty"`

	absent map[string]bool
}

type ExperienceLinks struct {
	Org     string `json:"org,omitempty"`
	Lab     string `json:"lab,omitempty"`
	Advisor string `json:"advisor,omitempty"`
}

type CV struct {
	Enabled      *bool  `json:"enabled,omitempty"`
	Label        string `json:"label,omitempty"`
	PDFPath      string `json:"pdfPath"`
	ButtonLabel  string `json:"buttonLabel,omitempty"`
	PreviewImage string `json:"previewImage,omitempty"`
	AlsoInLinks  bool   `json:"alsoInLinks,omitempty"`
}

type TalkList struct {
	Items []Talk `json:"items"`
}

type Talk struct {
	Title    string     `json:"title"`
	Event    string     `json:"event"`
	Date     string     `json:"date"`
	Location string     `json:"location,omitempty"`
	Links    *TalkLinks `json:"links,omitempty"`
}

type TalkLinks struct {
	Slides   string `json:"slides,omitempty"`
	Video    string `json:"video,omitempty"`
	Abstract string `json:"abstract,omitempty"`
}

type TeachingList struct {
	Items []Teaching `json:"items"`
}

type Teaching struct {
	Course string         `json:"course"`
	Org    string         `json:"org"`
	Term   string         `json:"term"`
	Role   string         `json:"role"`
	Links  *TeachingLinks `json:"links,omitempty"`
}

type TeachingLinks struct {
	Website   string `json:"website,omitempty"`
	Materials string `json:"materials,omitempty"`
}

type ServiceList struct {
	Items []Service `json:"items"`
}

type Service struct {
	Role       string `json:"role"`
	VenueOrOrg string `json:"venueOrOrg"`
	Year       Year   `json:"year"`
	Details    string `json:"details,omitempty"`
}

// AwardList is {items} or a legacy bare array.
type AwardList struct {
	Items []Award `json:"items"`

	legacy bool
}

// Award accepts both {title, org, year} and the legacy {name, by, year}.
type Award struct {
	Title   string      `json:"title"`
	Name    string      `json:"name,omitempty" jsonschema:"description=Legacy alias of title"`
	Org     string      `json:"org"`
	By      string      `json:"by,omitempty" jsonschema:"description=Legacy alias of org"`
	Year    Year        `json:"year"`
	Details string      `json:"details,omitempty"`
	Links   *AwardLinks `json:"links,omitempty"`
}

type AwardLinks struct {
	URL string `json:"url,omitempty"`
}

type Contact struct {
	Enabled         *bool  `json:"enabled,omitempty"`
	Label           string `json:"label,omitempty"`
	ShowEmail       *bool  `json:"showEmail,omitempty"`
	ShowForm        bool   `json:"showForm,omitempty"`
	ShowSocialLinks *bool  `json:"showSocialLinks,omitempty"`
	Availability    string `json:"availability,omitempty"`
}

type NewsItem struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

// Stats are the numbers shown in the profile rail.
type Stats struct {
	Publications   int      `json:"publications,omitempty"`
	Awards         int      `json:"awards,omitempty"`
	Citations      int      `json:"citations,omitempty"`
	HIndex         int      `json:"h_index,omitempty"`
	ResearchYears  int      `json:"research_years,omitempty"`
	Collaborations int      `json:"collaborations,omitempty"`
	Languages      []string `json:"languages,omitempty"`
	Conferences    []string `json:"conferences,omitempty"`
}

// GalleryItem is a single image or video, or a folder when Items is set.
type GalleryItem struct {
	Type        string        `json:"type,omitempty" jsonschema:"enum=image,enum=video"`
	Src         string        `json:"src,omitempty"`
	Alt         string        `json:"alt,omitempty"`
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Side        string        `json:"side,omitempty" jsonschema:"enum=left,enum=right"`
	Items       []GalleryItem `json:"items,omitempty"`
}

// IsFolder reports whether the item groups several media.
func (g GalleryItem) IsFolder() bool { return len(g.Items) > 0 }

// Cover returns the media shown for the item in the gallery row.
func (g GalleryItem) Cover() GalleryItem {
	if g.IsFolder() {
		return g.Items[0]
	}
	return g
}

// IsTrue reports whether an optional flag is set and true.
func IsTrue(b *bool) bool { return b != nil && *b }
