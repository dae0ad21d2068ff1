// Package query filters, sorts and groups the portfolio collections.
// Every function is pure: inputs are never modified and the same
// arguments always give the same result.
package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ziadkadry99/folio/internal/info"
)

// SortMode orders publications.
type SortMode string

const (
	SortYearDesc SortMode = "year_desc"
	SortYearAsc  SortMode = "year_asc"
	SortTitleAZ  SortMode = "title_az"
)

// ParseSortMode accepts the three modes; "" means SortYearDesc.
func ParseSortMode(s string) (SortMode, error) {
	switch m := SortMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return SortYearDesc, nil
	case SortYearDesc, SortYearAsc, SortTitleAZ:
		return m, nil
	}
	return "", fmt.Errorf("unknown sort mode %q (want year_desc, year_asc or title_az)", s)
}

// PubFilter narrows publications. All set criteria must hold.
type PubFilter struct {
	Search       string   `json:"search,omitempty"`
	Years        []string `json:"years,omitempty"`
	Types        []string `json:"types,omitempty"`
	FeaturedOnly bool     `json:"featuredOnly,omitempty"`
}

// IsZero reports whether the filter lets everything through.
func (f PubFilter) IsZero() bool {
	return strings.TrimSpace(f.Search) == "" && len(f.Years) == 0 && len(f.Types) == 0 && !f.FeaturedOnly
}

// Match reports whether p satisfies the filter. Search is a case
// insensitive substring test over title, authors, venue and keywords.
func (f PubFilter) Match(p *info.Publication) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(PubHaystack(p), q) {
			return false
		}
	}
	if len(f.Years) > 0 && !contains(f.Years, YearOf(p)) {
		return false
	}
	if len(f.Types) > 0 && !contains(f.Types, p.Type) {
		return false
	}
	if f.FeaturedOnly && !p.Featured {
		return false
	}
	return true
}

// PubHaystack is the lower-cased text the search filter matches against.
func PubHaystack(p *info.Publication) string {
	authors := p.AuthorsList
	if len(authors) == 0 {
		authors = info.ParseAuthors(p.Authors)
	}
	fields := []string{p.Title, strings.Join(authors, " "), p.Venue.Name, p.Venue.Short}
	fields = append(fields, p.Keywords...)
	return strings.ToLower(strings.Join(fields, " "))
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// YearOf returns the publication's resolved year, resolving it when
// Normalize has not run.
func YearOf(p *info.Publication) string {
	if p.ResolvedYear != "" {
		return p.ResolvedYear
	}
	return info.ResolveYear(p)
}

// yearNum is the numeric year, or -1 for an unknown year.
func yearNum(year string) int {
	n, err := strconv.Atoi(year)
	if err != nil {
		return -1
	}
	return n
}

// FilterPublications returns the matching items in their original order.
func FilterPublications(items []info.Publication, f PubFilter) []info.Publication {
	out := make([]info.Publication, 0, len(items))
	for i := range items {
		if f.Match(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}

// SortPublications returns a sorted copy. Year modes order items that
// share a year by month only when both carry one; an item without a month
// keeps its insertion slot. Unknown years always come last. The sort is
// stable.
func SortPublications(items []info.Publication, mode SortMode) []info.Publication {
	out := make([]info.Publication, len(items))
	copy(out, items)

	if mode == SortTitleAZ {
		col := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Title, out[j].Title) < 0
		})
		return out
	}

	asc := mode == SortYearAsc
	sort.SliceStable(out, func(i, j int) bool {
		yi, yj := yearNum(YearOf(&out[i])), yearNum(YearOf(&out[j]))
		switch {
		case yi == yj:
			return false
		case yi < 0:
			return false
		case yj < 0:
			return true
		case asc:
			return yi < yj
		default:
			return yi > yj
		}
	})

	for start := 0; start < len(out); {
		end := start + 1
		y := YearOf(&out[start])
		for end < len(out) && YearOf(&out[end]) == y {
			end++
		}
		sortMonths(out[start:end], asc)
		start = end
	}
	return out
}

// sortMonths reorders the items of one year run that carry a month among
// the slots those items occupy. Items without a month do not move.
func sortMonths(run []info.Publication, asc bool) {
	var slots []int
	for i := range run {
		if month(&run[i]) > 0 {
			slots = append(slots, i)
		}
	}
	if len(slots) < 2 {
		return
	}
	dated := make([]info.Publication, len(slots))
	for i, s := range slots {
		dated[i] = run[s]
	}
	sort.SliceStable(dated, func(i, j int) bool {
		if asc {
			return month(&dated[i]) < month(&dated[j])
		}
		return month(&dated[i]) > month(&dated[j])
	})
	for i, s := range slots {
		run[s] = dated[i]
	}
}

func month(p *info.Publication) int {
	if p.Month == nil {
		return 0
	}
	return *p.Month
}

// YearGroup is one bucket of the publications list.
type YearGroup struct {
	Year     string             `json:"year"`
	Items    []info.Publication `json:"items"`
	Expanded bool               `json:"expanded"`
}

// GroupByYear buckets items by resolved year. Buckets run from the newest
// year down with UnknownYear last; items keep their order within a bucket.
func GroupByYear(items []info.Publication) []YearGroup {
	index := make(map[string]int)
	var groups []YearGroup
	for i := range items {
		y := YearOf(&items[i])
		gi, ok := index[y]
		if !ok {
			gi = len(groups)
			index[y] = gi
			groups = append(groups, YearGroup{Year: y, Expanded: true})
		}
		groups[gi].Items = append(groups[gi].Items, items[i])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return yearBefore(groups[i].Year, groups[j].Year)
	})
	return groups
}

// yearBefore orders years newest first with unknown years last.
func yearBefore(a, b string) bool {
	na, nb := yearNum(a), yearNum(b)
	if na < 0 || nb < 0 {
		return nb < 0 && na >= 0
	}
	return na > nb
}

// Years lists the distinct resolved years, newest first, unknown last.
func Years(items []info.Publication) []string {
	seen := make(map[string]bool)
	var years []string
	for i := range items {
		y := YearOf(&items[i])
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.SliceStable(years, func(i, j int) bool { return yearBefore(years[i], years[j]) })
	return years
}

// Types lists the distinct publication types in order of first appearance.
func Types(items []info.Publication) []string {
	seen := make(map[string]bool)
	var types []string
	for _, p := range items {
		if p.Type != "" && !seen[p.Type] {
			seen[p.Type] = true
			types = append(types, p.Type)
		}
	}
	return types
}

// DefaultExpanded picks the n most recent numeric years.
func DefaultExpanded(items []info.Publication, n int) map[string]bool {
	expanded := make(map[string]bool)
	for _, y := range Years(items) {
		if len(expanded) >= n {
			break
		}
		if yearNum(y) >= 0 {
			expanded[y] = true
		}
	}
	return expanded
}

// PubState is everything the publications view depends on besides the data.
type PubState struct {
	Filter PubFilter `json:"filter"`
	Sort   SortMode  `json:"sort"`
	// Expanded lists the year groups open when collapsing is enabled.
	// Nil selects the default set.
	Expanded map[string]bool `json:"expanded,omitempty"`
}

// PubResult is the computed publications view.
type PubResult struct {
	Groups  []YearGroup `json:"groups"`
	Total   int         `json:"total"`
	Matched int         `json:"matched"`
	Years   []string    `json:"years"`
	Types   []string    `json:"types"`
}

// Query filters, sorts and groups items for state. settings may be nil.
func Query(items []info.Publication, state PubState, settings *info.PublicationSettings) PubResult {
	mode := state.Sort
	if mode == "" && settings != nil && settings.DefaultSort != "" {
		mode = SortMode(settings.DefaultSort)
	}
	if mode == "" {
		mode = SortYearDesc
	}

	matched := SortPublications(FilterPublications(items, state.Filter), mode)
	groups := GroupByYear(matched)

	if collapse := collapseCount(settings); collapse > 0 {
		expanded := state.Expanded
		if expanded == nil {
			expanded = DefaultExpanded(items, collapse)
		}
		for i := range groups {
			groups[i].Expanded = expanded[groups[i].Year]
		}
	}

	return PubResult{
		Groups:  groups,
		Total:   len(items),
		Matched: len(matched),
		Years:   Years(items),
		Types:   Types(items),
	}
}

// collapseCount is the number of years expanded by default, or 0 when
// collapsing is off.
func collapseCount(settings *info.PublicationSettings) int {
	if settings == nil || settings.CollapseYears == nil || !info.IsTrue(settings.CollapseYears.Enabled) {
		return 0
	}
	if n := settings.CollapseYears.ExpandedYearsCount; n > 0 {
		return n
	}
	return 2
}
