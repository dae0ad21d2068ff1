package query

import (
	"sort"

	"github.com/ziadkadry99/folio/internal/info"
)

// FilterProjects keeps projects carrying any of tags. No tags keeps all.
func FilterProjects(items []info.Project, tags []string) []info.Project {
	if len(tags) == 0 {
		return append([]info.Project(nil), items...)
	}
	var out []info.Project
	for _, p := range items {
		for _, t := range p.Tags {
			if contains(tags, t) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// ArrangeProjects moves featured projects ahead of the rest when
// featuredFirst is set, keeping relative order otherwise.
func ArrangeProjects(items []info.Project, featuredFirst bool) []info.Project {
	out := append([]info.Project(nil), items...)
	if featuredFirst {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Featured && !out[j].Featured })
	}
	return out
}

// ProjectTags returns every tag used, sorted.
func ProjectTags(items []info.Project) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, p := range items {
		for _, t := range p.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}
