// Package catalog holds the pure filtering, sorting and lookup functions
// applied to loaded project and publication records.
package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/lmesias/folio/internal/models"
)

// MiscTag is excluded from the project filter row.
const MiscTag = "Misc"

// ProjectFilter selects projects by tag and free-text query. Zero values match everything.
type ProjectFilter struct {
	Tag   string
	Query string
}

// PublicationFilter selects publications by type, year and free-text query.
// Year is compared as the decimal string of the record's year.
type PublicationFilter struct {
	Type  string
	Year  string
	Query string
}

func normalize(s string) string {
	return strings.ToLower(s)
}

// ProjectHaystack is the lowercase text a project query is matched against.
func ProjectHaystack(p models.Project) string {
	return normalize(strings.Join([]string{
		p.Title,
		p.Impact,
		strings.Join(p.Tags, " "),
		p.Role,
		strings.Join(p.Orgs, " "),
	}, " "))
}

// PublicationHaystack is the lowercase text a publication query is matched against.
func PublicationHaystack(p models.Publication) string {
	return normalize(strings.Join([]string{p.Title, p.Authors, p.Venue, p.Type, p.Note, p.DOI}, " "))
}

func yearString(y int) string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(y)
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// FilterProjects returns the projects matching f, in input order.
func FilterProjects(projects []models.Project, f ProjectFilter) []models.Project {
	q := strings.TrimSpace(normalize(f.Query))
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if f.Tag != "" && !hasTag(p.Tags, f.Tag) {
			continue
		}
		if q != "" && !strings.Contains(ProjectHaystack(p), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterPublications returns the publications matching f, in input order.
func FilterPublications(pubs []models.Publication, f PublicationFilter) []models.Publication {
	q := strings.TrimSpace(normalize(f.Query))
	out := make([]models.Publication, 0, len(pubs))
	for _, p := range pubs {
		if f.Type != "" && p.Type != f.Type {
			continue
		}
		if f.Year != "" && yearString(p.Year) != f.Year {
			continue
		}
		if q != "" && !strings.Contains(PublicationHaystack(p), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SortProjects returns a copy ordered by year descending, then title ascending.
func SortProjects(projects []models.Project) []models.Project {
	out := append([]models.Project(nil), projects...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Title < out[j].Title
	})
	return out
}

// SortPublications returns a copy ordered by year descending, then title ascending.
func SortPublications(pubs []models.Publication) []models.Publication {
	out := append([]models.Publication(nil), pubs...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Title < out[j].Title
	})
	return out
}

func uniqSorted(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, it := range items {
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	sort.Strings(out)
	return out
}

// ProjectTags returns every tag used by projects, sorted, without MiscTag.
func ProjectTags(projects []models.Project) []string {
	var all []string
	for _, p := range projects {
		all = append(all, p.Tags...)
	}
	tags := uniqSorted(all)
	out := tags[:0]
	for _, t := range tags {
		if t != MiscTag {
			out = append(out, t)
		}
	}
	return out
}

// PublicationTypes returns the distinct publication types, sorted.
func PublicationTypes(pubs []models.Publication) []string {
	types := make([]string, 0, len(pubs))
	for _, p := range pubs {
		types = append(types, p.Type)
	}
	return uniqSorted(types)
}

// PublicationYears returns the distinct publication years, newest first.
func PublicationYears(pubs []models.Publication) []string {
	seen := make(map[int]bool)
	var years []int
	for _, p := range pubs {
		if p.Year == 0 || seen[p.Year] {
			continue
		}
		seen[p.Year] = true
		years = append(years, p.Year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	out := make([]string, len(years))
	for i, y := range years {
		out[i] = strconv.Itoa(y)
	}
	return out
}
