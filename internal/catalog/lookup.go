package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lmesias/folio/internal/models"
)

// ErrNotFound is returned when no record has the requested slug.
var ErrNotFound = errors.New("project not found")

// ValidSlug reports whether slug can name a single URL path segment: it is
// non-empty, is not "." or "..", and holds no path separator.
func ValidSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	return !strings.ContainsAny(slug, "/\\")
}

// BySlug returns the first project with the given slug.
func BySlug(projects []models.Project, slug string) (*models.Project, error) {
	for i := range projects {
		if projects[i].Slug == slug {
			return &projects[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, slug)
}

// Featured maps the site's featured slugs to projects, keeping the site's
// order and dropping slugs with no matching project.
func Featured(site *models.Site, projects []models.Project) []models.Project {
	if site == nil {
		return nil
	}
	var out []models.Project
	for _, slug := range site.FeaturedProjectSlugs {
		if p, err := BySlug(projects, slug); err == nil {
			out = append(out, *p)
		}
	}
	return out
}

// DuplicateSlugs lists slugs used by more than one project, sorted.
func DuplicateSlugs(projects []models.Project) []string {
	counts := make(map[string]int)
	for _, p := range projects {
		counts[p.Slug]++
	}
	var dups []string
	for slug, n := range counts {
		if n > 1 {
			dups = append(dups, slug)
		}
	}
	sort.Strings(dups)
	return dups
}
