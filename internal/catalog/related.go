package catalog

import (
	"sort"

	"github.com/lmesias/folio/internal/models"
)

// RelatedLimit is how many related projects the detail page shows.
const RelatedLimit = 3

// Scored pairs a project with its tag-overlap score.
type Scored struct {
	Project models.Project `json:"project"`
	Score   int            `json:"score"`
}

// Overlap counts the distinct tags a and b share.
func Overlap(a, b models.Project) int {
	bt := make(map[string]bool, len(b.Tags))
	for _, t := range b.Tags {
		bt[t] = true
	}
	seen := make(map[string]bool, len(a.Tags))
	n := 0
	for _, t := range a.Tags {
		if seen[t] {
			continue
		}
		seen[t] = true
		if bt[t] {
			n++
		}
	}
	return n
}

// Related returns up to limit projects sharing at least one tag with current,
// highest overlap first. Equal scores keep their order in all. Records with
// current's slug are never returned. A limit <= 0 means no limit.
func Related(all []models.Project, current models.Project, limit int) []Scored {
	var out []Scored
	for _, p := range all {
		if p.Slug == current.Slug {
			continue
		}
		if s := Overlap(current, p); s > 0 {
			out = append(out, Scored{Project: p, Score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
