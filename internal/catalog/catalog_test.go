package catalog

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lmesias/folio/internal/models"
)

func sampleProjects() []models.Project {
	return []models.Project{
		{Slug: "arm", Title: "Robot Arm", Tags: []string{"Robotics", "Controls"}, Year: 2022, Impact: "Six-axis arm", Role: "Lead", Orgs: []string{"MIT"}},
		{Slug: "rover", Title: "Rover", Tags: []string{"Robotics"}, Year: 2023, Impact: "Mars analog"},
		{Slug: "site", Title: "Portfolio", Tags: []string{"Web", "Misc"}, Year: 2022},
		{Slug: "beam", Title: "Beam Study", Tags: []string{"Structures"}, Year: 2021, Orgs: []string{"NASA JPL"}},
	}
}

func slugs(ps []models.Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Slug
	}
	return out
}

func TestFilterProjectsIdentity(t *testing.T) {
	ps := sampleProjects()
	got := FilterProjects(ps, ProjectFilter{})
	if !reflect.DeepEqual(slugs(got), slugs(ps)) {
		t.Errorf("empty filter changed order: %v", slugs(got))
	}

	got = FilterProjects(ps, ProjectFilter{Query: "   "})
	if len(got) != len(ps) {
		t.Errorf("blank query should match everything, got %d", len(got))
	}
}

func TestFilterProjectsByTag(t *testing.T) {
	got := FilterProjects(sampleProjects(), ProjectFilter{Tag: "Robotics"})
	if want := []string{"arm", "rover"}; !reflect.DeepEqual(slugs(got), want) {
		t.Errorf("got %v, want %v", slugs(got), want)
	}

	if got := FilterProjects(sampleProjects(), ProjectFilter{Tag: "Biology"}); len(got) != 0 {
		t.Errorf("unknown tag should give empty result, got %v", slugs(got))
	}
}

func TestFilterProjectsQuery(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"ROVER", []string{"rover"}},
		{"jpl", []string{"beam"}},
		{"lead", []string{"arm"}},
		{"controls", []string{"arm"}},
		{" mars ", []string{"rover"}},
		{"nothing-matches", []string{}},
	}
	for _, tt := range tests {
		got := slugs(FilterProjects(sampleProjects(), ProjectFilter{Query: tt.query}))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("query %q: got %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestFilterProjectsTagAndQuery(t *testing.T) {
	got := FilterProjects(sampleProjects(), ProjectFilter{Tag: "Robotics", Query: "arm"})
	if want := []string{"arm"}; !reflect.DeepEqual(slugs(got), want) {
		t.Errorf("got %v, want %v", slugs(got), want)
	}
}

func TestSortProjects(t *testing.T) {
	ps := sampleProjects()
	got := SortProjects(ps)
	// 2022 ties are broken by title: "Portfolio" < "Robot Arm".
	if want := []string{"rover", "site", "arm", "beam"}; !reflect.DeepEqual(slugs(got), want) {
		t.Errorf("got %v, want %v", slugs(got), want)
	}
	if ps[0].Slug != "arm" {
		t.Error("SortProjects must not mutate its input")
	}
}

func TestSortProjectsDeterministic(t *testing.T) {
	a := []models.Project{{Slug: "b", Title: "B", Year: 2020}, {Slug: "a", Title: "A", Year: 2020}}
	b := []models.Project{{Slug: "a", Title: "A", Year: 2020}, {Slug: "b", Title: "B", Year: 2020}}
	if !reflect.DeepEqual(slugs(SortProjects(a)), slugs(SortProjects(b))) {
		t.Error("sort result depends on input order")
	}
}

func samplePubs() []models.Publication {
	return []models.Publication{
		{Title: "Soft Grippers", Authors: "L. Mesias", Venue: "ICRA", Type: "Conference", Year: 2021, URL: "https://a"},
		{Title: "Adaptive Beams", Venue: "JMS", Type: "Journal", Year: 2023, URL: "https://b", Note: "Best paper"},
		{Title: "Aerial Manipulation", Type: "Conference", Year: 2023, URL: "https://c", DOI: "10.1/xyz"},
	}
}

func pubTitles(ps []models.Publication) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Title
	}
	return out
}

func TestFilterPublications(t *testing.T) {
	tests := []struct {
		name string
		f    PublicationFilter
		want []string
	}{
		{"identity", PublicationFilter{}, []string{"Soft Grippers", "Adaptive Beams", "Aerial Manipulation"}},
		{"type", PublicationFilter{Type: "Conference"}, []string{"Soft Grippers", "Aerial Manipulation"}},
		{"year", PublicationFilter{Year: "2023"}, []string{"Adaptive Beams", "Aerial Manipulation"}},
		{"type and year", PublicationFilter{Type: "Journal", Year: "2021"}, []string{}},
		{"note", PublicationFilter{Query: "best"}, []string{"Adaptive Beams"}},
		{"doi", PublicationFilter{Query: "10.1/XYZ"}, []string{"Aerial Manipulation"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pubTitles(FilterPublications(samplePubs(), tt.f))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortPublications(t *testing.T) {
	got := pubTitles(SortPublications(samplePubs()))
	want := []string{"Adaptive Beams", "Aerial Manipulation", "Soft Grippers"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFacets(t *testing.T) {
	if got, want := ProjectTags(sampleProjects()), []string{"Controls", "Robotics", "Structures", "Web"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ProjectTags = %v, want %v", got, want)
	}
	if got, want := PublicationTypes(samplePubs()), []string{"Conference", "Journal"}; !reflect.DeepEqual(got, want) {
		t.Errorf("PublicationTypes = %v, want %v", got, want)
	}
	if got, want := PublicationYears(samplePubs()), []string{"2023", "2021"}; !reflect.DeepEqual(got, want) {
		t.Errorf("PublicationYears = %v, want %v", got, want)
	}
}

func TestBySlug(t *testing.T) {
	ps := append(sampleProjects(), models.Project{Slug: "arm", Title: "Duplicate"})
	p, err := BySlug(ps, "arm")
	if err != nil {
		t.Fatalf("BySlug: %v", err)
	}
	if p.Title != "Robot Arm" {
		t.Errorf("first match expected, got %q", p.Title)
	}

	if _, err := BySlug(ps, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if got := DuplicateSlugs(ps); !reflect.DeepEqual(got, []string{"arm"}) {
		t.Errorf("DuplicateSlugs = %v", got)
	}
}

func TestFeatured(t *testing.T) {
	site := &models.Site{FeaturedProjectSlugs: []string{"beam", "ghost", "arm"}}
	got := slugs(Featured(site, sampleProjects()))
	if want := []string{"beam", "arm"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if Featured(nil, sampleProjects()) != nil {
		t.Error("nil site should feature nothing")
	}
}

func TestRelatedSharedTag(t *testing.T) {
	ps := []models.Project{
		{Slug: "one", Tags: []string{"Robotics"}},
		{Slug: "two", Tags: []string{"Robotics"}},
	}
	got := Related(ps, ps[0], RelatedLimit)
	if len(got) != 1 {
		t.Fatalf("got %d related, want 1", len(got))
	}
	if got[0].Project.Slug != "two" || got[0].Score != 1 {
		t.Errorf("got %+v, want two with score 1", got[0])
	}
}

func TestRelatedOrderingAndLimit(t *testing.T) {
	current := models.Project{Slug: "cur", Tags: []string{"A", "B", "C"}}
	all := []models.Project{
		current,
		{Slug: "p1", Tags: []string{"A"}},
		{Slug: "p2", Tags: []string{"A", "B"}},
		{Slug: "p3", Tags: []string{"Z"}},
		{Slug: "p4", Tags: []string{"C"}},
		{Slug: "p5", Tags: []string{"A", "B", "C"}},
	}
	got := Related(all, current, 3)
	var order []string
	for _, s := range got {
		order = append(order, s.Project.Slug)
	}
	if want := []string{"p5", "p2", "p1"}; !reflect.DeepEqual(order, want) {
		t.Errorf("got %v, want %v", order, want)
	}
}

func TestOverlapDistinct(t *testing.T) {
	a := models.Project{Tags: []string{"A", "A", "B"}}
	b := models.Project{Tags: []string{"A", "B", "B"}}
	if got := Overlap(a, b); got != 2 {
		t.Errorf("Overlap = %d, want 2", got)
	}
}

func TestValidSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"robot-arm", true},
		{"v2.1", true},
		{"", false},
		{".", false},
		{"..", false},
		{"../../escaped", false},
		{"a/b", false},
		{`a\b`, false},
	}
	for _, tt := range tests {
		if got := ValidSlug(tt.slug); got != tt.want {
			t.Errorf("ValidSlug(%q) = %v, want %v", tt.slug, got, tt.want)
		}
	}
}
