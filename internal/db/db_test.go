package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/lmesias/folio/internal/models"
)

func TestOpenMemory(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	for _, table := range []string{"projects", "publications", "index_meta"} {
		var count int
		err := d.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestMigrateIdempotent(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	// Running migrate again should not fail.
	if err := d.migrate(); err != nil {
		t.Fatalf("second migrate() error: %v", err)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "search.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer d.Close()
	if d.Path() != path {
		t.Errorf("Path() = %q, want %q", d.Path(), path)
	}
}

func indexed(t *testing.T) *DB {
	t.Helper()
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	projects := []models.Project{
		{Slug: "rover", Title: "Rover", Year: 2023, Tags: []string{"Robotics", "Controls"}, Impact: "Drives itself"},
		{Slug: "arm", Title: "Arm", Year: 2024, Tags: []string{"Robotics"}, Role: "Lead"},
		{Slug: "site", Title: "Site", Year: 2022, Tags: []string{"Web"}},
		{Slug: "rover", Title: "Duplicate"},
		{Title: "No slug"},
	}
	pubs := []models.Publication{
		{Title: "Robot swarms", Year: 2020, Type: "Journal", URL: "https://example.com/a"},
		{Title: "Web things", Year: 2021, Note: "robotics adjacent"},
	}
	if err := d.Index(context.Background(), projects, pubs); err != nil {
		t.Fatalf("Index() error: %v", err)
	}
	return d
}

func TestIndexSkipsInvalidProjects(t *testing.T) {
	d := indexed(t)
	projects, pubs, err := d.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if projects != 3 || pubs != 2 {
		t.Errorf("Count() = %d, %d; want 3, 2", projects, pubs)
	}
}

func TestSearch(t *testing.T) {
	d := indexed(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{"empty query", "  ", 0, nil},
		{"case insensitive", "ROBOT", 0, []string{"Arm", "Rover", "Web things", "Robot swarms"}},
		{"limit", "robot", 2, []string{"Arm", "Rover"}},
		{"role", "lead", 0, []string{"Arm"}},
		{"no match", "zzz", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits, err := d.Search(ctx, tt.query, tt.limit)
			if err != nil {
				t.Fatalf("Search() error: %v", err)
			}
			var got []string
			for _, h := range hits {
				got = append(got, h.Title)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Search(%q) = %v, want %v", tt.query, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Search(%q)[%d] = %q, want %q", tt.query, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSearchHitFields(t *testing.T) {
	d := indexed(t)
	hits, err := d.Search(context.Background(), "drives", 0)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	h := hits[0]
	if h.Kind != KindProject || h.Slug != "rover" || h.Year != 2023 {
		t.Errorf("unexpected hit %+v", h)
	}
	if len(h.Tags) != 2 || h.Tags[0] != "Robotics" {
		t.Errorf("Tags = %v", h.Tags)
	}
}

func TestReindexReplaces(t *testing.T) {
	d := indexed(t)
	ctx := context.Background()
	if err := d.Index(ctx, []models.Project{{Slug: "new", Title: "New"}}, nil); err != nil {
		t.Fatalf("Index() error: %v", err)
	}
	projects, pubs, err := d.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if projects != 1 || pubs != 0 {
		t.Errorf("Count() = %d, %d; want 1, 0", projects, pubs)
	}
}
