package site

import (
	"encoding/json"
	"os"
	"unicode/utf8"

	"github.com/lmesias/folio/internal/catalog"
	"github.com/lmesias/folio/internal/models"
	"github.com/lmesias/folio/internal/render"
)

// maxContent caps the searchable text stored per entry.
const maxContent = 2000

// SearchEntry represents a single searchable record of the site.
type SearchEntry struct {
	Kind    string   `json:"kind"`
	Path    string   `json:"path"`
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Year    int      `json:"year,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Content string   `json:"content"`
}

// BuildSearchIndex lists projects then publications, each sorted the way
// the list pages sort them. Project paths are relative to the site root;
// publications point at their external URL.
func BuildSearchIndex(projects []models.Project, pubs []models.Publication) []SearchEntry {
	entries := []SearchEntry{}
	seen := make(map[string]bool)
	for _, p := range catalog.SortProjects(projects) {
		if !catalog.ValidSlug(p.Slug) || seen[p.Slug] {
			continue
		}
		seen[p.Slug] = true
		entries = append(entries, SearchEntry{
			Kind:    "project",
			Path:    "work/" + p.Slug + "/",
			Title:   p.Title,
			Summary: p.Impact,
			Year:    p.Year,
			Tags:    p.Tags,
			Content: truncate(catalog.ProjectHaystack(p)),
		})
	}
	for _, p := range catalog.SortPublications(pubs) {
		entries = append(entries, SearchEntry{
			Kind:    "publication",
			Path:    p.URL,
			Title:   p.Title,
			Summary: render.PublicationMeta(p),
			Year:    p.Year,
			Content: truncate(catalog.PublicationHaystack(p)),
		})
	}
	return entries
}

// truncate caps s at maxContent bytes without splitting a UTF-8 sequence.
func truncate(s string) string {
	if len(s) <= maxContent {
		return s
	}
	cut := maxContent
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
