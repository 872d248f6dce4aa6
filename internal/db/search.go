package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/lmesias/folio/internal/catalog"
	"github.com/lmesias/folio/internal/models"
)

// Kind distinguishes search hits.
type Kind string

const (
	KindProject     Kind = "project"
	KindPublication Kind = "publication"
)

// Hit is one search result.
type Hit struct {
	Kind  Kind     `json:"kind"`
	Slug  string   `json:"slug,omitempty"`
	Title string   `json:"title"`
	Year  int      `json:"year,omitempty"`
	Image string   `json:"image,omitempty"`
	Type  string   `json:"type,omitempty"`
	URL   string   `json:"url,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

// Index replaces the indexed records with projects and pubs in a single
// transaction. Projects with an empty or repeated slug are skipped.
func (d *DB) Index(ctx context.Context, projects []models.Project, pubs []models.Publication) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning index transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"projects", "publications"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, p := range projects {
		if p.Slug == "" {
			continue
		}
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO projects (slug, title, year, image, tags, haystack) VALUES (?, ?, ?, ?, ?, ?)`,
			p.Slug, p.Title, p.Year, p.Image, strings.Join(p.Tags, "\n"), catalog.ProjectHaystack(p))
		if err != nil {
			return fmt.Errorf("indexing project %s: %w", p.Slug, err)
		}
	}

	for i, p := range pubs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO publications (id, title, year, type, url, haystack) VALUES (?, ?, ?, ?, ?, ?)`,
			i+1, p.Title, p.Year, p.Type, p.URL, catalog.PublicationHaystack(p))
		if err != nil {
			return fmt.Errorf("indexing publication %q: %w", p.Title, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO index_meta (key, value) VALUES ('records', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = datetime('now')`,
		fmt.Sprint(len(projects)+len(pubs)))
	if err != nil {
		return fmt.Errorf("updating index metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing index: %w", err)
	}
	return nil
}

// Search returns records whose haystack contains q, case-insensitively.
// Projects come before publications; each group is ordered by year
// descending then title. An empty query returns no hits. A limit <= 0
// means no limit.
func (d *DB) Search(ctx context.Context, q string, limit int) ([]Hit, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	hits := []Hit{}
	if q == "" {
		return hits, nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	rows, err := d.QueryContext(ctx,
		`SELECT slug, title, year, image, tags FROM projects
		 WHERE instr(haystack, ?) > 0 ORDER BY year DESC, title`, q)
	if err != nil {
		return nil, fmt.Errorf("searching projects: %w", err)
	}
	for rows.Next() {
		h := Hit{Kind: KindProject}
		var tags string
		if err := rows.Scan(&h.Slug, &h.Title, &h.Year, &h.Image, &tags); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		if tags != "" {
			h.Tags = strings.Split(tags, "\n")
		}
		hits = append(hits, h)
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("searching projects: %w", err)
	}

	rows, err = d.QueryContext(ctx,
		`SELECT title, year, type, url FROM publications
		 WHERE instr(haystack, ?) > 0 ORDER BY year DESC, title, id`, q)
	if err != nil {
		return nil, fmt.Errorf("searching publications: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		h := Hit{Kind: KindPublication}
		if err := rows.Scan(&h.Title, &h.Year, &h.Type, &h.URL); err != nil {
			return nil, fmt.Errorf("scanning publication: %w", err)
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("searching publications: %w", err)
	}

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// Count returns the number of indexed projects and publications.
func (d *DB) Count(ctx context.Context) (projects, pubs int, err error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if err := d.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects").Scan(&projects); err != nil {
		return 0, 0, fmt.Errorf("counting projects: %w", err)
	}
	if err := d.QueryRowContext(ctx, "SELECT COUNT(*) FROM publications").Scan(&pubs); err != nil {
		return 0, 0, fmt.Errorf("counting publications: %w", err)
	}
	return projects, pubs, nil
}
