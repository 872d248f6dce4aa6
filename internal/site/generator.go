// Package site builds the static portfolio: it renders every page template
// through its controller, writes one detail page per project, copies the
// remaining source files and writes the search index.
package site

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/lmesias/folio/internal/catalog"
	"github.com/lmesias/folio/internal/dom"
	"github.com/lmesias/folio/internal/models"
	"github.com/lmesias/folio/internal/pages"
	"github.com/lmesias/folio/internal/progress"
	"github.com/lmesias/folio/internal/walker"
)

// SearchIndexFile is the name of the generated search index.
const SearchIndexFile = "search-index.json"

// Page is a template rendered by a page controller. Path is relative to the
// source directory and is also the output location.
type Page struct {
	Path string
	Kind pages.Kind
}

// Generator builds the site from SourceDir into OutputDir.
type Generator struct {
	SourceDir string
	OutputDir string
	Pages     []Page
	// DetailTemplate is rendered once per project at work/<slug>/index.html.
	// Empty disables project pages.
	DetailTemplate string
	// Include and Exclude are doublestar patterns applied to copied files.
	Include []string
	Exclude []string

	Data     pages.DataSource
	Renderer *pages.Renderer
	Reporter progress.Reporter
	Logger   *log.Logger
}

// Result summarizes a build.
type Result struct {
	Pages     int
	Projects  int
	Assets    int
	Unchanged int
	Indexed   int
}

// ProjectPath is the output path of a project's page.
func ProjectPath(slug string) string {
	return path.Join("work", slug, "index.html")
}

// Build renders and copies the whole site. Data load failures do not fail
// the build: pages carry their notices and project pages are skipped.
func (g *Generator) Build(ctx context.Context) (*Result, error) {
	logger := g.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	reporter := g.Reporter
	if reporter == nil {
		reporter = progress.Nop{}
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	projects, err := g.Data.LoadProjects(ctx)
	if err != nil {
		logger.WithError(err).Warn("project data unavailable, skipping project pages")
		projects = nil
	}
	pubs, err := g.Data.LoadPublications(ctx)
	if err != nil {
		logger.WithError(err).Warn("publication data unavailable")
		pubs = nil
	}

	for _, slug := range catalog.DuplicateSlugs(projects) {
		logger.WithField("slug", slug).Warn("duplicate project slug, first entry wins")
	}
	slugs := projectSlugs(projects)
	for _, p := range projects {
		if p.Slug != "" && !catalog.ValidSlug(p.Slug) {
			logger.WithField("slug", p.Slug).Warn("invalid project slug, skipping project page")
		}
	}
	if g.DetailTemplate == "" {
		slugs = nil
	}

	res := &Result{}
	reporter.Begin(len(g.Pages), len(slugs))
	step := 0

	for _, p := range g.Pages {
		src := filepath.Join(g.SourceDir, filepath.FromSlash(p.Path))
		if err := g.renderTo(ctx, src, p.Path, p.Kind, pages.View{Path: p.Path}); err != nil {
			err = fmt.Errorf("rendering %s: %w", p.Path, err)
			reporter.End(err)
			return nil, err
		}
		step++
		res.Pages++
		reporter.Rendered(step, p.Path)
	}

	detail := filepath.Join(g.SourceDir, filepath.FromSlash(g.DetailTemplate))
	for _, slug := range slugs {
		out := ProjectPath(slug)
		if err := g.renderTo(ctx, detail, out, pages.KindProject, pages.View{Path: out, Slug: slug}); err != nil {
			err = fmt.Errorf("rendering project %s: %w", slug, err)
			reporter.End(err)
			return nil, err
		}
		step++
		res.Projects++
		reporter.Rendered(step, out)
	}
	reporter.End(nil)

	res.Assets, res.Unchanged, err = g.copyAssets()
	if err != nil {
		return nil, fmt.Errorf("copying assets: %w", err)
	}

	entries := BuildSearchIndex(projects, pubs)
	if err := WriteSearchIndex(entries, filepath.Join(g.OutputDir, SearchIndexFile)); err != nil {
		return nil, fmt.Errorf("writing search index: %w", err)
	}
	res.Indexed = len(entries)

	logger.WithFields(log.Fields{
		"pages":     res.Pages,
		"projects":  res.Projects,
		"assets":    res.Assets,
		"unchanged": res.Unchanged,
	}).Info("site built")
	return res, nil
}

func (g *Generator) renderTo(ctx context.Context, src, rel string, kind pages.Kind, view pages.View) error {
	out, err := RenderFile(ctx, g.Renderer, src, kind, view)
	if err != nil {
		return err
	}
	dst := filepath.Join(g.OutputDir, filepath.FromSlash(rel))
	if r, err := filepath.Rel(g.OutputDir, dst); err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return fmt.Errorf("output path %s escapes %s", rel, g.OutputDir)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, out, 0o644)
}

// RenderFile parses the template at src and runs the controller for kind.
func RenderFile(ctx context.Context, r *pages.Renderer, src string, kind pages.Kind, view pages.View) ([]byte, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("opening template: %w", err)
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	if err := r.Render(ctx, kind, doc, view); err != nil {
		return nil, err
	}
	return dom.Render(doc)
}

// projectSlugs returns each valid slug once, in data order.
func projectSlugs(projects []models.Project) []string {
	seen := make(map[string]bool)
	var slugs []string
	for _, p := range projects {
		if !catalog.ValidSlug(p.Slug) || seen[p.Slug] {
			continue
		}
		seen[p.Slug] = true
		slugs = append(slugs, p.Slug)
	}
	return slugs
}

// copyAssets copies every source file that is not a template and passes the
// include/exclude patterns. Files whose output copy already has the same
// content are left alone; the second result counts them.
func (g *Generator) copyAssets() (copied, unchanged int, err error) {
	skip := []string{g.DetailTemplate}
	for _, p := range g.Pages {
		skip = append(skip, p.Path)
	}
	if rel, err := filepath.Rel(g.SourceDir, g.OutputDir); err == nil && !strings.HasPrefix(rel, "..") {
		skip = append(skip, rel)
	}

	files, err := walker.Walk(walker.Config{
		RootDir: g.SourceDir,
		Include: g.Include,
		Exclude: g.Exclude,
		Skip:    skip,
	})
	if err != nil {
		return 0, 0, err
	}

	for _, f := range files {
		dst := filepath.Join(g.OutputDir, filepath.FromSlash(f.RelPath))
		if h, err := walker.HashFile(dst); err == nil && h == f.ContentHash {
			unchanged++
			continue
		}
		if err := copyFile(f.Path, dst); err != nil {
			return copied, unchanged, fmt.Errorf("copying %s: %w", f.RelPath, err)
		}
		copied++
	}
	return copied, unchanged, nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

