package site

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"github.com/lmesias/folio/internal/loader"
	"github.com/lmesias/folio/internal/models"
	"github.com/lmesias/folio/internal/pages"
)

func quietLogger() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}

func defaultPages() []Page {
	return []Page{
		{Path: HomePath, Kind: pages.KindHome},
		{Path: WorkPath, Kind: pages.KindWork},
		{Path: PublicationsPath, Kind: pages.KindPublications},
	}
}

func newGenerator(t *testing.T, src, out string) *Generator {
	t.Helper()
	data, err := loader.New("file:///"+DataDir+"/", loader.WithFileRoot(src))
	if err != nil {
		t.Fatalf("loader.New: %v", err)
	}
	logger := quietLogger()
	r := pages.NewRenderer(data, pages.Options{
		Owner: "Test Owner",
		Now:   func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) },
	}, logger)
	return &Generator{
		SourceDir:      src,
		OutputDir:      out,
		Pages:          defaultPages(),
		DetailTemplate: DetailTemplatePath,
		Exclude:        []string{"templates/**"},
		Data:           data,
		Renderer:       r,
		Logger:         logger,
	}
}

func writeProjects(t *testing.T, src string, projects []models.Project) {
	t.Helper()
	b, err := json.Marshal(models.ProjectList{Projects: projects})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, DataDir, "projects.json"), b, 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(b)
}

func TestScaffold(t *testing.T) {
	dir := t.TempDir()
	written, err := Scaffold(dir, "Test Owner", false)
	if err != nil {
		t.Fatalf("Scaffold: %v", err)
	}
	if len(written) != len(starterFiles) {
		t.Errorf("wrote %d files, want %d", len(written), len(starterFiles))
	}

	home := readFile(t, filepath.Join(dir, HomePath))
	if !strings.Contains(home, `href="./assets/css/site.css"`) {
		t.Error("home page should link the stylesheet relative to the root")
	}
	detail := readFile(t, filepath.Join(dir, DetailTemplatePath))
	if !strings.Contains(detail, `href="../../assets/css/site.css"`) {
		t.Error("project template should link the stylesheet from work/<slug>/")
	}
	if !strings.Contains(home, `<script src="./assets/js/folio.js" defer></script>`) ||
		!strings.Contains(detail, `<script src="../../assets/js/folio.js" defer></script>`) {
		t.Error("every page should load the client script relative to its depth")
	}

	script := readFile(t, filepath.Join(dir, "assets", "js", "folio.js"))
	for _, want := range []string{
		`"/ws/slideshow/"`,
		`"?banner=1"`,
		`rootMargin: "40px 0px", threshold: 0.08`,
		`io.unobserve(e.target)`,
		`type: "swipe_start"`,
		`type: "swipe_end"`,
		`type: "key", key: e.key`,
		`type: "hover", on: true`,
		`type: "focus", on: false`,
		`msg.type === "state"`,
		`"[data-menu-btn]"`,
	} {
		if !strings.Contains(script, want) {
			t.Errorf("client script missing %s", want)
		}
	}

	// A second run keeps existing files.
	if err := os.WriteFile(filepath.Join(dir, HomePath), []byte("custom"), 0o644); err != nil {
		t.Fatal(err)
	}
	written, err = Scaffold(dir, "Test Owner", false)
	if err != nil {
		t.Fatalf("Scaffold: %v", err)
	}
	if len(written) != 0 {
		t.Errorf("second run wrote %v", written)
	}
	if got := readFile(t, filepath.Join(dir, HomePath)); got != "custom" {
		t.Errorf("home page was overwritten: %q", got)
	}
}

func TestBuild(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "public")
	if _, err := Scaffold(src, "Test Owner", false); err != nil {
		t.Fatalf("Scaffold: %v", err)
	}
	writeProjects(t, src, []models.Project{
		{Slug: "example", Title: "Example project", Image: "placeholder.svg", Tags: []string{"Web"}, Year: 2024},
		{Slug: "rover", Title: "Rover", Image: "placeholder.svg", Tags: []string{"Web", "Robotics"}, Year: 2023},
		{Slug: "rover", Title: "Rover again"},
	})

	res, err := newGenerator(t, src, out).Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Pages != 3 || res.Projects != 2 {
		t.Errorf("result = %+v, want 3 pages and 2 projects", res)
	}

	home := readFile(t, filepath.Join(out, HomePath))
	if !strings.Contains(home, "Example project") {
		t.Error("home page should list the featured project")
	}
	if !strings.Contains(home, "2026") {
		t.Error("home page should carry the footer year")
	}

	rover := readFile(t, filepath.Join(out, "work", "rover", "index.html"))
	if !strings.Contains(rover, "<title>Rover — Test Owner</title>") {
		t.Error("project page title not set")
	}
	if !strings.Contains(rover, `href="../../work/example/"`) {
		t.Error("project page should link the related project")
	}

	for _, rel := range []string{"assets/css/site.css", "assets/js/folio.js", "assets/img/placeholder.svg", "assets/data/projects.json"} {
		if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(rel))); err != nil {
			t.Errorf("asset %s not copied: %v", rel, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(DetailTemplatePath))); !os.IsNotExist(err) {
		t.Error("detail template should not be copied")
	}

	var entries []SearchEntry
	if err := json.Unmarshal([]byte(readFile(t, filepath.Join(out, SearchIndexFile))), &entries); err != nil {
		t.Fatalf("search index: %v", err)
	}
	if len(entries) != 2 || entries[0].Path != "work/example/" || entries[1].Title != "Rover" {
		t.Errorf("unexpected search index %+v", entries)
	}

	// A rebuild leaves current copies alone.
	again, err := newGenerator(t, src, out).Build(context.Background())
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}
	if again.Assets != 0 || again.Unchanged != res.Assets {
		t.Errorf("rebuild copied %d and kept %d, want 0 and %d", again.Assets, again.Unchanged, res.Assets)
	}
}

func TestBuildSkipsUnsafeSlugs(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	out := filepath.Join(root, "out")
	if _, err := Scaffold(src, "Test Owner", false); err != nil {
		t.Fatalf("Scaffold: %v", err)
	}
	writeProjects(t, src, []models.Project{
		{Slug: "../../escaped", Title: "Escaped"},
		{Slug: "..", Title: "Parent"},
		{Slug: `a\b`, Title: "Backslash"},
		{Slug: "safe", Title: "Safe"},
	})

	res, err := newGenerator(t, src, out).Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Projects != 1 {
		t.Errorf("got %d project pages, want 1", res.Projects)
	}
	if _, err := os.Stat(filepath.Join(out, "work", "safe", "index.html")); err != nil {
		t.Errorf("safe project page missing: %v", err)
	}
	for _, p := range []string{
		filepath.Join(root, "escaped", "index.html"),
		filepath.Join(out, "..", "escaped", "index.html"),
	} {
		if _, err := os.Stat(p); err == nil {
			t.Errorf("unexpected file written at %s", p)
		}
	}
}

func TestBuildWithBrokenData(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	if _, err := Scaffold(src, "Test Owner", false); err != nil {
		t.Fatalf("Scaffold: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, DataDir, "projects.json"), []byte(`{"projects": [`), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := newGenerator(t, src, out).Build(context.Background())
	if err != nil {
		t.Fatalf("Build should absorb data errors, got %v", err)
	}
	if res.Projects != 0 {
		t.Errorf("no project pages expected, got %d", res.Projects)
	}
	work := readFile(t, filepath.Join(out, WorkPath))
	if !strings.Contains(work, `<div class="note">`+pages.NoticeProjectsFailed+`</div>`) {
		t.Error("work index should show the load failure notice")
	}
}

func TestBuildMissingTemplate(t *testing.T) {
	src := t.TempDir()
	if _, err := Scaffold(src, "Test Owner", false); err != nil {
		t.Fatalf("Scaffold: %v", err)
	}
	g := newGenerator(t, src, t.TempDir())
	g.Pages = append(g.Pages, Page{Path: "about/index.html", Kind: pages.KindStatic})

	if _, err := g.Build(context.Background()); err == nil {
		t.Fatal("expected an error for a missing template")
	}
}

func TestBuildSearchIndex(t *testing.T) {
	entries := BuildSearchIndex(
		[]models.Project{{Slug: "b", Title: "B", Year: 2020}, {Slug: "a", Title: "A", Year: 2024, Impact: "Impact"}, {Title: "No slug"}, {Slug: "../x", Title: "Escapes"}},
		[]models.Publication{{Title: "Paper", Authors: "Me", Year: 2022, URL: "https://example.com"}},
	)
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Title != "A" || entries[0].Summary != "Impact" || entries[0].Kind != "project" {
		t.Errorf("first entry = %+v", entries[0])
	}
	if entries[2].Kind != "publication" || entries[2].Path != "https://example.com" || entries[2].Summary != "Me — 2022" {
		t.Errorf("publication entry = %+v", entries[2])
	}
}

func TestTruncateKeepsRunes(t *testing.T) {
	// 1999 ASCII bytes then a 3-byte rune straddling the limit.
	s := strings.Repeat("a", maxContent-1) + "€" + "tail"
	got := truncate(s)
	if got != strings.Repeat("a", maxContent-1) {
		t.Errorf("truncate kept %d bytes, want %d", len(got), maxContent-1)
	}
	if !utf8.ValidString(got) {
		t.Error("truncate split a UTF-8 sequence")
	}

	exact := strings.Repeat("é", maxContent/2)
	if truncate(exact) != exact {
		t.Error("a string at the limit should be kept whole")
	}
	if got := truncate(exact + "x"); got != exact {
		t.Errorf("truncate cut at a rune boundary badly: %d bytes", len(got))
	}
}
