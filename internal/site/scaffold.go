package site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/lmesias/folio/internal/render"
)

// Locations of the starter site's files.
const (
	HomePath           = "index.html"
	WorkPath           = "work/index.html"
	PublicationsPath   = "publications/index.html"
	DetailTemplatePath = "templates/project.html"
	DataDir            = "assets/data"
)

type starterFile struct {
	path    string
	content string
	// outPath is where the rendered file ends up when it differs from path.
	outPath string
	html    bool
}

var starterFiles = []starterFile{
	{path: HomePath, content: homeTemplate, html: true},
	{path: WorkPath, content: workTemplate, html: true},
	{path: PublicationsPath, content: publicationsTemplate, html: true},
	{path: DetailTemplatePath, content: projectTemplate, outPath: ProjectPath("x"), html: true},
	{path: "assets/css/site.css", content: cssContent},
	{path: "assets/js/folio.js", content: jsContent},
	{path: "assets/img/placeholder.svg", content: placeholderSVG},
	{path: DataDir + "/site.json", content: siteJSON},
	{path: DataDir + "/projects.json", content: projectsJSON},
	{path: DataDir + "/publications.json", content: publicationsJSON},
}

type starterData struct {
	Owner string
	Base  string
}

// Scaffold writes a starter site into dir and returns the files written.
// Existing files are kept unless force is set.
func Scaffold(dir, owner string, force bool) ([]string, error) {
	var written []string
	for _, f := range starterFiles {
		dst := filepath.Join(dir, filepath.FromSlash(f.path))
		if !force {
			if _, err := os.Stat(dst); err == nil {
				continue
			}
		}

		out := f.outPath
		if out == "" {
			out = f.path
		}
		data := starterData{Owner: owner, Base: render.PathsFor(out).Base}

		content, err := executeStarter(f, data)
		if err != nil {
			return written, fmt.Errorf("rendering %s: %w", f.path, err)
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return written, err
		}
		if err := os.WriteFile(dst, content, 0o644); err != nil {
			return written, fmt.Errorf("writing %s: %w", f.path, err)
		}
		written = append(written, f.path)
	}
	return written, nil
}

func executeStarter(f starterFile, data starterData) ([]byte, error) {
	if !f.html {
		return []byte(f.content), nil
	}

	tmpl := template.Must(template.New("nav").Parse(navPartial))
	template.Must(tmpl.New("footer").Parse(footerPartial))
	page, err := tmpl.New(f.path).Parse(f.content)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
