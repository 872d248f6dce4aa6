// Package pages fills the site's HTML templates with data. There is one
// controller per page kind; each loads its documents, renders the regions
// marked with data-* attributes, and degrades a region to a short notice
// when its data cannot be loaded.
package pages

import (
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"

	"github.com/lmesias/folio/internal/dom"
	"github.com/lmesias/folio/internal/models"
	"github.com/lmesias/folio/internal/render"
	"github.com/lmesias/folio/internal/reveal"
	"github.com/lmesias/folio/internal/slideshow"
)

// Kind selects the controller for a template.
type Kind string

const (
	KindHome         Kind = "home"
	KindWork         Kind = "work"
	KindPublications Kind = "publications"
	KindProject      Kind = "project"
	// KindStatic pages only get the common pass.
	KindStatic Kind = "static"
)

// ValidKind reports whether k names a controller.
func ValidKind(k Kind) bool {
	switch k {
	case KindHome, KindWork, KindPublications, KindProject, KindStatic:
		return true
	}
	return false
}

// RevealMode decides who reveals .reveal elements.
type RevealMode string

const (
	// RevealStatic marks every element revealed at render time.
	RevealStatic RevealMode = "static"
	// RevealDeferred leaves elements for a client-side observer.
	RevealDeferred RevealMode = "deferred"
)

// Notices shown when a region has nothing to display.
const (
	NoticeFeaturedFailed     = "Could not load featured projects."
	NoticeProjectsFailed     = "Could not load project data."
	NoticePublicationsFailed = "Could not load publication data."
	NoticeNoMatches          = "No matches."
	NoticeMissingProject     = "This page exists, but the project entry is missing."
	NoticeNoTags             = "Tags coming soon."
	NoticeNoOutcomes         = "Outcomes coming soon."
	NoticeNoLinks            = "Links coming soon."
	NoticeNoVideo            = "Video coming soon."
	NoticeNoGallery          = "Gallery coming soon."
	NoticeNoRelated          = "More projects coming soon."
)

// DataSource loads the site's documents.
type DataSource interface {
	LoadHome(ctx context.Context) (*models.Site, []models.Project, error)
	LoadProjects(ctx context.Context) ([]models.Project, error)
	LoadPublications(ctx context.Context) ([]models.Publication, error)
}

// View is the request-scoped input of a controller.
type View struct {
	// Path is the page's slash-separated path from the site root.
	Path string
	// Project list filters.
	Tag   string
	Query string
	// Publication list filters; Query is shared.
	Type string
	Year string
	// Slug overrides the project slug taken from Path.
	Slug string
}

// Options configure a Renderer.
type Options struct {
	// Owner is appended to project page titles.
	Owner         string
	Reveal        RevealMode
	GalleryDelay  time.Duration
	BannerDelay   time.Duration
	ReducedMotion bool
	Now           func() time.Time
}

// Renderer runs page controllers against parsed templates.
type Renderer struct {
	data   DataSource
	md     *render.Markdown
	opts   Options
	logger *log.Logger
}

// NewRenderer creates a Renderer reading documents from data.
func NewRenderer(data DataSource, opts Options, logger *log.Logger) *Renderer {
	if opts.Reveal == "" {
		opts.Reveal = RevealStatic
	}
	if opts.GalleryDelay <= 0 {
		opts.GalleryDelay = slideshow.GalleryDelay
	}
	if opts.BannerDelay <= 0 {
		opts.BannerDelay = slideshow.BannerDelay
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Renderer{data: data, md: render.NewMarkdown(), opts: opts, logger: logger}
}

// Render fills doc using the controller for kind. Data failures are absorbed
// into notices; only an unknown kind is an error.
func (r *Renderer) Render(ctx context.Context, kind Kind, doc *goquery.Document, view View) error {
	paths := render.PathsFor(view.Path)
	root := doc.Selection

	switch kind {
	case KindHome, KindWork:
		r.renderProjects(ctx, root, view, paths)
	case KindPublications:
		r.renderPublications(ctx, root, view)
	case KindProject:
		r.renderProject(ctx, root, view, paths)
	case KindStatic:
	default:
		return fmt.Errorf("unknown page kind %q", kind)
	}

	r.common(root)
	return nil
}

// common applies the behaviour shared by every page: the footer year, the
// collapsed mobile nav and the reveal pass.
func (r *Renderer) common(root *goquery.Selection) {
	dom.SetText(root, "[data-year]", fmt.Sprint(r.opts.Now().Year()))

	dom.First(root, "[data-menu-btn]").SetAttr("aria-expanded", "false")
	dom.First(root, "[data-nav-left]").RemoveClass("is-open")

	root.Find("html").AddClass("js")
	if r.opts.Reveal != RevealDeferred {
		reveal.NewController(nil, r.logger).Refresh(reveal.Elements(root))
	}
}

func (r *Renderer) logLoadError(page string, err error) {
	r.logger.WithFields(log.Fields{"page": page}).WithError(err).Error("loading page data")
}
