package pages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/lmesias/folio/internal/dom"
	"github.com/lmesias/folio/internal/models"
)

type fakeData struct {
	site    *models.Site
	proj    []models.Project
	pubs    []models.Publication
	siteErr error
	projErr error
	pubErr  error
}

func (f *fakeData) LoadHome(ctx context.Context) (*models.Site, []models.Project, error) {
	if f.siteErr != nil {
		return nil, nil, f.siteErr
	}
	if f.projErr != nil {
		return nil, nil, f.projErr
	}
	return f.site, f.proj, nil
}

func (f *fakeData) LoadProjects(ctx context.Context) ([]models.Project, error) {
	return f.proj, f.projErr
}

func (f *fakeData) LoadPublications(ctx context.Context) ([]models.Publication, error) {
	return f.pubs, f.pubErr
}

func quietLogger() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestRenderer(data DataSource, opts Options) *Renderer {
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	}
	if opts.Owner == "" {
		opts.Owner = "Luis Mesias"
	}
	return NewRenderer(data, opts, quietLogger())
}

func renderPage(t *testing.T, r *Renderer, kind Kind, tmpl string, view View) *goquery.Document {
	t.Helper()
	doc, err := dom.ParseString(tmpl)
	require.NoError(t, err)
	require.NoError(t, r.Render(context.Background(), kind, doc, view))
	return doc
}

func sampleProjects() []models.Project {
	return []models.Project{
		{Slug: "rover", Title: "Rover", Image: "rover.jpg", Impact: "Drives itself", Tags: []string{"Robotics", "Controls"}, Year: 2023, Role: "Lead", Orgs: []string{"Lab", "Club"}},
		{Slug: "arm", Title: "Arm", Image: "arm.jpg", Impact: "Picks things", Tags: []string{"Robotics"}, Year: 2024},
		{Slug: "site", Title: "Site", Image: "site.jpg", Impact: "A website", Tags: []string{"Web", "Misc"}, Year: 2022},
		{Slug: "drone", Title: "Drone", Image: "drone.jpg", Impact: "Flies", Tags: []string{"Controls", "Robotics"}, Year: 2024, YouTubeID: "abc123"},
	}
}

func sampleSite() *models.Site {
	return &models.Site{
		Headline:             "Hello",
		Subheadline:          "Engineer",
		Highlights:           []string{"One", "Two"},
		FocusTags:            []string{"Robotics", "Web"},
		Contact:              models.Contact{Email: "me@example.com"},
		FeaturedProjectSlugs: []string{"drone", "missing", "rover"},
	}
}

const homeTmpl = `<!doctype html><html><head><title>Home</title></head><body>
<nav><button data-menu-btn aria-expanded="true"></button><div data-nav-left class="nav is-open"></div></nav>
<h1 data-site-headline>x</h1><p data-site-subheadline>x</p>
<ul data-site-highlights><li>old</li></ul><div data-site-tags></div>
<a data-email-link href="#">Email</a>
<div data-mosaic><img data-mosaic-img src="a"><img data-mosaic-img src="b"><img data-mosaic-img src="c"></div>
<div data-featured-grid><p>loading</p></div>
<form method="get"><input name="q" data-project-search><span data-active-filter></span></form>
<div data-project-filters><button>old</button></div>
<div data-project-grid></div>
<footer><span data-year></span></footer>
</body></html>`

func TestHomeRendersSiteAndProjects(t *testing.T) {
	r := newTestRenderer(&fakeData{site: sampleSite(), proj: sampleProjects()}, Options{})
	doc := renderPage(t, r, KindHome, homeTmpl, View{Path: "index.html"})

	require.Equal(t, "Hello", doc.Find("[data-site-headline]").Text())
	require.Equal(t, "Engineer", doc.Find("[data-site-subheadline]").Text())
	require.Equal(t, 2, doc.Find("[data-site-highlights] li").Length())
	require.Equal(t, "Robotics", doc.Find("[data-site-tags] span.tag").First().Text())
	href, _ := doc.Find("[data-email-link]").Attr("href")
	require.Equal(t, "mailto:me@example.com", href)

	featured := doc.Find("[data-featured-grid] a.proj")
	require.Equal(t, 2, featured.Length())
	require.Equal(t, "Drone", featured.First().Find(".proj-title").Text())

	tiles := doc.Find("img[data-mosaic-img]")
	src0, _ := tiles.Eq(0).Attr("src")
	src1, _ := tiles.Eq(1).Attr("src")
	src2, _ := tiles.Eq(2).Attr("src")
	require.Equal(t, "./assets/img/drone.jpg", src0)
	require.Equal(t, "./assets/img/rover.jpg", src1)
	require.Equal(t, "c", src2)

	var titles []string
	doc.Find("[data-project-grid] .proj-title").Each(func(_ int, s *goquery.Selection) {
		titles = append(titles, s.Text())
	})
	require.Equal(t, []string{"Arm", "Drone", "Rover", "Site"}, titles)

	var tags []string
	doc.Find("[data-project-filters] a.filter").Each(func(_ int, s *goquery.Selection) {
		tags = append(tags, s.Text())
	})
	require.Equal(t, []string{"All", "Controls", "Robotics", "Web"}, tags)
	active, _ := doc.Find("[data-project-filters] a.filter").First().Attr("data-active")
	require.Equal(t, "true", active)
	require.Equal(t, "All", doc.Find("[data-active-filter]").Text())

	require.Equal(t, "2026", doc.Find("[data-year]").Text())
	expanded, _ := doc.Find("[data-menu-btn]").Attr("aria-expanded")
	require.Equal(t, "false", expanded)
	require.False(t, doc.Find("[data-nav-left]").HasClass("is-open"))
	require.True(t, doc.Find("html").HasClass("js"))
	require.Equal(t, doc.Find(".reveal").Length(), doc.Find(".reveal.is-on").Length())
}

func TestWorkIndexFilters(t *testing.T) {
	r := newTestRenderer(&fakeData{site: sampleSite(), proj: sampleProjects()}, Options{})
	doc := renderPage(t, r, KindWork, homeTmpl, View{Path: "work/index.html", Tag: "Controls", Query: "dri"})

	cards := doc.Find("[data-project-grid] a.proj")
	require.Equal(t, 1, cards.Length())
	href, _ := cards.Attr("href")
	require.Equal(t, "../work/rover/", href)
	require.Equal(t, "Controls", doc.Find("[data-active-filter]").Text())

	on := doc.Find(`[data-project-filters] a.filter[data-active="true"]`)
	require.Equal(t, 1, on.Length())
	require.Equal(t, "Controls", on.Text())

	value, _ := doc.Find("[data-project-search]").Attr("value")
	require.Equal(t, "dri", value)

	// Each filter link applies its tag and keeps the query.
	robotics, _ := doc.Find(`[data-project-filters] a.filter[data-tag="Robotics"]`).Attr("href")
	require.Equal(t, "?q=dri&tag=Robotics", robotics)
	all, _ := doc.Find("[data-project-filters] a.filter").First().Attr("href")
	require.Equal(t, "?q=dri", all)

	// Submitting a new search keeps the active tag.
	hidden := doc.Find(`form input[type="hidden"][name="tag"]`)
	require.Equal(t, 1, hidden.Length())
	tag, _ := hidden.Attr("value")
	require.Equal(t, "Controls", tag)
}

func TestFilterLinksWithoutActiveFilters(t *testing.T) {
	r := newTestRenderer(&fakeData{site: sampleSite(), proj: sampleProjects()}, Options{})
	doc := renderPage(t, r, KindWork, homeTmpl, View{Path: "work/index.html"})

	all, _ := doc.Find("[data-project-filters] a.filter").First().Attr("href")
	require.Equal(t, "?", all)
	web, _ := doc.Find(`[data-project-filters] a.filter[data-tag="Web"]`).Attr("href")
	require.Equal(t, "?tag=Web", web)
	require.Equal(t, 0, doc.Find(`form input[type="hidden"]`).Length())
}

func TestProjectsLoadFailure(t *testing.T) {
	r := newTestRenderer(&fakeData{siteErr: errors.New("decoding site.json: unexpected EOF")}, Options{})
	doc := renderPage(t, r, KindHome, homeTmpl, View{Path: "index.html"})

	require.Equal(t, NoticeFeaturedFailed, doc.Find("[data-featured-grid] .note").Text())
	require.Equal(t, NoticeProjectsFailed, doc.Find("[data-project-grid] .note").Text())
	require.Equal(t, 0, doc.Find("[data-project-filters]").Children().Length())
	// The common pass still runs.
	require.Equal(t, "2026", doc.Find("[data-year]").Text())
}

func TestDeferredRevealMarksDocument(t *testing.T) {
	r := newTestRenderer(&fakeData{site: sampleSite(), proj: sampleProjects()}, Options{Reveal: RevealDeferred})
	doc := renderPage(t, r, KindHome, homeTmpl, View{Path: "index.html"})

	require.True(t, doc.Find("html").HasClass("js"))
	require.Equal(t, 0, doc.Find(".reveal.is-on").Length())
}

func TestUnknownKind(t *testing.T) {
	r := newTestRenderer(&fakeData{}, Options{})
	doc, err := dom.ParseString(homeTmpl)
	require.NoError(t, err)
	require.Error(t, r.Render(context.Background(), Kind("gallery"), doc, View{}))
	require.False(t, ValidKind("gallery"))
	require.True(t, ValidKind(KindStatic))
}

const pubTmpl = `<html><body>
<form method="get"><input name="q" data-pub-search></form>
<div data-pub-type-filters></div><div data-pub-year-filters></div>
<div data-pub-list></div>
</body></html>`

func samplePubs() []models.Publication {
	return []models.Publication{
		{Title: "Older paper", Authors: "A. Author", Venue: "Conf", Type: "Conference", Year: 2021, URL: "https://example.com/1"},
		{Title: "Newer paper", Authors: "B. Author", Venue: "Journal", Type: "Journal", Year: 2024, URL: "https://example.com/2", Note: "Best *paper*",
			Links: []models.Link{{Label: "PDF", URL: "https://example.com/2.pdf"}}},
	}
}

func TestPublicationsRender(t *testing.T) {
	r := newTestRenderer(&fakeData{pubs: samplePubs()}, Options{})
	doc := renderPage(t, r, KindPublications, pubTmpl, View{Path: "publications/index.html"})

	items := doc.Find("[data-pub-list] article.pub")
	require.Equal(t, 2, items.Length())
	require.Equal(t, "Newer paper", items.First().Find(".pub-title a").Text())
	require.Equal(t, "B. Author — Journal • Journal — 2024", items.First().Find(".pub-meta").Text())
	require.Equal(t, 1, items.First().Find(".pub-note em").Length())
	require.Equal(t, "PDF", items.First().Find(".pub-links a").Text())
	require.Equal(t, "Link", items.Last().Find(".pub-links a").Text())

	var years []string
	doc.Find("[data-pub-year-filters] a.filter").Each(func(_ int, s *goquery.Selection) {
		years = append(years, s.Text())
	})
	require.Equal(t, []string{"All years", "2024", "2021"}, years)
	require.Equal(t, "All types", doc.Find("[data-pub-type-filters] a.filter").First().Text())
}

func TestPublicationsFiltersAndNoMatches(t *testing.T) {
	r := newTestRenderer(&fakeData{pubs: samplePubs()}, Options{})

	doc := renderPage(t, r, KindPublications, pubTmpl, View{Path: "publications/index.html", Year: "2021"})
	require.Equal(t, 1, doc.Find("[data-pub-list] article.pub").Length())
	on, _ := doc.Find(`[data-pub-year-filters] a.filter[data-value="2021"]`).Attr("data-active")
	require.Equal(t, "true", on)
	journal, _ := doc.Find(`[data-pub-type-filters] a.filter[data-value="Journal"]`).Attr("href")
	require.Equal(t, "?type=Journal&year=2021", journal)
	year, _ := doc.Find(`form input[type="hidden"][name="year"]`).Attr("value")
	require.Equal(t, "2021", year)
	require.Equal(t, 0, doc.Find(`form input[type="hidden"][name="type"]`).Length())

	doc = renderPage(t, r, KindPublications, pubTmpl, View{Path: "publications/index.html", Query: "zzz"})
	require.Equal(t, NoticeNoMatches, doc.Find("[data-pub-list] .note").Text())
}

func TestPublicationsLoadFailure(t *testing.T) {
	r := newTestRenderer(&fakeData{pubErr: fmt.Errorf("decoding publications.json: %w", io.ErrUnexpectedEOF)}, Options{})
	doc := renderPage(t, r, KindPublications, pubTmpl, View{Path: "publications/index.html"})
	require.Equal(t, NoticePublicationsFailed, doc.Find("[data-pub-list] .note").Text())
}
