package pages

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/lmesias/folio/internal/catalog"
	"github.com/lmesias/folio/internal/dom"
	"github.com/lmesias/folio/internal/models"
	"github.com/lmesias/folio/internal/render"
	"github.com/lmesias/folio/internal/slideshow"
)

// SlugFromPath returns the path segment following the last "work" segment,
// unescaped. It returns "" when there is none.
func SlugFromPath(p string) string {
	var parts []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			parts = append(parts, s)
		}
	}
	idx := -1
	for i, s := range parts {
		if s == "work" {
			idx = i
		}
	}
	if idx == -1 || idx+1 >= len(parts) {
		return ""
	}
	slug, err := url.PathUnescape(parts[idx+1])
	if err != nil {
		return parts[idx+1]
	}
	return slug
}

// DocumentTitle is the title of a project's page.
func DocumentTitle(title, owner string) string {
	if owner == "" {
		return title
	}
	return title + " — " + owner
}

func (r *Renderer) renderProject(ctx context.Context, root *goquery.Selection, view View, paths render.Paths) {
	slug := view.Slug
	if slug == "" {
		slug = SlugFromPath(view.Path)
	}
	if slug == "" {
		return
	}

	projects, err := r.data.LoadProjects(ctx)
	if err != nil {
		r.logLoadError("project", err)
		dom.SetText(root, "[data-impact]", NoticeProjectsFailed)
		return
	}

	p, err := catalog.BySlug(projects, slug)
	if err != nil {
		r.logger.WithField("slug", slug).Warn("project page has no entry")
		dom.SetText(root, "[data-title]", "Project")
		dom.SetText(root, "[data-impact]", NoticeMissingProject)
		return
	}

	root.Find("title").First().SetText(DocumentTitle(p.Title, r.opts.Owner))
	dom.SetText(root, "[data-title]", p.Title)
	dom.SetText(root, "[data-impact]", p.Impact)
	setFacts(root, *p)
	setTags(root, *p)

	dom.SetAttr(root, "[data-hero-img]", "src", paths.Image(p.Image))
	dom.SetAttr(root, "[data-hero-img]", "alt", p.Title)

	r.setOutcomes(root, *p)
	setVideo(root, p.YouTubeID)
	r.setGallery(root, *p, paths)
	setLinks(root, *p)
	r.setBanner(root, *p, paths)
	setLayout(root, *p)
	setRelated(root, projects, *p, paths)
}

func setFacts(root *goquery.Selection, p models.Project) {
	wrap := dom.First(root, "[data-facts]")
	if wrap.Length() == 0 {
		return
	}
	type fact struct{ k, v string }
	var facts []fact
	if p.Year != 0 {
		facts = append(facts, fact{"Year", strconv.Itoa(p.Year)})
	}
	if p.Role != "" {
		facts = append(facts, fact{"Role", p.Role})
	}
	if len(p.Orgs) > 0 {
		facts = append(facts, fact{"Orgs", strings.Join(p.Orgs, ", ")})
	}

	nodes := make([]*html.Node, 0, len(facts))
	for _, f := range facts {
		nodes = append(nodes, dom.El("span", dom.Attrs{"class": "fact"},
			dom.El("b", dom.Attrs{"text": f.k + ":"}),
			dom.El("span", dom.Attrs{"text": f.v}),
		))
	}
	dom.Replace(wrap, nodes...)
}

func setTags(root *goquery.Selection, p models.Project) {
	wrap := dom.First(root, "[data-tags]")
	if wrap.Length() == 0 {
		return
	}
	if len(p.Tags) == 0 {
		dom.Notice(wrap, NoticeNoTags)
		return
	}
	nodes := make([]*html.Node, 0, len(p.Tags))
	for _, t := range p.Tags {
		nodes = append(nodes, dom.El("span", dom.Attrs{"class": "tag", "text": t}))
	}
	dom.Replace(wrap, nodes...)
}

func (r *Renderer) setOutcomes(root *goquery.Selection, p models.Project) {
	wrap := dom.First(root, "[data-outcomes]")
	if wrap.Length() == 0 {
		return
	}
	ul := dom.El("ul", dom.Attrs{"class": "bullets"})
	for _, o := range p.Outcomes {
		if strings.TrimSpace(o) == "" {
			continue
		}
		li := dom.El("li", nil, r.md.Inline(o, atom.Li)...)
		ul.AppendChild(li)
	}
	if ul.FirstChild == nil {
		dom.Notice(wrap, NoticeNoOutcomes)
		return
	}
	dom.Replace(wrap, ul)
}

func setVideo(root *goquery.Selection, youtubeID string) {
	wrap := dom.First(root, "[data-video]")
	if wrap.Length() == 0 {
		return
	}
	if youtubeID == "" {
		dom.Notice(wrap, NoticeNoVideo)
		return
	}
	dom.Replace(wrap, render.YouTube(youtubeID, "", "lazy"))
}

// slideshowNode renders a project's slides, or the gallery notice when it
// has no images.
func (r *Renderer) slideshowNode(p models.Project, paths render.Paths, delay time.Duration, loading string) *html.Node {
	show, err := slideshow.New(slideshow.FromProject(p), slideshow.Options{
		Autoplay:      true,
		ReducedMotion: r.opts.ReducedMotion,
		Delay:         delay,
	})
	if err != nil {
		return dom.NoteNode(NoticeNoGallery)
	}
	return render.Slideshow(show, paths, render.SlideshowMarkup{
		Slug:         p.Slug,
		StageLoading: loading,
		Delay:        strconv.FormatInt(delay.Milliseconds(), 10),
	})
}

func (r *Renderer) setGallery(root *goquery.Selection, p models.Project, paths render.Paths) {
	wrap := dom.First(root, "[data-gallery]")
	if wrap.Length() == 0 {
		return
	}
	dom.Replace(wrap, r.slideshowNode(p, paths, r.opts.GalleryDelay, "lazy"))
}

func setLinks(root *goquery.Selection, p models.Project) {
	wrap := dom.First(root, "[data-links]")
	if wrap.Length() == 0 {
		return
	}
	var links []models.Link
	for _, l := range p.Links {
		if l.URL != "" || l.Label != "" {
			links = append(links, l)
		}
	}
	if len(links) == 0 {
		dom.Notice(wrap, NoticeNoLinks)
		return
	}
	dom.Replace(wrap, render.LinkRow(links))
}

// setBanner swaps the hero image's grid slot for a video embed, or a
// slideshow when the project has no video.
func (r *Renderer) setBanner(root *goquery.Selection, p models.Project, paths render.Paths) {
	hero := dom.First(root, "[data-hero-img]")
	if hero.Length() == 0 {
		return
	}
	slot := hero.Closest(".gitem")
	if slot.Length() == 0 {
		return
	}

	var media *html.Node
	if p.YouTubeID != "" {
		title := p.Title
		if title == "" {
			title = "Project"
		}
		media = render.YouTube(p.YouTubeID, title+" video", "lazy")
	} else {
		media = r.slideshowNode(p, paths, r.opts.BannerDelay, "eager")
	}
	slot.ReplaceWithNodes(dom.El("div", dom.Attrs{"class": "banner"}, media))
}

// setLayout shows exactly one of the video and gallery sections, moves it
// after the links section and records the column count on the grid. The
// banner already carries whichever medium the page leads with.
func setLayout(root *goquery.Selection, p models.Project) {
	removeSpacers(root)

	grid := dom.First(root, ".work-grid")
	video := dom.First(root, "[data-video]").Closest("section")
	gallery := dom.First(root, "[data-gallery]").Closest("section")
	links := dom.First(root, "[data-links]").Closest("section")

	if p.YouTubeID != "" {
		video.SetAttr("hidden", "")
		gallery.RemoveAttr("hidden")
		if links.Length() > 0 && gallery.Length() > 0 {
			links.AfterSelection(gallery)
		}
	} else {
		gallery.SetAttr("hidden", "")
		if video.Length() > 0 {
			video.RemoveAttr("hidden")
			setVideo(root, "")
			if links.Length() > 0 {
				links.AfterSelection(video)
			}
		}
	}

	if grid.Length() > 0 {
		visible := grid.ChildrenFiltered("section").Not("[hidden]").Length()
		cols := "2"
		if visible <= 1 {
			cols = "1"
		}
		grid.SetAttr("data-cols", cols)
	}
}

// removeSpacers drops the empty 14px spacer divs the templates use between
// sections.
func removeSpacers(root *goquery.Selection) {
	container := dom.First(root, "main .container")
	container.ChildrenFiltered("div").Each(func(_ int, d *goquery.Selection) {
		style, ok := d.Attr("style")
		if !ok || style == "" {
			return
		}
		if strings.TrimSpace(d.Text()) != "" {
			return
		}
		if styleValue(style, "height") == "14px" {
			d.Remove()
		}
	})
}

// styleValue returns the value of one declaration in an inline style.
func styleValue(style, prop string) string {
	for _, decl := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if ok && strings.EqualFold(strings.TrimSpace(k), prop) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func setRelated(root *goquery.Selection, all []models.Project, current models.Project, paths render.Paths) {
	wrap := dom.First(root, "[data-related]")
	if wrap.Length() == 0 {
		return
	}
	scored := catalog.Related(all, current, catalog.RelatedLimit)
	if len(scored) == 0 {
		dom.Notice(wrap, NoticeNoRelated)
		return
	}
	projects := make([]models.Project, len(scored))
	for i, s := range scored {
		projects[i] = s.Project
	}
	dom.Replace(wrap, render.RelatedGrid(projects, paths))
}
