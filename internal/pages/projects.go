package pages

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/lmesias/folio/internal/catalog"
	"github.com/lmesias/folio/internal/dom"
	"github.com/lmesias/folio/internal/models"
	"github.com/lmesias/folio/internal/render"
)

// renderProjects serves both the home page and the work index: either may
// carry the featured grid, the full grid or both.
func (r *Renderer) renderProjects(ctx context.Context, root *goquery.Selection, view View, paths render.Paths) {
	allGrid := dom.First(root, "[data-project-grid]")
	featGrid := dom.First(root, "[data-featured-grid]")
	filters := dom.First(root, "[data-project-filters]")
	search := dom.First(root, "[data-project-search]")
	pill := dom.First(root, "[data-active-filter]")

	site, projects, err := r.data.LoadHome(ctx)
	if err != nil {
		r.logLoadError("projects", err)
		if featGrid.Length() > 0 {
			dom.Notice(featGrid, NoticeFeaturedFailed)
		}
		if allGrid.Length() > 0 {
			dom.Notice(allGrid, NoticeProjectsFailed)
		}
		filters.Empty()
		return
	}

	projects = catalog.SortProjects(projects)
	applySite(root, site, projects, paths)

	state := projectState(view)
	if filters.Length() > 0 {
		dom.Replace(filters, render.FilterRow(catalog.ProjectTags(projects), view.Tag, "All", "data-tag", state.hrefFor("tag"))...)
	}

	if allGrid.Length() > 0 {
		filtered := catalog.FilterProjects(projects, catalog.ProjectFilter{Tag: view.Tag, Query: view.Query})
		cards := make([]*html.Node, 0, len(filtered))
		for _, p := range filtered {
			cards = append(cards, render.ProjectCard(p, paths))
		}
		dom.Replace(allGrid, cards...)

		active := view.Tag
		if active == "" {
			active = "All"
		}
		pill.SetText(active)
	}

	if view.Query != "" {
		search.SetAttr("value", view.Query)
	}
	keepFilters(search, state, "tag")
}

// applySite fills the site-wide copy and the featured projects.
func applySite(root *goquery.Selection, site *models.Site, projects []models.Project, paths render.Paths) {
	if site == nil {
		site = &models.Site{}
	}
	dom.SetText(root, "[data-site-headline]", site.Headline)
	dom.SetText(root, "[data-site-subheadline]", site.Subheadline)

	if hl := dom.First(root, "[data-site-highlights]"); hl.Length() > 0 {
		items := make([]*html.Node, 0, len(site.Highlights))
		for _, h := range site.Highlights {
			items = append(items, dom.El("li", dom.Attrs{"text": h}))
		}
		dom.Replace(hl, items...)
	}

	if tags := dom.First(root, "[data-site-tags]"); tags.Length() > 0 {
		items := make([]*html.Node, 0, len(site.FocusTags))
		for _, t := range site.FocusTags {
			items = append(items, dom.El("span", dom.Attrs{"class": "tag", "text": t}))
		}
		dom.Replace(tags, items...)
	}

	if site.Contact.Email != "" {
		dom.SetAttr(root, "[data-email-link]", "href", "mailto:"+site.Contact.Email)
	}

	featured := catalog.Featured(site, projects)
	if grid := dom.First(root, "[data-featured-grid]"); grid.Length() > 0 {
		cards := make([]*html.Node, 0, len(featured))
		for _, p := range featured {
			cards = append(cards, render.ProjectCard(p, paths))
		}
		dom.Replace(grid, cards...)
	}

	// Mosaic tiles show the first three featured images; extra tiles keep
	// their template image.
	dom.First(root, "[data-mosaic]").Find("img[data-mosaic-img]").Each(func(i int, tile *goquery.Selection) {
		if i >= len(featured) || i >= 3 {
			return
		}
		tile.SetAttr("src", paths.Image(featured[i].Image))
		tile.SetAttr("alt", featured[i].Title)
	})
}
