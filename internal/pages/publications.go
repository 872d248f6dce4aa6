package pages

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/lmesias/folio/internal/catalog"
	"github.com/lmesias/folio/internal/dom"
	"github.com/lmesias/folio/internal/render"
)

func (r *Renderer) renderPublications(ctx context.Context, root *goquery.Selection, view View) {
	list := dom.First(root, "[data-pub-list]")
	typeRow := dom.First(root, "[data-pub-type-filters]")
	yearRow := dom.First(root, "[data-pub-year-filters]")
	search := dom.First(root, "[data-pub-search]")

	pubs, err := r.data.LoadPublications(ctx)
	if err != nil {
		r.logLoadError("publications", err)
		if list.Length() > 0 {
			dom.Notice(list, NoticePublicationsFailed)
		}
		return
	}
	pubs = catalog.SortPublications(pubs)

	state := publicationState(view)
	if typeRow.Length() > 0 {
		dom.Replace(typeRow, render.FilterRow(catalog.PublicationTypes(pubs), view.Type, "All types", "data-value", state.hrefFor("type"))...)
	}
	if yearRow.Length() > 0 {
		dom.Replace(yearRow, render.FilterRow(catalog.PublicationYears(pubs), view.Year, "All years", "data-value", state.hrefFor("year"))...)
	}

	if list.Length() > 0 {
		filtered := catalog.FilterPublications(pubs, catalog.PublicationFilter{
			Type:  view.Type,
			Year:  view.Year,
			Query: view.Query,
		})
		if len(filtered) == 0 {
			dom.Notice(list, NoticeNoMatches)
		} else {
			nodes := make([]*html.Node, 0, len(filtered))
			for _, p := range filtered {
				nodes = append(nodes, render.Publication(p, r.md))
			}
			dom.Replace(list, nodes...)
		}
	}

	if view.Query != "" {
		search.SetAttr("value", view.Query)
	}
	keepFilters(search, state, "type", "year")
}
