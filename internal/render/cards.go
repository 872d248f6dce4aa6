package render

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/lmesias/folio/internal/dom"
	"github.com/lmesias/folio/internal/models"
)

// MetaLabel is the short label shown under a card: the first two tags, or
// "Project" when there are none.
func MetaLabel(p models.Project) string {
	tags := p.Tags
	if len(tags) > 2 {
		tags = tags[:2]
	}
	if label := strings.Join(tags, " • "); label != "" {
		return label
	}
	return "Project"
}

func yearText(y int) string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(y)
}

// ProjectCard renders a project as a linked card.
func ProjectCard(p models.Project, paths Paths) *html.Node {
	return dom.El("a", dom.Attrs{"class": "proj reveal", "href": paths.Project(p.Slug)},
		dom.El("div", dom.Attrs{"class": "proj-media"},
			dom.El("img", dom.Attrs{
				"src":      paths.Image(p.Image),
				"alt":      p.Title,
				"loading":  "lazy",
				"decoding": "async",
			}),
		),
		dom.El("div", dom.Attrs{"class": "proj-body"},
			dom.El("div", nil,
				dom.El("h3", dom.Attrs{"class": "proj-title", "text": p.Title}),
				dom.El("p", dom.Attrs{"class": "proj-impact", "text": p.Impact}),
			),
			dom.El("div", dom.Attrs{"class": "proj-meta"},
				dom.El("span", dom.Attrs{"class": "mini", "text": MetaLabel(p)}),
				dom.El("span", dom.Attrs{"text": yearText(p.Year)}),
			),
		),
	)
}

// RelatedGrid renders related projects as a grid of cards.
func RelatedGrid(projects []models.Project, paths Paths) *html.Node {
	grid := dom.El("div", dom.Attrs{"class": "grid"})
	for _, p := range projects {
		grid.AppendChild(ProjectCard(p, paths))
	}
	return grid
}

// FilterRow renders the "All" link followed by one link per item. attr names
// the data attribute holding each link's value; href returns the link that
// applies a value, with "" meaning the "All" entry.
func FilterRow(items []string, active, allLabel, attr string, href func(value string) string) []*html.Node {
	link := func(value, label string, on bool) *html.Node {
		attrs := dom.Attrs{
			"class":       "filter",
			"href":        href(value),
			attr:          value,
			"data-active": strconv.FormatBool(on),
			"text":        label,
		}
		if on {
			attrs["aria-current"] = "true"
		}
		return dom.El("a", attrs)
	}
	nodes := []*html.Node{link("", allLabel, active == "")}
	for _, it := range items {
		nodes = append(nodes, link(it, it, it == active))
	}
	return nodes
}
