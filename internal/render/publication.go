package render

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/lmesias/folio/internal/dom"
	"github.com/lmesias/folio/internal/models"
)

// PublicationMeta joins authors, "venue • type" and year with em dashes.
func PublicationMeta(p models.Publication) string {
	var parts []string
	if p.Authors != "" {
		parts = append(parts, p.Authors)
	}
	var venue []string
	for _, v := range []string{p.Venue, p.Type} {
		if v != "" {
			venue = append(venue, v)
		}
	}
	if len(venue) > 0 {
		parts = append(parts, strings.Join(venue, " • "))
	}
	if p.Year != 0 {
		parts = append(parts, strconv.Itoa(p.Year))
	}
	return strings.Join(parts, " — ")
}

func chipLink(href, label string) *html.Node {
	return dom.El("a", dom.Attrs{
		"class":  "chiplink",
		"href":   href,
		"target": "_blank",
		"rel":    "noreferrer",
		"text":   label,
	})
}

// LinkRow renders links as chips.
func LinkRow(links []models.Link) *html.Node {
	row := dom.El("div", dom.Attrs{"class": "pub-links"})
	for _, l := range links {
		row.AppendChild(chipLink(l.URL, l.Label))
	}
	return row
}

// Publication renders one publication entry. Notes may contain markdown.
func Publication(p models.Publication, md *Markdown) *html.Node {
	wrap := dom.El("article", dom.Attrs{"class": "pub reveal"},
		dom.El("h3", dom.Attrs{"class": "pub-title"},
			dom.El("a", dom.Attrs{"href": p.URL, "target": "_blank", "rel": "noreferrer", "text": p.Title}),
		),
		dom.El("div", dom.Attrs{"class": "pub-meta", "text": PublicationMeta(p)}),
	)

	if p.Note != "" {
		note := dom.El("div", dom.Attrs{"class": "pub-note"})
		for _, n := range md.Inline(p.Note, atom.Div) {
			note.AppendChild(n)
		}
		wrap.AppendChild(note)
	}

	links := p.Links
	if len(links) == 0 {
		links = []models.Link{{Label: "Link", URL: p.URL}}
	}
	wrap.AppendChild(LinkRow(links))
	return wrap
}
