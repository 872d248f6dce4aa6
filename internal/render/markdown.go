package render

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Markdown renders the short markdown snippets allowed in notes and outcomes.
// Metacharacters such as * and _ format the text; authors escape them with a
// backslash to keep them literal. Raw HTML in the source is escaped.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a renderer with GFM and code highlighting.
func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
		),
	}
}

// Inline converts src to nodes suitable as children of an element of the
// given type. A single paragraph is unwrapped. On failure src is returned as
// plain text.
func (m *Markdown) Inline(src string, parent atom.Atom) []*html.Node {
	if strings.TrimSpace(src) == "" {
		return nil
	}
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return []*html.Node{{Type: html.TextNode, Data: src}}
	}
	ctx := &html.Node{Type: html.ElementNode, Data: parent.String(), DataAtom: parent}
	nodes, err := html.ParseFragment(&buf, ctx)
	if err != nil {
		return []*html.Node{{Type: html.TextNode, Data: src}}
	}

	var elems []*html.Node
	for _, n := range nodes {
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) == "" {
			continue
		}
		elems = append(elems, n)
	}
	if len(elems) == 1 && elems[0].DataAtom == atom.P {
		var kids []*html.Node
		for c := elems[0].FirstChild; c != nil; {
			next := c.NextSibling
			elems[0].RemoveChild(c)
			kids = append(kids, c)
			c = next
		}
		return kids
	}
	return elems
}
