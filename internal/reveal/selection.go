package reveal

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Markup used by the page templates.
const (
	Selector      = ".reveal"
	BoundAttr     = "data-reveal-bound"
	RevealedClass = "is-on"
)

// Node adapts a parsed template element to Element.
type Node struct {
	n *html.Node
}

func (e Node) sel() *goquery.Selection {
	return goquery.NewDocumentFromNode(e.n).Selection
}

func (e Node) Bound() bool {
	_, ok := e.sel().Attr(BoundAttr)
	return ok
}

func (e Node) Bind() { e.sel().SetAttr(BoundAttr, "true") }

func (e Node) Reveal() { e.sel().AddClass(RevealedClass) }

// Revealed reports whether the element carries the revealed class.
func (e Node) Revealed() bool { return e.sel().HasClass(RevealedClass) }

// Elements returns every .reveal element under root in document order.
func Elements(root *goquery.Selection) []Element {
	var out []Element
	root.Find(Selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, Node{n: s.Get(0)})
	})
	return out
}
