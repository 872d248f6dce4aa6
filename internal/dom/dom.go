// Package dom builds HTML nodes and edits parsed template documents.
package dom

import (
	"bytes"
	"io"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attrs describes a new element. The "class" key sets the class attribute,
// "text" sets the text content, and every other key becomes an attribute.
type Attrs map[string]string

// El creates an element with the given attributes and children. Attributes
// are written in sorted key order so rendering is deterministic. Nil children
// are skipped.
func El(tag string, attrs Attrs, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k == "text" {
			continue
		}
		n.Attr = append(n.Attr, html.Attribute{Key: k, Val: attrs[k]})
	}
	if text, ok := attrs["text"]; ok && text != "" {
		n.AppendChild(Text(text))
	}

	for _, c := range children {
		if c != nil {
			n.AppendChild(c)
		}
	}
	return n
}

// Text creates a text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(r)
}

// ParseString reads an HTML document from a string.
func ParseString(s string) (*goquery.Document, error) {
	return Parse(strings.NewReader(s))
}

// Render serializes the whole document.
func Render(doc *goquery.Document) ([]byte, error) {
	var buf bytes.Buffer
	for _, n := range doc.Nodes {
		if err := html.Render(&buf, n); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// RenderNode serializes a single node.
func RenderNode(n *html.Node) string {
	var buf bytes.Buffer
	_ = html.Render(&buf, n)
	return buf.String()
}

// First returns the first element under root matching sel. The returned
// selection is empty when nothing matches.
func First(root *goquery.Selection, sel string) *goquery.Selection {
	return root.Find(sel).First()
}

// SetText replaces the text of the first match. It reports whether a match existed.
func SetText(root *goquery.Selection, sel, text string) bool {
	s := First(root, sel)
	if s.Length() == 0 {
		return false
	}
	s.SetText(text)
	return true
}

// SetAttr sets an attribute on the first match. It reports whether a match existed.
func SetAttr(root *goquery.Selection, sel, name, value string) bool {
	s := First(root, sel)
	if s.Length() == 0 {
		return false
	}
	s.SetAttr(name, value)
	return true
}

// Replace removes the children of s and appends nodes in order.
func Replace(s *goquery.Selection, nodes ...*html.Node) {
	s.Empty()
	for _, n := range nodes {
		if n != nil {
			s.AppendNodes(n)
		}
	}
}

// Notice replaces the content of s with a single note message.
func Notice(s *goquery.Selection, msg string) {
	Replace(s, NoteNode(msg))
}

// NoteNode builds the <div class="note"> used for empty and failure states.
func NoteNode(msg string) *html.Node {
	return El("div", Attrs{"class": "note", "text": msg})
}
