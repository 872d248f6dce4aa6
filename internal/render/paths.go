// Package render maps data records to HTML subtrees.
package render

import (
	"net/url"
	"strings"
)

// Paths builds links relative to the page being rendered.
type Paths struct {
	// Base is the relative prefix from the page to the site root, e.g. "./"
	// for the home page and "../../" for a project page.
	Base string
}

// PathsFor returns the Paths of a page at rel, a slash-separated path from
// the site root such as "work/rover/index.html".
func PathsFor(rel string) Paths {
	depth := strings.Count(strings.TrimPrefix(rel, "/"), "/")
	if depth == 0 {
		return Paths{Base: "./"}
	}
	return Paths{Base: strings.Repeat("../", depth)}
}

// Image returns the URL of an image stored under assets/img.
func (p Paths) Image(rel string) string {
	return p.Base + "assets/img/" + rel
}

// Project returns the URL of a project's detail page.
func (p Paths) Project(slug string) string {
	return p.Base + "work/" + url.PathEscape(slug) + "/"
}
