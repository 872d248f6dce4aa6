package pages

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/lmesias/folio/internal/dom"
)

// stateAttr marks the hidden inputs written by keepFilters.
const stateAttr = "data-filter-state"

// filterState is the set of active filters of a list page, in query form.
type filterState url.Values

func projectState(v View) filterState {
	return filterState{"tag": {v.Tag}, "q": {v.Query}}
}

func publicationState(v View) filterState {
	return filterState{"type": {v.Type}, "year": {v.Year}, "q": {v.Query}}
}

// with returns the relative link that sets key to value and keeps every
// other active filter. Empty values are left out of the query.
func (s filterState) with(key, value string) string {
	q := url.Values{}
	for k, vs := range s {
		if k != key && len(vs) > 0 && vs[0] != "" {
			q.Set(k, vs[0])
		}
	}
	if value != "" {
		q.Set(key, value)
	}
	if len(q) == 0 {
		return "?"
	}
	return "?" + q.Encode()
}

// hrefFor binds with to one query parameter.
func (s filterState) hrefFor(key string) func(string) string {
	return func(value string) string { return s.with(key, value) }
}

// keepFilters writes the active filters other than the search query into
// the search input's form as hidden inputs, so submitting a new query keeps
// them.
func keepFilters(search *goquery.Selection, s filterState, keys ...string) {
	form := search.Closest("form")
	if form.Length() == 0 {
		return
	}
	form.Find("input[" + stateAttr + "]").Remove()
	for _, k := range keys {
		v := url.Values(s).Get(k)
		if v == "" {
			continue
		}
		form.AppendNodes(dom.El("input", dom.Attrs{
			"type":    "hidden",
			"name":    k,
			"value":   v,
			stateAttr: "",
		}))
	}
}
