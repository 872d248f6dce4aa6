package render

import (
	"net/url"
	"strconv"

	"golang.org/x/net/html"

	"github.com/lmesias/folio/internal/dom"
	"github.com/lmesias/folio/internal/slideshow"
)

const youtubeAllow = "accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture; web-share"

// YouTube renders a privacy-enhanced embed for a video id.
func YouTube(id, title, loading string) *html.Node {
	if title == "" {
		title = "YouTube video player"
	}
	if loading == "" {
		loading = "lazy"
	}
	return dom.El("div", dom.Attrs{"class": "video"},
		dom.El("iframe", dom.Attrs{
			"loading":         loading,
			"allow":           youtubeAllow,
			"allowfullscreen": "",
			"referrerpolicy":  "strict-origin-when-cross-origin",
			"src":             "https://www.youtube-nocookie.com/embed/" + url.PathEscape(id),
			"title":           title,
		}),
	)
}

// SlideshowMarkup controls how a slideshow is rendered.
type SlideshowMarkup struct {
	// Slug identifies the project for the live slideshow channel.
	Slug string
	// StageLoading is the loading attribute of the main image.
	StageLoading string
	Delay        string
}

func arrow(left bool) *html.Node {
	d := "M10 6l6 6-6 6"
	if left {
		d = "M14 6l-6 6 6 6"
	}
	svg := dom.El("svg", dom.Attrs{"viewBox": "0 0 24 24", "aria-hidden": "true"},
		dom.El("path", dom.Attrs{"d": d}),
	)
	svg.Namespace = "svg"
	svg.FirstChild.Namespace = "svg"
	return svg
}

// Slideshow renders the current state of show: the stage image with arrows,
// the caption and, with more than one slide, the thumbnail strip.
func Slideshow(show *slideshow.Show, paths Paths, opts SlideshowMarkup) *html.Node {
	st := show.State()
	slides := show.Slides()
	if opts.StageLoading == "" {
		opts.StageLoading = "lazy"
	}

	wrap := dom.El("div", dom.Attrs{
		"class":          "slideshow",
		"tabindex":       "0",
		"data-slideshow": opts.Slug,
		"data-autoplay":  strconv.FormatBool(st.Autoplay),
		"data-delay-ms":  opts.Delay,
	})

	stage := dom.El("div", dom.Attrs{"class": "slide-stage"},
		dom.El("img", dom.Attrs{
			"class":    "slide-img",
			"src":      paths.Image(st.Slide.Image),
			"alt":      st.Slide.Alt,
			"loading":  opts.StageLoading,
			"decoding": "async",
		}),
		dom.El("button", dom.Attrs{"class": "slide-arrow prev", "type": "button", "aria-label": "Previous image"}, arrow(true)),
		dom.El("button", dom.Attrs{"class": "slide-arrow next", "type": "button", "aria-label": "Next image"}, arrow(false)),
	)
	wrap.AppendChild(stage)

	capAttrs := dom.Attrs{"class": "slide-cap", "text": st.Slide.Caption}
	if st.Slide.Caption == "" {
		capAttrs["hidden"] = ""
	}
	wrap.AppendChild(dom.El("div", capAttrs))

	if len(slides) > 1 {
		thumbs := dom.El("div", dom.Attrs{"class": "slide-thumbs"})
		for i, s := range slides {
			class := "thumb"
			if i == st.Index {
				class += " is-active"
			}
			attrs := dom.Attrs{
				"class":      class,
				"type":       "button",
				"aria-label": "View image " + strconv.Itoa(i+1),
				"data-index": strconv.Itoa(i),
			}
			if s.Caption != "" {
				attrs["data-caption"] = s.Caption
			}
			thumbs.AppendChild(dom.El("button", attrs,
				dom.El("img", dom.Attrs{
					"src":      paths.Image(s.Image),
					"alt":      s.Alt,
					"loading":  "lazy",
					"decoding": "async",
				}),
			))
		}
		wrap.AppendChild(thumbs)
	}
	return wrap
}
