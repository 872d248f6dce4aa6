package models

// Contact holds the public contact details shown on the home page.
type Contact struct {
	Email string `json:"email,omitempty"`
}

// Site is the site-wide metadata document (site.json).
type Site struct {
	Headline             string   `json:"headline"`
	Subheadline          string   `json:"subheadline,omitempty"`
	Highlights           []string `json:"highlights,omitempty"`
	FocusTags            []string `json:"focusTags,omitempty"`
	Contact              Contact  `json:"contact"`
	FeaturedProjectSlugs []string `json:"featuredProjectSlugs,omitempty"`
}
