package models

// Link is a labeled outbound URL attached to a project or publication.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// GalleryItem is one extra image shown in a project's slideshow.
type GalleryItem struct {
	Image   string `json:"image"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// Project represents a portfolio project. Slug identifies the project in URLs.
type Project struct {
	Slug      string        `json:"slug"`
	Title     string        `json:"title"`
	Image     string        `json:"image"`
	Tags      []string      `json:"tags,omitempty"`
	Year      int           `json:"year,omitempty"`
	Impact    string        `json:"impact,omitempty"`
	Role      string        `json:"role,omitempty"`
	Orgs      []string      `json:"orgs,omitempty"`
	Outcomes  []string      `json:"outcomes,omitempty"`
	Links     []Link        `json:"links,omitempty"`
	Gallery   []GalleryItem `json:"gallery,omitempty"`
	YouTubeID string        `json:"youtubeId,omitempty"`
}

// ProjectList wraps the array of projects as stored in projects.json.
type ProjectList struct {
	Projects []Project `json:"projects"`
}
