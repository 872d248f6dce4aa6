package models

// Publication is one entry of the publication list.
type Publication struct {
	Title   string `json:"title"`
	Authors string `json:"authors,omitempty"`
	Venue   string `json:"venue,omitempty"`
	Type    string `json:"type,omitempty"`
	Year    int    `json:"year,omitempty"`
	URL     string `json:"url"`
	Note    string `json:"note,omitempty"`
	DOI     string `json:"doi,omitempty"`
	Links   []Link `json:"links,omitempty"`
}

// PublicationList wraps the array of publications as stored in publications.json.
type PublicationList struct {
	Publications []Publication `json:"publications"`
}
