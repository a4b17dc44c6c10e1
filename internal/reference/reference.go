// Package reference defines the core domain types for bibliography records.
package reference

// Citation is one bibliography entry as emitted by the standard parser.
// Field names and JSON tags follow CSL-JSON so the encoded form matches
// what citation tooling and the homepage front end expect.
type Citation struct {
	// Identity
	ID   string `json:"id"`             // Citation key from the source entry
	Type string `json:"type,omitempty"` // CSL item type (article-journal, paper-conference, ...)

	// Metadata
	Title          string   `json:"title,omitempty"`
	Author         []Author `json:"author,omitempty"`
	ContainerTitle string   `json:"container-title,omitempty"` // Journal, proceedings, or book
	Publisher      string   `json:"publisher,omitempty"`
	Volume         string   `json:"volume,omitempty"`
	Issue          string   `json:"issue,omitempty"`
	Page           string   `json:"page,omitempty"`

	// Publication date
	Issued *Date `json:"issued,omitempty"`

	// Locators
	URL string `json:"URL,omitempty"`
	DOI string `json:"DOI,omitempty"`
}

// Date is a CSL date: a list of [year, month, day] parts, each optional
// after the year.
type Date struct {
	DateParts [][]int `json:"date-parts"`
}

// Year returns the first year component of the issued date, or 0 when the
// citation carries no usable date.
func (c Citation) Year() int {
	if c.Issued == nil || len(c.Issued.DateParts) == 0 || len(c.Issued.DateParts[0]) == 0 {
		return 0
	}
	return c.Issued.DateParts[0][0]
}

// Field returns a standard string field by its CSL name.
// The second result is false for names that are not string fields of a Citation.
func (c Citation) Field(name string) (string, bool) {
	switch name {
	case "id":
		return c.ID, true
	case "type":
		return c.Type, true
	case "title":
		return c.Title, true
	case "container-title":
		return c.ContainerTitle, true
	case "publisher":
		return c.Publisher, true
	case "volume":
		return c.Volume, true
	case "issue":
		return c.Issue, true
	case "page":
		return c.Page, true
	case "URL":
		return c.URL, true
	case "DOI":
		return c.DOI, true
	}
	return "", false
}
