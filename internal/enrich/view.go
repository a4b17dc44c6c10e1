package enrich

import "strings"

// Publication is the display form of one record.
type Publication struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	TitleURL string   `json:"title_url,omitempty"` // Where the title links to (the record's PDF)
	Authors  []Person `json:"authors,omitempty"`
	Venue    string   `json:"venue,omitempty"`
	Year     int      `json:"year,omitempty"` // 0 when the record has no date
	Links    []Link   `json:"links,omitempty"`
}

// Person is an author as displayed. Self marks the homepage owner.
type Person struct {
	Name string `json:"name"`
	Self bool   `json:"self,omitempty"`
}

// Present builds the display form of a record. selfNames lists the display
// names that identify the homepage owner.
func Present(r Record, selfNames []string) Publication {
	self := make(map[string]bool, len(selfNames))
	for _, name := range selfNames {
		self[name] = true
	}
	return present(r, self)
}

func present(r Record, self map[string]bool) Publication {
	p := Publication{
		ID:       r.ID,
		Title:    r.Title,
		TitleURL: titleURL(r.Field("pdf")),
		Venue:    r.ContainerTitle,
		Year:     r.Year(),
		Links:    Links(r),
	}
	for _, a := range r.Author {
		name := a.DisplayName()
		if name == "" {
			continue
		}
		p.Authors = append(p.Authors, Person{Name: name, Self: isSelf(name, self)})
	}
	return p
}

// isSelf matches a display name against the owner's names. A trailing "*"
// (equal contribution) is ignored.
func isSelf(name string, self map[string]bool) bool {
	return self[name] || self[strings.TrimSuffix(name, "*")]
}

// titleURL makes a PDF reference absolute or site-relative.
func titleURL(pdf string) string {
	if pdf == "" || strings.HasPrefix(pdf, "http") {
		return pdf
	}
	return "/" + strings.TrimPrefix(pdf, "/")
}
