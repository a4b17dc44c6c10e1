package enrich

import (
	"strings"

	"github.com/homepage/pubs/internal/bibtex"
)

// Link labels in display order.
const (
	LabelPDF      = "PDF"
	LabelTalk     = "Talk"
	LabelSlides   = "Slides"
	LabelVideo    = "Video"
	LabelCode     = "Code"
	LabelPoster   = "Poster"
	LabelDOI      = "DOI"
	LabelWebsite  = "Website"
	LabelArtifact = "Artifact"
	LabelLink     = "Link"
)

// DOIResolver is prefixed to a DOI to build its link.
const DOIResolver = "https://doi.org/"

// Link is one labeled hyperlink for a record.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// customLinks pairs labels with the custom field they come from, in priority
// order after PDF. DOI is inserted between Poster and Website.
var customLinks = []struct {
	label string
	field string
}{
	{LabelTalk, bibtex.FieldTalk},
	{LabelSlides, bibtex.FieldSlides},
	{LabelVideo, bibtex.FieldVideo},
	{LabelCode, bibtex.FieldCode},
	{LabelPoster, bibtex.FieldPoster},
}

// Links returns the record's links in fixed priority order, one per label.
// When none of the labeled sources is present, the record's URL (if any) is
// returned as a single "Link". The result may be empty.
func Links(r Record) []Link {
	var links []Link

	if pdf := pdfLink(r); pdf != "" {
		links = append(links, Link{LabelPDF, pdf})
	}
	for _, cl := range customLinks {
		if v := r.Field(cl.field); v != "" {
			links = append(links, Link{cl.label, v})
		}
	}
	if doi := r.Field("DOI"); doi != "" {
		links = append(links, Link{LabelDOI, DOIResolver + doi})
	}
	if v := r.Field(bibtex.FieldWebsite); v != "" {
		links = append(links, Link{LabelWebsite, v})
	}
	if v := r.Field(bibtex.FieldArtifact); v != "" {
		links = append(links, Link{LabelArtifact, v})
	}

	if len(links) == 0 {
		if url := r.Field("URL"); url != "" {
			links = append(links, Link{LabelLink, url})
		}
	}
	return links
}

// pdfLink prefers the custom pdf field, then a URL that points at a PDF.
func pdfLink(r Record) string {
	if pdf := r.Field(bibtex.FieldPDF); pdf != "" {
		return pdf
	}
	if url := r.Field("URL"); strings.HasSuffix(strings.ToLower(url), ".pdf") {
		return url
	}
	return ""
}
