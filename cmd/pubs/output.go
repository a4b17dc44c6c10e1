package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/homepage/pubs/internal/enrich"
)

// Constants for output formatting.
const (
	ListTitleMaxLen = 60 // Used in list command output
	TextWrapWidth   = 68 // Wrap width for detail views
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DetailResponse is the response for get.
type DetailResponse struct {
	enrich.Publication
	Record enrich.Record `json:"record"`
	BibTeX string        `json:"bibtex,omitempty"`
}

// SourceResponse is the response for bibtex.
type SourceResponse struct {
	ID     string `json:"id"`
	BibTeX string `json:"bibtex"`
}

// CheckResponse is the response for check.
type CheckResponse struct {
	Checked  int           `json:"checked"`
	Problems []CheckResult `json:"problems"`
}

// CheckResult is one failed link in a check response.
type CheckResult struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// wrapText wraps text to the specified width with indentation on subsequent lines.
func wrapText(text string, width int, indent string) string {
	if len(text) <= width {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	var currentLine strings.Builder

	for _, word := range words {
		if currentLine.Len() == 0 {
			currentLine.WriteString(word)
		} else if currentLine.Len()+1+len(word) <= width {
			currentLine.WriteString(" ")
			currentLine.WriteString(word)
		} else {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLine.WriteString(word)
		}
	}
	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return strings.Join(lines, "\n"+indent)
}

// formatAuthors joins display names, marking the homepage owner with asterisks
// the way the site renders them in bold.
func formatAuthors(people []enrich.Person) string {
	names := make([]string, len(people))
	for i, p := range people {
		if p.Self {
			names[i] = "**" + p.Name + "**"
		} else {
			names[i] = p.Name
		}
	}
	return strings.Join(names, ", ")
}

// formatCitationLine renders authors, venue and year on one line, omitting absent parts.
func formatCitationLine(p enrich.Publication) string {
	line := formatAuthors(p.Authors)
	if p.Venue != "" {
		if line != "" {
			line += " — "
		}
		line += p.Venue
	}
	if p.Year != 0 {
		if line != "" {
			line += ", "
		}
		line += fmt.Sprintf("%d", p.Year)
	}
	return line
}

// formatLinks renders "Label: URL" lines with the given indent.
func formatLinks(links []enrich.Link, indent string) string {
	var b strings.Builder
	for _, l := range links {
		fmt.Fprintf(&b, "%s%-9s %s\n", indent, l.Label+":", l.URL)
	}
	return b.String()
}
