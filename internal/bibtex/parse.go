package bibtex

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	nbib "github.com/nickng/bibtex"

	"github.com/homepage/pubs/internal/reference"
)

// ErrParse indicates the standard parser rejected the source text.
var ErrParse = errors.New("parsing bibliography")

// entryTypes maps BibTeX entry types to CSL item types.
var entryTypes = map[string]string{
	"article":       "article-journal",
	"inproceedings": "paper-conference",
	"conference":    "paper-conference",
	"proceedings":   "book",
	"book":          "book",
	"inbook":        "chapter",
	"incollection":  "chapter",
	"phdthesis":     "thesis",
	"mastersthesis": "thesis",
	"thesis":        "thesis",
	"techreport":    "report",
	"report":        "report",
	"unpublished":   "manuscript",
	"online":        "webpage",
	"misc":          "document",
}

var (
	authorSepRegex = regexp.MustCompile(`(?i)\s+and\s+`)
	spaceRegex     = regexp.MustCompile(`\s+`)
	isoDateRegex   = regexp.MustCompile(`^(\d{4})(?:-(\d{1,2}))?(?:-(\d{1,2}))?`)
)

var months = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// latexUnescaper undoes the escapes a BibTeX writer applies to plain text.
var latexUnescaper = strings.NewReplacer(
	`\&`, "&",
	`\%`, "%",
	`\$`, "$",
	`\#`, "#",
	`\_`, "_",
	`\textasciitilde{}`, "~",
	`\textasciicircum{}`, "^",
	`\@`, "@",
	"~", " ",
	"{", "",
	"}", "",
)

// Parse converts bibliography source text into standard citation records, in
// source order.
//
// Each keyed entry found by Chunks is parsed on its own, cut at its closing
// brace, so the parser sees exactly the entries the extractor sees and text
// between entries (% comments, notes) never reaches it. @string definitions
// are carried into every entry. An entry the parser rejects fails the whole
// parse with ErrParse, naming the entry and keeping the parser's diagnostic.
func Parse(src string) ([]reference.Citation, error) {
	m := collectMacros(src)
	chunks := Chunks(src)

	citations := make([]reference.Citation, 0, len(chunks))
	for _, c := range chunks {
		entry, err := parseChunk(c, m)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %s: %v", ErrParse, c.Key, err)
		}
		citations = append(citations, toCitation(entry))
	}
	return citations, nil
}

// toCitation maps one parsed entry onto the CSL schema.
func toCitation(entry *nbib.BibEntry) reference.Citation {
	fields := make(map[string]string, len(entry.Fields))
	for name, value := range entry.Fields {
		if value == nil {
			continue
		}
		fields[strings.ToLower(name)] = value.String()
	}

	entryType := strings.ToLower(entry.Type)
	c := reference.Citation{
		ID:             strings.TrimSpace(entry.CiteName),
		Type:           cslType(entryType),
		Title:          cleanValue(fields["title"]),
		Author:         ParseAuthors(fields["author"]),
		ContainerTitle: cleanValue(firstOf(fields, "journal", "journaltitle", "booktitle")),
		Publisher:      cleanValue(firstOf(fields, "publisher", "school", "institution", "organization")),
		Volume:         cleanValue(fields["volume"]),
		Issue:          cleanValue(fields["number"]),
		Page:           strings.ReplaceAll(cleanValue(fields["pages"]), "--", "-"),
		URL:            stripBraces(fields["url"]),
		DOI:            stripBraces(fields["doi"]),
	}

	if parts := dateParts(cleanValue(fields["year"]), cleanValue(fields["month"]), cleanValue(fields["date"])); len(parts) > 0 {
		c.Issued = &reference.Date{DateParts: [][]int{parts}}
	}

	return c
}

func cslType(entryType string) string {
	if t, ok := entryTypes[entryType]; ok {
		return t
	}
	return "document"
}

// firstOf returns the first non-empty field among names.
func firstOf(fields map[string]string, names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(fields[name]); v != "" {
			return v
		}
	}
	return ""
}

// cleanValue strips grouping braces and common LaTeX escapes and collapses
// whitespace.
func cleanValue(s string) string {
	s = latexUnescaper.Replace(s)
	return strings.TrimSpace(spaceRegex.ReplaceAllString(s, " "))
}

// stripBraces removes grouping braces and the \@ escape added before parsing,
// leaving escapes such as \_ in URLs untouched.
func stripBraces(s string) string {
	return strings.TrimSpace(strings.NewReplacer("{", "", "}", "", `\@`, "@").Replace(s))
}

// dateParts builds [year, month, day] from BibTeX year/month fields, falling
// back to a BibLaTeX ISO date. Returns nil when no year can be read.
func dateParts(year, month, date string) []int {
	if y, err := strconv.Atoi(year); err == nil {
		parts := []int{y}
		if m := monthNumber(month); m > 0 {
			parts = append(parts, m)
		}
		return parts
	}

	m := isoDateRegex.FindStringSubmatch(date)
	if m == nil {
		return nil
	}
	parts := []int{}
	for _, p := range m[1:] {
		if p == "" {
			break
		}
		n, _ := strconv.Atoi(p)
		parts = append(parts, n)
	}
	return parts
}

// monthNumber reads a month as a number (1-12) or an English name or
// abbreviation. Returns 0 if the value is not a month.
func monthNumber(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 12 {
			return n
		}
		return 0
	}
	if len(s) >= 3 {
		return months[s[:3]]
	}
	return 0
}

// ParseAuthors splits a BibTeX name list ("A and B and C") into authors.
// Each name may be "Family, Given" or "Given Family"; a name wrapped entirely
// in braces is kept whole as a family name. "others" is dropped.
func ParseAuthors(s string) []reference.Author {
	s = strings.TrimSpace(spaceRegex.ReplaceAllString(s, " "))
	if s == "" {
		return nil
	}

	var authors []reference.Author
	for _, name := range authorSepRegex.Split(s, -1) {
		name = strings.TrimSpace(name)
		if name == "" || strings.EqualFold(name, "others") {
			continue
		}
		authors = append(authors, parseName(name))
	}
	return authors
}

func parseName(name string) reference.Author {
	if strings.HasPrefix(name, "{") && strings.HasSuffix(name, "}") &&
		strings.Count(name, "{") == 1 && strings.Count(name, "}") == 1 {
		return reference.Author{Family: cleanValue(name)}
	}

	if strings.Contains(name, ",") {
		parts := strings.Split(name, ",")
		// "Family, Jr, Given" keeps the suffix out of the given name.
		return reference.Author{
			Given:  cleanValue(parts[len(parts)-1]),
			Family: cleanValue(parts[0]),
		}
	}

	words := strings.Fields(name)
	if len(words) == 1 {
		return reference.Author{Family: cleanValue(words[0])}
	}
	return reference.Author{
		Given:  cleanValue(strings.Join(words[:len(words)-1], " ")),
		Family: cleanValue(words[len(words)-1]),
	}
}
