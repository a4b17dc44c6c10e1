// Package bibtex reads bibliography source text: it splits entries into raw
// chunks, recovers project-specific fields the standard parser ignores,
// redacts fields from raw chunks, and adapts the standard parser's output.
package bibtex

import (
	"regexp"
	"strings"
)

// Custom field names recognized by default.
const (
	FieldTalk     = "talk"
	FieldSlides   = "slides"
	FieldVideo    = "video"
	FieldCode     = "code"
	FieldArtifact = "artifact"
	FieldPoster   = "poster"
	FieldPDF      = "pdf"
	FieldWebsite  = "website"
)

// DefaultCustomFields lists the custom fields extracted when no other set is configured.
var DefaultCustomFields = []string{
	FieldTalk, FieldSlides, FieldVideo, FieldCode,
	FieldArtifact, FieldPoster, FieldPDF, FieldWebsite,
}

// DefaultFieldAliases maps alternate spellings found in older sources to
// their canonical field name.
var DefaultFieldAliases = map[string]string{
	"artifacat": FieldArtifact,
}

// DefaultRedactFields lists the fields removed from raw chunks before display.
var DefaultRedactFields = []string{FieldSlides, FieldTalk, FieldPDF}

// FieldNames is the immutable set of custom field names the extractor
// searches for. Build it with NewFieldNames.
type FieldNames struct {
	names    []string
	aliases  map[string][]string // canonical -> alternate spellings
	patterns map[string]*regexp.Regexp
}

// NewFieldNames builds a field set. Names are lowercased and deduplicated;
// aliases map an alternate spelling to a canonical name and are ignored when
// the canonical name is not in names.
func NewFieldNames(names []string, aliases map[string]string) FieldNames {
	f := FieldNames{
		aliases:  make(map[string][]string),
		patterns: make(map[string]*regexp.Regexp),
	}

	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || f.patterns[name] != nil {
			continue
		}
		f.names = append(f.names, name)
		f.patterns[name] = fieldPattern(name)
	}

	for alias, canonical := range aliases {
		alias = strings.ToLower(strings.TrimSpace(alias))
		canonical = strings.ToLower(strings.TrimSpace(canonical))
		if alias == "" || alias == canonical || f.patterns[canonical] == nil {
			continue
		}
		f.aliases[canonical] = append(f.aliases[canonical], alias)
		if f.patterns[alias] == nil {
			f.patterns[alias] = fieldPattern(alias)
		}
	}

	return f
}

// DefaultFieldNames returns the default custom field set with default aliases.
func DefaultFieldNames() FieldNames {
	return NewFieldNames(DefaultCustomFields, DefaultFieldAliases)
}

// Names returns the canonical field names in configured order.
func (f FieldNames) Names() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// fieldPattern matches `name = {value}` or `name = "value"`, case-insensitively.
// Braced values cannot contain a closing brace.
func fieldPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^a-z0-9_-])` + regexp.QuoteMeta(name) +
		`\s*=\s*(?:\{([^}]*)\}|"([^"]*)")`)
}

// FieldSet holds the custom fields recovered from one entry, plus the entry's
// raw text. Values never contains empty strings.
type FieldSet struct {
	Key    string
	Values map[string]string
	Raw    string
}

// Get returns the value of a custom field, or "" when absent.
func (s FieldSet) Get(name string) string {
	return s.Values[strings.ToLower(name)]
}

// Has reports whether the field is present with a non-empty value.
func (s FieldSet) Has(name string) bool {
	return s.Get(name) != ""
}
