package bibtex

import "strings"

// Extract recovers the custom fields of every keyed entry in src.
//
// Extraction is best-effort: entries without a key are skipped, and when a
// key occurs more than once the last entry wins. Every keyed entry is kept,
// even with no custom fields, so its raw text stays available for display.
func Extract(src string, names FieldNames) map[string]FieldSet {
	sets := make(map[string]FieldSet)
	for _, c := range Chunks(src) {
		sets[c.Key] = ExtractChunk(c, names)
	}
	return sets
}

// ExtractChunk recovers the custom fields of a single entry.
func ExtractChunk(c Chunk, names FieldNames) FieldSet {
	set := FieldSet{
		Key:    c.Key,
		Values: make(map[string]string),
		Raw:    c.Text,
	}

	for _, name := range names.names {
		value := grab(c.Text, names, name)
		if value == "" {
			for _, alias := range names.aliases[name] {
				if value = grab(c.Text, names, alias); value != "" {
					break
				}
			}
		}
		if value != "" {
			set.Values[name] = value
		}
	}

	return set
}

// grab returns the trimmed value of the first assignment to field in text.
func grab(text string, names FieldNames, field string) string {
	m := names.patterns[field].FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(m[2])
}
