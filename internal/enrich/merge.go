package enrich

import (
	"github.com/homepage/pubs/internal/bibtex"
	"github.com/homepage/pubs/internal/reference"
)

// Merge attaches custom fields to each standard citation by citation key.
//
// The output has exactly one record per citation, in the same order.
// Citations without a key or without extracted fields pass through with no
// custom fields. Extracted entries with no matching citation are dropped:
// the standard parser decides which records exist.
func Merge(citations []reference.Citation, custom map[string]bibtex.FieldSet) []Record {
	records := make([]Record, len(citations))
	for i, c := range citations {
		records[i] = Record{Citation: c}
		if c.ID == "" {
			continue
		}
		set, ok := custom[c.ID]
		if !ok || len(set.Values) == 0 {
			continue
		}
		records[i].Custom = make(map[string]string, len(set.Values))
		for k, v := range set.Values {
			records[i].Custom[k] = v
		}
	}
	return records
}
