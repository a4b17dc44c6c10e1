package enrich

import "sort"

// SortByYear orders records newest first. Records without a year sort last.
// Records from the same year keep their relative order.
func SortByYear(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Year() > records[j].Year()
	})
}
