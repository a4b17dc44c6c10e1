package enrich

import (
	"testing"

	"github.com/homepage/pubs/internal/reference"
)

func rec(id string, year int) Record {
	c := reference.Citation{ID: id}
	if year != 0 {
		c.Issued = &reference.Date{DateParts: [][]int{{year}}}
	}
	return Record{Citation: c}
}

func ids(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestSortByYear(t *testing.T) {
	records := []Record{
		rec("2020", 2020),
		rec("2024a", 2024),
		rec("2024b", 2024),
		rec("2019", 2019),
	}
	SortByYear(records)

	want := []string{"2024a", "2024b", "2020", "2019"}
	got := ids(records)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SortByYear() = %v, want %v", got, want)
		}
	}
}

func TestSortByYear_MissingYearLast(t *testing.T) {
	records := []Record{
		rec("none1", 0),
		rec("old", 1999),
		rec("none2", 0),
		rec("new", 2025),
	}
	SortByYear(records)

	want := []string{"new", "old", "none1", "none2"}
	got := ids(records)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SortByYear() = %v, want %v", got, want)
		}
	}
}

func TestSortByYear_StableAcrossRuns(t *testing.T) {
	build := func() []Record {
		return []Record{rec("a", 2021), rec("b", 2021), rec("c", 2021), rec("d", 2022)}
	}
	first := build()
	SortByYear(first)
	for i := 0; i < 10; i++ {
		again := build()
		SortByYear(again)
		for j := range first {
			if first[j].ID != again[j].ID {
				t.Fatalf("run %d order %v differs from %v", i, ids(again), ids(first))
			}
		}
	}
}
