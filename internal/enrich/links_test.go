package enrich

import (
	"testing"

	"github.com/homepage/pubs/internal/reference"
)

func equalLinks(a, b []Link) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLinks(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   []Link
	}{
		{
			name: "custom pdf beats pdf URL",
			record: Record{
				Citation: reference.Citation{URL: "https://example.org/paper.PDF"},
				Custom:   map[string]string{"pdf": "papers/mine.pdf"},
			},
			want: []Link{{"PDF", "papers/mine.pdf"}},
		},
		{
			name:   "pdf URL used when no custom pdf",
			record: Record{Citation: reference.Citation{URL: "https://example.org/paper.PDF"}},
			want:   []Link{{"PDF", "https://example.org/paper.PDF"}},
		},
		{
			name:   "DOI only",
			record: Record{Citation: reference.Citation{DOI: "10.1000/xyz123"}},
			want:   []Link{{"DOI", "https://doi.org/10.1000/xyz123"}},
		},
		{
			name:   "URL fallback",
			record: Record{Citation: reference.Citation{URL: "https://example.org/paper"}},
			want:   []Link{{"Link", "https://example.org/paper"}},
		},
		{
			name: "no fallback when another link exists",
			record: Record{
				Citation: reference.Citation{URL: "https://example.org/paper", DOI: "10.1/a"},
			},
			want: []Link{{"DOI", "https://doi.org/10.1/a"}},
		},
		{
			name:   "nothing",
			record: Record{Citation: reference.Citation{Title: "Bare"}},
			want:   nil,
		},
		{
			name: "full priority order",
			record: Record{
				Citation: reference.Citation{DOI: "10.1/b", URL: "https://ignored.org"},
				Custom: map[string]string{
					"artifact": "https://art",
					"website":  "https://web",
					"poster":   "https://poster",
					"code":     "https://code",
					"video":    "https://video",
					"slides":   "https://slides",
					"talk":     "https://talk",
					"pdf":      "https://pdf",
				},
			},
			want: []Link{
				{"PDF", "https://pdf"},
				{"Talk", "https://talk"},
				{"Slides", "https://slides"},
				{"Video", "https://video"},
				{"Code", "https://code"},
				{"Poster", "https://poster"},
				{"DOI", "https://doi.org/10.1/b"},
				{"Website", "https://web"},
				{"Artifact", "https://art"},
			},
		},
		{
			name: "empty custom values are absent",
			record: Record{
				Citation: reference.Citation{URL: "https://example.org/x"},
				Custom:   map[string]string{"talk": "", "pdf": ""},
			},
			want: []Link{{"Link", "https://example.org/x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Links(tt.record)
			if !equalLinks(got, tt.want) {
				t.Errorf("Links() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLinks_LabelsUnique(t *testing.T) {
	r := Record{
		Citation: reference.Citation{URL: "https://a.org/x.pdf", DOI: "10.1/c"},
		Custom:   map[string]string{"pdf": "y.pdf", "talk": "https://t"},
	}
	seen := make(map[string]bool)
	for _, l := range Links(r) {
		if seen[l.Label] {
			t.Errorf("label %q appears twice", l.Label)
		}
		seen[l.Label] = true
	}
}
