// Package enrich joins standard citation records with custom fields and
// derives the display form of each record.
package enrich

import (
	"encoding/json"
	"strings"

	"github.com/homepage/pubs/internal/reference"
)

// Record is a standard citation augmented with custom fields.
// Custom fields take precedence over standard fields of the same name.
type Record struct {
	reference.Citation
	Custom map[string]string
}

// Field returns the value of a field by name. Custom fields are consulted
// first (case-insensitively), then the standard record by its CSL name.
// Returns "" when the field is absent.
func (r Record) Field(name string) string {
	if v := r.Custom[strings.ToLower(name)]; v != "" {
		return v
	}
	v, _ := r.Citation.Field(name)
	return v
}

// MarshalJSON encodes the record as the shallow merge of the standard
// citation and its custom fields, custom keys overwriting standard ones.
func (r Record) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(r.Citation)
	if err != nil {
		return nil, err
	}
	if len(r.Custom) == 0 {
		return base, nil
	}

	var merged map[string]any
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range r.Custom {
		merged[k] = v
	}
	return json.Marshal(merged)
}
