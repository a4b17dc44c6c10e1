package enrich

import (
	"context"
	"errors"
	"fmt"

	"github.com/homepage/pubs/internal/bibtex"
)

// ErrNotFound indicates no record has the requested citation key.
var ErrNotFound = errors.New("publication not found")

// Fetcher obtains raw bibliography source text.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// Options configures a pipeline run.
type Options struct {
	Fields    bibtex.FieldNames // Custom fields to extract
	Redact    []string          // Fields removed from displayed source
	SelfNames []string          // Author display names of the homepage owner
}

// DefaultOptions returns the default custom fields and redaction set with no
// self names.
func DefaultOptions() Options {
	return Options{
		Fields: bibtex.DefaultFieldNames(),
		Redact: bibtex.DefaultRedactFields,
	}
}

// Catalog is the result of one pipeline run. It is never modified after
// Build returns; a reload produces a new Catalog.
type Catalog struct {
	records []Record
	index   map[string]int
	raw     map[string]string
	redact  []string
	self    map[string]bool
}

// Load fetches the source and builds a catalog from it. A fetch or parse
// failure is returned as is and no catalog is produced.
func Load(ctx context.Context, f Fetcher, opts Options) (*Catalog, error) {
	src, err := f.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return Build(src, opts)
}

// Build runs extraction, standard parsing, merging and sorting over src.
func Build(src string, opts Options) (*Catalog, error) {
	citations, err := bibtex.Parse(src)
	if err != nil {
		return nil, err
	}
	custom := bibtex.Extract(src, opts.Fields)

	records := Merge(citations, custom)
	SortByYear(records)

	c := &Catalog{
		records: records,
		index:   make(map[string]int, len(records)),
		raw:     make(map[string]string, len(custom)),
		redact:  append([]string(nil), opts.Redact...),
		self:    make(map[string]bool, len(opts.SelfNames)),
	}
	for i, r := range records {
		if _, seen := c.index[r.ID]; !seen && r.ID != "" {
			c.index[r.ID] = i
		}
	}
	for key, set := range custom {
		c.raw[key] = set.Raw
	}
	for _, name := range opts.SelfNames {
		c.self[name] = true
	}
	return c, nil
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Records returns the records, newest first.
func (c *Catalog) Records() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Get returns the first record (in display order) with the given key.
func (c *Catalog) Get(key string) (Record, error) {
	i, ok := c.index[key]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return c.records[i], nil
}

// Publications returns the display form of every record, newest first.
func (c *Catalog) Publications() []Publication {
	pubs := make([]Publication, len(c.records))
	for i, r := range c.records {
		pubs[i] = present(r, c.self)
	}
	return pubs
}

// Publication returns the display form of the record with the given key.
func (c *Catalog) Publication(key string) (Publication, error) {
	r, err := c.Get(key)
	if err != nil {
		return Publication{}, err
	}
	return present(r, c.self), nil
}

// Source returns the raw entry text for key with the configured fields
// redacted, or "" when the source has no entry with that key.
func (c *Catalog) Source(key string) string {
	raw, ok := c.raw[key]
	if !ok {
		return ""
	}
	return bibtex.Redact(raw, c.redact)
}
