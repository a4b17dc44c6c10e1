package bibtex

import (
	"regexp"
	"strings"
)

var (
	// Start of an entry: @type{
	entryStartRegex = regexp.MustCompile(`@[a-zA-Z]+\s*\{`)
	// Citation key: @type{KEY,
	entryKeyRegex = regexp.MustCompile(`(?s)^@\w+\s*\{\s*([^,\s]+)\s*,`)
	// Entry type: @TYPE
	entryTypeRegex = regexp.MustCompile(`^@([a-zA-Z]+)`)
)

// Chunk is the raw text of one entry together with its citation key.
type Chunk struct {
	Key  string
	Text string
}

// SplitEntries cuts source text at every entry start, keeping the leading
// marker with each piece. Text before the first entry is returned as its own
// piece. Empty pieces are dropped.
func SplitEntries(src string) []string {
	starts := entryStartRegex.FindAllStringIndex(src, -1)

	var pieces []string
	prev := 0
	for _, loc := range starts {
		if loc[0] > prev {
			pieces = append(pieces, src[prev:loc[0]])
		}
		prev = loc[0]
	}
	if prev < len(src) {
		pieces = append(pieces, src[prev:])
	}
	return pieces
}

// EntryKey returns the citation key from an entry's header.
func EntryKey(chunk string) (string, bool) {
	m := entryKeyRegex.FindStringSubmatch(chunk)
	if m == nil {
		return "", false
	}
	key := strings.TrimSpace(m[1])
	return key, key != ""
}

// Chunks splits source text into keyed entries in source order.
// Pieces without a recognizable key and @string, @comment and @preamble
// blocks are skipped.
func Chunks(src string) []Chunk {
	var chunks []Chunk
	for _, piece := range SplitEntries(src) {
		if isSpecialEntry(piece) {
			continue
		}
		key, ok := EntryKey(piece)
		if !ok {
			continue
		}
		chunks = append(chunks, Chunk{Key: key, Text: piece})
	}
	return chunks
}

// isSpecialEntry reports whether a piece is a @string, @comment or @preamble
// block rather than a bibliography record.
func isSpecialEntry(piece string) bool {
	m := entryTypeRegex.FindStringSubmatch(piece)
	return m != nil && isReservedWord(m[1])
}
