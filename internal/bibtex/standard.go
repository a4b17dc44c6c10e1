package bibtex

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	nbib "github.com/nickng/bibtex"
)

// The standard parser keeps its state in package variables, so calls are
// serialized and the scanner state is cleared before each one.
var parseMu sync.Mutex

var (
	// Citation keys the standard parser can scan as a bare identifier.
	bareKeyRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_:./+-]*$`)
	// Name defined by @string{name = ...}
	stringDefRegex = regexp.MustCompile(`(?is)^@string\s*\{\s*([A-Za-z0-9][A-Za-z0-9_:./+-]*)\s*=`)
	// Bare macro reference in a field value: = name, # name
	macroRefRegex = regexp.MustCompile(`(?:=|#)\s*([A-Za-z0-9][A-Za-z0-9_:./+-]*)`)
)

// macros holds the @string definitions of a source.
type macros struct {
	defs  string // definitions copied ahead of every entry
	names map[string]bool
}

// collectMacros gathers the @string definitions in src.
func collectMacros(src string) macros {
	m := macros{names: make(map[string]bool)}

	var b strings.Builder
	for _, piece := range SplitEntries(src) {
		match := stringDefRegex.FindStringSubmatch(piece)
		if match == nil {
			continue
		}
		m.names[match[1]] = true
		b.WriteString(entryText(piece))
		b.WriteString("\n")
	}
	m.defs = b.String()
	return m
}

// undefined returns @string definitions for every bare macro referenced in
// text that is neither defined in the source nor built into the parser. An
// undefined macro stands for its own name.
func (m macros) undefined(text string) string {
	var b strings.Builder
	seen := make(map[string]bool)
	for _, match := range macroRefRegex.FindAllStringSubmatch(text, -1) {
		name := match[1]
		if m.names[name] || seen[name] || isReservedWord(name) {
			continue
		}
		if _, ok := months[name]; ok {
			continue
		}
		if _, err := strconv.Atoi(name); err == nil {
			continue
		}
		seen[name] = true
		fmt.Fprintf(&b, "@string{%s = {%s}}\n", name, name)
	}
	return b.String()
}

// isReservedWord reports names the scanner reads as entry types.
func isReservedWord(name string) bool {
	switch strings.ToLower(name) {
	case "comment", "string", "preamble":
		return true
	}
	return false
}

// parseChunk runs the standard parser over a single entry.
func parseChunk(c Chunk, m macros) (*nbib.BibEntry, error) {
	if !bareKeyRegex.MatchString(c.Key) {
		return nil, fmt.Errorf("citation key %q is not supported: keys may only contain ASCII letters, digits and -_:./+", c.Key)
	}

	body := escapeAtSigns(entryText(c.Text))
	text := m.defs + m.undefined(m.defs+body) + body

	bib, err := parseText(text)
	if err != nil {
		return nil, err
	}
	if len(bib.Entries) != 1 {
		return nil, fmt.Errorf("parsed %d entries, want 1", len(bib.Entries))
	}
	return bib.Entries[0], nil
}

// parseText calls the standard parser with its shared state reset.
func parseText(text string) (bib *nbib.BibTex, err error) {
	parseMu.Lock()
	defer parseMu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			bib, err = nil, fmt.Errorf("parser panic: %v", r)
		}
	}()

	resetScanner()
	return nbib.Parse(strings.NewReader(text))
}

// resetScanner clears the scanner's field flag, which stays set when a parse
// fails inside a field value. Scanning a lone comma clears it.
func resetScanner() {
	_, _ = nbib.Parse(strings.NewReader(","))
}

// entryText cuts an entry chunk at the brace that closes the entry, dropping
// any trailing text. An unbalanced chunk is returned whole.
func entryText(chunk string) string {
	open := strings.IndexByte(chunk, '{')
	if open < 0 {
		return chunk
	}

	depth := 0
	for i := open; i < len(chunk); i++ {
		switch chunk[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return chunk[:i+1]
			}
		}
	}
	return chunk
}

// escapeAtSigns escapes every unescaped @ after the entry header so the
// scanner reads it as text inside a value.
func escapeAtSigns(entry string) string {
	open := strings.IndexByte(entry, '{')
	if open < 0 || !strings.Contains(entry[open:], "@") {
		return entry
	}

	var b strings.Builder
	b.WriteString(entry[:open])
	for i := open; i < len(entry); i++ {
		if entry[i] == '@' && entry[i-1] != '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(entry[i])
	}
	return b.String()
}
