package bibtex

import (
	"regexp"
	"strings"
)

// Field assignment at the start of a line: name =
var assignmentRegex = regexp.MustCompile(`^\s*([a-zA-Z_][a-zA-Z0-9_-]*)\s*=`)

// Redact removes every line of raw that assigns one of the excluded fields.
// Matching is case-insensitive. All other lines, including continuation
// lines, the entry header and the closing brace, are kept verbatim.
func Redact(raw string, exclude []string) string {
	if len(exclude) == 0 {
		return raw
	}

	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[strings.ToLower(name)] = true
	}

	lines := strings.Split(raw, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if m := assignmentRegex.FindStringSubmatch(line); m != nil && excluded[strings.ToLower(m[1])] {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
