package reference

import "strings"

// Author is a CSL name.
type Author struct {
	Given  string `json:"given,omitempty"`  // Given name(s)
	Family string `json:"family,omitempty"` // Family name
}

// DisplayName formats an author as "Given Family", skipping empty parts.
func (a Author) DisplayName() string {
	var parts []string
	if a.Given != "" {
		parts = append(parts, a.Given)
	}
	if a.Family != "" {
		parts = append(parts, a.Family)
	}
	return strings.Join(parts, " ")
}
