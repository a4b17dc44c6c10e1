package source

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrFetch indicates the bibliography source could not be obtained.
var ErrFetch = errors.New("fetching bibliography source")

// FetchError describes a failed fetch.
type FetchError struct {
	Location   string
	StatusCode int // HTTP status, 0 for file sources and transport errors
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: HTTP %d", e.Location, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.Location, e.Err)
}

// Unwrap lets errors.Is match both ErrFetch and the underlying cause.
func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFetch}
	}
	return []error{ErrFetch, e.Err}
}

// IsNotFound returns true if the source does not exist (missing file or HTTP 404).
func IsNotFound(err error) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		if fe.StatusCode == 404 {
			return true
		}
		return errors.Is(fe.Err, fs.ErrNotExist)
	}
	return false
}
