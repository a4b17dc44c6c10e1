// Package source fetches raw bibliography text from a file or URL.
package source

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout bounds a single HTTP fetch.
const DefaultTimeout = 30 * time.Second

// Source is a bibliography location. It satisfies enrich.Fetcher.
type Source struct {
	location string
	client   *resty.Client
}

// Option configures a Source.
type Option func(*Source)

// WithClient sets the HTTP client used for URL sources.
func WithClient(c *resty.Client) Option {
	return func(s *Source) {
		s.client = c
	}
}

// New returns a source for location, which is either a file path or an
// http(s) URL.
func New(location string, opts ...Option) *Source {
	s := &Source{location: location}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil && s.IsRemote() {
		s.client = NewHTTPClient(DefaultTimeout)
	}
	return s
}

// NewHTTPClient returns a client that retries transient failures.
func NewHTTPClient(timeout time.Duration) *resty.Client {
	return resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r != nil && (r.StatusCode() >= 500 || r.StatusCode() == 429)
		})
}

// Location returns the configured path or URL.
func (s *Source) Location() string {
	return s.location
}

// IsRemote reports whether the source is an http(s) URL.
func (s *Source) IsRemote() bool {
	return IsURL(s.location)
}

// IsURL reports whether location is an http(s) URL.
func IsURL(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Fetch returns the full source text. Failures are returned as *FetchError.
func (s *Source) Fetch(ctx context.Context) (string, error) {
	if s.IsRemote() {
		return s.fetchURL(ctx)
	}
	return s.fetchFile()
}

func (s *Source) fetchFile() (string, error) {
	data, err := os.ReadFile(s.location)
	if err != nil {
		return "", &FetchError{Location: s.location, Err: err}
	}
	return string(data), nil
}

func (s *Source) fetchURL(ctx context.Context) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain, application/x-bibtex, */*").
		Get(s.location)
	if err != nil {
		return "", &FetchError{Location: s.location, Err: err}
	}
	if resp.IsError() {
		return "", &FetchError{Location: s.location, StatusCode: resp.StatusCode()}
	}
	return string(resp.Body()), nil
}
