// Package linkcheck verifies that the links shown for each publication resolve.
package linkcheck

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/homepage/pubs/internal/enrich"
)

const (
	// DefaultRate is the default number of remote checks per second.
	DefaultRate = 5.0

	// DefaultTimeout is the default timeout for one remote check.
	DefaultTimeout = 10 * time.Second
)

// Result is the outcome of checking one link.
type Result struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	URL    string `json:"url"`
	OK     bool   `json:"ok"`
	Status int    `json:"status,omitempty"` // HTTP status for remote links
	Pages  int    `json:"pages,omitempty"`  // Page count for local PDFs
	Reason string `json:"reason,omitempty"` // Why the link failed
}

// Checker checks links against the network and a local site root.
type Checker struct {
	client   *resty.Client
	limiter  *rate.Limiter
	siteRoot string
}

// Option configures a Checker.
type Option func(*Checker)

// WithClient sets the HTTP client used for remote links.
func WithClient(c *resty.Client) Option {
	return func(ch *Checker) {
		ch.client = c
	}
}

// WithRate sets the number of remote checks per second.
func WithRate(perSecond float64) Option {
	return func(ch *Checker) {
		ch.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// NewChecker creates a checker that resolves site-relative links under siteRoot.
func NewChecker(siteRoot string, opts ...Option) *Checker {
	c := &Checker{
		client:   resty.New().SetTimeout(DefaultTimeout),
		limiter:  rate.NewLimiter(rate.Limit(DefaultRate), 1),
		siteRoot: siteRoot,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckPublication checks every link of a publication in order.
func (c *Checker) CheckPublication(ctx context.Context, p enrich.Publication) []Result {
	results := make([]Result, 0, len(p.Links))
	for _, link := range p.Links {
		r := c.CheckLink(ctx, link)
		r.ID = p.ID
		results = append(results, r)
	}
	return results
}

// CheckLink checks a single link. Remote links get a HEAD request (falling
// back to GET when HEAD is refused); everything else is treated as a path
// under the site root.
func (c *Checker) CheckLink(ctx context.Context, link enrich.Link) Result {
	r := Result{Label: link.Label, URL: link.URL}

	if link.Label == enrich.LabelDOI {
		doi := strings.TrimPrefix(link.URL, enrich.DOIResolver)
		if !isValidDOI(doi) {
			r.Reason = fmt.Sprintf("malformed DOI: %s", doi)
			return r
		}
	}

	if isRemote(link.URL) {
		return c.checkRemote(ctx, r)
	}
	return c.checkLocal(r)
}

func isRemote(url string) bool {
	lower := strings.ToLower(url)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func (c *Checker) checkRemote(ctx context.Context, r Result) Result {
	if err := c.limiter.Wait(ctx); err != nil {
		r.Reason = err.Error()
		return r
	}

	resp, err := c.client.R().SetContext(ctx).Head(r.URL)
	if err == nil && (resp.StatusCode() == http.StatusMethodNotAllowed || resp.StatusCode() == http.StatusNotImplemented) {
		if err := c.limiter.Wait(ctx); err != nil {
			r.Reason = err.Error()
			return r
		}
		resp, err = c.client.R().SetContext(ctx).SetDoNotParseResponse(true).Get(r.URL)
		if err == nil {
			resp.RawBody().Close()
		}
	}
	if err != nil {
		r.Reason = err.Error()
		return r
	}

	r.Status = resp.StatusCode()
	if r.Status >= 400 {
		r.Reason = fmt.Sprintf("HTTP %d", r.Status)
		return r
	}
	r.OK = true
	return r
}

func (c *Checker) checkLocal(r Result) Result {
	path := c.localPath(r.URL)

	info, err := os.Stat(path)
	if err != nil {
		r.Reason = fmt.Sprintf("missing file: %s", path)
		return r
	}
	if info.IsDir() {
		r.Reason = fmt.Sprintf("is a directory: %s", path)
		return r
	}

	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		pages, err := PageCount(path)
		if err != nil {
			r.Reason = fmt.Sprintf("unreadable PDF: %v", err)
			return r
		}
		if pages < 1 {
			r.Reason = "PDF has no pages"
			return r
		}
		r.Pages = pages
	}

	r.OK = true
	return r
}

// localPath maps a site-relative link onto the filesystem.
func (c *Checker) localPath(link string) string {
	link = strings.TrimPrefix(link, "/")
	return filepath.Join(c.siteRoot, filepath.FromSlash(link))
}

// Problems returns the failed results.
func Problems(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.OK {
			out = append(out, r)
		}
	}
	return out
}
