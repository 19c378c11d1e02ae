// Package feeds fetches raw publication records from the upstream APIs:
// ORCID, PubMed (E-utilities), Scopus, CrossRef, plus a Google Scholar
// profile scrape. Fetches run sequentially, one source at a time;
// throughput is bounded by the upstream rate limits, not local compute.
package feeds

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethgrid/pester"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 60 * time.Second

// Doer abstracts https://pkg.go.dev/net/http#Client.Do.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// NewClient returns a retrying HTTP client with exponential backoff.
func NewClient(maxRetries int, timeout time.Duration) *pester.Client {
	client := pester.New()
	client.Backoff = pester.ExponentialBackoff
	if maxRetries > 0 {
		client.MaxRetries = maxRetries
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	client.Timeout = timeout
	return client
}

// hashString returns a hex-encoded hash of a string, used for cache file
// names derived from DOIs, which contain slashes.
func hashString(s string) string {
	h := sha1.New()
	_, _ = io.WriteString(h, s)
	return fmt.Sprintf("%x", h.Sum(nil))
}
