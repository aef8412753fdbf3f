package sysiphe

import (
	"context"
	"strings"
)

// Response is the portion of an HTTP response the pipeline cares about.
type Response struct {
	StatusCode  int
	Body        string
	ContentType string
}

// HTML reports whether the response body is worth parsing for contacts.
// An absent Content-Type header is given the benefit of the doubt.
func (r *Response) HTML() bool {
	if r.ContentType == "" {
		return true
	}
	ct := strings.ToLower(r.ContentType)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "text/plain")
}

// Fetcher retrieves pages over HTTP.
// Implementations must enforce a bounded timeout; a non-2xx status is a
// normal response, not an error. Errors are reserved for transport
// failures (connection refused, timeout, DNS failure).
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Response, error)
}
