// Package http provides the HTTP fetch capability used by domain probing,
// page harvesting and search-result fetching.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// maxBodyBytes caps how much of a response body is read. Contact pages are
// small; anything larger is not worth scanning for addresses.
const maxBodyBytes = 2 << 20

// Ensure Fetcher implements sysiphe.Fetcher at compile time.
var _ sysiphe.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages using net/http. It follows redirects, sends a
// configurable User-Agent, and treats non-2xx statuses as normal responses;
// only transport failures surface as errors.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithClient replaces the underlying HTTP client, letting callers share a
// connection pool across fetchers. The client must not carry per-call
// state such as cookies between unrelated requests.
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = &http.Client{Timeout: f.timeout}
	}
	return f
}

// Fetch retrieves the page at the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*sysiphe.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}

	return &sysiphe.Response{
		StatusCode:  resp.StatusCode,
		Body:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
