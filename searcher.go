package sysiphe

import "context"

// Searcher submits a query to an external search provider and returns an
// ordered list of result URLs, best match first.
//
// Provider-specific blocking signals (rate limiting, consent or CAPTCHA
// interstitials) degrade to an empty result list with a nil error; errors
// are reserved for transport and provider failures.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]string, error)
}
