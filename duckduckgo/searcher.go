// Package duckduckgo provides a search capability backed by DuckDuckGo's
// HTML endpoint. No API key required, but the endpoint rate-limits and may
// serve interstitials; blocking degrades to zero results by design.
package duckduckgo

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	sysiphe "github.com/Holyblitz/Sysiphe-v2"
)

const endpoint = "https://html.duckduckgo.com/html/"

// blockMarkers are body fragments that indicate a consent or CAPTCHA
// interstitial rather than a result page.
var blockMarkers = []string{
	"unusual traffic",
	"our systems have detected",
	"consent.google",
}

// Ensure Searcher implements sysiphe.Searcher at compile time.
var _ sysiphe.Searcher = (*Searcher)(nil)

// Searcher queries the DuckDuckGo HTML endpoint and scrapes result links.
type Searcher struct {
	fetcher sysiphe.Fetcher
	base    string
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithEndpoint overrides the endpoint URL. Used in tests.
func WithEndpoint(base string) Option {
	return func(s *Searcher) {
		s.base = base
	}
}

// NewSearcher creates a Searcher that fetches result pages through the
// given fetcher, so it shares the pipeline's timeout and User-Agent.
func NewSearcher(fetcher sysiphe.Fetcher, opts ...Option) *Searcher {
	s := &Searcher{fetcher: fetcher, base: endpoint}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search returns up to maxResults result URLs for the query.
// Rate limiting (403/429), interstitial pages and any non-200 status are
// treated as "no results", never as an error.
func (s *Searcher) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	resp, err := s.fetcher.Fetch(ctx, s.base+"?q="+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	lower := strings.ToLower(resp.Body)
	for _, marker := range blockMarkers {
		if strings.Contains(lower, marker) {
			return nil, nil
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.Body))
	if err != nil {
		return nil, sysiphe.Errorf(sysiphe.EINVALID, "duckduckgo: unparseable result page: %v", err)
	}

	var urls []string
	doc.Find("a.result__a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return true
		}
		if resolved := resolveResult(href); resolved != "" {
			urls = append(urls, resolved)
		}
		return maxResults <= 0 || len(urls) < maxResults
	})
	return urls, nil
}

// resolveResult unwraps DuckDuckGo's redirect links, which carry the real
// destination in a "uddg" query parameter.
func resolveResult(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if uddg := u.Query().Get("uddg"); uddg != "" {
		return uddg
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		return href
	}
	return ""
}
