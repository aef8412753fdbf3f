package enrich

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
	"github.com/Holyblitz/Sysiphe-v2/bloom"
)

// SearchResult is what the fallback path learned about a company.
type SearchResult struct {
	// Best is the highest-confidence address found, nil if none.
	Best *sysiphe.EmailCandidate
	// Domain is the company domain derived from the first plausible
	// result URL, empty if every result was an aggregator.
	Domain string
	// Query is the provider query, kept for the audit trail.
	Query string
}

// SearchResolver discovers contacts through an external search provider
// when direct domain generation fails. Result pages are fetched up to a
// cap and harvested with the same extraction and filter logic as direct
// scraping.
type SearchResolver struct {
	searcher  sysiphe.Searcher
	fetcher   sysiphe.Fetcher
	extractor *sysiphe.Extractor
	scorer    *sysiphe.Scorer
	verifier  *Verifier

	aggregators    []string
	maxPages       int
	highConfidence int

	seen    *bloom.Filter
	limiter *DomainLimiter
	pacer   *Pacer
}

// SearchOption configures a SearchResolver.
type SearchOption func(*SearchResolver)

// WithSearchVerifier lets the resolver verify a derived domain so the
// scorer can use mail-routing and reachability signals. The verifier's
// cache makes this free when the domain was already checked.
func WithSearchVerifier(v *Verifier) SearchOption {
	return func(r *SearchResolver) {
		r.verifier = v
	}
}

// WithSearchLimiter attaches a per-domain rate limiter for result fetches.
func WithSearchLimiter(l *DomainLimiter) SearchOption {
	return func(r *SearchResolver) {
		r.limiter = l
	}
}

// WithSearchPacer attaches a politeness pacer between result fetches.
func WithSearchPacer(p *Pacer) SearchOption {
	return func(r *SearchResolver) {
		r.pacer = p
	}
}

// WithSeenFilter shares a fetched-URL filter across companies so one batch
// never fetches the same result page twice.
func WithSeenFilter(f *bloom.Filter) SearchOption {
	return func(r *SearchResolver) {
		r.seen = f
	}
}

// NewSearchResolver creates a SearchResolver from the pipeline
// configuration and capabilities.
func NewSearchResolver(searcher sysiphe.Searcher, fetcher sysiphe.Fetcher, extractor *sysiphe.Extractor, scorer *sysiphe.Scorer, cfg sysiphe.Config, opts ...SearchOption) *SearchResolver {
	r := &SearchResolver{
		searcher:       searcher,
		fetcher:        fetcher,
		extractor:      extractor,
		scorer:         scorer,
		aggregators:    cfg.AggregatorHosts,
		maxPages:       cfg.MaxSearchPages,
		highConfidence: cfg.HighConfidence,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BuildQuery constructs the provider query for a target: the quoted name,
// any jurisdiction hints, and "contact email".
func BuildQuery(t *sysiphe.Target) string {
	parts := []string{fmt.Sprintf("%q", strings.TrimSpace(t.Name))}
	if t.State != "" {
		parts = append(parts, t.State)
	}
	if t.Postcode != "" {
		parts = append(parts, t.Postcode)
	}
	parts = append(parts, "contact email")
	return strings.Join(parts, " ")
}

// Resolve searches for the target and harvests emails from the result
// pages. An empty result set is a normal outcome; only provider transport
// failures return an error.
func (r *SearchResolver) Resolve(ctx context.Context, t *sysiphe.Target, tokens []string) (*SearchResult, error) {
	return r.resolve(ctx, t, tokens, "")
}

// ResolveForDomain is Resolve for a company whose domain is already
// verified but whose site cannot be scraped directly; the known domain
// anchors the scoring instead of one derived from results.
func (r *SearchResolver) ResolveForDomain(ctx context.Context, t *sysiphe.Target, tokens []string, domain string) (*SearchResult, error) {
	return r.resolve(ctx, t, tokens, domain)
}

func (r *SearchResolver) resolve(ctx context.Context, t *sysiphe.Target, tokens []string, expected string) (*SearchResult, error) {
	result := &SearchResult{Query: BuildQuery(t)}

	// Ask for a few extra results; some will be aggregators or dupes.
	urls, err := r.searcher.Search(ctx, result.Query, r.maxPages+2)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return result, nil
	}

	if expected != "" {
		result.Domain = expected
	} else {
		result.Domain = r.deriveDomain(urls)
	}

	sig := sysiphe.ScoreSignals{
		ExpectedDomain: result.Domain,
		Tokens:         tokens,
	}
	if result.Domain != "" && r.verifier != nil {
		if ver := r.verifier.Verify(ctx, result.Domain); ver != nil {
			sig.MXPresent = ver.Verified()
			sig.SiteReachable = ver.Reachability == sysiphe.Reachable
		}
	}

	fetched := 0
	for _, u := range urls {
		if ctx.Err() != nil || fetched >= r.maxPages {
			break
		}
		if r.seen != nil && r.seen.Seen(u) {
			continue
		}
		fetched++

		body, ok := r.fetchPage(ctx, u)
		if !ok {
			continue
		}

		emails := r.extractor.Extract(body)
		if len(emails) == 0 {
			continue
		}

		candidate := r.scorer.Best(emails, u, sig)
		if candidate == nil {
			continue
		}
		if result.Best == nil || candidate.Confidence > result.Best.Confidence {
			result.Best = candidate
		}
		if result.Best.Confidence >= r.highConfidence {
			break
		}
	}
	return result, nil
}

// deriveDomain returns the first result host that looks like a company's
// own site rather than a search engine, social platform or directory.
func (r *SearchResolver) deriveDomain(urls []string) string {
	for _, u := range urls {
		dom := sysiphe.NormalizeDomain(u)
		if dom == "" || !strings.Contains(dom, ".") {
			continue
		}
		if r.aggregator(dom) {
			continue
		}
		return dom
	}
	return ""
}

func (r *SearchResolver) aggregator(domain string) bool {
	for _, a := range r.aggregators {
		if strings.Contains(domain, a) {
			return true
		}
	}
	return false
}

func (r *SearchResolver) fetchPage(ctx context.Context, pageURL string) (string, bool) {
	host := sysiphe.NormalizeDomain(pageURL)
	if r.limiter != nil && host != "" {
		if err := r.limiter.Wait(ctx, host); err != nil {
			return "", false
		}
	}
	if r.pacer != nil {
		if err := r.pacer.Sleep(ctx); err != nil {
			return "", false
		}
	}

	resp, err := r.fetcher.Fetch(ctx, pageURL)
	if err != nil || resp.StatusCode >= http.StatusBadRequest || !resp.HTML() {
		return "", false
	}
	return resp.Body, true
}
