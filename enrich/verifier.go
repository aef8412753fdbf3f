// Package enrich orchestrates the contact discovery pipeline: domain
// verification, page harvesting, search fallback and outcome persistence.
package enrich

import (
	"context"
	"net/http"
	"sync"
	"time"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
)

// Verifier decides whether a candidate domain is real and worth
// harvesting. Results are memoized for the lifetime of the Verifier, so a
// batch never checks the same domain twice no matter how many candidate
// paths reach it.
type Verifier struct {
	resolver sysiphe.Resolver
	fetcher  sysiphe.Fetcher
	limiter  *DomainLimiter

	mu    sync.Mutex
	cache map[string]*entry
}

type entry struct {
	once sync.Once
	v    *sysiphe.Verification
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier)

// WithDomainLimiter attaches a per-domain rate limiter applied before
// every DNS or HTTP check.
func WithDomainLimiter(l *DomainLimiter) VerifierOption {
	return func(v *Verifier) {
		v.limiter = l
	}
}

// NewVerifier creates a Verifier using the given DNS and HTTP capabilities.
func NewVerifier(resolver sysiphe.Resolver, fetcher sysiphe.Fetcher, opts ...VerifierOption) *Verifier {
	v := &Verifier{
		resolver: resolver,
		fetcher:  fetcher,
		cache:    make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify checks the domain's mail routing and, when routing exists, its
// HTTP reachability. Resolver failures mean "no mail routing", never a
// fatal error. The result is cached for the run.
func (v *Verifier) Verify(ctx context.Context, domain string) *sysiphe.Verification {
	v.mu.Lock()
	e, ok := v.cache[domain]
	if !ok {
		e = &entry{}
		v.cache[domain] = e
	}
	v.mu.Unlock()

	e.once.Do(func() {
		e.v = v.check(ctx, domain)
	})
	return e.v
}

// FirstVerified probes candidates in order and returns the verification of
// the first domain with mail routing. Remaining candidates are not probed.
func (v *Verifier) FirstVerified(ctx context.Context, candidates []sysiphe.DomainCandidate) *sysiphe.Verification {
	for _, c := range candidates {
		if ctx.Err() != nil {
			return nil
		}
		if ver := v.Verify(ctx, c.Domain()); ver != nil && ver.Verified() {
			return ver
		}
	}
	return nil
}

func (v *Verifier) check(ctx context.Context, domain string) *sysiphe.Verification {
	ver := &sysiphe.Verification{
		Domain:    domain,
		CheckedAt: time.Now().UTC(),
	}

	if v.limiter != nil {
		if err := v.limiter.Wait(ctx, domain); err != nil {
			return ver
		}
	}

	hosts, err := v.resolver.LookupMX(ctx, domain)
	if err != nil || len(hosts) == 0 {
		// No mail routing; not worth an HTTP probe.
		return ver
	}
	ver.MXHosts = hosts
	ver.Reachability = v.probe(ctx, domain)
	return ver
}

// probe issues a lightweight GET against the bare domain, HTTPS first then
// HTTP; the first response below the server-error threshold wins.
func (v *Verifier) probe(ctx context.Context, domain string) sysiphe.Reachability {
	for _, scheme := range []string{"https://", "http://"} {
		resp, err := v.fetcher.Fetch(ctx, scheme+domain)
		if err != nil {
			continue
		}
		if resp.StatusCode < http.StatusInternalServerError {
			return sysiphe.Reachable
		}
	}
	return sysiphe.Unreachable
}
