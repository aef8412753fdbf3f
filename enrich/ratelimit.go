package enrich

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DomainLimiter provides per-domain rate limiting using token buckets.
// It creates a separate limiter for each external domain, so concurrent
// workers can hit different sites in parallel while at most one request
// per interval reaches any single site.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter with the given requests per
// second limit. Each domain gets a burst of 1; no bursting allowed.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// Pacer sleeps a randomized politeness interval between external calls.
// The jitter keeps the request cadence from looking automated.
type Pacer struct {
	min, max time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewPacer creates a Pacer sleeping between min and max per call.
// A nil-equivalent pacer (min == max == 0) never sleeps.
func NewPacer(min, max time.Duration) *Pacer {
	if max < min {
		max = min
	}
	return &Pacer{
		min: min,
		max: max,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Sleep blocks for a random duration in [min, max], or until the context
// is canceled.
func (p *Pacer) Sleep(ctx context.Context) error {
	d := p.min
	if span := p.max - p.min; span > 0 {
		p.mu.Lock()
		d += time.Duration(p.rnd.Int63n(int64(span) + 1))
		p.mu.Unlock()
	}
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
