// Package dns provides the mail-exchange lookup capability backed by the
// standard library resolver.
package dns

import (
	"context"
	"net"
	"sort"
	"strings"
	"time"
)

// DefaultLookupTimeout bounds a single MX lookup.
const DefaultLookupTimeout = 5 * time.Second

// Resolver performs MX lookups with a bounded timeout.
type Resolver struct {
	resolver *net.Resolver
	timeout  time.Duration
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTimeout sets the per-lookup timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		r.timeout = d
	}
}

// WithResolver replaces the underlying net.Resolver.
func WithResolver(res *net.Resolver) Option {
	return func(r *Resolver) {
		r.resolver = res
	}
}

// NewResolver creates a new Resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		resolver: net.DefaultResolver,
		timeout:  DefaultLookupTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LookupMX returns the domain's mail-exchange hostnames ordered by MX
// preference, lowercased with the trailing dot trimmed.
func (r *Resolver) LookupMX(ctx context.Context, domain string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	records, err := r.resolver.LookupMX(ctx, domain)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].Pref < records[j].Pref })

	hosts := make([]string, 0, len(records))
	for _, mx := range records {
		host := strings.ToLower(strings.TrimSuffix(mx.Host, "."))
		if host != "" {
			hosts = append(hosts, host)
		}
	}
	return hosts, nil
}
