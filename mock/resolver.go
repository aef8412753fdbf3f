package mock

import (
	"context"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
)

var _ sysiphe.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of sysiphe.Resolver.
type Resolver struct {
	LookupMXFn func(ctx context.Context, domain string) ([]string, error)
}

func (r *Resolver) LookupMX(ctx context.Context, domain string) ([]string, error) {
	return r.LookupMXFn(ctx, domain)
}
