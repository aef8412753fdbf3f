package sysiphe

import "context"

// Resolver performs mail-exchange DNS lookups.
// Implementations must bound the lookup with a timeout. A lookup failure
// (NXDOMAIN, timeout, no MX record) is returned as an error; callers treat
// it as "no mail routing", never as a fatal condition.
type Resolver interface {
	LookupMX(ctx context.Context, domain string) ([]string, error)
}
