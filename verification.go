package sysiphe

import "time"

// Reachability is the tri-state result of an HTTP probe against a domain.
type Reachability int

// Reachability states. Unknown means the domain was never probed.
const (
	ReachabilityUnknown Reachability = iota
	Reachable
	Unreachable
)

// String returns a short label for audit notes.
func (r Reachability) String() string {
	switch r {
	case Reachable:
		return "reachable"
	case Unreachable:
		return "unreachable"
	}
	return "unknown"
}

// Verification records the result of checking one candidate domain.
// A domain is verified when it has at least one mail-exchange host;
// reachability is an independent confidence signal, not a gate.
type Verification struct {
	Domain       string
	MXHosts      []string // ordered by MX preference; empty means no mail routing
	Reachability Reachability
	CheckedAt    time.Time
}

// Verified reports whether the domain resolved mail routing.
func (v *Verification) Verified() bool {
	return len(v.MXHosts) > 0
}
