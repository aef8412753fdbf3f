package sysiphe

import (
	"net/url"
	"strings"
)

// DomainCandidate is a guessed registrable domain, split into the core
// derived from name tokens and the configured suffix appended to it.
type DomainCandidate struct {
	Core   string
	Suffix string
}

// Domain returns the full candidate domain string.
func (c DomainCandidate) Domain() string {
	return c.Core + c.Suffix
}

// NormalizeDomain reduces a URL or loose host string to a bare lowercase
// domain: scheme, userinfo, port, path and a leading "www." are dropped.
// Returns an empty string if no host can be extracted.
func NormalizeDomain(raw string) string {
	s := strings.TrimSpace(strings.ToLower(raw))
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	return strings.TrimPrefix(host, "www.")
}

// Generator produces plausible domain candidates from normalized name
// tokens. It is a pure function of its inputs: the same tokens always
// yield the same candidates in the same order.
type Generator struct {
	suffixes []string
	generic  map[string]struct{}
	minLen   int
	joined   int
	dashed   int
	brand    int
}

// NewGenerator creates a Generator from the pipeline configuration.
func NewGenerator(cfg Config) *Generator {
	generic := make(map[string]struct{}, len(cfg.GenericTokens))
	for _, t := range cfg.GenericTokens {
		generic[strings.ToLower(t)] = struct{}{}
	}
	return &Generator{
		suffixes: cfg.Suffixes,
		generic:  generic,
		minLen:   cfg.CoreMinLen,
		joined:   cfg.JoinedCoreMax,
		dashed:   cfg.DashedCoreMax,
		brand:    cfg.BrandCoreMax,
	}
}

// Candidates generates the candidate domains for the given tokens.
//
// At most three cores are built: all tokens concatenated, all tokens
// hyphenated, and the first two tokens concatenated (the common brand-name
// abbreviation). Cores outside their configured length range are rejected,
// as is a single token from the too-generic set. Each suffix is tried with
// every accepted core, most informative core first, so verification probes
// the most specific guess before the abbreviation.
func (g *Generator) Candidates(tokens []string) []DomainCandidate {
	if len(tokens) == 0 {
		return nil
	}
	if len(tokens) == 1 {
		if _, ok := g.generic[tokens[0]]; ok {
			return nil
		}
	}

	var cores []string
	addCore := func(core string, max int) {
		if len(core) < g.minLen || len(core) > max {
			return
		}
		for _, c := range cores {
			if c == core {
				return
			}
		}
		cores = append(cores, core)
	}

	addCore(strings.Join(tokens, ""), g.joined)
	addCore(strings.Join(tokens, "-"), g.dashed)
	if len(tokens) >= 2 {
		addCore(tokens[0]+tokens[1], g.brand)
	}

	var out []DomainCandidate
	seen := make(map[string]struct{})
	for _, suffix := range g.suffixes {
		for _, core := range cores {
			d := core + suffix
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, DomainCandidate{Core: core, Suffix: suffix})
		}
	}
	return out
}
