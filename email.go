package sysiphe

import (
	"regexp"
	"sort"
	"strings"
)

// emailPattern matches localpart@host.tld with a final alphabetic label of
// at least two characters.
var emailPattern = regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@(?:[a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}\b`)

// EmailCandidate is a scored contact address. Ephemeral: candidates exist
// only while scoring one company; the pipeline retains the single best.
type EmailCandidate struct {
	Address    string
	SourceURL  string
	Confidence int
	Reasons    []string
}

// Reason returns the comma-joined audit tags for the candidate.
func (c *EmailCandidate) Reason() string {
	if len(c.Reasons) == 0 {
		return "generic"
	}
	return strings.Join(c.Reasons, ",")
}

// Extractor pulls email-looking strings out of page text, discarding
// template placeholder addresses that site frameworks embed.
type Extractor struct {
	placeholders []string
}

// NewExtractor creates an Extractor filtering the given placeholder markers.
func NewExtractor(placeholders []string) *Extractor {
	lowered := make([]string, len(placeholders))
	for i, p := range placeholders {
		lowered[i] = strings.ToLower(p)
	}
	return &Extractor{placeholders: lowered}
}

// Extract returns every email address found in text, lowercased,
// placeholder-filtered, deduplicated and sorted lexicographically.
func (e *Extractor) Extract(text string) []string {
	seen := make(map[string]struct{})
	for _, m := range emailPattern.FindAllString(text, -1) {
		addr := strings.ToLower(m)
		if e.placeholder(addr) {
			continue
		}
		seen[addr] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for addr := range seen {
		out = append(out, addr)
	}
	sort.Strings(out)
	return out
}

// Valid reports whether a single address matches the extraction syntax and
// is not a placeholder. Used for addresses arriving via mailto links.
func (e *Extractor) Valid(addr string) bool {
	addr = strings.ToLower(strings.TrimSpace(addr))
	return emailPattern.FindString(addr) == addr && addr != "" && !e.placeholder(addr)
}

func (e *Extractor) placeholder(addr string) bool {
	for _, p := range e.placeholders {
		if strings.Contains(addr, p) {
			return true
		}
	}
	return false
}

// ScoreSignals carries the per-company context a score depends on.
type ScoreSignals struct {
	// ExpectedDomain is the company's verified or known domain, if any.
	ExpectedDomain string
	// MXPresent and SiteReachable reflect the verification of the
	// expected domain.
	MXPresent     bool
	SiteReachable bool
	// Tokens is the normalized company name, for the name-affinity bonus.
	Tokens []string
}

// Scorer assigns a 0-100 confidence score to candidate addresses and picks
// the best one. All weights come from configuration; the defaults are
// heuristics, not a contract.
type Scorer struct {
	weights  ScoreWeights
	free     map[string]struct{}
	priority []string
}

// NewScorer creates a Scorer from the pipeline configuration.
func NewScorer(cfg Config) *Scorer {
	free := make(map[string]struct{}, len(cfg.FreeProviders))
	for _, p := range cfg.FreeProviders {
		free[strings.ToLower(p)] = struct{}{}
	}
	return &Scorer{
		weights:  cfg.Weights,
		free:     free,
		priority: cfg.LocalpartPriority,
	}
}

// Score computes the confidence for one address along with the audit tags
// of every rule that fired. The confidence is clamped to [0, 100].
func (s *Scorer) Score(address string, sig ScoreSignals) (int, []string) {
	raw, reasons := s.score(address, sig)
	return clamp(raw), reasons
}

// score returns the unclamped value so Best can still rank candidates that
// would both saturate the confidence cap.
func (s *Scorer) score(address string, sig ScoreSignals) (int, []string) {
	addr := strings.ToLower(strings.TrimSpace(address))
	localpart, domain, _ := strings.Cut(addr, "@")

	score := s.weights.Base
	var reasons []string

	if sig.MXPresent {
		score += s.weights.MXBonus
		reasons = append(reasons, "mx")
	}
	if sig.SiteReachable {
		score += s.weights.ReachableBonus
		reasons = append(reasons, "site_ok")
	}

	if _, ok := s.free[domain]; ok {
		score -= s.weights.FreePenalty
		reasons = append(reasons, "free_provider")
	}

	if expected := NormalizeDomain(sig.ExpectedDomain); expected != "" {
		switch {
		case domain == expected:
			score += s.weights.DomainMatch
			reasons = append(reasons, "domain_match")
		case strings.HasSuffix(domain, "."+expected):
			score += s.weights.SubdomainMatch
			reasons = append(reasons, "subdomain_match")
		default:
			score -= s.weights.DomainMismatch
			reasons = append(reasons, "domain_mismatch")
		}
	}

	for i, lp := range s.priority {
		if localpart == lp {
			bonus := s.weights.LocalpartBase - i*s.weights.LocalpartStep
			if bonus > 0 {
				score += bonus
			}
			reasons = append(reasons, "lp="+lp)
			break
		}
	}

	if core, _, ok := strings.Cut(domain, "."); ok && len(sig.Tokens) > 0 {
		if strings.Contains(core, sig.Tokens[0]) {
			score += s.weights.FirstToken
			reasons = append(reasons, "first_token")
		}
		if len(sig.Tokens) >= 2 && strings.Contains(core, sig.Tokens[1]) {
			score += s.weights.SecondToken
			reasons = append(reasons, "second_token")
		}
	}

	return score, reasons
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Best scores every address and returns the arg-max as an EmailCandidate,
// ties broken by first-seen order. Returns nil for an empty input.
func (s *Scorer) Best(addresses []string, sourceURL string, sig ScoreSignals) *EmailCandidate {
	var best *EmailCandidate
	bestRaw := 0
	for _, addr := range addresses {
		raw, reasons := s.score(addr, sig)
		if best == nil || raw > bestRaw {
			bestRaw = raw
			best = &EmailCandidate{
				Address:    strings.ToLower(strings.TrimSpace(addr)),
				SourceURL:  sourceURL,
				Confidence: clamp(raw),
				Reasons:    reasons,
			}
		}
	}
	return best
}
