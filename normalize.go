package sysiphe

import (
	"regexp"
	"sort"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^A-Z0-9 ]`)

// Normalizer strips legal-entity boilerplate and punctuation from a company
// name, producing a canonical lowercase token sequence. Normalization is a
// pure, deterministic function of the input string.
type Normalizer struct {
	terms []*regexp.Regexp
}

// NewNormalizer creates a Normalizer that removes the given legal-entity
// terms, matched as whole words, case-insensitively, anywhere in the name.
func NewNormalizer(legalTerms []string) *Normalizer {
	// Longer terms first so "PTY LTD" is removed as a unit before "PTY".
	sorted := make([]string, len(legalTerms))
	copy(sorted, legalTerms)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	terms := make([]*regexp.Regexp, 0, len(sorted))
	for _, t := range sorted {
		terms = append(terms, regexp.MustCompile(`\b`+regexp.QuoteMeta(strings.ToUpper(t))+`\b`))
	}
	return &Normalizer{terms: terms}
}

// Tokens normalizes a company name into lowercase tokens. An empty input
// (or a name consisting entirely of legal boilerplate) yields an empty
// slice, which downstream components treat as "not enrichable".
func (n *Normalizer) Tokens(name string) []string {
	s := strings.ToUpper(name)
	for _, re := range n.terms {
		s = re.ReplaceAllString(s, "")
	}
	s = nonAlnum.ReplaceAllString(s, "")
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Fields(s)
}
