package main

import (
	"fmt"
	"strings"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
)

// Run executes the guess command.
func (c *GuessCmd) Run(deps *Dependencies) error {
	normalizer := sysiphe.NewNormalizer(deps.Config.LegalTerms)
	generator := sysiphe.NewGenerator(deps.Config)

	tokens := normalizer.Tokens(c.Name)
	if len(tokens) == 0 {
		fmt.Fprintf(deps.Stderr, "error: %q normalizes to nothing\n", c.Name)
		return sysiphe.Errorf(sysiphe.EINVALID, "name %q normalizes to nothing", c.Name)
	}
	fmt.Fprintf(deps.Stdout, "tokens: %s\n", strings.Join(tokens, " "))

	candidates := generator.Candidates(tokens)
	if len(candidates) == 0 {
		fmt.Fprintln(deps.Stdout, "no candidates: core is too short, too long or too generic")
		return nil
	}
	for _, cand := range candidates {
		fmt.Fprintln(deps.Stdout, cand.Domain())
	}
	return nil
}
