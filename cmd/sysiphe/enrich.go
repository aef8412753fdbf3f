package main

import (
	"fmt"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
)

// Run executes the enrich command.
func (c *EnrichCmd) Run(deps *Dependencies) error {
	result, err := deps.Enricher.Run(deps.Ctx, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sysiphe.ErrorMessage(err))
		return err
	}

	if result.Processed == 0 {
		fmt.Fprintln(deps.Stdout, "Nothing to do. Use 'sysiphe import' to add company records.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Processed %d targets\n", result.Processed)
	for _, status := range []sysiphe.Status{
		sysiphe.StatusFound, sysiphe.StatusNoDomain,
		sysiphe.StatusNoEmail, sysiphe.StatusSearchError,
	} {
		if n := result.Counts[status]; n > 0 {
			fmt.Fprintf(deps.Stdout, "  %-16s %d\n", status, n)
		}
	}
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "  %-16s %d\n", "persist_failed", result.Failed)
	}
	return nil
}
