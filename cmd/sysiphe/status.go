package main

import (
	"fmt"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	counts, err := deps.Targets.CountByStatus(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sysiphe.ErrorMessage(err))
		return err
	}

	if len(counts) == 0 {
		fmt.Fprintln(deps.Stdout, "No targets. Use 'sysiphe import' to add company records.")
		return nil
	}

	total := 0
	for _, status := range []sysiphe.Status{
		sysiphe.StatusPending, sysiphe.StatusFound, sysiphe.StatusNoDomain,
		sysiphe.StatusNoEmail, sysiphe.StatusSearchError,
	} {
		if n := counts[status]; n > 0 {
			fmt.Fprintf(deps.Stdout, "%-16s %d\n", status, n)
			total += n
		}
	}
	fmt.Fprintf(deps.Stdout, "%-16s %d\n", "total", total)
	return nil
}
