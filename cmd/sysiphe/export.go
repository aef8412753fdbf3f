package main

import (
	"fmt"
	"io"
	"os"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
	"github.com/Holyblitz/Sysiphe-v2/csv"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	filter := sysiphe.OutcomeFilter{Limit: c.Limit}
	if c.Status != "" {
		status := sysiphe.Status(c.Status)
		if !status.Terminal() {
			err := sysiphe.Errorf(sysiphe.EINVALID, "unknown status %q", c.Status)
			fmt.Fprintf(deps.Stderr, "error: %s\n", sysiphe.ErrorMessage(err))
			return err
		}
		filter.Status = &status
	}

	outcomes, err := deps.Targets.FindOutcomes(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sysiphe.ErrorMessage(err))
		return err
	}

	names := make(map[string]string, len(outcomes))
	for _, o := range outcomes {
		target, err := deps.Targets.FindTargetByID(deps.Ctx, o.TargetID)
		if err != nil {
			continue
		}
		names[o.TargetID] = target.Name
	}

	var out io.Writer = deps.Stdout
	if c.File != "" {
		f, err := os.Create(c.File)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: cannot create %q: %s\n", c.File, err)
			return err
		}
		defer f.Close()
		out = f
	}
	return csv.WriteContacts(out, outcomes, names)
}
