package main

import (
	"fmt"
	"os"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
	"github.com/Holyblitz/Sysiphe-v2/csv"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot open %q: %s\n", c.File, err)
		return err
	}
	defer f.Close()

	targets, err := csv.ReadTargets(f)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sysiphe.ErrorMessage(err))
		return err
	}

	created := 0
	for _, t := range targets {
		if err := deps.Targets.CreateTarget(deps.Ctx, t); err != nil {
			fmt.Fprintf(deps.Stderr, "error: skipping %q: %s\n", t.Name, sysiphe.ErrorMessage(err))
			continue
		}
		created++
	}

	fmt.Fprintf(deps.Stdout, "Imported %d of %d records\n", created, len(targets))
	return nil
}
