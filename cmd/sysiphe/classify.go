package main

import (
	"fmt"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
)

// Run executes the classify command.
func (c *ClassifyCmd) Run(deps *Dependencies) error {
	found := sysiphe.StatusFound
	outcomes, err := deps.Targets.FindOutcomes(deps.Ctx, sysiphe.OutcomeFilter{
		Status: &found,
		Limit:  c.Limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sysiphe.ErrorMessage(err))
		return err
	}

	if len(outcomes) == 0 {
		fmt.Fprintln(deps.Stdout, "No found contacts. Use 'sysiphe enrich' first.")
		return nil
	}

	for _, o := range outcomes {
		target, err := deps.Targets.FindTargetByID(deps.Ctx, o.TargetID)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: target %s: %s\n", o.TargetID, sysiphe.ErrorMessage(err))
			continue
		}

		verdict, err := deps.Classifier.Classify(deps.Ctx, target, o)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: classify %q: %s\n", target.Name, sysiphe.ErrorMessage(err))
			continue
		}

		mark := "relevant"
		if !verdict.Relevant {
			mark = "irrelevant"
		}
		fmt.Fprintf(deps.Stdout, "%-10s %s  %s  %s\n", mark, target.Name, o.Email, verdict.Rationale)
	}
	return nil
}
