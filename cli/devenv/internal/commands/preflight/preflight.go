package preflight

import (
	"context"
	"fmt"

	"devenv/cli/devenv/internal/cmdregistry"
	"devenv/cli/devenv/internal/prereq"
)

// Register adds the check command to the registry.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Command{Name: "check", Description: "Check host prerequisites", Handler: handle})
}

func handle(ctx context.Context, c *cmdregistry.Context) error {
	rep := c.Checker.Run(ctx, prereq.Full(c.Checks), prereq.Verbose)
	if err := rep.Err(); err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "All %d checks passed.\n", len(rep.Results))
	return nil
}
