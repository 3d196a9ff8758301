package composecmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	log "github.com/sirupsen/logrus"

	"devenv/cli/devenv/internal/cmdregistry"
	"devenv/cli/devenv/internal/commands/deps"
	"devenv/cli/devenv/internal/depcache"
	"devenv/cli/devenv/internal/prereq"
)

// Register adds compose lifecycle commands to the registry.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Command{Name: "up", Description: "Start the environment in the background", Handler: handleUp})
	r.Register(cmdregistry.Command{Name: "down", Description: "Stop and remove the environment's containers", Handler: handleDown})
	r.Register(cmdregistry.Command{Name: "build", Description: "Rebuild images (pulls newer base images)", Handler: handleBuild})
	r.Register(cmdregistry.Command{Name: "rebuild-volumes", Description: "Recreate all volumes, discarding their data", Handler: handleRebuildVolumes})
	r.Register(cmdregistry.Command{Name: "status", Description: "Show container status", Handler: handleStatus})
	r.Register(cmdregistry.Command{Name: "logs", Description: "Show container logs (args go to compose logs)", Handler: handleLogs})
}

func handleUp(ctx context.Context, c *cmdregistry.Context) error {
	if err := c.Checker.Gate(ctx, prereq.Routine(c.Checks), prereq.Silent); err != nil {
		return err
	}
	if err := refreshIfStale(ctx, c); err != nil {
		return err
	}
	return c.Runner.Compose(ctx, append([]string{"up", "-d"}, c.Args...)...)
}

// refreshIfStale offers a dependency update when the manifest changed. The
// first run only records the hash. Once asked, the current hash is recorded
// whatever the answer, so an unchanged manifest is not offered again. Dry-run
// writes nothing.
func refreshIfStale(ctx context.Context, c *cmdregistry.Context) error {
	check := c.Cache.Check
	if c.Runner.DryRun {
		check = c.Cache.Peek
	}
	st, err := check()
	if errors.Is(err, fs.ErrNotExist) {
		log.WithField("manifest", c.Cache.Manifest).Warn("manifest not found; skipping dependency check")
		return nil
	}
	if err != nil {
		return err
	}
	log.WithField("state", st).Debug("dependency check")
	if st != depcache.Stale {
		return nil
	}
	ok, err := c.Prompter.Confirm("Dependencies changed since the last install. Update now?", true)
	if err != nil {
		return err
	}
	if ok {
		return deps.Update(ctx, c)
	}
	if c.Runner.DryRun {
		return nil
	}
	log.WithField("manifest", c.Cache.Manifest).Info("dependency update declined; recording current manifest")
	return c.Cache.Store()
}

func handleDown(ctx context.Context, c *cmdregistry.Context) error {
	return c.Runner.Compose(ctx, append([]string{"down"}, c.Args...)...)
}

func handleBuild(ctx context.Context, c *cmdregistry.Context) error {
	if err := c.Checker.Gate(ctx, prereq.Full(c.Checks), prereq.Verbose); err != nil {
		return err
	}
	return c.Runner.Compose(ctx, append([]string{"build", "--pull"}, c.Args...)...)
}

func handleRebuildVolumes(ctx context.Context, c *cmdregistry.Context) error {
	if err := c.Checker.Gate(ctx, prereq.Routine(c.Checks), prereq.Silent); err != nil {
		return err
	}
	ok, err := c.Prompter.Confirm("This deletes every volume of the environment, database data included. Continue?", false)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(c.Out, "Aborted.")
		return nil
	}
	if err := c.Runner.Compose(ctx, "down", "--volumes"); err != nil {
		return err
	}
	return c.Runner.Compose(ctx, "up", "-d")
}

func handleStatus(ctx context.Context, c *cmdregistry.Context) error {
	return c.Runner.Compose(ctx, append([]string{"ps"}, c.Args...)...)
}

func handleLogs(ctx context.Context, c *cmdregistry.Context) error {
	return c.Runner.Compose(ctx, append([]string{"logs"}, c.Args...)...)
}
