// Package deps implements update-deps: reinstall Node and Python
// dependencies in one-off containers and record the manifest hash.
package deps

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	log "github.com/sirupsen/logrus"

	"devenv/cli/devenv/internal/cmdregistry"
	"devenv/cli/devenv/internal/prereq"
	"devenv/cli/devenv/internal/scripts"
)

// Register adds the update-deps command to the registry.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Command{
		Name:        "update-deps",
		Description: "Reinstall npm and pip dependencies",
		Handler:     handle,
	})
}

func handle(ctx context.Context, c *cmdregistry.Context) error {
	if err := c.Checker.Gate(ctx, prereq.Routine(c.Checks), prereq.Silent); err != nil {
		return err
	}
	return Update(ctx, c)
}

// Update installs dependencies and stores the manifest hash on success. A
// missing manifest only skips the hash.
func Update(ctx context.Context, c *cmdregistry.Context) error {
	svc := c.Config.Services
	if err := c.Runner.ComposeRun(ctx, svc.Node, scripts.NpmInstall()...); err != nil {
		return fmt.Errorf("npm install: %w", err)
	}
	if err := c.Runner.ComposeRun(ctx, svc.Python, scripts.PipInstall(c.Config.Deps.Requirements)...); err != nil {
		return fmt.Errorf("pip install: %w", err)
	}
	if c.Runner.DryRun {
		return nil
	}
	if err := c.Cache.Store(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.WithField("manifest", c.Cache.Manifest).Warn("manifest not found; dependency hash not recorded")
			return nil
		}
		return err
	}
	log.WithField("manifest", c.Cache.Manifest).Info("dependencies updated")
	return nil
}
