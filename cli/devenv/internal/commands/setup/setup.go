// Package setup implements init, the first-time bootstrap of a checkout.
package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"devenv/cli/devenv/internal/cmdregistry"
	"devenv/cli/devenv/internal/commands/database"
	"devenv/cli/devenv/internal/commands/deps"
	"devenv/cli/devenv/internal/prereq"
)

// Register adds the init command to the registry.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Command{
		Name:        "init",
		Description: "Initialize the environment (env file, images, deps, migrations)",
		Handler:     handle,
	})
}

func handle(ctx context.Context, c *cmdregistry.Context) error {
	if err := c.Checker.Gate(ctx, prereq.Full(c.Checks), prereq.Verbose); err != nil {
		return err
	}
	if err := ensureEnvFile(c); err != nil {
		return err
	}
	if err := c.Runner.Compose(ctx, "build"); err != nil {
		return err
	}
	if err := c.Runner.Compose(ctx, "up", "-d"); err != nil {
		return err
	}
	if err := deps.Update(ctx, c); err != nil {
		return err
	}
	if err := database.Migrate(ctx, c, nil); err != nil {
		return err
	}
	fmt.Fprintln(c.Out, "Environment initialized.")
	return nil
}

// ensureEnvFile copies the example env file when the project has none.
func ensureEnvFile(c *cmdregistry.Context) error {
	dst, src := c.Paths.EnvFile, c.Paths.EnvExample
	if _, err := os.Stat(dst); err == nil {
		return nil
	}
	if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) {
		log.WithField("path", src).Debug("no env example to copy")
		return nil
	}
	if c.Runner.DryRun {
		fmt.Fprintf(c.Out, "+ cp %s %s\n", src, dst)
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	fmt.Fprintf(c.Out, "Created %s from %s\n", dst, src)
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
