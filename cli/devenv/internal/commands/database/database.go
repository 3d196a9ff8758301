// Package database implements the commands that touch the database service:
// reset-db, migrate and reload-auth.
package database

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"devenv/cli/devenv/internal/cmdregistry"
	"devenv/cli/devenv/internal/prereq"
	"devenv/cli/devenv/internal/scripts"
)

// Register adds database commands to the registry.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Command{Name: "reset-db", Description: "Drop, recreate and migrate the databases", Handler: handleReset})
	r.Register(cmdregistry.Command{Name: "migrate", Description: "Run alembic migrations (default: upgrade head)", Handler: handleMigrate})
	r.Register(cmdregistry.Command{Name: "reload-auth", Description: "Reload auth fixture data", Handler: handleReloadAuth})
}

func handleReset(ctx context.Context, c *cmdregistry.Context) error {
	if err := c.Checker.Gate(ctx, prereq.Routine(c.Checks), prereq.Silent); err != nil {
		return err
	}
	dbs := c.Config.Databases
	if len(dbs) == 0 {
		return fmt.Errorf("no databases configured")
	}
	ok, err := c.Prompter.Confirm(fmt.Sprintf("This drops %s. Continue?", strings.Join(dbs, ", ")), false)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(c.Out, "Aborted.")
		return nil
	}
	db := c.Config.Services.DB
	if err := c.Runner.Compose(ctx, "up", "-d", db); err != nil {
		return err
	}
	for _, argv := range scripts.ResetDatabases(c.Config.DB.User, dbs) {
		if err := c.Runner.ComposeExec(ctx, db, argv...); err != nil {
			return fmt.Errorf("%s: %w", argv[0], err)
		}
	}
	log.WithField("databases", dbs).Info("databases recreated")
	return Migrate(ctx, c, nil)
}

func handleMigrate(ctx context.Context, c *cmdregistry.Context) error {
	if err := c.Checker.Gate(ctx, prereq.Routine(c.Checks), prereq.Silent); err != nil {
		return err
	}
	return Migrate(ctx, c, c.Args)
}

// Migrate runs alembic with args inside the Python service.
func Migrate(ctx context.Context, c *cmdregistry.Context, args []string) error {
	return c.Runner.ComposeExec(ctx, c.Config.Services.Python, scripts.Alembic(args...)...)
}

func handleReloadAuth(ctx context.Context, c *cmdregistry.Context) error {
	if err := c.Checker.Gate(ctx, prereq.Routine(c.Checks), prereq.Silent); err != nil {
		return err
	}
	argv := c.Config.Auth.ReloadCommand
	if len(argv) == 0 {
		return fmt.Errorf("auth.reload_command is not configured")
	}
	return c.Runner.ComposeExec(ctx, c.Config.Services.Auth, append(append([]string{}, argv...), c.Args...)...)
}
