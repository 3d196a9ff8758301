package hosts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"devenv/cli/devenv/internal/cmdregistry"
	"devenv/cli/devenv/internal/hostsync"
)

// Register adds the hosts command to the command registry.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Command{Name: "hosts", Description: "Print, check or apply the host aliases (print|check|apply)", Handler: handle})
}

func handle(ctx context.Context, c *cmdregistry.Context) error {
	mode := "print"
	if len(c.Args) > 0 {
		mode = strings.TrimSpace(c.Args[0])
	}
	if len(c.Args) > 1 {
		return fmt.Errorf("usage: hosts [print|check|apply]")
	}
	aliases := hostsync.CollectHosts(c.Config.Hosts.Aliases)
	if len(aliases) == 0 {
		fmt.Fprintln(c.Out, "No hosts.aliases configured")
		return nil
	}
	switch mode {
	case "print":
		fmt.Fprint(c.Out, hostsync.RenderManagedBlock(project(c), ip(c), aliases))
		return nil
	case "check":
		return runCheck(c, aliases)
	case "apply":
		return runApply(ctx, c, aliases)
	default:
		return fmt.Errorf("unknown hosts mode %q (want print, check or apply)", mode)
	}
}

func project(c *cmdregistry.Context) string {
	if p := strings.TrimSpace(c.Config.Project); p != "" {
		return p
	}
	return "default"
}

func ip(c *cmdregistry.Context) string {
	if v := strings.TrimSpace(c.Config.Hosts.IP); v != "" {
		return v
	}
	return "127.0.0.1"
}

func runCheck(c *cmdregistry.Context, aliases []string) error {
	path := c.Checks.Profile.HostsPath
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	missing := hostsync.MissingMappings(string(content), ip(c), aliases)
	if len(missing) > 0 {
		return fmt.Errorf("hosts check failed: %s missing mappings: %s", path, strings.Join(missing, ", "))
	}
	fmt.Fprintln(c.Out, "Host mappings are current.")
	return nil
}

func runApply(ctx context.Context, c *cmdregistry.Context, aliases []string) error {
	path := c.Checks.Profile.HostsPath
	existing, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	updated, err := hostsync.UpsertManagedBlock(string(existing), project(c), ip(c), aliases)
	if err != nil {
		return err
	}
	if updated == string(existing) {
		fmt.Fprintf(c.Out, "Host entries already current in %s\n", path)
		return nil
	}
	if err := writeHostsFile(ctx, c, path, []byte(updated)); err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "Applied host entries to %s\n", path)
	return nil
}

var writeFile = os.WriteFile

func writeHostsFile(ctx context.Context, c *cmdregistry.Context, path string, content []byte) error {
	if c.Runner.DryRun {
		fmt.Fprintf(c.Out, "[dry-run] would write %s\n", path)
		return nil
	}
	err := writeFile(path, content, 0o644)
	if err == nil || !errors.Is(err, fs.ErrPermission) {
		return err
	}
	if err := c.Runner.HostInput(ctx, content, "sudo", "tee", path); err != nil {
		return fmt.Errorf("writing %s requires elevated permissions: %w", path, err)
	}
	return nil
}
