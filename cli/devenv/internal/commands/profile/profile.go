// Package profile implements the profile command, which points the local
// configuration file at one of the named profiles.
package profile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"devenv/cli/devenv/internal/cmdregistry"
)

// Register adds the profile command to the registry.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Command{Name: "profile", Description: "List config profiles or link one as the local config", Handler: handle})
}

func handle(_ context.Context, c *cmdregistry.Context) error {
	switch len(c.Args) {
	case 0:
		return list(c)
	case 1:
		return use(c, strings.TrimSpace(c.Args[0]))
	default:
		return fmt.Errorf("usage: profile [NAME]")
	}
}

// Available returns profile names found in dir, sorted.
func Available(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

// Current returns the profile the local config links to, or "" when it is
// missing, not a link, or points outside the profiles dir.
func Current(localConfig, profilesDir string) string {
	target, err := os.Readlink(localConfig)
	if err != nil {
		return ""
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(localConfig), target)
	}
	if filepath.Clean(filepath.Dir(target)) != filepath.Clean(profilesDir) {
		return ""
	}
	return strings.TrimSuffix(filepath.Base(target), ".yaml")
}

func list(c *cmdregistry.Context) error {
	names, err := Available(c.Paths.ProfilesDir)
	if err != nil {
		return fmt.Errorf("list profiles: %w", err)
	}
	cur := Current(c.Paths.LocalConfig, c.Paths.ProfilesDir)
	for _, n := range names {
		mark := " "
		if n == cur {
			mark = "*"
		}
		fmt.Fprintf(c.Out, "%s %s\n", mark, n)
	}
	return nil
}

func use(c *cmdregistry.Context, name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid profile name %q", name)
	}
	target := c.Paths.ProfilePath(name)
	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("profile %s: %w", name, err)
	}
	link := c.Paths.LocalConfig
	if st, err := os.Lstat(link); err == nil && st.Mode()&os.ModeSymlink == 0 {
		return fmt.Errorf("%s is a regular file; move it aside before linking a profile", link)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	rel, err := filepath.Rel(filepath.Dir(link), target)
	if err != nil {
		rel = target
	}
	if c.Runner.DryRun {
		fmt.Fprintf(c.Out, "+ ln -sfn %s %s\n", rel, link)
		return nil
	}
	if err := os.Remove(link); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(link), 0o755); err != nil {
		return err
	}
	if err := os.Symlink(rel, link); err != nil {
		return err
	}
	log.WithFields(log.Fields{"profile": name, "link": link}).Info("local config linked")
	fmt.Fprintf(c.Out, "Local config now uses profile %s\n", name)
	return nil
}
