package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"devenv/cli/devenv/internal/config"
	"devenv/cli/devenv/internal/hostprofile"
	"devenv/cli/devenv/internal/paths"
)

// Project is a temporary project tree where every prerequisite holds.
type Project struct {
	t       *testing.T
	Root    string
	Config  config.ProjectConfig
	Paths   paths.Project
	Profile hostprofile.Profile
	Env     map[string]string
}

// NewProject writes a package.json, an SSH key, a hosts file with the
// default aliases and a local config linked to the "dev" profile.
func NewProject(t *testing.T) *Project {
	t.Helper()
	root := t.TempDir()
	cfg := config.Defaults()
	cfg.Project = "shop"
	sshDir := filepath.Join(root, "ssh")
	p := &Project{
		t:      t,
		Root:   root,
		Config: cfg,
		Paths:  paths.Resolve(root, cfg, sshDir),
		Env:    map[string]string{"DEVENV_USER": "dev"},
	}
	p.Profile = hostprofile.New("linux", "", func(k string) string { return p.Env[k] }, nil)
	p.Profile.HostsPath = filepath.Join(root, "hosts")

	p.Write("package.json", `{"name":"shop","dependencies":{}}`)
	p.Write(filepath.Join("ssh", cfg.SSH.Key), "PRIVATE KEY")
	p.Write("hosts", "127.0.0.1 localhost\n127.0.0.1 devenv.test api.devenv.test\n")
	p.Write(filepath.Join("config", "profiles", "dev.yaml"), "debug: true\n")
	p.Write(filepath.Join("config", "profiles", "staging.yaml"), "debug: false\n")
	if err := os.Symlink(filepath.Join("profiles", "dev.yaml"), p.Paths.LocalConfig); err != nil {
		t.Fatalf("link local config: %v", err)
	}
	return p
}

// Write creates rel under the project root and returns the absolute path.
func (p *Project) Write(rel, content string) string {
	p.t.Helper()
	path := filepath.Join(p.Root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		p.t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		p.t.Fatalf("write %s: %v", rel, err)
	}
	return path
}

// Remove deletes rel under the project root.
func (p *Project) Remove(rel string) {
	p.t.Helper()
	if err := os.Remove(filepath.Join(p.Root, rel)); err != nil {
		p.t.Fatalf("remove %s: %v", rel, err)
	}
}
