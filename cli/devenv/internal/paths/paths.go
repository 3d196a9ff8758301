package paths

import (
	"os"
	"path/filepath"
	"strings"

	"devenv/cli/devenv/internal/config"
)

const (
	// EnvFile is the dotenv file sourced before every command.
	EnvFile = ".env"
	// EnvExample is copied to EnvFile by init when EnvFile is missing.
	EnvExample = ".env.example"
)

// Project holds absolute paths of files the actions read or write.
type Project struct {
	Root        string
	EnvFile     string
	EnvExample  string
	Manifest    string
	LocalConfig string
	ProfilesDir string
	CacheFile   string
	SSHDir      string
}

// Resolve anchors every configured path at root. sshDir overrides the
// default ~/.ssh when non-empty.
func Resolve(root string, cfg config.ProjectConfig, sshDir string) Project {
	return Project{
		Root:        root,
		EnvFile:     filepath.Join(root, EnvFile),
		EnvExample:  filepath.Join(root, EnvExample),
		Manifest:    anchor(root, cfg.Deps.Manifest),
		LocalConfig: anchor(root, cfg.LocalConfig.Path),
		ProfilesDir: anchor(root, cfg.LocalConfig.ProfilesDir),
		CacheFile:   anchor(root, cfg.Deps.CacheFile),
		SSHDir:      SSHDir(sshDir),
	}
}

// SSHDir returns override when set, otherwise ~/.ssh.
func SSHDir(override string) string {
	if v := strings.TrimSpace(override); v != "" {
		return expandHome(v)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".ssh")
	}
	return ".ssh"
}

// ProfilePath returns the file a named profile lives in.
func (p Project) ProfilePath(name string) string {
	return filepath.Join(p.ProfilesDir, name+".yaml")
}

func anchor(root, p string) string {
	p = expandHome(strings.TrimSpace(p))
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
