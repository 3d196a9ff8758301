package prereq

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"devenv/cli/devenv/internal/config"
	"devenv/cli/devenv/internal/hostprofile"
	"devenv/cli/devenv/internal/hostsync"
	"devenv/cli/devenv/internal/paths"
	"devenv/cli/devenv/internal/runner"
)

// Env is everything the built-in checks look at.
type Env struct {
	Config  config.ProjectConfig
	Paths   paths.Project
	Profile hostprofile.Profile
	Runner  *runner.Runner
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

// SSHKey checks the configured private key exists in the SSH directory.
func SSHKey(e Env) Check {
	key := filepath.Join(e.Paths.SSHDir, e.Config.SSH.Key)
	return Check{
		Label:          "SSH key",
		Predicate:      func(context.Context) bool { return fileExists(key) },
		FailureMessage: fmt.Sprintf("%s not found (set DEVENV_SSH_DIR to use another directory)", key),
	}
}

// Username checks the user name variable, or the host fallback, is set.
func Username(e Env) Check {
	v := e.Config.SSH.UserEnv
	return Check{
		Label:          "Username",
		Predicate:      func(ctx context.Context) bool { return e.Profile.Username(ctx, v) != "" },
		FailureMessage: fmt.Sprintf("%s is not set and no %s user could be found", v, e.Profile.Kind),
	}
}

// Engine checks the container engine binary exists and its daemon answers.
func Engine(e Env) Check {
	engine := e.Config.Compose.Engine
	return Check{
		Label: "Container engine",
		Predicate: func(ctx context.Context) bool {
			return e.Runner.Exec.LookPath(engine) && e.Runner.Succeeds(ctx, engine, "info")
		},
		FailureMessage: fmt.Sprintf("%s is not installed or not running", engine),
	}
}

// Compose checks the compose tool responds.
func Compose(e Env) Check {
	tool := strings.Join(e.Config.Compose.Command, " ")
	return Check{
		Label: "Compose tool",
		Predicate: func(ctx context.Context) bool {
			return e.Runner.Exec.LookPath(e.Config.Compose.Command[0]) && e.Runner.ComposeSucceeds(ctx, "version")
		},
		FailureMessage: fmt.Sprintf("%s is not installed", tool),
	}
}

// HostAliases checks every configured alias is present in the hosts file.
func HostAliases(e Env) Check {
	hostsPath := e.Profile.HostsPath
	aliases := e.Config.Hosts.Aliases
	ip := e.Config.Hosts.IP
	return Check{
		Label: "Host aliases",
		Predicate: func(context.Context) bool {
			data, err := os.ReadFile(hostsPath)
			if err != nil {
				return false
			}
			return len(hostsync.MissingMappings(string(data), ip, aliases)) == 0
		},
		FailureMessage: fmt.Sprintf("%s must map %s to %s (see: devenv hosts print)", hostsPath, strings.Join(aliases, ", "), ip),
	}
}

// LocalConfig checks the local configuration file (normally a profile link) exists.
func LocalConfig(e Env) Check {
	path := e.Paths.LocalConfig
	return Check{
		Label:          "Local config",
		Predicate:      func(context.Context) bool { return fileExists(path) },
		FailureMessage: fmt.Sprintf("%s missing; link a profile with: devenv profile NAME", path),
	}
}

// Routine is the set gating everyday compose actions.
func Routine(e Env) []Check {
	return []Check{Engine(e), Compose(e), HostAliases(e), LocalConfig(e)}
}

// Full is every built-in check, used by init, build and check.
func Full(e Env) []Check {
	return []Check{SSHKey(e), Username(e), Engine(e), Compose(e), HostAliases(e), LocalConfig(e)}
}

// SSH is the set gating the tunnel command.
func SSH(e Env) []Check {
	return []Check{SSHKey(e), Username(e)}
}
