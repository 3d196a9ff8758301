// Package commands registers every numbered command in menu order.
package commands

import (
	"devenv/cli/devenv/internal/cmdregistry"
	"devenv/cli/devenv/internal/commands/composecmd"
	"devenv/cli/devenv/internal/commands/database"
	"devenv/cli/devenv/internal/commands/deps"
	"devenv/cli/devenv/internal/commands/hosts"
	"devenv/cli/devenv/internal/commands/preflight"
	"devenv/cli/devenv/internal/commands/profile"
	"devenv/cli/devenv/internal/commands/setup"
)

// Register adds all commands to r. The order here is the menu order.
func Register(r *cmdregistry.Registry) {
	setup.Register(r)
	composecmd.Register(r)
	database.Register(r)
	deps.Register(r)
	preflight.Register(r)
	hosts.Register(r)
	profile.Register(r)
}
