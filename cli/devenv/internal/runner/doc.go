// Package runner centralizes helpers that execute host and docker compose commands.
//
// Every helper returns an error instead of exiting so that actions can stop at
// the first failing step and hand the exit code back to main. Dry-run mode
// prints the command line instead of executing it.
package runner
