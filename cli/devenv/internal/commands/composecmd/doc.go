// Package composecmd covers the docker compose lifecycle commands:
// up/down/build/rebuild-volumes/status/logs.
//
// Handlers are registered with the CLI command registry so `main.go` stays
// focused on wiring.
package composecmd
