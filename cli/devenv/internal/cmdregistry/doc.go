// Package cmdregistry defines the ordered command registry used by the CLI
// entrypoint and the interactive menu. Commands are immutable records built
// once at startup; their position in the registry is their menu number.
package cmdregistry
