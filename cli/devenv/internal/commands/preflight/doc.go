// Package preflight implements the "check" host diagnostics command. It runs
// every prerequisite check verbosely and changes nothing.
package preflight
