// Package cli defines the Cobra command tree for the fpmeta CLI. Each file
// in this package registers one top-level command (check, fmt, show, etc.)
// with the root command. Command implementations delegate to the codec and
// manifest packages and only handle flag parsing and output formatting.
package cli
