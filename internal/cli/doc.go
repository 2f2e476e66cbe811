// Package cli defines the Cobra command tree for ai-init. Each file registers
// one top-level command with the root command. Commands resolve settings,
// call into the installer or doctor, and only handle flag parsing, output
// formatting and exit codes.
package cli
