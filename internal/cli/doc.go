// Package cli defines the Cobra command tree for agentboot. Each file holds
// one command constructor; the commands delegate to internal packages for
// the actual work and only handle flags, output and exit codes.
package cli
