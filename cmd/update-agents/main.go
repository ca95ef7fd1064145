// Command update-agents updates AGENTS.md through the codex or claude CLI.
// It is the standalone form of `agentboot update-agents`.
package main

import (
	"os"

	"github.com/agentx-labs/agentboot/internal/cli"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(cli.ExecuteUpdateAgents(version, commit, date))
}
