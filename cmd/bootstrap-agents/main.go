// Command bootstrap-agents adds agent bootstrap files to a repository.
// It is the standalone form of `agentboot bootstrap`.
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
	os.Exit(cli.ExecuteBootstrap(version, commit, date))
}
