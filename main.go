// evexport - command-line client for the enriched events export service.
package main

import (
	"os"

	"github.com/evexport/evexport/internal/cli"
	"github.com/evexport/evexport/internal/version"
)

func main() {
	// Propagate version from the single source of truth to the CLI.
	cli.Version = version.Version
	cli.BuildTime = version.BuildTime

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
