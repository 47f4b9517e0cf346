// Package main is the entry point for quotectl, a command line client for
// the upstream quote API.
package main

import (
	"fmt"
	"os"

	"github.com/jsamuelsen/quote-consumer/cmd/quotectl/cli"
)

// Build-time variables, injected via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := cli.NewRootCmd(cli.BuildInfo{Version: Version, Commit: Commit}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
