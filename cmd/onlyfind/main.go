// Command onlyfind is a thin CLI demonstrating the deduplication engine
// in internal/dedupcmd, structured as a cobra root command wiring a
// single find subcommand.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := &cobra.Command{
		Use:     "onlyfind",
		Short:   "Find groups of duplicate files",
		Version: version + " (" + commit + ")",
	}

	root.AddCommand(newFindCmd())

	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}
