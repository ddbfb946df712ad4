// Command carboncast estimates household CO2 emissions and finds
// lower-carbon hours for deferrable loads.
package main

import (
	"fmt"
	"os"

	"github.com/gridleaf/carboncast/internal/cli"
	"github.com/gridleaf/carboncast/pkg/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes the root command. Split from main for testability.
func run() error {
	return cli.NewRootCmd(version.GetVersion()).Execute()
}
