// Command jsonsql runs SQL-like queries over record files.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/jsonsql/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
