// Command flightreg validates the NextGen-Flight-Registry aircraft data files.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/flightreg/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
