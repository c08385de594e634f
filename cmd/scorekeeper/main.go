// Command scorekeeper records and scores tennis matches.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/roach88/scorekeeper/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		slog.Error("command failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
