package main

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(run(os.Args[1:]))
}

// run dispatches to a subcommand. With no subcommand, serve is assumed.
func run(args []string) int {
	cmd := "serve"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd = args[0]
		args = args[1:]
	}

	switch cmd {
	case "serve":
		return runServe(args)
	case "snapshot":
		return runSnapshot(args)
	case "version":
		fmt.Println("chartdeck " + Version)
		return exitSuccess
	case "help":
		printUsage(os.Stdout)
		return exitSuccess
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		printUsage(os.Stderr)
		return exitUsage
	}
}
