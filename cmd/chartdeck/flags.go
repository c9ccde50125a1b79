package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// serveFlags holds flags for the serve command.
type serveFlags struct {
	config  string
	port    int
	host    string
	dirs    []string
	deck    string
	verbose bool
	quiet   bool
	dev     bool
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string) (*serveFlags, error) {
	f := &serveFlags{}
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.StringVarP(&f.config, "config", "c", "", "path to config YAML")
	fs.IntVarP(&f.port, "port", "p", 0, "listen port (overrides config)")
	fs.StringVar(&f.host, "host", "", "listen host (overrides config)")
	fs.StringArrayVarP(&f.dirs, "dir", "d", nil, "asset search directory, repeatable, in priority order (overrides config)")
	fs.StringVar(&f.deck, "deck", "", "deck YAML file (default: built-in deck)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "errors only")
	fs.BoolVar(&f.dev, "dev", false, "development mode (pretty logs, permissive CORS)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if args := fs.Args(); len(args) > 0 {
		return nil, fmt.Errorf("unexpected argument %q", args[0])
	}
	return f, nil
}

// snapshotFlags holds flags for the snapshot command.
type snapshotFlags struct {
	out     string
	height  int
	width   int
	frame   int
	dirs    []string
	verbose bool
	chart   string
}

// parseSnapshotFlags parses snapshot command flags and its single positional
// argument, the chart filename.
func parseSnapshotFlags(args []string) (*snapshotFlags, error) {
	f := &snapshotFlags{}
	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	fs.StringVarP(&f.out, "out", "o", "", "output PNG path (default: chart name with .png)")
	fs.IntVar(&f.height, "height", 600, "viewport height in pixels")
	fs.IntVar(&f.width, "width", 0, "viewport width in pixels (0 = default)")
	fs.IntVar(&f.frame, "frame-duration", 0, "animation frame duration in ms (0 = default)")
	fs.StringArrayVarP(&f.dirs, "dir", "d", nil, "asset search directory, repeatable, in priority order")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	rest := fs.Args()
	if len(rest) != 1 {
		return nil, fmt.Errorf("snapshot requires exactly one chart filename, got %d arguments", len(rest))
	}
	f.chart = rest[0]
	return f, nil
}

// printUsage writes the top-level help text.
func printUsage(w io.Writer) {
	fmt.Fprint(w, `chartdeck - dashboard for precomputed chart exports

Usage:
  chartdeck [serve] [flags]     serve the dashboard (default command)
  chartdeck snapshot <chart>    render one chart to PNG via headless Chrome
  chartdeck version             print version
  chartdeck help                print this help

Serve flags:
  -c, --config path   config YAML
  -p, --port n        listen port
      --host host     listen host
  -d, --dir path      asset search directory (repeatable, priority order)
      --deck path     deck YAML (default: built-in)
      --dev           development mode
  -v, --verbose       debug logging
  -q, --quiet         errors only

Snapshot flags:
  -o, --out path          output PNG (default: <chart>.png)
      --height n          viewport height (default 600)
      --width n           viewport width (default auto)
      --frame-duration n  animation frame duration in ms
  -d, --dir path          asset search directory (repeatable)
`)
}
