// Command pathedit simplifies, smooths and normalizes SVG path data.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"honnef.co/go/pathedit"
	"honnef.co/go/pathedit/svgpath"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// Exit statuses.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type options struct {
	cfg    Config
	anchor int
	action string
	alt    bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pathedit", flag.ContinueOnError)
	fs.SetOutput(stderr)

	flags := defaultConfig()
	var (
		configFile = fs.String("config", "", "Read settings from a TOML file")
		verbose    = fs.Bool("v", false, "Log debug output to stderr")
		anchor     = fs.Int("anchor", -1, "Zero-based index of the anchor to edit (actions, normalize)")
		action     = fs.String("action", "", "Action to apply (normalize)")
		alt        = fs.Bool("alt", false, "Hold the modifier, changing the order of actions")
	)
	fs.Float64Var(&flags.Tolerance, "tolerance", flags.Tolerance, "Maximum distance from the original path (simplify)")
	fs.Float64Var(&flags.MinSpacing, "min-spacing", flags.MinSpacing, "Drop points closer than this before simplifying")
	fs.IntVar(&flags.Steps, "steps", flags.Steps, "Segments per curve when flattening (simplify)")
	fs.BoolVar(&flags.Fit, "fit", flags.Fit, "Refit simplified runs as cubic curves (simplify)")
	fs.IntVar(&flags.Lookahead, "lookahead", flags.Lookahead, "Maximum segments replaced by one fitted curve")
	fs.Float64Var(&flags.Grid, "grid", flags.Grid, "Snap output coordinates to a grid of this size")
	fs.IntVar(&flags.Precision, "precision", flags.Precision, "Maximum number of decimal digits in the output")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: pathedit [options] <command> [path-data]\n\n")
		fmt.Fprintf(stderr, "Edits SVG path data. Path data is read from stdin if not given as an argument.\n\n")
		fmt.Fprintf(stderr, "Commands:\n")
		fmt.Fprintf(stderr, "  simplify    Reduce the path to fewer anchors\n")
		fmt.Fprintf(stderr, "  smooth      Replace the path with a smooth curve through its anchors\n")
		fmt.Fprintf(stderr, "  actions     List the actions available for an anchor\n")
		fmt.Fprintf(stderr, "  normalize   Apply an action to an anchor\n")
		fmt.Fprintf(stderr, "\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  pathedit simplify 'M0,0 L10,0.2 L20,0 L30,30'\n")
		fmt.Fprintf(stderr, "  pathedit -tolerance 0.5 -fit simplify < path.txt\n")
		fmt.Fprintf(stderr, "  pathedit -anchor 1 actions 'M0,0 L100,0 L100,100'\n")
		fmt.Fprintf(stderr, "  pathedit -anchor 1 -action convert-both-to-curves normalize 'M0,0 L100,0 L100,100'\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg := defaultConfig()
	if *configFile != "" {
		if err := loadConfig(*configFile, &cfg); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
	}
	fs.Visit(func(f *flag.Flag) { cfg.override(f.Name, flags) })
	if *verbose {
		cfg.LogLevel = "debug"
	}
	level, err := cfg.level()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	rest := fs.Args()
	if len(rest) == 0 || len(rest) > 2 {
		fs.Usage()
		return exitUsage
	}
	cmd := commands[rest[0]]
	if cmd == nil {
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", rest[0])
		fs.Usage()
		return exitUsage
	}

	var data string
	if len(rest) == 2 {
		data = rest[1]
	} else {
		b, err := io.ReadAll(stdin)
		if err != nil {
			logger.Error("reading path data", "err", err)
			return exitError
		}
		data = string(b)
	}
	p, err := svgpath.Parse(strings.TrimSpace(data))
	if err != nil {
		logger.Error("parsing path data", "err", err)
		return exitError
	}
	logger.Debug("parsed path", "commands", len(p), "subpaths", len(p.SubPaths()))

	opts := options{cfg: cfg, anchor: *anchor, action: *action, alt: *alt}
	out, status := cmd(p, opts, stdout, logger)
	if status == exitUsage {
		fs.Usage()
	}
	if out != nil {
		if err := out.WriteSVG(stdout, pathedit.SVGOptions{MaxPrecision: cfg.Precision}); err != nil {
			logger.Error("writing output", "err", err)
			return exitError
		}
		fmt.Fprintln(stdout)
	}
	return status
}
