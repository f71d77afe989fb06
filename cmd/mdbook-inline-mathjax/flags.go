package main

import (
	"errors"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid flags or arguments.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	quiet   bool
	verbose bool
}

// preprocessFlags holds flags for the default (preprocess) command.
type preprocessFlags struct {
	common   commonFlags
	config   string
	workers  int
	warnings bool
}

// checkFlags holds flags for the check command.
type checkFlags struct {
	common commonFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show worker and chapter counts")
}

// buildPreprocessFlagSet registers the preprocess flags into f.
// Shared with completion so flags are declared once.
func buildPreprocessFlagSet(f *preprocessFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("mdbook-inline-mathjax", flag.ContinueOnError)
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel chapter workers (0 = auto)")
	fs.BoolVar(&f.warnings, "warnings", false, "warn about unpaired delimiters and delimiters in code")
	addCommonFlags(fs, &f.common)
	return fs
}

// buildCheckFlagSet registers the check flags into f.
func buildCheckFlagSet(f *checkFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	return fs
}

// parsePreprocessFlags parses preprocess flags and returns positional args.
func parsePreprocessFlags(args []string, stderr io.Writer) (*preprocessFlags, []string, error) {
	f := &preprocessFlags{}
	fs := buildPreprocessFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printPreprocessUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseCheckFlags parses check flags and returns the paths to check.
func parseCheckFlags(args []string, stderr io.Writer) (*checkFlags, []string, error) {
	f := &checkFlags{}
	fs := buildCheckFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printCheckUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
