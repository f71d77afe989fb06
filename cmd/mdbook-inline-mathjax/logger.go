package main

import (
	"fmt"
	"io"
)

// logger writes human-facing messages to stderr.
// stdout is reserved for the book JSON mdbook reads back.
type logger struct {
	w       io.Writer
	quiet   bool // only errors (returned, not logged)
	verbose bool
}

func newLogger(w io.Writer, quiet, verbose bool) *logger {
	return &logger{w: w, quiet: quiet, verbose: verbose && !quiet}
}

// Warnf prints a warning unless quiet.
func (l *logger) Warnf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.w, "warning: "+format+"\n", args...)
}

// Verbosef prints detail only in verbose mode.
func (l *logger) Verbosef(format string, args ...any) {
	if !l.verbose {
		return
	}
	fmt.Fprintf(l.w, format+"\n", args...)
}
