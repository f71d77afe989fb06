package main

import (
	"fmt"
	"io"

	mathjax "github.com/alnah/mdbook-inline-mathjax"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdbook-inline-mathjax [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "An mdbook preprocessor that turns inline $...$ math into \\( ... \\).")
	fmt.Fprintln(w, "Without a command, reads [context, book] JSON on stdin and writes the book to stdout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  supports   Check whether a renderer is supported (exit 0 or 1)")
	fmt.Fprintln(w, "  check      Report suspicious delimiters in markdown files")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdbook-inline-mathjax help <command>' for details on a specific command.")
}

// printPreprocessUsage prints usage for the default command.
func printPreprocessUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdbook-inline-mathjax [flags] < input.json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Preprocess a book. mdbook runs this; add to book.toml:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  [preprocessor.inline-mathjax]")
	fmt.Fprintln(w, "  # open-marker = \"\\\\(\"")
	fmt.Fprintln(w, "  # close-marker = \"\\\\)\"")
	fmt.Fprintln(w, "  # workers = 4")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel chapter workers (0 = auto)")
	fmt.Fprintln(w, "      --warnings            Warn about unpaired delimiters and delimiters in code")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show worker and chapter counts")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDBOOK_MATHJAX_CONFIG     Config file name or path")
	fmt.Fprintln(w, "  MDBOOK_MATHJAX_WORKERS    Parallel chapter workers")
	fmt.Fprintln(w, "  MDBOOK_MATHJAX_QUIET      Suppress warnings (true/false)")
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdbook-inline-mathjax check [flags] [file|dir ...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report delimiters that will probably be rewritten by mistake:")
	fmt.Fprintln(w, "an odd number of $ in a file, or $ inside code spans and code blocks.")
	fmt.Fprintln(w, "Reads stdin when no path is given. Exits 1 when issues are found.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show per-file counts")
}

// printSupportsUsage prints usage for the supports command.
func printSupportsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdbook-inline-mathjax supports <renderer>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit 0 if the renderer is supported, 1 otherwise.")
	fmt.Fprintf(w, "Every renderer is supported except %q.\n", mathjax.UnsupportedRenderer)
}

// printVersion prints the version and the mdbook release it targets.
func printVersion(env *Environment) {
	fmt.Fprintf(env.Stdout, "mdbook-inline-mathjax %s (mdbook %s)\n", Version, mathjax.MDBookVersion)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "supports":
		printSupportsUsage(env.Stdout)
	case "check":
		printCheckUsage(env.Stdout)
	case "preprocess":
		printPreprocessUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdbook-inline-mathjax version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdbook-inline-mathjax help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	case "completion":
		printCompletionUsage(env.Stdout)
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	return nil
}
