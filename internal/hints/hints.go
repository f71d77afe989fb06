// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"

	"golang.org/x/term"
)

// IsTerminal reports whether fd is an interactive terminal. Replaced in tests.
var IsTerminal = term.IsTerminal

// ForMalformedInput returns hints for unreadable preprocessor input.
// A terminal on stdin means a human ran the command instead of mdbook.
func ForMalformedInput(stdinFD int) string {
	var hints []string
	if stdinFD >= 0 && IsTerminal(stdinFD) {
		hints = append(hints, "this command is run by mdbook; pipe a [context, book] JSON pair to test it")
	}
	hints = append(hints, "check that book.toml declares [preprocessor.inline-mathjax]")
	return formatHints(hints)
}

// ForInvalidVersion returns a hint for an mdbook_version that is not semver.
func ForInvalidVersion() string {
	return format("mdbook reports its version as MAJOR.MINOR.PATCH; is the caller really mdbook?")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "mdbook-inline-mathjax") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
