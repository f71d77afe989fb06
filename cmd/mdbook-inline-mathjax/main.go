package main

import (
	"context"
	"fmt"
	"os"
	"slices"
)

// Version is set at build time via ldflags.
var Version = "dev"

// commands lists the subcommands. Anything else runs the preprocessor.
var commands = []string{"supports", "check", "version", "help", "completion"}

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches args to a command and returns the process exit code.
// With no command, the book on stdin is preprocessed, as mdbook expects.
func runMain(args []string, env *Environment) int {
	ctx, stop := withSignals(context.Background())
	defer stop()

	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}

	cmd := ""
	if len(rest) > 0 && isCommand(rest[0]) {
		cmd, rest = rest[0], rest[1:]
	}

	var err error
	switch cmd {
	case "supports":
		return runSupports(rest, env)
	case "check":
		err = runCheck(rest, env)
	case "version":
		printVersion(env)
	case "help":
		err = runHelp(rest, env)
	case "completion":
		err = runCompletion(rest, env)
	default:
		err = runPreprocess(ctx, rest, env)
	}

	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// isCommand reports whether arg names a subcommand.
func isCommand(arg string) bool {
	return slices.Contains(commands, arg)
}
