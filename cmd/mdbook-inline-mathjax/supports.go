package main

import (
	"fmt"

	mathjax "github.com/alnah/mdbook-inline-mathjax"
)

// runSupports answers mdbook's renderer handshake through the exit status:
// 0 when the renderer is supported, 1 when it is not.
func runSupports(args []string, env *Environment) int {
	if len(args) != 1 {
		fmt.Fprintln(env.Stderr, "Usage: mdbook-inline-mathjax supports <renderer>")
		return ExitUsage
	}

	if mathjax.NewPreprocessor().SupportsRenderer(args[0]) {
		return ExitSuccess
	}
	return ExitGeneral
}
