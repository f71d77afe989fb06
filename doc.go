// Package mathjax rewrites inline math delimiters for MathJax.
//
// mdBook's MathJax support understands \( ... \) for inline math but not
// single dollars. This package turns every inline $...$ pair into the
// canonical marker pair and leaves $$...$$ blocks and escaped \$ alone.
//
// # Quick Start
//
// Rewrite a string with the default markers:
//
//	out := mathjax.Rewrite("The formula $x+y$ costs \\$5.")
//	// out == "The formula \\( x+y \\) costs \\$5."
//
// # Delimiter Rules
//
// A candidate is a '$' that is not preceded by '\' or '$' and not followed
// by '$'. Candidates alternate opening, closing, opening, ... in order of
// appearance. There is no look-ahead: an odd count leaves the last candidate
// rewritten as an opening marker. Diagnose reports that case, as well as
// candidates that sit inside code spans or code blocks.
//
// # mdBook Preprocessor
//
// ParseInput reads the [context, book] pair mdBook writes to a
// preprocessor's stdin. Preprocessor.Run rewrites every chapter concurrently
// and returns the book JSON with only chapter contents changed:
//
//	pctx, book, err := mathjax.ParseInput(os.Stdin)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if ok, err := mathjax.CheckVersion(pctx.MDBookVersion); err == nil && !ok {
//	    log.Printf("warning: built for mdbook %s", mathjax.MDBookVersion)
//	}
//	out, _, err := mathjax.NewPreprocessor().Run(ctx, book)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(out)
//
// Markers can be changed per book in book.toml:
//
//	[preprocessor.inline-mathjax]
//	open-marker = "\\\\("
//	close-marker = "\\\\)"
package mathjax
