package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	mathjax "github.com/alnah/mdbook-inline-mathjax"
	"github.com/alnah/mdbook-inline-mathjax/internal/fileutil"
)

// Sentinel errors for the check command.
var (
	ErrInvalidExtension = errors.New("file must have .md or .markdown extension")
	ErrReadMarkdown     = errors.New("failed to read markdown file")
	ErrFindings         = errors.New("inline math issues found")
)

// stdinName labels diagnostics for content read from stdin.
const stdinName = "<stdin>"

// runCheck reports suspicious delimiters in Markdown files, or stdin when no
// path is given. Returns ErrFindings when anything was reported.
func runCheck(args []string, env *Environment) error {
	flags, paths, err := parseCheckFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	log := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)

	if len(paths) == 0 {
		data, err := io.ReadAll(env.Stdin)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrReadMarkdown, stdinName, err)
		}
		return findingsError(printDiagnostics(env.Stdout, stdinName, string(data)), 1)
	}

	files, err := discoverMarkdown(paths)
	if err != nil {
		return err
	}

	total := 0
	for _, path := range files {
		data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrReadMarkdown, path, err)
		}
		n := printDiagnostics(env.Stdout, path, string(data))
		log.Verbosef("%s: %d issue(s)", path, n)
		total += n
	}
	return findingsError(total, len(files))
}

// printDiagnostics writes one "name:line:col: message" line per diagnostic.
func printDiagnostics(w io.Writer, name, content string) int {
	diags := mathjax.Diagnose(content)
	for _, d := range diags {
		fmt.Fprintf(w, "%s:%s\n", name, d)
	}
	return len(diags)
}

func findingsError(total, files int) error {
	if total == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d in %d file(s)", ErrFindings, total, files)
}

// discoverMarkdown expands paths: files are taken as is, directories are
// walked for .md and .markdown files in lexical order.
func discoverMarkdown(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if !fileutil.IsMarkdown(p) {
				return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(p))
			}
			files = append(files, p)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if !d.IsDir() && fileutil.IsMarkdown(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
